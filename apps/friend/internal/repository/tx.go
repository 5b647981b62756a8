package repository

import (
	"context"

	"gorm.io/gorm"
)

type txKey struct{}

// transactorImpl 基于 gorm.Transaction 的事务管理
type transactorImpl struct {
	db *gorm.DB
}

// NewTransactor 创建事务管理器
func NewTransactor(db *gorm.DB) ITransactor {
	return &transactorImpl{db: db}
}

// WithinTx 在同一事务中执行 fn。
// 事务句柄通过 ctx 传递，仓储层用 conn(ctx) 取连接即可加入事务；
// 已在事务中时直接复用外层事务。fn 返回错误则回滚。
func (t *transactorImpl) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if _, ok := ctx.Value(txKey{}).(*gorm.DB); ok {
		return fn(ctx)
	}
	return t.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(context.WithValue(ctx, txKey{}, tx))
	})
}

// conn 返回 ctx 中的事务句柄，不在事务中时返回带 ctx 的普通连接
func conn(ctx context.Context, db *gorm.DB) *gorm.DB {
	if tx, ok := ctx.Value(txKey{}).(*gorm.DB); ok {
		return tx.WithContext(ctx)
	}
	return db.WithContext(ctx)
}
