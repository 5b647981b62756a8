package repository

import (
	"errors"
	"fmt"
	"strings"

	mysqldriver "github.com/go-sql-driver/mysql"
	"github.com/sony/gobreaker"
	"gorm.io/gorm"
)

// ==================== Repository 层统一错误定义 ====================

var (
	// ErrRecordNotFound 记录不存在
	ErrRecordNotFound = errors.New("record not found")

	// ErrDuplicateKey 唯一键冲突
	ErrDuplicateKey = errors.New("duplicate key")

	// ErrDatabase 数据库操作错误
	ErrDatabase = errors.New("database error")

	// ErrRedis Redis 操作错误
	ErrRedis = errors.New("redis error")
)

// mysqlDuplicateEntry MySQL 唯一键冲突错误码
const mysqlDuplicateEntry = 1062

// ==================== 核心包装函数 ====================

// wrapError 通用错误包装函数
// err: 要包装的错误
// rules: 映射规则 map[源错误]目标错误
// defaultErr: 默认错误
func wrapError(err error, rules map[error]error, defaultErr error) error {
	if err == nil {
		return nil
	}

	for source, target := range rules {
		if errors.Is(err, source) {
			return target
		}
	}

	// 未匹配任何规则，同时保留默认错误与原始错误链（超时等仍可 errors.Is）
	return fmt.Errorf("%w: %w", defaultErr, err)
}

// ==================== 预定义规则 ====================

var (
	// dbErrorRules 数据库错误映射规则
	dbErrorRules = map[error]error{
		gorm.ErrRecordNotFound: ErrRecordNotFound,
		gorm.ErrDuplicatedKey:  ErrDuplicateKey,
	}

	// redisErrorRules Redis 错误映射规则
	redisErrorRules = map[error]error{
		gobreaker.ErrOpenState:       ErrRedis,
		gobreaker.ErrTooManyRequests: ErrRedis,
	}
)

// ==================== 便捷函数 ====================

// WrapDBError 包装数据库错误
// 唯一约束冲突是"已存在"的权威信号，不同驱动的报错统一映射为 ErrDuplicateKey。
func WrapDBError(err error) error {
	if err == nil {
		return nil
	}
	if isDuplicateKeyError(err) {
		return ErrDuplicateKey
	}
	return wrapError(err, dbErrorRules, ErrDatabase)
}

// WrapRedisError 包装 Redis 错误
func WrapRedisError(err error) error {
	return wrapError(err, redisErrorRules, ErrRedis)
}

// isDuplicateKeyError 识别 gorm 翻译后的错误、MySQL 1062 以及 SQLite 的 UNIQUE 冲突
func isDuplicateKeyError(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var myErr *mysqldriver.MySQLError
	if errors.As(err, &myErr) && myErr.Number == mysqlDuplicateEntry {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") || strings.Contains(msg, "Duplicate entry")
}
