package repository

import (
	"context"

	"TrainingLog/model"

	"gorm.io/gorm"
)

// resultRepositoryImpl 训练成绩只读查询
type resultRepositoryImpl struct {
	db *gorm.DB
}

// NewResultRepository 创建训练成绩仓储实例
func NewResultRepository(db *gorm.DB) IResultRepository {
	return &resultRepositoryImpl{db: db}
}

// ListByOwners owner_id IN (...) 分页，ownerIDs 为空时直接返回空结果
func (r *resultRepositoryImpl) ListByOwners(ctx context.Context, ownerIDs []string, page, pageSize int) ([]*model.ExerciseResult, int64, error) {
	if len(ownerIDs) == 0 {
		return []*model.ExerciseResult{}, 0, nil
	}
	offset, limit := normalizePage(page, pageSize)

	q := conn(ctx, r.db).
		Model(&model.ExerciseResult{}).
		Where("owner_id IN ?", ownerIDs).
		Session(&gorm.Session{})

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, WrapDBError(err)
	}

	results := make([]*model.ExerciseResult, 0, limit)
	if total == 0 {
		return results, 0, nil
	}
	err := q.Order("performed_at DESC, id DESC").
		Offset(offset).
		Limit(limit).
		Find(&results).Error
	if err != nil {
		return nil, 0, WrapDBError(err)
	}
	return results, total, nil
}
