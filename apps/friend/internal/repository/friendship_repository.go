package repository

import (
	"context"
	"errors"

	"TrainingLog/model"
	"TrainingLog/pkg/util"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/plugin/dbresolver"
)

// friendshipRepositoryImpl 好友关系数据访问层实现
type friendshipRepositoryImpl struct {
	db *gorm.DB
}

// NewFriendshipRepository 创建好友关系仓储实例
func NewFriendshipRepository(db *gorm.DB) IFriendshipRepository {
	return &friendshipRepositoryImpl{db: db}
}

// FindByUnorderedPair 写前校验与写后复查使用，强制走主库
func (r *friendshipRepositoryImpl) FindByUnorderedPair(ctx context.Context, a, b string) (*model.Friendship, error) {
	low, high := model.CanonicalPair(a, b)
	var friendship model.Friendship
	err := conn(ctx, r.db).
		Clauses(dbresolver.Write).
		Where("first_friend_id = ? AND second_friend_id = ?", low, high).
		First(&friendship).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, WrapDBError(err)
	}
	return &friendship, nil
}

// Create 创建好友关系，双方顺序由 BeforeCreate 规范化
func (r *friendshipRepositoryImpl) Create(ctx context.Context, friendship *model.Friendship) error {
	if friendship.Id == 0 {
		friendship.Id = util.NextID()
	}
	err := conn(ctx, r.db).Omit(clause.Associations).Create(friendship).Error
	return WrapDBError(err)
}

func (r *friendshipRepositoryImpl) Delete(ctx context.Context, a, b string) error {
	low, high := model.CanonicalPair(a, b)
	res := conn(ctx, r.db).
		Where("first_friend_id = ? AND second_friend_id = ?", low, high).
		Delete(&model.Friendship{})
	if res.Error != nil {
		return WrapDBError(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrRecordNotFound
	}
	return nil
}

func (r *friendshipRepositoryImpl) ListFor(ctx context.Context, userID string) ([]*model.Friendship, error) {
	var friendships []*model.Friendship
	err := conn(ctx, r.db).
		Preload("FirstFriend").
		Preload("SecondFriend").
		Where("first_friend_id = ? OR second_friend_id = ?", userID, userID).
		Order("friends_from DESC").
		Find(&friendships).Error
	if err != nil {
		return nil, WrapDBError(err)
	}
	return friendships, nil
}

// ListFriendIDs 只查两列，在内存中投影出对方 id
func (r *friendshipRepositoryImpl) ListFriendIDs(ctx context.Context, userID string) ([]string, error) {
	var rows []model.Friendship
	err := conn(ctx, r.db).
		Select("first_friend_id", "second_friend_id").
		Where("first_friend_id = ? OR second_friend_id = ?", userID, userID).
		Find(&rows).Error
	if err != nil {
		return nil, WrapDBError(err)
	}
	ids := make([]string, 0, len(rows))
	for i := range rows {
		ids = append(ids, rows[i].OtherID(userID))
	}
	return ids, nil
}
