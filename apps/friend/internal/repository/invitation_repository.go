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

// invitationRepositoryImpl 好友邀请数据访问层实现
type invitationRepositoryImpl struct {
	db *gorm.DB
}

// NewInvitationRepository 创建好友邀请仓储实例
func NewInvitationRepository(db *gorm.DB) IInvitationRepository {
	return &invitationRepositoryImpl{db: db}
}

// FindByUnorderedPair 按规范化 pair key 查询，一次等值匹配覆盖两个方向
// 该查询用于写前校验与写后复查，强制走主库，避免副本延迟漏掉刚提交的数据
func (r *invitationRepositoryImpl) FindByUnorderedPair(ctx context.Context, a, b string) (*model.FriendInvitation, error) {
	low, high := model.CanonicalPair(a, b)
	var invitation model.FriendInvitation
	err := conn(ctx, r.db).
		Clauses(dbresolver.Write).
		Where("pair_low = ? AND pair_high = ?", low, high).
		First(&invitation).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, WrapDBError(err)
	}
	return &invitation, nil
}

func (r *invitationRepositoryImpl) FindByOrderedPair(ctx context.Context, inviterID, invitedID string) (*model.FriendInvitation, error) {
	var invitation model.FriendInvitation
	err := conn(ctx, r.db).
		Where("inviter_id = ? AND invited_id = ?", inviterID, invitedID).
		First(&invitation).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, WrapDBError(err)
	}
	return &invitation, nil
}

// Create 创建好友邀请
// pair key 由 BeforeCreate 钩子派生，唯一索引冲突即视为已存在。
func (r *invitationRepositoryImpl) Create(ctx context.Context, invitation *model.FriendInvitation) error {
	if invitation.Id == 0 {
		invitation.Id = util.NextID()
	}
	err := conn(ctx, r.db).Omit(clause.Associations).Create(invitation).Error
	return WrapDBError(err)
}

// Delete 物理删除邀请，保证同一对用户之后可以重新邀请
func (r *invitationRepositoryImpl) Delete(ctx context.Context, inviterID, invitedID string) error {
	res := conn(ctx, r.db).
		Where("inviter_id = ? AND invited_id = ?", inviterID, invitedID).
		Delete(&model.FriendInvitation{})
	if res.Error != nil {
		return WrapDBError(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrRecordNotFound
	}
	return nil
}

func (r *invitationRepositoryImpl) ListFor(ctx context.Context, userID string, role model.InvitationRole) ([]*model.FriendInvitation, error) {
	var invitations []*model.FriendInvitation
	err := conn(ctx, r.db).
		Preload("Inviter").
		Preload("Invited").
		Where(roleColumn(role)+" = ?", userID).
		Order("invitation_time DESC").
		Find(&invitations).Error
	if err != nil {
		return nil, WrapDBError(err)
	}
	return invitations, nil
}

// ListPeerIDs 只取对方 id，供关系状态批量计算使用
func (r *invitationRepositoryImpl) ListPeerIDs(ctx context.Context, userID string, role model.InvitationRole) ([]string, error) {
	peerColumn := "invited_id"
	if role == model.RoleInvited {
		peerColumn = "inviter_id"
	}
	var ids []string
	err := conn(ctx, r.db).
		Model(&model.FriendInvitation{}).
		Where(roleColumn(role)+" = ?", userID).
		Pluck(peerColumn, &ids).Error
	if err != nil {
		return nil, WrapDBError(err)
	}
	return ids, nil
}

// roleColumn 用户以某角色参与邀请时对应的列
func roleColumn(role model.InvitationRole) string {
	if role == model.RoleInvited {
		return "invited_id"
	}
	return "inviter_id"
}
