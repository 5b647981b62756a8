package repository

import (
	"context"

	"TrainingLog/model"
)

// ITransactor 事务管理
type ITransactor interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// IUserRepository 用户目录（外部维护，只读）
type IUserRepository interface {
	// GetByID 根据 id 查询用户，不存在返回 nil, nil
	GetByID(ctx context.Context, id string) (*model.User, error)
	// GetByName 根据展示名查询用户，不存在返回 nil, nil
	GetByName(ctx context.Context, name string) (*model.User, error)
	// Search 目录分页查询
	Search(ctx context.Context, params UserSearchParams) ([]*model.User, int64, error)
}

// UserSearchParams 目录查询参数
type UserSearchParams struct {
	Keyword       string     // 展示名模糊匹配
	ExcludeIDs    []string   // 排除的 id
	RestrictToIDs bool       // 为 true 时只返回 OnlyIDs 中的用户（OnlyIDs 为空则结果为空）
	OnlyIDs       []string   //
	RankGroups    [][]string // 按分组顺序排序：落在第 i 组的排在第 i 位，其余排最后
	Page          int
	PageSize      int
}

// IInvitationRepository 好友邀请数据访问接口
type IInvitationRepository interface {
	// FindByUnorderedPair 查询两人之间任意方向的邀请，不存在返回 nil, nil
	FindByUnorderedPair(ctx context.Context, a, b string) (*model.FriendInvitation, error)
	// FindByOrderedPair 查询 inviter -> invited 方向的邀请，不存在返回 nil, nil
	FindByOrderedPair(ctx context.Context, inviterID, invitedID string) (*model.FriendInvitation, error)
	// Create 创建邀请，同一对用户已存在邀请时返回 ErrDuplicateKey
	Create(ctx context.Context, invitation *model.FriendInvitation) error
	// Delete 删除 inviter -> invited 方向的邀请，不存在返回 ErrRecordNotFound
	Delete(ctx context.Context, inviterID, invitedID string) error
	// ListFor 列出用户以指定角色参与的邀请（预加载双方用户）
	ListFor(ctx context.Context, userID string, role model.InvitationRole) ([]*model.FriendInvitation, error)
	// ListPeerIDs 列出用户以指定角色参与的邀请中对方的 id
	ListPeerIDs(ctx context.Context, userID string, role model.InvitationRole) ([]string, error)
}

// IFriendshipRepository 好友关系数据访问接口
type IFriendshipRepository interface {
	// FindByUnorderedPair 查询两人之间的好友关系，不存在返回 nil, nil
	FindByUnorderedPair(ctx context.Context, a, b string) (*model.Friendship, error)
	// Create 创建好友关系，已存在返回 ErrDuplicateKey
	Create(ctx context.Context, friendship *model.Friendship) error
	// Delete 删除两人之间的好友关系（参数顺序无关），不存在返回 ErrRecordNotFound
	Delete(ctx context.Context, a, b string) error
	// ListFor 列出用户参与的全部好友关系（预加载双方用户）
	ListFor(ctx context.Context, userID string) ([]*model.Friendship, error)
	// ListFriendIDs 列出用户全部好友的 id
	ListFriendIDs(ctx context.Context, userID string) ([]string, error)
}

// IResultRepository 训练成绩只读查询
type IResultRepository interface {
	// ListByOwners 分页查询属于 ownerIDs 的成绩，按完成时间倒序
	ListByOwners(ctx context.Context, ownerIDs []string, page, pageSize int) ([]*model.ExerciseResult, int64, error)
}

// INotifyRepository 好友邀请未读计数（Redis，尽力而为）
type INotifyRepository interface {
	IncrUnreadInvitation(ctx context.Context, userID string) error
	DecrUnreadInvitation(ctx context.Context, userID string) error
	GetUnreadInvitationCount(ctx context.Context, userID string) (int64, error)
	ClearUnreadInvitation(ctx context.Context, userID string) error
}
