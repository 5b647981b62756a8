package service

import (
	"context"
	"time"

	"TrainingLog/model"
)

// RelationshipService 好友邀请与好友关系的状态机
type RelationshipService interface {
	// CreateInvitation inviter 向 invited 发起邀请，invited 可写作 "@展示名"
	CreateInvitation(ctx context.Context, inviterID, invitedID string) (*model.FriendInvitation, error)
	// AcceptInvitation 接受 inviter -> invited 的邀请，删除邀请并建立好友关系（同一事务）
	AcceptInvitation(ctx context.Context, inviterID, invitedID string) (*model.Friendship, error)
	// RemoveInvitation 删除 inviter -> invited 的邀请（拒绝或撤回）
	RemoveInvitation(ctx context.Context, inviterID, invitedID string) error
	// RemoveFriendship 解除好友关系，参数顺序无关
	RemoveFriendship(ctx context.Context, userID, friendID string) error
	// GetFriendsFor 返回用户的全部好友（对方视角）
	GetFriendsFor(ctx context.Context, userID string) ([]Friend, error)
	// GetInvitationsFor 用户收到的邀请
	GetInvitationsFor(ctx context.Context, userID string) ([]*model.FriendInvitation, error)
	// GetInvitationsOf 用户发出的邀请
	GetInvitationsOf(ctx context.Context, userID string) ([]*model.FriendInvitation, error)
	// GetUnreadInvitationCount 收到的未读邀请数
	GetUnreadInvitationCount(ctx context.Context, userID string) (int64, error)
	// ClearUnreadInvitations 清空未读邀请数
	ClearUnreadInvitations(ctx context.Context, userID string) error
}

// StateResolver 批量计算查看者与候选用户之间的关系状态
type StateResolver interface {
	// Snapshot 一次性加载查看者的好友/邀请集合
	Snapshot(ctx context.Context, viewerID string) (*RelationSnapshot, error)
	// ResolveStates 对任意数量的候选用户分类，存储访问次数与候选数量无关
	ResolveStates(ctx context.Context, viewerID string, candidateIDs []string) (map[string]model.RelationshipState, error)
}

// DirectoryService 用户目录（带关系状态）
type DirectoryService interface {
	ListUsers(ctx context.Context, viewerID string, query UserListQuery) (*UserPage, error)
	RelationshipWith(ctx context.Context, viewerID, userID string) (*UserWithState, error)
}

// VisibilityService 训练成绩可见性：本人或好友可见
type VisibilityService interface {
	FriendIDsOf(ctx context.Context, userID string) (map[string]struct{}, error)
	ListVisibleResults(ctx context.Context, viewerID string, query ResultQuery) (*ResultPage, error)
}

// Friend 好友及成为好友的时间
type Friend struct {
	User        model.User
	FriendsFrom time.Time
}

// UserListQuery 目录查询条件
type UserListQuery struct {
	Keyword             string
	States              []model.RelationshipState // f_relationships 过滤，空表示不过滤
	OrderByRelationship bool                      // 按关系状态全序（Friends 在前）排序
	Page                int
	PageSize            int
}

// UserWithState 用户及其相对查看者的关系状态
type UserWithState struct {
	User  *model.User
	State model.RelationshipState
}

// UserPage 目录分页结果
type UserPage struct {
	Items []UserWithState
	Total int64
}

// ResultQuery 成绩查询条件，OwnerID 为空表示本人与全部好友
type ResultQuery struct {
	OwnerID  string
	Page     int
	PageSize int
}

// ResultPage 成绩分页结果
type ResultPage struct {
	Items []*model.ExerciseResult
	Total int64
}
