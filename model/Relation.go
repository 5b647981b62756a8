package model

import (
	"time"

	"gorm.io/gorm"
)

// CanonicalPair 返回一对用户 id 的规范顺序（字典序小的在前），
// 用于无序对的存储与唯一约束。
func CanonicalPair(a, b string) (low, high string) {
	if a <= b {
		return a, b
	}
	return b, a
}

// InvitationRole 用户在好友邀请中的角色
type InvitationRole int8

const (
	RoleInviter InvitationRole = iota // 邀请方
	RoleInvited                       // 被邀请方
)

// FriendInvitation 待处理的好友邀请（单向）。
// 约束：uidx_invitation_pair 建在规范化的 (pair_low, pair_high) 上，
// 同一对用户无论方向至多存在一条邀请。
type FriendInvitation struct {
	Id             int64     `gorm:"column:id;primaryKey;autoIncrement:false;comment:雪花id"`
	InviterId      string    `gorm:"column:inviter_id;type:varchar(32);not null;index:idx_inviter;comment:邀请方"`
	InvitedId      string    `gorm:"column:invited_id;type:varchar(32);not null;index:idx_invited;comment:被邀请方"`
	PairLow        string    `gorm:"column:pair_low;type:varchar(32);not null;uniqueIndex:uidx_invitation_pair,priority:1"`
	PairHigh       string    `gorm:"column:pair_high;type:varchar(32);not null;uniqueIndex:uidx_invitation_pair,priority:2"`
	InvitationTime time.Time `gorm:"column:invitation_time;not null;comment:邀请时间"`

	Inviter User `gorm:"foreignKey:InviterId;references:Id"`
	Invited User `gorm:"foreignKey:InvitedId;references:Id"`
}

func (FriendInvitation) TableName() string { return "friend_invitation" }

// BeforeCreate 写入前派生规范化 pair key
func (f *FriendInvitation) BeforeCreate(tx *gorm.DB) error {
	f.PairLow, f.PairHigh = CanonicalPair(f.InviterId, f.InvitedId)
	return nil
}

// Friendship 已确认的好友关系（对称）。
// FirstFriendId 恒为规范顺序中较小的 id，uidx_friendship_pair 保证同一对用户只有一行。
type Friendship struct {
	Id             int64     `gorm:"column:id;primaryKey;autoIncrement:false;comment:雪花id"`
	FirstFriendId  string    `gorm:"column:first_friend_id;type:varchar(32);not null;uniqueIndex:uidx_friendship_pair,priority:1"`
	SecondFriendId string    `gorm:"column:second_friend_id;type:varchar(32);not null;uniqueIndex:uidx_friendship_pair,priority:2;index:idx_second_friend"`
	FriendsFrom    time.Time `gorm:"column:friends_from;not null;comment:成为好友的时间"`

	FirstFriend  User `gorm:"foreignKey:FirstFriendId;references:Id"`
	SecondFriend User `gorm:"foreignKey:SecondFriendId;references:Id"`
}

func (Friendship) TableName() string { return "friendship" }

// BeforeCreate 写入前按规范顺序交换双方
func (f *Friendship) BeforeCreate(tx *gorm.DB) error {
	f.FirstFriendId, f.SecondFriendId = CanonicalPair(f.FirstFriendId, f.SecondFriendId)
	return nil
}

// Other 返回关系中不是 userID 的那一方
func (f *Friendship) Other(userID string) User {
	if f.FirstFriendId == userID {
		return f.SecondFriend
	}
	return f.FirstFriend
}

// OtherID 返回关系中不是 userID 的那一方的 id
func (f *Friendship) OtherID(userID string) string {
	if f.FirstFriendId == userID {
		return f.SecondFriendId
	}
	return f.FirstFriendId
}
