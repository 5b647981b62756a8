package dto

import (
	"time"

	"TrainingLog/model"
)

// ==================== 好友相关 DTO ====================

// InviteResponse 发起邀请响应 DTO
type InviteResponse struct {
	InvitationID   int64    `json:"invitationId,string"` // 邀请id（雪花id，按字符串返回）
	Invited        UserInfo `json:"invited"`             // 被邀请人
	InvitationTime int64    `json:"invitationTime"`      // 邀请时间（毫秒时间戳）
}

// AcceptResponse 接受邀请响应 DTO
type AcceptResponse struct {
	FriendID    string `json:"friendId"`    // 新好友id
	FriendsFrom int64  `json:"friendsFrom"` // 成为好友的时间（毫秒时间戳）
}

// FriendItem 好友信息 DTO
type FriendItem struct {
	User        UserInfo `json:"user"`
	FriendsFrom int64    `json:"friendsFrom"`
}

// FriendListResponse 好友列表响应 DTO
type FriendListResponse struct {
	Items []FriendItem `json:"items"`
}

// InvitationItem 好友邀请 DTO
type InvitationItem struct {
	InvitationID   int64    `json:"invitationId,string"`
	Inviter        UserInfo `json:"inviter"`
	Invited        UserInfo `json:"invited"`
	InvitationTime int64    `json:"invitationTime"`
}

// InvitationListResponse 邀请列表响应 DTO
type InvitationListResponse struct {
	Items []InvitationItem `json:"items"`
}

// UnreadCountResponse 未读邀请数响应 DTO
type UnreadCountResponse struct {
	Count int64 `json:"count"`
}

// ==================== 转换函数 ====================

// ConvertInviteResponse 将邀请模型转换为发起邀请响应
func ConvertInviteResponse(inv *model.FriendInvitation) *InviteResponse {
	return &InviteResponse{
		InvitationID:   inv.Id,
		Invited:        ConvertUserInfo(&inv.Invited),
		InvitationTime: toMillis(inv.InvitationTime),
	}
}

// ConvertFriendItem 转换单个好友
func ConvertFriendItem(user model.User, friendsFrom time.Time) FriendItem {
	return FriendItem{User: ConvertUserInfo(&user), FriendsFrom: toMillis(friendsFrom)}
}

// ConvertInvitationItems 批量转换邀请
func ConvertInvitationItems(invitations []*model.FriendInvitation) []InvitationItem {
	items := make([]InvitationItem, 0, len(invitations))
	for _, inv := range invitations {
		items = append(items, InvitationItem{
			InvitationID:   inv.Id,
			Inviter:        ConvertUserInfo(&inv.Inviter),
			Invited:        ConvertUserInfo(&inv.Invited),
			InvitationTime: toMillis(inv.InvitationTime),
		})
	}
	return items
}
