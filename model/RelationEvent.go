package model

import "time"

// RelationEventType 关系变更事件类型
type RelationEventType string

const (
	EventInvitationCreated  RelationEventType = "invitation_created"
	EventInvitationAccepted RelationEventType = "invitation_accepted"
	EventInvitationRemoved  RelationEventType = "invitation_removed"
	EventFriendshipRemoved  RelationEventType = "friendship_removed"
)

// RelationEvent 关系变更事件，提交成功后投递到消息队列。
// 好友删除事件中 InviterId 为发起删除的一方。
type RelationEvent struct {
	Type       RelationEventType `json:"type"`
	InviterId  string            `json:"inviterId"`
	InvitedId  string            `json:"invitedId"`
	OccurredAt time.Time         `json:"occurredAt"`
}

// Key 消息分区键，同一对用户的事件落在同一分区以保持顺序
func (e RelationEvent) Key() string {
	low, high := CanonicalPair(e.InviterId, e.InvitedId)
	return low + ":" + high
}
