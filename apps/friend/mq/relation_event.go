package mq

import (
	"context"
	"encoding/json"
	"time"

	"TrainingLog/model"
	"TrainingLog/pkg/ctxmeta"
)

// ==================== 关系事件消息 ====================

// RelationEventMessage 写入 Kafka 的关系事件消息体
type RelationEventMessage struct {
	model.RelationEvent

	// 元数据（用于追踪）
	TraceID  string    `json:"trace_id,omitempty"`
	Operator string    `json:"operator,omitempty"` // 发起请求的用户
	SentAt   time.Time `json:"sent_at"`
}

// BuildRelationEventMessage 从请求上下文补齐追踪信息
func BuildRelationEventMessage(ctx context.Context, event model.RelationEvent) RelationEventMessage {
	return RelationEventMessage{
		RelationEvent: event,
		TraceID:       ctxmeta.TraceID(ctx),
		Operator:      ctxmeta.UserID(ctx),
		SentAt:        time.Now(),
	}
}

// Encode 序列化为 JSON
func (m RelationEventMessage) Encode() ([]byte, error) {
	return json.Marshal(m)
}

// DecodeRelationEventMessage 反序列化，供下游消费者使用
func DecodeRelationEventMessage(data []byte) (RelationEventMessage, error) {
	var m RelationEventMessage
	err := json.Unmarshal(data, &m)
	return m, err
}

// ==================== 投递 ====================

// Sender 消息发送端（kafka.Producer 实现）
type Sender interface {
	Send(ctx context.Context, key, value []byte) error
}

// RelationEventPublisher 把关系事件按 pair key 分区投递
type RelationEventPublisher struct {
	sender Sender
}

// NewRelationEventPublisher 创建关系事件发布器
func NewRelationEventPublisher(sender Sender) *RelationEventPublisher {
	return &RelationEventPublisher{sender: sender}
}

// Publish 实现 service.EventPublisher
func (p *RelationEventPublisher) Publish(ctx context.Context, event model.RelationEvent) error {
	value, err := BuildRelationEventMessage(ctx, event).Encode()
	if err != nil {
		return err
	}
	return p.sender.Send(ctx, []byte(event.Key()), value)
}
