package service

//go:generate mockgen -source=events.go -destination=mocks/mock_publisher.go -package=mocks

import (
	"context"

	"TrainingLog/model"
)

// EventPublisher 关系变更事件投递
type EventPublisher interface {
	Publish(ctx context.Context, event model.RelationEvent) error
}

// NoopPublisher 未配置消息队列时使用
type NoopPublisher struct{}

func (NoopPublisher) Publish(context.Context, model.RelationEvent) error { return nil }
