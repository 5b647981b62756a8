package mq

import (
	"context"
	"errors"
	"testing"
	"time"

	"TrainingLog/model"
	"TrainingLog/pkg/ctxmeta"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSender struct {
	sendFn func(ctx context.Context, key, value []byte) error
}

func (f *fakeSender) Send(ctx context.Context, key, value []byte) error {
	if f.sendFn == nil {
		return nil
	}
	return f.sendFn(ctx, key, value)
}

func TestRelationEventPublisher_Publish(t *testing.T) {
	ctx := ctxmeta.WithTraceID(context.Background(), "trace-1")
	ctx = ctxmeta.WithUserID(ctx, "u2")
	event := model.RelationEvent{
		Type:       model.EventInvitationAccepted,
		InviterId:  "u2",
		InvitedId:  "u1",
		OccurredAt: time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC),
	}

	var gotKey, gotValue []byte
	pub := NewRelationEventPublisher(&fakeSender{sendFn: func(_ context.Context, key, value []byte) error {
		gotKey, gotValue = key, value
		return nil
	}})
	require.NoError(t, pub.Publish(ctx, event))

	// 同一对用户无论方向都落在同一分区
	assert.Equal(t, "u1:u2", string(gotKey))

	msg, err := DecodeRelationEventMessage(gotValue)
	require.NoError(t, err)
	assert.Equal(t, model.EventInvitationAccepted, msg.Type)
	assert.Equal(t, "u2", msg.InviterId)
	assert.Equal(t, "u1", msg.InvitedId)
	assert.True(t, event.OccurredAt.Equal(msg.OccurredAt))
	assert.Equal(t, "trace-1", msg.TraceID)
	assert.Equal(t, "u2", msg.Operator)
	assert.False(t, msg.SentAt.IsZero())
}

func TestRelationEventPublisher_SendError(t *testing.T) {
	boom := errors.New("broker unavailable")
	pub := NewRelationEventPublisher(&fakeSender{sendFn: func(context.Context, []byte, []byte) error {
		return boom
	}})
	err := pub.Publish(context.Background(), model.RelationEvent{Type: model.EventFriendshipRemoved, InviterId: "a", InvitedId: "b"})
	assert.ErrorIs(t, err, boom)
}
