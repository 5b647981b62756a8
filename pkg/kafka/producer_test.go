package kafka

import (
	"testing"

	"TrainingLog/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProducerRequiresBrokers(t *testing.T) {
	_, err := NewProducer(config.DefaultKafkaConfig(), "topic")
	assert.ErrorIs(t, err, ErrNoBrokers)
}

func TestNewProducerConfiguresWriter(t *testing.T) {
	cfg := config.DefaultKafkaConfig()
	cfg.Brokers = []string{"127.0.0.1:9092"}

	p, err := NewProducer(cfg, "relation")
	require.NoError(t, err)
	assert.Equal(t, "relation", p.writer.Topic)
	assert.True(t, p.writer.Async)
	require.NoError(t, p.Close())
}
