package kafka

import (
	"context"
	"errors"
	"time"

	"TrainingLog/config"
	"TrainingLog/pkg/logger"

	"github.com/segmentio/kafka-go"
)

// ErrNoBrokers 未配置 broker
var ErrNoBrokers = errors.New("kafka: no brokers configured")

// Producer 对 kafka.Writer 的薄封装。
// Writer 以异步模式运行，Send 不等待 broker 确认，失败通过 Completion 记录日志。
type Producer struct {
	writer *kafka.Writer
}

// NewProducer 创建指定 topic 的生产者
func NewProducer(cfg config.KafkaConfig, topic string) (*Producer, error) {
	if len(cfg.Brokers) == 0 {
		return nil, ErrNoBrokers
	}
	w := &kafka.Writer{
		Addr:         kafka.TCP(cfg.Brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireOne,
		BatchTimeout: cfg.BatchTimeout,
		WriteTimeout: cfg.WriteTimeout,
		Async:        true,
		Completion: func(messages []kafka.Message, err error) {
			if err != nil {
				logger.Error(context.Background(), "Kafka 异步投递失败",
					logger.String("topic", topic),
					logger.Int("messages", len(messages)),
					logger.ErrorField("error", err),
				)
			}
		},
	}
	return &Producer{writer: w}, nil
}

// Send 投递一条消息，key 决定分区
func (p *Producer) Send(ctx context.Context, key, value []byte) error {
	return p.writer.WriteMessages(ctx, kafka.Message{
		Key:   key,
		Value: value,
		Time:  time.Now(),
	})
}

// Close 刷新缓冲并关闭
func (p *Producer) Close() error {
	if p == nil || p.writer == nil {
		return nil
	}
	return p.writer.Close()
}
