package config

import "time"

// KafkaConfig Kafka 配置
// Brokers 为空时不投递关系事件。
type KafkaConfig struct {
	Brokers            []string      `json:"brokers" env:"BROKERS"`
	RelationEventTopic string        `json:"relationEventTopic" env:"RELATION_EVENT_TOPIC"`
	BatchTimeout       time.Duration `json:"batchTimeout" env:"BATCH_TIMEOUT"`
	WriteTimeout       time.Duration `json:"writeTimeout" env:"WRITE_TIMEOUT"`
}

// DefaultKafkaConfig 返回默认配置。
func DefaultKafkaConfig() KafkaConfig {
	return KafkaConfig{
		RelationEventTopic: "traininglog.relation.events",
		BatchTimeout:       50 * time.Millisecond,
		WriteTimeout:       5 * time.Second,
	}
}
