package config

import "time"

// MySQLConfig 数据库配置
// Replicas 非空时通过 dbresolver 注册只读副本，读写分离。
type MySQLConfig struct {
	DSN             string        `json:"dsn" env:"DSN"`
	Replicas        []string      `json:"replicas" env:"REPLICAS"`
	MaxOpenConns    int           `json:"maxOpenConns" env:"MAX_OPEN_CONNS"`
	MaxIdleConns    int           `json:"maxIdleConns" env:"MAX_IDLE_CONNS"`
	ConnMaxLifetime time.Duration `json:"connMaxLifetime" env:"CONN_MAX_LIFETIME"`
	SlowThreshold   time.Duration `json:"slowThreshold" env:"SLOW_THRESHOLD"` // 慢 SQL 阈值
	LogLevel        string        `json:"logLevel" env:"LOG_LEVEL"`           // silent/error/warn/info
	AutoMigrate     bool          `json:"autoMigrate" env:"AUTO_MIGRATE"`     // 启动时自动建表
}

// DefaultMySQLConfig 返回本地开发的默认配置。
func DefaultMySQLConfig() MySQLConfig {
	return MySQLConfig{
		DSN:             "root:root@tcp(127.0.0.1:3306)/training_log?charset=utf8mb4&parseTime=True&loc=Local",
		MaxOpenConns:    50,
		MaxIdleConns:    10,
		ConnMaxLifetime: time.Hour,
		SlowThreshold:   200 * time.Millisecond,
		LogLevel:        "warn",
		AutoMigrate:     true,
	}
}
