package config

// LoggerConfig 日志配置
type LoggerConfig struct {
	Level            string   `json:"level" env:"LEVEL"`                          // debug/info/warn/error
	Encoding         string   `json:"encoding" env:"ENCODING"`                    // json 或 console
	EnableColor      bool     `json:"enableColor" env:"ENABLE_COLOR"`             // console 模式下是否彩色输出
	OutputPaths      []string `json:"outputPaths" env:"OUTPUT_PATHS"`             // 普通日志输出，支持 stdout/stderr/文件路径
	ErrorOutputPaths []string `json:"errorOutputPaths" env:"ERROR_OUTPUT_PATHS"` // zap 内部错误输出
	Development      bool     `json:"development" env:"DEVELOPMENT"`              // 开发模式：Error 级别附带堆栈
}

// DefaultLoggerConfig 返回本地开发的默认日志配置。
func DefaultLoggerConfig() LoggerConfig {
	return LoggerConfig{
		Level:            "info",
		Encoding:         "json",
		EnableColor:      false,
		OutputPaths:      []string{"stdout"},
		ErrorOutputPaths: []string{"stderr"},
		Development:      false,
	}
}
