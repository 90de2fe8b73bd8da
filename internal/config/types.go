package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Duration 提供更灵活的反序列化能力，同时兼容纯秒整数与 Go Duration 字符串。
type Duration time.Duration

// UnmarshalText 使 Viper 可以识别诸如 "30s"、"5m" 或纯数字秒值等配置写法。
func (d *Duration) UnmarshalText(text []byte) error {
	raw := strings.TrimSpace(string(text))
	if raw == "" {
		*d = Duration(0)
		return nil
	}

	if parsed, err := time.ParseDuration(raw); err == nil {
		*d = Duration(parsed)
		return nil
	}

	if intVal, err := strconv.ParseInt(raw, 10, 64); err == nil {
		*d = Duration(time.Duration(intVal) * time.Second)
		return nil
	}

	return fmt.Errorf("invalid duration value: %s", raw)
}

// DurationValue 返回真实的 time.Duration，便于调用方计算。
func (d Duration) DurationValue() time.Duration {
	return time.Duration(d)
}

// GlobalConfig 描述全局运行时行为：监听、日志与请求体限制。
type GlobalConfig struct {
	ListenPort     int      `mapstructure:"ListenPort"`
	LogLevel       string   `mapstructure:"LogLevel"`
	LogFilePath    string   `mapstructure:"LogFilePath"`
	LogMaxSize     int      `mapstructure:"LogMaxSize"`
	LogMaxBackups  int      `mapstructure:"LogMaxBackups"`
	LogCompress    bool     `mapstructure:"LogCompress"`
	BodyLimit      int      `mapstructure:"BodyLimit"`
	ReadTimeout    Duration `mapstructure:"ReadTimeout"`
	WriteTimeout   Duration `mapstructure:"WriteTimeout"`
	ProblemBaseURL string   `mapstructure:"ProblemBaseURL"`
}

// CodecConfig 决定 book.Collection 在线上使用哪种格式。每个领域类型只会有一个生效的 codec。
type CodecConfig struct {
	Format    string `mapstructure:"Format"`
	MediaType string `mapstructure:"MediaType"`
	Delimiter string `mapstructure:"Delimiter"`
}

// Config 是 TOML 文件映射的整体结构。
type Config struct {
	Global GlobalConfig `mapstructure:",squash"`
	Codec  CodecConfig  `mapstructure:"Codec"`
}

// DelimiterRune 返回配置的单字符分隔符，未配置时返回 0 交由 codec 使用默认值。
func (c CodecConfig) DelimiterRune() rune {
	for _, r := range c.Delimiter {
		return r
	}
	return 0
}
