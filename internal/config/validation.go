package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"unicode/utf8"

	"github.com/sirupsen/logrus"

	"github.com/rabbitshop/bookcase/internal/codec"
)

// Validate 针对语义级别做进一步校验，防止非法配置启动服务。
func (c *Config) Validate() error {
	if c == nil {
		return errors.New("配置为空")
	}

	g := c.Global
	if g.ListenPort <= 0 || g.ListenPort > 65535 {
		return newFieldError("Global.ListenPort", "必须在 1-65535")
	}
	if _, err := logrus.ParseLevel(g.LogLevel); err != nil {
		return newFieldError("Global.LogLevel", fmt.Sprintf("无法识别的日志级别: %s", g.LogLevel))
	}
	if g.LogMaxSize < 0 {
		return newFieldError("Global.LogMaxSize", "不能为负数")
	}
	if g.LogMaxBackups < 0 {
		return newFieldError("Global.LogMaxBackups", "不能为负数")
	}
	if g.BodyLimit <= 0 {
		return newFieldError("Global.BodyLimit", "必须大于 0")
	}
	if g.ReadTimeout.DurationValue() <= 0 {
		return newFieldError("Global.ReadTimeout", "必须大于 0")
	}
	if g.WriteTimeout.DurationValue() <= 0 {
		return newFieldError("Global.WriteTimeout", "必须大于 0")
	}
	if g.ProblemBaseURL != "" {
		if err := validateBaseURL(g.ProblemBaseURL); err != nil {
			return fmt.Errorf("Global.ProblemBaseURL: %w", err)
		}
	}

	return c.Codec.validate()
}

func (c *CodecConfig) validate() error {
	format := strings.ToLower(strings.TrimSpace(c.Format))
	if format == "" {
		return newFieldError(codecField("Format"), "不能为空")
	}
	if _, ok := codec.LookupFormat(format); !ok {
		return newFieldError(codecField("Format"), "仅支持 "+strings.Join(codec.FormatNames(), "|"))
	}
	c.Format = format

	if c.MediaType != "" {
		if _, err := codec.ParseMediaType(c.MediaType); err != nil {
			return newFieldError(codecField("MediaType"), err.Error())
		}
	}

	if c.Delimiter != "" {
		if utf8.RuneCountInString(c.Delimiter) != 1 {
			return newFieldError(codecField("Delimiter"), "必须是单个字符")
		}
		switch c.Delimiter {
		case "\n", "\r", `"`:
			return newFieldError(codecField("Delimiter"), "不允许使用换行或引号")
		}
	}

	return nil
}

// MediaTypeValue 返回解析后的媒体类型；未配置时返回零值，由格式默认值兜底。
func (c CodecConfig) MediaTypeValue() codec.MediaType {
	if c.MediaType == "" {
		return codec.MediaType{}
	}
	m, err := codec.ParseMediaType(c.MediaType)
	if err != nil {
		return codec.MediaType{}
	}
	return m
}

func validateBaseURL(raw string) error {
	parsed, err := url.Parse(raw)
	if err != nil {
		return err
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return fmt.Errorf("仅支持 http/https: %s", raw)
	}
	if parsed.Host == "" {
		return fmt.Errorf("缺少 Host: %s", raw)
	}
	return nil
}
