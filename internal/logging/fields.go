package logging

import "github.com/sirupsen/logrus"

// BaseFields 构建 action + 配置路径等基础字段，便于不同入口复用。
func BaseFields(action, configPath string) logrus.Fields {
	return logrus.Fields{
		"action":     action,
		"configPath": configPath,
	}
}

// RequestFields 提供请求 ID、方法与路径字段，供边界处理器日志复用。
func RequestFields(action, requestID, method, path string) logrus.Fields {
	return logrus.Fields{
		"action":     action,
		"request_id": requestID,
		"method":     method,
		"path":       path,
	}
}

// CodecFields 描述当前生效的 codec 绑定。
func CodecFields(typeKey, format, mediaType string) logrus.Fields {
	return logrus.Fields{
		"type":       typeKey,
		"format":     format,
		"media_type": mediaType,
	}
}
