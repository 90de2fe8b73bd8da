package routes

import (
	"sort"

	"github.com/gofiber/fiber/v3"

	"github.com/rabbitshop/bookcase/internal/codec"
	"github.com/rabbitshop/bookcase/internal/version"
)

// RegisterDiagnosticRoutes 暴露 /-/codecs 与 /-/version 诊断接口，供运维确认当前生效的 codec 绑定。
func RegisterDiagnosticRoutes(app *fiber.App, registry *codec.Registry) {
	if app == nil || registry == nil {
		return
	}

	app.Get("/-/codecs", func(c fiber.Ctx) error {
		return c.JSON(codecsPayload{
			Bindings: encodeBindings(registry.List()),
			Formats:  codec.FormatNames(),
		})
	})

	app.Get("/-/version", func(c fiber.Ctx) error {
		return c.JSON(fiber.Map{"version": version.Full()})
	})
}

type codecsPayload struct {
	Bindings []bindingPayload `json:"bindings"`
	Formats  []string         `json:"formats"`
}

type bindingPayload struct {
	Type      string `json:"type"`
	MediaType string `json:"media_type"`
	Delimiter string `json:"delimiter,omitempty"`
}

// delimited 由逐行分隔的 codec（csv）实现。
type delimited interface {
	Delimiter() string
}

func encodeBindings(bindings []codec.Binding) []bindingPayload {
	result := make([]bindingPayload, 0, len(bindings))
	for _, b := range bindings {
		payload := bindingPayload{
			Type:      string(b.Type),
			MediaType: b.Codec.MediaType().String(),
		}
		if d, ok := b.Codec.(delimited); ok {
			payload.Delimiter = d.Delimiter()
		}
		result = append(result, payload)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Type < result[j].Type
	})
	return result
}
