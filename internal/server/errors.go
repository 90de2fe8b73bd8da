package server

import (
	"errors"

	"github.com/gofiber/fiber/v3"

	"github.com/rabbitshop/bookcase/internal/fault"
)

// FiberStatus 让 Fiber 自身的错误（路由未命中、请求体超限等）沿用其声明的状态码。
func FiberStatus(err error) (int, bool) {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return fe.Code, true
	}
	return 0, false
}

// errorHandler 把所有 handler 返回的错误交给唯一的 Translator，并写出响应。
func errorHandler(translator *fault.Translator) fiber.ErrorHandler {
	return func(c fiber.Ctx, err error) error {
		req := fault.Request{
			Method:    c.Method(),
			Path:      c.Path(),
			RequestID: RequestID(c),
			Problem:   prefersProblem(c),
		}
		resp := translator.Translate(req, err)

		c.Status(resp.Status)
		if len(resp.Body) == 0 {
			c.Response().ResetBody()
			return nil
		}
		c.Set(fiber.HeaderContentType, resp.ContentType)
		if sendErr := c.Send(resp.Body); sendErr != nil {
			c.Response().ResetBody()
		}
		return nil
	}
}

// prefersProblem 判断客户端是否协商到 problem+json；未声明 Accept 时使用纯文本。
func prefersProblem(c fiber.Ctx) bool {
	switch c.Accepts(fault.MediaTypePlain, fault.MediaTypeProblem, fiber.MIMEApplicationJSON) {
	case fault.MediaTypeProblem, fiber.MIMEApplicationJSON:
		return true
	default:
		return false
	}
}
