package server

import (
	"fmt"

	"github.com/gofiber/fiber/v3"
	"github.com/sirupsen/logrus"

	"github.com/rabbitshop/bookcase/internal/fault"
	"github.com/rabbitshop/bookcase/internal/logging"
)

// exceptionHandler 汇总只负责抛出故障或直接返回状态码的端点。
type exceptionHandler struct {
	logger *logrus.Logger
}

func (h *exceptionHandler) debug(c fiber.Ctx, action, msg string) {
	h.logger.WithFields(logging.RequestFields(action, RequestID(c), c.Method(), c.Path())).Debug(msg)
}

func (h *exceptionHandler) forbidden(c fiber.Ctx) error {
	h.debug(c, "forbidden", "raise Forbidden to test custom response status")
	return fault.Forbidden()
}

func (h *exceptionHandler) paymentRequired(c fiber.Ctx) error {
	h.debug(c, "payment_required", "raise PaymentRequired to test custom fault handling")
	return fault.PaymentRequired()
}

func (h *exceptionHandler) illegalArgument(c fiber.Ctx) error {
	h.debug(c, "illegal_argument", "raise InvalidArgument to test diagnostic response body")
	return fault.Newf(fault.KindInvalidArgument, "illegal argument")
}

// illegalState 故意返回通用错误而不是 Fault，由 Translator 按哨兵值归类为 406。
func (h *exceptionHandler) illegalState(c fiber.Ctx) error {
	h.debug(c, "illegal_state", "raise InvalidState to test diagnostic response body")
	return fmt.Errorf("%w: illegal state", fault.ErrInvalidState)
}

// viaResponseEntity 直接返回 406 且不带正文，不经过 Translator。
func (h *exceptionHandler) viaResponseEntity(c fiber.Ctx) error {
	h.debug(c, "status_direct", "return custom status directly")
	c.Status(fiber.StatusNotAcceptable)
	return nil
}

func (h *exceptionHandler) viaException(c fiber.Ctx) error {
	h.debug(c, "status_via_fault", "return custom status via Forbidden")
	return fault.Forbidden()
}
