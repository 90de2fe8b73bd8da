package server

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/recover"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/rabbitshop/bookcase/internal/book"
	"github.com/rabbitshop/bookcase/internal/codec"
	"github.com/rabbitshop/bookcase/internal/fault"
)

// AppOptions 汇总 Fiber 应用的依赖，全部由 main 在启动阶段构建一次后注入。
type AppOptions struct {
	Logger     *logrus.Logger
	Registry   *codec.Registry
	Shelf      *book.Shelf
	Translator *fault.Translator

	BodyLimit    int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

const contextKeyRequestID = "_bookcase_request_id"

// NewApp builds a Fiber application with request-ID middleware, the global
// fault translator as ErrorHandler, and all endpoint groups mounted.
func NewApp(opts AppOptions) (*fiber.App, error) {
	if opts.Logger == nil {
		return nil, errors.New("logger is required")
	}
	if opts.Registry == nil {
		return nil, errors.New("codec registry is required")
	}
	if opts.Shelf == nil {
		return nil, errors.New("shelf is required")
	}
	if opts.Translator == nil {
		return nil, errors.New("fault translator is required")
	}

	app := fiber.New(fiber.Config{
		AppName:       "bookcase",
		CaseSensitive: true,
		ErrorHandler:  errorHandler(opts.Translator),
		BodyLimit:     opts.BodyLimit,
		ReadTimeout:   opts.ReadTimeout,
		WriteTimeout:  opts.WriteTimeout,
	})

	app.Use(requestContextMiddleware())
	app.Use(recover.New())

	bodies := &bodiesHandler{registry: opts.Registry, shelf: opts.Shelf, logger: opts.Logger}
	bodiesGroup := app.Group("/bodies")
	bodiesGroup.Get("/response", bodies.getBookcase)
	bodiesGroup.Put("/request", bodies.putBookcase)

	exceptions := &exceptionHandler{logger: opts.Logger}
	exceptionsGroup := app.Group("/exceptions")
	exceptionsGroup.Get("/forbidden", exceptions.forbidden)
	exceptionsGroup.Get("/payRequired", exceptions.paymentRequired)

	moreGroup := app.Group("/moreExceptions")
	moreGroup.Get("/illegalArg", exceptions.illegalArgument)
	moreGroup.Get("/illegalState", exceptions.illegalState)

	statusesGroup := app.Group("/statuses")
	statusesGroup.Get("/viaResponseEntity", exceptions.viaResponseEntity)
	statusesGroup.Get("/viaException", exceptions.viaException)

	return app, nil
}

// requestContextMiddleware 为每个请求生成请求 ID，并写入响应头。
func requestContextMiddleware() fiber.Handler {
	return func(c fiber.Ctx) error {
		reqID := uuid.NewString()
		c.Locals(contextKeyRequestID, reqID)
		c.Set("X-Request-ID", reqID)
		return c.Next()
	}
}

// RequestID returns the request identifier stored by the router middleware.
func RequestID(c fiber.Ctx) string {
	if value := c.Locals(contextKeyRequestID); value != nil {
		if reqID, ok := value.(string); ok {
			return reqID
		}
	}
	return ""
}
