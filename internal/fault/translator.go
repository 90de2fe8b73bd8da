package fault

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/sirupsen/logrus"
)

// Request 是 Translator 所需的请求摘要，与具体 HTTP 框架解耦。
type Request struct {
	Method    string
	Path      string
	RequestID string
	// Problem 为 true 表示客户端协商到 application/problem+json。
	Problem bool
}

// Description 返回请求描述，格式为 uri=<path>。
func (r Request) Description() string {
	return "uri=" + r.Path
}

// Response 是翻译后的协议层响应；Body 为空时只发送状态码。
type Response struct {
	Status      int
	ContentType string
	Body        []byte
}

// Resolution 记录一次翻译的判定结果，供 Formatter 渲染正文。
type Resolution struct {
	Status int
	// Kind 是故障类型；未归类的通用错误使用其 Go 类型名。
	Kind string
	// Origin 是原始错误的 Go 类型，用于日志。
	Origin    string
	Message   string
	FixedBody string
}

// StatusResolver 允许框架错误声明自身的状态码，例如路由未命中的 404。
type StatusResolver func(err error) (int, bool)

// TranslatorOptions 控制 Translator 的依赖与正文格式。
type TranslatorOptions struct {
	Logger         *logrus.Logger
	StatusResolver StatusResolver
	ProblemBaseURL string
	// Plain/Problem 为空时使用内置格式。
	Plain   Formatter
	Problem Formatter
}

// Translator 把任意错误转换为状态码 + 正文，全进程只安装一份。
type Translator struct {
	logger   *logrus.Logger
	resolver StatusResolver
	plain    Formatter
	problem  Formatter
}

// NewTranslator 构建全局故障翻译器。
func NewTranslator(opts TranslatorOptions) (*Translator, error) {
	if opts.Logger == nil {
		return nil, errors.New("logger is required")
	}
	t := &Translator{
		logger:   opts.Logger,
		resolver: opts.StatusResolver,
		plain:    opts.Plain,
		problem:  opts.Problem,
	}
	if t.plain == nil {
		t.plain = PlainFormatter{}
	}
	if t.problem == nil {
		t.problem = ProblemFormatter{BaseURL: opts.ProblemBaseURL}
	}
	return t, nil
}

// Resolve 按 故障自带状态 → 框架声明状态 → 参数/状态类通用错误 406 → 500 的顺序判定。
func (t *Translator) Resolve(err error) Resolution {
	if err == nil {
		err = errors.New("unknown error")
	}
	res := Resolution{
		Origin:  fmt.Sprintf("%T", err),
		Message: err.Error(),
	}

	var f *Fault
	if errors.As(err, &f) {
		res.Status = f.Status()
		res.Kind = string(f.Kind())
		res.Message = f.Message()
		res.FixedBody = f.FixedBody()
		return res
	}

	if t.resolver != nil {
		if status, ok := t.resolver(err); ok {
			res.Status = status
			res.Kind = res.Origin
			return res
		}
	}

	switch {
	case errors.Is(err, ErrInvalidArgument):
		res.Status = http.StatusNotAcceptable
		res.Kind = string(KindInvalidArgument)
	case errors.Is(err, ErrInvalidState):
		res.Status = http.StatusNotAcceptable
		res.Kind = string(KindInvalidState)
	default:
		res.Status = http.StatusInternalServerError
		res.Kind = res.Origin
	}
	return res
}

// Translate 记录日志并生成响应。正文构建失败（error 或 panic）时退化为仅状态码。
func (t *Translator) Translate(req Request, err error) Response {
	res := t.Resolve(err)
	t.log(req, res)

	resp := Response{Status: res.Status}
	formatter := t.plain
	if req.Problem {
		formatter = t.problem
	}

	contentType, body, formatErr := safeFormat(formatter, req, res)
	if formatErr != nil {
		t.logger.WithFields(logrus.Fields{
			"action":     "translate_fault",
			"kind":       res.Kind,
			"status":     res.Status,
			"request_id": req.RequestID,
		}).Warnf("fault body degraded to status only: %v", formatErr)
		return resp
	}

	resp.ContentType = contentType
	resp.Body = body
	return resp
}

func (t *Translator) log(req Request, res Resolution) {
	entry := t.logger.WithFields(logrus.Fields{
		"action":     "translate_fault",
		"kind":       res.Kind,
		"origin":     res.Origin,
		"status":     res.Status,
		"method":     req.Method,
		"path":       req.Path,
		"request_id": req.RequestID,
	})
	if res.Status >= http.StatusInternalServerError {
		entry.Error(res.Message)
		return
	}
	entry.Warn(res.Message)
}

func safeFormat(f Formatter, req Request, res Resolution) (contentType string, body []byte, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("formatter panic: %v", r)
		}
	}()
	return f.Format(req, res)
}
