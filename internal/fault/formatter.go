package fault

import (
	"encoding/json"
	"net/http"
	"strings"
)

const (
	MediaTypePlain   = "text/plain"
	MediaTypeProblem = "application/problem+json"
)

// Formatter 把 Resolution 渲染为 Content-Type 与正文。
type Formatter interface {
	Format(req Request, res Resolution) (contentType string, body []byte, err error)
}

// PlainFormatter 输出固定正文，或三行诊断文本（类型、消息、请求描述）。
type PlainFormatter struct{}

func (PlainFormatter) Format(req Request, res Resolution) (string, []byte, error) {
	if res.FixedBody != "" {
		return MediaTypePlain + "; charset=utf-8", []byte(res.FixedBody), nil
	}

	var b strings.Builder
	b.WriteString("Exception occurred: ")
	b.WriteString(res.Kind)
	b.WriteString("\n")
	b.WriteString("Exception msg: ")
	b.WriteString(res.Message)
	b.WriteString("\n")
	b.WriteString("Request description: ")
	b.WriteString(req.Description())
	return MediaTypePlain + "; charset=utf-8", []byte(b.String()), nil
}

// ProblemDetail 对应 RFC 9457 problem 文档。
type ProblemDetail struct {
	Type      string `json:"type"`
	Title     string `json:"title"`
	Status    int    `json:"status"`
	Detail    string `json:"detail,omitempty"`
	Instance  string `json:"instance,omitempty"`
	Kind      string `json:"kind"`
	RequestID string `json:"request_id,omitempty"`
}

// ProblemFormatter 输出 application/problem+json；BaseURL 为空时 type 取 about:blank。
type ProblemFormatter struct {
	BaseURL string
}

func (f ProblemFormatter) Format(req Request, res Resolution) (string, []byte, error) {
	detail := res.Message
	if res.FixedBody != "" {
		detail = res.FixedBody
	}
	p := ProblemDetail{
		Type:      f.problemType(res.Kind),
		Title:     http.StatusText(res.Status),
		Status:    res.Status,
		Detail:    detail,
		Instance:  req.Path,
		Kind:      res.Kind,
		RequestID: req.RequestID,
	}
	body, err := json.Marshal(p)
	if err != nil {
		return "", nil, err
	}
	return MediaTypeProblem + "; charset=utf-8", body, nil
}

func (f ProblemFormatter) problemType(kind string) string {
	base := strings.TrimRight(strings.TrimSpace(f.BaseURL), "/")
	if base == "" {
		return "about:blank"
	}
	return base + "/" + slug(kind)
}

// slug 把 PaymentRequired 转为 payment-required。
func slug(kind string) string {
	kind = strings.TrimLeft(kind, "*")
	var b strings.Builder
	for i, r := range kind {
		switch {
		case r >= 'A' && r <= 'Z':
			if i > 0 {
				b.WriteByte('-')
			}
			b.WriteRune(r + ('a' - 'A'))
		case r == '.':
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}
