package fault

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind 枚举业务侧可抛出的故障类型，每种类型在 taxonomy 中绑定固定的 HTTP 状态码。
type Kind string

const (
	KindForbidden            Kind = "Forbidden"
	KindPaymentRequired      Kind = "PaymentRequired"
	KindMalformedPayload     Kind = "MalformedPayload"
	KindInvalidArgument      Kind = "InvalidArgument"
	KindInvalidState         Kind = "InvalidState"
	KindNoMatchingCodec      Kind = "NoMatchingCodec"
	KindWriteFailure         Kind = "WriteFailure"
	KindUnsupportedMediaType Kind = "UnsupportedMediaType"
	KindNotAcceptable        Kind = "NotAcceptable"
)

// PaymentRequiredBody 是 PaymentRequired 的固定响应正文。
const PaymentRequiredBody = "A payment is required to use this API"

// 通用错误可以包装这两个哨兵值，由 Translator 归类为 406。
var (
	ErrInvalidArgument = errors.New("invalid argument")
	ErrInvalidState    = errors.New("invalid state")
)

// entry 描述某个 Kind 的状态码、默认消息以及可选的固定正文。
type entry struct {
	status    int
	message   string
	fixedBody string
}

var taxonomy = map[Kind]entry{
	KindForbidden:            {status: http.StatusForbidden, message: "Forbidden API"},
	KindPaymentRequired:      {status: http.StatusPaymentRequired, message: "payment required", fixedBody: PaymentRequiredBody},
	KindMalformedPayload:     {status: http.StatusConflict, message: "malformed payload"},
	KindInvalidArgument:      {status: http.StatusNotAcceptable},
	KindInvalidState:         {status: http.StatusNotAcceptable},
	KindNoMatchingCodec:      {status: http.StatusInternalServerError, message: "no matching codec"},
	KindWriteFailure:         {status: http.StatusInternalServerError, message: "write failure"},
	KindUnsupportedMediaType: {status: http.StatusUnsupportedMediaType, message: "unsupported media type"},
	KindNotAcceptable:        {status: http.StatusNotAcceptable, message: "not acceptable"},
}

// Status 返回 Kind 对应的目标状态码；未知 Kind 返回 500。
func (k Kind) Status() int {
	if e, ok := taxonomy[k]; ok {
		return e.status
	}
	return http.StatusInternalServerError
}

// Fault 是一次抛出的故障记录，构造后不可修改。
type Fault struct {
	kind    Kind
	message string
	cause   error
}

// New 以 Kind 默认消息创建故障。
func New(kind Kind) *Fault {
	return &Fault{kind: kind, message: taxonomy[kind].message}
}

// Newf 创建带自定义消息的故障。
func Newf(kind Kind, format string, args ...any) *Fault {
	return &Fault{kind: kind, message: fmt.Sprintf(format, args...)}
}

// Wrap 将底层错误挂在故障上，errors.Is/As 可以穿透到 cause。
func Wrap(kind Kind, cause error, format string, args ...any) *Fault {
	return &Fault{kind: kind, message: fmt.Sprintf(format, args...), cause: cause}
}

// Forbidden 对应 403。
func Forbidden() *Fault { return New(KindForbidden) }

// PaymentRequired 对应 402。
func PaymentRequired() *Fault { return New(KindPaymentRequired) }

func (f *Fault) Kind() Kind { return f.kind }

// Message 返回人类可读的描述，可能为空。
func (f *Fault) Message() string { return f.message }

func (f *Fault) Status() int { return f.kind.Status() }

// FixedBody 返回该类故障固定的响应正文，没有时返回空串。
func (f *Fault) FixedBody() string { return taxonomy[f.kind].fixedBody }

func (f *Fault) Error() string {
	switch {
	case f.message == "" && f.cause == nil:
		return string(f.kind)
	case f.cause == nil:
		return fmt.Sprintf("%s: %s", f.kind, f.message)
	case f.message == "":
		return fmt.Sprintf("%s: %v", f.kind, f.cause)
	default:
		return fmt.Sprintf("%s: %s: %v", f.kind, f.message, f.cause)
	}
}

func (f *Fault) Unwrap() error { return f.cause }

// Is 让 errors.Is(err, ErrInvalidArgument) 对 InvalidArgument/InvalidState 故障同样成立。
func (f *Fault) Is(target error) bool {
	switch target {
	case ErrInvalidArgument:
		return f.kind == KindInvalidArgument
	case ErrInvalidState:
		return f.kind == KindInvalidState
	}
	return false
}

// KindOf 提取错误链上的故障类型。
func KindOf(err error) (Kind, bool) {
	var f *Fault
	if errors.As(err, &f) {
		return f.kind, true
	}
	return "", false
}

// IsKind 判断错误链上是否存在指定类型的故障。
func IsKind(err error, kind Kind) bool {
	k, ok := KindOf(err)
	return ok && k == kind
}
