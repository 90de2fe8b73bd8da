package codec

import (
	"fmt"
	"io"
	"mime"
	"strings"

	"github.com/rabbitshop/bookcase/internal/book"
)

// TypeKey 是领域类型的稳定标识，Registry 以它为键。
type TypeKey string

// BookCollection 标识 book.Collection。
const BookCollection TypeKey = "book.Collection"

// MediaType 是 codec 对外声明的 type/subtype。
type MediaType struct {
	Type    string
	Subtype string
}

// ParseMediaType 解析 "text/csv; charset=utf-8" 这类取值，参数部分被忽略。
func ParseMediaType(raw string) (MediaType, error) {
	base, _, err := mime.ParseMediaType(strings.TrimSpace(raw))
	if err != nil {
		return MediaType{}, fmt.Errorf("invalid media type %q: %w", raw, err)
	}
	typ, sub, ok := strings.Cut(base, "/")
	if !ok || typ == "" || sub == "" {
		return MediaType{}, fmt.Errorf("invalid media type %q", raw)
	}
	return MediaType{Type: typ, Subtype: sub}, nil
}

func (m MediaType) String() string {
	return m.Type + "/" + m.Subtype
}

// Matches 判断 Content-Type 头是否声明了同一个 type/subtype，大小写不敏感。
func (m MediaType) Matches(header string) bool {
	if strings.TrimSpace(header) == "" {
		return false
	}
	other, err := ParseMediaType(header)
	if err != nil {
		return false
	}
	return strings.EqualFold(m.Type, other.Type) && strings.EqualFold(m.Subtype, other.Subtype)
}

// Codec 在线上字节流与 book.Collection 之间双向转换，绑定一个领域类型与一个媒体类型。
// 实现必须无状态，可被多个请求并发调用。
type Codec interface {
	// Supports 仅在 target 恰好是构造时绑定的领域类型时返回 true。
	Supports(target TypeKey) bool
	MediaType() MediaType
	// Decode 读完整个流并在所有路径上关闭它；无法解析时返回 MalformedPayload 故障。
	Decode(r io.ReadCloser) (book.Collection, error)
	// Encode 按集合顺序写出并在所有路径上 flush/关闭流；写失败返回 WriteFailure 故障。
	Encode(books book.Collection, w io.WriteCloser) error
}

// NopWriteCloser 为没有 Close 语义的 Writer（如 bytes.Buffer）补上空 Close。
func NopWriteCloser(w io.Writer) io.WriteCloser {
	return nopWriteCloser{Writer: w}
}

type nopWriteCloser struct {
	io.Writer
}

func (nopWriteCloser) Close() error { return nil }
