package codec

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/rabbitshop/bookcase/internal/book"
	"github.com/rabbitshop/bookcase/internal/fault"
)

const (
	formatCSV        = "csv"
	defaultDelimiter = ','
	// maxLineSize 限制单行长度，避免恶意请求撑爆 Scanner 缓冲区。
	maxLineSize = 1 << 20
)

func init() {
	MustRegisterFormat(Format{
		Name:             formatCSV,
		DefaultMediaType: MediaType{Type: "text", Subtype: "csv"},
		New: func(opts Options) (Codec, error) {
			return NewCSV(opts.MediaType, opts.Delimiter)
		},
	})
}

// CSV 以 `isbn<delim>title` 每行一条记录编码 book.Collection：无表头、无引号转义，
// 字段严格按分隔符切分。标题中若包含分隔符，该行在解码时会被判定为格式错误。
type CSV struct {
	media     MediaType
	delimiter string
}

// NewCSV 以声明的媒体类型与分隔符构建 codec；delimiter 为 0 时使用逗号。
func NewCSV(media MediaType, delimiter rune) (*CSV, error) {
	if media.Type == "" || media.Subtype == "" {
		return nil, fmt.Errorf("csv codec requires a media type")
	}
	if delimiter == 0 {
		delimiter = defaultDelimiter
	}
	switch delimiter {
	case '\n', '\r', '"':
		return nil, fmt.Errorf("csv delimiter %q is not allowed", delimiter)
	}
	return &CSV{media: media, delimiter: string(delimiter)}, nil
}

func (c *CSV) Supports(target TypeKey) bool { return target == BookCollection }

func (c *CSV) MediaType() MediaType { return c.media }

// Delimiter 返回当前分隔符，用于诊断输出。
func (c *CSV) Delimiter() string { return c.delimiter }

func (c *CSV) Decode(r io.ReadCloser) (result book.Collection, err error) {
	defer func() {
		if closeErr := r.Close(); closeErr != nil && err == nil {
			err = fault.Wrap(fault.KindMalformedPayload, closeErr, "close payload")
		}
	}()

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 4096), maxLineSize)

	var books []book.Book
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSuffix(scanner.Text(), "\r")
		if strings.TrimSpace(text) == "" {
			continue
		}
		fields := strings.Split(text, c.delimiter)
		if len(fields) != 2 {
			return book.Collection{}, fault.Newf(fault.KindMalformedPayload,
				"line %d: expected 2 fields separated by %q, got %d", line, c.delimiter, len(fields))
		}
		b, newErr := book.New(fields[0], fields[1])
		if newErr != nil {
			return book.Collection{}, fault.Newf(fault.KindMalformedPayload, "line %d: %v", line, newErr)
		}
		books = append(books, b)
	}
	if scanErr := scanner.Err(); scanErr != nil {
		return book.Collection{}, fault.Wrap(fault.KindMalformedPayload, scanErr, "read payload")
	}

	return book.NewCollection(books...), nil
}

func (c *CSV) Encode(books book.Collection, w io.WriteCloser) (err error) {
	defer func() {
		if closeErr := w.Close(); closeErr != nil && err == nil {
			err = fault.Wrap(fault.KindWriteFailure, closeErr, "close output")
		}
	}()

	bw := bufio.NewWriter(w)
	for i, b := range books.Books() {
		if _, writeErr := bw.WriteString(b.ISBN() + c.delimiter + b.Title() + "\n"); writeErr != nil {
			return fault.Wrap(fault.KindWriteFailure, writeErr, "write record %d", i)
		}
	}
	if flushErr := bw.Flush(); flushErr != nil {
		return fault.Wrap(fault.KindWriteFailure, flushErr, "flush output")
	}
	return nil
}
