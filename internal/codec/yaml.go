package codec

import (
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/rabbitshop/bookcase/internal/book"
	"github.com/rabbitshop/bookcase/internal/fault"
)

func init() {
	MustRegisterFormat(Format{
		Name:             "yaml",
		DefaultMediaType: MediaType{Type: "application", Subtype: "yaml"},
		New: func(opts Options) (Codec, error) {
			return NewYAML(opts.MediaType)
		},
	})
}

// YAML 将集合编码为 `- {isbn, title}` 序列。
type YAML struct {
	media MediaType
}

func NewYAML(media MediaType) (*YAML, error) {
	if media.Type == "" || media.Subtype == "" {
		return nil, fmt.Errorf("yaml codec requires a media type")
	}
	return &YAML{media: media}, nil
}

func (c *YAML) Supports(target TypeKey) bool { return target == BookCollection }

func (c *YAML) MediaType() MediaType { return c.media }

func (c *YAML) Decode(r io.ReadCloser) (result book.Collection, err error) {
	defer func() {
		if closeErr := r.Close(); closeErr != nil && err == nil {
			err = fault.Wrap(fault.KindMalformedPayload, closeErr, "close payload")
		}
	}()

	var rs []record
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if decErr := dec.Decode(&rs); decErr != nil {
		if errors.Is(decErr, io.EOF) {
			return book.Collection{}, nil
		}
		return book.Collection{}, fault.Wrap(fault.KindMalformedPayload, decErr, "decode yaml")
	}
	// 只接受单个文档，后续任何内容都视为格式错误。
	var extra any
	if extraErr := dec.Decode(&extra); !errors.Is(extraErr, io.EOF) {
		return book.Collection{}, fault.Newf(fault.KindMalformedPayload, "trailing content after book list")
	}
	return fromRecords(rs)
}

func (c *YAML) Encode(books book.Collection, w io.WriteCloser) (err error) {
	defer func() {
		if closeErr := w.Close(); closeErr != nil && err == nil {
			err = fault.Wrap(fault.KindWriteFailure, closeErr, "close output")
		}
	}()

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if encErr := enc.Encode(toRecords(books)); encErr != nil {
		return fault.Wrap(fault.KindWriteFailure, encErr, "encode yaml")
	}
	if closeErr := enc.Close(); closeErr != nil {
		return fault.Wrap(fault.KindWriteFailure, closeErr, "flush yaml")
	}
	return nil
}
