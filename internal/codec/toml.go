package codec

import (
	"fmt"
	"io"

	"github.com/BurntSushi/toml"

	"github.com/rabbitshop/bookcase/internal/book"
	"github.com/rabbitshop/bookcase/internal/fault"
)

func init() {
	MustRegisterFormat(Format{
		Name:             "toml",
		DefaultMediaType: MediaType{Type: "application", Subtype: "toml"},
		New: func(opts Options) (Codec, error) {
			return NewTOML(opts.MediaType)
		},
	})
}

// tomlDocument 对应 `[[book]]` 表数组。
type tomlDocument struct {
	Books []record `toml:"book,omitempty"`
}

// TOML 将集合编码为 [[book]] 表数组，未知键视为格式错误。
type TOML struct {
	media MediaType
}

func NewTOML(media MediaType) (*TOML, error) {
	if media.Type == "" || media.Subtype == "" {
		return nil, fmt.Errorf("toml codec requires a media type")
	}
	return &TOML{media: media}, nil
}

func (c *TOML) Supports(target TypeKey) bool { return target == BookCollection }

func (c *TOML) MediaType() MediaType { return c.media }

func (c *TOML) Decode(r io.ReadCloser) (result book.Collection, err error) {
	defer func() {
		if closeErr := r.Close(); closeErr != nil && err == nil {
			err = fault.Wrap(fault.KindMalformedPayload, closeErr, "close payload")
		}
	}()

	var doc tomlDocument
	meta, decErr := toml.NewDecoder(r).Decode(&doc)
	if decErr != nil {
		return book.Collection{}, fault.Wrap(fault.KindMalformedPayload, decErr, "decode toml")
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return book.Collection{}, fault.Newf(fault.KindMalformedPayload, "unknown toml keys: %v", undecoded)
	}
	return fromRecords(doc.Books)
}

func (c *TOML) Encode(books book.Collection, w io.WriteCloser) (err error) {
	defer func() {
		if closeErr := w.Close(); closeErr != nil && err == nil {
			err = fault.Wrap(fault.KindWriteFailure, closeErr, "close output")
		}
	}()

	if encErr := toml.NewEncoder(w).Encode(tomlDocument{Books: toRecords(books)}); encErr != nil {
		return fault.Wrap(fault.KindWriteFailure, encErr, "encode toml")
	}
	return nil
}
