package codec

import (
	"errors"
	"fmt"
	"io"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/rabbitshop/bookcase/internal/book"
	"github.com/rabbitshop/bookcase/internal/fault"
)

func init() {
	MustRegisterFormat(Format{
		Name:             "msgpack",
		DefaultMediaType: MediaType{Type: "application", Subtype: "msgpack"},
		New: func(opts Options) (Codec, error) {
			return NewMsgPack(opts.MediaType)
		},
	})
}

// MsgPack 将集合编码为 {isbn, title} map 数组。
type MsgPack struct {
	media MediaType
}

func NewMsgPack(media MediaType) (*MsgPack, error) {
	if media.Type == "" || media.Subtype == "" {
		return nil, fmt.Errorf("msgpack codec requires a media type")
	}
	return &MsgPack{media: media}, nil
}

func (c *MsgPack) Supports(target TypeKey) bool { return target == BookCollection }

func (c *MsgPack) MediaType() MediaType { return c.media }

func (c *MsgPack) Decode(r io.ReadCloser) (result book.Collection, err error) {
	defer func() {
		if closeErr := r.Close(); closeErr != nil && err == nil {
			err = fault.Wrap(fault.KindMalformedPayload, closeErr, "close payload")
		}
	}()

	var rs []record
	dec := msgpack.NewDecoder(r)
	dec.DisallowUnknownFields(true)
	if decErr := dec.Decode(&rs); decErr != nil {
		if errors.Is(decErr, io.EOF) {
			return book.Collection{}, nil
		}
		return book.Collection{}, fault.Wrap(fault.KindMalformedPayload, decErr, "decode msgpack")
	}
	if skipErr := dec.Skip(); !errors.Is(skipErr, io.EOF) {
		return book.Collection{}, fault.Newf(fault.KindMalformedPayload, "trailing content after book list")
	}
	return fromRecords(rs)
}

func (c *MsgPack) Encode(books book.Collection, w io.WriteCloser) (err error) {
	defer func() {
		if closeErr := w.Close(); closeErr != nil && err == nil {
			err = fault.Wrap(fault.KindWriteFailure, closeErr, "close output")
		}
	}()

	if encErr := msgpack.NewEncoder(w).Encode(toRecords(books)); encErr != nil {
		return fault.Wrap(fault.KindWriteFailure, encErr, "encode msgpack")
	}
	return nil
}
