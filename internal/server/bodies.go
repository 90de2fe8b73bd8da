package server

import (
	"bytes"
	"io"

	"github.com/gofiber/fiber/v3"
	"github.com/sirupsen/logrus"

	"github.com/rabbitshop/bookcase/internal/book"
	"github.com/rabbitshop/bookcase/internal/codec"
	"github.com/rabbitshop/bookcase/internal/fault"
	"github.com/rabbitshop/bookcase/internal/logging"
)

// bodiesHandler 通过 codec registry 读写唯一的集合槽位。
type bodiesHandler struct {
	registry *codec.Registry
	shelf    *book.Shelf
	logger   *logrus.Logger
}

// getBookcase 以当前生效 codec 编码集合；空槽位编码为空正文。
func (h *bodiesHandler) getBookcase(c fiber.Ctx) error {
	h.logger.WithFields(logging.RequestFields("get_bookcase", RequestID(c), c.Method(), c.Path())).Debug("get bookcase")

	cdc, err := h.registry.Lookup(codec.BookCollection)
	if err != nil {
		return err
	}

	media := cdc.MediaType().String()
	if c.Accepts(media) == "" {
		return fault.Newf(fault.KindNotAcceptable, "accept %q does not allow %s", c.Get(fiber.HeaderAccept), media)
	}

	var buf bytes.Buffer
	if err := cdc.Encode(h.shelf.Load(), codec.NopWriteCloser(&buf)); err != nil {
		return err
	}

	c.Set(fiber.HeaderContentType, media)
	return c.Status(fiber.StatusOK).Send(buf.Bytes())
}

// putBookcase 解码请求体并整体替换槽位。
func (h *bodiesHandler) putBookcase(c fiber.Ctx) error {
	cdc, err := h.registry.Lookup(codec.BookCollection)
	if err != nil {
		return err
	}

	contentType := c.Get(fiber.HeaderContentType)
	if !cdc.MediaType().Matches(contentType) {
		return fault.Newf(fault.KindUnsupportedMediaType, "content type %q, expected %s", contentType, cdc.MediaType())
	}

	collection, err := cdc.Decode(io.NopCloser(bytes.NewReader(c.Body())))
	if err != nil {
		return err
	}

	previous := h.shelf.Replace(collection)

	fields := logging.RequestFields("set_bookcase", RequestID(c), c.Method(), c.Path())
	fields["books"] = collection.Len()
	fields["replaced"] = previous.Len()
	h.logger.WithFields(fields).Debugf("set bookcase: %s", collection)

	return c.SendStatus(fiber.StatusNoContent)
}
