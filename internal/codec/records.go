package codec

import (
	"github.com/rabbitshop/bookcase/internal/book"
	"github.com/rabbitshop/bookcase/internal/fault"
)

// record 是 yaml/toml/msgpack 共用的结构化表示。Title 使用指针以区分“缺失”与“空串”。
type record struct {
	ISBN  string  `yaml:"isbn" toml:"isbn" msgpack:"isbn"`
	Title *string `yaml:"title" toml:"title" msgpack:"title"`
}

func toRecords(c book.Collection) []record {
	books := c.Books()
	out := make([]record, len(books))
	for i, b := range books {
		title := b.Title()
		out[i] = record{ISBN: b.ISBN(), Title: &title}
	}
	return out
}

func fromRecords(rs []record) (book.Collection, error) {
	books := make([]book.Book, 0, len(rs))
	for i, r := range rs {
		if r.Title == nil {
			return book.Collection{}, fault.Newf(fault.KindMalformedPayload, "record %d: missing title", i)
		}
		b, err := book.New(r.ISBN, *r.Title)
		if err != nil {
			return book.Collection{}, fault.Newf(fault.KindMalformedPayload, "record %d: %v", i, err)
		}
		books = append(books, b)
	}
	return book.NewCollection(books...), nil
}
