package book

import (
	"fmt"
	"strings"

	"github.com/rabbitshop/bookcase/internal/fault"
)

// Book 是传输的最小实体，构造后不可修改，可直接用 == 比较。
type Book struct {
	isbn  string
	title string
}

// lineBreaks 在逐行编码的格式中无法往返，因此不允许出现在任何字段里。
const lineBreaks = "\r\n"

// New 校验 isbn 非空、字段不含换行后创建 Book。
func New(isbn, title string) (Book, error) {
	if strings.TrimSpace(isbn) == "" {
		return Book{}, fault.Newf(fault.KindInvalidArgument, "isbn must not be empty")
	}
	if strings.ContainsAny(isbn, lineBreaks) {
		return Book{}, fault.Newf(fault.KindInvalidArgument, "isbn %q contains a line break", isbn)
	}
	if strings.ContainsAny(title, lineBreaks) {
		return Book{}, fault.Newf(fault.KindInvalidArgument, "title %q contains a line break", title)
	}
	return Book{isbn: isbn, title: title}, nil
}

// MustNew 在校验失败时 panic，仅用于测试与固定数据。
func MustNew(isbn, title string) Book {
	b, err := New(isbn, title)
	if err != nil {
		panic(err)
	}
	return b
}

func (b Book) ISBN() string  { return b.isbn }
func (b Book) Title() string { return b.title }

func (b Book) String() string {
	return fmt.Sprintf("Book{isbn=%s, title=%s}", b.isbn, b.title)
}

// Collection 是有序的 Book 序列，顺序即线上顺序，允许重复 isbn。
// 零值是空集合；内部切片在构造与读取时都会复制，外部无法原地修改。
type Collection struct {
	books []Book
}

// NewCollection 基于已有序列创建集合。
func NewCollection(books ...Book) Collection {
	if len(books) == 0 {
		return Collection{}
	}
	return Collection{books: append([]Book(nil), books...)}
}

// Books 返回集合内容的副本。
func (c Collection) Books() []Book {
	if len(c.books) == 0 {
		return nil
	}
	return append([]Book(nil), c.books...)
}

func (c Collection) Len() int { return len(c.books) }

// At 返回第 i 本书，越界时 panic，与切片语义一致。
func (c Collection) At(i int) Book { return c.books[i] }

// Equal 按顺序逐个比较。
func (c Collection) Equal(other Collection) bool {
	if len(c.books) != len(other.books) {
		return false
	}
	for i := range c.books {
		if c.books[i] != other.books[i] {
			return false
		}
	}
	return true
}

func (c Collection) String() string {
	parts := make([]string, len(c.books))
	for i, b := range c.books {
		parts[i] = b.String()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}
