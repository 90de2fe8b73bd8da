package book

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rabbitshop/bookcase/internal/fault"
)

func TestNewRejectsEmptyISBN(t *testing.T) {
	_, err := New("  ", "Untitled")
	require.Error(t, err)
	assert.True(t, fault.IsKind(err, fault.KindInvalidArgument))

	b, err := New("0001", "")
	require.NoError(t, err)
	assert.Equal(t, "0001", b.ISBN())
	assert.Empty(t, b.Title())
}

func TestNewRejectsLineBreaks(t *testing.T) {
	cases := []struct{ isbn, title string }{
		{"0001\n0002", "Title"},
		{"0001", "Title\nSecond"},
		{"0001", "Title\r"},
	}
	for _, tc := range cases {
		_, err := New(tc.isbn, tc.title)
		require.Error(t, err, "%q/%q", tc.isbn, tc.title)
		assert.True(t, fault.IsKind(err, fault.KindInvalidArgument))
	}
}

func TestBookValueEquality(t *testing.T) {
	assert.Equal(t, MustNew("0001", "Title One"), MustNew("0001", "Title One"))
	assert.NotEqual(t, MustNew("0001", "Title One"), MustNew("0001", "Title Two"))
}

func TestCollectionIsolatesBackingSlice(t *testing.T) {
	src := []Book{MustNew("0001", "A"), MustNew("0002", "B")}
	c := NewCollection(src...)

	src[0] = MustNew("9999", "Z")
	assert.Equal(t, "0001", c.At(0).ISBN())

	out := c.Books()
	out[1] = MustNew("8888", "Y")
	assert.Equal(t, "0002", c.At(1).ISBN())
}

func TestCollectionKeepsOrderAndDuplicates(t *testing.T) {
	c := NewCollection(MustNew("0002", "B"), MustNew("0001", "A"), MustNew("0002", "B"))

	require.Equal(t, 3, c.Len())
	assert.Equal(t, []string{"0002", "0001", "0002"}, []string{c.At(0).ISBN(), c.At(1).ISBN(), c.At(2).ISBN()})
}

func TestCollectionEqual(t *testing.T) {
	a := NewCollection(MustNew("1", "a"), MustNew("2", "b"))
	b := NewCollection(MustNew("1", "a"), MustNew("2", "b"))
	reordered := NewCollection(MustNew("2", "b"), MustNew("1", "a"))

	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(reordered))
	assert.False(t, a.Equal(Collection{}))
	assert.True(t, Collection{}.Equal(NewCollection()))
	assert.Nil(t, Collection{}.Books())
}
