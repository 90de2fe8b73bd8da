package codec

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rabbitshop/bookcase/internal/fault"
)

func TestFormatNamesIncludeBuiltins(t *testing.T) {
	assert.Equal(t, []string{"csv", "msgpack", "toml", "yaml"}, FormatNames())
}

func TestBuildAppliesDefaultMediaType(t *testing.T) {
	cases := map[string]string{
		"csv":     "text/csv",
		"CSV":     "text/csv",
		"yaml":    "application/yaml",
		"toml":    "application/toml",
		"msgpack": "application/msgpack",
	}
	for name, media := range cases {
		c, err := Build(name, Options{})
		require.NoError(t, err, name)
		assert.Equal(t, media, c.MediaType().String(), name)
		assert.True(t, c.Supports(BookCollection), name)
	}

	c, err := Build("csv", Options{MediaType: MediaType{Type: "text", Subtype: "x-books"}, Delimiter: '|'})
	require.NoError(t, err)
	assert.Equal(t, "text/x-books", c.MediaType().String())
	assert.Equal(t, "|", c.(*CSV).Delimiter())
}

func TestBuildUnknownFormat(t *testing.T) {
	_, err := Build("xml", Options{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "csv|msgpack|toml|yaml")
}

func TestRegisterFormatRejectsDuplicates(t *testing.T) {
	prev := formats
	formats = newFormatTable()
	t.Cleanup(func() { formats = prev })

	factory := func(Options) (Codec, error) { return nil, nil }
	require.NoError(t, RegisterFormat(Format{Name: "bin", New: factory}))
	assert.Error(t, RegisterFormat(Format{Name: "BIN", New: factory}))
	assert.Error(t, RegisterFormat(Format{Name: " ", New: factory}))
	assert.Error(t, RegisterFormat(Format{Name: "nofactory"}))
}

func TestStructuredFormatsRoundTrip(t *testing.T) {
	for _, name := range []string{"yaml", "toml", "msgpack"} {
		t.Run(name, func(t *testing.T) {
			c, err := Build(name, Options{})
			require.NoError(t, err)

			out := &trackingWriter{}
			require.NoError(t, c.Encode(sampleBooks(), out))
			assert.True(t, out.closed)

			in := &trackingReader{Reader: bytes.NewReader(out.Bytes())}
			decoded, err := c.Decode(in)
			require.NoError(t, err)
			assert.True(t, in.closed)
			assert.True(t, decoded.Equal(sampleBooks()), "got %s", decoded)
		})
	}
}

func TestStructuredFormatsEmptyPayload(t *testing.T) {
	for _, name := range []string{"yaml", "toml", "msgpack"} {
		c, err := Build(name, Options{})
		require.NoError(t, err)

		decoded, err := c.Decode(io.NopCloser(strings.NewReader("")))
		require.NoError(t, err, name)
		assert.Equal(t, 0, decoded.Len(), name)
	}
}

func TestStructuredFormatsMalformed(t *testing.T) {
	cases := []struct {
		name    string
		format  string
		payload string
	}{
		{"yaml missing title", "yaml", "- isbn: \"0001\"\n"},
		{"yaml title with line break", "yaml", "- isbn: \"0001\"\n  title: \"One\\nTwo\"\n"},
		{"toml empty isbn", "toml", "[[book]]\nisbn = \"\"\ntitle = \"x\"\n"},
		{"msgpack invalid code", "msgpack", "\xc1"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c, err := Build(tc.format, Options{})
			require.NoError(t, err)

			in := &trackingReader{Reader: strings.NewReader(tc.payload)}
			_, err = c.Decode(in)
			require.Error(t, err)
			assert.True(t, fault.IsKind(err, fault.KindMalformedPayload), "got %v", err)
			assert.True(t, in.closed)
		})
	}
}

func TestStructuredFormatsRejectTrailingContent(t *testing.T) {
	yamlCodec, err := Build("yaml", Options{})
	require.NoError(t, err)
	msgpackCodec, err := Build("msgpack", Options{})
	require.NoError(t, err)

	var encoded bytes.Buffer
	require.NoError(t, msgpackCodec.Encode(sampleBooks(), NopWriteCloser(&encoded)))

	cases := []struct {
		name    string
		codec   Codec
		payload string
	}{
		{"yaml second document", yamlCodec, "- isbn: \"0001\"\n  title: One\n---\n: : [ not yaml\n"},
		{"yaml second valid document", yamlCodec, "- isbn: \"0001\"\n  title: One\n---\n- isbn: \"0002\"\n  title: Two\n"},
		{"msgpack stray bytes", msgpackCodec, encoded.String() + "\xc1\xff\xff"},
		{"msgpack second value", msgpackCodec, encoded.String() + encoded.String()},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in := &trackingReader{Reader: strings.NewReader(tc.payload)}
			_, err := tc.codec.Decode(in)
			require.Error(t, err)
			assert.True(t, fault.IsKind(err, fault.KindMalformedPayload), "got %v", err)
			assert.True(t, in.closed)
		})
	}
}

func TestTOMLRejectsUnknownKeys(t *testing.T) {
	c, err := Build("toml", Options{})
	require.NoError(t, err)

	_, err = c.Decode(io.NopCloser(strings.NewReader("[[book]]\nisbn = \"1\"\ntitle = \"a\"\nauthor = \"b\"\n")))
	assert.True(t, fault.IsKind(err, fault.KindMalformedPayload))
}

func TestStructuredFormatsWriteFailure(t *testing.T) {
	for _, name := range []string{"yaml", "toml", "msgpack"} {
		c, err := Build(name, Options{})
		require.NoError(t, err)

		out := &trackingWriter{writeErr: errors.New("broken pipe")}
		err = c.Encode(sampleBooks(), out)
		require.Error(t, err, name)
		assert.True(t, fault.IsKind(err, fault.KindWriteFailure), name)
		assert.True(t, out.closed, name)
	}
}
