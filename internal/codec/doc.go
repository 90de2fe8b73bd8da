// Package codec converts request and response bodies between wire formats
// and book.Collection. A Codec is bound to one domain type and advertises one
// media type; the Registry resolves the codec for a domain type and is built
// once at startup, after which it is read-only and safe for concurrent use.
// Formats (csv, yaml, toml, msgpack) register a factory in init(); the
// server builds exactly one of them from configuration.
package codec
