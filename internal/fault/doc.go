// Package fault defines the failure taxonomy raised by codecs and endpoint
// handlers, and the single Translator that turns any error into an HTTP
// status plus body. Each Kind carries its intended status as data; generic
// errors wrapping ErrInvalidArgument/ErrInvalidState are classified as 406 and
// everything else falls back to 500. The package does not depend on the HTTP
// framework: the server package adapts Fiber requests into Request values and
// writes the returned Response.
package fault
