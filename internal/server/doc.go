// Package server hosts the Fiber HTTP boundary around the codec registry and
// the fault translator. NewApp builds a Fiber application whose ErrorHandler
// is the single fault.Translator, attaches recover and request-ID
// middlewares, and mounts the /bodies, /exceptions, /moreExceptions and
// /statuses endpoints. Handlers never render their own errors: they return
// faults and let the translator answer. The only shared mutable state is the
// book.Shelf slot injected through AppOptions.
package server
