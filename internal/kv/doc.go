// Package kv provides the key-value persistence layer behind marquee's saved
// state.
//
// The selection store writes one JSON document under a single fixed key and
// reads it back on startup. Store hides where that document lives:
//
//   - file: one <key>.json per key in a data directory (default backend)
//   - sqlite: a kv table in <dir>/marquee.db (modernc.org/sqlite, no cgo)
//   - redis: plain string keys with an optional "<prefix>:" namespace
//   - memory: process-local map, used by tests and the -ephemeral flag
//
// Open picks the backend from Config.Backend. A missing key is reported as
// ok == false with a nil error, never as an error.
//
// Every backend assumes it is the only writer of a key. There is no
// versioning or compare-and-set.
package kv
