// Package logtail reads the end of marquee's log file for the in-app log
// view.
//
// # Reading
//
// Read returns the last N raw lines using a single pass and a ring buffer of
// N slots, so memory stays O(N) regardless of file size. A missing file is
// not an error; it simply has no lines yet.
//
// # Decoding
//
// The logger writes one JSON object per line:
//
//	{"level":"error","ts":"2026-03-01T20:15:00Z","caller":"state/store.go:194","msg":"movie search failed","query":"alien"}
//
// Parse turns a line into an Entry. The well-known keys (ts, level, msg,
// caller, logger, stacktrace) become struct fields; everything else lands in
// Fields as strings. Timestamps may be RFC 3339 strings or epoch seconds.
// Lines that are not JSON are kept as the message so nothing is hidden.
//
// # Filtering
//
// Entry.AtLeast compares levels using zap's ordering. Entries with an
// unknown level always pass so stray output stays visible.
//
// The package does no watching. The UI re-reads the file on its own tick
// while the log view is open.
package logtail
