// Package app provides the orchestration layer for marquee.
//
// # Overview
//
// This package wires configuration, logging, storage, the TMDB client, the
// selection store and the UI together. It is the composition root: nothing
// below it knows about config files or flags.
//
// # Startup
//
//	┌──────────────┐
//	│   Run()      │
//	└──────┬───────┘
//	       │
//	       ├─────> config.Load()      TOML + MARQUEE_* env
//	       ├─────> cfg.Validate()     reject unusable values
//	       ├─────> logging.New()      JSON file logger
//	       ├─────> kv.Open()          file | sqlite | redis | memory
//	       ├─────> tmdb.NewClient()   only when an API key is set
//	       ├─────> state.New()        selection store
//	       ├─────> restore()          Load, discard corrupt state
//	       └─────> ui.Run()           blocks until quit
//
// # Saved State
//
// A saved entry that fails validation is logged at warn level and deleted;
// the user starts with an empty shortlist rather than a crash. Any other
// storage error (unreachable redis, unreadable file) stops startup, since
// carrying on would overwrite state the user may still want.
//
// # Modes
//
//   - Reset: clear the saved entry on the configured backend and return
//   - Ephemeral: force the memory backend; nothing outlives the process
//
// Without an API key the app still runs. The shortlist, wheel and tally
// work; the search view explains how to configure a key.
package app
