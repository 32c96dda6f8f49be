// Package config loads marquee's runtime configuration.
//
// # Overview
//
// Configuration comes from three layers, later layers winning:
//
//  1. Built-in defaults
//  2. A TOML file, ~/.config/marquee/config.toml unless a path is given
//  3. Environment variables prefixed MARQUEE_
//
// A .env file in the working directory is read before anything else. It only
// fills variables that are not already set, so the shell always wins.
//
// A missing config file is NOT an error. marquee works out of the box with
// the file backend and no API key; search simply stays disabled until a key
// is supplied.
//
// # TOML Format
//
//	[tmdb]
//	api_key  = "..."
//	base_url = "https://api.themoviedb.org/3"
//	language = "en-US"
//	timeout  = "10s"
//
//	[storage]
//	backend = "file"            # file | sqlite | redis | memory
//	path    = "~/.local/share/marquee"
//	key     = "movieRandomizer"
//	redis_addr     = "127.0.0.1:6379"
//	redis_password = ""
//	redis_db       = 0
//	redis_prefix   = "marquee"
//
//	[log]
//	path  = "~/.local/state/marquee/marquee.log"
//	level = "info"
//
// # Environment Variables
//
// Every key maps to MARQUEE_<SECTION>_<KEY>, for example
// MARQUEE_STORAGE_BACKEND or MARQUEE_LOG_LEVEL. The API key additionally
// accepts the conventional TMDB_API_KEY. Empty variables are ignored.
//
// # Normalization
//
// Blank strings fall back to their defaults, backend and level names are
// lower-cased, and storage.path and log.path get tilde expansion and are made
// absolute.
//
// # Validation
//
// Load only fails on unreadable or unparsable input. Validate checks the
// values themselves (backend name, redis address, timeout, log level) and
// joins every problem into one error so the user can fix them in one pass.
// SearchEnabled is separate because a missing key degrades the app instead of
// stopping it.
package config
