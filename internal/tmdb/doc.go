// Package tmdb provides an HTTP client for The Movie Database (TMDB) v3 API.
//
// # Overview
//
// This package is the catalog client behind marquee's search box. It issues
// movie searches against TMDB and decodes the results into Movie values that
// the selection store keeps in its search results and shortlist.
//
// # Architecture
//
// The package is split into two files:
//
//   - client.go: HTTP client implementation and request/response handling
//   - types.go: Data structures mirroring the TMDB search schema
//
// # Client Usage
//
//	client, err := tmdb.NewClient(tmdb.Options{
//		BaseURL: cfg.TMDB.BaseURL,
//		APIKey:  cfg.TMDB.APIKey,
//	})
//	if err != nil {
//		return fmt.Errorf("init tmdb client: %w", err)
//	}
//
//	movies, err := client.SearchMovies(ctx, "the matrix")
//
// # API Endpoints
//
// Only one read-only endpoint is used:
//
//   - GET {base}/search/movie?api_key=..&query=..&language=en-US&page=1
//
// The base URL may carry a path prefix (TMDB's is "/3"); request paths are
// joined onto it rather than resolved against the host root.
//
// # Error Handling
//
//   - Missing API key: ErrMissingAPIKey from NewClient
//   - Network errors: wrapped as "execute request: ..." with the api key
//     redacted from the embedded URL
//   - HTTP errors: *StatusError with TMDB's status_message when the body has one
//   - Deserialization errors: wrapped as "decode response: ..."
//
// The client never retries. The selection store swallows search failures into
// an empty result list, so callers of SearchMovies see every error.
//
// # Thread Safety
//
// Client is safe for concurrent use; it holds no mutable state beyond the
// underlying http.Client.
//
// # Testing Considerations
//
// Use httptest.Server and pass its URL as BaseURL. Code that only needs search
// should depend on the Searcher interface.
package tmdb
