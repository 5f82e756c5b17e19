// Package stream follows the next market on the streaming feed.
//
// Each cycle resolves the slug of the upcoming interval, looks its tokens up
// in the catalog, opens a fresh connection, subscribes every token and
// reports decoded updates until the connection ends. A constant backoff
// separates cycles, so a market that is not yet listed is simply retried.
//
//	Resolving -> (not listed | Subscribing) -> Streaming -> Disconnected -> backoff -> Resolving
package stream
