// Package connection implements the WebSocket client for the market-data feed.
//
// The client:
//   - Opens one connection per Connect call; a closed client is never reused
//   - Delivers every received frame with a local receive timestamp
//   - Sends the feed's text keepalive on a fixed interval
//   - Reports read errors, close frames and stale connections on Errors()
package connection
