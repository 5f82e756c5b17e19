// Package health serves a small HTTP status endpoint for the monitor process.
//
// Routes:
//   - GET /health: status, build version and uptime
//   - GET /slugs: current and next market slugs and seconds until the boundary
//
// It holds no market state: /slugs is recomputed from the clock on every request.
// The endpoint is optional; failing to listen is logged and never stops the process.
package health
