// Package api provides the client for the market catalog (Gamma) REST API.
//
// Endpoint:
//   - Production: https://gamma-api.polymarket.com
//
// The client issues exactly one request per call and never retries; retry
// policy belongs to the monitor loops that call it.
package api
