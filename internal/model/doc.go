// Package model defines the shared data types used across the monitor.
//
// Conventions:
//   - Prices and volumes: Quote, the text as received plus a shopspring decimal when it parses
//   - Optional text fields: empty string when absent
//   - Timestamps: time.Time for local receive times, Unix seconds for interval starts
package model
