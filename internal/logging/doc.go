// Package logging builds the process logger.
//
// Logs are structured zap output on stderr with an ISO8601 "time" key, as JSON
// or console text. Components receive the logger in their constructors.
package logging
