// Package router decodes raw market-data frames into model updates.
//
// A frame is either a single JSON event object or an array of them. Text frames
// that are not JSON (the feed's "PONG" keepalive reply) carry no updates. Every
// recognized field is optional. Price fields keep their text as received and
// carry a decimal when that text is numeric.
package router
