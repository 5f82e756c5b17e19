// Package interval maps wall-clock time onto the fixed-width windows that name
// recurring up/down markets.
//
// A window is identified by its start timestamp (Unix seconds, a multiple of the
// width). A boundary instant belongs to the window that starts at it, so the wait
// until the next boundary is always in [1, width] seconds.
//
// Slugs follow the template <asset>-updown-<width>-<start>, e.g.
// btc-updown-15m-1700000100.
package interval
