// Package poller implements the Current-Market Monitor.
//
// The monitor:
//   - Derives the current market slug from the wall clock
//   - Looks it up in the catalog (not-closed filter) once per interval
//   - Reports the market, its absence, or the lookup failure
//   - Sleeps until the next interval boundary, re-reading the clock each time
//
// Lookup failures never stop the loop; the next check happens at the next boundary.
package poller
