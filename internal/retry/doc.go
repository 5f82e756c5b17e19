// Package retry runs work forever with a constant delay between attempts.
//
// The delay is applied after every attempt, successful or not, so a loop whose
// work returns immediately never spins. Only context cancellation stops it.
package retry
