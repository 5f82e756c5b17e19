// Package writer renders monitor reports as human-readable console blocks.
//
// Reports:
//   - Current market details (question, slug, end date, active flag, 24h volume, tokens)
//   - "No active market" notices and lookup failures
//   - Streamed price/quote updates (type, market, token, price, last, bid, ask)
//
// Only fields that are present are printed. Both monitors share one Console, so
// blocks are written atomically.
package writer
