package model

import "time"

// -----------------------------------------------------------------------------
// Catalog Types
// -----------------------------------------------------------------------------

// Market is one instance of a recurring market as reported by the catalog.
type Market struct {
	ID          string              // Catalog market ID
	ConditionID string              // On-chain condition ID
	Slug        string              // e.g. "btc-updown-15m-1700000100"
	Question    string              // Display question
	EndDate     string              // ISO 8601 end time, as reported
	Active      *bool               // nil when the catalog omitted it
	Volume24h   Quote               // 24-hour volume
	Tokens      []Token             // Tradable sides, empty until listed
}

// Token is one tradable side of a market.
type Token struct {
	ID      string // CLOB token ID, the subscription key on the feed
	Outcome string // e.g. "Up" or "Down"; empty when unknown
}

// TokenIDs returns the token IDs in catalog order.
func (m Market) TokenIDs() []string {
	ids := make([]string, 0, len(m.Tokens))
	for _, t := range m.Tokens {
		ids = append(ids, t.ID)
	}
	return ids
}

// -----------------------------------------------------------------------------
// Stream Types
// -----------------------------------------------------------------------------

// Update is one event received from the market-data feed. Every field is
// optional; absent fields stay at their zero value.
type Update struct {
	Type    string // Message type, e.g. "book", "price_change", "last_trade_price"
	Market  string // Market (condition) identifier
	AssetID string // Token ID the event refers to

	Price Quote
	Last  Quote
	Bid   Quote
	Ask   Quote

	ReceivedAt time.Time // Local receive time of the frame carrying the event
}

// Empty reports whether the update carries none of the recognized fields.
func (u Update) Empty() bool {
	return u.Type == "" && u.Market == "" && u.AssetID == "" &&
		!u.Price.Present() && !u.Last.Present() && !u.Bid.Present() && !u.Ask.Present()
}
