package api

import "encoding/json"

// Market represents a market object from GET /markets.
type Market struct {
	ID          string `json:"id"`
	ConditionID string `json:"conditionId"`
	Question    string `json:"question"`
	Slug        string `json:"slug"`
	EndDate     string `json:"endDate"`
	Active      *bool  `json:"active"`
	Closed      *bool  `json:"closed"`

	// Loosely typed fields: their encoding varies between endpoint versions, so
	// they are decoded on access and an odd value never fails the lookup.

	// Number or numeric string.
	Volume24hr json.RawMessage `json:"volume24hr"`

	// Token IDs and outcome labels: a JSON array, or a string holding a
	// JSON-encoded array or a comma list.
	ClobTokenIDs json.RawMessage `json:"clobTokenIds"`
	Outcomes     json.RawMessage `json:"outcomes"`
}
