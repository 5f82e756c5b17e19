package api

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/rickgao/updown-monitor/internal/model"
)

// TokenIDs returns the market's tradable token IDs. A nil market or a missing
// field yields an empty slice, meaning "not yet tradable".
func (m *Market) TokenIDs() []string {
	if m == nil {
		return []string{}
	}
	return parseField(m.ClobTokenIDs)
}

// Volume returns the 24-hour volume as received.
func (m *Market) Volume() model.Quote {
	if m == nil {
		return model.Quote{}
	}
	return model.ParseQuote(m.Volume24hr)
}

// ParseTokenIDs splits a clobTokenIds value into token IDs.
// "12345,67890" -> ["12345" "67890"], " 123 , 456 " -> ["123" "456"],
// `["123","456"]` -> ["123" "456"]. Empty fragments are dropped.
func ParseTokenIDs(raw string) []string {
	return parseList(raw)
}

// parseField reads a list field given either as a JSON array or as a string
// holding a list. Any other value yields an empty slice.
func parseField(raw json.RawMessage) []string {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return []string{}
	}

	switch raw[0] {
	case '"':
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return []string{}
		}
		return parseList(s)

	case '[':
		var items []json.RawMessage
		if err := json.Unmarshal(raw, &items); err != nil {
			return []string{}
		}
		out := []string{}
		for _, item := range items {
			if id := scalar(item); id != "" {
				out = append(out, id)
			}
		}
		return out
	}

	return []string{}
}

// scalar returns a JSON string (trimmed) or number as text; anything else is "".
func scalar(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return strings.TrimSpace(s)
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err == nil {
		return n.String()
	}
	return ""
}

// parseList decodes a JSON string array, falling back to a comma-separated list.
func parseList(raw string) []string {
	out := []string{}

	raw = strings.TrimSpace(raw)
	if raw == "" {
		return out
	}

	if strings.HasPrefix(raw, "[") {
		var items []string
		if err := json.Unmarshal([]byte(raw), &items); err == nil {
			for _, item := range items {
				if item = strings.TrimSpace(item); item != "" {
					out = append(out, item)
				}
			}
			return out
		}
	}

	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// ToModel converts the wire market into the shared model, pairing each token
// with its outcome label when the catalog provides one.
func (m *Market) ToModel() model.Market {
	ids := m.TokenIDs()
	outcomes := parseField(m.Outcomes)

	tokens := make([]model.Token, 0, len(ids))
	for i, id := range ids {
		tok := model.Token{ID: id}
		if i < len(outcomes) {
			tok.Outcome = outcomes[i]
		}
		tokens = append(tokens, tok)
	}

	return model.Market{
		ID:          m.ID,
		ConditionID: m.ConditionID,
		Slug:        m.Slug,
		Question:    m.Question,
		EndDate:     m.EndDate,
		Active:      m.Active,
		Volume24h:   m.Volume(),
		Tokens:      tokens,
	}
}
