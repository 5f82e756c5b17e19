package model

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/shopspring/decimal"
)

// Quote is a numeric field as received from the catalog or the feed. Raw keeps
// the value's text so odd values are still reported; Value is set only when
// that text is a decimal.
type Quote struct {
	Value decimal.NullDecimal
	Raw   string // Strings unquoted, other JSON values verbatim; empty when absent
}

// NewQuote builds a quote from a decimal.
func NewQuote(d decimal.Decimal) Quote {
	return Quote{Value: decimal.NewNullDecimal(d), Raw: d.String()}
}

// ParseQuote reads a JSON value into a Quote. Absent and null values give the
// zero Quote; an empty string is kept as `""`.
func ParseQuote(raw json.RawMessage) Quote {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return Quote{}
	}

	text := string(raw)
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		text = strings.TrimSpace(s)
		if text == "" {
			return Quote{Raw: `""`}
		}
	} else {
		var compact bytes.Buffer
		if err := json.Compact(&compact, raw); err == nil {
			text = compact.String()
		}
	}

	q := Quote{Raw: text}
	if d, err := decimal.NewFromString(text); err == nil {
		q.Value = decimal.NewNullDecimal(d)
	}
	return q
}

// Present reports whether the field was present.
func (q Quote) Present() bool {
	return q.Raw != "" || q.Value.Valid
}

// String returns the value as received, or the decimal when no text was kept.
func (q Quote) String() string {
	if q.Raw != "" {
		return q.Raw
	}
	if q.Value.Valid {
		return q.Value.Decimal.String()
	}
	return ""
}
