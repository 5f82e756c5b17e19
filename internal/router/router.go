package router

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"sync/atomic"

	"github.com/rickgao/updown-monitor/internal/connection"
	"github.com/rickgao/updown-monitor/internal/model"
)

// Stats contains decoding counters for one router.
type Stats struct {
	MessagesReceived int64
	UpdatesRouted    int64
	ParseErrors      int64
	SkippedMessages  int64
}

// Router decodes frames from one connection and keeps counters for them.
type Router struct {
	received    atomic.Int64
	routed      atomic.Int64
	parseErrors atomic.Int64
	skipped     atomic.Int64
}

// New creates a Router with zeroed counters.
func New() *Router {
	return &Router{}
}

// Route decodes one frame. It returns no updates and no error for frames that
// are not JSON events; malformed JSON is an error the caller may skip.
func (r *Router) Route(msg connection.TimestampedMessage) ([]model.Update, error) {
	r.received.Add(1)

	updates, err := Parse(msg)
	if err != nil {
		r.parseErrors.Add(1)
		return nil, err
	}
	if len(updates) == 0 {
		r.skipped.Add(1)
		return nil, nil
	}

	r.routed.Add(int64(len(updates)))
	return updates, nil
}

// Stats returns current counters.
func (r *Router) Stats() Stats {
	return Stats{
		MessagesReceived: r.received.Load(),
		UpdatesRouted:    r.routed.Load(),
		ParseErrors:      r.parseErrors.Load(),
		SkippedMessages:  r.skipped.Load(),
	}
}

// Parse decodes a frame into updates without touching any counters.
func Parse(msg connection.TimestampedMessage) ([]model.Update, error) {
	data := bytes.TrimSpace(msg.Data)
	if len(data) == 0 {
		return nil, nil
	}

	switch data[0] {
	case '{':
		var obj eventWire
		if err := json.Unmarshal(data, &obj); err != nil {
			return nil, fmt.Errorf("decode event: %w", err)
		}
		return appendUpdate(nil, obj, msg), nil

	case '[':
		var arr []json.RawMessage
		if err := json.Unmarshal(data, &arr); err != nil {
			return nil, fmt.Errorf("decode event array: %w", err)
		}
		var updates []model.Update
		for _, item := range arr {
			var obj eventWire
			if err := json.Unmarshal(item, &obj); err != nil {
				// Non-object element; nothing recognizable in it.
				continue
			}
			updates = appendUpdate(updates, obj, msg)
		}
		return updates, nil
	}

	return nil, nil
}

// eventWire is the wire format for a feed event; every field is optional.
type eventWire map[string]json.RawMessage

func appendUpdate(updates []model.Update, obj eventWire, msg connection.TimestampedMessage) []model.Update {
	u := model.Update{
		Type:       obj.text("type"),
		Market:     obj.text("market"),
		AssetID:    obj.text("asset_id"),
		Price:      obj.quote("price"),
		Last:       obj.quote("last"),
		Bid:        obj.quote("bid"),
		Ask:        obj.quote("ask"),
		ReceivedAt: msg.ReceivedAt,
	}
	if u.Type == "" {
		u.Type = obj.text("event_type")
	}

	if u.Empty() {
		return updates
	}
	return append(updates, u)
}

// text returns a string field, or the raw JSON text for non-string scalars.
func (e eventWire) text(key string) string {
	raw, ok := e[key]
	if !ok {
		return ""
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}

	t := strings.TrimSpace(string(raw))
	if t == "null" {
		return ""
	}
	return t
}

// quote returns a numeric field with its text as received.
func (e eventWire) quote(key string) model.Quote {
	return model.ParseQuote(e[key])
}
