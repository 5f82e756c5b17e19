package writer

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/rickgao/updown-monitor/internal/model"
)

const ruleWidth = 80

// Console writes report blocks to an io.Writer.
type Console struct {
	mu  sync.Mutex
	out io.Writer
}

// NewConsole creates a Console writing to out.
func NewConsole(out io.Writer) *Console {
	return &Console{out: out}
}

// ReportMarket writes the details of a market found in the catalog.
func (c *Console) ReportMarket(m model.Market) error {
	return c.write(marketLines(m))
}

// ReportNoMarket writes the notice for a slug with no open market.
func (c *Console) ReportNoMarket(slug string) error {
	return c.write([]string{fmt.Sprintf("No active market found for %s", slug)})
}

// ReportError writes a lookup failure for slug.
func (c *Console) ReportError(slug string, err error) error {
	return c.write([]string{fmt.Sprintf("Market lookup failed for %s: %v", slug, err)})
}

// ReportUpdate writes one streamed update.
func (c *Console) ReportUpdate(u model.Update) error {
	return c.write(updateLines(u))
}

func (c *Console) write(lines []string) error {
	var b strings.Builder
	for _, line := range lines {
		b.WriteString(line)
		b.WriteByte('\n')
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	_, err := io.WriteString(c.out, b.String())
	return err
}

// marketLines transforms a market into its report block.
func marketLines(m model.Market) []string {
	rule := strings.Repeat("=", ruleWidth)
	lines := []string{rule, "MARKET DETAILS", rule}

	if m.Question != "" {
		lines = append(lines, "Question:    "+m.Question)
	}
	if m.Slug != "" {
		lines = append(lines, "Slug:        "+m.Slug)
	}
	if m.EndDate != "" {
		lines = append(lines, "End Date:    "+m.EndDate)
	}
	if m.Active != nil {
		lines = append(lines, fmt.Sprintf("Active:      %t", *m.Active))
	}
	if m.Volume24h.Present() {
		lines = append(lines, "24h Volume:  "+m.Volume24h.String())
	}
	for _, tok := range m.Tokens {
		if tok.Outcome != "" {
			lines = append(lines, fmt.Sprintf("Token:       %s (%s)", tok.ID, tok.Outcome))
		} else {
			lines = append(lines, "Token:       "+tok.ID)
		}
	}

	return append(lines, rule)
}

// updateLines transforms a streamed update into its report block.
func updateLines(u model.Update) []string {
	lines := []string{"Market Update Received:"}

	if u.Type != "" {
		lines = append(lines, "   Type: "+u.Type)
	}
	if u.Market != "" {
		lines = append(lines, "   Market: "+u.Market)
	}
	if u.AssetID != "" {
		lines = append(lines, "   Token ID: "+u.AssetID)
	}
	if u.Price.Present() {
		lines = append(lines, "   Price: "+u.Price.String())
	}
	if u.Last.Present() {
		lines = append(lines, "   Last Price: "+u.Last.String())
	}
	if u.Bid.Present() {
		lines = append(lines, "   Bid: "+u.Bid.String())
	}
	if u.Ask.Present() {
		lines = append(lines, "   Ask: "+u.Ask.String())
	}

	return append(lines, strings.Repeat("-", ruleWidth))
}
