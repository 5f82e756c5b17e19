package interval

import (
	"fmt"
	"time"
)

// Width is the window width in seconds (15 minutes).
const Width int64 = 900

// CurrentStart floors now (Unix seconds) to the start of its window.
func CurrentStart(now int64) int64 {
	return floor(now, Width)
}

// NextStart returns the start of the window after the one containing now.
func NextStart(now int64) int64 {
	return CurrentStart(now) + Width
}

// UntilNext returns the seconds from now to the next boundary, in [1, Width].
func UntilNext(now int64) int64 {
	return NextStart(now) - now
}

// floor rounds toward negative infinity so negative instants stay inside their window.
func floor(now, width int64) int64 {
	q := now / width
	if now%width < 0 {
		q--
	}
	return q * width
}

// Series names one recurring market, e.g. the BTC 15-minute up/down market.
type Series struct {
	Asset string
	Width time.Duration
}

// DefaultSeries is the BTC 15-minute up/down market.
var DefaultSeries = Series{Asset: "btc", Width: time.Duration(Width) * time.Second}

func (s Series) seconds() int64 {
	w := int64(s.Width / time.Second)
	if w <= 0 {
		return Width
	}
	return w
}

// Start returns the start timestamp of the window containing t.
func (s Series) Start(t time.Time) int64 {
	return floor(t.Unix(), s.seconds())
}

// Next returns the start timestamp of the window after the one containing t.
func (s Series) Next(t time.Time) int64 {
	return s.Start(t) + s.seconds()
}

// Until returns the time left until the next boundary. Sub-second precision is
// dropped so the result is a whole number of seconds in [1s, width].
func (s Series) Until(t time.Time) time.Duration {
	return time.Duration(s.Next(t)-t.Unix()) * time.Second
}

// Slug formats the market slug for the window starting at start.
func (s Series) Slug(start int64) string {
	return fmt.Sprintf("%s-updown-%s-%d", s.Asset, FormatWidth(s.Width), start)
}

// CurrentSlug is the slug of the window containing t.
func (s Series) CurrentSlug(t time.Time) string {
	return s.Slug(s.Start(t))
}

// NextSlug is the slug of the window after the one containing t.
func (s Series) NextSlug(t time.Time) string {
	return s.Slug(s.Next(t))
}

// FormatWidth renders a window width the way market slugs spell it: "15m", "1h", "1d".
func FormatWidth(d time.Duration) string {
	day := 24 * time.Hour
	switch {
	case d >= day && d%day == 0:
		return fmt.Sprintf("%dd", d/day)
	case d >= time.Hour && d%time.Hour == 0:
		return fmt.Sprintf("%dh", d/time.Hour)
	case d >= time.Minute && d%time.Minute == 0:
		return fmt.Sprintf("%dm", d/time.Minute)
	case d >= time.Second && d%time.Second == 0:
		return fmt.Sprintf("%ds", d/time.Second)
	}
	return d.String()
}
