package connection

import (
	"errors"
	"time"

	"github.com/gorilla/websocket"
)

// Errors
var (
	ErrNotConnected    = errors.New("not connected")
	ErrStaleConnection = errors.New("connection stale (nothing read)")
	ErrAlreadyClosed   = errors.New("already closed")
)

// MarketChannel is the feed channel carrying price and quote events.
const MarketChannel = "market"

// TimestampedMessage wraps raw message data with receive timestamp.
type TimestampedMessage struct {
	Data       []byte    // Raw message bytes from WebSocket
	ReceivedAt time.Time // Local timestamp when ReadMessage() returned
}

// SubscribeRequest subscribes one token on a channel.
type SubscribeRequest struct {
	Type    string `json:"type"`    // always "subscribe"
	Channel string `json:"channel"` // e.g. "market"
	Market  string `json:"market"`  // token ID
}

// NewMarketSubscription builds the subscribe request for one token on the market channel.
func NewMarketSubscription(tokenID string) SubscribeRequest {
	return SubscribeRequest{
		Type:    "subscribe",
		Channel: MarketChannel,
		Market:  tokenID,
	}
}

// IsCloseFrame reports whether err was caused by a close frame from the peer.
// A connection dropped without one (1006) is not a close frame.
func IsCloseFrame(err error) bool {
	var ce *websocket.CloseError
	return errors.As(err, &ce) && ce.Code != websocket.CloseAbnormalClosure
}

// ClientConfig configures a WebSocket client.
type ClientConfig struct {
	URL              string        // WebSocket URL (e.g., wss://ws-subscriptions-clob.polymarket.com/ws/market)
	KeepaliveMessage string        // Text frame sent every PingInterval; empty sends a ping control frame
	PingInterval     time.Duration // Keepalive interval
	PingTimeout      time.Duration // Max time without any read before the connection is stale (0 = never)
	WriteTimeout     time.Duration // Write deadline for sends
	HandshakeTimeout time.Duration // Dial handshake timeout
	BufferSize       int           // Message channel buffer size
}

// DefaultClientConfig returns sensible defaults.
func DefaultClientConfig() ClientConfig {
	return ClientConfig{
		KeepaliveMessage: "PING",
		PingInterval:     10 * time.Second,
		PingTimeout:      60 * time.Second,
		WriteTimeout:     5 * time.Second,
		HandshakeTimeout: 10 * time.Second,
		BufferSize:       1000,
	}
}
