package sink

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/rickgao/woo-sync/internal/model"
)

// WebSocketSink pushes each order as a JSON text frame to a notification
// endpoint. The connection is opened on first use and reopened on the next
// order after any write failure.
type WebSocketSink struct {
	url          string
	writeTimeout time.Duration
	dialer       websocket.Dialer
	logger       *slog.Logger

	mu   sync.Mutex
	conn *websocket.Conn
}

// NewWebSocketSink creates a WebSocketSink for url.
func NewWebSocketSink(url string, writeTimeout time.Duration, logger *slog.Logger) *WebSocketSink {
	if logger == nil {
		logger = slog.Default()
	}
	if writeTimeout <= 0 {
		writeTimeout = 10 * time.Second
	}
	return &WebSocketSink{
		url:          url,
		writeTimeout: writeTimeout,
		dialer:       websocket.Dialer{HandshakeTimeout: 10 * time.Second},
		logger:       logger,
	}
}

func (s *WebSocketSink) HandleOrder(ctx context.Context, order model.Order) (bool, error) {
	data, err := json.Marshal(order)
	if err != nil {
		return false, fmt.Errorf("encode order %d: %w", order.ID, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.conn == nil {
		conn, _, err := s.dialer.DialContext(ctx, s.url, nil)
		if err != nil {
			return false, fmt.Errorf("dial %s: %w", s.url, err)
		}
		s.conn = conn
		s.logger.Debug("websocket connected", "url", s.url)
	}

	s.conn.SetWriteDeadline(time.Now().Add(s.writeTimeout))
	if err := s.conn.WriteMessage(websocket.TextMessage, data); err != nil {
		s.conn.Close()
		s.conn = nil
		return false, fmt.Errorf("push order %d: %w", order.ID, err)
	}

	return true, nil
}

// Close sends a close frame and closes the connection, if one is open.
func (s *WebSocketSink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.conn == nil {
		return nil
	}

	s.conn.WriteControl(
		websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
		time.Now().Add(time.Second),
	)
	err := s.conn.Close()
	s.conn = nil
	return err
}
