package net

import (
	"fmt"
	"strings"
	"time"

	"github.com/gorilla/websocket"
)

// MaxFrameSize caps one inbound text frame. Longer input is a protocol error.
const MaxFrameSize = 4096

// ReadFrame reads one websocket text frame from conn and splits it into
// non-blank input lines. Binary frames are rejected.
func ReadFrame(conn *websocket.Conn) ([]string, error) {
	kind, payload, err := conn.ReadMessage()
	if err != nil {
		return nil, fmt.Errorf("read frame: %w", err)
	}
	if kind != websocket.TextMessage {
		return nil, fmt.Errorf("unexpected frame type %d", kind)
	}
	var lines []string
	for _, l := range strings.Split(string(payload), "\n") {
		if l = strings.TrimSpace(l); l != "" {
			lines = append(lines, l)
		}
	}
	return lines, nil
}

// WriteFrame writes text as one websocket text frame, giving up after
// timeout.
func WriteFrame(conn *websocket.Conn, text string, timeout time.Duration) error {
	if err := conn.SetWriteDeadline(time.Now().Add(timeout)); err != nil {
		return fmt.Errorf("set write deadline: %w", err)
	}
	if err := conn.WriteMessage(websocket.TextMessage, []byte(text)); err != nil {
		return fmt.Errorf("write frame (%d bytes): %w", len(text), err)
	}
	return nil
}
