package net

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/l1jgo/townsfolk/internal/command"
)

// SessionOptions are the per-connection limits shared by every session.
type SessionOptions struct {
	InQueueSize  int
	OutQueueSize int
	LinesPerSec  int // 0 = unlimited
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	PingInterval time.Duration
}

func (o SessionOptions) withDefaults() SessionOptions {
	if o.ReadTimeout <= 0 {
		o.ReadTimeout = 60 * time.Second
	}
	if o.WriteTimeout <= 0 {
		o.WriteTimeout = 10 * time.Second
	}
	if o.PingInterval <= 0 {
		o.PingInterval = o.ReadTimeout / 2
	}
	return o
}

// Session represents a single player connection. Network I/O runs in
// dedicated goroutines; input is consumed only from the game loop.
type Session struct {
	ID   uint64
	conn *websocket.Conn
	opts SessionOptions

	state atomic.Int32 // command.SessionState stored as int32

	InQueue  chan string // game loop reads input lines from here
	OutQueue chan string // writer goroutine reads from here

	IP string

	// Actor goroutines narrate into rooms concurrently with the game loop,
	// so the output buffer is locked.
	outMu  sync.Mutex
	outBuf []string

	closeCh   chan struct{}
	closeOnce sync.Once
	closed    atomic.Bool

	// per-second line rate limiter (readLoop goroutine only, no lock needed)
	lineCount   int
	lineResetAt int64

	log *zap.Logger
}

func NewSession(conn *websocket.Conn, id uint64, opts SessionOptions, log *zap.Logger) *Session {
	opts = opts.withDefaults()
	s := &Session{
		ID:       id,
		conn:     conn,
		opts:     opts,
		InQueue:  make(chan string, max(opts.InQueueSize, 1)),
		OutQueue: make(chan string, max(opts.OutQueueSize, 1)),
		IP:       conn.RemoteAddr().String(),
		closeCh:  make(chan struct{}),
		log:      log.With(zap.Uint64("session", id)),
	}
	s.state.Store(int32(command.StateNaming))
	return s
}

func (s *Session) SessionID() uint64 { return s.ID }

func (s *Session) State() command.SessionState {
	return command.SessionState(s.state.Load())
}

func (s *Session) SetState(st command.SessionState) {
	s.state.Store(int32(st))
}

// Start launches the reader and writer goroutines.
func (s *Session) Start() {
	s.conn.SetReadLimit(MaxFrameSize)
	s.conn.SetPongHandler(func(string) error {
		return s.conn.SetReadDeadline(time.Now().Add(s.opts.ReadTimeout))
	})
	go s.readLoop()
	go s.writeLoop()
}

// Send buffers a line for sending. Nothing reaches the socket until
// FlushOutput is called by the output system.
func (s *Session) Send(text string) {
	if s.closed.Load() || text == "" {
		return
	}
	s.outMu.Lock()
	s.outBuf = append(s.outBuf, text)
	s.outMu.Unlock()
}

// FlushOutput drains the output buffer to OutQueue for the writeLoop goroutine.
// Non-blocking: if OutQueue is full, the session is disconnected (backpressure).
func (s *Session) FlushOutput() {
	if !s.flush() {
		s.log.Warn("output queue full, dropping slow connection")
		s.Close()
	}
}

// flush reports false when OutQueue filled up; the rest of the buffer is
// discarded.
func (s *Session) flush() bool {
	s.outMu.Lock()
	buf := s.outBuf
	s.outBuf = nil
	s.outMu.Unlock()

	for _, text := range buf {
		select {
		case s.OutQueue <- text:
		default:
			return false
		}
	}
	return true
}

// Close marks the session closed once. Buffered output is queued first; the
// writer goroutine then sends what is queued, a close frame, and drops the
// connection.
func (s *Session) Close() {
	s.closeOnce.Do(func() {
		s.flush()
		s.closed.Store(true)
		s.SetState(command.StateDisconnecting)
		close(s.closeCh)
	})
}

func (s *Session) IsClosed() bool {
	return s.closed.Load()
}

// readLoop reads frames and pushes their lines onto InQueue for the game loop.
func (s *Session) readLoop() {
	defer s.Close()

	for {
		_ = s.conn.SetReadDeadline(time.Now().Add(s.opts.ReadTimeout))
		lines, err := ReadFrame(s.conn)
		if err != nil {
			if !s.closed.Load() {
				s.log.Debug("read error", zap.Error(err))
			}
			return
		}

		for _, line := range lines {
			if s.opts.LinesPerSec > 0 {
				now := time.Now().Unix()
				if now != s.lineResetAt {
					s.lineCount = 0
					s.lineResetAt = now
				}
				s.lineCount++
				if s.lineCount > s.opts.LinesPerSec {
					s.log.Warn("input rate exceeded, disconnecting", zap.Int("lps", s.lineCount))
					return
				}
			}

			// Block until InQueue has space or the session closes. Only this
			// client's reader waits.
			select {
			case s.InQueue <- line:
			case <-s.closeCh:
				return
			}
		}
	}
}

// writeLoop writes queued lines and keeps the connection alive with pings.
func (s *Session) writeLoop() {
	defer func() {
		s.Close()
		s.conn.Close()
	}()

	ping := time.NewTicker(s.opts.PingInterval)
	defer ping.Stop()

	for {
		select {
		case text := <-s.OutQueue:
			if err := WriteFrame(s.conn, text, s.opts.WriteTimeout); err != nil {
				if !s.closed.Load() {
					s.log.Debug("write error", zap.Error(err))
				}
				return
			}
		case <-ping.C:
			if err := s.conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(s.opts.WriteTimeout)); err != nil {
				return
			}
		case <-s.closeCh:
			s.drain()
			return
		}
	}
}

// drain writes what is left in OutQueue and says goodbye.
func (s *Session) drain() {
	for {
		select {
		case text := <-s.OutQueue:
			if WriteFrame(s.conn, text, s.opts.WriteTimeout) != nil {
				return
			}
		default:
			_ = s.conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, "bye"),
				time.Now().Add(time.Second))
			return
		}
	}
}
