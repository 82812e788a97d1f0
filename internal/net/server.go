// Package net is the websocket transport: player sessions on /play and the
// read-only spectator feed on /watch.
package net

import (
	"context"
	"errors"
	"net"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"
	"github.com/samber/oops"
	"go.uber.org/zap"
)

// Server accepts websocket connections and creates Sessions.
// New/dead sessions are communicated to the game loop via channels.
type Server struct {
	listener net.Listener
	http     *http.Server
	upgrader websocket.Upgrader
	nextID   atomic.Uint64
	newConns chan *Session
	deadCh   chan uint64 // session IDs of dead sessions
	opts     SessionOptions
	hub      *Hub
	log      *zap.Logger
}

func NewServer(bindAddr string, opts SessionOptions, hub *Hub, log *zap.Logger) (*Server, error) {
	ln, err := net.Listen("tcp", bindAddr)
	if err != nil {
		return nil, oops.In("net").With("bind", bindAddr).Wrapf(err, "listen")
	}
	s := &Server{
		listener: ln,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4 * 1024,
			WriteBufferSize: 16 * 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
		newConns: make(chan *Session, 64),
		deadCh:   make(chan uint64, 64),
		opts:     opts.withDefaults(),
		hub:      hub,
		log:      log,
	}
	s.http = &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	return s, nil
}

// Handler routes /play to player sessions and /watch to the spectator hub.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/play", s.handlePlay)
	if s.hub != nil {
		mux.HandleFunc("/watch", s.handleWatch)
	}
	return mux
}

func (s *Server) handlePlay(rw http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(rw, r, nil)
	if err != nil {
		s.log.Debug("upgrade failed", zap.Error(err))
		return
	}

	id := s.nextID.Add(1)
	sess := NewSession(conn, id, s.opts, s.log)
	sess.Start()

	s.log.Info("player connected", zap.Uint64("session", id), zap.String("ip", sess.IP))

	select {
	case s.newConns <- sess:
	default:
		s.log.Warn("session queue full, refusing connection")
		sess.Close()
	}
}

func (s *Server) handleWatch(rw http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(rw, r, nil)
	if err != nil {
		s.log.Debug("upgrade failed", zap.Error(err))
		return
	}
	s.hub.serve(conn, r)
}

// AcceptLoop serves HTTP until Shutdown. Run it in its own goroutine.
func (s *Server) AcceptLoop() {
	if err := s.http.Serve(s.listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
		s.log.Error("http serve failed", zap.Error(err))
	}
}

// NewSessions returns the channel of newly connected sessions.
func (s *Server) NewSessions() <-chan *Session {
	return s.newConns
}

// NotifyDead reports a dead session ID to the game loop.
func (s *Server) NotifyDead(sessionID uint64) {
	select {
	case s.deadCh <- sessionID:
	default:
	}
}

// DeadSessions returns the channel of dead session IDs.
func (s *Server) DeadSessions() <-chan uint64 {
	return s.deadCh
}

// Shutdown stops accepting new connections. Upgraded connections are not
// tracked by http.Server and are closed by their sessions.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.http.Shutdown(ctx)
}

// Addr returns the listener's address.
func (s *Server) Addr() net.Addr {
	return s.listener.Addr()
}
