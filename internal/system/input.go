package system

import (
	"errors"
	"time"

	"github.com/l1jgo/townsfolk/internal/command"
	coresys "github.com/l1jgo/townsfolk/internal/core/system"
	"github.com/l1jgo/townsfolk/internal/net"
	"go.uber.org/zap"
)

// SessionHooks let the player surface react to the session life cycle
// without the input system knowing about commands.
type SessionHooks struct {
	Connect    func(sess *net.Session) // greets a new session
	Disconnect func(sess *net.Session) // cleans up after a closed one
	Unhandled  func(sess *net.Session) // replies to input nothing understood
}

// InputSystem drains input lines from all sessions and dispatches them
// through the command registry. Phase 0 (Input).
type InputSystem struct {
	netServer  *net.Server
	registry   *command.Registry
	store      *net.SessionStore
	maxPerTick int
	hooks      SessionHooks
	log        *zap.Logger
}

func NewInputSystem(
	netServer *net.Server,
	registry *command.Registry,
	store *net.SessionStore,
	maxPerTick int,
	hooks SessionHooks,
	log *zap.Logger,
) *InputSystem {
	return &InputSystem{
		netServer:  netServer,
		registry:   registry,
		store:      store,
		maxPerTick: max(maxPerTick, 1),
		hooks:      hooks,
		log:        log,
	}
}

func (s *InputSystem) Phase() coresys.Phase { return coresys.PhaseInput }

func (s *InputSystem) Update(_ time.Duration) {
	// Accept new sessions
	for {
		select {
		case sess := <-s.netServer.NewSessions():
			s.store.Add(sess)
			if s.hooks.Connect != nil {
				s.hooks.Connect(sess)
			}
		default:
			goto doneNew
		}
	}
doneNew:

	// Process dead sessions
	for {
		select {
		case id := <-s.netServer.DeadSessions():
			s.store.Remove(id)
		default:
			goto doneDead
		}
	}
doneDead:

	// Drain lines from each session (up to maxPerTick per session)
	for id, sess := range s.store.Raw() {
		if sess.IsClosed() {
			sess.FlushOutput()
			if s.hooks.Disconnect != nil {
				s.hooks.Disconnect(sess)
			}
			s.netServer.NotifyDead(id)
			s.store.Remove(id)
			continue
		}

		for i := 0; i < s.maxPerTick; i++ {
			select {
			case line := <-sess.InQueue:
				s.dispatch(sess, line)
			default:
				goto nextSession
			}
		}
	nextSession:
	}

	// Early flush: replies to this tick's input go out before the later
	// phases run. OutputSystem flushes again in Phase 4.
	s.store.ForEach(func(sess *net.Session) {
		sess.FlushOutput()
	})
}

func (s *InputSystem) dispatch(sess *net.Session, line string) {
	cmd, err := command.Parse(line)
	if err != nil {
		s.unhandled(sess)
		s.log.Debug("unparseable input", zap.Uint64("session", sess.ID), zap.Error(err))
		return
	}
	if err := s.registry.Dispatch(sess, sess.State(), cmd); err != nil {
		if errors.Is(err, command.ErrUnknownVerb) {
			s.unhandled(sess)
		}
		s.log.Debug("command dispatch error",
			zap.Uint64("session", sess.ID),
			zap.Error(err),
		)
	}
}

func (s *InputSystem) unhandled(sess *net.Session) {
	if s.hooks.Unhandled != nil {
		s.hooks.Unhandled(sess)
	}
}

// OutputSystem flushes every session's buffered output once per tick.
// Phase 4 (Output).
type OutputSystem struct {
	store *net.SessionStore
}

func NewOutputSystem(store *net.SessionStore) *OutputSystem {
	return &OutputSystem{store: store}
}

func (s *OutputSystem) Phase() coresys.Phase { return coresys.PhaseOutput }

func (s *OutputSystem) Update(_ time.Duration) {
	s.store.ForEach(func(sess *net.Session) {
		sess.FlushOutput()
	})
}
