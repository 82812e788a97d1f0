package command

import (
	"errors"
	"fmt"

	"go.uber.org/zap"
)

// SessionState is the session's current protocol phase.
type SessionState int

const (
	StateNaming        SessionState = iota // connected, waiting for a name
	StateInWorld                           // playing
	StateDisconnecting
)

func (s SessionState) String() string {
	switch s {
	case StateNaming:
		return "Naming"
	case StateInWorld:
		return "InWorld"
	case StateDisconnecting:
		return "Disconnecting"
	default:
		return fmt.Sprintf("Unknown(%d)", int(s))
	}
}

// ErrUnknownVerb is returned by Dispatch when no handler matches and no
// fallback is set.
var ErrUnknownVerb = errors.New("unknown verb")

// HandlerFunc is the callback signature for command handlers.
// The session pointer is passed as an opaque interface to avoid import cycles.
type HandlerFunc func(sess any, cmd *Command)

type handlerEntry struct {
	fn            HandlerFunc
	allowedStates map[SessionState]bool
}

// Registry maps verbs to handlers with state-based access control.
type Registry struct {
	handlers map[string]*handlerEntry
	fallback map[SessionState]HandlerFunc
	log      *zap.Logger
}

func NewRegistry(log *zap.Logger) *Registry {
	return &Registry{
		handlers: make(map[string]*handlerEntry),
		fallback: make(map[SessionState]HandlerFunc),
		log:      log,
	}
}

// Register maps one or more verbs to a handler, restricted to the given
// session states.
func (reg *Registry) Register(verbs []string, states []SessionState, fn HandlerFunc) {
	allowed := make(map[SessionState]bool, len(states))
	for _, s := range states {
		allowed[s] = true
	}
	e := &handlerEntry{fn: fn, allowedStates: allowed}
	for _, v := range verbs {
		reg.handlers[v] = e
	}
}

// Fallback handles any line in state that matched no registered verb. In the
// naming state the whole line is the candidate name.
func (reg *Registry) Fallback(state SessionState, fn HandlerFunc) {
	reg.fallback[state] = fn
}

// Dispatch routes cmd to its handler after validating the session state.
// A bare direction word is treated as "go <direction>".
func (reg *Registry) Dispatch(sess any, state SessionState, cmd *Command) error {
	if IsMovement(cmd.Verb) {
		cmd = &Command{Raw: cmd.Raw, Verb: VerbGo, Args: append([]string{cmd.Verb}, cmd.Args...)}
	}
	reg.log.Debug("command received",
		zap.String("verb", cmd.Verb),
		zap.Int("args", len(cmd.Args)),
		zap.String("state", state.String()),
	)

	entry, ok := reg.handlers[cmd.Verb]
	if !ok || !entry.allowedStates[state] {
		if fb, ok := reg.fallback[state]; ok {
			return reg.safeCall(fb, sess, cmd)
		}
		if !ok {
			return fmt.Errorf("%w %q", ErrUnknownVerb, cmd.Verb)
		}
		reg.log.Warn("verb not allowed in this state",
			zap.String("verb", cmd.Verb),
			zap.String("state", state.String()),
		)
		return fmt.Errorf("verb %q not allowed in state %s", cmd.Verb, state)
	}
	return reg.safeCall(entry.fn, sess, cmd)
}

// safeCall executes a handler with panic recovery so one bad command cannot
// take down the game loop.
func (reg *Registry) safeCall(fn HandlerFunc, sess any, cmd *Command) (err error) {
	defer func() {
		if rec := recover(); rec != nil {
			reg.log.Error("handler panic recovered",
				zap.String("verb", cmd.Verb),
				zap.Any("panic", rec),
			)
			err = fmt.Errorf("handler panic for verb %q: %v", cmd.Verb, rec)
		}
	}()
	fn(sess, cmd)
	return nil
}
