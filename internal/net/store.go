package net

// SessionStore is the game loop's view of live sessions. Game loop only, no
// locking.
type SessionStore struct {
	sessions map[uint64]*Session
}

func NewSessionStore() *SessionStore {
	return &SessionStore{sessions: make(map[uint64]*Session)}
}

func (st *SessionStore) Add(s *Session) { st.sessions[s.ID] = s }

func (st *SessionStore) Remove(id uint64) { delete(st.sessions, id) }

func (st *SessionStore) Get(id uint64) *Session { return st.sessions[id] }

func (st *SessionStore) Count() int { return len(st.sessions) }

// Raw exposes the map for iteration that removes entries as it goes.
func (st *SessionStore) Raw() map[uint64]*Session { return st.sessions }

func (st *SessionStore) ForEach(fn func(*Session)) {
	for _, s := range st.sessions {
		fn(s)
	}
}

// CloseAll closes every session, used on shutdown.
func (st *SessionStore) CloseAll() {
	for _, s := range st.sessions {
		s.FlushOutput()
		s.Close()
	}
}
