package web

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/nao1215/reviewlens/internal/controller"
	"github.com/nao1215/reviewlens/internal/notify"
	"github.com/nao1215/reviewlens/internal/ui"
)

// session is one browser's page: its own elements, pending notices and
// controller.
type session struct {
	id         string
	view       *ui.View
	notices    *notify.Recorder
	controller *controller.Controller

	// lastSeen and inFlight are guarded by sessionStore.mu.
	lastSeen time.Time
	inFlight int
}

// sessionStore keeps sessions in memory and drops idle ones lazily on
// every lookup.
type sessionStore struct {
	mu       sync.Mutex
	sessions map[string]*session
	ttl      time.Duration
	now      func() time.Time
	factory  ControllerFactory
}

func newSessionStore(factory ControllerFactory, ttl time.Duration) *sessionStore {
	return &sessionStore{
		sessions: make(map[string]*session),
		ttl:      ttl,
		now:      time.Now,
		factory:  factory,
	}
}

// get returns the live session with id and marks it as seen.
func (s *sessionStore) get(id string) (*session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	s.purgeLocked(now)

	sess, ok := s.sessions[id]
	if !ok {
		return nil, false
	}
	sess.lastSeen = now
	return sess, true
}

// create starts a new session with a fresh page.
func (s *sessionStore) create() *session {
	view := ui.NewView()
	notices := notify.NewRecorder()
	sess := &session{
		id:         uuid.NewString(),
		view:       view,
		notices:    notices,
		controller: s.factory(view, notices),
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	s.purgeLocked(now)
	sess.lastSeen = now
	s.sessions[sess.id] = sess
	return sess
}

// begin marks a submit as running on sess. A session with a running
// submit is never purged.
func (s *sessionStore) begin(sess *session) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess.inFlight++
}

// end marks a submit on sess as finished and counts it as activity.
func (s *sessionStore) end(sess *session) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess.inFlight--
	sess.lastSeen = s.now()
}

func (s *sessionStore) len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

func (s *sessionStore) purgeLocked(now time.Time) {
	for id, sess := range s.sessions {
		if sess.inFlight == 0 && now.Sub(sess.lastSeen) > s.ttl {
			delete(s.sessions, id)
		}
	}
}
