package session

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/vancomm/minesweeper/internal/board"
)

var (
	ErrNotFound = errors.New("session not found")
	ErrFinished = errors.New("session finished")
)

// Session owns one board. Access to the board goes through Do, which
// serializes callers.
type Session struct {
	ID        uuid.UUID
	StartedAt time.Time

	mu      sync.Mutex
	board   *board.Board
	dead    bool
	endedAt time.Time
}

// Snapshot is a consistent copy of a session's player-visible state.
type Snapshot struct {
	ID        uuid.UUID
	StartedAt time.Time
	EndedAt   time.Time
	Height    int
	Width     int
	Remaining int
	Dead      bool
	Won       bool
	View      board.View
}

func (s *Session) snapshot() Snapshot {
	return Snapshot{
		ID:        s.ID,
		StartedAt: s.StartedAt,
		EndedAt:   s.endedAt,
		Height:    s.board.Height(),
		Width:     s.board.Width(),
		Remaining: s.board.Remaining(),
		Dead:      s.dead,
		Won:       s.board.IsWon(),
		View:      s.board.View(),
	}
}

func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot()
}

// Do runs f against the board unless the game is over. A mine hit reported
// by f ends the session. The returned snapshot reflects the state after f.
func (s *Session) Do(f func(b *board.Board) error) (Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.dead || s.board.IsWon() {
		return s.snapshot(), ErrFinished
	}

	err := f(s.board)
	if board.KindOf(err).Fatal() {
		s.dead = true
	}
	if s.dead || s.board.IsWon() {
		s.endedAt = time.Now().UTC()
	}
	return s.snapshot(), err
}

type Registry struct {
	mu       sync.RWMutex
	sessions map[uuid.UUID]*Session
}

func NewRegistry() *Registry {
	return &Registry{sessions: make(map[uuid.UUID]*Session)}
}

func (r *Registry) Create(b *board.Board) *Session {
	now := time.Now().UTC()
	s := &Session{
		ID:        uuid.New(),
		StartedAt: now,
		board:     b,
	}
	if b.IsWon() {
		s.endedAt = now
	}

	r.mu.Lock()
	r.sessions[s.ID] = s
	r.mu.Unlock()

	return s
}

func (r *Registry) Get(id uuid.UUID) (*Session, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.sessions[id]
	if !ok {
		return nil, ErrNotFound
	}
	return s, nil
}

func (r *Registry) Delete(id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.sessions[id]; !ok {
		return ErrNotFound
	}
	delete(r.sessions, id)
	return nil
}

// Expire drops sessions started before the given time and reports how many
// were dropped.
func (r *Registry) Expire(before time.Time) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	n := 0
	for id, s := range r.sessions {
		if s.StartedAt.Before(before) {
			delete(r.sessions, id)
			n++
		}
	}
	return n
}

func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}
