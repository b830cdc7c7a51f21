// Package session keeps the boards of remote players in memory.
package session

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/vancomm/sweeper/internal/input"
	"github.com/vancomm/sweeper/internal/journal"
	"github.com/vancomm/sweeper/internal/mines"
)

var ErrNotFound = errors.New("session not found")

// Session is one remotely owned board. Every board operation goes through
// Do, which serializes access.
type Session struct {
	ID uuid.UUID

	mu       sync.Mutex
	board    *mines.Board
	adapter  *input.Adapter
	last     mines.Outcome
	lastSeen time.Time
}

// Redraw is a no-op; remote clients pull views.
func (s *Session) Redraw(*mines.Board) {}

// GameOver is called with s.mu held by Do.
func (s *Session) GameOver(_ *mines.Board, outcome mines.Outcome) {
	s.last = outcome
}

// State is a snapshot of a session taken under its lock.
type State struct {
	ID    uuid.UUID
	View  mines.View
	Last  mines.Outcome
	Cell  input.CellSize
	Games int
	Moves int
}

// Do runs fn with exclusive access to the board and returns the state it
// left behind.
func (s *Session) Do(now time.Time, fn func(b *mines.Board, a *input.Adapter)) State {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastSeen = now
	if fn != nil {
		fn(s.board, s.adapter)
	}
	return State{
		ID:    s.ID,
		View:  s.board.View(),
		Last:  s.last,
		Cell:  s.adapter.Cell,
		Games: s.board.Games(),
		Moves: s.board.Moves(),
	}
}

func (s *Session) idleSince(now time.Time) time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return now.Sub(s.lastSeen)
}

type Options struct {
	TTL           time.Duration
	SweepInterval time.Duration
	Cell          input.CellSize
	Journal       *journal.Journal
	Now           func() time.Time
}

type Registry struct {
	logger   *slog.Logger
	opts     Options
	mu       sync.Mutex
	sessions map[uuid.UUID]*Session
}

func NewRegistry(logger *slog.Logger, opts Options) *Registry {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.SweepInterval <= 0 {
		opts.SweepInterval = time.Minute
	}
	return &Registry{
		logger:   logger,
		opts:     opts,
		sessions: make(map[uuid.UUID]*Session),
	}
}

func (r *Registry) Now() time.Time { return r.opts.Now() }

// Create starts a board with its own random source and registers it.
func (r *Registry) Create(params mines.GameParams) (*Session, error) {
	s := &Session{
		ID:       uuid.New(),
		lastSeen: r.opts.Now(),
	}
	opts := []mines.Option{mines.WithObserver(s)}
	if r.opts.Journal != nil {
		j := r.opts.Journal.With("board", s.ID.String())
		opts = append(opts, mines.WithObserver(j))
	}
	board, err := mines.NewBoard(params, nil, opts...)
	if err != nil {
		return nil, err
	}
	s.board = board
	s.adapter = input.NewAdapter(board, r.opts.Cell)

	r.mu.Lock()
	r.sessions[s.ID] = s
	r.mu.Unlock()

	r.logger.Debug("session created",
		slog.String("id", s.ID.String()),
		slog.String("params", params.Seed()),
	)
	return s, nil
}

func (r *Registry) Get(id uuid.UUID) (*Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
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

func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

// Sweep drops sessions idle for longer than the TTL and returns how many
// were dropped. A zero TTL keeps sessions forever. Sessions busy with a
// long operation are checked without holding up the rest of the registry.
func (r *Registry) Sweep(now time.Time) int {
	if r.opts.TTL <= 0 {
		return 0
	}

	r.mu.Lock()
	sessions := make([]*Session, 0, len(r.sessions))
	for _, s := range r.sessions {
		sessions = append(sessions, s)
	}
	r.mu.Unlock()

	var idle []*Session
	for _, s := range sessions {
		if s.idleSince(now) > r.opts.TTL {
			idle = append(idle, s)
		}
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, s := range idle {
		if r.sessions[s.ID] == s {
			delete(r.sessions, s.ID)
			n++
		}
	}
	return n
}

// Run sweeps on every tick until ctx is done.
func (r *Registry) Run(ctx context.Context) error {
	ticker := time.NewTicker(r.opts.SweepInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if n := r.Sweep(r.opts.Now()); n > 0 {
				r.logger.Info("evicted idle sessions",
					slog.Int("evicted", n),
					slog.Int("remaining", r.Len()),
				)
			}
		}
	}
}
