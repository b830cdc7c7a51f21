package session

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vancomm/sweeper/internal/input"
	"github.com/vancomm/sweeper/internal/journal"
	"github.com/vancomm/sweeper/internal/mines"
)

type clock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *clock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

func newRegistry(opts Options) (*Registry, *clock) {
	c := &clock{now: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	opts.Now = c.Now
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewRegistry(logger, opts), c
}

var classic = mines.GameParams{Width: 9, Height: 9, MineCount: 10}

func TestCreateGetDelete(t *testing.T) {
	r, _ := newRegistry(Options{})

	s, err := r.Create(classic)
	require.NoError(t, err)
	assert.Equal(t, 1, r.Len())

	got, err := r.Get(s.ID)
	require.NoError(t, err)
	assert.Same(t, s, got)

	require.NoError(t, r.Delete(s.ID))
	assert.Zero(t, r.Len())

	_, err = r.Get(s.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, r.Delete(s.ID), ErrNotFound)
	_, err = r.Get(uuid.New())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCreateRejectsInvalidParams(t *testing.T) {
	r, _ := newRegistry(Options{})

	_, err := r.Create(mines.GameParams{Width: 2, Height: 2, MineCount: 5})
	assert.ErrorIs(t, err, mines.ErrInvalidParams)
	assert.Zero(t, r.Len())
}

func TestSessionsAreIndependent(t *testing.T) {
	r, _ := newRegistry(Options{})
	a, err := r.Create(classic)
	require.NoError(t, err)
	b, err := r.Create(classic)
	require.NoError(t, err)
	require.NotEqual(t, a.ID, b.ID)

	a.Do(r.Now(), func(board *mines.Board, _ *input.Adapter) {
		board.ToggleFlag(0, 0)
	})

	assert.Equal(t, 1, a.Do(r.Now(), nil).View.FlagsPlaced)
	assert.Zero(t, b.Do(r.Now(), nil).View.FlagsPlaced)
}

func TestDoRecordsLastOutcome(t *testing.T) {
	r, _ := newRegistry(Options{Cell: input.CellSize{Width: 10, Height: 10}})
	s, err := r.Create(mines.GameParams{Width: 2, Height: 1})
	require.NoError(t, err)

	st := s.Do(r.Now(), func(_ *mines.Board, a *input.Adapter) {
		a.PointerDown(input.Pointer{X: 15, Y: 5, Button: input.Primary})
	})

	assert.Equal(t, mines.Won, st.Last)
	assert.Equal(t, mines.Playing, st.View.Outcome, "won game is replaced by a new one")
	assert.Equal(t, 2, st.Games)
	assert.Equal(t, input.CellSize{Width: 10, Height: 10}, st.Cell)
}

func TestSweep(t *testing.T) {
	r, c := newRegistry(Options{TTL: time.Minute})
	idle, err := r.Create(classic)
	require.NoError(t, err)
	busy, err := r.Create(classic)
	require.NoError(t, err)

	c.Advance(45 * time.Second)
	busy.Do(r.Now(), nil)
	c.Advance(30 * time.Second)

	assert.Equal(t, 1, r.Sweep(r.Now()))
	_, err = r.Get(idle.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = r.Get(busy.ID)
	assert.NoError(t, err)
}

func TestSweepDoesNotBlockRegistry(t *testing.T) {
	r, c := newRegistry(Options{TTL: time.Minute})
	busy, err := r.Create(classic)
	require.NoError(t, err)
	idle, err := r.Create(classic)
	require.NoError(t, err)
	c.Advance(2 * time.Minute)

	entered := make(chan struct{})
	release := make(chan struct{})
	go busy.Do(r.Now(), func(*mines.Board, *input.Adapter) {
		close(entered)
		<-release
	})
	<-entered

	swept := make(chan int, 1)
	go func() { swept <- r.Sweep(r.Now()) }()

	created := make(chan error, 1)
	go func() {
		_, err := r.Create(classic)
		created <- err
	}()
	select {
	case err := <-created:
		require.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("Create blocked behind a sweep waiting on a busy session")
	}
	close(release)
	select {
	case n := <-swept:
		assert.Equal(t, 1, n, "only the idle session is dropped")
	case <-time.After(time.Second):
		t.Fatal("Sweep did not finish")
	}
	_, err = r.Get(idle.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = r.Get(busy.ID)
	assert.NoError(t, err, "busy session was touched by its operation")
}

func TestSweepWithoutTTLKeepsEverything(t *testing.T) {
	r, c := newRegistry(Options{})
	_, err := r.Create(classic)
	require.NoError(t, err)

	c.Advance(24 * time.Hour)
	assert.Zero(t, r.Sweep(r.Now()))
	assert.Equal(t, 1, r.Len())
}

func TestRunStopsWithContext(t *testing.T) {
	r, _ := newRegistry(Options{SweepInterval: time.Millisecond})
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- r.Run(ctx) }()
	cancel()

	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

func TestConcurrentAccess(t *testing.T) {
	r, _ := newRegistry(Options{})
	s, err := r.Create(mines.GameParams{Width: 16, Height: 16, MineCount: 40})
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := range 16 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.Do(r.Now(), func(b *mines.Board, _ *input.Adapter) {
				b.Reveal(i, i)
				b.ToggleFlag(15-i, i)
			})
		}()
	}
	wg.Wait()
}

func TestJournalTaggedWithSession(t *testing.T) {
	logger, hook := test.NewNullLogger()
	r, _ := newRegistry(Options{Journal: journal.NewWithLogger(logger)})

	s, err := r.Create(classic)
	require.NoError(t, err)

	require.Len(t, hook.AllEntries(), 1)
	entry := hook.LastEntry()
	assert.Equal(t, logrus.InfoLevel, entry.Level)
	assert.Equal(t, s.ID.String(), entry.Data["board"])
}
