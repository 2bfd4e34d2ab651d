package state

import (
	"context"
	"sync"

	"github.com/arrdeck/arrdeck/internal/repository"
)

// Phase enumerates the lifecycle of a screen's data.
type Phase int

const (
	PhaseLoading Phase = iota
	PhaseSuccess
	PhaseError
)

func (p Phase) String() string {
	switch p {
	case PhaseLoading:
		return "loading"
	case PhaseSuccess:
		return "success"
	case PhaseError:
		return "error"
	default:
		return "unknown"
	}
}

// Snapshot is the immutable view of a store at one point in time.
// Value is meaningful only in PhaseSuccess, Message only in PhaseError.
type Snapshot[T any] struct {
	Phase   Phase
	Value   T
	Message string
}

// Store holds the latest fetch outcome for one screen area. It starts
// in PhaseLoading; every Load discards the previous payload, publishes
// PhaseLoading, and settles on the single repository result.
type Store[T any] struct {
	mu      sync.RWMutex
	fetch   func(context.Context) <-chan repository.Result[T]
	current Snapshot[T]
	subs    []chan Snapshot[T]
}

// NewStore creates a store bound to one repository operation.
func NewStore[T any](fetch func(context.Context) <-chan repository.Result[T]) *Store[T] {
	return &Store[T]{
		fetch:   fetch,
		current: Snapshot[T]{Phase: PhaseLoading},
	}
}

// Current returns the latest snapshot.
func (s *Store[T]) Current() Snapshot[T] {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// Subscribe returns a channel receiving every snapshot transition and a
// cancel function releasing it. The channel is buffered generously so a
// briefly slow consumer does not stall a load.
func (s *Store[T]) Subscribe() (<-chan Snapshot[T], func()) {
	ch := make(chan Snapshot[T], 16)

	s.mu.Lock()
	s.subs = append(s.subs, ch)
	s.mu.Unlock()

	cancel := func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		for i, sub := range s.subs {
			if sub == ch {
				s.subs = append(s.subs[:i], s.subs[i+1:]...)
				break
			}
		}
	}

	return ch, cancel
}

// Load resets the store to PhaseLoading, runs the bound fetch, and
// settles on its single outcome. It blocks until the result arrives or
// the context is cancelled; callers wanting fire-and-forget reloads run
// it in a goroutine.
func (s *Store[T]) Load(ctx context.Context) Snapshot[T] {
	s.set(Snapshot[T]{Phase: PhaseLoading})

	var snap Snapshot[T]
	select {
	case res := <-s.fetch(ctx):
		if res.OK() {
			snap = Snapshot[T]{Phase: PhaseSuccess, Value: res.Value}
		} else {
			snap = Snapshot[T]{Phase: PhaseError, Message: res.Failure}
		}
	case <-ctx.Done():
		snap = Snapshot[T]{Phase: PhaseError, Message: repository.Describe(ctx.Err())}
	}

	s.set(snap)
	return snap
}

func (s *Store[T]) set(snap Snapshot[T]) {
	s.mu.Lock()
	s.current = snap
	subs := make([]chan Snapshot[T], len(s.subs))
	copy(subs, s.subs)
	s.mu.Unlock()

	for _, ch := range subs {
		select {
		case ch <- snap:
		default:
		}
	}
}
