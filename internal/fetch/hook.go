// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package fetch

import (
	"context"
	"sync"

	"github.com/pdiddy/linkresolver/pkg/types"
)

// Fetcher performs the backend call. It is invoked at most once per Hook.
type Fetcher interface {
	Fetch(ctx context.Context) ([]types.LinkRecord, error)
}

// FetcherFunc adapts a function to Fetcher.
type FetcherFunc func(ctx context.Context) ([]types.LinkRecord, error)

func (f FetcherFunc) Fetch(ctx context.Context) ([]types.LinkRecord, error) { return f(ctx) }

// Observer is told about every state transition, in order.
type Observer func(from, to State)

// Option configures a Hook.
type Option func(*Hook)

// WithObserver registers an observer for state transitions.
func WithObserver(o Observer) Option {
	return func(h *Hook) { h.observers = append(h.observers, o) }
}

// Hook owns the fetch state of one page view. The view only reads
// snapshots; all transitions happen inside the Hook.
type Hook struct {
	fetcher   Fetcher
	observers []Observer

	mu    sync.Mutex
	state State

	once sync.Once
	done chan struct{}
}

// NewHook returns an idle Hook that will call f when triggered.
func NewHook(f Fetcher, opts ...Option) *Hook {
	h := &Hook{
		fetcher: f,
		state:   State{Phase: PhaseIdle},
		done:    make(chan struct{}),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Trigger starts the fetch. The first call moves the Hook to loading before
// returning and runs the fetch in the background under ctx; later calls do
// nothing. If ctx ends first the Hook settles in the error state and the
// result, if any, is discarded.
func (h *Hook) Trigger(ctx context.Context) {
	h.once.Do(func() {
		h.set(State{Phase: PhaseLoading})
		go h.run(ctx)
	})
}

func (h *Hook) run(ctx context.Context) {
	defer close(h.done)

	records, err := h.fetcher.Fetch(ctx)
	if err != nil {
		h.set(Failed(err.Error()))
		return
	}
	h.set(Loaded(records))
}

func (h *Hook) set(next State) {
	h.mu.Lock()
	prev := h.state
	h.state = next
	h.mu.Unlock()

	for _, o := range h.observers {
		o(prev, next)
	}
}

// State returns a snapshot of the current state.
func (h *Hook) State() State {
	h.mu.Lock()
	defer h.mu.Unlock()
	s := h.state
	if s.Resource != nil {
		s.Resource = append(make([]types.LinkRecord, 0, len(s.Resource)), s.Resource...)
	}
	return s
}

// Done is closed once the Hook reaches a terminal state.
func (h *Hook) Done() <-chan struct{} { return h.done }

// Wait blocks until the Hook is terminal or ctx ends and returns the state
// at that moment. An untriggered Hook returns immediately.
func (h *Hook) Wait(ctx context.Context) State {
	if h.State().Phase == PhaseIdle {
		return h.State()
	}
	select {
	case <-h.done:
	case <-ctx.Done():
	}
	return h.State()
}
