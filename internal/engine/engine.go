package engine

import (
	"context"
	"log/slog"
	"sync"

	"github.com/photodeck/photodeck/internal/store"
)

// Listener is notified with the new state snapshot after every applied
// intent. Listeners run synchronously on the dispatching goroutine and
// must not dispatch back into the engine while handling a notification.
type Listener func(State)

// Engine is the single source of truth for the card collection. It
// serializes intent application, notifies listeners, and hands each
// post-load snapshot to the autosave writer.
type Engine struct {
	mu        sync.Mutex
	state     State
	listeners []Listener

	autosave *autosaver
	logger   *slog.Logger
}

// New creates an Engine with an empty, loading collection. If st is
// non-nil, a background autosave writer is started and every mutation
// after the initial load is persisted through it. If logger is nil, the
// default logger is used.
func New(st store.CollectionStore, logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.Default()
	}

	e := &Engine{
		state:  newInitialState(),
		logger: logger.With(slog.String("component", "engine")),
	}

	if st != nil {
		e.autosave = newAutosaver(st, e.logger, e.recordSaveError)
	}

	return e
}

// Dispatch applies the intent and returns the resulting snapshot.
// Application is atomic: no two intents interleave, and the autosave
// write is enqueued fire-and-forget after the new state is already
// visible to readers.
func (e *Engine) Dispatch(intent Intent) State {
	e.mu.Lock()
	e.state = apply(e.state.clone(), intent)
	snapshot := e.state.clone()
	listeners := make([]Listener, len(e.listeners))
	copy(listeners, e.listeners)
	e.mu.Unlock()

	if e.autosave != nil && !snapshot.IsLoading {
		e.autosave.enqueue(snapshot)
	}

	for _, l := range listeners {
		l(snapshot)
	}

	return snapshot
}

// State returns a snapshot of the current collection state.
func (e *Engine) State() State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state.clone()
}

// Subscribe registers a listener for state change notifications.
func (e *Engine) Subscribe(l Listener) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.listeners = append(e.listeners, l)
}

// Close flushes any pending autosave write and stops the writer. It
// blocks until the flush completes or ctx expires.
func (e *Engine) Close(ctx context.Context) error {
	if e.autosave == nil {
		return nil
	}
	return e.autosave.stop(ctx)
}

// recordSaveError surfaces a failed (or recovered) autosave on the
// state's error field. A write failure never rolls back the in-memory
// mutation; the user's edit stays visible and only durability is at
// risk.
func (e *Engine) recordSaveError(err error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if err != nil {
		e.state.Error = err.Error()
	} else {
		e.state.Error = ""
	}
}
