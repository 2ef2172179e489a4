package engine

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/photodeck/photodeck/internal/domain"
)

// saveTimeout bounds a single autosave write against a wedged store.
const saveTimeout = 10 * time.Second

// autosaver is a single background writer that persists collection
// snapshots fire-and-forget. Writes coalesce latest-wins: if several
// mutations land while a write is in flight, only the newest snapshot
// is written next. Failed writes are logged and reported through the
// onResult callback; they are not retried until the next mutation
// produces a new snapshot.
type autosaver struct {
	store    collectionSaver
	logger   *slog.Logger
	onResult func(error)

	mu      sync.Mutex
	pending *State

	kick chan struct{}
	quit chan struct{}
	done chan struct{}

	stopOnce sync.Once
}

// collectionSaver is the slice of store.CollectionStore the autosaver
// needs. Narrowed for testability.
type collectionSaver interface {
	SaveCards(ctx context.Context, cards []domain.Card) error
	SaveFolders(ctx context.Context, folders []domain.Folder) error
}

func newAutosaver(st collectionSaver, logger *slog.Logger, onResult func(error)) *autosaver {
	a := &autosaver{
		store:    st,
		logger:   logger.With(slog.String("component", "autosave")),
		onResult: onResult,
		kick:     make(chan struct{}, 1),
		quit:     make(chan struct{}),
		done:     make(chan struct{}),
	}

	go a.run()

	return a
}

// enqueue records the snapshot as the pending write and wakes the
// writer. Never blocks the dispatching goroutine.
func (a *autosaver) enqueue(s State) {
	a.mu.Lock()
	a.pending = &s
	a.mu.Unlock()

	select {
	case a.kick <- struct{}{}:
	default:
		// Writer already has a wakeup queued; the snapshot above
		// supersedes whatever it was about to write.
	}
}

// stop flushes the pending write and shuts the writer down. Blocks
// until the final flush completes or ctx expires.
func (a *autosaver) stop(ctx context.Context) error {
	a.stopOnce.Do(func() {
		close(a.quit)
	})

	select {
	case <-a.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (a *autosaver) run() {
	defer close(a.done)

	for {
		select {
		case <-a.kick:
			a.flush()
		case <-a.quit:
			a.flush()
			return
		}
	}
}

// flush writes pending snapshots until none remain.
func (a *autosaver) flush() {
	for {
		a.mu.Lock()
		snapshot := a.pending
		a.pending = nil
		a.mu.Unlock()

		if snapshot == nil {
			return
		}

		a.save(*snapshot)
	}
}

// save persists both sequences of the snapshot. The whole cards and
// folders sequences are written on every save; the two records are
// independent, so a cards failure does not block the folders write.
func (a *autosaver) save(s State) {
	ctx, cancel := context.WithTimeout(context.Background(), saveTimeout)
	defer cancel()

	var failed error

	if err := a.store.SaveCards(ctx, s.Cards); err != nil {
		failed = err
		a.logger.Warn("failed to save cards", slog.Any("error", err), slog.Int("card_count", len(s.Cards)))
	}

	if err := a.store.SaveFolders(ctx, s.Folders); err != nil {
		if failed == nil {
			failed = err
		}
		a.logger.Warn("failed to save folders", slog.Any("error", err), slog.Int("folder_count", len(s.Folders)))
	}

	if a.onResult != nil {
		a.onResult(failed)
	}
}
