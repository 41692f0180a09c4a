package game

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

var registryLogger = log.With().Str("logger_name", "game::registry").Logger()

// DefaultSettlementTimeout bounds each settlement call so a slow ledger
// cannot stall gameplay.
const DefaultSettlementTimeout = 5 * time.Second

// Registry owns the id->Table mapping and serializes mutating calls per
// table. The in-memory transition commits under the table's lock; the
// snapshot save, broadcast, and settlement notifications are handed to a
// per-table worker that processes them in commit order, so a slow
// settlement call never keeps the table locked.
type Registry struct {
	mu      sync.RWMutex
	entries map[string]*tableEntry

	notifier          SettlementNotifier
	broadcaster       Broadcaster
	persist           PersistTableState
	settlementTimeout time.Duration
}

type tableEntry struct {
	mu       sync.Mutex
	table    *Table
	closed   bool
	commitCh chan commitJob
}

type commitJob struct {
	snapshot *TableSnapshot
	tr       *Transition
	result   chan error
}

func NewRegistry(notifier SettlementNotifier, broadcaster Broadcaster, persist PersistTableState) *Registry {
	if notifier == nil {
		notifier = NopSettlementNotifier{}
	}
	if broadcaster == nil {
		broadcaster = NopBroadcaster{}
	}
	if persist == nil {
		persist = NewMemoryTableTracker()
	}
	return &Registry{
		entries:           make(map[string]*tableEntry),
		notifier:          notifier,
		broadcaster:       broadcaster,
		persist:           persist,
		settlementTimeout: DefaultSettlementTimeout,
	}
}

// CreateTable registers a new table and returns its id.
func (r *Registry) CreateTable(config TableConfig) (string, error) {
	id := uuid.New().String()
	table, err := NewTable(id, config)
	if err != nil {
		return "", err
	}

	entry := &tableEntry{
		table:    table,
		commitCh: make(chan commitJob, 32),
	}
	go r.commitWorker(id, entry.commitCh)

	r.mu.Lock()
	r.entries[id] = entry
	r.mu.Unlock()

	registryLogger.Info().Str("table", id).Msg("Table created")
	return id, nil
}

func (r *Registry) getEntry(id string) (*tableEntry, error) {
	r.mu.RLock()
	entry, ok := r.entries[id]
	r.mu.RUnlock()
	if !ok {
		return nil, ErrTableNotFound
	}
	return entry, nil
}

// Remove tears a table down. The worker drains pending commits, then
// deletes the snapshot.
func (r *Registry) Remove(id string) error {
	r.mu.Lock()
	entry, ok := r.entries[id]
	if ok {
		delete(r.entries, id)
	}
	r.mu.Unlock()
	if !ok {
		return ErrTableNotFound
	}

	entry.mu.Lock()
	entry.closed = true
	close(entry.commitCh)
	entry.mu.Unlock()
	return nil
}

// commitWorker applies the post-commit side effects of each mutation in
// commit order: snapshot save, broadcast, settlement.
func (r *Registry) commitWorker(id string, ch chan commitJob) {
	for job := range ch {
		if err := r.persist.Save(id, job.snapshot); err != nil {
			registryLogger.Error().Err(err).Str("table", id).Msg("Failed to save table snapshot")
		}
		for _, event := range job.tr.Events {
			r.broadcaster.Publish(id, event)
		}
		job.result <- r.settle(id, job.tr)
	}
	if err := r.persist.Remove(id); err != nil {
		registryLogger.Error().Err(err).Str("table", id).Msg("Failed to remove table snapshot")
	}
}

// withTable runs a mutating operation under the table's exclusivity. The
// commit job is queued while the lock is still held, which fixes the
// settlement order to the commit order.
func (r *Registry) withTable(id string, mutate func(*Table) (*Transition, error)) error {
	entry, err := r.getEntry(id)
	if err != nil {
		return err
	}

	entry.mu.Lock()
	if entry.closed {
		entry.mu.Unlock()
		return ErrTableNotFound
	}
	tr, err := mutate(entry.table)
	if err != nil {
		entry.mu.Unlock()
		return err
	}
	job := commitJob{
		snapshot: entry.table.Snapshot(),
		tr:       tr,
		result:   make(chan error, 1),
	}
	entry.commitCh <- job
	entry.mu.Unlock()

	return <-job.result
}

func (r *Registry) settle(id string, tr *Transition) error {
	var settleErr error

	if tr.HandStarted != nil {
		ctx, cancel := context.WithTimeout(context.Background(), r.settlementTimeout)
		err := r.notifier.NotifyHandStarted(ctx, id, tr.HandStarted.PlayerIDs, tr.HandStarted.SeedCommitment)
		cancel()
		if err != nil {
			settleErr = SettlementError{Op: "hand-started", Err: err}
		}
	}
	for _, note := range tr.Actions {
		ctx, cancel := context.WithTimeout(context.Background(), r.settlementTimeout)
		err := r.notifier.NotifyAction(ctx, id, note.Player, note.Action, note.Amount)
		cancel()
		if err != nil && settleErr == nil {
			settleErr = SettlementError{Op: "action", Err: err}
		}
	}
	if tr.HandFinished != nil {
		ctx, cancel := context.WithTimeout(context.Background(), r.settlementTimeout)
		err := r.notifier.NotifyHandFinished(ctx, id, tr.HandFinished.Allocations)
		cancel()
		if err != nil && settleErr == nil {
			settleErr = SettlementError{Op: "hand-finished", Err: err}
		}
	}

	if settleErr != nil {
		registryLogger.Error().Err(settleErr).Str("table", id).Msg("Settlement notification failed")
	}
	return settleErr
}

// JoinTable seats a player and returns their seat index.
func (r *Registry) JoinTable(id string, address string, displayName string, buyIn int64) (int, error) {
	var seat int
	err := r.withTable(id, func(t *Table) (*Transition, error) {
		var tr *Transition
		var err error
		seat, tr, err = t.Join(address, displayName, buyIn)
		return tr, err
	})
	return seat, err
}

// StartHand begins the next hand and returns the resulting phase.
func (r *Registry) StartHand(id string) (Phase, error) {
	var phase Phase
	err := r.withTable(id, func(t *Table) (*Transition, error) {
		tr, err := t.StartHand()
		phase = t.Phase()
		return tr, err
	})
	return phase, err
}

// SubmitAction applies one player action.
func (r *Registry) SubmitAction(id string, playerID string, action Action) error {
	return r.withTable(id, func(t *Table) (*Transition, error) {
		return t.ApplyAction(playerID, action)
	})
}

// PlayerView returns a consistent snapshot of the table for one player.
// It takes the same exclusivity as mutations, so it never observes a
// torn state.
func (r *Registry) PlayerView(id string, playerID string) (*PlayerView, error) {
	entry, err := r.getEntry(id)
	if err != nil {
		return nil, err
	}
	entry.mu.Lock()
	defer entry.mu.Unlock()
	if entry.closed {
		return nil, ErrTableNotFound
	}
	return entry.table.PlayerView(playerID)
}

// WithTableForTest gives tests direct access to a table under its lock.
func (r *Registry) WithTableForTest(id string, fn func(*Table)) error {
	entry, err := r.getEntry(id)
	if err != nil {
		return err
	}
	entry.mu.Lock()
	defer entry.mu.Unlock()
	fn(entry.table)
	return nil
}
