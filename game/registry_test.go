package game

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingNotifier struct {
	NopSettlementNotifier
	mu         sync.Mutex
	started    int
	actions    []ActionType
	finished   []map[string]int64
	failFinish bool
}

func (n *recordingNotifier) NotifyHandStarted(ctx context.Context, tableID string, playerIDs []string, seedCommitment string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.started++
	return nil
}

func (n *recordingNotifier) NotifyAction(ctx context.Context, tableID string, playerID string, action ActionType, amount int64) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.actions = append(n.actions, action)
	return nil
}

func (n *recordingNotifier) NotifyHandFinished(ctx context.Context, tableID string, allocations map[string]int64) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.failFinish {
		return fmt.Errorf("ledger unavailable")
	}
	n.finished = append(n.finished, allocations)
	return nil
}

func TestRegistryLifecycle(t *testing.T) {
	notifier := &recordingNotifier{}
	persist := NewMemoryTableTracker()
	registry := NewRegistry(notifier, nil, persist)

	id, err := registry.CreateTable(testConfig())
	require.NoError(t, err)

	_, err = registry.StartHand("no-such-table")
	assert.Equal(t, ErrTableNotFound, err)

	seat, err := registry.JoinTable(id, "alice", "Alice", 500)
	require.NoError(t, err)
	assert.Equal(t, 0, seat)
	seat, err = registry.JoinTable(id, "bob", "Bob", 500)
	require.NoError(t, err)
	assert.Equal(t, 1, seat)

	phase, err := registry.StartHand(id)
	require.NoError(t, err)
	assert.Equal(t, PhasePreflop, phase)
	assert.Equal(t, 1, notifier.started)

	// mutations persist a snapshot before the call returns
	snapshot, err := persist.Load(id)
	require.NoError(t, err)
	assert.Equal(t, PhasePreflop, snapshot.Phase)
	assert.Equal(t, uint32(1), snapshot.HandNum)

	err = registry.SubmitAction(id, "bob", Action{Type: ActionCall})
	assert.IsType(t, InvalidActionError{}, err, "dealer acts first heads-up")

	err = registry.SubmitAction(id, "alice", Action{Type: ActionFold})
	require.NoError(t, err)
	require.Len(t, notifier.finished, 1)
	assert.Equal(t, map[string]int64{"bob": 30}, notifier.finished[0])

	view, err := registry.PlayerView(id, "bob")
	require.NoError(t, err)
	assert.Equal(t, PhaseFinished, view.Phase)

	_, err = registry.PlayerView(id, "stranger")
	assert.Equal(t, ErrPlayerNotFound, err)

	require.NoError(t, registry.Remove(id))
	assert.Equal(t, ErrTableNotFound, registry.Remove(id))
	_, err = registry.PlayerView(id, "bob")
	assert.Equal(t, ErrTableNotFound, err)
}

func TestRegistrySettlementFailureDoesNotRollBack(t *testing.T) {
	notifier := &recordingNotifier{failFinish: true}
	registry := NewRegistry(notifier, nil, nil)

	id, err := registry.CreateTable(testConfig())
	require.NoError(t, err)
	_, err = registry.JoinTable(id, "alice", "Alice", 500)
	require.NoError(t, err)
	_, err = registry.JoinTable(id, "bob", "Bob", 500)
	require.NoError(t, err)
	_, err = registry.StartHand(id)
	require.NoError(t, err)

	err = registry.SubmitAction(id, "alice", Action{Type: ActionFold})
	require.Error(t, err)
	settlementErr, ok := err.(SettlementError)
	require.True(t, ok, "expected SettlementError, got %T", err)
	assert.Equal(t, "hand-finished", settlementErr.Op)

	// the hand is over and the chips moved despite the failure
	view, err := registry.PlayerView(id, "bob")
	require.NoError(t, err)
	assert.Equal(t, PhaseFinished, view.Phase)
	assert.Equal(t, int64(510), view.Seats[1].Stack)

	require.NoError(t, registry.WithTableForTest(id, func(table *Table) {
		assert.Equal(t, int64(510), table.players[1].Stack)
		assert.Equal(t, int64(1000), totalChips(table))
	}))
}

func TestRegistryConcurrentJoins(t *testing.T) {
	registry := NewRegistry(nil, nil, nil)
	id, err := registry.CreateTable(testConfig())
	require.NoError(t, err)

	const joiners = 6
	seats := make(chan int, joiners)
	var wg sync.WaitGroup
	for i := 0; i < joiners; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			seat, err := registry.JoinTable(id, fmt.Sprintf("player%d", i), "", 500)
			if err == nil {
				seats <- seat
			}
		}(i)
	}
	wg.Wait()
	close(seats)

	seen := make(map[int]bool)
	for seat := range seats {
		assert.False(t, seen[seat], "seat %d assigned twice", seat)
		seen[seat] = true
	}
	assert.Len(t, seen, joiners)
}

func TestRegistryViewHidesOtherHoleCards(t *testing.T) {
	registry := NewRegistry(nil, nil, nil)
	id, err := registry.CreateTable(testConfig())
	require.NoError(t, err)
	_, err = registry.JoinTable(id, "alice", "Alice", 500)
	require.NoError(t, err)
	_, err = registry.JoinTable(id, "bob", "Bob", 500)
	require.NoError(t, err)
	_, err = registry.StartHand(id)
	require.NoError(t, err)

	aliceView, err := registry.PlayerView(id, "alice")
	require.NoError(t, err)
	bobView, err := registry.PlayerView(id, "bob")
	require.NoError(t, err)

	assert.Len(t, aliceView.HoleCards, 2)
	assert.Len(t, bobView.HoleCards, 2)
	assert.NotEqual(t, aliceView.HoleCards, bobView.HoleCards)

	// it is alice's turn, only she has legal moves
	assert.NotEmpty(t, aliceView.AvailableActions)
	assert.Empty(t, bobView.AvailableActions)
}
