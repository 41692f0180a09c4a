package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSnapshotRestoresMidHandState(t *testing.T) {
	table := newTestTable(t, testConfig(), 500, 500, 500)
	_, err := table.StartHand()
	require.NoError(t, err)
	mustAct(t, table, "player0", Action{Type: ActionCall})
	mustAct(t, table, "player1", Action{Type: ActionRaise, Amount: 60})

	restored := TableFromSnapshot(table.Snapshot())

	assert.Equal(t, table.id, restored.id)
	assert.Equal(t, table.phase, restored.phase)
	assert.Equal(t, table.handNum, restored.handNum)
	assert.Equal(t, table.currentBet, restored.currentBet)
	assert.Equal(t, table.turnPointer, restored.turnPointer)
	assert.Equal(t, table.dealerIndex, restored.dealerIndex)
	assert.Equal(t, table.seedCommit, restored.seedCommit)
	assert.Equal(t, table.deck.PeekAll(), restored.deck.PeekAll())

	require.Len(t, restored.players, 3)
	for i, p := range table.players {
		assert.Equal(t, p.Stack, restored.players[i].Stack)
		assert.Equal(t, p.RoundBet, restored.players[i].RoundBet)
		assert.Equal(t, p.HoleCards, restored.players[i].HoleCards)
		assert.Equal(t, p.acted, restored.players[i].acted)
	}

	// the restored table keeps playing the same hand
	mustAct(t, restored, "player2", Action{Type: ActionCall})
	mustAct(t, restored, "player0", Action{Type: ActionCall})
	assert.Equal(t, PhaseFlop, restored.Phase())
	assert.Equal(t, int64(180), restored.potTotal())
	assert.Equal(t, int64(1500), totalChips(restored))
}

func TestSnapshotSharesNothingWithLiveTable(t *testing.T) {
	table := newTestTable(t, testConfig(), 500, 500)
	_, err := table.StartHand()
	require.NoError(t, err)

	snapshot := table.Snapshot()
	stackBefore := snapshot.Players[0].Stack
	logBefore := len(snapshot.ActionLog)

	mustAct(t, table, "player0", Action{Type: ActionCall})

	assert.Equal(t, stackBefore, snapshot.Players[0].Stack)
	assert.Len(t, snapshot.ActionLog, logBefore)
}

func TestMemoryTrackerRoundTrip(t *testing.T) {
	table := newTestTable(t, testConfig(), 500, 500)
	_, err := table.StartHand()
	require.NoError(t, err)

	tracker := NewMemoryTableTracker()
	require.NoError(t, tracker.Save(table.ID(), table.Snapshot()))

	loaded, err := tracker.Load(table.ID())
	require.NoError(t, err)
	assert.Equal(t, table.ID(), loaded.ID)
	assert.Equal(t, PhasePreflop, loaded.Phase)
	assert.Len(t, loaded.Players, 2)

	require.NoError(t, tracker.Remove(table.ID()))
	_, err = tracker.Load(table.ID())
	assert.Error(t, err)
}
