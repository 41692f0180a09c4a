package game

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cardroom.dev/server/gamescript"
	"cardroom.dev/server/poker"
)

var streets = []string{"preflop", "flop", "turn", "river"}

// runScript plays a scripted hand through a real table and checks the
// expected outcome.
func runScript(t *testing.T, fileName string) {
	script, err := gamescript.ReadGameScript(fileName)
	require.NoError(t, err)

	table, err := NewTable("scripted-table", TableConfig{
		SmallBlind: script.Table.SmallBlind,
		BigBlind:   script.Table.BigBlind,
		MinBuyIn:   script.Table.MinBuyIn,
		MaxBuyIn:   script.Table.MaxBuyIn,
		MaxPlayers: script.Table.MaxPlayers,
	})
	require.NoError(t, err)

	playerCards := make([]poker.CardsInAscii, 0, len(script.Seats))
	for _, seat := range script.Seats {
		_, _, err := table.Join(seat.Player, seat.Player, seat.BuyIn)
		require.NoError(t, err)
		playerCards = append(playerCards, seat.Cards)
	}
	table.SetNextDeck(poker.DeckFromScript(
		playerCards,
		script.Board[:3],
		poker.NewCard(script.Board[3]),
		poker.NewCard(script.Board[4]),
	))

	_, err = table.StartHand()
	require.NoError(t, err)

	for _, street := range streets {
		for _, seatAction := range script.ActionsForStreet(street) {
			_, err := table.ApplyAction(seatAction.Player, Action{
				Type:   ActionType(seatAction.Action),
				Amount: seatAction.Amount,
			})
			require.NoError(t, err, "%s by %s on the %s", seatAction.Action, seatAction.Player, street)
		}
	}

	assert.Equal(t, script.Expect.Phase, table.Phase().String())
	for player, stack := range script.Expect.Stacks {
		seat := table.seatOf(player)
		require.NotEqual(t, -1, seat, "unknown player %s", player)
		assert.Equal(t, stack, table.players[seat].Stack, "stack of %s", player)
	}

	result := table.LastResult()
	require.NotNil(t, result)
	if script.Expect.Showdown != nil {
		assert.Equal(t, *script.Expect.Showdown, result.WentToShowdown)
	}
	if len(script.Expect.Allocations) > 0 {
		assert.Equal(t, script.Expect.Allocations, result.Allocations)
	}
}

func TestScriptedHands(t *testing.T) {
	files, err := filepath.Glob("../gamescript/test_scripts/*.yaml")
	require.NoError(t, err)
	require.NotEmpty(t, files)
	for _, fileName := range files {
		t.Run(filepath.Base(fileName), func(t *testing.T) {
			runScript(t, fileName)
		})
	}
}
