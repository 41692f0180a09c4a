package poker

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDeckHas52DistinctCards(t *testing.T) {
	deck := NewDeck(nil)
	assert.Equal(t, 52, deck.Remaining())

	seen := make(map[Card]bool)
	for _, card := range deck.PeekAll() {
		assert.False(t, seen[card], "duplicate card %s", card.String())
		seen[card] = true
	}
	assert.Len(t, seen, 52)
}

func TestShuffleRestoresFullDeck(t *testing.T) {
	deck := NewDeck(nil)
	_, err := deck.Draw(20)
	require.NoError(t, err)
	assert.Equal(t, 32, deck.Remaining())

	deck.Shuffle()
	assert.Equal(t, 52, deck.Remaining())
}

func TestDraw(t *testing.T) {
	deck := NewDeckNoShuffle()
	first, err := deck.Draw(2)
	require.NoError(t, err)
	assert.Len(t, first, 2)
	assert.Equal(t, 50, deck.Remaining())

	// drawn cards are gone
	for _, card := range deck.PeekAll() {
		assert.NotContains(t, first, card)
	}

	_, err = deck.Draw(51)
	assert.Equal(t, ErrDeckExhausted, err)
	assert.Equal(t, 50, deck.Remaining())
}

func TestDeckBytesRoundTrip(t *testing.T) {
	deck := NewDeck(nil)
	restored := DeckFromBytes(deck.GetBytes())
	assert.Equal(t, deck.PeekAll(), restored.PeekAll())
}

func TestDeckFromScript(t *testing.T) {
	playerCards := []CardsInAscii{
		{"Kh", "Qd"},
		{"3s", "7c"},
	}
	flop := CardsInAscii{"Ac", "Ad", "2c"}
	turn := NewCard("Td")
	river := NewCard("3c")
	deck := DeckFromScript(playerCards, flop, turn, river)
	assert.Equal(t, 52, deck.Remaining())

	// one card per player per pass, then the board
	expected := cards("Kh", "3s", "Qd", "7c", "Ac", "Ad", "2c", "Td", "3c")
	drawn, err := deck.Draw(len(expected))
	require.NoError(t, err)
	assert.Equal(t, expected, drawn)

	// the rest of the deck is still distinct
	seen := make(map[Card]bool)
	for _, card := range drawn {
		seen[card] = true
	}
	for _, card := range deck.PeekAll() {
		assert.False(t, seen[card], "duplicate card %s", card.String())
		seen[card] = true
	}
	assert.Len(t, seen, 52)
}
