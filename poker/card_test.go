package poker

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewCard(t *testing.T) {
	card := NewCard("As")
	assert.Equal(t, int32(12), card.Rank())
	assert.Equal(t, int32(1), card.Suit())
	assert.Equal(t, "As", card.String())

	card = NewCard("2c")
	assert.Equal(t, int32(0), card.Rank())
	assert.Equal(t, int32(8), card.Suit())
	assert.Equal(t, "2c", card.String())

	card = NewCard("Td")
	assert.Equal(t, int32(8), card.Rank())
	assert.Equal(t, int32(4), card.Suit())
	assert.Equal(t, "Td", card.String())
}

func TestCardByteRoundTrip(t *testing.T) {
	for _, s := range []string{"As", "Kh", "Qd", "Jc", "Ts", "9h", "2c", "7d"} {
		card := NewCard(s)
		assert.Equal(t, card, NewCardFromByte(card.GetByte()), "card %s", s)
	}
}

func TestCardPrime(t *testing.T) {
	assert.Equal(t, int32(2), NewCard("2s").Prime())
	assert.Equal(t, int32(41), NewCard("Ah").Prime())
}
