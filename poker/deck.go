package poker

import (
	crypto_rand "crypto/rand"
	"encoding/binary"
	"fmt"
	"math/rand"
)

// ErrDeckExhausted is returned when more cards are drawn than remain.
// With a 52-card deck and at most 10 seats this should be unreachable.
var ErrDeckExhausted = fmt.Errorf("deck exhausted")

var fullDeck *Deck

func init() {
	fullDeck = &Deck{cards: initializeFullCards()}
}

// Deck holds the cards not yet dealt in the current hand.
type Deck struct {
	cards   []Card
	randGen *rand.Rand
}

func newSeed() rand.Source {
	var b [8]byte
	_, err := crypto_rand.Read(b[:])
	if err != nil {
		panic("cannot seed math/rand package with cryptographically secure random number generator")
	}
	return rand.NewSource(int64(binary.LittleEndian.Uint64(b[:])))
}

// NewDeck returns a full shuffled deck. A nil source seeds from crypto/rand.
func NewDeck(source rand.Source) *Deck {
	if source == nil {
		source = newSeed()
	}
	deck := &Deck{randGen: rand.New(source)}
	deck.Shuffle()
	return deck
}

// NewDeckNoShuffle returns a full deck in canonical order.
func NewDeckNoShuffle() *Deck {
	deck := &Deck{}
	deck.cards = make([]Card, len(fullDeck.cards))
	copy(deck.cards, fullDeck.cards)
	return deck
}

// Shuffle repopulates all 52 cards and runs a Fisher-Yates pass, so every
// permutation is equally likely.
func (deck *Deck) Shuffle() *Deck {
	deck.cards = make([]Card, len(fullDeck.cards))
	copy(deck.cards, fullDeck.cards)

	randGen := deck.randGen
	if randGen == nil {
		randGen = rand.New(newSeed())
	}
	for i := len(deck.cards) - 1; i > 0; i-- {
		loc := randGen.Intn(i + 1)
		deck.cards[i], deck.cards[loc] = deck.cards[loc], deck.cards[i]
	}

	return deck
}

// Draw removes and returns the first n cards.
func (deck *Deck) Draw(n int) ([]Card, error) {
	if n > len(deck.cards) {
		return nil, ErrDeckExhausted
	}
	cards := make([]Card, n)
	copy(cards, deck.cards[:n])
	deck.cards = deck.cards[n:]
	return cards, nil
}

func (deck *Deck) Remaining() int {
	return len(deck.cards)
}

// PeekAll returns the undealt cards without consuming them. Used for the
// shuffle commitment and integrity checks.
func (deck *Deck) PeekAll() []Card {
	cards := make([]Card, len(deck.cards))
	copy(cards, deck.cards)
	return cards
}

func (deck *Deck) Empty() bool {
	return len(deck.cards) == 0
}

// GetBytes returns the undealt cards in compact wire form.
func (deck *Deck) GetBytes() []uint8 {
	cards := make([]byte, len(deck.cards))
	for i, card := range deck.cards {
		cards[i] = card.GetByte()
	}
	return cards
}

// DeckFromBytes rebuilds a deck from its compact wire form.
func DeckFromBytes(cardsInByte []byte) *Deck {
	cards := make([]Card, len(cardsInByte))
	for i, cardInByte := range cardsInByte {
		cards[i] = NewCardFromByte(cardInByte)
	}
	return &Deck{cards: cards}
}

func (deck *Deck) PrettyPrint() string {
	return CardsToString(deck.cards)
}

func initializeFullCards() []Card {
	var cards []Card
	for _, rank := range strRanks {
		for suit := range charSuitToIntSuit {
			cards = append(cards, NewCard(string(rank)+string(suit)))
		}
	}
	return cards
}

// CardsInAscii is a scripted set of cards like ["Ah", "Kd"].
type CardsInAscii []string

// DeckFromScript arranges a deck so that the given hole cards and board
// come off the top in deal order. Used by tests to produce known hands.
func DeckFromScript(playerCards []CardsInAscii, flop CardsInAscii, turn Card, river Card) *Deck {
	deck := NewDeck(nil)
	noOfPlayers := len(playerCards)
	for i, holeCards := range playerCards {
		for j, cardStr := range holeCards {
			deckIndex := i + j*noOfPlayers
			deck.placeCard(NewCard(cardStr), deckIndex)
		}
	}

	deckIndex := len(playerCards) * len(playerCards[0])
	for _, cardStr := range flop {
		deck.placeCard(NewCard(cardStr), deckIndex)
		deckIndex++
	}

	deck.placeCard(turn, deckIndex)
	deckIndex++
	deck.placeCard(river, deckIndex)

	return deck
}

func (deck *Deck) placeCard(card Card, deckIndex int) {
	cardLoc := deck.getCardLoc(card)
	if cardLoc < 0 {
		panic(fmt.Sprintf("Deck.placeCard unable to find card %s in deck", card.String()))
	}
	deck.cards[cardLoc] = deck.cards[deckIndex]
	deck.cards[deckIndex] = card
}

func (deck *Deck) getCardLoc(cardToLocate Card) int {
	for i, card := range deck.cards {
		if card == cardToLocate {
			return i
		}
	}
	return -1
}
