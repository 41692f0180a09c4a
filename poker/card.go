package poker

import (
	"fmt"
	"strings"
)

// Card is a bit-packed card value.
// bits 16-28: rank bit (one of 13), bits 12-15: suit,
// bits 8-11: rank index, bits 0-7: rank prime.
type Card int32

var (
	intRanks [13]int32
	strRanks = "23456789TJQKA"
	primes   = []int32{2, 3, 5, 7, 11, 13, 17, 19, 23, 29, 31, 37, 41}
)

var (
	charRankToIntRank = map[uint8]int32{}
	charSuitToIntSuit = map[uint8]int32{
		's': 1, // spades
		'h': 2, // hearts
		'd': 4, // diamonds
		'c': 8, // clubs
	}
	intSuitToCharSuit = "xshxdxxxc"
)

var prettySuits = map[int32]string{
	1: "♠", // spades
	2: "❤", // hearts
	4: "♦", // diamonds
	8: "♣", // clubs
}

func init() {
	for i := 0; i < 13; i++ {
		intRanks[i] = int32(i)
	}
	for i := range strRanks {
		charRankToIntRank[strRanks[i]] = intRanks[i]
	}
}

// NewCard parses a two-character card string like "As" or "Td".
func NewCard(s string) Card {
	rankInt := charRankToIntRank[s[0]]
	suitInt := charSuitToIntSuit[s[1]]
	rankPrime := primes[rankInt]

	bitRank := int32(1) << uint32(rankInt) << 16
	suit := suitInt << 12
	rank := rankInt << 8

	return Card(bitRank | suit | rank | rankPrime)
}

// NewCardFromByte decodes the compact wire form.
// High 4 bits rank of the card, low 4 bits suit of the card.
func NewCardFromByte(cardByte uint8) Card {
	rankInt := int32(cardByte >> 4)
	suitInt := int32(cardByte & 0xF)
	rankPrime := primes[rankInt]

	bitRank := int32(1) << uint32(rankInt) << 16
	suit := suitInt << 12
	rank := rankInt << 8

	return Card(bitRank | suit | rank | rankPrime)
}

func (c Card) String() string {
	return string(strRanks[c.Rank()]) + string(intSuitToCharSuit[c.Suit()])
}

func (c *Card) MarshalJSON() ([]byte, error) {
	return []byte("\"" + c.String() + "\""), nil
}

func (c *Card) UnmarshalJSON(b []byte) error {
	*c = NewCard(string(b[1:3]))
	return nil
}

func (c Card) Rank() int32 {
	return (int32(c) >> 8) & 0xF
}

func (c Card) Suit() int32 {
	return (int32(c) >> 12) & 0xF
}

func (c Card) BitRank() int32 {
	return (int32(c) >> 16) & 0x1FFF
}

func (c Card) Prime() int32 {
	return int32(c) & 0x3F
}

func (c Card) GetByte() uint8 {
	return uint8((c.Rank() << 4) | c.Suit())
}

func (c Card) Pretty() string {
	return string(strRanks[c.Rank()]) + prettySuits[c.Suit()]
}

func primeProductFromHand(cards []Card) int32 {
	product := int32(1)
	for _, card := range cards {
		product *= int32(card) & 0xFF
	}
	return product
}

func primeProductFromRankBits(rankBits int32) int32 {
	product := int32(1)
	for _, i := range intRanks {
		if rankBits&(1<<uint(i)) != 0 {
			product *= primes[i]
		}
	}
	return product
}

// CardsToString renders a hand like [ A♠ T♦ ].
func CardsToString(cards []Card) string {
	var b strings.Builder
	b.Grow(32)
	fmt.Fprintf(&b, "[")
	for _, c := range cards {
		fmt.Fprintf(&b, " %s ", c.Pretty())
	}
	fmt.Fprintf(&b, "]")
	return b.String()
}
