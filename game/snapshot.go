package game

import (
	mapset "github.com/deckarep/golang-set"

	"cardroom.dev/server/poker"
)

// PlayerSnapshot is the serializable form of a seated player.
type PlayerSnapshot struct {
	Address     string   `json:"address"`
	DisplayName string   `json:"displayName"`
	Stack       int64    `json:"stack"`
	HoleCards   []uint8  `json:"holeCards,omitempty"`
	InHand      bool     `json:"inHand"`
	Folded      bool     `json:"folded"`
	RoundBet    int64    `json:"roundBet"`
	Acted       bool     `json:"acted"`
}

// PotSnapshot is the serializable form of a pot.
type PotSnapshot struct {
	Amount   int64    `json:"amount"`
	Eligible []string `json:"eligible"`
}

// TableSnapshot is a full, consistent copy of a table taken at a
// post-mutation boundary. A durable-storage adapter can save and restore
// it without any other core support.
type TableSnapshot struct {
	ID             string           `json:"id"`
	Config         TableConfig      `json:"config"`
	Phase          Phase            `json:"phase"`
	HandNum        uint32           `json:"handNum"`
	Deck           []uint8          `json:"deck,omitempty"`
	CommunityCards []uint8          `json:"communityCards,omitempty"`
	Pots           []PotSnapshot    `json:"pots"`
	CurrentBet     int64            `json:"currentBet"`
	TurnPointer    int              `json:"turnPointer"`
	DealerIndex    int              `json:"dealerIndex"`
	Players        []PlayerSnapshot `json:"players"`
	ActionLog      []ActionRecord   `json:"actionLog"`
	ActionSeq      uint32           `json:"actionSeq"`
	SeedCommit     string           `json:"seedCommit"`
	SeedSalt       string           `json:"seedSalt"`
	LastResult     *HandResult      `json:"lastResult,omitempty"`
}

// Snapshot copies the table state. The caller must hold the table's
// exclusivity; the returned value shares nothing with the live table.
func (t *Table) Snapshot() *TableSnapshot {
	players := make([]PlayerSnapshot, len(t.players))
	for i, p := range t.players {
		players[i] = PlayerSnapshot{
			Address:     p.Address,
			DisplayName: p.DisplayName,
			Stack:       p.Stack,
			HoleCards:   cardBytes(p.HoleCards),
			InHand:      p.InHand,
			Folded:      p.Folded,
			RoundBet:    p.RoundBet,
			Acted:       p.acted,
		}
	}

	pots := make([]PotSnapshot, len(t.pots))
	for i, pot := range t.pots {
		eligible := make([]string, 0, pot.Eligible.Cardinality())
		for _, addr := range pot.Eligible.ToSlice() {
			eligible = append(eligible, addr.(string))
		}
		pots[i] = PotSnapshot{Amount: pot.Amount, Eligible: eligible}
	}

	var deckBytes []uint8
	if t.deck != nil {
		deckBytes = t.deck.GetBytes()
	}

	actionLog := make([]ActionRecord, len(t.actionLog))
	copy(actionLog, t.actionLog)

	return &TableSnapshot{
		ID:             t.id,
		Config:         t.config,
		Phase:          t.phase,
		HandNum:        t.handNum,
		Deck:           deckBytes,
		CommunityCards: cardBytes(t.communityCards),
		Pots:           pots,
		CurrentBet:     t.currentBet,
		TurnPointer:    t.turnPointer,
		DealerIndex:    t.dealerIndex,
		Players:        players,
		ActionLog:      actionLog,
		ActionSeq:      t.actionSeq,
		SeedCommit:     t.seedCommit,
		SeedSalt:       t.seedSalt,
		LastResult:     t.lastResult,
	}
}

// TableFromSnapshot rebuilds a live table from a saved snapshot.
func TableFromSnapshot(s *TableSnapshot) *Table {
	players := make([]*Player, len(s.Players))
	for i, ps := range s.Players {
		players[i] = &Player{
			Address:     ps.Address,
			DisplayName: ps.DisplayName,
			Stack:       ps.Stack,
			HoleCards:   cardsFromBytes(ps.HoleCards),
			InHand:      ps.InHand,
			Folded:      ps.Folded,
			RoundBet:    ps.RoundBet,
			acted:       ps.Acted,
		}
	}

	pots := make([]*Pot, len(s.Pots))
	for i, ps := range s.Pots {
		eligible := mapset.NewSet()
		for _, addr := range ps.Eligible {
			eligible.Add(addr)
		}
		pots[i] = &Pot{Amount: ps.Amount, Eligible: eligible}
	}
	if len(pots) == 0 {
		pots = []*Pot{newPot()}
	}

	var deck *poker.Deck
	if len(s.Deck) > 0 {
		deck = poker.DeckFromBytes(s.Deck)
	}

	return &Table{
		id:             s.ID,
		config:         s.Config,
		players:        players,
		phase:          s.Phase,
		deck:           deck,
		communityCards: cardsFromBytes(s.CommunityCards),
		pots:           pots,
		currentBet:     s.CurrentBet,
		turnPointer:    s.TurnPointer,
		dealerIndex:    s.DealerIndex,
		handNum:        s.HandNum,
		actionLog:      s.ActionLog,
		actionSeq:      s.ActionSeq,
		seedCommit:     s.SeedCommit,
		seedSalt:       s.SeedSalt,
		lastResult:     s.LastResult,
		logger:         tableLogger.With().Str("table", s.ID).Logger(),
	}
}

func cardBytes(cards []poker.Card) []uint8 {
	if len(cards) == 0 {
		return nil
	}
	out := make([]uint8, len(cards))
	for i, c := range cards {
		out[i] = c.GetByte()
	}
	return out
}

func cardsFromBytes(bytes []uint8) []poker.Card {
	if len(bytes) == 0 {
		return nil
	}
	out := make([]poker.Card, len(bytes))
	for i, b := range bytes {
		out[i] = poker.NewCardFromByte(b)
	}
	return out
}
