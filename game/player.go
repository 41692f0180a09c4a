package game

import (
	"cardroom.dev/server/poker"
)

// Player is a seated participant. The seat index within Table.players is
// the turn-order reference.
type Player struct {
	Address     string
	DisplayName string
	Stack       int64
	HoleCards   []poker.Card

	// per-hand state
	InHand   bool
	Folded   bool
	RoundBet int64

	// acted since the last bet or raise of the current round
	acted bool
}

// IsAllIn reports whether the player has committed their entire stack and
// is still contesting the hand. All-in players never act again but remain
// pot-eligible.
func (p *Player) IsAllIn() bool {
	return p.InHand && !p.Folded && p.Stack == 0
}

// Active reports whether the player still owes decisions this hand.
func (p *Player) Active() bool {
	return p.InHand && !p.Folded
}

// CanAct reports whether the player can take a voluntary action.
func (p *Player) CanAct() bool {
	return p.Active() && p.Stack > 0
}

func (p *Player) resetForHand() {
	p.HoleCards = nil
	p.InHand = false
	p.Folded = false
	p.RoundBet = 0
	p.acted = false
}
