package game

import (
	mapset "github.com/deckarep/golang-set"
)

// Pot is a chip accumulation a subset of players is eligible to win. Side
// pots arise when a player goes all-in for less than the current bet.
type Pot struct {
	Amount   int64
	Eligible mapset.Set // player addresses
}

func newPot() *Pot {
	return &Pot{
		Amount:   0,
		Eligible: mapset.NewSet(),
	}
}

func (p *Pot) add(address string, amount int64) {
	p.Eligible.Add(address)
	p.Amount += amount
}

// lowestBet returns the smallest non-zero round bet among players still
// contesting the hand. Folded players' dead money does not set the cap.
func (t *Table) lowestBet(roundBets []int64) int64 {
	lowest := int64(-1)
	for seat, bet := range roundBets {
		if bet == 0 || !t.players[seat].Active() {
			continue
		}
		if lowest == -1 || bet < lowest {
			lowest = bet
		}
	}
	if lowest == -1 {
		lowest = 0
	}
	return lowest
}

// addBetsToPots peels the round bets into the current pot, capped at the
// lowest live bet, and opens a new side pot while capped all-in players
// leave matched chips behind.
func (t *Table) addBetsToPots(roundBets []int64) {
	currentPot := t.pots[len(t.pots)-1]
	lowest := t.lowestBet(roundBets)

	if lowest == 0 {
		// only folded players' chips remain, no live bet caps them
		for seat, bet := range roundBets {
			if bet > 0 {
				currentPot.add(t.players[seat].Address, bet)
				roundBets[seat] = 0
			}
		}
		return
	}

	allInSeen := false
	for seat, bet := range roundBets {
		if bet == 0 {
			continue
		}
		if t.players[seat].IsAllIn() {
			allInSeen = true
		}
		if bet < lowest {
			// folded player's partial bet, dead money
			currentPot.add(t.players[seat].Address, bet)
			roundBets[seat] = 0
		} else {
			currentPot.add(t.players[seat].Address, lowest)
			roundBets[seat] = bet - lowest
		}
	}

	remaining := 0
	for _, bet := range roundBets {
		if bet > 0 {
			remaining++
		}
	}
	if remaining > 1 || (allInSeen && remaining != 1) {
		t.pots = append(t.pots, newPot())
		t.addBetsToPots(roundBets)
	} else if remaining == 1 {
		// uncalled portion goes back to the bettor
		for seat, bet := range roundBets {
			if bet > 0 {
				t.players[seat].Stack += bet
				t.players[seat].RoundBet -= bet
				roundBets[seat] = 0
			}
		}
	}
}

// collectRoundBets moves every seat's round bet into the pots and resets
// the per-round betting state.
func (t *Table) collectRoundBets(handEnded bool) {
	roundBets := make([]int64, len(t.players))
	for seat, player := range t.players {
		roundBets[seat] = player.RoundBet
	}
	t.addBetsToPots(roundBets)
	for _, player := range t.players {
		player.RoundBet = 0
		if !player.IsAllIn() {
			player.acted = false
		}
	}
	t.currentBet = 0
	t.removeFoldedFromPots()
	t.removeEmptyPots(handEnded)
}

func (t *Table) removeFoldedFromPots() {
	for _, pot := range t.pots {
		for _, player := range t.players {
			if player.Folded && pot.Eligible.Contains(player.Address) {
				pot.Eligible.Remove(player.Address)
			}
		}
	}
}

// removeEmptyPots drops zero-chip pots before distribution. Mid-hand the
// empty tail pot marks an all-in boundary and must stay.
func (t *Table) removeEmptyPots(handEnded bool) {
	if !handEnded {
		return
	}
	pots := make([]*Pot, 0, len(t.pots))
	for _, pot := range t.pots {
		if pot.Amount > 0 {
			pots = append(pots, pot)
		}
	}
	if len(pots) == 0 {
		pots = append(pots, t.pots[0])
	}
	t.pots = pots
}

// potTotal is the number of chips across all pots.
func (t *Table) potTotal() int64 {
	total := int64(0)
	for _, pot := range t.pots {
		total += pot.Amount
	}
	return total
}
