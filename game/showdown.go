package game

import (
	"cardroom.dev/server/poker"
)

// finishEarly ends the hand when only one non-folded player remains. The
// survivor takes every pot without revealing cards; the evaluator is never
// invoked.
func (t *Table) finishEarly(tr *Transition) {
	t.collectRoundBets(true)

	winnerSeat := -1
	for seat, p := range t.players {
		if p.Active() {
			winnerSeat = seat
			break
		}
	}
	if winnerSeat == -1 {
		// cannot happen: a fold is rejected once the hand is over
		panic("no active player left to award the pot")
	}
	winner := t.players[winnerSeat]

	allocations := make(map[string]int64)
	potResults := make([]PotResult, 0, len(t.pots))
	for _, pot := range t.pots {
		winner.Stack += pot.Amount
		allocations[winner.Address] += pot.Amount
		potResults = append(potResults, PotResult{
			Amount:  pot.Amount,
			Winners: map[string]int64{winner.Address: pot.Amount},
		})
		pot.Amount = 0
	}

	t.phase = PhaseFinished
	t.lastResult = &HandResult{
		HandNum:        t.handNum,
		Board:          cardStrings(t.communityCards),
		WentToShowdown: false,
		Pots:           potResults,
		Allocations:    allocations,
		SeedReveal:     t.seedSalt,
	}

	tr.HandFinished = &HandFinishedNote{Allocations: allocations}
	tr.emit(t.id, t.handNum, EventHandFinished, t.lastResult)

	t.logger.Info().
		Uint32("hand", t.handNum).
		Str("winner", winner.Address).
		Msg("Hand ended, everyone else folded")
}

// showdown evaluates every contesting hand and distributes each pot to its
// best eligible player(s). Ties split evenly; odd chips go to the winner
// seated closest clockwise from the dealer.
func (t *Table) showdown(tr *Transition) {
	t.phase = PhaseShowdown

	board := t.communityCards
	ranks := make(map[string]int32)
	seatResults := make([]SeatResult, 0, len(t.players))
	for seat, p := range t.players {
		if !p.Active() {
			continue
		}
		cards := make([]poker.Card, 0, 7)
		cards = append(cards, p.HoleCards...)
		cards = append(cards, board...)
		rank, bestCards := poker.Evaluate(cards)
		ranks[p.Address] = rank
		seatResults = append(seatResults, SeatResult{
			Seat:      seat,
			Player:    p.Address,
			HoleCards: cardStrings(p.HoleCards),
			Rank:      rank,
			RankText:  poker.RankString(rank),
			BestCards: cardStrings(bestCards),
		})
	}

	allocations := make(map[string]int64)
	potResults := make([]PotResult, 0, len(t.pots))
	for _, pot := range t.pots {
		if pot.Amount == 0 {
			continue
		}
		winners := t.potWinners(pot, ranks)
		share := pot.Amount / int64(len(winners))
		remainder := pot.Amount % int64(len(winners))

		won := make(map[string]int64)
		for i, seat := range winners {
			amount := share
			if i == 0 {
				// winners are ordered clockwise from the dealer
				amount += remainder
			}
			p := t.players[seat]
			p.Stack += amount
			won[p.Address] = amount
			allocations[p.Address] += amount
		}
		potResults = append(potResults, PotResult{Amount: pot.Amount, Winners: won})
		pot.Amount = 0
	}

	t.phase = PhaseFinished
	t.lastResult = &HandResult{
		HandNum:        t.handNum,
		Board:          cardStrings(board),
		WentToShowdown: true,
		Pots:           potResults,
		Seats:          seatResults,
		Allocations:    allocations,
		SeedReveal:     t.seedSalt,
	}

	tr.HandFinished = &HandFinishedNote{Allocations: allocations}
	tr.emit(t.id, t.handNum, EventHandFinished, t.lastResult)

	t.logger.Info().
		Uint32("hand", t.handNum).
		Interface("allocations", allocations).
		Msg("Showdown complete")
}

// potWinners returns the seats of the best-ranked eligible players for one
// pot, ordered clockwise starting from the seat after the dealer.
func (t *Table) potWinners(pot *Pot, ranks map[string]int32) []int {
	best := int32(-1)
	n := len(t.players)
	var winners []int
	for i := 1; i <= n; i++ {
		seat := (t.dealerIndex + i) % n
		p := t.players[seat]
		if !p.Active() || !pot.Eligible.Contains(p.Address) {
			continue
		}
		rank, ok := ranks[p.Address]
		if !ok {
			continue
		}
		if best == -1 || rank < best {
			best = rank
			winners = []int{seat}
		} else if rank == best {
			winners = append(winners, seat)
		}
	}
	return winners
}

// LastResult returns the most recent finished hand's summary, or nil.
func (t *Table) LastResult() *HandResult {
	return t.lastResult
}
