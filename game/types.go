package game

import (
	"fmt"
	"strings"
)

// Phase is a strictly forward-progressing segment of a hand. WAITING and
// FINISHED bound the hand lifecycle; a table cycles back to a fresh
// PREFLOP for the next hand.
type Phase int32

const (
	PhaseWaiting Phase = iota
	PhasePreflop
	PhaseFlop
	PhaseTurn
	PhaseRiver
	PhaseShowdown
	PhaseFinished
)

var phaseNames = map[Phase]string{
	PhaseWaiting:  "WAITING",
	PhasePreflop:  "PREFLOP",
	PhaseFlop:     "FLOP",
	PhaseTurn:     "TURN",
	PhaseRiver:    "RIVER",
	PhaseShowdown: "SHOWDOWN",
	PhaseFinished: "FINISHED",
}

func (p Phase) String() string {
	return phaseNames[p]
}

func (p Phase) MarshalJSON() ([]byte, error) {
	return []byte("\"" + p.String() + "\""), nil
}

func (p *Phase) UnmarshalJSON(data []byte) error {
	name := strings.Trim(string(data), "\"")
	for phase, phaseName := range phaseNames {
		if phaseName == name {
			*p = phase
			return nil
		}
	}
	return fmt.Errorf("unknown phase %q", name)
}

// TableConfig carries the parameters for creating a table.
type TableConfig struct {
	SmallBlind int64 `json:"smallBlind"`
	BigBlind   int64 `json:"bigBlind"`
	MinBuyIn   int64 `json:"minBuyIn"`
	MaxBuyIn   int64 `json:"maxBuyIn"`
	MaxPlayers int   `json:"maxPlayers"`
}

const maxSeats = 10

func (c TableConfig) validate() error {
	if c.SmallBlind <= 0 || c.BigBlind <= 0 {
		return InvalidConfigError{Reason: "blinds must be positive"}
	}
	if c.MinBuyIn <= 0 || c.MaxBuyIn <= 0 {
		return InvalidConfigError{Reason: "buy-in bounds must be positive"}
	}
	if c.MaxBuyIn < c.MinBuyIn {
		return InvalidConfigError{Reason: "maxBuyIn must be >= minBuyIn"}
	}
	if c.MaxPlayers < 2 || c.MaxPlayers > maxSeats {
		return InvalidConfigError{Reason: "maxPlayers must be between 2 and 10"}
	}
	return nil
}

// PotResult reports one pot's outcome at the end of a hand.
type PotResult struct {
	Amount  int64            `json:"amount"`
	Winners map[string]int64 `json:"winners"` // address -> chips won
}

// SeatResult is a showdown line for one contesting player.
type SeatResult struct {
	Seat      int      `json:"seat"`
	Player    string   `json:"player"`
	HoleCards []string `json:"holeCards,omitempty"`
	Rank      int32    `json:"rank,omitempty"`
	RankText  string   `json:"rankText,omitempty"`
	BestCards []string `json:"bestCards,omitempty"`
}

// HandResult is the per-hand summary produced when a hand finishes.
type HandResult struct {
	HandNum        uint32           `json:"handNum"`
	Board          []string         `json:"board"`
	WentToShowdown bool             `json:"wentToShowdown"`
	Pots           []PotResult      `json:"pots"`
	Seats          []SeatResult     `json:"seats,omitempty"`
	Allocations    map[string]int64 `json:"allocations"` // address -> total chips won
	SeedReveal     string           `json:"seedReveal"`
}

// Event is pushed to table observers. Payload marshals with jsoniter at
// the broadcast boundary.
type Event struct {
	Type    string      `json:"type"`
	TableID string      `json:"tableId"`
	HandNum uint32      `json:"handNum"`
	Payload interface{} `json:"payload,omitempty"`
}

const (
	EventHandStarted   = "HAND_STARTED"
	EventPlayerActed   = "PLAYER_ACTED"
	EventPhaseAdvanced = "PHASE_ADVANCED"
	EventHandFinished  = "HAND_FINISHED"
	EventPlayerJoined  = "PLAYER_JOINED"
)
