package game

import "time"

// ActionType is the closed set of moves a seat can make.
type ActionType string

const (
	ActionFold  ActionType = "FOLD"
	ActionCheck ActionType = "CHECK"
	ActionCall  ActionType = "CALL"
	ActionRaise ActionType = "RAISE"
	ActionAllIn ActionType = "ALLIN"

	// forced bets, posted by the table at hand start
	ActionSmallBlind ActionType = "SB"
	ActionBigBlind   ActionType = "BB"
)

// Action is a player's move. Amount is meaningful only for RAISE, where it
// is the new total bet for the round.
type Action struct {
	Type   ActionType `json:"type"`
	Amount int64      `json:"amount,omitempty"`
}

// ActionRecord is an immutable entry in the table's append-only action log.
type ActionRecord struct {
	Seq       uint32     `json:"seq"`
	HandNum   uint32     `json:"handNum"`
	Phase     Phase      `json:"phase"`
	Seat      int        `json:"seat"`
	Player    string     `json:"player"`
	Action    ActionType `json:"action"`
	Amount    int64      `json:"amount"`
	Timestamp time.Time  `json:"timestamp"`
}

func validActionType(t ActionType) bool {
	switch t {
	case ActionFold, ActionCheck, ActionCall, ActionRaise, ActionAllIn:
		return true
	}
	return false
}
