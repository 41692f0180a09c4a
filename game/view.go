package game

// SeatView is a seat's public state as any observer may see it.
type SeatView struct {
	Seat        int    `json:"seat"`
	Player      string `json:"player"`
	DisplayName string `json:"displayName"`
	Stack       int64  `json:"stack"`
	RoundBet    int64  `json:"roundBet"`
	InHand      bool   `json:"inHand"`
	Folded      bool   `json:"folded"`
	AllIn       bool   `json:"allIn"`
	IsDealer    bool   `json:"isDealer"`
	IsTurn      bool   `json:"isTurn"`
}

// AvailableAction is one legal move for the viewing player, with its
// amount bounds where they apply.
type AvailableAction struct {
	Type       ActionType `json:"type"`
	CallAmount int64      `json:"callAmount,omitempty"`
	MinAmount  int64      `json:"minAmount,omitempty"`
	MaxAmount  int64      `json:"maxAmount,omitempty"`
}

// PlayerView is a consistent snapshot of the table rendered for one
// player: public state for everyone, hole cards only for the viewer.
type PlayerView struct {
	TableID          string            `json:"tableId"`
	HandNum          uint32            `json:"handNum"`
	Phase            Phase             `json:"phase"`
	CommunityCards   []string          `json:"communityCards"`
	PotTotal         int64             `json:"potTotal"`
	Pots             []int64           `json:"pots"`
	CurrentBet       int64             `json:"currentBet"`
	HoleCards        []string          `json:"holeCards"`
	AvailableActions []AvailableAction `json:"availableActions"`
	Seats            []SeatView        `json:"seats"`
	RecentActions    []ActionRecord    `json:"recentActions"`
	LastResult       *HandResult       `json:"lastResult,omitempty"`
}

const recentActionCount = 20

// PlayerView renders the table for one seated player.
func (t *Table) PlayerView(playerID string) (*PlayerView, error) {
	seat := t.seatOf(playerID)
	if seat == -1 {
		return nil, ErrPlayerNotFound
	}
	viewer := t.players[seat]

	seats := make([]SeatView, 0, len(t.players))
	for i, p := range t.players {
		seats = append(seats, SeatView{
			Seat:        i,
			Player:      p.Address,
			DisplayName: p.DisplayName,
			Stack:       p.Stack,
			RoundBet:    p.RoundBet,
			InHand:      p.InHand,
			Folded:      p.Folded,
			AllIn:       p.IsAllIn(),
			IsDealer:    i == t.dealerIndex,
			IsTurn:      t.phase >= PhasePreflop && t.phase <= PhaseRiver && i == t.turnPointer,
		})
	}

	pots := make([]int64, 0, len(t.pots))
	for _, pot := range t.pots {
		pots = append(pots, pot.Amount)
	}

	recent := t.actionLog
	if len(recent) > recentActionCount {
		recent = recent[len(recent)-recentActionCount:]
	}
	recentCopy := make([]ActionRecord, len(recent))
	copy(recentCopy, recent)

	return &PlayerView{
		TableID:          t.id,
		HandNum:          t.handNum,
		Phase:            t.phase,
		CommunityCards:   cardStrings(t.communityCards),
		PotTotal:         t.potTotal(),
		Pots:             pots,
		CurrentBet:       t.currentBet,
		HoleCards:        cardStrings(viewer.HoleCards),
		AvailableActions: t.availableActions(seat),
		Seats:            seats,
		RecentActions:    recentCopy,
		LastResult:       t.lastResult,
	}, nil
}

// availableActions lists the legal moves for a seat, empty unless it is
// that seat's turn in a betting phase.
func (t *Table) availableActions(seat int) []AvailableAction {
	if t.phase < PhasePreflop || t.phase > PhaseRiver {
		return nil
	}
	if seat != t.turnPointer {
		return nil
	}
	p := t.players[seat]
	if !p.CanAct() {
		return nil
	}

	toCall := t.currentBet - p.RoundBet
	actions := []AvailableAction{{Type: ActionFold}}
	if toCall == 0 {
		actions = append(actions, AvailableAction{Type: ActionCheck})
	} else {
		call := toCall
		if call > p.Stack {
			call = p.Stack
		}
		actions = append(actions, AvailableAction{Type: ActionCall, CallAmount: call})
	}

	minRaise := t.config.BigBlind
	if t.currentBet > 0 {
		minRaise = t.currentBet * 2
	}
	maxRaise := p.Stack + p.RoundBet
	if maxRaise >= minRaise {
		actions = append(actions, AvailableAction{Type: ActionRaise, MinAmount: minRaise, MaxAmount: maxRaise})
	}
	actions = append(actions, AvailableAction{Type: ActionAllIn, MaxAmount: p.Stack})

	return actions
}
