package game

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"cardroom.dev/server/poker"
)

var tableLogger = log.With().Str("logger_name", "game::table").Logger()

// Table owns the authoritative state of one game. All methods must be
// called under the registry's per-table exclusivity; the Table itself does
// no locking.
type Table struct {
	id             string
	config         TableConfig
	players        []*Player
	phase          Phase
	deck           *poker.Deck
	communityCards []poker.Card
	pots           []*Pot
	currentBet     int64
	turnPointer    int
	dealerIndex    int
	handNum        uint32
	actionLog      []ActionRecord
	actionSeq      uint32
	lastResult     *HandResult
	seedCommit     string
	seedSalt       string

	// scripted deck for the next hand, tests only
	nextDeck *poker.Deck

	logger zerolog.Logger
}

// Transition is the record of a committed mutation. The registry consumes
// it after the state change: events go to the broadcaster, the notes go to
// the settlement ledger outside the table's exclusivity window.
type Transition struct {
	Events       []Event
	HandStarted  *HandStartedNote
	Actions      []ActionNote
	HandFinished *HandFinishedNote
}

type HandStartedNote struct {
	PlayerIDs      []string
	SeedCommitment string
}

type ActionNote struct {
	Player string
	Action ActionType
	Amount int64
}

type HandFinishedNote struct {
	Allocations map[string]int64
}

func (tr *Transition) emit(tableID string, handNum uint32, eventType string, payload interface{}) {
	tr.Events = append(tr.Events, Event{
		Type:    eventType,
		TableID: tableID,
		HandNum: handNum,
		Payload: payload,
	})
}

// NewTable creates a table in the WAITING phase.
func NewTable(id string, config TableConfig) (*Table, error) {
	if err := config.validate(); err != nil {
		return nil, err
	}
	return &Table{
		id:     id,
		config: config,
		phase:  PhaseWaiting,
		pots:   []*Pot{newPot()},
		logger: tableLogger.With().Str("table", id).Logger(),
	}, nil
}

func (t *Table) ID() string {
	return t.id
}

func (t *Table) Phase() Phase {
	return t.phase
}

func (t *Table) HandNum() uint32 {
	return t.handNum
}

// SetNextDeck schedules a prearranged deck for the next hand. Tests use
// this with poker.DeckFromScript; production hands always shuffle fresh.
func (t *Table) SetNextDeck(deck *poker.Deck) {
	t.nextDeck = deck
}

// Join seats a new player. Players can only be added while no hand is
// running.
func (t *Table) Join(address string, displayName string, buyIn int64) (int, *Transition, error) {
	if t.phase != PhaseWaiting && t.phase != PhaseFinished {
		return 0, nil, InvalidActionError{Reason: "cannot join while a hand is in progress"}
	}
	if len(t.players) >= t.config.MaxPlayers {
		return 0, nil, InvalidActionError{Reason: "table is full"}
	}
	if buyIn < t.config.MinBuyIn || buyIn > t.config.MaxBuyIn {
		return 0, nil, InvalidActionError{
			Reason: fmt.Sprintf("buy-in %d outside [%d, %d]", buyIn, t.config.MinBuyIn, t.config.MaxBuyIn),
		}
	}
	for _, p := range t.players {
		if p.Address == address {
			return 0, nil, InvalidActionError{Reason: "player already seated"}
		}
	}

	t.players = append(t.players, &Player{
		Address:     address,
		DisplayName: displayName,
		Stack:       buyIn,
	})
	seat := len(t.players) - 1

	tr := &Transition{}
	tr.emit(t.id, t.handNum, EventPlayerJoined, map[string]interface{}{
		"seat":   seat,
		"player": address,
		"name":   displayName,
	})
	return seat, tr, nil
}

// StartHand moves the table from WAITING/FINISHED into a fresh PREFLOP:
// new shuffled deck, hole cards dealt, blinds posted, action on the seat
// after the big blind.
func (t *Table) StartHand() (*Transition, error) {
	if t.phase != PhaseWaiting && t.phase != PhaseFinished {
		return nil, InvalidActionError{Reason: fmt.Sprintf("cannot start a hand from %s", t.phase)}
	}

	eligible := 0
	for _, p := range t.players {
		if p.Stack > 0 {
			eligible++
		}
	}
	if eligible < 2 {
		return nil, InvalidActionError{Reason: "need at least 2 players with chips"}
	}

	// rotate the button, skipping broke seats
	if t.handNum > 0 {
		t.dealerIndex = t.nextFundedSeat(t.dealerIndex)
	}

	t.handNum++
	t.communityCards = nil
	t.pots = []*Pot{newPot()}
	t.currentBet = 0
	t.actionLog = nil
	t.actionSeq = 0
	t.lastResult = nil
	for _, p := range t.players {
		p.resetForHand()
		if p.Stack > 0 {
			p.InHand = true
		}
	}

	if t.nextDeck != nil {
		t.deck = t.nextDeck
		t.nextDeck = nil
	} else {
		t.deck = poker.NewDeck(nil)
	}
	t.commitToSeed()

	if err := t.dealHoleCards(); err != nil {
		return nil, err
	}

	t.phase = PhasePreflop

	sbSeat, bbSeat := t.blindSeats()
	t.postBlind(sbSeat, ActionSmallBlind, t.config.SmallBlind)
	t.postBlind(bbSeat, ActionBigBlind, t.config.BigBlind)
	t.currentBet = t.config.BigBlind
	t.turnPointer = t.nextActingSeat(bbSeat)

	playerIDs := make([]string, 0, len(t.players))
	for _, p := range t.players {
		if p.InHand {
			playerIDs = append(playerIDs, p.Address)
		}
	}

	tr := &Transition{
		HandStarted: &HandStartedNote{
			PlayerIDs:      playerIDs,
			SeedCommitment: t.seedCommit,
		},
	}
	tr.emit(t.id, t.handNum, EventHandStarted, map[string]interface{}{
		"dealerSeat":     t.dealerIndex,
		"smallBlindSeat": sbSeat,
		"bigBlindSeat":   bbSeat,
		"turnSeat":       t.turnPointer,
		"seedCommitment": t.seedCommit,
	})

	t.logger.Info().
		Uint32("hand", t.handNum).
		Int("dealer", t.dealerIndex).
		Msg("Hand started")

	// blinds can put short stacks all-in before anyone acts
	t.maybeAdvance(tr)

	return tr, nil
}

// commitToSeed publishes a commitment to the shuffled deck order before
// any card is revealed. The salt is disclosed in the hand result so the
// shuffle can be audited after the fact.
func (t *Table) commitToSeed() {
	salt := uuid.New()
	t.seedSalt = hex.EncodeToString(salt[:])

	h := sha256.New()
	for _, c := range t.deck.PeekAll() {
		h.Write([]byte{c.GetByte()})
	}
	h.Write(salt[:])
	t.seedCommit = hex.EncodeToString(h.Sum(nil))
}

func (t *Table) dealHoleCards() error {
	inHand := make([]*Player, 0, len(t.players))
	for _, p := range t.players {
		if p.InHand {
			inHand = append(inHand, p)
		}
	}
	// one card per seat per pass, like a live deal
	for pass := 0; pass < 2; pass++ {
		for _, p := range inHand {
			cards, err := t.deck.Draw(1)
			if err != nil {
				return err
			}
			p.HoleCards = append(p.HoleCards, cards...)
		}
	}
	return nil
}

// blindSeats returns the small and big blind seats. Heads-up the dealer
// posts the small blind and acts first preflop.
func (t *Table) blindSeats() (int, int) {
	inHand := 0
	for _, p := range t.players {
		if p.InHand {
			inHand++
		}
	}
	if inHand == 2 {
		sb := t.dealerIndex
		if !t.players[sb].InHand {
			sb = t.nextInHandSeat(sb)
		}
		return sb, t.nextInHandSeat(sb)
	}
	sb := t.nextInHandSeat(t.dealerIndex)
	return sb, t.nextInHandSeat(sb)
}

// postBlind takes the forced bet, putting the seat all-in when the stack
// is short. The big blind keeps the option to act later.
func (t *Table) postBlind(seat int, blind ActionType, amount int64) {
	p := t.players[seat]
	pay := amount
	action := blind
	if pay >= p.Stack {
		pay = p.Stack
		action = ActionAllIn
	}
	p.Stack -= pay
	p.RoundBet += pay
	t.appendLog(seat, action, p.RoundBet)
}

func (t *Table) appendLog(seat int, action ActionType, amount int64) {
	t.actionSeq++
	t.actionLog = append(t.actionLog, ActionRecord{
		Seq:       t.actionSeq,
		HandNum:   t.handNum,
		Phase:     t.phase,
		Seat:      seat,
		Player:    t.players[seat].Address,
		Action:    action,
		Amount:    amount,
		Timestamp: time.Now().UTC(),
	})
}

// seat iteration helpers

func (t *Table) nextSeat(from int, ok func(*Player) bool) int {
	n := len(t.players)
	for i := 1; i <= n; i++ {
		seat := (from + i) % n
		if ok(t.players[seat]) {
			return seat
		}
	}
	return -1
}

func (t *Table) nextInHandSeat(from int) int {
	return t.nextSeat(from, func(p *Player) bool { return p.InHand })
}

func (t *Table) nextActiveSeat(from int) int {
	return t.nextSeat(from, func(p *Player) bool { return p.Active() })
}

func (t *Table) nextActingSeat(from int) int {
	return t.nextSeat(from, func(p *Player) bool { return p.CanAct() })
}

func (t *Table) nextFundedSeat(from int) int {
	seat := t.nextSeat(from, func(p *Player) bool { return p.Stack > 0 })
	if seat == -1 {
		return from
	}
	return seat
}

func (t *Table) activeCount() int {
	count := 0
	for _, p := range t.players {
		if p.Active() {
			count++
		}
	}
	return count
}

func (t *Table) actingCount() int {
	count := 0
	for _, p := range t.players {
		if p.CanAct() {
			count++
		}
	}
	return count
}

func (t *Table) seatOf(address string) int {
	for seat, p := range t.players {
		if p.Address == address {
			return seat
		}
	}
	return -1
}

// ApplyAction validates and applies one player action. Any validation
// failure returns an error with the table state untouched.
func (t *Table) ApplyAction(playerID string, action Action) (*Transition, error) {
	seat := t.seatOf(playerID)
	if seat == -1 {
		return nil, ErrPlayerNotFound
	}
	if t.phase < PhasePreflop || t.phase > PhaseRiver {
		return nil, InvalidActionError{Reason: fmt.Sprintf("no actions accepted in %s", t.phase)}
	}
	if seat != t.turnPointer {
		return nil, InvalidActionError{Reason: "not your turn"}
	}
	p := t.players[seat]
	if p.Folded {
		return nil, InvalidActionError{Reason: "player has folded"}
	}
	if !p.InHand {
		return nil, InvalidActionError{Reason: "player is not in the hand"}
	}
	if !validActionType(action.Type) {
		return nil, InvalidActionError{Reason: fmt.Sprintf("unknown action %q", action.Type)}
	}

	toCall := t.currentBet - p.RoundBet

	// validate everything before touching state
	switch action.Type {
	case ActionCheck:
		if toCall != 0 {
			return nil, InvalidActionError{Reason: fmt.Sprintf("cannot check facing a bet of %d", toCall)}
		}
	case ActionCall:
		if toCall <= 0 {
			return nil, InvalidActionError{Reason: "nothing to call"}
		}
	case ActionRaise:
		minRaise := t.config.BigBlind
		if t.currentBet > 0 {
			minRaise = t.currentBet * 2
		}
		if action.Amount < minRaise {
			return nil, InvalidActionError{
				Reason: fmt.Sprintf("raise to %d below minimum %d", action.Amount, minRaise),
			}
		}
		needed := action.Amount - p.RoundBet
		if needed <= 0 {
			return nil, InvalidActionError{Reason: "raise must increase the bet"}
		}
		if needed > p.Stack {
			return nil, InsufficientFundsError{Available: p.Stack, Needed: needed}
		}
	case ActionAllIn:
		if p.Stack <= 0 {
			return nil, InvalidActionError{Reason: "no chips left to bet"}
		}
	}

	// committed from here on
	var logAmount int64
	switch action.Type {
	case ActionFold:
		p.Folded = true
		p.acted = true
	case ActionCheck:
		p.acted = true
	case ActionCall:
		pay := toCall
		if pay > p.Stack {
			pay = p.Stack
		}
		p.Stack -= pay
		p.RoundBet += pay
		p.acted = true
		logAmount = p.RoundBet
	case ActionRaise:
		pay := action.Amount - p.RoundBet
		p.Stack -= pay
		p.RoundBet = action.Amount
		p.acted = true
		t.currentBet = action.Amount
		t.reopenAction(seat)
		logAmount = p.RoundBet
	case ActionAllIn:
		p.RoundBet += p.Stack
		p.Stack = 0
		p.acted = true
		if p.RoundBet > t.currentBet {
			t.currentBet = p.RoundBet
			t.reopenAction(seat)
		}
		logAmount = p.RoundBet
	}

	t.appendLog(seat, action.Type, logAmount)

	tr := &Transition{
		Actions: []ActionNote{{Player: playerID, Action: action.Type, Amount: logAmount}},
	}
	tr.emit(t.id, t.handNum, EventPlayerActed, map[string]interface{}{
		"seat":   seat,
		"player": playerID,
		"action": action.Type,
		"amount": logAmount,
	})

	if t.activeCount() > 1 {
		t.turnPointer = t.nextActingSeat(seat)
	}
	t.maybeAdvance(tr)

	return tr, nil
}

// reopenAction marks everyone else as owing a decision after a raise.
func (t *Table) reopenAction(raiserSeat int) {
	for seat, p := range t.players {
		if seat == raiserSeat {
			continue
		}
		if p.CanAct() {
			p.acted = false
		}
	}
}

// bettingRoundComplete reports whether every non-folded, non-all-in player
// has matched the current bet and acted since the last raise. When at most
// one seat can still act, matching the bet is enough; no one is left to
// respond to a further raise.
func (t *Table) bettingRoundComplete() bool {
	acting := t.actingCount()
	for _, p := range t.players {
		if !p.CanAct() {
			continue
		}
		if p.RoundBet != t.currentBet {
			return false
		}
		if !p.acted && acting > 1 {
			return false
		}
	}
	return true
}

// maybeAdvance drives the hand forward after a committed action: early
// termination on a lone survivor, otherwise phase advances while betting
// rounds come back complete (all-in runouts advance several at once).
func (t *Table) maybeAdvance(tr *Transition) {
	if t.phase < PhasePreflop || t.phase > PhaseRiver {
		return
	}

	if t.activeCount() <= 1 {
		t.finishEarly(tr)
		return
	}

	for t.bettingRoundComplete() {
		if t.phase == PhaseRiver {
			t.collectRoundBets(true)
			t.showdown(tr)
			return
		}

		t.collectRoundBets(false)
		if err := t.dealCommunity(); err != nil {
			// unreachable with a 52-card deck and <=10 seats
			t.logger.Error().Err(err).Msg("Deck exhausted while dealing board")
			panic(err)
		}

		t.turnPointer = t.nextActingSeat(t.dealerIndex)
		tr.emit(t.id, t.handNum, EventPhaseAdvanced, map[string]interface{}{
			"phase":    t.phase.String(),
			"board":    cardStrings(t.communityCards),
			"turnSeat": t.turnPointer,
		})
	}
}

func (t *Table) dealCommunity() error {
	var n int
	switch t.phase {
	case PhasePreflop:
		n = 3
		t.phase = PhaseFlop
	case PhaseFlop:
		n = 1
		t.phase = PhaseTurn
	case PhaseTurn:
		n = 1
		t.phase = PhaseRiver
	default:
		return InvalidActionError{Reason: fmt.Sprintf("cannot deal community cards in %s", t.phase)}
	}
	cards, err := t.deck.Draw(n)
	if err != nil {
		return err
	}
	t.communityCards = append(t.communityCards, cards...)
	return nil
}

func cardStrings(cards []poker.Card) []string {
	out := make([]string, len(cards))
	for i, c := range cards {
		out[i] = c.String()
	}
	return out
}
