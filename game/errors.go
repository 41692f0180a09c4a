package game

import "fmt"

// ErrTableNotFound is returned when a table id is not in the registry.
var ErrTableNotFound = fmt.Errorf("table not found")

// ErrPlayerNotFound is returned when a player address is not seated.
var ErrPlayerNotFound = fmt.Errorf("player not found")

// InvalidActionError rejects a rule violation. The table state is left
// unchanged.
type InvalidActionError struct {
	Reason string
}

func (e InvalidActionError) Error() string {
	return fmt.Sprintf("invalid action: %s", e.Reason)
}

// InsufficientFundsError rejects a wager larger than the player's stack.
type InsufficientFundsError struct {
	Available int64
	Needed    int64
}

func (e InsufficientFundsError) Error() string {
	return fmt.Sprintf("insufficient chips: have %d, need %d", e.Available, e.Needed)
}

// InvalidConfigError rejects a bad table configuration.
type InvalidConfigError struct {
	Reason string
}

func (e InvalidConfigError) Error() string {
	return fmt.Sprintf("invalid table config: %s", e.Reason)
}

// SettlementError reports a failed settlement notification. The in-memory
// game state already reflects the committed transition and is not rolled
// back; the caller sees this error so the divergence can be reconciled
// outside the core.
type SettlementError struct {
	Op  string
	Err error
}

func (e SettlementError) Error() string {
	return fmt.Sprintf("settlement %s failed: %v", e.Op, e.Err)
}

func (e SettlementError) Unwrap() error {
	return e.Err
}
