package game

import "context"

// SettlementNotifier forwards committed transitions to the external
// settlement ledger. Implementations live outside the core; the table is
// never blocked on them and a failure never rolls back game state.
type SettlementNotifier interface {
	NotifyHandStarted(ctx context.Context, tableID string, playerIDs []string, seedCommitment string) error
	NotifyAction(ctx context.Context, tableID string, playerID string, action ActionType, amount int64) error
	NotifyHandFinished(ctx context.Context, tableID string, allocations map[string]int64) error
}

// NopSettlementNotifier discards every notification.
type NopSettlementNotifier struct{}

func (NopSettlementNotifier) NotifyHandStarted(context.Context, string, []string, string) error {
	return nil
}

func (NopSettlementNotifier) NotifyAction(context.Context, string, string, ActionType, int64) error {
	return nil
}

func (NopSettlementNotifier) NotifyHandFinished(context.Context, string, map[string]int64) error {
	return nil
}
