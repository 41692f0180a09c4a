// Package settlement notifies the external ledger gateway of committed
// game transitions over HTTP. The gateway owns the on-chain contract
// calls; this adapter only reports facts the table has already committed.
package settlement

import (
	"bytes"
	"context"
	"fmt"
	"net/http"

	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"cardroom.dev/server/game"
)

var settlementLogger = log.With().Str("logger_name", "settlement::http").Logger()

// HTTPNotifier implements game.SettlementNotifier against a ledger
// gateway URL.
type HTTPNotifier struct {
	baseURL string
	client  *http.Client
}

func NewHTTPNotifier(baseURL string) *HTTPNotifier {
	return &HTTPNotifier{
		baseURL: baseURL,
		client:  &http.Client{},
	}
}

type handStartedPayload struct {
	TableID        string   `json:"tableId"`
	PlayerIDs      []string `json:"playerIds"`
	SeedCommitment string   `json:"seedCommitment"`
}

type actionPayload struct {
	TableID  string          `json:"tableId"`
	PlayerID string          `json:"playerId"`
	Action   game.ActionType `json:"action"`
	Amount   int64           `json:"amount"`
}

type handFinishedPayload struct {
	TableID     string           `json:"tableId"`
	Allocations map[string]int64 `json:"allocations"`
}

func (n *HTTPNotifier) NotifyHandStarted(ctx context.Context, tableID string, playerIDs []string, seedCommitment string) error {
	return n.post(ctx, "/internal/hand-started", handStartedPayload{
		TableID:        tableID,
		PlayerIDs:      playerIDs,
		SeedCommitment: seedCommitment,
	})
}

func (n *HTTPNotifier) NotifyAction(ctx context.Context, tableID string, playerID string, action game.ActionType, amount int64) error {
	return n.post(ctx, "/internal/action", actionPayload{
		TableID:  tableID,
		PlayerID: playerID,
		Action:   action,
		Amount:   amount,
	})
}

func (n *HTTPNotifier) NotifyHandFinished(ctx context.Context, tableID string, allocations map[string]int64) error {
	return n.post(ctx, "/internal/hand-finished", handFinishedPayload{
		TableID:     tableID,
		Allocations: allocations,
	})
}

func (n *HTTPNotifier) post(ctx context.Context, path string, payload interface{}) error {
	data, err := jsoniter.Marshal(payload)
	if err != nil {
		return errors.Wrap(err, "marshaling settlement payload")
	}

	url := n.baseURL + path
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(data))
	if err != nil {
		return errors.Wrap(err, "building settlement request")
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.client.Do(req)
	if err != nil {
		return errors.Wrapf(err, "posting to %s", url)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		settlementLogger.Error().
			Int("status", resp.StatusCode).
			Str("url", url).
			Msg("Settlement gateway rejected notification")
		return fmt.Errorf("settlement gateway returned %d", resp.StatusCode)
	}
	return nil
}
