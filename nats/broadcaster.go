package nats

import (
	jsoniter "github.com/json-iterator/go"
	natsgo "github.com/nats-io/nats.go"
	"github.com/rs/zerolog/log"

	"cardroom.dev/server/game"
)

var natsLogger = log.With().Str("logger_name", "nats::broadcaster").Logger()

// TableBroadcaster pushes table events to NATS subjects. Best effort: a
// failed publish is logged and dropped, the core never waits on delivery.
type TableBroadcaster struct {
	nc *natsgo.Conn
}

func NewTableBroadcaster(natsURL string) (*TableBroadcaster, error) {
	nc, err := natsgo.Connect(natsURL)
	if err != nil {
		natsLogger.Error().Msgf("Failed to connect to nats server: %v", err)
		return nil, err
	}
	return &TableBroadcaster{nc: nc}, nil
}

func (b *TableBroadcaster) Publish(tableID string, event game.Event) {
	data, err := jsoniter.Marshal(event)
	if err != nil {
		natsLogger.Error().Err(err).Str("table", tableID).Msg("Failed to marshal event")
		return
	}
	subject := GetTable2AllPlayerSubject(tableID)
	if err := b.nc.Publish(subject, data); err != nil {
		natsLogger.Error().Err(err).
			Str("table", tableID).
			Str("subject", subject).
			Msg("Failed to publish event")
	}
}

func (b *TableBroadcaster) Close() {
	b.nc.Close()
}
