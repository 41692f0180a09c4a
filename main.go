package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"cardroom.dev/server/game"
	"cardroom.dev/server/nats"
	"cardroom.dev/server/rest"
	"cardroom.dev/server/settlement"
	"cardroom.dev/server/util"
)

var mainLogger = util.GetZeroLogger("main::main", nil)

var disableSettlement *bool
var disableBroadcast *bool

func init() {
	disableSettlement = flag.Bool("no-settlement", false, "run without the settlement ledger gateway")
	disableBroadcast = flag.Bool("no-broadcast", false, "run without the NATS broadcaster")
}

func main() {
	if err := run(); err != nil {
		mainLogger.Error().Msg(err.Error())
		os.Exit(1)
	}
}

func run() error {
	flag.Parse()
	zerolog.SetGlobalLevel(util.Env.GetZeroLogLogLevel())

	var notifier game.SettlementNotifier
	if *disableSettlement {
		notifier = game.NopSettlementNotifier{}
	} else {
		notifier = settlement.NewHTTPNotifier(util.Env.GetSettlementURL())
	}

	var broadcaster game.Broadcaster
	if *disableBroadcast {
		broadcaster = game.NopBroadcaster{}
	} else {
		natsBroadcaster, err := nats.NewTableBroadcaster(util.Env.GetNatsURL())
		if err != nil {
			return errors.Wrap(err, "Error while connecting to NATS")
		}
		defer natsBroadcaster.Close()
		broadcaster = natsBroadcaster
	}

	var persist game.PersistTableState
	switch method := util.Env.GetPersistMethod(); method {
	case "redis":
		persist = game.NewRedisTableTracker(
			fmt.Sprintf("%s:%d", util.Env.GetRedisHost(), util.Env.GetRedisPort()),
			util.Env.GetRedisPW(),
			util.Env.GetRedisDB(),
		)
	case "memory":
		persist = game.NewMemoryTableTracker()
	default:
		return fmt.Errorf("unknown persist method %q", method)
	}

	registry := game.NewRegistry(notifier, broadcaster, persist)
	server := rest.NewServer(registry)
	return server.Run(util.Env.GetListenPort())
}
