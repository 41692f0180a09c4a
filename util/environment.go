package util

import (
	"fmt"
	"os"
	"strconv"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

var environmentLogger = log.With().Str("logger_name", "util::environment").Logger()

type cardroomEnvironment struct {
	ListenPort    string
	PersistMethod string
	RedisHost     string
	RedisPort     string
	RedisPW       string
	RedisDB       string
	NatsURL       string
	SettlementURL string
	LogLevel      string
}

// Env is a helper object for accessing environment variables.
var Env = &cardroomEnvironment{
	ListenPort:    "LISTEN_PORT",
	PersistMethod: "PERSIST_METHOD",
	RedisHost:     "REDIS_HOST",
	RedisPort:     "REDIS_PORT",
	RedisPW:       "REDIS_PW",
	RedisDB:       "REDIS_DB",
	NatsURL:       "NATS_URL",
	SettlementURL: "SETTLEMENT_URL",
	LogLevel:      "LOG_LEVEL",
}

func (c *cardroomEnvironment) GetListenPort() int {
	portStr := os.Getenv(c.ListenPort)
	if portStr == "" {
		return 8080
	}
	portNum, err := strconv.Atoi(portStr)
	if err != nil {
		msg := fmt.Sprintf("Invalid listen port %s", portStr)
		environmentLogger.Error().Msg(msg)
		panic(msg)
	}
	return portNum
}

func (c *cardroomEnvironment) GetPersistMethod() string {
	method := os.Getenv(c.PersistMethod)
	if method == "" {
		return "memory"
	}
	return method
}

func (c *cardroomEnvironment) GetRedisHost() string {
	host := os.Getenv(c.RedisHost)
	if host == "" {
		msg := fmt.Sprintf("%s is not defined", c.RedisHost)
		environmentLogger.Error().Msg(msg)
		panic(msg)
	}
	return host
}

func (c *cardroomEnvironment) GetRedisPort() int {
	portStr := os.Getenv(c.RedisPort)
	if portStr == "" {
		msg := fmt.Sprintf("%s is not defined", c.RedisPort)
		environmentLogger.Error().Msg(msg)
		panic(msg)
	}
	portNum, err := strconv.Atoi(portStr)
	if err != nil {
		msg := fmt.Sprintf("Invalid Redis port %s", portStr)
		environmentLogger.Error().Msg(msg)
		panic(msg)
	}
	return portNum
}

func (c *cardroomEnvironment) GetRedisPW() string {
	return os.Getenv(c.RedisPW)
}

func (c *cardroomEnvironment) GetRedisDB() int {
	dbStr := os.Getenv(c.RedisDB)
	if dbStr == "" {
		return 0
	}
	dbNum, err := strconv.Atoi(dbStr)
	if err != nil {
		msg := fmt.Sprintf("Invalid Redis db %s", dbStr)
		environmentLogger.Error().Msg(msg)
		panic(msg)
	}
	return dbNum
}

func (c *cardroomEnvironment) GetNatsURL() string {
	url := os.Getenv(c.NatsURL)
	if url == "" {
		msg := fmt.Sprintf("%s is not defined", c.NatsURL)
		environmentLogger.Error().Msg(msg)
		panic(msg)
	}
	return url
}

func (c *cardroomEnvironment) GetSettlementURL() string {
	url := os.Getenv(c.SettlementURL)
	if url == "" {
		msg := fmt.Sprintf("%s is not defined", c.SettlementURL)
		environmentLogger.Error().Msg(msg)
		panic(msg)
	}
	return url
}

func (c *cardroomEnvironment) GetZeroLogLogLevel() zerolog.Level {
	levelStr := os.Getenv(c.LogLevel)
	switch levelStr {
	case "":
		return zerolog.InfoLevel
	case "debug":
		return zerolog.DebugLevel
	case "info":
		return zerolog.InfoLevel
	case "warn":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	case "disabled":
		return zerolog.Disabled
	default:
		msg := fmt.Sprintf("Unsupported log level %s", levelStr)
		environmentLogger.Error().Msg(msg)
		panic(msg)
	}
}
