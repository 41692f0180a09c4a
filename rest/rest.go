// Package rest exposes the table query surface over HTTP. Caller
// authentication belongs to the gateway in front of this server.
package rest

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"cardroom.dev/server/game"
)

var restLogger = log.With().Str("logger_name", "rest::rest").Logger()

type appError struct {
	Code    int    `json:"code"`
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

type Server struct {
	registry *game.Registry
}

func NewServer(registry *game.Registry) *Server {
	return &Server{registry: registry}
}

func (s *Server) router() *gin.Engine {
	r := gin.Default()
	r.POST("/new-table", s.newTable)
	r.POST("/table/:tableId/join", s.joinTable)
	r.POST("/table/:tableId/start-hand", s.startHand)
	r.POST("/table/:tableId/action", s.submitAction)
	r.GET("/table/:tableId/view", s.playerView)
	r.DELETE("/table/:tableId", s.removeTable)
	return r
}

// Run blocks serving the REST surface.
func (s *Server) Run(port int) error {
	restLogger.Info().Msg(fmt.Sprintf("Listening on port %d", port))
	return s.router().Run(fmt.Sprintf(":%d", port))
}

// writeError maps the core error taxonomy onto HTTP responses.
func writeError(c *gin.Context, err error) {
	var invalidAction game.InvalidActionError
	var insufficientFunds game.InsufficientFundsError
	var invalidConfig game.InvalidConfigError
	var settlementErr game.SettlementError

	switch {
	case errors.Is(err, game.ErrTableNotFound), errors.Is(err, game.ErrPlayerNotFound):
		c.JSON(http.StatusNotFound, appError{Code: http.StatusNotFound, Kind: "NotFound", Message: err.Error()})
	case errors.As(err, &invalidAction):
		c.JSON(http.StatusBadRequest, appError{Code: http.StatusBadRequest, Kind: "InvalidAction", Message: err.Error()})
	case errors.As(err, &insufficientFunds):
		c.JSON(http.StatusBadRequest, appError{Code: http.StatusBadRequest, Kind: "InsufficientFunds", Message: err.Error()})
	case errors.As(err, &invalidConfig):
		c.JSON(http.StatusBadRequest, appError{Code: http.StatusBadRequest, Kind: "InvalidConfig", Message: err.Error()})
	case errors.As(err, &settlementErr):
		// the game state committed; the ledger record is behind
		c.JSON(http.StatusBadGateway, appError{Code: http.StatusBadGateway, Kind: "SettlementFailure", Message: err.Error()})
	default:
		restLogger.Error().Err(err).Msg("Internal error")
		c.JSON(http.StatusInternalServerError, appError{Code: http.StatusInternalServerError, Kind: "Internal", Message: "Internal Server Error"})
	}
}

func (s *Server) newTable(c *gin.Context) {
	var config game.TableConfig
	if err := c.ShouldBindJSON(&config); err != nil {
		c.JSON(http.StatusBadRequest, appError{Code: http.StatusBadRequest, Kind: "InvalidConfig", Message: err.Error()})
		return
	}
	tableID, err := s.registry.CreateTable(config)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"tableId": tableID})
}

type joinRequest struct {
	Address     string `json:"address" binding:"required"`
	DisplayName string `json:"displayName"`
	BuyIn       int64  `json:"buyIn" binding:"required"`
}

func (s *Server) joinTable(c *gin.Context) {
	var req joinRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, appError{Code: http.StatusBadRequest, Kind: "InvalidAction", Message: err.Error()})
		return
	}
	seat, err := s.registry.JoinTable(c.Param("tableId"), req.Address, req.DisplayName, req.BuyIn)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"seat": seat})
}

func (s *Server) startHand(c *gin.Context) {
	phase, err := s.registry.StartHand(c.Param("tableId"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"phase": phase.String()})
}

type actionRequest struct {
	PlayerID string `json:"playerId" binding:"required"`
	Action   string `json:"action" binding:"required"`
	Amount   int64  `json:"amount"`
}

func (s *Server) submitAction(c *gin.Context) {
	var req actionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, appError{Code: http.StatusBadRequest, Kind: "InvalidAction", Message: err.Error()})
		return
	}
	action := game.Action{Type: game.ActionType(req.Action), Amount: req.Amount}
	if err := s.registry.SubmitAction(c.Param("tableId"), req.PlayerID, action); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "applied"})
}

func (s *Server) playerView(c *gin.Context) {
	playerID := c.Query("playerId")
	if playerID == "" {
		c.JSON(http.StatusBadRequest, appError{Code: http.StatusBadRequest, Kind: "InvalidAction", Message: "playerId is required"})
		return
	}
	view, err := s.registry.PlayerView(c.Param("tableId"), playerID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

func (s *Server) removeTable(c *gin.Context) {
	if err := s.registry.Remove(c.Param("tableId")); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "removed"})
}
