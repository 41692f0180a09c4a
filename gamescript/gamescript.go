// Package gamescript reads YAML hand scripts: known hole cards, a known
// board, and per-street actions with an expected outcome. Tests drive
// full hands through the table with them.
package gamescript

import (
	"fmt"
	"io/ioutil"

	mapset "github.com/deckarep/golang-set"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Script contains hand script YAML content.
type Script struct {
	Table   Table        `yaml:"table"`
	Seats   []Seat       `yaml:"starting-seats"`
	Board   []string     `yaml:"board"`
	Preflop []SeatAction `yaml:"preflop"`
	Flop    []SeatAction `yaml:"flop"`
	Turn    []SeatAction `yaml:"turn"`
	River   []SeatAction `yaml:"river"`
	Expect  Expect       `yaml:"expect"`
}

type Table struct {
	SmallBlind int64 `yaml:"small-blind"`
	BigBlind   int64 `yaml:"big-blind"`
	MinBuyIn   int64 `yaml:"min-buy-in"`
	MaxBuyIn   int64 `yaml:"max-buy-in"`
	MaxPlayers int   `yaml:"max-players"`
}

type Seat struct {
	Player string   `yaml:"player"`
	BuyIn  int64    `yaml:"buy-in"`
	Cards  []string `yaml:"cards"`
}

type SeatAction struct {
	Player string `yaml:"player"`
	Action string `yaml:"action"`
	Amount int64  `yaml:"amount"`
}

type Expect struct {
	Phase       string           `yaml:"phase"`
	Stacks      map[string]int64 `yaml:"stacks"`
	Allocations map[string]int64 `yaml:"allocations"`
	Showdown    *bool            `yaml:"showdown"`
}

// ReadGameScript reads hand script content from the given file.
func ReadGameScript(fileName string) (*Script, error) {
	bytes, err := ioutil.ReadFile(fileName)
	if err != nil {
		return nil, errors.Wrapf(err, "Error reading game script file [%s]", fileName)
	}
	var script Script
	if err = yaml.Unmarshal(bytes, &script); err != nil {
		return nil, errors.Wrapf(err, "Error parsing YAML file [%s]", fileName)
	}
	if err = script.Validate(); err != nil {
		return nil, errors.Wrapf(err, "Invalid game script [%s]", fileName)
	}
	return &script, nil
}

// Validate checks the script is playable: two hole cards per seat, a full
// board, and no card used twice.
func (s *Script) Validate() error {
	if len(s.Seats) < 2 {
		return fmt.Errorf("script needs at least 2 starting seats")
	}
	if len(s.Board) != 5 {
		return fmt.Errorf("script board must have 5 cards, has %d", len(s.Board))
	}

	usedCards := mapset.NewSet()
	for _, seat := range s.Seats {
		if len(seat.Cards) != 2 {
			return fmt.Errorf("seat %s must have 2 cards, has %d", seat.Player, len(seat.Cards))
		}
		for _, card := range seat.Cards {
			if !usedCards.Add(card) {
				return fmt.Errorf("card %s used more than once", card)
			}
		}
	}
	for _, card := range s.Board {
		if !usedCards.Add(card) {
			return fmt.Errorf("card %s used more than once", card)
		}
	}
	return nil
}

// ActionsForStreet returns the scripted actions for a street name.
func (s *Script) ActionsForStreet(street string) []SeatAction {
	switch street {
	case "preflop":
		return s.Preflop
	case "flop":
		return s.Flop
	case "turn":
		return s.Turn
	case "river":
		return s.River
	}
	return nil
}
