package entity

import (
	"fmt"
	"strings"
)

type OutcomeKind string

const (
	OutcomeWinner  OutcomeKind = "winner"
	OutcomeTie     OutcomeKind = "tie"
	OutcomeNoScore OutcomeKind = "no_score"
)

type Outcome struct {
	Kind     OutcomeKind `json:"kind"`
	Winners  []Player    `json:"winners"`
	MaxScore int         `json:"max_score"`
}

// Summary renders the game over message shown to the players.
func (that Outcome) Summary() string {
	switch that.Kind {
	case OutcomeWinner:
		return fmt.Sprintf("%s wins with %d points!", that.Winners[0].Name, that.MaxScore)
	case OutcomeTie:
		names := make([]string, 0, len(that.Winners))
		for _, winner := range that.Winners {
			names = append(names, winner.Name)
		}

		return fmt.Sprintf("It's a tie between %s with %d points!", strings.Join(names, ", "), that.MaxScore)
	default:
		return "It's a tie!"
	}
}

type Game struct {
	ID            string   `json:"id"`
	Size          int      `json:"size"`
	Dots          []Dot    `json:"dots"`
	Edges         []Edge   `json:"edges"`
	Cells         []Cell   `json:"cells"`
	Players       []Player `json:"players"`
	CurrentPlayer int      `json:"current_player"`
	GameOver      bool     `json:"game_over"`
	Outcome       *Outcome `json:"outcome,omitempty"`
}

type MoveResult struct {
	Edge           EdgeID   `json:"edge"`
	CompletedEdges int      `json:"completed_edges"`
	ClaimedCells   []CellID `json:"claimed_cells"`
	CurrentPlayer  int      `json:"current_player"`
	GameOver       bool     `json:"game_over"`
	Outcome        *Outcome `json:"outcome,omitempty"`
}

// EdgeIndex returns the position of the edge in Edges, or -1.
func (that *Game) EdgeIndex(id EdgeID) int {
	for i := range that.Edges {
		if that.Edges[i].ID == id {
			return i
		}
	}

	return -1
}

func (that *Game) Edge(id EdgeID) (Edge, bool) {
	i := that.EdgeIndex(id)
	if i < 0 {
		return Edge{}, false
	}

	return that.Edges[i], true
}

func (that *Game) CompletedEdges() int {
	count := 0
	for _, edge := range that.Edges {
		if edge.Completed {
			count++
		}
	}

	return count
}

func (that *Game) AllEdgesCompleted() bool {
	return that.CompletedEdges() == len(that.Edges)
}

func (that *Game) OwnedCells() int {
	count := 0
	for _, cell := range that.Cells {
		if cell.IsOwned() {
			count++
		}
	}

	return count
}

func (that *Game) TotalScore() int {
	total := 0
	for _, player := range that.Players {
		total += player.Score
	}

	return total
}

// PlayerIndex returns the roster position of the player, or -1.
func (that *Game) PlayerIndex(id int) int {
	for i, player := range that.Players {
		if player.ID == id {
			return i
		}
	}

	return -1
}

func (that *Game) CurrentPlayerInfo() (Player, bool) {
	i := that.PlayerIndex(that.CurrentPlayer)
	if i < 0 {
		return Player{}, false
	}

	return that.Players[i], true
}

// Clone returns a snapshot that shares no memory with the game.
func (that *Game) Clone() *Game {
	if that == nil {
		return nil
	}

	clone := *that
	clone.Dots = append([]Dot(nil), that.Dots...)
	clone.Edges = append([]Edge(nil), that.Edges...)
	clone.Cells = append([]Cell(nil), that.Cells...)
	clone.Players = append([]Player(nil), that.Players...)

	if that.Outcome != nil {
		outcome := that.Outcome.Clone()
		clone.Outcome = &outcome
	}

	return &clone
}

func (that Outcome) Clone() Outcome {
	that.Winners = append([]Player(nil), that.Winners...)
	return that
}
