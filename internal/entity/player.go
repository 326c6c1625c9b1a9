package entity

import "fmt"

const (
	MinPlayers = 2
	MaxPlayers = 6
)

// Palette is cycled by creation order: the n-th player gets Palette[n % len(Palette)].
var Palette = []string{
	"primary",
	"secondary",
	"accent",
	"emerald-500",
	"violet-500",
	"rose-500",
}

type Player struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
	Score int    `json:"score"`
}

func PlayerName(id int) string {
	return fmt.Sprintf("Player %d", id)
}
