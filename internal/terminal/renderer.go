package terminal

import (
	"fmt"
	"io"
	"strings"

	"github.com/logrusorgru/aurora"

	"github.com/rocketscienceinc/dots-and-boxes-backend/internal/entity"
)

const (
	dotGlyph        = "•"
	horizontalGlyph = "───"
	verticalGlyph   = "│"
	cellWidth       = 4
)

// Renderer draws a table snapshot as colored text.
type Renderer struct {
	au aurora.Aurora
}

func NewRenderer(colors bool) *Renderer {
	return &Renderer{au: aurora.NewAurora(colors)}
}

func (that *Renderer) Render(w io.Writer, table *entity.Table) error {
	var sb strings.Builder

	that.renderBoard(&sb, table.Game)
	sb.WriteString("\n")
	that.renderScores(&sb, table.Game)

	if table.Settings.GridSize != table.Game.Size || len(table.Settings.Players) != len(table.Game.Players) {
		fmt.Fprintf(&sb, "%s\n", that.au.Faint(fmt.Sprintf(
			"pending: %dx%d grid, %d players (apply to start)",
			table.Settings.GridSize, table.Settings.GridSize, len(table.Settings.Players),
		)))
	}

	if _, err := io.WriteString(w, sb.String()); err != nil {
		return fmt.Errorf("failed to write board: %w", err)
	}

	return nil
}

// Paint colors text with the palette color of the player.
func (that *Renderer) Paint(color string, text string) string {
	switch color {
	case "primary":
		return that.au.Cyan(text).String()
	case "secondary":
		return that.au.Magenta(text).String()
	case "accent":
		return that.au.Yellow(text).String()
	case "emerald-500":
		return that.au.Green(text).String()
	case "violet-500":
		return that.au.Blue(text).String()
	case "rose-500":
		return that.au.Red(text).String()
	default:
		return text
	}
}

func (that *Renderer) renderBoard(sb *strings.Builder, game *entity.Game) {
	edges := make(map[entity.EdgeID]entity.Edge, len(game.Edges))
	for _, edge := range game.Edges {
		edges[edge.ID] = edge
	}

	cells := make(map[entity.CellID]entity.Cell, len(game.Cells))
	for _, cell := range game.Cells {
		cells[cell.ID] = cell
	}

	colors := make(map[int]string, len(game.Players))
	for _, player := range game.Players {
		colors[player.ID] = player.Color
	}

	sb.WriteString(strings.Repeat(" ", cellWidth))
	for x := range game.Size {
		fmt.Fprintf(sb, "%-*d", cellWidth, x)
	}
	sb.WriteString("\n")

	for y := range game.Size {
		fmt.Fprintf(sb, "%-*d", cellWidth, y)

		for x := range game.Size {
			sb.WriteString(dotGlyph)

			if x < game.Size-1 {
				sb.WriteString(that.edge(edges[entity.HorizontalEdgeID(x, y)], horizontalGlyph, colors))
			}
		}
		sb.WriteString("\n")

		if y == game.Size-1 {
			break
		}

		sb.WriteString(strings.Repeat(" ", cellWidth))

		for x := range game.Size {
			sb.WriteString(that.edge(edges[entity.VerticalEdgeID(x, y)], verticalGlyph, colors))

			if x < game.Size-1 {
				sb.WriteString(that.cell(cells[entity.NewCellID(x, y)], colors))
			}
		}
		sb.WriteString("\n")
	}
}

func (that *Renderer) edge(edge entity.Edge, glyph string, colors map[int]string) string {
	if !edge.Completed {
		return strings.Repeat(" ", len([]rune(glyph)))
	}

	return that.Paint(colors[edge.Owner], glyph)
}

func (that *Renderer) cell(cell entity.Cell, colors map[int]string) string {
	if !cell.IsOwned() {
		return "   "
	}

	return that.Paint(colors[cell.Owner], fmt.Sprintf(" %d ", cell.Owner))
}

func (that *Renderer) renderScores(sb *strings.Builder, game *entity.Game) {
	for _, player := range game.Players {
		marker := "  "
		if !game.GameOver && player.ID == game.CurrentPlayer {
			marker = "> "
		}

		fmt.Fprintf(sb, "%s%s: %d\n", marker, that.Paint(player.Color, player.Name), player.Score)
	}

	if game.GameOver && game.Outcome != nil {
		fmt.Fprintf(sb, "%s\n", that.au.Bold("Game Over! "+game.Outcome.Summary()))
		return
	}

	if current, ok := game.CurrentPlayerInfo(); ok {
		fmt.Fprintf(sb, "%s to move\n", that.Paint(current.Color, current.Name))
	}
}
