/*
Package maze provides tools for creating and inspecting rectangular perfect mazes.

A maze is an H×W grid of cells whose open walls form a spanning tree over the
grid graph: every cell is reachable from every other cell through exactly one
simple path. Mazes are generated with a randomized depth-first traversal
(recursive backtracker) driven by an injected random source, so a seeded source
always reproduces the same maze.

The wall state is kept in two flat matrices, one for the walls between
horizontally adjacent cells and one for the walls between vertically adjacent
cells. The package also derives renderer geometry (Layout), solves mazes and
draws them as ASCII.
*/
package maze

import (
	"errors"
	"strings"
)

var (
	ErrInvalidDimension = errors.New("maze dimensions must be positive")
	ErrStartOutOfBounds = errors.New("start cell is outside the maze")
	ErrCellOutOfBounds  = errors.New("cell is outside the maze")
	ErrNilRandom        = errors.New("random source is required")
	ErrNotPerfect       = errors.New("maze is not perfect")
	ErrInvalidViewport  = errors.New("viewport dimensions must be positive")
)

// CellPosition represents the position of a cell in the maze grid.
type CellPosition struct {
	Row int `json:"row"` // Row index of the cell
	Col int `json:"col"` // Column index of the cell
}

// Direction is one of the four grid directions a cell can be left through.
type Direction int

const (
	Up Direction = iota
	Right
	Down
	Left
)

var directionNames = [...]string{"up", "right", "down", "left"}

func (d Direction) String() string {
	if d < Up || d > Left {
		return "unknown"
	}
	return directionNames[d]
}

// ParseDirection maps a direction name back to its Direction.
func ParseDirection(s string) (Direction, bool) {
	for i, name := range directionNames {
		if strings.EqualFold(s, name) {
			return Direction(i), true
		}
	}
	return 0, false
}

// step returns the cell reached by leaving pos in direction d. The result may
// lie outside the grid.
func (d Direction) step(pos CellPosition) CellPosition {
	switch d {
	case Up:
		return CellPosition{Row: pos.Row - 1, Col: pos.Col}
	case Right:
		return CellPosition{Row: pos.Row, Col: pos.Col + 1}
	case Down:
		return CellPosition{Row: pos.Row + 1, Col: pos.Col}
	default:
		return CellPosition{Row: pos.Row, Col: pos.Col - 1}
	}
}

// Maze is a generated perfect maze.
//
// Vertical holds Height×(Width-1) entries; Vertical[r*(Width-1)+c] is true when
// the wall between (r,c) and (r,c+1) is open. Horizontal holds (Height-1)×Width
// entries; Horizontal[r*Width+c] is true when the wall between (r,c) and
// (r+1,c) is open.
//
// The accessors treat walls missing from a short matrix as closed, so a Maze
// built by hand or decoded from storage can be queried before Validate.
type Maze struct {
	Height     int          // Number of rows
	Width      int          // Number of columns
	Start      CellPosition // Cell the traversal was seeded from
	Vertical   []bool
	Horizontal []bool
}

func newMaze(height, width int, start CellPosition) *Maze {
	return &Maze{
		Height:     height,
		Width:      width,
		Start:      start,
		Vertical:   make([]bool, height*(width-1)),
		Horizontal: make([]bool, (height-1)*width),
	}
}

// InBound reports whether pos lies inside the grid.
func (m *Maze) InBound(pos CellPosition) bool {
	return pos.Row >= 0 && pos.Row < m.Height && pos.Col >= 0 && pos.Col < m.Width
}

// VerticalOpen reports whether the wall between (row,col) and (row,col+1) is open.
func (m *Maze) VerticalOpen(row, col int) bool {
	if row < 0 || row >= m.Height || col < 0 || col >= m.Width-1 {
		return false
	}
	i := row*(m.Width-1) + col
	return i < len(m.Vertical) && m.Vertical[i]
}

// HorizontalOpen reports whether the wall between (row,col) and (row+1,col) is open.
func (m *Maze) HorizontalOpen(row, col int) bool {
	if row < 0 || row >= m.Height-1 || col < 0 || col >= m.Width {
		return false
	}
	i := row*m.Width + col
	return i < len(m.Horizontal) && m.Horizontal[i]
}

// openWall removes the wall crossed when leaving from in direction d.
func (m *Maze) openWall(from CellPosition, d Direction) {
	switch d {
	case Up:
		m.Horizontal[(from.Row-1)*m.Width+from.Col] = true
	case Down:
		m.Horizontal[from.Row*m.Width+from.Col] = true
	case Left:
		m.Vertical[from.Row*(m.Width-1)+from.Col-1] = true
	case Right:
		m.Vertical[from.Row*(m.Width-1)+from.Col] = true
	}
}

// VerticalRows returns the vertical wall matrix as Height rows of Width-1 entries.
func (m *Maze) VerticalRows() [][]bool {
	return rows(m.Vertical, m.Height, m.Width-1)
}

// HorizontalRows returns the horizontal wall matrix as Height-1 rows of Width entries.
func (m *Maze) HorizontalRows() [][]bool {
	return rows(m.Horizontal, m.Height-1, m.Width)
}

// rows splits flat into n rows of width entries, padding missing entries with
// closed walls.
func rows(flat []bool, n, width int) [][]bool {
	if n < 1 || width < 0 {
		return [][]bool{}
	}
	out := make([][]bool, n)
	for r := range out {
		out[r] = make([]bool, width)
		if lo := r * width; lo < len(flat) {
			copy(out[r], flat[lo:min(lo+width, len(flat))])
		}
	}
	return out
}

// Goal returns the cell the player has to reach, the last cell of the grid.
func (m *Maze) Goal() CellPosition {
	return CellPosition{Row: m.Height - 1, Col: m.Width - 1}
}

// OpenWalls counts the open entries across both wall matrices.
func (m *Maze) OpenWalls() int {
	n := 0
	for _, open := range m.Vertical {
		if open {
			n++
		}
	}
	for _, open := range m.Horizontal {
		if open {
			n++
		}
	}
	return n
}

// String provides a textual representation of the maze.
func (m *Maze) String() string {
	var sb strings.Builder

	// Top boundary
	sb.WriteString("+" + strings.Repeat("---+", max(m.Width, 0)) + "\n")

	for row := 0; row < m.Height; row++ {
		sb.WriteString("|")
		for col := 0; col < m.Width; col++ {
			if m.VerticalOpen(row, col) {
				sb.WriteString("    ")
			} else {
				sb.WriteString("   |")
			}
		}
		sb.WriteString("\n+")

		for col := 0; col < m.Width; col++ {
			if m.HorizontalOpen(row, col) {
				sb.WriteString("   +")
			} else {
				sb.WriteString("---+")
			}
		}
		sb.WriteString("\n")
	}

	return sb.String()
}
