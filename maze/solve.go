package maze

import (
	"fmt"
	"slices"
)

// CanMove reports whether the wall crossed when leaving from in direction d is open.
func (m *Maze) CanMove(from CellPosition, d Direction) bool {
	if !m.InBound(from) {
		return false
	}

	switch d {
	case Up:
		return m.HorizontalOpen(from.Row-1, from.Col)
	case Down:
		return m.HorizontalOpen(from.Row, from.Col)
	case Left:
		return m.VerticalOpen(from.Row, from.Col-1)
	case Right:
		return m.VerticalOpen(from.Row, from.Col)
	default:
		return false
	}
}

// Neighbors returns the cells reachable from pos through a single open wall.
func (m *Maze) Neighbors(pos CellPosition) []CellPosition {
	var result []CellPosition
	for _, d := range [4]Direction{Up, Right, Down, Left} {
		if m.CanMove(pos, d) {
			result = append(result, d.step(pos))
		}
	}
	return result
}

// Solve returns the path of cells from one cell to another, both ends included.
// In a perfect maze the path is unique.
func (m *Maze) Solve(from, to CellPosition) ([]CellPosition, error) {
	if err := checkDimensions(m.Height, m.Width); err != nil {
		return nil, err
	}
	if !m.InBound(from) || !m.InBound(to) {
		return nil, ErrCellOutOfBounds
	}

	parent := make([]int, m.Height*m.Width)
	for i := range parent {
		parent[i] = -1
	}
	idx := func(p CellPosition) int { return p.Row*m.Width + p.Col }

	parent[idx(from)] = idx(from)
	queue := []CellPosition{from}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		if cur == to {
			break
		}
		for _, nbr := range m.Neighbors(cur) {
			if parent[idx(nbr)] == -1 {
				parent[idx(nbr)] = idx(cur)
				queue = append(queue, nbr)
			}
		}
	}

	if parent[idx(to)] == -1 {
		return nil, fmt.Errorf("%w: (%d,%d) unreachable from (%d,%d)", ErrNotPerfect, to.Row, to.Col, from.Row, from.Col)
	}

	path := []CellPosition{to}
	for at := idx(to); at != idx(from); {
		at = parent[at]
		path = append(path, CellPosition{Row: at / m.Width, Col: at % m.Width})
	}
	slices.Reverse(path)
	return path, nil
}

// Validate checks that the wall matrices describe a spanning tree of the grid:
// correct sizes, exactly Height*Width-1 open walls, and every cell reachable
// from (0,0).
func (m *Maze) Validate() error {
	if err := checkDimensions(m.Height, m.Width); err != nil {
		return err
	}
	if len(m.Vertical) != m.Height*(m.Width-1) || len(m.Horizontal) != (m.Height-1)*m.Width {
		return fmt.Errorf("%w: wall matrices do not match %dx%d", ErrNotPerfect, m.Height, m.Width)
	}

	cells := m.Height * m.Width
	if open := m.OpenWalls(); open != cells-1 {
		return fmt.Errorf("%w: %d open walls, want %d", ErrNotPerfect, open, cells-1)
	}

	if reached := m.reachable(CellPosition{}); reached != cells {
		return fmt.Errorf("%w: %d of %d cells reachable", ErrNotPerfect, reached, cells)
	}

	return nil
}

// reachable counts the cells connected to from by open walls.
func (m *Maze) reachable(from CellPosition) int {
	seen := make([]bool, m.Height*m.Width)
	seen[from.Row*m.Width+from.Col] = true
	stack := []CellPosition{from}
	count := 0

	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		count++
		for _, nbr := range m.Neighbors(cur) {
			if !seen[nbr.Row*m.Width+nbr.Col] {
				seen[nbr.Row*m.Width+nbr.Col] = true
				stack = append(stack, nbr)
			}
		}
	}

	return count
}
