package maze

import "fmt"

// Random is a source of uniformly distributed integers.
// *math/rand.Rand satisfies it.
type Random interface {
	// Intn returns a uniform integer in [0,n). n is always positive.
	Intn(n int) int
}

// neighbor pairs an adjacent cell with the direction leading to it.
type neighbor struct {
	pos CellPosition
	dir Direction
}

// frame is one pending cell of the depth-first traversal together with its
// shuffled neighbor list and how far that list has been consumed.
type frame struct {
	pos       CellPosition
	neighbors [4]neighbor
	next      int
}

// MaxCells bounds height*width for a single maze. Generation keeps both wall
// matrices, a visited set and up to one traversal frame per cell in memory.
const MaxCells = 1 << 24

// checkDimensions rejects grids that are empty or larger than MaxCells,
// without computing a product that could overflow.
func checkDimensions(height, width int) error {
	if height < 1 || width < 1 {
		return fmt.Errorf("%w: got %dx%d", ErrInvalidDimension, height, width)
	}
	if height > MaxCells/width {
		return fmt.Errorf("%w: %dx%d exceeds %d cells", ErrInvalidDimension, height, width, MaxCells)
	}
	return nil
}

// Generate builds a perfect maze of the given dimensions using a randomized
// depth-first traversal seeded at a uniformly random cell. The row of the
// start cell is drawn before its column.
//
// Both dimensions must be positive and height*width must not exceed MaxCells,
// otherwise ErrInvalidDimension is returned before anything is allocated.
func Generate(height, width int, rng Random) (*Maze, error) {
	if err := checkDimensions(height, width); err != nil {
		return nil, err
	}
	if rng == nil {
		return nil, ErrNilRandom
	}

	start := CellPosition{Row: rng.Intn(height), Col: rng.Intn(width)}
	return carve(height, width, start, rng), nil
}

// GenerateFrom builds a perfect maze like Generate, but seeds the traversal
// at start instead of drawing it.
func GenerateFrom(height, width int, start CellPosition, rng Random) (*Maze, error) {
	if err := checkDimensions(height, width); err != nil {
		return nil, err
	}
	if rng == nil {
		return nil, ErrNilRandom
	}
	if start.Row < 0 || start.Row >= height || start.Col < 0 || start.Col >= width {
		return nil, fmt.Errorf("%w: (%d,%d) in %dx%d", ErrStartOutOfBounds, start.Row, start.Col, height, width)
	}

	return carve(height, width, start, rng), nil
}

// carve runs the recursive backtracker with an explicit stack. Every frame is
// shuffled when its cell is entered and its neighbors are consumed in order,
// so random draws and wall openings happen exactly as in the recursive form.
// The stack never holds more than height*width frames.
func carve(height, width int, start CellPosition, rng Random) *Maze {
	m := newMaze(height, width, start)
	visited := make([]bool, height*width)

	enter := func(pos CellPosition) frame {
		visited[pos.Row*width+pos.Col] = true
		f := frame{pos: pos}
		for i, d := range [4]Direction{Up, Right, Down, Left} {
			f.neighbors[i] = neighbor{pos: d.step(pos), dir: d}
		}
		shuffle(f.neighbors[:], rng)
		return f
	}

	stack := []frame{enter(start)}
	for len(stack) > 0 {
		top := &stack[len(stack)-1]
		if top.next == len(top.neighbors) {
			stack = stack[:len(stack)-1]
			continue
		}

		n := top.neighbors[top.next]
		top.next++

		if !m.InBound(n.pos) || visited[n.pos.Row*width+n.pos.Col] {
			continue
		}

		m.openWall(top.pos, n.dir)
		stack = append(stack, enter(n.pos))
	}

	return m
}

// shuffle permutes s uniformly with the Fisher-Yates algorithm.
func shuffle[T any](s []T, rng Random) {
	for i := len(s) - 1; i > 0; i-- {
		j := rng.Intn(i + 1)
		s[i], s[j] = s[j], s[i]
	}
}
