package maze

import "fmt"

// Body labels understood by the renderer.
const (
	LabelBoundary = "boundary"
	LabelWall     = "wall"
	LabelGoal     = "goal"
	LabelBall     = "ball"
)

const (
	boundaryThickness       = 2
	horizontalWallThickness = 3
	verticalWallThickness   = 5
	goalScale               = 0.7
	ballScale               = 0.25
)

// Rect is an axis-aligned rectangle centered on (X, Y).
type Rect struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Label  string  `json:"label"`
	Static bool    `json:"static"`
}

// Circle is a circle centered on (X, Y).
type Circle struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Radius float64 `json:"radius"`
	Label  string  `json:"label"`
}

// Layout is the static geometry a physics renderer needs to build the maze
// world: the outer boundary, one segment per closed wall, the goal marker in
// the last cell and the ball in the first cell.
type Layout struct {
	Width    float64 `json:"width"`
	Height   float64 `json:"height"`
	UnitX    float64 `json:"unit_x"`
	UnitY    float64 `json:"unit_y"`
	Boundary []Rect  `json:"boundary"`
	Walls    []Rect  `json:"walls"`
	Goal     Rect    `json:"goal"`
	Ball     Circle  `json:"ball"`
}

// Layout maps the maze onto a width×height viewport.
func (m *Maze) Layout(width, height float64) (*Layout, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: got %gx%g", ErrInvalidViewport, width, height)
	}
	if m.Height < 1 || m.Width < 1 {
		return nil, fmt.Errorf("%w: got %dx%d", ErrInvalidDimension, m.Height, m.Width)
	}

	unitX := width / float64(m.Width)
	unitY := height / float64(m.Height)

	l := &Layout{
		Width:  width,
		Height: height,
		UnitX:  unitX,
		UnitY:  unitY,
		Boundary: []Rect{
			{X: width / 2, Y: 0, Width: width, Height: boundaryThickness, Label: LabelBoundary, Static: true},
			{X: width / 2, Y: height, Width: width, Height: boundaryThickness, Label: LabelBoundary, Static: true},
			{X: 0, Y: height / 2, Width: boundaryThickness, Height: height, Label: LabelBoundary, Static: true},
			{X: width, Y: height / 2, Width: boundaryThickness, Height: height, Label: LabelBoundary, Static: true},
		},
		Walls: []Rect{},
	}

	for row := 0; row < m.Height-1; row++ {
		for col := 0; col < m.Width; col++ {
			if m.HorizontalOpen(row, col) {
				continue
			}
			l.Walls = append(l.Walls, Rect{
				X:      float64(col)*unitX + unitX/2,
				Y:      float64(row)*unitY + unitY,
				Width:  unitX,
				Height: horizontalWallThickness,
				Label:  LabelWall,
				Static: true,
			})
		}
	}

	for row := 0; row < m.Height; row++ {
		for col := 0; col < m.Width-1; col++ {
			if m.VerticalOpen(row, col) {
				continue
			}
			l.Walls = append(l.Walls, Rect{
				X:      float64(col)*unitX + unitX,
				Y:      float64(row)*unitY + unitY/2,
				Width:  verticalWallThickness,
				Height: unitY,
				Label:  LabelWall,
				Static: true,
			})
		}
	}

	l.Goal = Rect{
		X:      width - unitX/2,
		Y:      height - unitY/2,
		Width:  unitX * goalScale,
		Height: unitY * goalScale,
		Label:  LabelGoal,
		Static: true,
	}
	l.Ball = Circle{
		X:      unitX / 2,
		Y:      unitY / 2,
		Radius: min(unitX, unitY) * ballScale,
		Label:  LabelBall,
	}

	return l, nil
}
