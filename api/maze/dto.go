// Package mazeapi serves generated mazes over HTTP.
package mazeapi

import (
	"time"

	dmn "github.com/beka-birhanu/vinom-maze/domain"
	"github.com/beka-birhanu/vinom-maze/maze"
)

// CreateMazeRequest represents a request to generate a new maze.
type CreateMazeRequest struct {
	Height     int    `json:"height" binding:"required"`
	Width      int    `json:"width" binding:"required"`
	Seed       *int64 `json:"seed"`
	FixedStart bool   `json:"fixed_start"`
}

// LayoutQuery is the viewport a layout is requested for.
type LayoutQuery struct {
	Width  float64 `form:"width" binding:"required"`
	Height float64 `form:"height" binding:"required"`
}

// MazeResponse carries a maze record and its wall matrices.
type MazeResponse struct {
	ID         string            `json:"id"`
	Height     int               `json:"height"`
	Width      int               `json:"width"`
	Seed       int64             `json:"seed"`
	FixedStart bool              `json:"fixed_start"`
	Start      maze.CellPosition `json:"start"`
	Goal       maze.CellPosition `json:"goal"`
	Vertical   [][]bool          `json:"vertical"`
	Horizontal [][]bool          `json:"horizontal"`
	ASCII      string            `json:"ascii"`
	CreatedAt  time.Time         `json:"created_at"`
}

// SolutionResponse is the path from the ball to the goal.
type SolutionResponse struct {
	Path   []maze.CellPosition `json:"path"`
	Length int                 `json:"length"`
}

func newMazeResponse(record *dmn.MazeRecord, m *maze.Maze) *MazeResponse {
	return &MazeResponse{
		ID:         record.ID.String(),
		Height:     m.Height,
		Width:      m.Width,
		Seed:       record.Seed,
		FixedStart: record.FixedStart,
		Start:      m.Start,
		Goal:       m.Goal(),
		Vertical:   m.VerticalRows(),
		Horizontal: m.HorizontalRows(),
		ASCII:      m.String(),
		CreatedAt:  record.CreatedAt,
	}
}
