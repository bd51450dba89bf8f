package i

import (
	"context"

	dmn "github.com/beka-birhanu/vinom-maze/domain"
	"github.com/beka-birhanu/vinom-maze/maze"
	"github.com/google/uuid"
)

// MazeService generates mazes and serves them by ID.
type MazeService interface {
	Create(ctx context.Context, spec dmn.MazeSpec) (*dmn.MazeRecord, *maze.Maze, error)
	ByID(ctx context.Context, id uuid.UUID) (*dmn.MazeRecord, *maze.Maze, error)
	ByOwner(ctx context.Context, owner uuid.UUID) ([]*dmn.MazeRecord, error)
	Solution(ctx context.Context, id uuid.UUID) ([]maze.CellPosition, error)
	Layout(ctx context.Context, id uuid.UUID, width, height float64) (*maze.Layout, error)
}
