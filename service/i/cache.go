package i

import (
	"context"

	dmn "github.com/beka-birhanu/vinom-maze/domain"
	"github.com/beka-birhanu/vinom-maze/maze"
	"github.com/google/uuid"
)

// MazeCache keeps generated mazes so they need not be regenerated per request.
type MazeCache interface {
	// Get returns the cached record and maze, or dmn.ErrCacheMiss.
	Get(ctx context.Context, id uuid.UUID) (*dmn.MazeRecord, *maze.Maze, error)

	// Set caches a record together with its generated maze.
	Set(ctx context.Context, record *dmn.MazeRecord, m *maze.Maze) error

	// Lock acquires the regeneration lock of a maze. The returned function releases it.
	Lock(ctx context.Context, id uuid.UUID) (func(), error)
}
