// Package domain holds the records the maze service persists.
package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrMazeNotFound = errors.New("maze not found")
	ErrCacheMiss    = errors.New("maze not cached")
)

// MazeSpec describes a maze to be generated.
type MazeSpec struct {
	Height     int
	Width      int
	Seed       *int64    // nil picks a fresh seed
	FixedStart bool      // seed the traversal at (0,0) instead of a random cell
	Owner      uuid.UUID // user requesting the maze
}

// MazeRecord is the persisted form of a generated maze. Only the generation
// inputs are stored; the walls are reproduced from the seed on demand.
type MazeRecord struct {
	ID         uuid.UUID `bson:"_id" json:"id"`
	Height     int       `bson:"height" json:"height"`
	Width      int       `bson:"width" json:"width"`
	Seed       int64     `bson:"seed" json:"seed"`
	FixedStart bool      `bson:"fixedStart" json:"fixed_start"`
	Owner      uuid.UUID `bson:"owner" json:"owner"`
	CreatedAt  time.Time `bson:"createdAt" json:"created_at"`
}
