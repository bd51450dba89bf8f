package i

import (
	"context"

	dmn "github.com/beka-birhanu/vinom-maze/domain"
	"github.com/google/uuid"
)

// MazeRepo defines the interface for maze record persistence.
type MazeRepo interface {
	// Save inserts or updates a maze record.
	Save(ctx context.Context, record *dmn.MazeRecord) error

	// ByID retrieves a maze record by its ID.
	// Returns dmn.ErrMazeNotFound if there is none.
	ByID(ctx context.Context, id uuid.UUID) (*dmn.MazeRecord, error)

	// ByOwner lists up to limit records of an owner, newest first.
	ByOwner(ctx context.Context, owner uuid.UUID, limit int64) ([]*dmn.MazeRecord, error)
}
