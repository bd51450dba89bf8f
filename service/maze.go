package service

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	dmn "github.com/beka-birhanu/vinom-maze/domain"
	"github.com/beka-birhanu/vinom-maze/maze"
	"github.com/beka-birhanu/vinom-maze/service/i"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const ownerListLimit = 100

var (
	ErrDimensionTooLarge = errors.New("maze dimension too large")
	ErrMissingDependency = errors.New("maze service dependency missing")
)

// MazeServiceConfig holds the dependencies of a MazeService.
type MazeServiceConfig struct {
	Repo         i.MazeRepo
	Cache        i.MazeCache
	MaxDimension int // Largest accepted height or width
	Logger       *zap.Logger
}

// MazeService generates mazes, persists their generation inputs and serves
// them back, regenerating from the stored seed when the cache misses.
type MazeService struct {
	repo         i.MazeRepo
	cache        i.MazeCache
	maxDimension int
	logger       *zap.Logger
	newSeed      func() int64
	now          func() time.Time
}

var _ i.MazeService = &MazeService{}

// NewMazeService creates a MazeService from its configuration.
func NewMazeService(cfg MazeServiceConfig) (*MazeService, error) {
	if cfg.Repo == nil || cfg.Cache == nil {
		return nil, ErrMissingDependency
	}
	if cfg.MaxDimension < 1 {
		return nil, fmt.Errorf("%w: max dimension %d", maze.ErrInvalidDimension, cfg.MaxDimension)
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}

	return &MazeService{
		repo:         cfg.Repo,
		cache:        cfg.Cache,
		maxDimension: cfg.MaxDimension,
		logger:       cfg.Logger,
		newSeed:      func() int64 { return time.Now().UnixNano() },
		now:          time.Now,
	}, nil
}

// Create generates a maze for spec, stores its record and caches the result.
func (s *MazeService) Create(ctx context.Context, spec dmn.MazeSpec) (*dmn.MazeRecord, *maze.Maze, error) {
	if spec.Height > s.maxDimension || spec.Width > s.maxDimension {
		return nil, nil, fmt.Errorf("%w: %dx%d exceeds %d", ErrDimensionTooLarge, spec.Height, spec.Width, s.maxDimension)
	}

	record := &dmn.MazeRecord{
		ID:         uuid.New(),
		Height:     spec.Height,
		Width:      spec.Width,
		FixedStart: spec.FixedStart,
		Owner:      spec.Owner,
		CreatedAt:  s.now().UTC(),
	}
	if spec.Seed != nil {
		record.Seed = *spec.Seed
	} else {
		record.Seed = s.newSeed()
	}

	m, err := build(record)
	if err != nil {
		return nil, nil, err
	}

	if err := s.repo.Save(ctx, record); err != nil {
		return nil, nil, fmt.Errorf("saving maze %s: %w", record.ID, err)
	}

	if err := s.cache.Set(ctx, record, m); err != nil {
		s.logger.Warn("caching maze failed", zap.Stringer("id", record.ID), zap.Error(err))
	}

	s.logger.Info("maze created",
		zap.Stringer("id", record.ID),
		zap.Int("height", record.Height),
		zap.Int("width", record.Width),
		zap.Int64("seed", record.Seed),
	)
	return record, m, nil
}

// ByID returns a maze and its record. Cache misses are served by regenerating
// the maze from its record under the maze's regeneration lock.
func (s *MazeService) ByID(ctx context.Context, id uuid.UUID) (*dmn.MazeRecord, *maze.Maze, error) {
	if record, m, err := s.cached(ctx, id); err == nil {
		return record, m, nil
	}

	unlock, err := s.cache.Lock(ctx, id)
	if err != nil {
		s.logger.Warn("regenerating without lock", zap.Stringer("id", id), zap.Error(err))
	} else {
		defer unlock()
		// another instance may have filled the cache while we waited
		if record, m, err := s.cached(ctx, id); err == nil {
			return record, m, nil
		}
	}

	record, err := s.repo.ByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	m, err := build(record)
	if err != nil {
		return nil, nil, err
	}
	if err := m.Validate(); err != nil {
		return nil, nil, fmt.Errorf("regenerating maze %s: %w", id, err)
	}

	if err := s.cache.Set(ctx, record, m); err != nil {
		s.logger.Warn("caching maze failed", zap.Stringer("id", id), zap.Error(err))
	}

	s.logger.Debug("maze regenerated", zap.Stringer("id", id))
	return record, m, nil
}

// ByOwner lists the newest mazes created by owner.
func (s *MazeService) ByOwner(ctx context.Context, owner uuid.UUID) ([]*dmn.MazeRecord, error) {
	return s.repo.ByOwner(ctx, owner, ownerListLimit)
}

// Solution returns the path from the ball's cell (0,0) to the goal cell.
func (s *MazeService) Solution(ctx context.Context, id uuid.UUID) ([]maze.CellPosition, error) {
	_, m, err := s.ByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return m.Solve(maze.CellPosition{}, m.Goal())
}

// Layout returns the renderer geometry of a maze on a width×height viewport.
func (s *MazeService) Layout(ctx context.Context, id uuid.UUID, width, height float64) (*maze.Layout, error) {
	_, m, err := s.ByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return m.Layout(width, height)
}

func (s *MazeService) cached(ctx context.Context, id uuid.UUID) (*dmn.MazeRecord, *maze.Maze, error) {
	record, m, err := s.cache.Get(ctx, id)
	if err != nil && !errors.Is(err, dmn.ErrCacheMiss) {
		s.logger.Warn("reading maze cache failed", zap.Stringer("id", id), zap.Error(err))
	}
	return record, m, err
}

// build reproduces the maze described by a record.
func build(record *dmn.MazeRecord) (*maze.Maze, error) {
	rng := rand.New(rand.NewSource(record.Seed))
	if record.FixedStart {
		return maze.GenerateFrom(record.Height, record.Width, maze.CellPosition{}, rng)
	}
	return maze.Generate(record.Height, record.Width, rng)
}
