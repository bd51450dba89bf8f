package mazeapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/beka-birhanu/vinom-maze/api"
	api_i "github.com/beka-birhanu/vinom-maze/api/i"
	"github.com/beka-birhanu/vinom-maze/api/identity"
	dmn "github.com/beka-birhanu/vinom-maze/domain"
	"github.com/beka-birhanu/vinom-maze/infrastruture/token"
	"github.com/beka-birhanu/vinom-maze/maze"
	"github.com/beka-birhanu/vinom-maze/service"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubService generates mazes in memory and records the last spec it saw.
type stubService struct {
	records  map[uuid.UUID]*dmn.MazeRecord
	lastSpec dmn.MazeSpec
	err      error
}

func newStubService() *stubService {
	return &stubService{records: map[uuid.UUID]*dmn.MazeRecord{}}
}

func (s *stubService) build(record *dmn.MazeRecord) (*maze.Maze, error) {
	return maze.Generate(record.Height, record.Width, rand.New(rand.NewSource(record.Seed)))
}

func (s *stubService) Create(_ context.Context, spec dmn.MazeSpec) (*dmn.MazeRecord, *maze.Maze, error) {
	s.lastSpec = spec
	if s.err != nil {
		return nil, nil, s.err
	}
	if spec.Height > 40 || spec.Width > 40 {
		return nil, nil, service.ErrDimensionTooLarge
	}
	record := &dmn.MazeRecord{ID: uuid.New(), Height: spec.Height, Width: spec.Width, Seed: 1, Owner: spec.Owner}
	if spec.Seed != nil {
		record.Seed = *spec.Seed
	}
	m, err := s.build(record)
	if err != nil {
		return nil, nil, err
	}
	s.records[record.ID] = record
	return record, m, nil
}

func (s *stubService) ByID(_ context.Context, id uuid.UUID) (*dmn.MazeRecord, *maze.Maze, error) {
	if s.err != nil {
		return nil, nil, s.err
	}
	record, ok := s.records[id]
	if !ok {
		return nil, nil, dmn.ErrMazeNotFound
	}
	m, err := s.build(record)
	return record, m, err
}

func (s *stubService) ByOwner(_ context.Context, owner uuid.UUID) ([]*dmn.MazeRecord, error) {
	var out []*dmn.MazeRecord
	for _, r := range s.records {
		if r.Owner == owner {
			out = append(out, r)
		}
	}
	return out, nil
}

func (s *stubService) Solution(ctx context.Context, id uuid.UUID) ([]maze.CellPosition, error) {
	_, m, err := s.ByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return m.Solve(maze.CellPosition{}, m.Goal())
}

func (s *stubService) Layout(ctx context.Context, id uuid.UUID, width, height float64) (*maze.Layout, error) {
	_, m, err := s.ByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return m.Layout(width, height)
}

type testServer struct {
	engine *gin.Engine
	svc    *stubService
	token  string
	userID uuid.UUID
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	svc := newStubService()
	controller, err := NewMazeController(svc, nil)
	require.NoError(t, err)

	tokenizer := token.NewJwtService("test-secret", "vinom-maze")
	userID := uuid.New()
	bearer, err := tokenizer.Generate(userID, time.Minute)
	require.NoError(t, err)

	router := api.NewRouter(api.Config{
		BaseURL:                 "/api",
		Mode:                    gin.TestMode,
		Controllers:             []api_i.Controller{controller},
		AuthorizationMiddleware: identity.Authoriz(tokenizer),
	})

	return &testServer{engine: router.Engine(), svc: svc, token: bearer, userID: userID}
}

func (ts *testServer) do(method, path string, body any, authorized bool) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if authorized {
		req.Header.Set("Authorization", "Bearer "+ts.token)
	}
	w := httptest.NewRecorder()
	ts.engine.ServeHTTP(w, req)
	return w
}

func TestCreateMaze(t *testing.T) {
	t.Run("generates a maze for the caller", func(t *testing.T) {
		ts := newTestServer(t)

		w := ts.do(http.MethodPost, "/api/v1/mazes", gin.H{"height": 4, "width": 6, "seed": 10}, true)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		var resp MazeResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, 4, resp.Height)
		assert.Equal(t, 6, resp.Width)
		assert.Equal(t, int64(10), resp.Seed)
		assert.Len(t, resp.Vertical, 4)
		assert.Len(t, resp.Vertical[0], 5)
		assert.Len(t, resp.Horizontal, 3)
		assert.Len(t, resp.Horizontal[0], 6)
		assert.Equal(t, maze.CellPosition{Row: 3, Col: 5}, resp.Goal)
		assert.NotEmpty(t, resp.ASCII)
		assert.Equal(t, ts.userID, ts.svc.lastSpec.Owner)
	})

	t.Run("requires a bearer token", func(t *testing.T) {
		ts := newTestServer(t)

		w := ts.do(http.MethodPost, "/api/v1/mazes", gin.H{"height": 4, "width": 6}, false)
		assert.Equal(t, http.StatusUnauthorized, w.Code)

		req := httptest.NewRequest(http.MethodPost, "/api/v1/mazes", nil)
		req.Header.Set("Authorization", "Bearer not-a-token")
		w = httptest.NewRecorder()
		ts.engine.ServeHTTP(w, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("rejects bad dimensions", func(t *testing.T) {
		ts := newTestServer(t)

		w := ts.do(http.MethodPost, "/api/v1/mazes", gin.H{"height": -2, "width": 6}, true)
		assert.Equal(t, http.StatusBadRequest, w.Code)

		w = ts.do(http.MethodPost, "/api/v1/mazes", gin.H{"width": 6}, true)
		assert.Equal(t, http.StatusBadRequest, w.Code)

		w = ts.do(http.MethodPost, "/api/v1/mazes", gin.H{"height": 41, "width": 6}, true)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("hides unexpected failures", func(t *testing.T) {
		ts := newTestServer(t)
		ts.svc.err = errors.New("mongo exploded")

		w := ts.do(http.MethodPost, "/api/v1/mazes", gin.H{"height": 3, "width": 3}, true)
		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.NotContains(t, w.Body.String(), "mongo")
	})
}

func TestReadMaze(t *testing.T) {
	ts := newTestServer(t)
	w := ts.do(http.MethodPost, "/api/v1/mazes", gin.H{"height": 5, "width": 5, "seed": 3}, true)
	require.Equal(t, http.StatusCreated, w.Code)
	var created MazeResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))

	t.Run("returns the same maze by id", func(t *testing.T) {
		w := ts.do(http.MethodGet, "/api/v1/mazes/"+created.ID, nil, false)
		require.Equal(t, http.StatusOK, w.Code)

		var got MazeResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
		assert.Equal(t, created.Vertical, got.Vertical)
		assert.Equal(t, created.Horizontal, got.Horizontal)
	})

	t.Run("returns the solution path", func(t *testing.T) {
		w := ts.do(http.MethodGet, "/api/v1/mazes/"+created.ID+"/solution", nil, false)
		require.Equal(t, http.StatusOK, w.Code)

		var got SolutionResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
		assert.Equal(t, len(got.Path), got.Length)
		assert.Equal(t, maze.CellPosition{}, got.Path[0])
		assert.Equal(t, maze.CellPosition{Row: 4, Col: 4}, got.Path[got.Length-1])
	})

	t.Run("returns the layout for a viewport", func(t *testing.T) {
		w := ts.do(http.MethodGet, fmt.Sprintf("/api/v1/mazes/%s/layout?width=500&height=250", created.ID), nil, false)
		require.Equal(t, http.StatusOK, w.Code)

		var got maze.Layout
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
		assert.Equal(t, 100.0, got.UnitX)
		assert.Equal(t, 50.0, got.UnitY)
		assert.Equal(t, maze.LabelGoal, got.Goal.Label)
	})

	t.Run("layout needs a viewport", func(t *testing.T) {
		w := ts.do(http.MethodGet, "/api/v1/mazes/"+created.ID+"/layout?width=500", nil, false)
		assert.Equal(t, http.StatusBadRequest, w.Code)

		w = ts.do(http.MethodGet, "/api/v1/mazes/"+created.ID+"/layout?width=-5&height=5", nil, false)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("lists the caller's mazes", func(t *testing.T) {
		w := ts.do(http.MethodGet, "/api/v1/mazes", nil, true)
		require.Equal(t, http.StatusOK, w.Code)

		var got struct {
			Mazes []dmn.MazeRecord `json:"mazes"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
		require.Len(t, got.Mazes, 1)
		assert.Equal(t, created.ID, got.Mazes[0].ID.String())
	})

	t.Run("unknown and malformed ids", func(t *testing.T) {
		w := ts.do(http.MethodGet, "/api/v1/mazes/"+uuid.NewString(), nil, false)
		assert.Equal(t, http.StatusNotFound, w.Code)

		w = ts.do(http.MethodGet, "/api/v1/mazes/not-a-uuid", nil, false)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestNewMazeController(t *testing.T) {
	_, err := NewMazeController(nil, nil)
	assert.Error(t, err)
}
