package mazeapi

import (
	"errors"
	"net/http"

	"github.com/beka-birhanu/vinom-maze/api/identity"
	dmn "github.com/beka-birhanu/vinom-maze/domain"
	"github.com/beka-birhanu/vinom-maze/maze"
	"github.com/beka-birhanu/vinom-maze/service"
	"github.com/beka-birhanu/vinom-maze/service/i"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// MazeController serves generated mazes over HTTP.
type MazeController struct {
	mazeService i.MazeService
	logger      *zap.Logger
}

// NewMazeController initializes a MazeController.
func NewMazeController(ms i.MazeService, logger *zap.Logger) (*MazeController, error) {
	if ms == nil {
		return nil, errors.New("maze service is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &MazeController{
		mazeService: ms,
		logger:      logger,
	}, nil
}

// RegisterPublic registers public routes.
func (mc *MazeController) RegisterPublic(route *gin.RouterGroup) {
	mazes := route.Group("/mazes")
	{
		mazes.GET("/:ID", mc.byID)
		mazes.GET("/:ID/solution", mc.solution)
		mazes.GET("/:ID/layout", mc.layout)
	}
}

// RegisterProtected registers protected routes.
func (mc *MazeController) RegisterProtected(route *gin.RouterGroup) {
	mazes := route.Group("/mazes")
	{
		mazes.POST("", mc.create)
		mazes.GET("", mc.mine)
	}
}

// create handles maze generation requests.
func (mc *MazeController) create(ctx *gin.Context) {
	var request CreateMazeRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	owner, _ := identity.UserID(ctx)
	record, m, err := mc.mazeService.Create(ctx, dmn.MazeSpec{
		Height:     request.Height,
		Width:      request.Width,
		Seed:       request.Seed,
		FixedStart: request.FixedStart,
		Owner:      owner,
	})
	if err != nil {
		mc.fail(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, newMazeResponse(record, m))
}

// mine lists the mazes created by the caller.
func (mc *MazeController) mine(ctx *gin.Context) {
	owner, ok := identity.UserID(ctx)
	if !ok {
		ctx.Status(http.StatusUnauthorized)
		return
	}

	records, err := mc.mazeService.ByOwner(ctx, owner)
	if err != nil {
		mc.fail(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"mazes": records})
}

// byID returns a maze with its wall matrices.
func (mc *MazeController) byID(ctx *gin.Context) {
	id, ok := parseID(ctx)
	if !ok {
		return
	}

	record, m, err := mc.mazeService.ByID(ctx, id)
	if err != nil {
		mc.fail(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, newMazeResponse(record, m))
}

// solution returns the path from the ball to the goal.
func (mc *MazeController) solution(ctx *gin.Context) {
	id, ok := parseID(ctx)
	if !ok {
		return
	}

	path, err := mc.mazeService.Solution(ctx, id)
	if err != nil {
		mc.fail(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, &SolutionResponse{Path: path, Length: len(path)})
}

// layout returns renderer geometry for the requested viewport.
func (mc *MazeController) layout(ctx *gin.Context) {
	id, ok := parseID(ctx)
	if !ok {
		return
	}

	var query LayoutQuery
	if err := ctx.ShouldBindQuery(&query); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	layout, err := mc.mazeService.Layout(ctx, id, query.Width, query.Height)
	if err != nil {
		mc.fail(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, layout)
}

func parseID(ctx *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(ctx.Param("ID"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid maze id"})
		return uuid.Nil, false
	}
	return id, true
}

// fail maps service errors onto HTTP responses.
func (mc *MazeController) fail(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, maze.ErrInvalidDimension),
		errors.Is(err, maze.ErrInvalidViewport),
		errors.Is(err, service.ErrDimensionTooLarge):
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, dmn.ErrMazeNotFound):
		ctx.JSON(http.StatusNotFound, gin.H{"error": "maze not found"})
	default:
		mc.logger.Error("maze request failed", zap.String("path", ctx.FullPath()), zap.Error(err))
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "error while serving maze"})
	}
}
