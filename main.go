package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/beka-birhanu/vinom-maze/api"
	api_i "github.com/beka-birhanu/vinom-maze/api/i"
	"github.com/beka-birhanu/vinom-maze/api/identity"
	mazeapi "github.com/beka-birhanu/vinom-maze/api/maze"
	"github.com/beka-birhanu/vinom-maze/config"
	"github.com/beka-birhanu/vinom-maze/infrastruture/cache"
	"github.com/beka-birhanu/vinom-maze/infrastruture/repo"
	"github.com/beka-birhanu/vinom-maze/infrastruture/token"
	"github.com/beka-birhanu/vinom-maze/logger"
	"github.com/beka-birhanu/vinom-maze/service"
	"github.com/beka-birhanu/vinom-maze/service/i"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// Global variables for dependencies
var (
	appLogger      *zap.Logger
	mongoClient    *mongo.Client
	redisClient    *redis.Client
	mazeRepo       *repo.MazeRepo
	mazeCache      i.MazeCache
	mazeService    i.MazeService
	jwtTokenizer   i.Tokenizer
	mazeController api_i.Controller
	router         *api.Router
)

func initLogger() {
	var err error
	appLogger, err = logger.New(config.Envs.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Creating logger: %v\n", err)
		os.Exit(1)
	}
}

func initMongo(ctx context.Context) {
	uri := fmt.Sprintf("mongodb://%s:%s@%s:%v", config.Envs.DBUser, config.Envs.DBPassword, config.Envs.DBHost, config.Envs.DBPort)

	clientOptions := options.Client().ApplyURI(uri)
	var err error
	mongoClient, err = mongo.Connect(ctx, clientOptions)
	if err != nil {
		appLogger.Fatal("Failed to connect to MongoDB", zap.Error(err))
	}
	if err = mongoClient.Ping(ctx, nil); err != nil {
		appLogger.Fatal("MongoDB ping failed", zap.Error(err))
	}
	appLogger.Info("Connected to MongoDB")
}

func initRedis(ctx context.Context) {
	redisClient = redis.NewClient(&redis.Options{
		Addr:     config.Envs.RedisAddr,
		Password: config.Envs.RedisPassword,
	})
	if err := redisClient.Ping(ctx).Err(); err != nil {
		appLogger.Fatal("Redis ping failed", zap.Error(err))
	}
	appLogger.Info("Connected to Redis")
}

func initMazeRepo(ctx context.Context, client *mongo.Client) {
	mazeRepo = repo.NewMazeRepo(client, config.Envs.DBName, "mazes")
	if err := mazeRepo.EnsureIndexes(ctx); err != nil {
		appLogger.Warn("Creating maze indexes", zap.Error(err))
	}
	appLogger.Info("Maze repository initialized")
}

func initMazeCache(client *redis.Client) {
	var err error
	mazeCache, err = cache.NewRedisMazeCache(client, config.Envs.CacheTTLSeconds)
	if err != nil {
		appLogger.Fatal("Creating maze cache", zap.Error(err))
	}
	appLogger.Info("Maze cache initialized")
}

func initMazeService() {
	var err error
	mazeService, err = service.NewMazeService(service.MazeServiceConfig{
		Repo:         mazeRepo,
		Cache:        mazeCache,
		MaxDimension: config.Envs.MaxMazeDimension,
		Logger:       appLogger.Named("MAZE-SERVICE"),
	})
	if err != nil {
		appLogger.Fatal("Creating maze service", zap.Error(err))
	}
	appLogger.Info("Maze service initialized")
}

func initJWTTokenizer() {
	jwtTokenizer = token.NewJwtService(config.Envs.JWTSecret, config.Envs.JWTIssuer)
	appLogger.Info("JWT Tokenizer initialized")
}

func initMazeController() {
	var err error
	mazeController, err = mazeapi.NewMazeController(mazeService, appLogger.Named("MAZE-API"))
	if err != nil {
		appLogger.Fatal("Creating maze controller", zap.Error(err))
	}
	appLogger.Info("Maze controller initialized")
}

func initRouter(t i.Tokenizer) {
	router = api.NewRouter(api.Config{
		Addr:                    fmt.Sprintf("%s:%v", config.Envs.HostIP, config.Envs.RESTPort),
		BaseURL:                 "/api",
		Mode:                    config.Envs.GinMode,
		Controllers:             []api_i.Controller{mazeController},
		AuthorizationMiddleware: identity.Authoriz(t),
		Logger:                  appLogger.Named("HTTP"),
	})
	appLogger.Info("Router initialized")
}

func main() {
	initLogger()
	defer func() {
		_ = appLogger.Sync()
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	initMongo(ctx)
	defer func() {
		_ = mongoClient.Disconnect(context.Background())
	}()

	initRedis(ctx)
	defer redisClient.Close()

	initMazeRepo(ctx, mongoClient)
	initMazeCache(redisClient)
	initMazeService()
	initJWTTokenizer()
	initMazeController()
	initRouter(jwtTokenizer)

	if err := router.Run(); err != nil {
		appLogger.Error("Starting server", zap.Error(err))
		os.Exit(1)
	}
}
