// Package bootstrap builds the application object graph: configuration,
// database, object store, provider client, services, handlers, router.
package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"strings"

	"github.com/gin-gonic/gin"

	googleauth "agentiq-backend/internal/auth"
	"agentiq-backend/internal/calls"
	"agentiq-backend/internal/history"
	"agentiq-backend/internal/llm"
	openai "agentiq-backend/internal/llm/openai"
	"agentiq-backend/internal/services/health"
	"agentiq-backend/internal/shared/config"
	"agentiq-backend/internal/shared/server"
	"agentiq-backend/internal/shared/storage/db"
	"agentiq-backend/internal/shared/storage/object"
	localstore "agentiq-backend/internal/shared/storage/object/local"
	s3store "agentiq-backend/internal/shared/storage/object/s3"
	"agentiq-backend/internal/usage"
	"agentiq-backend/internal/users"
)

// App holds shared dependencies.
type App struct {
	Config config.Config
	Router *gin.Engine
	DB     *sql.DB
	Store  object.ObjectStore

	CallsRepo    calls.Repo
	UsersRepo    users.Repo
	HistoryCache *history.Cache

	CallsService *calls.Service
	UsageService *usage.Service
	UsersService *users.Service

	CallsHandler *calls.Handler
	UsageHandler *usage.Handler
	UsersHandler *users.Handler
	GoogleAuth   *googleauth.GoogleService
}

// Build prepares shared dependencies and wires the router.
func Build(cfg config.Config) (*App, error) {
	if strings.TrimSpace(cfg.Env) == "" {
		cfg.Env = "dev"
	}
	if strings.TrimSpace(cfg.ObjectStoreType) == "" {
		cfg.ObjectStoreType = "local"
	}
	ctx := context.Background()

	sqlDB, err := buildDB(ctx, cfg)
	if err != nil {
		return nil, err
	}

	store, err := buildStore(ctx, cfg)
	if err != nil {
		return nil, err
	}

	app := &App{
		Config: cfg,
		DB:     sqlDB,
		Store:  store,
	}

	if err := buildServices(app); err != nil {
		return nil, err
	}

	app.Router = server.NewRouter(server.RouterDeps{
		Config:       app.Config,
		CallsHandler: app.CallsHandler,
		UsageHandler: app.UsageHandler,
		UsersHandler: app.UsersHandler,
		GoogleAuth:   app.GoogleAuth,
		Health:       health.NewService(),
	})

	return app, nil
}

func buildDB(ctx context.Context, cfg config.Config) (*sql.DB, error) {
	if strings.TrimSpace(cfg.DatabaseURL) == "" {
		if cfg.IsDevLike() {
			log.Printf("bootstrap: DATABASE_URL empty; using in-memory repositories")
			return nil, nil
		}
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	opts := db.OptionsFromEnv(db.DefaultServerOptions())
	sqlDB, err := db.Connect(ctx, cfg.DatabaseURL, opts)
	if err != nil {
		if cfg.IsDevLike() {
			log.Printf("bootstrap: database connect failed; using in-memory repositories: %v", err)
			return nil, nil
		}
		return nil, err
	}

	if err := db.RunMigrations(ctx, sqlDB); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return sqlDB, nil
}

func buildStore(ctx context.Context, cfg config.Config) (object.ObjectStore, error) {
	switch cfg.ObjectStoreType {
	case "s3":
		return s3store.New(ctx, cfg.AWSRegion, cfg.S3Bucket, cfg.S3Prefix, cfg.SSEKMSKeyID)
	default:
		return localstore.New(cfg.LocalStoreDir), nil
	}
}

func buildServices(app *App) error {
	var callsRepo calls.Repo
	var userRepo users.Repo
	if app.DB != nil {
		callsRepo = &calls.PGRepo{DB: app.DB}
		userRepo = &users.PGRepo{DB: app.DB}
	} else {
		callsRepo = calls.NewMemoryRepo()
		userRepo = users.NewMemoryRepo()
	}

	cache := history.NewCache(app.Config.DataDir)
	recorder := history.NewRecorder(cache, calls.RepoRemote{Repo: callsRepo})

	// Quota counts derive from the analyses themselves: Postgres rows when
	// available, otherwise the local history mirror.
	var usageSvc *usage.Service
	if app.DB != nil {
		usageSvc = usage.NewService(usage.NewPGStore(app.DB), app.Config.DailyLimit, app.Config.MonthlyLimit)
	} else {
		usageSvc = usage.NewService(usage.NewLocalStore(cache), app.Config.DailyLimit, app.Config.MonthlyLimit)
	}

	llmClient := llm.Client(llm.PlaceholderClient{})
	if strings.TrimSpace(app.Config.OpenAIAPIKey) != "" {
		openaiClient, err := openai.NewClient(app.Config.OpenAIAPIKey, app.Config.OpenAIModel)
		if err != nil {
			return err
		}
		llmClient = openaiClient
	} else {
		log.Printf("bootstrap: OPENAI_API_KEY empty; analysis endpoint will reject requests")
	}

	callsSvc := &calls.Service{
		Repo:            callsRepo,
		Usage:           usageSvc,
		Recorder:        recorder,
		LLM:             llmClient,
		Archive:         app.Store,
		MaxAudioSeconds: app.Config.MaxAudioSeconds,
	}

	userSvc := users.NewService(userRepo)
	googleAuthSvc := googleauth.NewGoogleService(
		app.Config.GoogleClientID,
		app.Config.GoogleClientSecret,
		app.Config.GoogleRedirectURL,
		app.Config.UIRedirectURL,
		userSvc,
	)

	app.CallsRepo = callsRepo
	app.UsersRepo = userRepo
	app.HistoryCache = cache
	app.CallsService = callsSvc
	app.UsageService = usageSvc
	app.UsersService = userSvc
	app.CallsHandler = calls.NewHandler(callsSvc)
	app.UsageHandler = usage.NewHandler(usageSvc)
	app.UsersHandler = users.NewHandler(userSvc)
	app.GoogleAuth = googleAuthSvc

	return nil
}
