package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	googleauth "resume-builder/internal/auth"
	"resume-builder/internal/billing"
	"resume-builder/internal/exports"
	"resume-builder/internal/queue"
	"resume-builder/internal/resumes"
	"resume-builder/internal/services/health"
	sharedauth "resume-builder/internal/shared/auth"
	"resume-builder/internal/shared/config"
	"resume-builder/internal/shared/server"
	"resume-builder/internal/shared/storage/cache"
	"resume-builder/internal/shared/storage/db"
	"resume-builder/internal/shared/storage/object"
	localstore "resume-builder/internal/shared/storage/object/local"
	s3store "resume-builder/internal/shared/storage/object/s3"
	"resume-builder/internal/shared/telemetry"
	"resume-builder/internal/suggestions"
	"resume-builder/internal/users"
)

// App holds shared dependencies and the HTTP router.
type App struct {
	Config config.Config
	Router *gin.Engine
	DB     *sql.DB
	Redis  *redis.Client
	Store  object.ObjectStore
	Queue  queue.Client
	Tokens *sharedauth.Signer

	UsersService       *users.Service
	ResumesService     *resumes.Service
	ExportsService     *exports.Service
	SuggestionsService *suggestions.Service
	BillingService     *billing.Service
	HealthService      *health.Service
	GoogleAuth         *googleauth.GoogleService
}

type buildOptions struct {
	dbOptions db.Options
}

// Option customizes Build.
type Option func(*buildOptions)

// WithDBOptions overrides the connection pool settings.
func WithDBOptions(opts db.Options) Option {
	return func(b *buildOptions) { b.dbOptions = opts }
}

// Build prepares shared dependencies and wires routes.
func Build(cfg config.Config, opts ...Option) (*App, error) {
	if strings.TrimSpace(cfg.Env) == "" {
		cfg.Env = "dev"
	}
	if strings.TrimSpace(cfg.ObjectStoreType) == "" {
		cfg.ObjectStoreType = "local"
	}
	if strings.TrimSpace(cfg.JWTSecret) == "" && isDevLike(cfg.Env) {
		cfg.JWTSecret = "dev-secret"
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	tokens, err := sharedauth.NewSigner(cfg.JWTSecret, sharedauth.DefaultTTL)
	if err != nil {
		return nil, err
	}
	bo := buildOptions{dbOptions: db.DefaultServerOptions()}
	for _, opt := range opts {
		opt(&bo)
	}
	ctx := context.Background()

	sqlDB, err := buildDB(ctx, cfg, bo.dbOptions)
	if err != nil {
		return nil, err
	}
	redisClient, err := buildRedis(ctx, cfg)
	if err != nil {
		return nil, err
	}
	store, err := buildStore(ctx, cfg)
	if err != nil {
		return nil, err
	}
	queueClient, err := buildQueue(ctx, cfg)
	if err != nil {
		return nil, err
	}

	app := &App{
		Config: cfg,
		DB:     sqlDB,
		Redis:  redisClient,
		Store:  store,
		Queue:  queueClient,
		Tokens: tokens,
	}
	if err := buildServices(ctx, app); err != nil {
		return nil, err
	}

	app.Router = server.NewRouter(server.RouterDeps{
		Config:            cfg,
		UsersHandler:      users.NewHandler(app.UsersService),
		ResumesHandler:    resumes.NewHandler(app.ResumesService),
		ExportsHandler:    exports.NewHandler(app.ExportsService),
		SuggestionHandler: suggestions.NewHandler(app.SuggestionsService),
		BillingHandler:    billing.NewHandler(app.BillingService),
		HealthService:     app.HealthService,
		GoogleAuth:        app.GoogleAuth,
		Tokens:            app.Tokens,
	})
	return app, nil
}

// Close releases pooled connections.
func (a *App) Close() {
	if a.DB != nil {
		_ = a.DB.Close()
	}
	if a.Redis != nil {
		_ = a.Redis.Close()
	}
}

func buildDB(ctx context.Context, cfg config.Config, opts db.Options) (*sql.DB, error) {
	if strings.TrimSpace(cfg.DatabaseURL) == "" {
		if isDevLike(cfg.Env) {
			telemetry.Warn("bootstrap.memory_repos", map[string]any{"reason": "DATABASE_URL empty"})
			return nil, nil
		}
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	sqlDB, err := db.Connect(ctx, cfg.DatabaseURL, db.OptionsFromEnv(opts))
	if err != nil {
		if isDevLike(cfg.Env) {
			telemetry.Warn("bootstrap.memory_repos", map[string]any{"reason": "connect failed", "error": err.Error()})
			return nil, nil
		}
		return nil, err
	}
	return sqlDB, nil
}

func buildRedis(ctx context.Context, cfg config.Config) (*redis.Client, error) {
	if strings.TrimSpace(cfg.RedisURL) == "" {
		return nil, nil
	}
	client, err := cache.Open(ctx, cfg.RedisURL)
	if err != nil {
		if isDevLike(cfg.Env) {
			telemetry.Warn("bootstrap.memory_oauth_state", map[string]any{"error": err.Error()})
			return nil, nil
		}
		return nil, err
	}
	return client, nil
}

func buildStore(ctx context.Context, cfg config.Config) (object.ObjectStore, error) {
	switch cfg.ObjectStoreType {
	case "s3":
		if strings.TrimSpace(cfg.S3Bucket) == "" {
			return nil, fmt.Errorf("OBJECT_STORE=s3 requires S3_BUCKET")
		}
		store, err := s3store.New(ctx, s3store.Config{
			Region:          cfg.AWSRegion,
			Bucket:          cfg.S3Bucket,
			Prefix:          cfg.S3Prefix,
			KMSKeyID:        cfg.SSEKMSKeyID,
			Endpoint:        cfg.S3Endpoint,
			AccessKeyID:     cfg.S3AccessKeyID,
			SecretAccessKey: cfg.S3SecretAccessKey,
			UsePathStyle:    cfg.S3ForcePathStyle,
		})
		if err != nil {
			return nil, err
		}
		return store, nil
	default:
		return localstore.New(cfg.LocalStoreDir), nil
	}
}

func buildQueue(ctx context.Context, cfg config.Config) (queue.Client, error) {
	if strings.TrimSpace(cfg.ExportQueueURL) == "" {
		return nil, nil
	}
	client, err := queue.NewSQSClient(ctx, cfg.AWSRegion, cfg.SQSEndpoint, cfg.ExportQueueURL)
	if err != nil {
		return nil, err
	}
	return client, nil
}

func isDevLike(env string) bool {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "dev", "local":
		return true
	default:
		return false
	}
}

func buildServices(ctx context.Context, app *App) error {
	var (
		userRepo   users.Repo
		resumeRepo resumes.Repo
		exportRepo exports.Repo
	)
	if app.DB != nil {
		gormDB, err := db.OpenGorm(app.DB)
		if err != nil {
			return fmt.Errorf("open gorm: %w", err)
		}
		userRepo = &users.PGRepo{DB: app.DB}
		resumeRepo = resumes.NewGormRepo(gormDB)
		exportRepo = &exports.PGRepo{DB: app.DB}
	} else {
		userRepo = users.NewMemoryRepo()
		resumeRepo = resumes.NewMemoryRepo()
		exportRepo = exports.NewMemoryRepo()
	}

	resumeSvc := resumes.NewService(resumeRepo)
	userSvc := users.NewService(userRepo, resumeSvc)
	exportSvc := exports.NewService(exportRepo, resumeSvc, app.Store, app.Queue)

	var provider suggestions.Provider
	if key := strings.TrimSpace(app.Config.GeminiAPIKey); key != "" {
		client, err := suggestions.NewGeminiClient(ctx, key, app.Config.GeminiModel)
		if err != nil {
			return err
		}
		provider = &suggestions.GeminiProvider{Generator: client}
	}

	var states googleauth.StateStore
	if app.Redis != nil {
		states = googleauth.NewRedisStateStore(app.Redis)
	}

	app.UsersService = userSvc
	app.ResumesService = resumeSvc
	app.ExportsService = exportSvc
	app.SuggestionsService = suggestions.NewService(provider)
	app.BillingService = billing.NewService()
	app.HealthService = health.NewService(app.DB, app.Redis)
	app.GoogleAuth = googleauth.NewGoogleService(googleauth.GoogleConfig{
		ClientID:      app.Config.GoogleClientID,
		ClientSecret:  app.Config.GoogleClientSecret,
		RedirectURL:   app.Config.GoogleRedirectURL,
		UIRedirectURL: app.Config.UIRedirectURL,
		Tokens:        app.Tokens,
	}, states, userSvc)
	return nil
}
