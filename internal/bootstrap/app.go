package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"
	"golang.org/x/oauth2"

	"legalease-client/internal/conversation"
	"legalease-client/internal/legalease"
	"legalease-client/internal/mockbackend"
	"legalease-client/internal/shared/config"
	"legalease-client/internal/shared/server"
	"legalease-client/internal/shared/server/middleware"
	"legalease-client/internal/shared/storage/db"
	"legalease-client/internal/shared/storage/object"
	localstore "legalease-client/internal/shared/storage/object/local"
	s3store "legalease-client/internal/shared/storage/object/s3"
	"legalease-client/internal/shared/telemetry"
)

// Client holds what the CLI needs to talk to the backend and keep a transcript.
type Client struct {
	Config        config.Config
	API           *legalease.Client
	Store         object.ObjectStore
	DB            *sql.DB
	Conversations *conversation.Service
}

// Close releases the database connection, if any.
func (c *Client) Close() error {
	if c == nil || c.DB == nil {
		return nil
	}
	return c.DB.Close()
}

// BuildClient wires the API client, the artifact store and the conversation
// service. Without DATABASE_URL transcripts live only in memory.
func BuildClient(ctx context.Context, cfg config.Config) (*Client, error) {
	api, err := NewAPIClient(cfg)
	if err != nil {
		return nil, err
	}

	store, err := buildStore(ctx, cfg)
	if err != nil {
		return nil, err
	}

	sqlDB, err := buildDB(ctx, cfg)
	if err != nil {
		return nil, err
	}

	var repo conversation.Repo
	if sqlDB != nil {
		repo = &conversation.PGRepo{DB: sqlDB}
	} else {
		repo = conversation.NewMemoryRepo()
	}

	return &Client{
		Config:        cfg,
		API:           api,
		Store:         store,
		DB:            sqlDB,
		Conversations: conversation.NewService(api, repo),
	}, nil
}

// NewAPIClient builds the typed backend client from configuration.
func NewAPIClient(cfg config.Config) (*legalease.Client, error) {
	clientCfg := legalease.Config{
		BaseURL:        cfg.APIBaseURL,
		Timeout:        cfg.RequestTimeout,
		MaxUploadBytes: cfg.MaxUploadBytes,
	}
	if token := strings.TrimSpace(cfg.APIToken); token != "" {
		clientCfg.TokenSource = oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
	}
	return legalease.NewClient(clientCfg)
}

// BuildMockRouter wires the stand-in backend.
func BuildMockRouter(ctx context.Context, cfg config.Config) (*gin.Engine, error) {
	store, err := buildStore(ctx, cfg)
	if err != nil {
		return nil, err
	}
	handler := mockbackend.NewHandler(store)
	handler.GenerateLimit = middleware.RateLimitRule{
		Rate:  cfg.MockGenerateRate,
		Burst: cfg.MockGenerateBurst,
	}
	return server.NewRouter(cfg, handler), nil
}

func buildDB(ctx context.Context, cfg config.Config) (*sql.DB, error) {
	if strings.TrimSpace(cfg.DatabaseURL) == "" {
		telemetry.Debug("bootstrap.db_disabled", map[string]any{"reason": "DATABASE_URL empty"})
		return nil, nil
	}

	opts := db.OptionsFromEnv(db.DefaultCLIOptions())
	sqlDB, err := db.Connect(ctx, cfg.DatabaseURL, opts)
	if err != nil {
		if isDevLike(cfg.Env) {
			telemetry.Warn("bootstrap.db_unavailable", map[string]any{"err": err})
			return nil, nil
		}
		return nil, err
	}
	if err := db.RunMigrations(ctx, sqlDB); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("migrate conversations: %w", err)
	}
	return sqlDB, nil
}

func buildStore(ctx context.Context, cfg config.Config) (object.ObjectStore, error) {
	switch cfg.ObjectStoreType {
	case "s3":
		if strings.TrimSpace(cfg.AWSRegion) == "" || strings.TrimSpace(cfg.S3Bucket) == "" {
			return nil, fmt.Errorf("OBJECT_STORE=s3 requires AWS_REGION and S3_BUCKET")
		}
		return s3store.New(ctx, cfg.AWSRegion, cfg.S3Bucket, cfg.S3Prefix, cfg.SSEKMSKeyID)
	default:
		return localstore.New(cfg.LocalStoreDir), nil
	}
}

func isDevLike(env string) bool {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "dev", "local":
		return true
	default:
		return false
	}
}
