package bootstrap

import (
	"context"
	"database/sql"
	"log"
	"strings"

	"github.com/gin-gonic/gin"

	"docportal-backend/internal/documents"
	"docportal-backend/internal/monday"
	"docportal-backend/internal/requirements"
	"docportal-backend/internal/shared/config"
	"docportal-backend/internal/shared/server"
	"docportal-backend/internal/shared/storage/db"
	"docportal-backend/internal/webhook"
)

// App holds shared dependencies.
type App struct {
	Config config.Config
	Router *gin.Engine
	DB     *sql.DB

	DocumentsRepo    documents.Repo
	DocumentsService *documents.Service
	Notifier         *webhook.Notifier
	Monday           *monday.Client

	DocumentsHandler *documents.Handler
	ChecklistHandler *requirements.Handler
	MondayHandler    *monday.Handler
}

// Build prepares shared dependencies and the router.
func Build(cfg config.Config) (*App, error) {
	if strings.TrimSpace(cfg.Env) == "" {
		cfg.Env = "dev"
	}
	ctx := context.Background()

	sqlDB, err := buildDB(ctx, cfg)
	if err != nil {
		return nil, err
	}

	var repo documents.Repo
	if sqlDB != nil {
		repo = &documents.PGRepo{DB: sqlDB}
	} else {
		repo = documents.NewMemoryRepo()
	}

	notifier := webhook.NewNotifier(cfg.WebhookURL, cfg.WebhookTimeout)

	var mondayClient *monday.Client
	if cfg.MondayToken != "" && cfg.MondayBoardID != "" {
		mondayClient, err = monday.NewClient(monday.Config{
			Token:               cfg.MondayToken,
			BoardID:             cfg.MondayBoardID,
			APIURL:              cfg.MondayAPIURL,
			ApplicantIDColumn:   cfg.MondayApplicantIDColumn,
			ApplicantTypeColumn: cfg.MondayApplicantTypeColumn,
		})
		if err != nil {
			return nil, err
		}
	} else {
		log.Printf("bootstrap: board integration disabled; MONDAY_TOKEN or MONDAY_BOARD_ID not set")
	}

	docSvc := &documents.Service{
		Repo:               repo,
		Notifier:           notifier,
		DefaultReferenceID: cfg.DefaultReferenceID,
	}

	checklistHandler := &requirements.Handler{
		Repo:               repo,
		Source:             cfg.RequirementsSource,
		DefaultReferenceID: cfg.DefaultReferenceID,
	}
	if mondayClient != nil {
		checklistHandler.Board = mondayClient
	}

	app := &App{
		Config:           cfg,
		DB:               sqlDB,
		DocumentsRepo:    repo,
		DocumentsService: docSvc,
		Notifier:         notifier,
		Monday:           mondayClient,
		DocumentsHandler: documents.NewHandler(docSvc),
		ChecklistHandler: checklistHandler,
		MondayHandler:    monday.NewHandler(mondayClient),
	}

	app.Router = server.NewRouter(server.RouterDeps{
		Config:    cfg,
		Documents: app.DocumentsHandler,
		Checklist: app.ChecklistHandler,
		Monday:    app.MondayHandler,
	})

	return app, nil
}

func buildDB(ctx context.Context, cfg config.Config) (*sql.DB, error) {
	if strings.TrimSpace(cfg.DatabaseURL) == "" {
		log.Printf("bootstrap: DATABASE_URL empty; using in-memory document store")
		return nil, nil
	}

	opts := db.OptionsFromEnv(db.DefaultServerOptions())
	sqlDB, err := db.Connect(ctx, cfg.DatabaseURL, opts)
	if err != nil {
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: database connect failed; using in-memory document store: %v", err)
			return nil, nil
		}
		return nil, err
	}

	if err := db.RunMigrations(ctx, sqlDB); err != nil {
		sqlDB.Close()
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: migrations failed; using in-memory document store: %v", err)
			return nil, nil
		}
		return nil, err
	}

	return sqlDB, nil
}

func isDevLike(env string) bool {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "dev", "local":
		return true
	default:
		return false
	}
}
