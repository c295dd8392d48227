package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"hiretrack-backend/internal/feeds"
	"hiretrack-backend/internal/gmail"
	"hiretrack-backend/internal/ingest"
	"hiretrack-backend/internal/jobs"
	"hiretrack-backend/internal/llm"
	"hiretrack-backend/internal/llm/anthropic"
	"hiretrack-backend/internal/resumes"
	"hiretrack-backend/internal/screening"
	"hiretrack-backend/internal/shared/config"
	"hiretrack-backend/internal/shared/server"
	"hiretrack-backend/internal/shared/storage/db"
	"hiretrack-backend/internal/sources"
)

// App holds shared dependencies.
type App struct {
	Config           config.Config
	Router           *gin.Engine
	DB               *sql.DB
	JobsRepo         jobs.Repo
	ResumeCorpus     *resumes.Loader
	JobsService      *jobs.Service
	ScreeningService *screening.Service
	IngestService    *ingest.Service
	MailScanners     []ingest.Scanner
	FeedScanners     []ingest.Scanner
	JobsHandler      *jobs.Handler
	ScreeningHandler *screening.Handler
	IngestHandler    *ingest.Handler
}

// Build prepares shared dependencies and wires the router.
func Build(cfg config.Config) (*App, error) {
	if strings.TrimSpace(cfg.Env) == "" {
		cfg.Env = "dev"
	}
	ctx := context.Background()

	sqlDB, err := buildDB(ctx, cfg)
	if err != nil {
		return nil, err
	}

	app := &App{
		Config: cfg,
		DB:     sqlDB,
	}

	if err := buildServices(ctx, app); err != nil {
		return nil, err
	}

	app.Router = server.NewRouter(server.RouterDeps{
		Config:    app.Config,
		Jobs:      app.JobsHandler,
		Screening: app.ScreeningHandler,
		Ingest:    app.IngestHandler,
	})

	return app, nil
}

func buildDB(ctx context.Context, cfg config.Config) (*sql.DB, error) {
	if strings.TrimSpace(cfg.DatabaseURL) == "" {
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: DATABASE_URL empty; using in-memory repository")
			return nil, nil
		}
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	opts := db.OptionsFromEnv(db.DefaultServerOptions())
	sqlDB, err := db.Connect(ctx, cfg.DatabaseURL, opts)
	if err != nil {
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: database connect failed; using in-memory repository: %v", err)
			return nil, nil
		}
		return nil, err
	}

	if err := db.RunMigrations(ctx, sqlDB); err != nil {
		sqlDB.Close()
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: migrations failed; using in-memory repository: %v", err)
			return nil, nil
		}
		return nil, fmt.Errorf("run migrations: %w", err)
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

func buildLLM(cfg config.Config) (llm.Client, error) {
	if cfg.LLMProvider != "anthropic" {
		log.Printf("bootstrap: unknown LLM_PROVIDER %q; generation disabled", cfg.LLMProvider)
		return llm.PlaceholderClient{}, nil
	}
	apiKey := strings.TrimSpace(os.Getenv("ANTHROPIC_API_KEY"))
	if apiKey == "" {
		log.Printf("bootstrap: ANTHROPIC_API_KEY empty; generation disabled")
		return llm.PlaceholderClient{}, nil
	}
	return anthropic.NewClient(apiKey, cfg.LLMModel)
}

func buildServices(ctx context.Context, app *App) error {
	var repo jobs.Repo
	if app.DB != nil {
		repo = &jobs.PGRepo{DB: app.DB}
	} else {
		repo = jobs.NewMemoryRepo()
	}

	llmClient, err := buildLLM(app.Config)
	if err != nil {
		return err
	}

	prefs := screening.Preferences{
		City:   app.Config.TargetCity,
		Region: app.Config.TargetRegion,
	}
	screenSvc := screening.NewService(llmClient, repo, prefs)
	jobsSvc := jobs.NewService(repo)
	ingestSvc := ingest.NewService(repo, screenSvc)
	corpus := resumes.NewLoader(app.Config.ResumesDir)

	lookback := time.Duration(app.Config.LookbackDays) * 24 * time.Hour
	if lookback <= 0 {
		lookback = gmail.DefaultLookback
	}

	app.JobsRepo = repo
	app.ResumeCorpus = corpus
	app.JobsService = jobsSvc
	app.ScreeningService = screenSvc
	app.IngestService = ingestSvc
	app.MailScanners = buildMailScanners(ctx, app.Config, lookback)
	app.FeedScanners = buildFeedScanners(app.Config, lookback)
	app.JobsHandler = jobs.NewHandler(jobsSvc)
	app.ScreeningHandler = screening.NewHandler(screenSvc, corpus)
	app.IngestHandler = ingest.NewHandler(ingestSvc, corpus, app.MailScanners, app.FeedScanners)

	return nil
}

// buildMailScanners is best-effort: a missing or stale Gmail token only
// disables the mail scanners, the feed and capture paths keep working.
func buildMailScanners(ctx context.Context, cfg config.Config, lookback time.Duration) []ingest.Scanner {
	client, err := gmail.NewFromFiles(ctx, cfg.GmailCredentials, cfg.GmailToken)
	if err != nil {
		log.Printf("bootstrap: gmail unavailable, mail scanners disabled: %v", err)
		return nil
	}
	return []ingest.Scanner{
		{
			Name:    "career-network",
			Fetcher: gmail.NewFetcher(client, gmail.CareerNetworkQueries, lookback),
			Parser:  sources.CareerNetworkParser{},
		},
		{
			Name:    "job-board",
			Fetcher: gmail.NewFetcher(client, gmail.JobBoardQueries, lookback),
			Parser:  sources.JobBoardParser{},
		},
	}
}

func buildFeedScanners(cfg config.Config, lookback time.Duration) []ingest.Scanner {
	urls := cfg.FeedURLs
	if len(urls) == 0 {
		urls = feeds.DefaultURLs
	}
	return []ingest.Scanner{
		{
			Name:    "remote-feed",
			Fetcher: feeds.NewFetcher(urls),
			Parser:  sources.RemoteFeedParser{Lookback: lookback},
		},
	}
}
