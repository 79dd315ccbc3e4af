package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/medassist/medassist/internal/config"
	"github.com/medassist/medassist/internal/domain/chat"
	"github.com/medassist/medassist/internal/domain/codes"
	"github.com/medassist/medassist/internal/domain/drug"
	"github.com/medassist/medassist/internal/platform/auth"
	"github.com/medassist/medassist/internal/platform/db"
	"github.com/medassist/medassist/internal/platform/llm"
	"github.com/medassist/medassist/internal/platform/middleware"
	"github.com/medassist/medassist/internal/platform/vector"
)

const version = "0.1.0"

func main() {
	rootCmd := &cobra.Command{
		Use:   "medassist-server",
		Short: "MedAssist clinical decision support API server",
	}

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(migrateCmd())
	rootCmd.AddCommand(seedCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer()
		},
	}
}

func migrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Run database migrations",
	}

	upCmd := &cobra.Command{
		Use:   "up",
		Short: "Apply pending migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, _ := cmd.Flags().GetString("dir")

			cfg, err := config.Load()
			if err != nil {
				return err
			}

			ctx := context.Background()
			pool, err := db.NewPool(ctx, cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
			if err != nil {
				return err
			}
			defer pool.Close()

			migrator := db.NewMigrator(pool, dir)
			count, err := migrator.Up(ctx)
			if err != nil {
				return fmt.Errorf("migration failed: %w", err)
			}

			fmt.Printf("Applied %d migration(s) successfully.\n", count)
			return nil
		},
	}
	upCmd.Flags().String("dir", "./migrations", "Path to migrations directory")
	cmd.AddCommand(upCmd)

	statusCmd := &cobra.Command{
		Use:   "status",
		Short: "Show migration status",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, _ := cmd.Flags().GetString("dir")

			cfg, err := config.Load()
			if err != nil {
				return err
			}

			ctx := context.Background()
			pool, err := db.NewPool(ctx, cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
			if err != nil {
				return err
			}
			defer pool.Close()

			migrator := db.NewMigrator(pool, dir)
			statuses, err := migrator.Status(ctx)
			if err != nil {
				return fmt.Errorf("failed to get migration status: %w", err)
			}

			fmt.Printf("%-10s %-40s %-10s %s\n", "VERSION", "NAME", "STATUS", "APPLIED AT")
			fmt.Println("---------- ---------------------------------------- ---------- --------------------")
			for _, s := range statuses {
				status := "pending"
				appliedAt := ""
				if s.Applied {
					status = "applied"
					if s.AppliedAt != nil {
						appliedAt = s.AppliedAt.Format("2006-01-02 15:04:05")
					}
				}
				fmt.Printf("%-10d %-40s %-10s %s\n", s.Version, s.Name, status, appliedAt)
			}
			return nil
		},
	}
	statusCmd.Flags().String("dir", "./migrations", "Path to migrations directory")
	cmd.AddCommand(statusCmd)

	return cmd
}

func seedCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load the drug catalog, interaction set and starter knowledge documents",
		RunE: func(cmd *cobra.Command, args []string) error {
			skipVectors, _ := cmd.Flags().GetBool("skip-vectors")

			cfg, err := config.Load()
			if err != nil {
				return err
			}

			ctx := context.Background()
			pool, err := db.NewPool(ctx, cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
			if err != nil {
				return err
			}
			defer pool.Close()

			drugSvc := drug.NewService(
				drug.NewDrugRepoPG(pool),
				drug.NewInteractionRepoPG(pool),
				drug.NewStaticSource(),
				drug.NewAliasTable(drug.CatalogVersion, drug.Catalog()),
				cfg.DrugCacheTTL,
				cfg.LookupTimeout,
			)
			if err := drugSvc.Seed(ctx); err != nil {
				return fmt.Errorf("seed drug data: %w", err)
			}
			fmt.Println("Seeded drug catalog and interaction set.")

			if skipVectors {
				return nil
			}

			llmClient := llm.NewClient(llm.Config{
				BaseURL:        cfg.OpenAIBaseURL,
				APIKey:         cfg.OpenAIAPIKey,
				ChatModel:      cfg.OpenAIModel,
				EmbeddingModel: cfg.OpenAIEmbeddingModel,
				Timeout:        cfg.GenerationTimeout,
			})
			store := vector.NewStore(vector.Config{
				URL:        cfg.QdrantURL,
				APIKey:     cfg.QdrantAPIKey,
				Collection: cfg.QdrantCollection,
			})
			if err := chat.NewIngestor(llmClient, store).Ingest(ctx, chat.SeedDocuments()); err != nil {
				return fmt.Errorf("seed knowledge documents: %w", err)
			}
			fmt.Println("Seeded knowledge documents into the vector index.")
			return nil
		},
	}
	cmd.Flags().Bool("skip-vectors", false, "Skip embedding and loading the starter knowledge documents")
	return cmd
}

// drugCheckRecorder writes drug-check summaries into the query log so they
// appear in the caller's history alongside chat queries.
type drugCheckRecorder struct {
	logs   chat.QueryLogRepository
	logger zerolog.Logger
}

func (r *drugCheckRecorder) RecordCheck(ctx context.Context, userID string, drugs []string,
	result *drug.CheckResult, elapsed time.Duration) {
	entry := &chat.QueryLog{
		UserID:           userID,
		QueryType:        chat.QueryTypeDrugCheck,
		Query:            strings.Join(drugs, ", "),
		Answer:           summarizeCheck(result),
		Language:         "en",
		SourceCount:      len(result.Interactions),
		ProcessingTimeMs: elapsed.Milliseconds(),
		ModelUsed:        "interaction-engine",
	}
	if err := r.logs.Insert(ctx, entry); err != nil {
		r.logger.Warn().Err(err).Msg("drug check log insert failed")
	}
}

func summarizeCheck(result *drug.CheckResult) string {
	if len(result.Interactions) == 0 {
		return "No known interactions found."
	}
	parts := make([]string, 0, len(result.Interactions))
	for _, inter := range result.Interactions {
		parts = append(parts, fmt.Sprintf("%s + %s (%s)", inter.DrugA, inter.DrugB, inter.Severity))
	}
	return fmt.Sprintf("%d interaction(s): %s", len(result.Interactions), strings.Join(parts, "; "))
}

func runServer() error {
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	if os.Getenv("ENV") != "production" {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout}).With().Timestamp().Logger()
	}

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load config")
	}
	if err := cfg.Validate(); err != nil {
		logger.Fatal().Err(err).Msg("invalid config")
	}

	ctx := context.Background()
	pool, err := db.NewPool(ctx, cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer pool.Close()
	logger.Info().Msg("connected to database")

	// External collaborators
	llmClient := llm.NewClient(llm.Config{
		BaseURL:        cfg.OpenAIBaseURL,
		APIKey:         cfg.OpenAIAPIKey,
		ChatModel:      cfg.OpenAIModel,
		EmbeddingModel: cfg.OpenAIEmbeddingModel,
		Timeout:        cfg.GenerationTimeout,
	})
	store := vector.NewStore(vector.Config{
		URL:        cfg.QdrantURL,
		APIKey:     cfg.QdrantAPIKey,
		Collection: cfg.QdrantCollection,
	})

	// Repositories and services
	queryLogs := chat.NewQueryLogRepoPG(pool)
	chatSvc := chat.NewService(
		chat.NewRetriever(llmClient, store, cfg.RetrieveK),
		chat.NewAssembler(cfg.ContextTokenBudget, cfg.MinRelevance, cfg.ChatHistoryWindow),
		chat.NewSynthesizer(llmClient),
		chat.NewConversationRepoPG(pool),
		queryLogs,
		cfg.OpenAIModel,
		logger,
	)
	drugSvc := drug.NewService(
		drug.NewDrugRepoPG(pool),
		drug.NewInteractionRepoPG(pool),
		drug.NewStaticSource(),
		drug.NewAliasTable(drug.CatalogVersion, drug.Catalog()),
		cfg.DrugCacheTTL,
		cfg.LookupTimeout,
	)

	// Echo server
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.Recovery(logger))
	e.Use(middleware.RequestID())
	e.Use(middleware.Logger(logger))
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins: cfg.CORSOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodDelete},
		AllowHeaders: []string{"Authorization", "Content-Type", "X-Request-ID"},
	}))

	if cfg.IsDev() {
		e.Use(auth.DevAuthMiddleware())
	} else {
		e.Use(auth.JWTMiddleware(auth.JWTConfig{
			SigningKey: []byte(cfg.AuthSecret),
		}))
	}

	e.Use(middleware.Audit(logger))

	e.GET("/health", db.HealthHandler(pool))

	apiV1 := e.Group("/api/v1")

	rateLimitCfg := middleware.RateLimitConfig{
		RequestsPerSecond: cfg.RateLimitRPS,
		BurstSize:         cfg.RateLimitBurst,
	}
	if rateLimitCfg.RequestsPerSecond <= 0 {
		rateLimitCfg = middleware.DefaultRateLimitConfig()
	}
	apiV1.Use(middleware.RateLimit(rateLimitCfg))
	apiV1.Use(middleware.RequestTimeout(cfg.GenerationTimeout + 30*time.Second))

	chat.NewHandler(chatSvc).RegisterRoutes(apiV1)
	drug.NewHandler(drugSvc, &drugCheckRecorder{logs: queryLogs, logger: logger}).RegisterRoutes(apiV1)
	codes.NewHandler(codes.NewService()).RegisterRoutes(apiV1)

	// Start server with graceful shutdown
	go func() {
		addr := ":" + cfg.Port
		logger.Info().Str("addr", addr).Str("version", version).Msg("starting server")
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Fatal().Err(err).Msg("server shutdown failed")
	}
	logger.Info().Msg("server stopped")
	return nil
}
