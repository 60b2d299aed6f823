package cli

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	"wiki-quiz-service/internal/app"
	"wiki-quiz-service/internal/config"
	"wiki-quiz-service/internal/domain"
	"wiki-quiz-service/internal/generator"
	"wiki-quiz-service/internal/infra/memory"
	pgstore "wiki-quiz-service/internal/infra/postgres"
	rediscache "wiki-quiz-service/internal/infra/redis"
	transport "wiki-quiz-service/internal/transport/http"
)

// NewStartCmd builds the CLI subcommand to start the server.
func NewStartCmd(configPath, port *string) *cobra.Command {
	return &cobra.Command{
		Use:   "start",
		Short: "Start the quiz API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(cmd.Context(), *configPath, *port)
		},
	}
}

// quizBackend is what the service needs from the quiz table, plus the loader
// the cache falls back to.
type quizBackend interface {
	app.QuizStore
	memory.QuizLoader
}

func runServer(ctx context.Context, configPath, portFlag string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	if cfg.Postgres.URL != "" {
		if err := runMigrationsWithConfig(ctx, cfg); err != nil {
			return err
		}
	}

	finalPort := portFlag
	if finalPort == "" {
		finalPort = cfg.Server.Port
	}
	if finalPort == "" {
		finalPort = "8080"
	}

	var redisClient *redis.Client
	if cfg.Redis.Addr != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer redisClient.Close()
	}

	var backend quizBackend = memory.NewQuizStore(sampleQuizzes()...)
	if cfg.Postgres.URL != "" {
		pool, err := pgxpool.Connect(ctx, cfg.Postgres.URL)
		if err != nil {
			return err
		}
		defer pool.Close()
		backend = pgstore.NewQuizStore(pool)
	} else {
		log.Printf("postgres not configured; quizzes are kept in memory")
	}

	quizTTL := config.TTLDuration(cfg.Quiz.TTL, 5*time.Minute)
	sessionTTL := config.TTLDuration(cfg.Session.TTL, config.TTLDuration(cfg.Redis.TTL, 30*time.Minute))

	var quizRepo app.QuizRepository
	var sessions app.SessionRepository
	if redisClient != nil {
		quizRepo = rediscache.NewQuizRepository(redisClient, backend, quizTTL)
		sessions = rediscache.NewSessionStore(redisClient, sessionTTL)
	} else {
		quizRepo = memory.NewQuizRepository(backend, quizTTL)
		sessions = memory.NewSessionStore()
	}

	genTimeout := config.TTLDuration(cfg.Generator.Timeout, 60*time.Second)
	gen := generator.NewClient(cfg.Generator.URL, &http.Client{Timeout: genTimeout})

	service := app.NewQuizService(gen, backend, quizRepo, sessions, app.WithSourceMarker(cfg.Generator.SourceMarker))
	router := transport.NewRouter(service, transport.RouterOptions{
		AllowedOrigins: cfg.Server.AllowedOrigins,
		RequestTimeout: genTimeout + 5*time.Second,
	})

	server := &http.Server{
		Addr:        ":" + finalPort,
		Handler:     router,
		ReadTimeout: 15 * time.Second,
		// Generation waits on the generator, so writes get its timeout too.
		WriteTimeout: genTimeout + 15*time.Second,
	}

	go func() {
		log.Printf("starting quiz service on :%s", finalPort)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Printf("failed to start server: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-stop:
		log.Println("shutting down server...")
	case <-ctx.Done():
		log.Println("context canceled, shutting down server...")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

// sampleQuizzes seeds the in-memory store so the server is usable without Postgres.
func sampleQuizzes() []domain.QuizRecordRaw {
	return []domain.QuizRecordRaw{
		{
			URL:     "https://en.wikipedia.org/wiki/Arithmetic",
			Title:   "Arithmetic",
			Summary: "Arithmetic is an elementary branch of mathematics that studies numerical operations.",
			Quiz: json.RawMessage(`[
				{"question":"What is 2 + 2?","options":["3","4","5"],"correct_answer":1,"difficulty":"Easy","explanation":"Two plus two is four."},
				{"question":"Which operation is the inverse of multiplication?","options":["Addition","Division","Subtraction"],"answer":"Division","difficulty":"Medium"}
			]`),
			RelatedTopics: json.RawMessage(`{"Multiplication":"https://en.wikipedia.org/wiki/Multiplication","Division":"https://en.wikipedia.org/wiki/Division_(mathematics)"}`),
		},
	}
}
