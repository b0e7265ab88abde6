package cli

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"course-quiz-service/internal/app"
	"course-quiz-service/internal/config"
	"course-quiz-service/internal/domain"
	"course-quiz-service/internal/infra/memory"
	pgstore "course-quiz-service/internal/infra/postgres"
	redisstore "course-quiz-service/internal/infra/redis"
	transport "course-quiz-service/internal/transport/http"
	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
)

// NewStartCmd builds the CLI subcommand to start the server.
func NewStartCmd(configPath, port *string) *cobra.Command {
	return &cobra.Command{
		Use:   "start",
		Short: "Start the attempt server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(cmd.Context(), *configPath, *port)
		},
	}
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
	}
	redisTTL := config.TTLDuration(cfg.Redis.TTL, 30*time.Minute)

	var pool *pgxpool.Pool
	if cfg.Postgres.URL != "" {
		pool, err = pgxpool.Connect(ctx, cfg.Postgres.URL)
		if err != nil {
			return err
		}
	}

	var loader memory.QuestionSetLoader = memory.NewStaticSetLoader(sampleQuestionSets())
	if pool != nil {
		loader = pgstore.NewQuestionSetLoader(pool)
	}

	questionsTTL := config.TTLDuration(cfg.Questions.TTL, 10*time.Minute)
	var sets app.QuestionSetRepository
	if redisClient != nil {
		sets = redisstore.NewQuestionSetRepository(redisClient, loader, questionsTTL)
	} else {
		sets = memory.NewQuestionSetRepository(loader, questionsTTL)
	}

	var recorder app.AttemptRecorder = memory.NewAttemptRecorder()
	if pool != nil {
		recorder = pgstore.NewAttemptRecorder(pool)
	}
	if redisClient != nil {
		recorder = redisstore.NewAttemptRecorder(redisClient, recorder)
	}

	var sessions app.SessionRegistry
	if redisClient != nil {
		sessions = redisstore.NewSessionRegistry(redisClient, redisTTL)
	} else {
		sessions = memory.NewSessionRegistry()
	}

	service := app.NewAttemptService(sets, recorder, sessions)
	wsHandler := transport.NewWSHandler(service)

	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})
	mux.HandleFunc("/ws", wsHandler.ServeWS)

	server := &http.Server{
		Addr:         ":" + finalPort,
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	go func() {
		log.Printf("starting quiz attempt service on :%s", finalPort)
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

// sampleQuestionSets provides a minimal built-in set; configure Postgres to
// serve real question banks in production.
func sampleQuestionSets() map[string]domain.QuestionSet {
	return map[string]domain.QuestionSet{
		"python-basics": {
			ID: "python-basics",
			Questions: []domain.Question{
				{
					ID:            "q1",
					Text:          "Which keyword is used to define a function in Python?",
					Options:       []string{"func", "def", "function", "lambda"},
					CorrectAnswer: "def",
					Marks:         1,
				},
				{
					ID:            "q2",
					Text:          "Which data type is immutable?",
					Options:       []string{"list", "dict", "set", "tuple"},
					CorrectAnswer: "tuple",
					Marks:         1,
				},
			},
		},
	}
}
