package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/healix-app/healix-be/internal/api"
	"github.com/healix-app/healix-be/internal/assistant"
	"github.com/healix-app/healix-be/internal/auth"
	"github.com/healix-app/healix-be/internal/chat"
	"github.com/healix-app/healix-be/internal/circuitbreaker"
	"github.com/healix-app/healix-be/internal/config"
	"github.com/healix-app/healix-be/internal/db"
	"github.com/healix-app/healix-be/internal/diagnosis"
	"github.com/healix-app/healix-be/internal/friends"
	"github.com/healix-app/healix-be/internal/history"
	"github.com/healix-app/healix-be/internal/news"
	"github.com/healix-app/healix-be/internal/workout"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	catalog, err := diagnosis.OpenCatalog(cfg.CatalogPath)
	if err != nil {
		log.Fatalf("Failed to load condition catalog: %v", err)
	}
	log.Printf("✅ Condition catalog %s loaded (%d conditions)", catalog.Version(), catalog.Len())

	store, closeStore := openHistory(cfg)
	defer closeStore()

	breaker := circuitbreaker.New("history", 5, 30*time.Second,
		circuitbreaker.OnStateChange(func(name string, from, to circuitbreaker.State) {
			log.Printf("Circuit breaker %s: %s -> %s", name, from, to)
		}),
	)

	chatEngine := chat.NewEngine(
		assistant.New(diagnosis.NewAnalyzer(catalog)),
		history.NewRecorder(store, breaker),
		cfg.ChatProcessingDelay,
	)

	users := auth.NewService()
	router := api.NewRouter(api.Services{
		Users:        users,
		Issuer:       auth.NewIssuer(cfg.JWTSecret),
		Engine:       chatEngine,
		History:      store,
		HistoryLimit: cfg.HistoryLimit,
		Catalog:      catalog,
		Workouts: workout.NewService(workout.WithNames(func(userID string) string {
			if u, ok := users.Get(userID); ok {
				return u.Name
			}
			return ""
		})),
		Friends:        friends.NewService(),
		News:           news.NewService(time.Now),
		AllowedOrigins: cfg.AllowedOrigins,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Printf("🚀 Server starting on http://localhost:%s", cfg.Port)
		log.Printf("📝 API endpoints:")
		for _, route := range api.Routes {
			log.Printf("   %s", route)
		}

		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exited")
}

// openHistory picks PostgreSQL when DATABASE_URL is set, memory otherwise
func openHistory(cfg *config.Config) (history.Store, func()) {
	if cfg.DatabaseURL == "" {
		log.Println("⚠️  DATABASE_URL not set, history is kept in memory")
		return history.NewMemoryStore(cfg.HistoryLimit), func() {}
	}

	if cfg.RunMigrations {
		if err := db.Migrate(cfg.DatabaseURL); err != nil {
			log.Fatalf("Failed to migrate database: %v", err)
		}
		log.Println("✅ Database migrations applied")
	}

	database, err := db.New(context.Background(), db.Config{
		URL:             cfg.DatabaseURL,
		MaxConnections:  25,
		MaxIdleConns:    5,
		ConnMaxLifetime: 5 * time.Minute,
	})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	log.Println("✅ Database connected")

	return database.Issues(), func() { database.Close() }
}
