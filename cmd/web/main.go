package main

import (
	"context"
	"log"
	"time"

	"github.com/joho/godotenv"

	"github.com/jobportal/web/internal/backend"
	"github.com/jobportal/web/internal/config"
	"github.com/jobportal/web/internal/database"
	"github.com/jobportal/web/internal/guard"
	"github.com/jobportal/web/internal/handlers"
	"github.com/jobportal/web/internal/middleware"
	"github.com/jobportal/web/internal/session"
)

func main() {
	// 1. Load Environment Variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using process environment")
	}
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Invalid configuration: ", err)
	}

	// 2. Session Store (Postgres when configured, memory otherwise)
	var store session.Store
	if cfg.DatabaseDSN != "" {
		db, err := database.Connect(cfg.DatabaseDSN)
		if err != nil {
			log.Fatal("Failed to connect to database: ", err)
		}
		gormStore, err := session.NewGormStore(db)
		if err != nil {
			log.Fatal("Failed to prepare session store: ", err)
		}
		store = gormStore
		go purgeLoop(gormStore)
	} else {
		log.Println("DATABASE_DSN not set, sessions are in-memory only")
		store = session.NewMemoryStore()
	}

	// 3. Backend Client & Session Manager
	api := backend.New(cfg.BackendURL, cfg.BackendTimeout)
	sessions := session.NewManager(store, api, cfg.SessionTTL)

	// 4. Guard, Handlers & Router
	g := &guard.Middleware{Sessions: sessions, CookieName: cfg.CookieName, Secure: cfg.CookieSecure}
	h := handlers.New(api, sessions, cfg.CookieName, cfg.CookieSecure)
	loginLimiter := middleware.NewRateLimiter(cfg.LoginRateLimit, cfg.LoginRateBurst)
	r := handlers.Router(h, g, loginLimiter, cfg.CORSAllowedOrigin)

	// 5. Serve
	log.Printf("Job portal frontend listening on %s (backend: %s)", cfg.ListenAddr, cfg.BackendURL)
	if err := r.Run(cfg.ListenAddr); err != nil {
		log.Fatal("Server failed to start: ", err)
	}
}

// purgeLoop drops expired sessions once an hour.
func purgeLoop(store *session.GormStore) {
	for range time.Tick(time.Hour) {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		if err := store.PurgeExpired(ctx); err != nil {
			log.Printf("Purging expired sessions: %v", err)
		}
		cancel()
	}
}
