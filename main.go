package main

import (
	"context"
	"log"

	"github.com/allegro/bigcache/v3"
	"github.com/gorilla/mux"
	"github.com/gorilla/sessions"
	"github.com/joho/godotenv"

	"github.com/golang-cafe/job-portal/internal/config"
	"github.com/golang-cafe/job-portal/internal/handler"
	"github.com/golang-cafe/job-portal/internal/job"
	"github.com/golang-cafe/job-portal/internal/metrics"
	"github.com/golang-cafe/job-portal/internal/middleware"
	"github.com/golang-cafe/job-portal/internal/server"
	"github.com/golang-cafe/job-portal/internal/session"
	"github.com/golang-cafe/job-portal/internal/storage"
	"github.com/golang-cafe/job-portal/internal/template"
	"github.com/golang-cafe/job-portal/internal/user"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, using environment")
	}
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("unable to load config: %+v", err)
	}
	logger := middleware.NewLogger(cfg.Env)

	var store storage.Store = storage.NewMemory()
	if cfg.Store == "redis" {
		rdb := storage.NewRedis(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err := rdb.Ping(context.Background()); err != nil {
			log.Fatalf("unable to connect to redis: %v", err)
		}
		defer rdb.Close()
		store = rdb
	}

	bigCache, err := bigcache.New(context.Background(), bigcache.DefaultConfig(cfg.JobsCacheTTL))
	if err != nil {
		log.Fatalf("unable to initialise big cache: %v", err)
	}
	defer bigCache.Close()

	sessionStore := sessions.NewCookieStore(cfg.SessionKey)
	sessionStore.Options.HttpOnly = true
	sessionStore.Options.Secure = cfg.Env != "dev"
	manager := session.NewManager(sessionStore, cfg.JwtSigningKey, store, cfg.AdminEmail)

	jobRepo := job.NewRepository(
		job.NewClient(cfg.JobsAPIURL, cfg.JobsAPITimeout),
		job.WithCache(bigCache),
		job.WithLogger(logger),
		job.WithFallbackHook(metrics.RecordFallback),
	)
	users := user.NewRegistry(store)

	svr := server.NewServer(
		cfg,
		mux.NewRouter(),
		template.NewTemplate(),
		manager,
		bigCache,
		logger,
	)
	handler.RegisterRoutes(svr, jobRepo, users)

	log.Fatal(svr.Run())
}
