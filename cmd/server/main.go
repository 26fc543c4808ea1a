package main // Entry point package

import (
	"context"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/sporttrack/sporttrack/internal/config"
	"github.com/sporttrack/sporttrack/internal/database"
	"github.com/sporttrack/sporttrack/internal/handler"
	"github.com/sporttrack/sporttrack/internal/middleware"
	"github.com/sporttrack/sporttrack/internal/queue"
	"github.com/sporttrack/sporttrack/internal/repository"
	"github.com/sporttrack/sporttrack/internal/router"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	if err := database.EnsureSchema(ctx, db); err != nil {
		cancel()
		log.Fatalf("schema: %v", err)
	}
	cancel()

	users := repository.NewUserRepo(db)
	tokens := repository.NewTokenRepo(db)
	items := repository.NewItemRepo(db)
	reservations := repository.NewReservationRepo(db)
	subs := repository.NewSubscriptionRepo(db)

	authH := handler.NewAuthHandler(cfg, users, tokens, subs)
	itemH := handler.NewItemHandler(items)
	resH := handler.NewReservationHandler(reservations, items)
	teamH := handler.NewTeamHandler(cfg, users)
	dashH := handler.NewDashboardHandler(items, reservations, users)
	subH := handler.NewSubscriptionHandler(subs)
	ovH := handler.NewOverviewHandler(users)

	// Redis backs both the limiter and the response cache; with no
	// Redis both fall back to pass-through.
	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Println("redis unavailable; rate limiting and caching disabled")
	}
	rateLimit := middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb)
	cache := middleware.NewRedisCache(config.LoadCacheConfig(), rdb)

	e := echo.New()
	e.HideBanner = true
	e.Use(rateLimit)

	router.RegisterRoutes(e)
	router.RegisterAuth(e, authH, cfg.JWTSecret)
	router.RegisterClub(e, itemH, resH, dashH, cfg.JWTSecret, cache)
	router.RegisterAdmin(e, itemH, resH, teamH, subH, authH, cfg.JWTSecret)
	router.RegisterSuperAdmin(e, ovH, cfg.JWTSecret)

	// Background consumer writes return events to logs/returns.log and
	// reconnects on broker outages.
	go func() {
		if err := queue.StartReturnConsumer(); err != nil {
			log.Printf("return consumer stopped: %v", err)
		}
	}()

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
