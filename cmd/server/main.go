package main

import (
	"context"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/seatly/desk-reservation/internal/config"
	"github.com/seatly/desk-reservation/internal/database"
	"github.com/seatly/desk-reservation/internal/handler"
	"github.com/seatly/desk-reservation/internal/middleware"
	"github.com/seatly/desk-reservation/internal/queue"
	"github.com/seatly/desk-reservation/internal/repository"
	"github.com/seatly/desk-reservation/internal/router"
	"github.com/seatly/desk-reservation/internal/service"
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
	if err := database.Migrate(ctx, db); err != nil {
		cancel()
		log.Fatalf("database: %v", err)
	}
	cancel()

	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Println("redis unavailable; caching and rate limiting disabled")
	}

	desks := repository.NewDeskRepo(db)
	bookings := repository.NewBookingRepo(db)
	users := repository.NewUserRepo(db)
	tokens := repository.NewTokenRepo(db)

	engine := service.NewBookingEngine(bookings)

	authH := handler.NewAuthHandler(cfg, users, tokens)
	deskH := handler.NewDeskHandler(desks)
	bookingH := handler.NewBookingHandler(engine, desks, bookings)

	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.Recover())
	e.Use(echomw.Logger())
	e.Use(middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb))

	router.RegisterRoutes(e)
	router.RegisterAuth(e, authH, cfg.JWTSecret)
	router.RegisterDesks(e, deskH, bookingH, cfg.JWTSecret, config.LoadCacheConfig(), rdb)

	// Background consumer keeps its own reconnect loop; a broker outage
	// never blocks the HTTP server.
	go func() {
		if err := queue.StartBookingConsumer(); err != nil {
			log.Printf("booking consumer stopped: %v", err)
		}
	}()

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
