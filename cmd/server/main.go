package main

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/rainditya/tutor-backoffice/internal/config"
	"github.com/rainditya/tutor-backoffice/internal/database"
	"github.com/rainditya/tutor-backoffice/internal/handler"
	"github.com/rainditya/tutor-backoffice/internal/queue"
	"github.com/rainditya/tutor-backoffice/internal/repository"
	"github.com/rainditya/tutor-backoffice/internal/router"
	"github.com/rainditya/tutor-backoffice/internal/service"
	"github.com/rainditya/tutor-backoffice/internal/state"
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

	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Printf("redis unavailable; rate limiting and response cache disabled")
	}

	tutorRepo := repository.NewTutorRepo(db)
	bookingRepo := repository.NewBookingRepo(db, tutorRepo)

	tutors := state.NewTutors(tutorRepo, state.DefaultMinFetchDelay)
	bookings := state.NewBookings(bookingRepo, state.DefaultMinFetchDelay)

	h := router.Handlers{
		Auth:      handler.NewAuthHandler(cfg, repository.NewUserRepo(db), repository.NewTokenRepo(db)),
		Tutors:    handler.NewTutorHandler(tutors, tutorRepo, bookingRepo),
		Bookings:  handler.NewBookingHandler(bookings, queue_publisher.Publisher{}),
		Dashboard: handler.NewDashboardHandler(tutors, bookings, bookingRepo),
	}

	go func() {
		if err := queue.StartBookingConsumer(); err != nil {
			log.Printf("booking consumer stopped: %v", err)
		}
	}()

	e := echo.New()
	router.Register(e, cfg, h, rdb)

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
