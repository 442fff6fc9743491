package main // Entry point package

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/openjustice/crimetrack/internal/config"
	"github.com/openjustice/crimetrack/internal/database"
	"github.com/openjustice/crimetrack/internal/handler"
	"github.com/openjustice/crimetrack/internal/middleware"
	"github.com/openjustice/crimetrack/internal/queue"
	"github.com/openjustice/crimetrack/internal/repository"
	"github.com/openjustice/crimetrack/internal/router"
	"github.com/openjustice/crimetrack/internal/service"
	"github.com/openjustice/crimetrack/internal/storage"
)

func main() {
	cfg := config.Load() // Load environment config; fatal on missing required vars

	// MySQL is required: the process refuses to start without a
	// reachable database.
	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName, cfg.DBMaxConns)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	// Redis is optional; a nil client disables rate limiting, the
	// response cache and email verification tokens.
	rdb := config.NewRedisClient()

	// Object storage for citizen photos, also optional.
	var uploader *storage.Uploader
	if cfg.S3.Bucket != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		up, err := storage.NewUploader(ctx, cfg.S3)
		cancel()
		if err != nil {
			log.Printf("s3: uploader disabled: %v", err)
		} else {
			uploader = up
		}
	}

	users := repository.NewUserRepo(db)
	tokens := repository.NewTokenRepo(db)
	verify := repository.NewVerifyStore(rdb)
	citizens := repository.NewCitizenRepo(db)
	passports := repository.NewPassportRepo(db)
	records := repository.NewRecordRepo(db)
	victims := repository.NewVictimRepo(db)
	arrests := repository.NewArrestRepo(db)
	notifications := repository.NewNotificationRepo(db)

	authH := handler.NewAuthHandler(cfg, users, tokens, verify)
	adminH := handler.NewAdminUserHandler(users)
	api := router.APIHandlers{
		Citizens:      handler.NewCitizenHandler(citizens, passports, uploader),
		Records:       handler.NewRecordHandler(records),
		Victims:       handler.NewVictimHandler(victims),
		Arrests:       handler.NewArrestHandler(arrests),
		Notifications: handler.NewNotificationHandler(notifications, service.NewGeoIPClient(cfg.GeoIPBaseURL)),
		Search:        handler.NewSearchHandler(citizens, passports),
	}

	e := echo.New()
	e.HideBanner = true

	// Global token-bucket rate limit; a pass-through when Redis is
	// down or the limiter is disabled.
	e.Use(middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb))

	router.RegisterRoutes(e)
	router.RegisterAuth(e, authH, cfg.JWTSecret, users)
	router.RegisterAPI(e, api, cfg, rdb, users)
	router.RegisterAdmin(e, adminH, cfg, users)

	// Email delivery runs out-of-process from the request path; the
	// consumer reconnects on its own if the broker drops.
	go func() {
		if err := queue.StartEmailConsumer(queue.FileMailer{}); err != nil {
			log.Printf("email consumer stopped: %v", err)
		}
	}()

	addr := ":" + cfg.Port
	go func() {
		log.Printf("listening on %s (env=%s)", addr, cfg.Env)
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server: %v", err)
		}
	}()

	// Block until asked to stop, then drain in-flight requests.
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		log.Printf("shutdown: %v", err)
	}
	log.Println("bye")
}
