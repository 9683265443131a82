package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/go-chi/jwtauth/v5"
	"github.com/go-redis/redis/v8"

	"github.com/crewsync/crewsync-backend-go/internal/config"
	appHTTP "github.com/crewsync/crewsync-backend-go/internal/handler/http"
	"github.com/crewsync/crewsync-backend-go/internal/pkg/database"
	"github.com/crewsync/crewsync-backend-go/internal/pkg/pubsub"
	"github.com/crewsync/crewsync-backend-go/internal/pkg/qr"
	"github.com/crewsync/crewsync-backend-go/internal/pkg/sse"
	"github.com/crewsync/crewsync-backend-go/internal/repository/postgresql"
	broadcastService "github.com/crewsync/crewsync-backend-go/internal/service/broadcast"
	"github.com/crewsync/crewsync-backend-go/internal/service/master"
	reportService "github.com/crewsync/crewsync-backend-go/internal/service/report"
	rosterService "github.com/crewsync/crewsync-backend-go/internal/service/roster"
	staffService "github.com/crewsync/crewsync-backend-go/internal/service/staff"
	statsService "github.com/crewsync/crewsync-backend-go/internal/service/stats"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL())
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil)).With(
		slog.String("app", "crewsync"),
	)

	eventRepo := postgresql.NewEventRepository(db)
	vendorRepo := postgresql.NewVendorRepository(db)
	positionRepo := postgresql.NewPositionRepository(db)
	shiftRepo := postgresql.NewShiftRepository(db)
	staffRepo := postgresql.NewStaffRepository(db)
	statsRepo := postgresql.NewStatsRepository(db)

	qrGenerator := qr.NewGenerator(cfg.QR.Secret)
	renderer := reportService.NewHTTPRenderer(cfg.Renderer.BaseURL, cfg.Renderer.Timeout)

	hub := sse.NewHub()

	// Redis mirrors live updates across instances; without it the SSE hub
	// still serves single-instance deployments.
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	publisher := pubsub.NewRedisPublisher(redisClient)

	statsSvc := statsService.NewStatsService(statsRepo, eventRepo)
	rosterSvc := rosterService.NewRosterService(db, eventRepo, vendorRepo, positionRepo, shiftRepo, staffRepo)
	staffSvc := staffService.NewStaffService(db, eventRepo, staffRepo, qrGenerator)
	masterSvc := master.NewMasterService(vendorRepo, positionRepo)
	reportSvc := reportService.NewReportService(eventRepo, statsSvc, renderer)

	broadcaster := broadcastService.NewBroadcaster(statsSvc, hub, publisher, logger)

	staffHandler := appHTTP.NewStaffHandler(staffSvc, broadcaster)
	rosterHandler := appHTTP.NewRosterHandler(rosterSvc, broadcaster)
	statsHandler := appHTTP.NewStatsHandler(statsSvc)
	masterHandler := appHTTP.NewMasterHandler(masterSvc)
	reportHandler := appHTTP.NewReportHandler(reportSvc)
	liveHandler := appHTTP.NewLiveHandler(eventRepo, hub, broadcaster, publisher)

	tokenAuth := jwtauth.New("HS256", []byte(cfg.JWT.Secret), nil)

	router := appHTTP.NewRouter(
		cfg,
		tokenAuth,
		staffHandler,
		rosterHandler,
		statsHandler,
		masterHandler,
		reportHandler,
		liveHandler,
	)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
