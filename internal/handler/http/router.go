package http

import (
	"log/slog"
	"os"

	"github.com/crewsync/crewsync-backend-go/internal/config"
	"github.com/crewsync/crewsync-backend-go/internal/handler/http/middleware"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
)

func NewRouter(
	cfg *config.Config,
	tokenAuth *jwtauth.JWTAuth,
	staffHandler StaffHandler,
	rosterHandler RosterHandler,
	statsHandler StatsHandler,
	masterHandler MasterHandler,
	reportHandler ReportHandler,
	liveHandler LiveHandler,
) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "crewsync"),
		slog.String("version", "v1.0.0"),
		slog.String("env", cfg.App.Env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000"},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link", "Content-Disposition"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelDebug,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Route("/api/v1", func(r chi.Router) {
		// Everything requires a verified token from the auth service.
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(tokenAuth))
			r.Use(middleware.AuthRequired(tokenAuth))

			r.Route("/vendors", func(r chi.Router) {
				r.Get("/", masterHandler.ListVendors)
				r.Post("/", masterHandler.CreateVendor)
				r.Route("/{vendorID}", func(r chi.Router) {
					r.Get("/", masterHandler.GetVendor)
					r.Put("/", masterHandler.UpdateVendor)
					r.Delete("/", masterHandler.DeleteVendor)
				})
			})

			r.Route("/positions", func(r chi.Router) {
				r.Get("/", masterHandler.ListPositions)
				r.Post("/", masterHandler.CreatePosition)
				r.Route("/{positionID}", func(r chi.Router) {
					r.Get("/", masterHandler.GetPosition)
					r.Put("/", masterHandler.UpdatePosition)
					r.Delete("/", masterHandler.DeletePosition)
				})
			})

			r.Route("/events/{eventID}", func(r chi.Router) {
				r.Get("/live", liveHandler.Stream)
				r.Get("/shifts", rosterHandler.ListShifts)

				r.Route("/roster", func(r chi.Router) {
					r.Post("/upload", rosterHandler.Upload)
					r.Post("/quantity", rosterHandler.AddOrRemove)
					r.Delete("/vendors/{vendorID}/shifts/{shiftID}", rosterHandler.ClearVendorShift)
				})

				r.Route("/staff", func(r chi.Router) {
					r.Get("/", staffHandler.List)
					r.Post("/", staffHandler.Create)
					r.Patch("/batch", staffHandler.BatchUpdate)

					r.Route("/{staffID}", func(r chi.Router) {
						r.Get("/", staffHandler.Get)
						r.Delete("/", staffHandler.Delete)

						r.Post("/check-in", staffHandler.CheckIn)
						r.Delete("/check-in", staffHandler.UndoCheckIn)
						r.Post("/check-out", staffHandler.CheckOut)
						r.Delete("/check-out", staffHandler.UndoCheckOut)

						r.Get("/qr", staffHandler.GenerateQR)
						r.Post("/qr/claim", staffHandler.ClaimQR)

						r.Put("/flag", staffHandler.ToggleFlag)
						r.Put("/priority", staffHandler.TogglePriority)
					})
				})

				r.Route("/stats", func(r chi.Router) {
					r.Get("/overview", statsHandler.Overview)
					r.Get("/daily", statsHandler.DailyBreakdown)
					r.Get("/variance", statsHandler.Variance)
				})

				r.Route("/reports", func(r chi.Router) {
					r.Post("/", reportHandler.Generate)
					r.Post("/preview", reportHandler.Preview)
				})
			})
		})
	})

	return r
}
