package routes

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/Dosada05/golf-admin/handlers"
	"github.com/Dosada05/golf-admin/metrics"
	"github.com/Dosada05/golf-admin/middleware"
	"github.com/Dosada05/golf-admin/session"
)

// Handlers bundles every HTTP handler the router mounts.
type Handlers struct {
	Dashboard    *handlers.DashboardHandler
	Golfer       *handlers.GolferHandler
	Group        *handlers.GroupHandler
	Export       *handlers.ExportHandler
	Registration *handlers.RegistrationHandler
	Raffle       *handlers.RaffleHandler
	Tournament   *handlers.TournamentHandler
	Activity     *handlers.ActivityHandler
	Employee     *handlers.EmployeeHandler
	WebSocket    *handlers.WebSocketHandler
}

// Options holds the cross-cutting pieces the router needs.
type Options struct {
	Auth           *middleware.Authenticator
	Metrics        *metrics.Metrics
	AllowedOrigins []string
}

func SetupRoutes(router chi.Router, h Handlers, opts Options) {
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   opts.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Content-Disposition", handlers.ArchiveURLHeader},
		AllowCredentials: false,
		MaxAge:           300,
	}))
	router.Use(chiMiddleware.RequestID)
	router.Use(chiMiddleware.RealIP)
	router.Use(chiMiddleware.Logger)
	router.Use(chiMiddleware.Recoverer)
	router.Use(opts.Metrics.Middleware)

	router.Get("/healthz", handlers.Healthz)
	router.Handle("/metrics", opts.Metrics.Handler())
	router.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	router.Group(func(r chi.Router) {
		r.Use(opts.Auth.Authenticate)
		r.With(middleware.TournamentScope("tournamentID")).
			Get("/ws/tournaments/{tournamentID}", h.WebSocket.ServeWs)
	})

	router.Route("/api/v1", func(r chi.Router) {
		r.Use(chiMiddleware.Timeout(60 * time.Second))

		// Public sign-up wizard.
		r.Route("/registration", func(r chi.Router) {
			r.Post("/", h.Registration.Start)
			r.Route("/{registrationID}", func(r chi.Router) {
				r.Get("/", h.Registration.Get)
				r.Post("/next", h.Registration.Next)
				r.Post("/back", h.Registration.Back)
				r.Post("/submit", h.Registration.Submit)
				r.Get("/complete", h.Registration.Complete)
			})
		})

		r.Group(func(r chi.Router) {
			r.Use(opts.Auth.Authenticate)
			adminOnly := middleware.RequireRole(session.RoleAdmin)

			r.Get("/tournaments", h.Tournament.List)

			r.Route("/tournaments/{tournamentID}", func(r chi.Router) {
				r.Use(middleware.TournamentScope("tournamentID"))

				r.Get("/", h.Tournament.Get)
				r.With(adminOnly).Put("/", h.Tournament.Update)

				r.Get("/golfers", h.Dashboard.View)
				r.Post("/golfers/sync", h.Dashboard.Resync)
				r.Get("/check-in", h.Dashboard.CheckInQueue)
				r.Route("/golfers/{golferID}", func(r chi.Router) {
					r.Get("/", h.Golfer.Get)
					r.Patch("/", h.Golfer.Update)
					r.With(adminOnly).Delete("/", h.Golfer.Delete)
					r.Post("/cancel", h.Golfer.Cancel)
					r.Post("/refund", h.Golfer.Refund)
					r.Post("/promote", h.Golfer.Promote)
					r.Post("/demote", h.Golfer.Demote)
					r.Post("/payment", h.Golfer.MarkPaid)
					r.Post("/check-in", h.Golfer.CheckIn)
					r.Post("/employee", h.Golfer.SetEmployee)
				})

				r.Route("/groups", func(r chi.Router) {
					r.Get("/", h.Group.Board)
					r.Post("/", h.Group.Create)
					r.Post("/sync", h.Group.Refresh)
					r.Post("/moves", h.Group.Move)
					r.With(adminOnly).Delete("/{groupID}", h.Group.Delete)
					r.Post("/{groupID}/members", h.Group.AddMembers)
					r.Delete("/{groupID}/members/{golferID}", h.Group.RemoveMember)
				})

				r.Get("/exports/{report}", h.Export.Download)

				r.Route("/raffle", func(r chi.Router) {
					r.Get("/", h.Raffle.Board)
					r.Post("/prizes", h.Raffle.CreatePrize)
					r.With(adminOnly).Delete("/prizes/{prizeID}", h.Raffle.DeletePrize)
					r.Post("/prizes/{prizeID}/draw", h.Raffle.Draw)
					r.Post("/tickets", h.Raffle.SellTickets)
				})

				r.Get("/activity", h.Activity.List)

				r.Route("/employee-numbers", func(r chi.Router) {
					r.Use(adminOnly)
					r.Get("/", h.Employee.List)
					r.Post("/", h.Employee.Add)
					r.Delete("/{numberID}", h.Employee.Delete)
				})
			})
		})
	})

	router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error":"the requested resource could not be found"}`))
	})
}
