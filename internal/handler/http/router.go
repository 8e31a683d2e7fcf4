package http

import (
	"log/slog"
	"os"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
	"github.com/wellura/staff-scheduling-go/internal/handler/http/middleware"
	"github.com/wellura/staff-scheduling-go/internal/pkg/jwt"
)

func NewRouter(
	verifier *jwt.Verifier,
	scheduleHandler ScheduleHandler,
	swapHandler SwapHandler,
	timeOffHandler TimeOffHandler,
	optimizerHandler OptimizerHandler,
	env string,
) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "staff-scheduling"),
		slog.String("version", "v1.0.0"),
		slog.String("env", env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000"},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
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
		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(verifier.JWTAuth()))
			r.Use(middleware.AuthRequired(verifier.JWTAuth()))

			r.Route("/schedules", func(r chi.Router) {
				r.Post("/", scheduleHandler.Create)
				r.Route("/{scheduleID}", func(r chi.Router) {
					r.Get("/", scheduleHandler.Get)
					r.Patch("/status", scheduleHandler.UpdateStatus)
					r.Post("/generate", scheduleHandler.Generate)
				})
			})

			r.Route("/shift-swaps", func(r chi.Router) {
				r.Post("/", swapHandler.Request)
				r.Route("/{requestID}", func(r chi.Router) {
					r.Get("/", swapHandler.Get)
					r.Post("/process", swapHandler.Process)
				})
			})

			r.Route("/time-off", func(r chi.Router) {
				r.Post("/", timeOffHandler.Request)
				r.Route("/{requestID}", func(r chi.Router) {
					r.Get("/", timeOffHandler.Get)
					r.Post("/process", timeOffHandler.Process)
				})
			})

			r.Route("/staff/{staffID}", func(r chi.Router) {
				r.Get("/schedules", scheduleHandler.ListForStaff)
				r.Get("/shift-swaps", swapHandler.ListForStaff)
				r.Get("/time-off", timeOffHandler.ListForStaff)
				r.Get("/vacation-balance", timeOffHandler.VacationBalance)
			})

			r.Post("/optimizer/assignments", optimizerHandler.OptimizeAssignments)
		})
	})
	return r
}
