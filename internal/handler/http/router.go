package http

import (
	"log/slog"
	"os"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"

	"github.com/talenthub-id/ess-gateway-go/internal/handler/http/middleware"
	"github.com/talenthub-id/ess-gateway-go/internal/pkg/jwt"
)

func NewRouter(
	jwtService jwt.Service,
	authHandler AuthHandler,
	attendanceHandler AttendanceHandler,
	leaveHandler LeaveHandler,
	holidayHandler HolidayHandler,
) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "ess-gateway"),
		slog.String("version", "v1.0.0"),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowCredentials: false,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
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

		r.Route("/auth", func(r chi.Router) {
			r.Post("/login", authHandler.Login)
			r.Post("/refresh", authHandler.RefreshToken)
			r.Post("/logout", authHandler.Logout)
		})

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(jwtService.JWTAuth()))
			r.Use(middleware.AuthRequired(jwtService.JWTAuth()))

			r.Route("/auth/password", func(r chi.Router) {
				r.Post("/reset", authHandler.ResetPassword)
				r.Post("/change", authHandler.ChangePassword)
			})

			r.Route("/attendance", func(r chi.Router) {
				r.Get("/calendar", attendanceHandler.GetCalendar)
				r.Get("/eligibility", attendanceHandler.GetEligibility)
				r.Post("/entries", attendanceHandler.SubmitEntry)
				r.Get("/quota", attendanceHandler.GetQuota)
			})

			r.Route("/applications", func(r chi.Router) {
				r.Post("/", leaveHandler.Apply)
				r.Get("/", leaveHandler.ListMine)
				r.Delete("/{kind}/{id}", leaveHandler.Cancel)

				r.Route("/approvals", func(r chi.Router) {
					r.Get("/", leaveHandler.ListPendingApprovals)
					r.Post("/{kind}/{id}", leaveHandler.Decide)
				})
			})

			r.Get("/leave-balances", leaveHandler.GetBalances)
			r.Get("/holidays", holidayHandler.List)

			// HR only
			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireHR)
				r.Post("/employees/{employeeID}/device-reset", authHandler.ResetDevice)
			})
		})
	})

	return r
}
