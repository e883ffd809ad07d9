package httpserver

import (
	"net/http"
	"time"

	"kasmoni-app-go/internal/config"
	"kasmoni-app-go/internal/transport/httpserver/handler"
	authmw "kasmoni-app-go/internal/transport/httpserver/middleware"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
)

func NewRouter(cfg config.Config, handlers *handler.Handlers, tokens authmw.TokenValidator) http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Timeout(30 * time.Second))
	r.Use(authmw.NewCORS([]string{"http://localhost:5173"}))

	auth := authmw.NewJWTAuth(cfg.Auth, tokens)

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", handlers.Health)

		r.Post("/auth/login", handlers.Login)
		r.With(auth.Optional).Post("/auth/register", handlers.Register)

		r.Group(func(r chi.Router) {
			r.Use(auth.Middleware)

			r.Get("/auth/me", handlers.AuthMe)

			r.Get("/groups", handlers.ListGroups)
			r.Get("/groups/active", handlers.ListActiveGroups)
			r.Get("/groups/{id}", handlers.GetGroup)
			r.Get("/groups/{id}/members", handlers.ListGroupMembers)
			r.Get("/groups/{id}/members/{member_id}/open-slots", handlers.ListOpenSlots)

			r.Get("/members", handlers.ListMembers)
			r.Get("/members/payable", handlers.ListPayableMembers)
			r.Get("/members/{id}", handlers.GetMember)
			r.Get("/members/{id}/groups", handlers.ListMemberGroups)
			r.Get("/members/{id}/combinations", handlers.ListMemberCombinations)

			r.Get("/banks", handlers.ListBanks)
			r.Get("/banks/{id}", handlers.GetBank)

			r.Get("/assignments", handlers.ListAssignments)

			r.Get("/payments", handlers.ListPayments)
			r.Get("/payments/duplicate-check", handlers.CheckDuplicatePayment)
			r.Get("/payments/{id}", handlers.GetPayment)

			r.Get("/reports/dashboard", handlers.ReportsDashboard)
			r.Get("/reports/financial-summary", handlers.ReportsFinancialSummary)
			r.Get("/reports/payment-log", handlers.ReportsPaymentLog)

			r.Get("/activity", handlers.ListActivity)

			r.Group(func(r chi.Router) {
				r.Use(authmw.RequireAdmin)

				r.Post("/groups", handlers.CreateGroup)
				r.Put("/groups/{id}", handlers.UpdateGroup)
				r.Delete("/groups/{id}", handlers.DeleteGroup)

				r.Post("/members", handlers.CreateMember)
				r.Put("/members/{id}", handlers.UpdateMember)
				r.Delete("/members/{id}", handlers.DeleteMember)

				r.Post("/banks", handlers.CreateBank)
				r.Delete("/banks/{id}", handlers.DeleteBank)

				r.Post("/assignments", handlers.CreateAssignment)
				r.Delete("/assignments/{id}", handlers.DeleteAssignment)

				r.Post("/payments", handlers.CreatePayment)
				r.Post("/payments/batch", handlers.CreatePaymentBatch)
				r.Put("/payments/{id}", handlers.UpdatePayment)
				r.Patch("/payments/{id}/status", handlers.UpdatePaymentStatus)
				r.Delete("/payments/{id}", handlers.DeletePayment)
			})
		})
	})

	return r
}
