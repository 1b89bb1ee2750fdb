package routes

import (
	"github.com/go-chi/chi/v5"
	"github.com/redis/go-redis/v9"

	"github.com/zidalco/zidalco-backend/internal/handlers"
	"github.com/zidalco/zidalco-backend/internal/middleware"
)

// SetupRoutes mounts the API. The public submission endpoints are rate
// limited through Redis when available; the feedback/email workflow and
// everything under /api/admin need an admin token.
func SetupRoutes(r *chi.Mux, h *handlers.Handler, rdb *redis.Client) {
	r.Get("/health", h.Health)

	// Auth routes
	r.Post("/api/auth/login", h.Login)
	r.Post("/api/auth/signup", h.Signup)
	r.Post("/api/auth/forgot-password", h.ForgotPassword)
	r.With(middleware.RequireAuth(h.Tokens, h.Admins)).Post("/api/auth/change-password", h.ChangePassword)

	// Public routes
	r.Group(func(r chi.Router) {
		r.Use(middleware.SubmitRateLimit(rdb))
		r.Post("/api/feedback/submit", h.SubmitFeedback)
		r.Post("/api/emails/send", h.SendEmail)
	})
	r.Get("/api/contents", h.PublicContents)

	// Feedback workflow (admin token required)
	r.Route("/api/feedback", func(r chi.Router) {
		r.Use(middleware.RequireAuth(h.Tokens, h.Admins))
		r.Use(middleware.RequireAdmin(h.Admins))
		r.Get("/", h.ListFeedback)
		r.Get("/{id}", h.GetFeedback)
		r.Patch("/status", h.UpdateFeedbackStatus) // id in body
		r.Patch("/{id}/status", h.UpdateFeedbackStatus)
		r.Patch("/{id}/read", h.MarkFeedbackRead)
		r.Post("/reply", h.ReplyFeedback) // feedback_id in body
		r.Post("/{id}/reply", h.ReplyFeedback)
	})

	// Email workflow (admin token required)
	r.Route("/api/emails", func(r chi.Router) {
		r.Use(middleware.RequireAuth(h.Tokens, h.Admins))
		r.Use(middleware.RequireAdmin(h.Admins))
		r.Get("/", h.ListEmails)
		r.Get("/{id}", h.GetEmail)
		r.Patch("/status", h.UpdateEmailStatus) // id in body
		r.Patch("/{id}/status", h.UpdateEmailStatus)
		r.Patch("/{id}/read", h.MarkEmailRead)
		r.Post("/reply", h.ReplyEmail) // email_id in body
		r.Post("/{id}/reply", h.ReplyEmail)
		r.Post("/{id}/resend", h.ResendEmail)
	})

	// Admin dashboard
	r.Route("/api/admin", func(r chi.Router) {
		r.Use(middleware.RequireAuth(h.Tokens, h.Admins))
		r.Use(middleware.RequireAdmin(h.Admins))

		r.Get("/dashboard-stats", h.DashboardStats)
		r.Get("/notifications", h.Notifications)
		r.Post("/mark-read", h.MarkNotificationRead)
		r.Post("/mark-all-read", h.MarkAllNotificationsRead)

		r.Get("/feedback", h.ListFeedback)
		r.Delete("/feedback/{id}", h.DeleteFeedback)
		r.Get("/emails", h.ListEmails)
		r.Delete("/emails/{id}", h.DeleteEmail)

		r.Get("/contents", h.ListContents)
		r.Post("/contents", h.CreateContent)
		r.Patch("/contents/{id}", h.UpdateContent)
		r.Delete("/contents/{id}", h.DeleteContent)

		r.Post("/upload", h.UploadImage)
	})
}
