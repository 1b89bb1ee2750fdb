package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/zidalco/zidalco-backend/internal/auth"
	"github.com/zidalco/zidalco-backend/internal/config"
	"github.com/zidalco/zidalco-backend/internal/services"
	"github.com/zidalco/zidalco-backend/internal/store"
)

// Handler carries the dependencies shared by every endpoint.
type Handler struct {
	Cfg     *config.Config
	DB      *store.Dispatcher
	Admins  *auth.Registry
	Tokens  *auth.TokenManager
	Limiter *auth.LoginLimiter
	Mailer  *services.Mailer
	Uploads *services.UploadService // nil when Cloudinary is not configured
}

func New(cfg *config.Config, db *store.Dispatcher, admins *auth.Registry, tokens *auth.TokenManager, limiter *auth.LoginLimiter, mailer *services.Mailer, uploads *services.UploadService) *Handler {
	return &Handler{
		Cfg:     cfg,
		DB:      db,
		Admins:  admins,
		Tokens:  tokens,
		Limiter: limiter,
		Mailer:  mailer,
		Uploads: uploads,
	}
}

func nowISO() string {
	return time.Now().UTC().Format(time.RFC3339)
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]any{
		"success": false,
		"message": message,
	})
}

// storeError maps a dispatcher response onto an HTTP error reply.
func storeError(w http.ResponseWriter, resp store.Response) {
	switch resp.Status {
	case http.StatusNotFound:
		writeError(w, http.StatusNotFound, "Record not found")
	case http.StatusBadRequest:
		writeError(w, http.StatusBadRequest, "Invalid request")
	default:
		writeError(w, http.StatusInternalServerError, "Something went wrong. Please try again later.")
	}
}
