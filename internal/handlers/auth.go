package handlers

import (
	"encoding/json"
	"fmt"
	"log"
	"math"
	"net/http"

	"github.com/zidalco/zidalco-backend/internal/middleware"
	"github.com/zidalco/zidalco-backend/internal/models"
	"github.com/zidalco/zidalco-backend/pkg/clientip"
)

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Success bool             `json:"success"`
	Message string           `json:"message"`
	Token   string           `json:"token,omitempty"`
	Admin   *models.Identity `json:"admin,omitempty"`
}

// Login authenticates an admin and returns a session token. Attempts are
// throttled per client IP: five failures lock the client out for 30 minutes.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Email == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "Email and password are required")
		return
	}

	// Lockout is keyed by network origin, not by the submitted email, so a
	// visitor cannot lock the admin account out and cannot dodge the limit
	// by rotating emails.
	key := clientip.RealClientIP(r)
	if allowed, retryAfter := h.Limiter.Check(key); !allowed {
		minutes := int(math.Ceil(retryAfter.Minutes()))
		writeError(w, http.StatusTooManyRequests,
			fmt.Sprintf("Too many failed login attempts. Try again in %d minutes.", minutes))
		return
	}

	identity, err := h.Admins.Authenticate(req.Email, req.Password)
	if err != nil {
		h.Limiter.RecordFailure(key)
		remaining := h.Limiter.Remaining(key)
		msg := "Invalid email or password"
		if remaining > 0 && remaining < 3 {
			msg = fmt.Sprintf("Invalid email or password. %d attempts remaining.", remaining)
		}
		writeError(w, http.StatusUnauthorized, msg)
		return
	}

	h.Limiter.RecordSuccess(key)
	token, err := h.Tokens.Issue(identity)
	if err != nil {
		log.Printf("⚠️ Token issue failed: %v", err)
		writeError(w, http.StatusInternalServerError, "Something went wrong. Please try again later.")
		return
	}

	writeJSON(w, http.StatusOK, LoginResponse{
		Success: true,
		Message: "Login successful",
		Token:   token,
		Admin:   &identity,
	})
}

type SignupRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Signup registers a new admin account. Disabled unless SIGNUP_ENABLED is
// set, and even then limited to allowlisted emails; the site runs with a
// fixed admin in normal operation.
func (h *Handler) Signup(w http.ResponseWriter, r *http.Request) {
	if !h.Cfg.SignupEnabled {
		writeError(w, http.StatusForbidden, "Signup is disabled")
		return
	}

	var req SignupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Email == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "Email and password are required")
		return
	}
	if !h.Admins.Allowlisted(req.Email) {
		writeError(w, http.StatusForbidden, "Signup is restricted to approved emails")
		return
	}
	if len(req.Password) < 8 {
		writeError(w, http.StatusBadRequest, "Password must be at least 8 characters long")
		return
	}

	if err := h.Admins.Register(req.Email, req.Name, "admin", req.Password); err != nil {
		writeError(w, http.StatusConflict, "An account with this email already exists")
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"success": true,
		"message": "Account created",
	})
}

type ForgotPasswordRequest struct {
	Email string `json:"email"`
}

// ForgotPassword sends a reset link when the account exists. The response
// is identical either way so the endpoint cannot be used to probe for
// accounts.
func (h *Handler) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	var req ForgotPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Email == "" {
		writeError(w, http.StatusBadRequest, "Email is required")
		return
	}

	if _, ok := h.Admins.Lookup(req.Email); ok {
		resetURL := h.Cfg.ResetRedirectURL
		if resetURL == "" {
			resetURL = h.Cfg.FrontendURL + "/admin/reset-password"
		}
		if err := h.Mailer.SendPasswordReset(req.Email, resetURL); err != nil {
			log.Printf("⚠️ Password reset email failed for %s: %v", req.Email, err)
		}
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "If an account exists for that email, a reset link has been sent.",
	})
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

// ChangePassword updates the authenticated admin's password.
func (h *Handler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	var req ChangePasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.CurrentPassword == "" || req.NewPassword == "" {
		writeError(w, http.StatusBadRequest, "Current and new password are required")
		return
	}
	if len(req.NewPassword) < 8 {
		writeError(w, http.StatusBadRequest, "Password must be at least 8 characters long")
		return
	}

	if err := h.Admins.ChangePassword(identity.Email, req.CurrentPassword, req.NewPassword); err != nil {
		writeError(w, http.StatusUnauthorized, "Current password is incorrect")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "Password updated",
	})
}
