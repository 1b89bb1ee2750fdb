package auth

import (
	"errors"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/zidalco/zidalco-backend/internal/models"
	"github.com/zidalco/zidalco-backend/pkg/utils"
)

var (
	ErrBadCredentials = errors.New("invalid email or password")
	ErrAdminExists    = errors.New("admin already exists")
	ErrUnknownAdmin   = errors.New("no such admin")
)

// Registry holds the admin accounts. Accounts live in memory only; they are
// seeded from configuration at startup and changes do not survive a restart.
type Registry struct {
	mu        sync.RWMutex
	admins    map[string]*models.Admin // keyed by lowercased email
	allowlist map[string]bool
}

// NewRegistry creates an empty registry with the given allowlist of admin
// emails. Allowlisted emails are recognized as admins regardless of role.
func NewRegistry(allowlist []string) *Registry {
	al := make(map[string]bool, len(allowlist))
	for _, e := range allowlist {
		if e = strings.ToLower(strings.TrimSpace(e)); e != "" {
			al[e] = true
		}
	}
	return &Registry{
		admins:    make(map[string]*models.Admin),
		allowlist: al,
	}
}

// Seed registers the bootstrap admin from configuration. A weak or missing
// password is logged, not fatal; login simply stays impossible for it.
func (r *Registry) Seed(email, name, password string) {
	if email == "" || password == "" {
		log.Println("⚠️ Admin seed skipped: ADMIN_EMAIL or ADMIN_PASSWORD not set")
		return
	}
	if err := r.Register(email, name, "admin", password); err != nil {
		log.Printf("⚠️ Admin seed failed: %v", err)
		return
	}
	log.Printf("Seeded admin account %s", email)
}

// Register adds a new admin account.
func (r *Registry) Register(email, name, role, password string) error {
	key := strings.ToLower(strings.TrimSpace(email))
	if key == "" {
		return errors.New("email is required")
	}

	hash, err := utils.HashPassword(password)
	if err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.admins[key]; ok {
		return ErrAdminExists
	}
	r.admins[key] = &models.Admin{
		ID:           uuid.New(),
		CreatedAt:    time.Now().UTC(),
		Name:         name,
		Email:        key,
		Role:         role,
		PasswordHash: hash,
	}
	return nil
}

// Authenticate checks credentials and returns the admin identity.
func (r *Registry) Authenticate(email, password string) (models.Identity, error) {
	key := strings.ToLower(strings.TrimSpace(email))

	r.mu.RLock()
	admin, ok := r.admins[key]
	r.mu.RUnlock()
	if !ok {
		return models.Identity{}, ErrBadCredentials
	}

	match, err := utils.VerifyPassword(password, admin.PasswordHash)
	if err != nil || !match {
		return models.Identity{}, ErrBadCredentials
	}
	return admin.Identity(), nil
}

// ChangePassword verifies the current password and replaces it.
func (r *Registry) ChangePassword(email, current, next string) error {
	key := strings.ToLower(strings.TrimSpace(email))

	r.mu.Lock()
	defer r.mu.Unlock()
	admin, ok := r.admins[key]
	if !ok {
		return ErrUnknownAdmin
	}

	match, err := utils.VerifyPassword(current, admin.PasswordHash)
	if err != nil || !match {
		return ErrBadCredentials
	}

	hash, err := utils.HashPassword(next)
	if err != nil {
		return err
	}
	admin.PasswordHash = hash
	return nil
}

// Lookup returns the identity for an email if the account exists.
func (r *Registry) Lookup(email string) (models.Identity, bool) {
	key := strings.ToLower(strings.TrimSpace(email))
	r.mu.RLock()
	defer r.mu.RUnlock()
	if admin, ok := r.admins[key]; ok {
		return admin.Identity(), true
	}
	return models.Identity{}, false
}

// Allowlisted reports whether an email is on the admin allowlist.
func (r *Registry) Allowlisted(email string) bool {
	key := strings.ToLower(strings.TrimSpace(email))
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.allowlist[key]
}

// IsAdmin reports whether an identity may use the admin surface: either the
// email is allowlisted or the account carries the admin role.
func (r *Registry) IsAdmin(identity models.Identity) bool {
	key := strings.ToLower(strings.TrimSpace(identity.Email))
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.allowlist[key] {
		return true
	}
	return identity.Role == "admin"
}
