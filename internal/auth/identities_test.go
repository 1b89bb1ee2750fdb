package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zidalco/zidalco-backend/internal/models"
)

func TestAuthenticate(t *testing.T) {
	r := NewRegistry(nil)
	require.NoError(t, r.Register("admin@zidalco.com", "Admin", "admin", "correct horse"))

	identity, err := r.Authenticate("admin@zidalco.com", "correct horse")
	require.NoError(t, err)
	assert.Equal(t, "admin@zidalco.com", identity.Email)
	assert.Equal(t, "admin", identity.Role)

	_, err = r.Authenticate("admin@zidalco.com", "wrong")
	assert.ErrorIs(t, err, ErrBadCredentials)

	_, err = r.Authenticate("nobody@zidalco.com", "correct horse")
	assert.ErrorIs(t, err, ErrBadCredentials)
}

func TestAuthenticateEmailIsCaseInsensitive(t *testing.T) {
	r := NewRegistry(nil)
	require.NoError(t, r.Register("Admin@Zidalco.com", "Admin", "admin", "correct horse"))

	identity, err := r.Authenticate("  ADMIN@zidalco.COM ", "correct horse")
	require.NoError(t, err)
	assert.Equal(t, "admin@zidalco.com", identity.Email)
}

func TestRegisterRejectsDuplicates(t *testing.T) {
	r := NewRegistry(nil)
	require.NoError(t, r.Register("admin@zidalco.com", "Admin", "admin", "pw12345678"))
	assert.ErrorIs(t, r.Register("admin@zidalco.com", "Other", "admin", "pw12345678"), ErrAdminExists)
}

func TestChangePassword(t *testing.T) {
	r := NewRegistry(nil)
	require.NoError(t, r.Register("admin@zidalco.com", "Admin", "admin", "old password"))

	assert.ErrorIs(t, r.ChangePassword("admin@zidalco.com", "wrong", "new password"), ErrBadCredentials)
	require.NoError(t, r.ChangePassword("admin@zidalco.com", "old password", "new password"))

	_, err := r.Authenticate("admin@zidalco.com", "old password")
	assert.ErrorIs(t, err, ErrBadCredentials)
	_, err = r.Authenticate("admin@zidalco.com", "new password")
	assert.NoError(t, err)

	assert.ErrorIs(t, r.ChangePassword("nobody@zidalco.com", "x", "y"), ErrUnknownAdmin)
}

func TestIsAdmin(t *testing.T) {
	r := NewRegistry([]string{"Owner@Zidalco.com"})

	// allowlisted email counts regardless of role
	assert.True(t, r.IsAdmin(models.Identity{Email: "owner@zidalco.com", Role: "viewer"}))
	// admin role counts regardless of allowlist
	assert.True(t, r.IsAdmin(models.Identity{Email: "someone@zidalco.com", Role: "admin"}))
	// neither
	assert.False(t, r.IsAdmin(models.Identity{Email: "someone@zidalco.com", Role: "viewer"}))
}
