// internal/services/auth_service_test.go
package services

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/keyward/keyward-backend/internal/apperrors"
	"github.com/keyward/keyward-backend/internal/config"
	"github.com/keyward/keyward-backend/internal/models"
	"github.com/keyward/keyward-backend/internal/store/memory"
	"github.com/keyward/keyward-backend/internal/utils"
)

func testConfig() *config.Config {
	return &config.Config{
		Environment: "development",
		JWT: config.JWTConfig{
			SecretKey: "test-secret",
			TokenTTL:  168,
		},
	}
}

func TestRegisterAndLoginRoundTrip(t *testing.T) {
	stores := memory.New()
	cfg := testConfig()
	utils.SetJWTSecret(cfg.JWT.SecretKey)
	service := NewAuthService(stores.Users, cfg)

	registered, err := service.Register(&RegisterRequest{
		Email:    "a@x.com",
		Password: "p4ssword",
	})
	require.NoError(t, err)
	assert.Equal(t, models.UserRoleUser, registered.User.Role)
	assert.NotEmpty(t, registered.Token)
	assert.Equal(t, 168*3600, registered.ExpiresIn)

	loggedIn, err := service.Login(&LoginRequest{
		Email:    "a@x.com",
		Password: "p4ssword",
	})
	require.NoError(t, err)

	claims, err := utils.ValidateJWT(loggedIn.Token)
	require.NoError(t, err)
	assert.Equal(t, registered.User.ID.String(), claims.UserID)
	assert.Equal(t, "a@x.com", claims.Email)
	assert.Equal(t, "user", claims.Role)
}

func TestRegisterDuplicateEmailConflicts(t *testing.T) {
	stores := memory.New()
	service := NewAuthService(stores.Users, testConfig())

	_, err := service.Register(&RegisterRequest{Email: "a@x.com", Password: "p4ssword"})
	require.NoError(t, err)

	_, err = service.Register(&RegisterRequest{Email: "a@x.com", Password: "another1"})
	require.Error(t, err)

	appErr, ok := apperrors.As(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusConflict, appErr.Status)
}

func TestLoginFailuresAreIndistinguishable(t *testing.T) {
	stores := memory.New()
	service := NewAuthService(stores.Users, testConfig())

	_, err := service.Register(&RegisterRequest{Email: "a@x.com", Password: "p4ssword"})
	require.NoError(t, err)

	_, unknownErr := service.Login(&LoginRequest{Email: "nobody@x.com", Password: "p4ssword"})
	_, wrongErr := service.Login(&LoginRequest{Email: "a@x.com", Password: "wrongpass"})

	unknownApp, ok := apperrors.As(unknownErr)
	require.True(t, ok)
	wrongApp, ok := apperrors.As(wrongErr)
	require.True(t, ok)

	assert.Equal(t, http.StatusUnauthorized, unknownApp.Status)
	assert.Equal(t, unknownApp.Message, wrongApp.Message)
}

func TestDeletedUserTokenIsRevoked(t *testing.T) {
	stores := memory.New()
	service := NewAuthService(stores.Users, testConfig())

	registered, err := service.Register(&RegisterRequest{Email: "a@x.com", Password: "p4ssword"})
	require.NoError(t, err)

	// The subject resolves while the record exists
	_, err = service.CurrentUser(registered.User.ID)
	require.NoError(t, err)

	require.NoError(t, stores.Users.Delete(registered.User.ID))

	_, err = service.CurrentUser(registered.User.ID)
	require.Error(t, err)
	appErr, ok := apperrors.As(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusUnauthorized, appErr.Status)
}

func TestPasswordHashNeverSerialized(t *testing.T) {
	stores := memory.New()
	service := NewAuthService(stores.Users, testConfig())

	registered, err := service.Register(&RegisterRequest{Email: "a@x.com", Password: "p4ssword"})
	require.NoError(t, err)
	require.NotEmpty(t, registered.User.PasswordHash)

	payload, err := json.Marshal(registered.User)
	require.NoError(t, err)
	assert.NotContains(t, string(payload), "password")
	assert.NotContains(t, string(payload), registered.User.PasswordHash)
}

func TestRegisterWithAdminRole(t *testing.T) {
	stores := memory.New()
	service := NewAuthService(stores.Users, testConfig())

	registered, err := service.Register(&RegisterRequest{
		Email:    "root@x.com",
		Password: "p4ssword",
		Role:     "admin",
	})
	require.NoError(t, err)
	assert.Equal(t, models.UserRoleAdmin, registered.User.Role)
	assert.True(t, registered.User.IsAdmin())
}
