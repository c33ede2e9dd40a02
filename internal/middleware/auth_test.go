// internal/middleware/auth_test.go
package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/keyward/keyward-backend/internal/models"
	"github.com/keyward/keyward-backend/internal/store"
	"github.com/keyward/keyward-backend/internal/store/memory"
	"github.com/keyward/keyward-backend/internal/utils"
)

func setupAuthRouter(t *testing.T) (*gin.Engine, *store.Stores) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	utils.SetJWTSecret("test-secret")

	stores := memory.New()

	router := gin.New()
	protected := router.Group("/", AuthRequired(stores.Users))
	protected.GET("/me", func(c *gin.Context) {
		user, ok := CurrentUser(c)
		require.True(t, ok)
		c.JSON(http.StatusOK, gin.H{"email": user.Email, "role": c.GetString("role")})
	})
	protected.GET("/admin", AdminRequired(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return router, stores
}

func seedAuthUser(t *testing.T, stores *store.Stores, email string, role models.UserRole) (*models.User, string) {
	t.Helper()
	user := &models.User{Email: email, Role: role}
	require.NoError(t, user.SetPassword("p4ssword"))
	require.NoError(t, stores.Users.Create(user))

	token, err := utils.GenerateJWT(user.ID, user.Email, string(user.Role), 1)
	require.NoError(t, err)
	return user, token
}

func get(router *gin.Engine, path, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)
	return recorder
}

func TestAuthRequiredAcceptsValidToken(t *testing.T) {
	router, stores := setupAuthRouter(t)
	_, token := seedAuthUser(t, stores, "a@x.com", models.UserRoleUser)

	recorder := get(router, "/me", "Bearer "+token)

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), "a@x.com")
	assert.Contains(t, recorder.Body.String(), `"role":"user"`)
}

func TestAuthRequiredRejectsBadHeaders(t *testing.T) {
	router, stores := setupAuthRouter(t)
	_, token := seedAuthUser(t, stores, "a@x.com", models.UserRoleUser)

	cases := []struct {
		name   string
		header string
	}{
		{"no header", ""},
		{"not bearer", "Basic " + token},
		{"garbage token", "Bearer not-a-jwt"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			recorder := get(router, "/me", tc.header)
			assert.Equal(t, http.StatusUnauthorized, recorder.Code)
		})
	}
}

func TestAuthRequiredRejectsExpiredToken(t *testing.T) {
	router, stores := setupAuthRouter(t)
	user, _ := seedAuthUser(t, stores, "a@x.com", models.UserRoleUser)

	expired, err := utils.GenerateJWT(user.ID, user.Email, string(user.Role), -1)
	require.NoError(t, err)

	recorder := get(router, "/me", "Bearer "+expired)
	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
}

func TestDeletedUserTokenRejectedImmediately(t *testing.T) {
	router, stores := setupAuthRouter(t)
	user, token := seedAuthUser(t, stores, "a@x.com", models.UserRoleUser)

	recorder := get(router, "/me", "Bearer "+token)
	require.Equal(t, http.StatusOK, recorder.Code)

	require.NoError(t, stores.Users.Delete(user.ID))

	// The token itself is still well formed and unexpired
	recorder = get(router, "/me", "Bearer "+token)
	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
}

func TestAdminRequired(t *testing.T) {
	router, stores := setupAuthRouter(t)
	_, userToken := seedAuthUser(t, stores, "user@x.com", models.UserRoleUser)
	_, adminToken := seedAuthUser(t, stores, "admin@x.com", models.UserRoleAdmin)

	recorder := get(router, "/admin", "Bearer "+userToken)
	assert.Equal(t, http.StatusForbidden, recorder.Code)

	recorder = get(router, "/admin", "Bearer "+adminToken)
	assert.Equal(t, http.StatusOK, recorder.Code)
}

func TestRoleComesFromTheRecordNotTheToken(t *testing.T) {
	router, stores := setupAuthRouter(t)
	user, _ := seedAuthUser(t, stores, "user@x.com", models.UserRoleUser)

	// A token minted with a forged role claim grants nothing: the role in
	// context is read from the stored record.
	forged, err := utils.GenerateJWT(user.ID, user.Email, "admin", 1)
	require.NoError(t, err)

	recorder := get(router, "/admin", "Bearer "+forged)
	assert.Equal(t, http.StatusForbidden, recorder.Code)
}
