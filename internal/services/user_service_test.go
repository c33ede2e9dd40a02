// internal/services/user_service_test.go
package services

import (
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/keyward/keyward-backend/internal/apperrors"
	"github.com/keyward/keyward-backend/internal/models"
	"github.com/keyward/keyward-backend/internal/store/memory"
	"github.com/keyward/keyward-backend/internal/utils"
)

func TestSelfDeleteGuard(t *testing.T) {
	stores := memory.New()
	service := NewUserService(stores.Users)
	admin := seedUser(t, stores, "admin@x.com", models.UserRoleAdmin)

	err := service.Delete(admin.ID, admin.ID)
	require.Error(t, err)

	appErr, ok := apperrors.As(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, appErr.Status)
	assert.Equal(t, "Cannot delete yourself", appErr.Message)

	// The record is untouched
	_, err = stores.Users.FindByID(admin.ID)
	require.NoError(t, err)
}

func TestDeleteOtherUser(t *testing.T) {
	stores := memory.New()
	service := NewUserService(stores.Users)
	admin := seedUser(t, stores, "admin@x.com", models.UserRoleAdmin)
	victim := seedUser(t, stores, "user@x.com", models.UserRoleUser)

	require.NoError(t, service.Delete(admin.ID, victim.ID))

	_, err := stores.Users.FindByID(victim.ID)
	require.Error(t, err)
}

func TestDeleteUnknownUser(t *testing.T) {
	stores := memory.New()
	service := NewUserService(stores.Users)
	admin := seedUser(t, stores, "admin@x.com", models.UserRoleAdmin)

	err := service.Delete(admin.ID, uuid.New())
	require.Error(t, err)

	appErr, ok := apperrors.As(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusNotFound, appErr.Status)
}

func TestListUsersPaginated(t *testing.T) {
	stores := memory.New()
	service := NewUserService(stores.Users)
	seedUser(t, stores, "a@x.com", models.UserRoleUser)
	seedUser(t, stores, "b@x.com", models.UserRoleUser)
	seedUser(t, stores, "c@x.com", models.UserRoleUser)

	result, err := service.List(utils.PaginationParams{Page: 1, Limit: 2})
	require.NoError(t, err)

	assert.EqualValues(t, 3, result.Total)
	assert.Equal(t, 2, result.TotalPages)
	assert.Len(t, result.Data.([]models.User), 2)
}
