// internal/services/user_service.go
package services

import (
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/keyward/keyward-backend/internal/apperrors"
	"github.com/keyward/keyward-backend/internal/store"
	"github.com/keyward/keyward-backend/internal/utils"
)

type UserService struct {
	users store.UserStore
}

func NewUserService(users store.UserStore) *UserService {
	return &UserService{users: users}
}

func (s *UserService) List(params utils.PaginationParams) (*utils.PaginationResult, error) {
	users, err := s.users.List(params.ListOptions())
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	total, err := s.users.Count()
	if err != nil {
		return nil, fmt.Errorf("failed to count users: %w", err)
	}

	result := utils.CreatePaginationResult(users, total, params)
	return &result, nil
}

// Delete removes a user record. An admin cannot delete their own account.
func (s *UserService) Delete(callerID, id uuid.UUID) error {
	if callerID == id {
		return apperrors.Validation("Cannot delete yourself")
	}

	if err := s.users.Delete(id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return apperrors.NotFound("User")
		}
		return fmt.Errorf("failed to delete user: %w", err)
	}
	return nil
}
