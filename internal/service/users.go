package service

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"

	"github.com/mmeshcher/cafe-order-system/internal/model"
	"github.com/mmeshcher/cafe-order-system/internal/validation"
)

// RegisterUser регистрирует нового пользователя с ролью user.
func (s *Service) RegisterUser(ctx context.Context, username, password string) (int64, error) {
	return s.repo.CreateUser(ctx, username, hashPassword(username, password), model.RoleUser)
}

// CreateUser создаёт пользователя с указанной ролью. Админская операция.
func (s *Service) CreateUser(ctx context.Context, username, password string, role model.Role) (int64, error) {
	if !validation.IsValidRole(role) {
		return 0, ErrInvalidRole
	}
	return s.repo.CreateUser(ctx, username, hashPassword(username, password), role)
}

// AuthenticateUser проверяет имя и пароль и возвращает пользователя.
func (s *Service) AuthenticateUser(ctx context.Context, username, password string) (*model.User, error) {
	u, err := s.repo.GetUserByUsername(ctx, username)
	if err != nil {
		return nil, err
	}

	if !hmac.Equal(hashPassword(username, password), u.PasswordHash) {
		return nil, ErrInvalidCredentials
	}

	return u, nil
}

func hashPassword(username, password string) []byte {
	sum := sha256.Sum256([]byte(username + ":" + password))
	return sum[:]
}

// ListUsers возвращает всех пользователей. Хеши паролей не отдаются наружу:
// репозиторий их не выбирает.
func (s *Service) ListUsers(ctx context.Context) ([]model.User, error) {
	return s.repo.ListUsers(ctx)
}

// UpdateUserRole меняет роль пользователя. Админская операция.
func (s *Service) UpdateUserRole(ctx context.Context, username string, role model.Role) error {
	if !validation.IsValidRole(role) {
		return ErrInvalidRole
	}
	return s.repo.UpdateUserRole(ctx, username, role)
}

// DeleteUser удаляет пользователя. Админская операция.
func (s *Service) DeleteUser(ctx context.Context, username string) error {
	return s.repo.DeleteUser(ctx, username)
}
