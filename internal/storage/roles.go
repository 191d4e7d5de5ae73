package storage

import (
	"context"
	"fmt"

	"github.com/taskhive/identity-service/internal/models"
)

// GetRoleByName возвращает роль по её имени.
// Роли заводятся миграциями и на уровне сервиса только читаются;
// отсутствие роли "User" — дефект развёртывания, а не пользовательская ошибка.
func (s *Storage) GetRoleByName(ctx context.Context, name string) (*models.Role, error) {
	const op = "storage.GetRoleByName"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	role := &models.Role{}
	query := `SELECT id, name FROM roles WHERE name = $1`
	if err := s.DB.QueryRowContext(ctx, query, name).Scan(&role.ID, &role.Name); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return role, nil
}
