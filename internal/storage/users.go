package storage

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/taskhive/identity-service/internal/models"
)

// CountByUsernameOrEmail возвращает количество учётных записей,
// занявших указанный username или email.
func (s *Storage) CountByUsernameOrEmail(ctx context.Context, username, email string) (int, error) {
	const op = "storage.CountByUsernameOrEmail"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	var count int
	query := `SELECT COUNT(*) FROM users WHERE username = $1 OR email = $2`
	if err := s.DB.QueryRowContext(ctx, query, username, email).Scan(&count); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return count, nil
}

// CreateUser сохраняет новую учётную запись и возвращает её ID.
// Нарушение уникального индекса на username или email возвращается
// как ошибка уникальности, см. IsUniqueViolation.
func (s *Storage) CreateUser(ctx context.Context, user models.User) (string, error) {
	const op = "storage.CreateUser"
	select {
	case <-ctx.Done():
		return "", fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	profile, err := json.Marshal(user.Profile)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	var newID string
	query := `INSERT INTO users (id, username, email, password_hash, role_id, profile)
			  VALUES ($1, $2, $3, $4, $5, $6)
			  RETURNING id;`
	if err := s.DB.QueryRowContext(ctx, query,
		user.ID, user.Username, user.Email, user.PasswordHash, user.RoleID,
		profile).Scan(&newID); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// GetUserByUsername возвращает учётную запись по username вместе с именем роли.
func (s *Storage) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	const op = "storage.GetUserByUsername"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT u.id, u.username, u.email, u.password_hash, u.role_id, r.name, u.profile
			  FROM users u
			  JOIN roles r ON r.id = u.role_id
			  WHERE u.username = $1`
	u := &models.User{}
	row := s.DB.QueryRowContext(ctx, query, username)

	var profile []byte
	if err := row.Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash,
		&u.RoleID, &u.RoleName, &profile); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if len(profile) > 0 {
		if err := json.Unmarshal(profile, &u.Profile); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
	}
	return u, nil
}

// GetUser возвращает учётную запись по её ID.
func (s *Storage) GetUser(ctx context.Context, userID string) (*models.User, error) {
	const op = "storage.GetUser"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT u.id, u.username, u.email, u.password_hash, u.role_id, r.name, u.profile
			  FROM users u
			  JOIN roles r ON r.id = u.role_id
			  WHERE u.id = $1`
	u := &models.User{}
	row := s.DB.QueryRowContext(ctx, query, userID)

	var profile []byte
	if err := row.Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash,
		&u.RoleID, &u.RoleName, &profile); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if len(profile) > 0 {
		if err := json.Unmarshal(profile, &u.Profile); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
	}
	return u, nil
}
