// Package services содержит логику бизнес-уровня для регистрации,
// аутентификации и проверки токенов.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/taskhive/identity-service/internal/lib/jwt"
	"github.com/taskhive/identity-service/internal/lib/password"
	"github.com/taskhive/identity-service/internal/lib/sl"
	"github.com/taskhive/identity-service/internal/models"
	"github.com/taskhive/identity-service/internal/storage"
)

// DefaultRoleName — роль, привязываемая к каждой новой учётной записи.
// Заводится миграциями; без неё регистрация невозможна.
const DefaultRoleName = "User"

// UserRepository описывает контракт хранилища учётных записей и ролей.
type UserRepository interface {
	// CountByUsernameOrEmail возвращает количество занятых username/email.
	CountByUsernameOrEmail(ctx context.Context, username, email string) (int, error)

	// CreateUser сохраняет новую учётную запись и возвращает её ID.
	CreateUser(ctx context.Context, user models.User) (string, error)

	// GetUserByUsername возвращает учётную запись по имени или ошибку, если не найдена.
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)

	// GetRoleByName возвращает роль по имени.
	GetRoleByName(ctx context.Context, name string) (*models.Role, error)
}

// EventPublisher публикует событие успешной регистрации для сервиса уведомлений.
type EventPublisher interface {
	PublishRegistration(ctx context.Context, event models.RegistrationEvent) error
}

// AuthService отвечает за регистрацию, авторизацию и валидацию JWT.
type AuthService struct {
	users    UserRepository
	jwtMaker jwt.Maker
	events   EventPublisher
	log      *slog.Logger
}

// NewAuthService создает новый экземпляр AuthService.
// events может быть nil — тогда события регистрации не публикуются.
func NewAuthService(users UserRepository, jwtMaker jwt.Maker, events EventPublisher, log *slog.Logger) *AuthService {
	return &AuthService{
		users:    users,
		jwtMaker: jwtMaker,
		events:   events,
		log:      log,
	}
}

// RegisterRequest — провалидированные данные регистрации.
// Profile содержит дополнительные поля профиля без пароля и его подтверждения.
type RegisterRequest struct {
	Username string
	Email    string
	Password string
	Profile  map[string]any
}

// RegisterResult — результат успешной регистрации.
type RegisterResult struct {
	UserID string
	Role   string
	Token  string
}

// LoginResult — результат успешной аутентификации.
type LoginResult struct {
	UserID string
	Role   string
	Token  string
}

// Register создает новую учётную запись с хэшированием пароля и дефолтной
// ролью, выпускает токен с ролью в claims.
//
// Предварительная проверка занятости username/email — быстрый путь для
// пользовательской ошибки; две конкурентные регистрации могут обе её пройти,
// поэтому нарушение уникального индекса при вставке также отображается
// в ErrDuplicateAccount.
func (s *AuthService) Register(ctx context.Context, req RegisterRequest) (*RegisterResult, error) {
	const op = "services.auth.Register"

	count, err := s.users.CountByUsernameOrEmail(ctx, req.Username, req.Email)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if count > 0 {
		return nil, ErrDuplicateAccount
	}

	hashed, err := password.GetHash(req.Password)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	// Плейнтекст дальше не нужен.
	req.Password = ""

	role, err := s.users.GetRoleByName(ctx, DefaultRoleName)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrRoleNotFound
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	user := models.User{
		ID:           uuid.New().String(),
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: hashed,
		RoleID:       role.ID,
		RoleName:     role.Name,
		Profile:      req.Profile,
	}
	newID, err := s.users.CreateUser(ctx, user)
	if err != nil {
		if storage.IsUniqueViolation(err) {
			return nil, ErrDuplicateAccount
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	token, err := s.jwtMaker.GenerateToken(req.Username, role.Name, newID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if s.events != nil {
		if err := s.events.PublishRegistration(ctx, models.RegistrationEvent{
			Username: req.Username,
			Email:    req.Email,
		}); err != nil {
			// Событие — best-effort: регистрация уже состоялась.
			s.log.Error("failed to publish registration event", sl.Err(err))
		}
	}

	return &RegisterResult{
		UserID: newID,
		Role:   role.Name,
		Token:  token,
	}, nil
}

// Login проверяет пароль учётной записи с указанным username и выпускает
// токен с ролью этой записи.
func (s *AuthService) Login(ctx context.Context, username, rawPassword string) (*LoginResult, error) {
	const op = "services.auth.Login"

	user, err := s.users.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("user %q: %w", username, ErrAccountNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err := password.CompareHash(user.PasswordHash, rawPassword); err != nil {
		return nil, ErrInvalidCredentials
	}
	token, err := s.jwtMaker.GenerateToken(user.Username, user.RoleName, user.ID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &LoginResult{
		UserID: user.ID,
		Role:   user.RoleName,
		Token:  token,
	}, nil
}

// ValidateToken проверяет JWT и возвращает информацию о пользователе,
// роль и признак валидности.
func (s *AuthService) ValidateToken(_ context.Context, token string) (*models.User, string, bool, error) {
	claims, err := s.jwtMaker.ParseToken(token)
	if err != nil {
		return nil, "", false, err
	}
	user := &models.User{
		ID:       claims.UserUID,
		Username: claims.Username,
		RoleName: claims.Role,
	}
	return user, claims.Role, true, nil
}
