// Package models содержит доменные модели сервиса идентификации:
// учётную запись пользователя, роль и событие регистрации.
// Структуры используются в бизнес‑логике и при работе с хранилищем.
package models

// User представляет зарегистрированную учётную запись.
type User struct {
	ID           string         // Уникальный идентификатор, генерируется при создании
	Username     string         // Имя пользователя (уникальное)
	Email        string         // Электронная почта (уникальная)
	PasswordHash string         // Хэш пароля, исходный пароль не хранится
	RoleID       string         // Идентификатор роли
	RoleName     string         // Имя роли, например "User"
	Profile      map[string]any // Дополнительные поля профиля, переданные при регистрации
}

// Role представляет именованный класс прав доступа.
type Role struct {
	ID   string // Идентификатор роли
	Name string // Имя роли
}

// RegistrationEvent описывает событие успешной регистрации,
// публикуемое в брокер для сервиса уведомлений.
type RegistrationEvent struct {
	Username string `json:"username"`
	Email    string `json:"email"`
}
