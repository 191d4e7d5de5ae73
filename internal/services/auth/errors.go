package services

import "errors"

// Ошибки бизнес-уровня. Обработчики сопоставляют их через errors.Is
// и выбирают код ответа: пользовательские ошибки отдаются как 400,
// ErrRoleNotFound и прочие сбои хранилища — как 500 с общим сообщением.
var (
	// ErrDuplicateAccount — username или email уже заняты другой учётной записью.
	ErrDuplicateAccount = errors.New("account with this username or email is already registered")
	// ErrAccountNotFound — учётная запись с указанным username не зарегистрирована.
	ErrAccountNotFound = errors.New("account is not registered")
	// ErrInvalidCredentials — пароль не соответствует сохранённому хэшу.
	ErrInvalidCredentials = errors.New("incorrect password")
	// ErrRoleNotFound — дефолтная роль отсутствует в базе; дефект развёртывания.
	ErrRoleNotFound = errors.New("default role not found")
)
