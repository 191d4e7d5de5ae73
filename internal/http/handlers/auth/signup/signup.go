// Package signup реализует HTTP-обработчик регистрации учётной записи.
//
// Обработчик декодирует JSON, валидирует поля, собирает дополнительные поля
// профиля и делегирует регистрацию бизнес-логике. В ответе возвращается
// объект пользователя без пароля и подтверждения вместе с выпущенным токеном.
package signup

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/taskhive/identity-service/internal/http/response"
	"github.com/taskhive/identity-service/internal/lib/sl"
	services "github.com/taskhive/identity-service/internal/services/auth"
)

// Request — известные поля тела регистрации. Остальные поля тела
// считаются полями профиля и сохраняются как есть.
type Request struct {
	Username        string `json:"username" validate:"required,min=3,max=50,alphanum"`
	Email           string `json:"email" validate:"required,email"`
	Password        string `json:"password" validate:"required,min=6"`
	ConfirmPassword string `json:"confirmPassword" validate:"required,eqfield=Password"`
}

// Service описывает интерфейс бизнес-логики регистрации.
type Service interface {
	Register(ctx context.Context, req services.RegisterRequest) (*services.RegisterResult, error)
}

// Handler обрабатывает HTTP-запросы регистрации.
type Handler struct {
	log      *slog.Logger
	auth     Service
	validate *validator.Validate
}

// New создает новый экземпляр Handler с указанными логгером и сервисом.
func New(log *slog.Logger, auth Service) *Handler {
	return &Handler{
		log:      log,
		auth:     auth,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Регистрация учётной записи
// @Description Создает учётную запись с дефолтной ролью и возвращает JWT с ролью в claims.
// @Tags Auth
// @Accept  json
// @Produce  json
// @Param request body Request true "Данные регистрации, допускаются дополнительные поля профиля"
// @Success 200 {object} map[string]any "Учётная запись создана"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON, ошибка валидации или занятые username/email"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /sign-up [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.signup"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	body, err := io.ReadAll(r.Body)
	if err != nil {
		log.Error("failed to read request body", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}

	var req Request
	if err := json.Unmarshal(body, &req); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}
	// Пароль в лог не попадает.
	log.Info("request body decoded", slog.String("username", req.Username))

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}

	profile := profileFields(body)

	res, err := h.auth.Register(r.Context(), services.RegisterRequest{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
		Profile:  profile,
	})
	if err != nil {
		switch {
		case errors.Is(err, services.ErrDuplicateAccount):
			log.Info("duplicate account", slog.String("username", req.Username))
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error("the account with this username or email is registered"))
		case errors.Is(err, services.ErrRoleNotFound):
			log.Error("default role is missing", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error("internal error"))
		default:
			log.Error("registration failed", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error("failed to register user"))
		}
		return
	}

	// Профиль уже сохранён, карту можно дополнить полями ответа.
	user := profile
	user["id"] = res.UserID
	user["username"] = req.Username
	user["email"] = req.Email

	log.Info("user registered", slog.String("username", req.Username))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"user":  user,
		"token": res.Token,
	}))
}

// profileFields возвращает поля тела запроса, не относящиеся к учётным данным.
// Пароль и его подтверждение не переживают разбор запроса.
func profileFields(body []byte) map[string]any {
	var fields map[string]any
	if err := json.Unmarshal(body, &fields); err != nil {
		return map[string]any{}
	}
	delete(fields, "username")
	delete(fields, "email")
	delete(fields, "password")
	delete(fields, "confirmPassword")
	return fields
}
