// Package verify реализует проверку токена для смежных сервисов.
//
// Конечная точка закрыта JWT middleware: до обработчика доходят только
// запросы с валидным токеном, остаётся вернуть его claims.
package verify

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/render"

	"github.com/taskhive/identity-service/internal/http/middlewarectx"
	"github.com/taskhive/identity-service/internal/http/response"
)

type Handler struct {
	log *slog.Logger
}

func New(log *slog.Logger) *Handler {
	return &Handler{
		log: log,
	}
}

// ServeHTTP godoc
// @Summary Проверка токена
// @Description Возвращает claims валидного токена. Используется смежными сервисами для авторизации.
// @Tags Auth
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} map[string]any "Claims токена"
// @Failure 401 {object} response.ErrorResponse "Токен отсутствует, просрочен или подделан"
// @Router /verify [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, response.OKWithData(map[string]any{
		"username": r.Context().Value(middlewarectx.User),
		"role":     r.Context().Value(middlewarectx.Role),
		"useruid":  r.Context().Value(middlewarectx.UserUID),
	}))
}
