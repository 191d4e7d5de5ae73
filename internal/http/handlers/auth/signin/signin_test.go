package signin

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	services "github.com/taskhive/identity-service/internal/services/auth"
)

// Мок сервиса с методом Login
type AuthServiceMock struct {
	mock.Mock
}

func (m *AuthServiceMock) Login(ctx context.Context, username, password string) (*services.LoginResult, error) {
	args := m.Called(ctx, username, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*services.LoginResult), args.Error(1)
}

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func TestSignInHandler_ServeHTTP(t *testing.T) {
	okResult := &services.LoginResult{
		UserID: "uid-1",
		Role:   "User",
		Token:  "signed-token",
	}

	tests := []struct {
		name           string
		requestBody    any
		mockResult     *services.LoginResult
		mockErr        error
		skipMock       bool
		wantStatusCode int
		wantError      string
		wantStatus     string
	}{
		{
			name: "valid login",
			requestBody: Request{
				Username: "alice",
				Password: "Secret123",
			},
			mockResult:     okResult,
			wantStatusCode: http.StatusOK,
			wantStatus:     "OK",
		},
		{
			name:           "invalid json body",
			requestBody:    "not a json",
			skipMock:       true,
			wantStatusCode: http.StatusBadRequest,
			wantError:      "invalid request body",
			wantStatus:     "Error",
		},
		{
			name: "validation error - missing password",
			requestBody: Request{
				Username: "alice",
			},
			skipMock:       true,
			wantStatusCode: http.StatusBadRequest,
			wantError:      "field Password is a required field",
			wantStatus:     "Error",
		},
		{
			name: "validation error - missing username",
			requestBody: Request{
				Password: "Secret123",
			},
			skipMock:       true,
			wantStatusCode: http.StatusBadRequest,
			wantError:      "field Username is a required field",
			wantStatus:     "Error",
		},
		{
			name: "unknown username",
			requestBody: Request{
				Username: "ghost",
				Password: "Secret123",
			},
			mockErr:        services.ErrAccountNotFound,
			wantStatusCode: http.StatusBadRequest,
			wantError:      `the user "ghost" is not registered`,
			wantStatus:     "Error",
		},
		{
			name: "wrong password",
			requestBody: Request{
				Username: "alice",
				Password: "WrongOne1",
			},
			mockErr:        services.ErrInvalidCredentials,
			wantStatusCode: http.StatusBadRequest,
			wantError:      "incorrect password",
			wantStatus:     "Error",
		},
		{
			name: "storage failure",
			requestBody: Request{
				Username: "alice",
				Password: "Secret123",
			},
			mockErr:        errors.New("db down"),
			wantStatusCode: http.StatusInternalServerError,
			wantError:      "failed to sign in",
			wantStatus:     "Error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			authMock := new(AuthServiceMock)
			handler := New(newNoopLogger(), authMock)

			if !tt.skipMock {
				authMock.On("Login", mock.Anything, mock.Anything, mock.Anything).
					Return(tt.mockResult, tt.mockErr).Once()
			}

			var bodyBytes []byte
			var err error
			switch v := tt.requestBody.(type) {
			case string:
				bodyBytes = []byte(v)
			default:
				bodyBytes, err = json.Marshal(tt.requestBody)
				if err != nil {
					t.Fatal(err)
				}
			}

			req := httptest.NewRequest(http.MethodPost, "/sign-in", bytes.NewReader(bodyBytes))
			req = req.WithContext(context.WithValue(req.Context(), middleware.RequestIDKey, "reqid123"))

			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatusCode, rec.Code)

			rawBody := rec.Body.String()
			var got map[string]any
			err = json.Unmarshal([]byte(rawBody), &got)
			assert.NoError(t, err)

			assert.Equal(t, tt.wantStatus, got["status"])

			if tt.wantError != "" {
				errStr, ok := got["error"].(string)
				assert.True(t, ok)
				assert.Equal(t, tt.wantError, errStr)
			} else {
				assert.Nil(t, got["error"])

				data, ok := got["data"].(map[string]any)
				assert.True(t, ok)
				assert.Equal(t, "signed-token", data["token"])
				assert.Equal(t, "User", data["role"])

				user, ok := data["user"].(map[string]any)
				assert.True(t, ok)
				assert.Equal(t, "uid-1", user["id"])
				assert.Equal(t, "alice", user["username"])

				// Пароль не попадает в тело ответа
				assert.NotContains(t, rawBody, "Secret123")
			}

			authMock.AssertExpectations(t)
		})
	}
}
