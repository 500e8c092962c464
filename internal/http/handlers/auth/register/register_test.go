package register

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

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/anime-stream/internal/models"
	"github.com/magabrotheeeer/anime-stream/internal/storage"
)

// MockService реализует интерфейс register.Service
type MockService struct {
	mock.Mock
}

func (m *MockService) Register(ctx context.Context, email, username, password string) (string, error) {
	args := m.Called(ctx, email, username, password)
	return args.String(0), args.Error(1)
}

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func TestRegisterHandler(t *testing.T) {
	logger := newNoopLogger()

	tests := []struct {
		name           string
		requestBody    any
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "успешная регистрация",
			requestBody: models.DummyRegister{
				Username: "newuser",
				Email:    "new@example.com",
				Password: "password123",
			},
			setupMock: func(m *MockService) {
				m.On("Register", mock.Anything, "new@example.com", "newuser", "password123").
					Return("uid-42", nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"user_uid":"uid-42"`,
		},
		{
			name:           "некорректный json",
			requestBody:    "not a json",
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"status":"Error","error":"invalid request body"}`,
		},
		{
			name: "валидация: некорректный email",
			requestBody: models.DummyRegister{
				Username: "newuser",
				Email:    "not-an-email",
				Password: "password123",
			},
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusUnprocessableEntity,
			expectedBody:   `field Email must be a valid email address`,
		},
		{
			name: "имя уже занято",
			requestBody: models.DummyRegister{
				Username: "taken",
				Email:    "taken@example.com",
				Password: "password123",
			},
			setupMock: func(m *MockService) {
				m.On("Register", mock.Anything, "taken@example.com", "taken", "password123").
					Return("", storage.ErrDuplicate)
			},
			expectedStatus: http.StatusConflict,
			expectedBody:   `{"status":"Error","error":"username or email already taken"}`,
		},
		{
			name: "ошибка сервиса",
			requestBody: models.DummyRegister{
				Username: "newuser",
				Email:    "new@example.com",
				Password: "password123",
			},
			setupMock: func(m *MockService) {
				m.On("Register", mock.Anything, "new@example.com", "newuser", "password123").
					Return("", errors.New("db error"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `{"status":"Error","error":"failed to register user"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			tt.setupMock(mockService)

			handler := New(logger, mockService)

			var bodyBytes []byte
			switch v := tt.requestBody.(type) {
			case string:
				bodyBytes = []byte(v)
			default:
				var err error
				bodyBytes, err = json.Marshal(v)
				if err != nil {
					t.Fatal(err)
				}
			}

			req := httptest.NewRequest(http.MethodPost, "/register", bytes.NewReader(bodyBytes))
			w := httptest.NewRecorder()

			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Contains(t, w.Body.String(), tt.expectedBody)

			mockService.AssertExpectations(t)
		})
	}
}
