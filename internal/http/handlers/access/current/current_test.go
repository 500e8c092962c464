package current

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/anime-stream/internal/http/middlewarectx"
	"github.com/magabrotheeeer/anime-stream/internal/models"
)

// MockService реализует интерфейс current.Service
type MockService struct {
	mock.Mock
}

func (m *MockService) GetCurrentWindow(ctx context.Context, userUID string) (*models.AccessState, error) {
	args := m.Called(ctx, userUID)
	if res := args.Get(0); res != nil {
		return res.(*models.AccessState), args.Error(1)
	}
	return nil, args.Error(1)
}

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func TestCurrentHandler(t *testing.T) {
	logger := newNoopLogger()

	tests := []struct {
		name           string
		userUID        string
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name:    "активное окно доступа",
			userUID: "uid-1",
			setupMock: func(m *MockService) {
				state := &models.AccessState{
					Window: &models.AccessWindow{
						ID:      7,
						UserUID: "uid-1",
						PlanID:  2,
						EndDate: time.Now().UTC().Add(30 * 24 * time.Hour),
						Status:  models.WindowStatusActive,
					},
					Status:        models.WindowStatusActive,
					DaysRemaining: 30,
				}
				m.On("GetCurrentWindow", mock.Anything, "uid-1").Return(state, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"status":"active"`,
		},
		{
			name:    "окон нет — статус free",
			userUID: "uid-2",
			setupMock: func(m *MockService) {
				m.On("GetCurrentWindow", mock.Anything, "uid-2").
					Return(&models.AccessState{Status: models.AccessStatusFree}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"status":"free"`,
		},
		{
			name:           "нет uid в контексте",
			userUID:        "",
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   `{"status":"Error","error":"unauthorized"}`,
		},
		{
			name:    "ошибка сервиса",
			userUID: "uid-3",
			setupMock: func(m *MockService) {
				m.On("GetCurrentWindow", mock.Anything, "uid-3").
					Return(nil, errors.New("db error"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `{"status":"Error","error":"could not get access state"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			tt.setupMock(mockService)

			handler := New(logger, mockService)

			req := httptest.NewRequest(http.MethodGet, "/access/current", nil)
			if tt.userUID != "" {
				req = req.WithContext(context.WithValue(req.Context(), middlewarectx.UserUID, tt.userUID))
			}

			w := httptest.NewRecorder()

			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.True(t, strings.Contains(w.Body.String(), tt.expectedBody),
				"response body should contain %s, got %s", tt.expectedBody, w.Body.String())

			mockService.AssertExpectations(t)
		})
	}
}
