package check

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/anime-stream/internal/http/middlewarectx"
	"github.com/magabrotheeeer/anime-stream/internal/models"
	"github.com/magabrotheeeer/anime-stream/internal/services/access"
)

// MockService реализует интерфейс check.Service
type MockService struct {
	mock.Mock
}

func (m *MockService) HasAccess(ctx context.Context, userUID string, animeID int) (*models.AccessDecision, error) {
	args := m.Called(ctx, userUID, animeID)
	if res := args.Get(0); res != nil {
		return res.(*models.AccessDecision), args.Error(1)
	}
	return nil, args.Error(1)
}

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func TestCheckHandler(t *testing.T) {
	logger := newNoopLogger()

	tests := []struct {
		name           string
		animeID        string
		userUID        string
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name:    "доступ разрешён",
			animeID: "5",
			userUID: "uid-1",
			setupMock: func(m *MockService) {
				m.On("HasAccess", mock.Anything, "uid-1", 5).
					Return(&models.AccessDecision{Allowed: true, Reason: "active premium access"}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"allowed":true`,
		},
		{
			name:    "доступ запрещён",
			animeID: "5",
			userUID: "uid-1",
			setupMock: func(m *MockService) {
				m.On("HasAccess", mock.Anything, "uid-1", 5).
					Return(&models.AccessDecision{Allowed: false, Reason: "premium access required"}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"allowed":false`,
		},
		{
			name:           "некорректный id в URL",
			animeID:        "abc",
			userUID:        "uid-1",
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"status":"Error","error":"failed to decode anime id from url"}`,
		},
		{
			name:    "тайтл не найден",
			animeID: "404",
			userUID: "uid-1",
			setupMock: func(m *MockService) {
				m.On("HasAccess", mock.Anything, "uid-1", 404).
					Return(nil, access.ErrContentNotFound)
			},
			expectedStatus: http.StatusNotFound,
			expectedBody:   `{"status":"Error","error":"content not found"}`,
		},
		{
			name:    "ошибка сервиса",
			animeID: "5",
			userUID: "uid-1",
			setupMock: func(m *MockService) {
				m.On("HasAccess", mock.Anything, "uid-1", 5).
					Return(nil, errors.New("db error"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `{"status":"Error","error":"could not check access"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			tt.setupMock(mockService)

			handler := New(logger, mockService)

			req := httptest.NewRequest(http.MethodGet, "/access/check/"+tt.animeID, nil)
			rctx := chi.NewRouteContext()
			rctx.URLParams.Add("animeID", tt.animeID)
			ctx := context.WithValue(req.Context(), chi.RouteCtxKey, rctx)
			ctx = context.WithValue(ctx, middlewarectx.UserUID, tt.userUID)
			req = req.WithContext(ctx)

			w := httptest.NewRecorder()

			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Contains(t, w.Body.String(), tt.expectedBody)

			mockService.AssertExpectations(t)
		})
	}
}
