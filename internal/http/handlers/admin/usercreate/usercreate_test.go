package usercreate

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/andjelaaNikolic/internet-tehnologije-2025-appkupovinakursevazasminkanje-2022-0117/internal/lib/apperr"
	"github.com/andjelaaNikolic/internet-tehnologije-2025-appkupovinakursevazasminkanje-2022-0117/internal/models"
)

type MockService struct{ mock.Mock }

func (m *MockService) CreateUser(ctx context.Context, req models.CreateUserRequest) (models.User, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(models.User), args.Error(1)
}

func TestUserCreateHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	tests := []struct {
		name           string
		body           string
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "educator created",
			body: `{"ime":"Mila","email":"mila@example.com","lozinka":"secret1","uloga":"educator"}`,
			setupMock: func(m *MockService) {
				m.On("CreateUser", mock.Anything, models.CreateUserRequest{
					FirstName: "Mila", Email: "mila@example.com", Password: "secret1", Role: "educator",
				}).Return(models.User{ID: "u-7", Email: "mila@example.com", Role: models.RoleEducator}, nil).Once()
			},
			expectedStatus: http.StatusCreated,
			expectedBody:   `"uloga":"EDUCATOR"`,
		},
		{
			name:           "missing role",
			body:           `{"email":"mila@example.com","lozinka":"secret1"}`,
			setupMock:      func(*MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   "Role",
		},
		{
			name:           "short password",
			body:           `{"email":"mila@example.com","lozinka":"123","uloga":"ADMIN"}`,
			setupMock:      func(*MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   "Password",
		},
		{
			name: "unknown role",
			body: `{"email":"mila@example.com","lozinka":"secret1","uloga":"ROOT"}`,
			setupMock: func(m *MockService) {
				m.On("CreateUser", mock.Anything, mock.Anything).
					Return(models.User{}, apperr.Validation("unknown role")).Once()
			},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   "unknown role",
		},
		{
			name: "email taken",
			body: `{"email":"mila@example.com","lozinka":"secret1","uloga":"CLIENT"}`,
			setupMock: func(m *MockService) {
				m.On("CreateUser", mock.Anything, mock.Anything).
					Return(models.User{}, apperr.Conflict("email already in use")).Once()
			},
			expectedStatus: http.StatusConflict,
			expectedBody:   "email already in use",
		},
		{
			name:           "invalid json",
			body:           `{"email":`,
			setupMock:      func(*MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   "invalid request body",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockService)
			tt.setupMock(svc)

			req := httptest.NewRequest(http.MethodPost, "/api/admin/korisnik", strings.NewReader(tt.body))
			w := httptest.NewRecorder()
			New(logger, svc).ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Contains(t, w.Body.String(), tt.expectedBody)
			svc.AssertExpectations(t)
		})
	}
}
