package admin

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/andjelaaNikolic/internet-tehnologije-2025-appkupovinakursevazasminkanje-2022-0117/internal/lib/apperr"
	"github.com/andjelaaNikolic/internet-tehnologije-2025-appkupovinakursevazasminkanje-2022-0117/internal/models"
	"github.com/andjelaaNikolic/internet-tehnologije-2025-appkupovinakursevazasminkanje-2022-0117/internal/storage"
)

type RepoMock struct{ mock.Mock }

func (m *RepoMock) ListUsers(ctx context.Context) ([]models.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.User), args.Error(1)
}
func (m *RepoMock) CreateUser(ctx context.Context, user models.User) (models.User, error) {
	args := m.Called(ctx, user)
	return args.Get(0).(models.User), args.Error(1)
}
func (m *RepoMock) ListEducatorClients(ctx context.Context, educatorID string) ([]models.EducatorClient, error) {
	args := m.Called(ctx, educatorID)
	return args.Get(0).([]models.EducatorClient), args.Error(1)
}
func (m *RepoMock) CourseSales(ctx context.Context) ([]models.CourseSales, error) {
	args := m.Called(ctx)
	return args.Get(0).([]models.CourseSales), args.Error(1)
}
func (m *RepoMock) MonthlySales(ctx context.Context) ([]models.MonthlySales, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.MonthlySales), args.Error(1)
}

func newTestService() (*Service, *RepoMock) {
	repo := new(RepoMock)
	return NewService(repo, slog.New(slog.NewTextHandler(io.Discard, nil))), repo
}

func TestListUsers_StripsHashes(t *testing.T) {
	s, repo := newTestService()
	repo.On("ListUsers", mock.Anything).Return([]models.User{{ID: "1", PasswordHash: "$2a$..."}}, nil).Once()

	users, err := s.ListUsers(context.Background())
	require.NoError(t, err)
	assert.Empty(t, users[0].PasswordHash)
}

func TestCreateUser(t *testing.T) {
	tests := []struct {
		name     string
		req      models.CreateUserRequest
		setup    func(r *RepoMock)
		wantKind apperr.Kind
		wantErr  bool
	}{
		{
			name: "educator created",
			req:  models.CreateUserRequest{Email: "Edu@Mail.rs", Password: "secret1", Role: "educator"},
			setup: func(r *RepoMock) {
				r.On("CreateUser", mock.Anything, mock.MatchedBy(func(u models.User) bool {
					return u.Email == "edu@mail.rs" && u.Role == models.RoleEducator && u.PasswordHash != ""
				})).Return(models.User{ID: "u-1", Role: models.RoleEducator, PasswordHash: "h"}, nil).Once()
			},
		},
		{
			name:     "unknown role",
			req:      models.CreateUserRequest{Email: "a@b.rs", Password: "secret1", Role: "ROOT"},
			setup:    func(*RepoMock) {},
			wantErr:  true,
			wantKind: apperr.KindValidation,
		},
		{
			name:     "missing password",
			req:      models.CreateUserRequest{Email: "a@b.rs", Role: "ADMIN"},
			setup:    func(*RepoMock) {},
			wantErr:  true,
			wantKind: apperr.KindValidation,
		},
		{
			name: "email taken",
			req:  models.CreateUserRequest{Email: "a@b.rs", Password: "secret1", Role: "CLIENT"},
			setup: func(r *RepoMock) {
				r.On("CreateUser", mock.Anything, mock.Anything).
					Return(models.User{}, fmt.Errorf("storage.CreateUser: %w", storage.ErrEmailTaken)).Once()
			},
			wantErr:  true,
			wantKind: apperr.KindConflict,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, repo := newTestService()
			tt.setup(repo)

			user, err := s.CreateUser(context.Background(), tt.req)
			if tt.wantErr {
				require.Error(t, err)
				assert.Equal(t, tt.wantKind, apperr.KindOf(err))
				return
			}
			require.NoError(t, err)
			assert.Empty(t, user.PasswordHash)
			repo.AssertExpectations(t)
		})
	}
}

func TestCreateUser_ConflictMessage(t *testing.T) {
	s, repo := newTestService()
	repo.On("CreateUser", mock.Anything, mock.Anything).Return(models.User{}, storage.ErrEmailTaken).Once()

	_, err := s.CreateUser(context.Background(), models.CreateUserRequest{Email: "a@b.rs", Password: "secret1", Role: "CLIENT"})
	assert.Equal(t, "email already in use", apperr.PublicMessage(err))
}

func TestClients(t *testing.T) {
	s, repo := newTestService()
	repo.On("ListEducatorClients", mock.Anything, "edu-1").Return([]models.EducatorClient{{UserID: "c-1", CoursesBought: 2}}, nil).Once()
	repo.On("ListEducatorClients", mock.Anything, "").Return([]models.EducatorClient{}, nil).Once()

	got, err := s.Clients(context.Background(), models.NewPrincipal("edu-1", models.RoleEducator, ""))
	require.NoError(t, err)
	assert.Equal(t, 2, got[0].CoursesBought)

	_, err = s.Clients(context.Background(), models.NewPrincipal("adm", models.RoleAdmin, ""))
	require.NoError(t, err)
	repo.AssertExpectations(t)

	_, err = s.Clients(context.Background(), models.NewPrincipal("c", models.RoleClient, ""))
	assert.Equal(t, apperr.KindForbidden, apperr.KindOf(err))
}

func TestMonthlyReport(t *testing.T) {
	s, repo := newTestService()
	repo.On("MonthlySales", mock.Anything).Return([]models.MonthlySales{
		{Month: "2025-01", Revenue: 100, Sold: 2},
		{Month: "2025-02", Revenue: 49.5, Sold: 1},
	}, nil).Once()

	report, err := s.MonthlyReport(context.Background())
	require.NoError(t, err)
	assert.InDelta(t, 149.5, report.Revenue, 0.001)
	assert.Equal(t, 3, report.Sold)
	assert.Len(t, report.Months, 2)
}

func TestSalesStats_Failure(t *testing.T) {
	s, repo := newTestService()
	repo.On("CourseSales", mock.Anything).Return([]models.CourseSales(nil), errors.New("db down")).Once()

	_, err := s.SalesStats(context.Background())
	assert.Equal(t, apperr.KindInternal, apperr.KindOf(err))
}
