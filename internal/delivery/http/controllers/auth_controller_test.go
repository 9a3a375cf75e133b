package controllers

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"triporganizer/internal/delivery/http/helpers"
	"triporganizer/internal/delivery/http/middleware"
	"triporganizer/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeAuthService implements domain.AuthService for handler tests.
type fakeAuthService struct {
	registerUser *domain.User
	registerErr  error
	loginToken   string
	loginUser    *domain.User
	loginErr     error

	lastEmail    string
	lastPassword string
	lastFullName string
}

func (f *fakeAuthService) Register(_ context.Context, email, password, fullName string) (*domain.User, error) {
	f.lastEmail, f.lastPassword, f.lastFullName = email, password, fullName
	return f.registerUser, f.registerErr
}

func (f *fakeAuthService) Login(_ context.Context, email, password string) (string, *domain.User, error) {
	f.lastEmail, f.lastPassword = email, password
	return f.loginToken, f.loginUser, f.loginErr
}

// fakeUserService implements domain.UserService for handler tests.
type fakeUserService struct {
	user      *domain.User
	getErr    error
	updateErr error

	lastGetID  string
	lastUpdate *domain.User
}

func (f *fakeUserService) GetByID(_ context.Context, id string) (*domain.User, error) {
	f.lastGetID = id
	return f.user, f.getErr
}

func (f *fakeUserService) Update(_ context.Context, user *domain.User) error {
	f.lastUpdate = user
	return f.updateErr
}

func TestAuthController_Register(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		serviceErr error
		wantStatus int
		wantCode   string
	}{
		{
			name:       "success",
			body:       `{"email":"alice@example.com","password":"secret-password","full_name":"Alice"}`,
			wantStatus: http.StatusCreated,
		},
		{
			name:       "missing email",
			body:       `{"password":"secret-password","full_name":"Alice"}`,
			wantStatus: http.StatusBadRequest,
			wantCode:   helpers.ErrCodeBadRequest,
		},
		{
			name:       "invalid email format",
			body:       `{"email":"nope","password":"secret-password","full_name":"Alice"}`,
			wantStatus: http.StatusBadRequest,
			wantCode:   helpers.ErrCodeBadRequest,
		},
		{
			name:       "short password",
			body:       `{"email":"alice@example.com","password":"short","full_name":"Alice"}`,
			wantStatus: http.StatusBadRequest,
			wantCode:   helpers.ErrCodeBadRequest,
		},
		{
			name:       "duplicate email",
			body:       `{"email":"alice@example.com","password":"secret-password","full_name":"Alice"}`,
			serviceErr: domain.ErrDuplicateEmail,
			wantStatus: http.StatusBadRequest,
			wantCode:   helpers.ErrCodeBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &fakeAuthService{
				registerUser: &domain.User{ID: "user-1", Email: "alice@example.com", FullName: "Alice"},
				registerErr:  tt.serviceErr,
			}
			ctrl := NewAuthController(testLogger, svc, &fakeUserService{})

			req := httptest.NewRequest(http.MethodPost, "/auth/register", bytes.NewBufferString(tt.body))
			rr := httptest.NewRecorder()

			ctrl.Register(rr, req)

			require.Equal(t, tt.wantStatus, rr.Code)
			envelope := decodeEnvelope(t, rr.Body)
			if tt.wantCode != "" {
				require.NotNil(t, envelope.Error)
				assert.Equal(t, tt.wantCode, envelope.Error.Code)
				return
			}
			require.Nil(t, envelope.Error)
			assert.Equal(t, "alice@example.com", svc.lastEmail)
			assert.Equal(t, "Alice", svc.lastFullName)
		})
	}
}

func TestAuthController_Login(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		serviceErr error
		wantStatus int
		wantCode   string
	}{
		{
			name:       "success",
			body:       `{"email":"alice@example.com","password":"secret-password"}`,
			wantStatus: http.StatusOK,
		},
		{
			name:       "wrong credentials",
			body:       `{"email":"alice@example.com","password":"wrong"}`,
			serviceErr: errors.New("invalid credentials"),
			wantStatus: http.StatusUnauthorized,
			wantCode:   helpers.ErrCodeUnauthorized,
		},
		{
			name:       "missing password",
			body:       `{"email":"alice@example.com"}`,
			wantStatus: http.StatusBadRequest,
			wantCode:   helpers.ErrCodeBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &fakeAuthService{
				loginToken: "jwt-token",
				loginUser:  &domain.User{ID: "user-1", Email: "alice@example.com"},
				loginErr:   tt.serviceErr,
			}
			ctrl := NewAuthController(testLogger, svc, &fakeUserService{})

			req := httptest.NewRequest(http.MethodPost, "/auth/login", bytes.NewBufferString(tt.body))
			rr := httptest.NewRecorder()

			ctrl.Login(rr, req)

			require.Equal(t, tt.wantStatus, rr.Code)
			envelope := decodeEnvelope(t, rr.Body)
			if tt.wantCode != "" {
				require.NotNil(t, envelope.Error)
				assert.Equal(t, tt.wantCode, envelope.Error.Code)
				return
			}
			require.Nil(t, envelope.Error)
			assert.Contains(t, rr.Body.String(), `"token":"jwt-token"`)
			assert.Contains(t, rr.Body.String(), `"token_type":"Bearer"`)
		})
	}
}

func TestAuthController_Verify(t *testing.T) {
	tests := []struct {
		name       string
		withAuth   bool
		getErr     error
		wantStatus int
	}{
		{"success", true, nil, http.StatusOK},
		{"no auth context", false, nil, http.StatusUnauthorized},
		{"user deleted", true, domain.ErrUserNotFound, http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			userSvc := &fakeUserService{
				user:   &domain.User{ID: "user-1", Email: "alice@example.com", FullName: "Alice"},
				getErr: tt.getErr,
			}
			ctrl := NewAuthController(testLogger, &fakeAuthService{}, userSvc)

			req := httptest.NewRequest(http.MethodGet, "/auth/verify", nil)
			if tt.withAuth {
				req = req.WithContext(middleware.SetUserID(req.Context(), "user-1"))
			}
			rr := httptest.NewRecorder()

			ctrl.Verify(rr, req)

			require.Equal(t, tt.wantStatus, rr.Code)
			if tt.wantStatus == http.StatusOK {
				assert.Equal(t, "user-1", userSvc.lastGetID)
				assert.Contains(t, rr.Body.String(), `"email":"alice@example.com"`)
			}
		})
	}
}

func TestAuthController_Health(t *testing.T) {
	ctrl := NewAuthController(testLogger, &fakeAuthService{}, &fakeUserService{})

	req := httptest.NewRequest(http.MethodGet, "/auth/health", nil)
	rr := httptest.NewRecorder()

	ctrl.Health(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"status":"ok"`)
}
