package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/ds124wfegd/eventhub/internal/entity"
	"github.com/ds124wfegd/eventhub/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-signing-key"

type stubUserService struct {
	user *entity.User
}

func (s *stubUserService) Create(_ context.Context, _ *service.CreateUserRequest) (*entity.User, error) {
	return s.user, nil
}

func (s *stubUserService) GetByID(_ context.Context, _ int64) (*entity.User, error) {
	return s.user, nil
}

func (s *stubUserService) GetByEmail(_ context.Context, _ string) (*entity.User, error) {
	return s.user, nil
}

func (s *stubUserService) GetAll(_ context.Context) ([]*entity.User, error) {
	return []*entity.User{s.user}, nil
}

func (s *stubUserService) Update(_ context.Context, _ int64, _ *service.UpdateUserRequest) (*entity.User, error) {
	return s.user, nil
}

func (s *stubUserService) Delete(_ context.Context, _ int64) error {
	return nil
}

func issueToken(t *testing.T, role entity.UserRole) string {
	t.Helper()

	hash, err := service.HashPassword("secret123")
	require.NoError(t, err)

	user := &entity.User{
		ID:           7,
		Name:         "Maria",
		Email:        "maria@example.com",
		PasswordHash: hash,
		Role:         role,
	}

	auth := service.NewAuthService(&stubUserService{user: user}, testSecret, time.Hour)
	resp, err := auth.Login(context.Background(), &service.LoginRequest{
		Email:    user.Email,
		Password: "secret123",
	})
	require.NoError(t, err)
	return resp.AccessToken
}

func newAuthTestRouter(secret string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/protected", Auth(secret), func(c *gin.Context) {
		identity := GetIdentity(c)
		c.JSON(http.StatusOK, gin.H{"email": identity.Email, "role": identity.Role})
	})
	return router
}

func TestAuth(t *testing.T) {
	router := newAuthTestRouter(testSecret)
	token := issueToken(t, entity.RoleAdmin)

	tests := []struct {
		name       string
		header     string
		wantStatus int
	}{
		{name: "valid token", header: "Bearer " + token, wantStatus: http.StatusOK},
		{name: "missing header", header: "", wantStatus: http.StatusUnauthorized},
		{name: "wrong scheme", header: "Basic " + token, wantStatus: http.StatusUnauthorized},
		{name: "garbage token", header: "Bearer not.a.token", wantStatus: http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/protected", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)
			assert.Equal(t, tt.wantStatus, w.Code)
		})
	}
}

func TestAuth_RejectsTokenSignedWithOtherKey(t *testing.T) {
	router := newAuthTestRouter("the-real-key")
	token := issueToken(t, entity.RoleAdmin)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
