package service

import (
	"context"
	"fmt"
	"time"

	"github.com/ds124wfegd/eventhub/internal/entity"

	"github.com/golang-jwt/jwt/v5"
)

type RegisterRequest struct {
	Name     string          `json:"name" binding:"required,min=1,max=255"`
	Email    string          `json:"email" binding:"required,email"`
	Password string          `json:"password" binding:"required,min=6"`
	Role     entity.UserRole `json:"role"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type LoginResponse struct {
	Message     string `json:"message"`
	AccessToken string `json:"access_token"`
}

// TokenClaims is the JWT payload: subject id plus the email and role claims
// the role guard relies on.
type TokenClaims struct {
	UserID int64           `json:"user_id"`
	Email  string          `json:"email"`
	Role   entity.UserRole `json:"role"`
	jwt.RegisteredClaims
}

// ParseToken validates an HS256 bearer token and returns its claims.
func ParseToken(secret, tokenString string) (*TokenClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &TokenClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*TokenClaims)
	if !ok || !token.Valid {
		return nil, entity.ErrUnauthorized
	}
	return claims, nil
}

type authService struct {
	users         UserService
	jwtSecret     string
	jwtExpiration time.Duration
}

func NewAuthService(users UserService, jwtSecret string, jwtExpiration time.Duration) AuthService {
	return &authService{
		users:         users,
		jwtSecret:     jwtSecret,
		jwtExpiration: jwtExpiration,
	}
}

// Register creates a user through the user service, which owns password
// hashing and the welcome notification.
func (s *authService) Register(ctx context.Context, req *RegisterRequest) (*entity.User, error) {
	return s.users.Create(ctx, &CreateUserRequest{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Role:     req.Role,
	})
}

func (s *authService) Login(ctx context.Context, req *LoginRequest) (*LoginResponse, error) {
	user, err := s.users.GetByEmail(ctx, req.Email)
	if err != nil {
		if err == entity.ErrUserNotFound {
			return nil, entity.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	if !CheckPassword(user.PasswordHash, req.Password) {
		return nil, entity.ErrInvalidCredentials
	}

	token, err := s.generateToken(user)
	if err != nil {
		return nil, fmt.Errorf("failed to sign token: %w", err)
	}

	return &LoginResponse{
		Message:     "Login successful",
		AccessToken: token,
	}, nil
}

func (s *authService) generateToken(user *entity.User) (string, error) {
	now := time.Now()
	claims := &TokenClaims{
		UserID: user.ID,
		Email:  user.Email,
		Role:   user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   fmt.Sprintf("%d", user.ID),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.jwtExpiration)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.jwtSecret))
}
