package service

import (
	"context"
	"fmt"

	repository "github.com/ds124wfegd/eventhub/internal/database/postgres"
	"github.com/ds124wfegd/eventhub/internal/entity"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

type CreateUserRequest struct {
	Name     string          `json:"name" binding:"required,min=1,max=255"`
	Email    string          `json:"email" binding:"required,email"`
	Password string          `json:"password" binding:"required,min=6"`
	Role     entity.UserRole `json:"role"`
}

type UpdateUserRequest struct {
	Name     *string          `json:"name,omitempty"`
	Email    *string          `json:"email,omitempty"`
	Password *string          `json:"password,omitempty"`
	Role     *entity.UserRole `json:"role,omitempty"`
}

// HashPassword derives a bcrypt hash; the plaintext is never stored.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

// CheckPassword reports whether the plaintext matches the stored hash.
func CheckPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

type userService struct {
	userRepo repository.UserRepository
	notifier Notifier
}

func NewUserService(userRepo repository.UserRepository, notifier Notifier) UserService {
	return &userService{
		userRepo: userRepo,
		notifier: notifier,
	}
}

func (s *userService) Create(ctx context.Context, req *CreateUserRequest) (*entity.User, error) {
	role := req.Role
	if role == "" {
		role = entity.RoleAttendee
	}
	if !role.Valid() {
		return nil, entity.ErrInvalidRole
	}

	hash, err := HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := &entity.User{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: hash,
		Role:         role,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	// Welcome mail is best effort: the account exists either way.
	if s.notifier != nil {
		if err := s.notifier.SendUserRegistrationEmail(ctx, user.Email, user.Name); err != nil {
			logrus.WithError(err).WithField("email", user.Email).Error("Failed to send welcome email")
		}
	}

	return user, nil
}

func (s *userService) GetByID(ctx context.Context, id int64) (*entity.User, error) {
	return s.userRepo.GetByID(ctx, id)
}

func (s *userService) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, entity.ErrUserNotFound
	}
	return user, nil
}

func (s *userService) GetAll(ctx context.Context) ([]*entity.User, error) {
	return s.userRepo.GetAll(ctx)
}

func (s *userService) Update(ctx context.Context, id int64, req *UpdateUserRequest) (*entity.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		user.Name = *req.Name
	}
	if req.Email != nil {
		user.Email = *req.Email
	}
	if req.Role != nil {
		if !req.Role.Valid() {
			return nil, entity.ErrInvalidRole
		}
		user.Role = *req.Role
	}
	if req.Password != nil {
		hash, err := HashPassword(*req.Password)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = hash
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

func (s *userService) Delete(ctx context.Context, id int64) error {
	return s.userRepo.Delete(ctx, id)
}
