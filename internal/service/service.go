package service

import (
	"context"

	"github.com/ds124wfegd/eventhub/internal/entity"
)

type AuthService interface {
	Register(ctx context.Context, req *RegisterRequest) (*entity.User, error)
	Login(ctx context.Context, req *LoginRequest) (*LoginResponse, error)
}

type UserService interface {
	Create(ctx context.Context, req *CreateUserRequest) (*entity.User, error)
	GetByID(ctx context.Context, id int64) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	GetAll(ctx context.Context) ([]*entity.User, error)
	Update(ctx context.Context, id int64, req *UpdateUserRequest) (*entity.User, error)
	Delete(ctx context.Context, id int64) error
}

type LocationService interface {
	Create(ctx context.Context, req *CreateLocationRequest) (*entity.Location, error)
	GetByID(ctx context.Context, id int64) (*entity.Location, error)
	GetAll(ctx context.Context) ([]*entity.Location, error)
	Update(ctx context.Context, id int64, req *UpdateLocationRequest) (*entity.Location, error)
	Delete(ctx context.Context, id int64) (*entity.Location, error)
}

type EventService interface {
	Create(ctx context.Context, req *CreateEventRequest) (*entity.ResolvedEvent, error)
	GetByID(ctx context.Context, id int64) (*entity.ResolvedEvent, error)
	GetAll(ctx context.Context) ([]*entity.ResolvedEvent, error)
	Update(ctx context.Context, id int64, req *UpdateEventRequest) (*entity.ResolvedEvent, error)
	Delete(ctx context.Context, id int64) (*entity.ResolvedEvent, error)
	RegisterAttendee(ctx context.Context, eventID, userID int64) (*entity.ResolvedEvent, error)
	GetAttendees(ctx context.Context, eventID int64) ([]*entity.User, error)

	// DeactivatePastEvents is run periodically by the worker.
	DeactivatePastEvents(ctx context.Context) (int64, error)
}

// Notifier is the notification gateway as seen by the services.
type Notifier interface {
	SendUserRegistrationEmail(ctx context.Context, to, name string) error
	SendEventRegistrationEmail(ctx context.Context, to, name, eventTitle, eventDate string) error
	SendEventUpdateEmail(ctx context.Context, to, name, eventTitle, changes string) error
}

// EventCache is a read-through cache for resolved events. Services tolerate
// a nil cache and fall through to the repository.
type EventCache interface {
	GetEvent(ctx context.Context, id int64) (*entity.ResolvedEvent, error)
	SetEvent(ctx context.Context, event *entity.ResolvedEvent) error
	DeleteEvent(ctx context.Context, id int64) error
}
