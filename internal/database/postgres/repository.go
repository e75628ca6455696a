package repository

import (
	"context"
	"time"

	"github.com/ds124wfegd/eventhub/internal/entity"
)

type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id int64) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	GetAll(ctx context.Context) ([]*entity.User, error)
	Update(ctx context.Context, user *entity.User) error
	Delete(ctx context.Context, id int64) error
}

type LocationRepository interface {
	Create(ctx context.Context, location *entity.Location) error
	GetByID(ctx context.Context, id int64) (*entity.Location, error)
	GetAll(ctx context.Context) ([]*entity.Location, error)
	Update(ctx context.Context, location *entity.Location) error
	Delete(ctx context.Context, id int64) error
}

// EventPatch is a partial field update. Nil fields are left untouched;
// Fields lists the names of the fields the patch carries, in a fixed order,
// which is also the change list reported to attendees.
type EventPatch struct {
	Title       *string
	Description *string
	StartDate   *time.Time
	EndDate     *time.Time
	LocationID  *int64
	Capacity    *int
	IsActive    *bool
}

// Fields returns the patched field names by patch key, not by semantic diff.
func (p *EventPatch) Fields() []string {
	var fields []string
	if p.Title != nil {
		fields = append(fields, "title")
	}
	if p.Description != nil {
		fields = append(fields, "description")
	}
	if p.StartDate != nil {
		fields = append(fields, "start_date")
	}
	if p.EndDate != nil {
		fields = append(fields, "end_date")
	}
	if p.LocationID != nil {
		fields = append(fields, "location_id")
	}
	if p.Capacity != nil {
		fields = append(fields, "capacity")
	}
	if p.IsActive != nil {
		fields = append(fields, "is_active")
	}
	return fields
}

// Empty reports whether the patch carries no fields at all.
func (p *EventPatch) Empty() bool {
	return len(p.Fields()) == 0
}

type EventRepository interface {
	Create(ctx context.Context, event *entity.Event) error
	GetByID(ctx context.Context, id int64) (*entity.ResolvedEvent, error)
	GetAll(ctx context.Context) ([]*entity.ResolvedEvent, error)
	Update(ctx context.Context, id int64, patch *EventPatch) error
	Delete(ctx context.Context, id int64) error

	// AddAttendee appends the user to the event roster as one conditional
	// mutation: the capacity and duplicate checks run inside the same
	// transaction that holds the event row lock, so concurrent registrations
	// cannot jointly overshoot capacity or double-register a user.
	AddAttendee(ctx context.Context, eventID, userID int64) error

	// DeactivatePastEvents clears is_active on events whose end date has
	// passed and returns how many rows changed.
	DeactivatePastEvents(ctx context.Context, before time.Time) (int64, error)
}
