package entity

import (
	"time"
)

type Event struct {
	ID          int64     `json:"id" db:"id"`
	Title       string    `json:"title" db:"title"`
	Description string    `json:"description" db:"description"`
	StartDate   time.Time `json:"start_date" db:"start_date"`
	EndDate     time.Time `json:"end_date" db:"end_date"`
	LocationID  int64     `json:"location_id" db:"location_id"`
	OrganizerID int64     `json:"organizer_id" db:"organizer_id"`
	Capacity    int       `json:"capacity" db:"capacity"`
	IsActive    bool      `json:"is_active" db:"is_active"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}

// ResolvedEvent is an event with its foreign keys resolved to full records,
// which is how events are presented on every read path. Attendees are ordered
// by registration time.
type ResolvedEvent struct {
	Event
	Location  *Location `json:"location"`
	Organizer *User     `json:"organizer"`
	Attendees []*User   `json:"attendees"`
}

// AttendeeIDs returns the roster as bare identifiers, in registration order.
func (e *ResolvedEvent) AttendeeIDs() []int64 {
	ids := make([]int64, 0, len(e.Attendees))
	for _, a := range e.Attendees {
		ids = append(ids, a.ID)
	}
	return ids
}

// HasAttendee reports whether the user already appears on the roster.
func (e *ResolvedEvent) HasAttendee(userID int64) bool {
	for _, a := range e.Attendees {
		if a.ID == userID {
			return true
		}
	}
	return false
}
