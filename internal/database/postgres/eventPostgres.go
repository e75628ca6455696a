package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/ds124wfegd/eventhub/internal/entity"
)

type eventRepository struct {
	db *sql.DB
}

func NewEventRepository(db *sql.DB) EventRepository {
	return &eventRepository{db: db}
}

func (r *eventRepository) Create(ctx context.Context, event *entity.Event) error {
	query := `
		INSERT INTO events (title, description, start_date, end_date, location_id, organizer_id, capacity, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id
	`

	now := time.Now()
	err := r.db.QueryRowContext(ctx, query,
		event.Title,
		event.Description,
		event.StartDate,
		event.EndDate,
		event.LocationID,
		event.OrganizerID,
		event.Capacity,
		event.IsActive,
		now,
		now,
	).Scan(&event.ID)

	if err != nil {
		return fmt.Errorf("failed to create event: %w", err)
	}

	event.CreatedAt = now
	event.UpdatedAt = now
	return nil
}

const resolvedEventColumns = `
	e.id, e.title, e.description, e.start_date, e.end_date, e.location_id, e.organizer_id,
	e.capacity, e.is_active, e.created_at, e.updated_at,
	l.id, l.name, l.address, l.city, l.state, l.country, l.zip_code, l.capacity, l.description, l.is_active, l.created_at, l.updated_at,
	u.id, u.name, u.email, u.role, u.created_at, u.updated_at`

func scanResolvedEvent(row interface {
	Scan(dest ...interface{}) error
}) (*entity.ResolvedEvent, error) {
	var event entity.ResolvedEvent
	var location entity.Location
	var organizer entity.User

	err := row.Scan(
		&event.ID,
		&event.Title,
		&event.Description,
		&event.StartDate,
		&event.EndDate,
		&event.LocationID,
		&event.OrganizerID,
		&event.Capacity,
		&event.IsActive,
		&event.CreatedAt,
		&event.UpdatedAt,
		&location.ID,
		&location.Name,
		&location.Address,
		&location.City,
		&location.State,
		&location.Country,
		&location.ZipCode,
		&location.Capacity,
		&location.Description,
		&location.IsActive,
		&location.CreatedAt,
		&location.UpdatedAt,
		&organizer.ID,
		&organizer.Name,
		&organizer.Email,
		&organizer.Role,
		&organizer.CreatedAt,
		&organizer.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	event.Location = &location
	event.Organizer = &organizer
	event.Attendees = []*entity.User{}
	return &event, nil
}

func (r *eventRepository) GetByID(ctx context.Context, id int64) (*entity.ResolvedEvent, error) {
	query := `
		SELECT ` + resolvedEventColumns + `
		FROM events e
		JOIN locations l ON l.id = e.location_id
		JOIN users u ON u.id = e.organizer_id
		WHERE e.id = $1
	`

	event, err := scanResolvedEvent(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, entity.ErrEventNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get event: %w", err)
	}

	attendees, err := r.getAttendees(ctx, id)
	if err != nil {
		return nil, err
	}
	event.Attendees = attendees

	return event, nil
}

func (r *eventRepository) GetAll(ctx context.Context) ([]*entity.ResolvedEvent, error) {
	query := `
		SELECT ` + resolvedEventColumns + `
		FROM events e
		JOIN locations l ON l.id = e.location_id
		JOIN users u ON u.id = e.organizer_id
		ORDER BY e.start_date ASC
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query all events: %w", err)
	}
	defer rows.Close()

	var events []*entity.ResolvedEvent
	byID := make(map[int64]*entity.ResolvedEvent)
	for rows.Next() {
		event, err := scanResolvedEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan event: %w", err)
		}
		events = append(events, event)
		byID[event.ID] = event
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating events: %w", err)
	}

	if len(events) == 0 {
		return events, nil
	}

	// One roster query for the whole listing instead of one per event.
	rosterQuery := `
		SELECT ea.event_id, u.id, u.name, u.email, u.role, u.created_at, u.updated_at
		FROM event_attendees ea
		JOIN users u ON u.id = ea.user_id
		ORDER BY ea.id ASC
	`
	rosterRows, err := r.db.QueryContext(ctx, rosterQuery)
	if err != nil {
		return nil, fmt.Errorf("failed to query attendees: %w", err)
	}
	defer rosterRows.Close()

	for rosterRows.Next() {
		var eventID int64
		var attendee entity.User
		err := rosterRows.Scan(
			&eventID,
			&attendee.ID,
			&attendee.Name,
			&attendee.Email,
			&attendee.Role,
			&attendee.CreatedAt,
			&attendee.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan attendee: %w", err)
		}
		if event, ok := byID[eventID]; ok {
			event.Attendees = append(event.Attendees, &attendee)
		}
	}
	if err := rosterRows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating attendees: %w", err)
	}

	return events, nil
}

func (r *eventRepository) getAttendees(ctx context.Context, eventID int64) ([]*entity.User, error) {
	query := `
		SELECT u.id, u.name, u.email, u.role, u.created_at, u.updated_at
		FROM event_attendees ea
		JOIN users u ON u.id = ea.user_id
		WHERE ea.event_id = $1
		ORDER BY ea.id ASC
	`

	rows, err := r.db.QueryContext(ctx, query, eventID)
	if err != nil {
		return nil, fmt.Errorf("failed to query attendees: %w", err)
	}
	defer rows.Close()

	attendees := []*entity.User{}
	for rows.Next() {
		var attendee entity.User
		err := rows.Scan(
			&attendee.ID,
			&attendee.Name,
			&attendee.Email,
			&attendee.Role,
			&attendee.CreatedAt,
			&attendee.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan attendee: %w", err)
		}
		attendees = append(attendees, &attendee)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating attendees: %w", err)
	}

	return attendees, nil
}

// Update applies the patch as a single UPDATE, last writer wins.
func (r *eventRepository) Update(ctx context.Context, id int64, patch *EventPatch) error {
	set := []string{}
	args := []interface{}{}
	arg := func(v interface{}) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if patch.Title != nil {
		set = append(set, "title = "+arg(*patch.Title))
	}
	if patch.Description != nil {
		set = append(set, "description = "+arg(*patch.Description))
	}
	if patch.StartDate != nil {
		set = append(set, "start_date = "+arg(*patch.StartDate))
	}
	if patch.EndDate != nil {
		set = append(set, "end_date = "+arg(*patch.EndDate))
	}
	if patch.LocationID != nil {
		set = append(set, "location_id = "+arg(*patch.LocationID))
	}
	if patch.Capacity != nil {
		set = append(set, "capacity = "+arg(*patch.Capacity))
	}
	if patch.IsActive != nil {
		set = append(set, "is_active = "+arg(*patch.IsActive))
	}
	set = append(set, "updated_at = "+arg(time.Now()))

	query := "UPDATE events SET " + strings.Join(set, ", ") + " WHERE id = " + arg(id)

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update event: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return entity.ErrEventNotFound
	}

	return nil
}

func (r *eventRepository) Delete(ctx context.Context, id int64) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	// The event owns its roster rows, so they go with it.
	if _, err := tx.ExecContext(ctx, `DELETE FROM event_attendees WHERE event_id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete event attendees: %w", err)
	}

	result, err := tx.ExecContext(ctx, `DELETE FROM events WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete event: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return entity.ErrEventNotFound
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// AddAttendee runs the capacity and duplicate checks and the roster insert
// under a row lock on the event, making registration a single serialized
// mutation per event.
func (r *eventRepository) AddAttendee(ctx context.Context, eventID, userID int64) error {
	tx, err := r.db.BeginTx(ctx, &sql.TxOptions{
		Isolation: sql.LevelReadCommitted,
	})
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var capacity int
	err = tx.QueryRowContext(ctx,
		`SELECT capacity FROM events WHERE id = $1 FOR UPDATE`, eventID,
	).Scan(&capacity)
	if err == sql.ErrNoRows {
		return entity.ErrEventNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to lock event: %w", err)
	}

	var registered int
	err = tx.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM event_attendees WHERE event_id = $1`, eventID,
	).Scan(&registered)
	if err != nil {
		return fmt.Errorf("failed to count attendees: %w", err)
	}
	if registered >= capacity {
		return entity.ErrEventFull
	}

	var duplicate bool
	err = tx.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM event_attendees WHERE event_id = $1 AND user_id = $2)`,
		eventID, userID,
	).Scan(&duplicate)
	if err != nil {
		return fmt.Errorf("failed to check existing registration: %w", err)
	}
	if duplicate {
		return entity.ErrAlreadyRegistered
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO event_attendees (event_id, user_id, created_at) VALUES ($1, $2, $3)`,
		eventID, userID, time.Now(),
	)
	if err != nil {
		return fmt.Errorf("failed to add attendee: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

func (r *eventRepository) DeactivatePastEvents(ctx context.Context, before time.Time) (int64, error) {
	query := `UPDATE events SET is_active = FALSE, updated_at = $1 WHERE is_active = TRUE AND end_date < $2`
	result, err := r.db.ExecContext(ctx, query, time.Now(), before)
	if err != nil {
		return 0, fmt.Errorf("failed to deactivate past events: %w", err)
	}
	return result.RowsAffected()
}
