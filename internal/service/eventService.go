package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	repository "github.com/ds124wfegd/eventhub/internal/database/postgres"
	"github.com/ds124wfegd/eventhub/internal/entity"

	"github.com/sirupsen/logrus"
)

type CreateEventRequest struct {
	Title       string    `json:"title" binding:"required,min=1,max=255"`
	Description string    `json:"description" binding:"max=1000"`
	StartDate   time.Time `json:"start_date" binding:"required"`
	EndDate     time.Time `json:"end_date" binding:"required"`
	LocationID  int64     `json:"location" binding:"required"`
	Capacity    int       `json:"capacity" binding:"required,min=1"`

	// OrganizerID is taken from the caller identity, never from the body.
	OrganizerID int64 `json:"-"`
}

type UpdateEventRequest struct {
	Title       *string    `json:"title,omitempty"`
	Description *string    `json:"description,omitempty"`
	StartDate   *time.Time `json:"start_date,omitempty"`
	EndDate     *time.Time `json:"end_date,omitempty"`
	LocationID  *int64     `json:"location,omitempty"`
	Capacity    *int       `json:"capacity,omitempty"`
	IsActive    *bool      `json:"is_active,omitempty"`
}

type eventService struct {
	eventRepo    repository.EventRepository
	locationRepo repository.LocationRepository
	userRepo     repository.UserRepository
	notifier     Notifier
	cache        EventCache
}

func NewEventService(
	eventRepo repository.EventRepository,
	locationRepo repository.LocationRepository,
	userRepo repository.UserRepository,
	notifier Notifier,
	cache EventCache,
) EventService {
	return &eventService{
		eventRepo:    eventRepo,
		locationRepo: locationRepo,
		userRepo:     userRepo,
		notifier:     notifier,
		cache:        cache,
	}
}

func (s *eventService) Create(ctx context.Context, req *CreateEventRequest) (*entity.ResolvedEvent, error) {
	if req.EndDate.Before(req.StartDate) {
		return nil, entity.ErrInvalidDateRange
	}

	location, err := s.locationRepo.GetByID(ctx, req.LocationID)
	if err != nil {
		return nil, err
	}

	if req.Capacity > location.Capacity {
		return nil, fmt.Errorf("event capacity (%d) exceeds location capacity (%d): %w",
			req.Capacity, location.Capacity, entity.ErrCapacityExceeded)
	}

	event := &entity.Event{
		Title:       req.Title,
		Description: req.Description,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		LocationID:  req.LocationID,
		OrganizerID: req.OrganizerID,
		Capacity:    req.Capacity,
		IsActive:    true,
	}

	if err := s.eventRepo.Create(ctx, event); err != nil {
		return nil, err
	}

	return s.eventRepo.GetByID(ctx, event.ID)
}

func (s *eventService) GetByID(ctx context.Context, id int64) (*entity.ResolvedEvent, error) {
	if s.cache != nil {
		if event, err := s.cache.GetEvent(ctx, id); err == nil {
			return event, nil
		}
	}

	event, err := s.eventRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.SetEvent(ctx, event); err != nil {
			logrus.WithError(err).WithField("event_id", id).Warn("Failed to cache event")
		}
	}

	return event, nil
}

func (s *eventService) GetAll(ctx context.Context) ([]*entity.ResolvedEvent, error) {
	return s.eventRepo.GetAll(ctx)
}

func (s *eventService) Update(ctx context.Context, id int64, req *UpdateEventRequest) (*entity.ResolvedEvent, error) {
	if err := s.checkDateRange(ctx, id, req); err != nil {
		return nil, err
	}

	patch := &repository.EventPatch{
		Title:       req.Title,
		Description: req.Description,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		LocationID:  req.LocationID,
		Capacity:    req.Capacity,
		IsActive:    req.IsActive,
	}

	if err := s.eventRepo.Update(ctx, id, patch); err != nil {
		return nil, err
	}

	s.invalidate(ctx, id)

	event, err := s.eventRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	s.broadcastUpdate(ctx, event, patch.Fields())

	return event, nil
}

// checkDateRange rejects a patch that would leave end_date before start_date.
// When only one bound is patched the other comes from the stored record.
func (s *eventService) checkDateRange(ctx context.Context, id int64, req *UpdateEventRequest) error {
	if req.StartDate == nil && req.EndDate == nil {
		return nil
	}

	start, end := req.StartDate, req.EndDate
	if start == nil || end == nil {
		existing, err := s.eventRepo.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if start == nil {
			start = &existing.StartDate
		}
		if end == nil {
			end = &existing.EndDate
		}
	}

	if end.Before(*start) {
		return entity.ErrInvalidDateRange
	}
	return nil
}

// broadcastUpdate fans the change list out to every attendee that carries
// resolvable contact data. Per-recipient failures are logged and swallowed so
// one bad address never blocks the rest of the roster.
func (s *eventService) broadcastUpdate(ctx context.Context, event *entity.ResolvedEvent, changedFields []string) {
	if s.notifier == nil || len(changedFields) == 0 {
		return
	}

	changes := strings.Join(changedFields, ", ")
	for _, attendee := range event.Attendees {
		if attendee.Email == "" || attendee.Name == "" {
			continue
		}
		if err := s.notifier.SendEventUpdateEmail(ctx, attendee.Email, attendee.Name, event.Title, changes); err != nil {
			logrus.WithError(err).WithFields(logrus.Fields{
				"event_id": event.ID,
				"email":    attendee.Email,
			}).Error("Failed to send update email")
		}
	}
}

func (s *eventService) Delete(ctx context.Context, id int64) (*entity.ResolvedEvent, error) {
	event, err := s.eventRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.eventRepo.Delete(ctx, id); err != nil {
		return nil, err
	}

	s.invalidate(ctx, id)
	return event, nil
}

// RegisterAttendee appends the user to the roster. The capacity and duplicate
// preconditions are checked up front for precise errors, and re-checked
// atomically inside AddAttendee, which holds the event row lock, so two racing
// registrations can neither overshoot capacity nor double-register a user.
func (s *eventService) RegisterAttendee(ctx context.Context, eventID, userID int64) (*entity.ResolvedEvent, error) {
	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		return nil, err
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if len(event.Attendees) >= event.Capacity {
		return nil, entity.ErrEventFull
	}

	if event.HasAttendee(userID) {
		return nil, entity.ErrAlreadyRegistered
	}

	if err := s.eventRepo.AddAttendee(ctx, eventID, userID); err != nil {
		return nil, err
	}

	s.invalidate(ctx, eventID)

	// Defended against: the record vanishing between the push and the re-fetch.
	updated, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		return nil, err
	}

	// The roster mutation is committed; the confirmation mail must not undo
	// that, so it is sent without blocking the response and failures are only
	// logged.
	if s.notifier != nil {
		go s.sendRegistrationConfirmation(user, &event.Event)
	}

	return updated, nil
}

func (s *eventService) sendRegistrationConfirmation(user *entity.User, event *entity.Event) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	eventDate := event.StartDate.Format("January 2, 2006")
	if err := s.notifier.SendEventRegistrationEmail(ctx, user.Email, user.Name, event.Title, eventDate); err != nil {
		logrus.WithError(err).WithFields(logrus.Fields{
			"event_id": event.ID,
			"user_id":  user.ID,
		}).Error("Failed to send registration confirmation email")
	}
}

func (s *eventService) GetAttendees(ctx context.Context, eventID int64) ([]*entity.User, error) {
	event, err := s.GetByID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	return event.Attendees, nil
}

func (s *eventService) DeactivatePastEvents(ctx context.Context) (int64, error) {
	return s.eventRepo.DeactivatePastEvents(ctx, time.Now())
}

func (s *eventService) invalidate(ctx context.Context, id int64) {
	if s.cache == nil {
		return
	}
	if err := s.cache.DeleteEvent(ctx, id); err != nil {
		logrus.WithError(err).WithField("event_id", id).Warn("Failed to invalidate event cache")
	}
}
