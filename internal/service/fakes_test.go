package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	repository "github.com/ds124wfegd/eventhub/internal/database/postgres"
	"github.com/ds124wfegd/eventhub/internal/entity"
)

// In-memory fakes for the repository and notifier interfaces. They mirror the
// postgres implementations closely enough to exercise the service contracts,
// including the conditional roster insert.

type fakeUserRepo struct {
	mu     sync.Mutex
	users  map[int64]*entity.User
	nextID int64
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[int64]*entity.User)}
}

func (r *fakeUserRepo) Create(_ context.Context, user *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.users {
		if existing.Email == user.Email {
			return entity.ErrEmailTaken
		}
	}
	r.nextID++
	user.ID = r.nextID
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	clone := *user
	r.users[user.ID] = &clone
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id int64) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[id]
	if !ok {
		return nil, entity.ErrUserNotFound
	}
	clone := *user
	return &clone, nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, user := range r.users {
		if user.Email == email {
			clone := *user
			return &clone, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) GetAll(_ context.Context) ([]*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var users []*entity.User
	for id := int64(1); id <= r.nextID; id++ {
		if user, ok := r.users[id]; ok {
			clone := *user
			users = append(users, &clone)
		}
	}
	return users, nil
}

func (r *fakeUserRepo) Update(_ context.Context, user *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[user.ID]; !ok {
		return entity.ErrUserNotFound
	}
	clone := *user
	r.users[user.ID] = &clone
	return nil
}

func (r *fakeUserRepo) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[id]; !ok {
		return entity.ErrUserNotFound
	}
	delete(r.users, id)
	return nil
}

type fakeLocationRepo struct {
	mu        sync.Mutex
	locations map[int64]*entity.Location
	nextID    int64
}

func newFakeLocationRepo() *fakeLocationRepo {
	return &fakeLocationRepo{locations: make(map[int64]*entity.Location)}
}

func (r *fakeLocationRepo) Create(_ context.Context, location *entity.Location) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	location.ID = r.nextID
	clone := *location
	r.locations[location.ID] = &clone
	return nil
}

func (r *fakeLocationRepo) GetByID(_ context.Context, id int64) (*entity.Location, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	location, ok := r.locations[id]
	if !ok {
		return nil, entity.ErrLocationNotFound
	}
	clone := *location
	return &clone, nil
}

func (r *fakeLocationRepo) GetAll(_ context.Context) ([]*entity.Location, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var locations []*entity.Location
	for id := int64(1); id <= r.nextID; id++ {
		if location, ok := r.locations[id]; ok {
			clone := *location
			locations = append(locations, &clone)
		}
	}
	return locations, nil
}

func (r *fakeLocationRepo) Update(_ context.Context, location *entity.Location) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.locations[location.ID]; !ok {
		return entity.ErrLocationNotFound
	}
	clone := *location
	r.locations[location.ID] = &clone
	return nil
}

func (r *fakeLocationRepo) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.locations[id]; !ok {
		return entity.ErrLocationNotFound
	}
	delete(r.locations, id)
	return nil
}

type fakeEventRepo struct {
	mu        sync.Mutex
	events    map[int64]*entity.Event
	rosters   map[int64][]int64
	users     *fakeUserRepo
	locations *fakeLocationRepo
	nextID    int64
}

func newFakeEventRepo(users *fakeUserRepo, locations *fakeLocationRepo) *fakeEventRepo {
	return &fakeEventRepo{
		events:    make(map[int64]*entity.Event),
		rosters:   make(map[int64][]int64),
		users:     users,
		locations: locations,
	}
}

func (r *fakeEventRepo) Create(_ context.Context, event *entity.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	event.ID = r.nextID
	event.CreatedAt = time.Now()
	event.UpdatedAt = event.CreatedAt
	clone := *event
	r.events[event.ID] = &clone
	r.rosters[event.ID] = nil
	return nil
}

func (r *fakeEventRepo) resolveLocked(ctx context.Context, event *entity.Event) (*entity.ResolvedEvent, error) {
	resolved := &entity.ResolvedEvent{Event: *event, Attendees: []*entity.User{}}

	location, err := r.locations.GetByID(ctx, event.LocationID)
	if err == nil {
		resolved.Location = location
	}
	organizer, err := r.users.GetByID(ctx, event.OrganizerID)
	if err == nil {
		resolved.Organizer = organizer
	}
	for _, userID := range r.rosters[event.ID] {
		attendee, err := r.users.GetByID(ctx, userID)
		if err != nil {
			continue
		}
		attendee.PasswordHash = ""
		resolved.Attendees = append(resolved.Attendees, attendee)
	}
	return resolved, nil
}

func (r *fakeEventRepo) GetByID(ctx context.Context, id int64) (*entity.ResolvedEvent, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	event, ok := r.events[id]
	if !ok {
		return nil, entity.ErrEventNotFound
	}
	return r.resolveLocked(ctx, event)
}

func (r *fakeEventRepo) GetAll(ctx context.Context) ([]*entity.ResolvedEvent, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var events []*entity.ResolvedEvent
	for id := int64(1); id <= r.nextID; id++ {
		event, ok := r.events[id]
		if !ok {
			continue
		}
		resolved, err := r.resolveLocked(ctx, event)
		if err != nil {
			return nil, err
		}
		events = append(events, resolved)
	}
	return events, nil
}

func (r *fakeEventRepo) Update(_ context.Context, id int64, patch *repository.EventPatch) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	event, ok := r.events[id]
	if !ok {
		return entity.ErrEventNotFound
	}
	if patch.Title != nil {
		event.Title = *patch.Title
	}
	if patch.Description != nil {
		event.Description = *patch.Description
	}
	if patch.StartDate != nil {
		event.StartDate = *patch.StartDate
	}
	if patch.EndDate != nil {
		event.EndDate = *patch.EndDate
	}
	if patch.LocationID != nil {
		event.LocationID = *patch.LocationID
	}
	if patch.Capacity != nil {
		event.Capacity = *patch.Capacity
	}
	if patch.IsActive != nil {
		event.IsActive = *patch.IsActive
	}
	event.UpdatedAt = time.Now()
	return nil
}

func (r *fakeEventRepo) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.events[id]; !ok {
		return entity.ErrEventNotFound
	}
	delete(r.events, id)
	delete(r.rosters, id)
	return nil
}

func (r *fakeEventRepo) AddAttendee(_ context.Context, eventID, userID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	event, ok := r.events[eventID]
	if !ok {
		return entity.ErrEventNotFound
	}
	roster := r.rosters[eventID]
	if len(roster) >= event.Capacity {
		return entity.ErrEventFull
	}
	for _, existing := range roster {
		if existing == userID {
			return entity.ErrAlreadyRegistered
		}
	}
	r.rosters[eventID] = append(roster, userID)
	return nil
}

func (r *fakeEventRepo) DeactivatePastEvents(_ context.Context, before time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var count int64
	for _, event := range r.events {
		if event.IsActive && event.EndDate.Before(before) {
			event.IsActive = false
			count++
		}
	}
	return count, nil
}

type fakeEventCache struct {
	mu      sync.Mutex
	entries map[int64]*entity.ResolvedEvent
	hits    int
	misses  int
}

func newFakeEventCache() *fakeEventCache {
	return &fakeEventCache{entries: make(map[int64]*entity.ResolvedEvent)}
}

func (c *fakeEventCache) GetEvent(_ context.Context, id int64) (*entity.ResolvedEvent, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	event, ok := c.entries[id]
	if !ok {
		c.misses++
		return nil, fmt.Errorf("cache miss for event %d", id)
	}
	c.hits++
	return event, nil
}

func (c *fakeEventCache) SetEvent(_ context.Context, event *entity.ResolvedEvent) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[event.ID] = event
	return nil
}

func (c *fakeEventCache) DeleteEvent(_ context.Context, id int64) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, id)
	return nil
}

func (c *fakeEventCache) cached(id int64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.entries[id]
	return ok
}

type sentMail struct {
	To         string
	Name       string
	EventTitle string
	Detail     string
}

type fakeNotifier struct {
	mu            sync.Mutex
	welcomes      []sentMail
	confirmations []sentMail
	updates       []sentMail
	failFor       map[string]bool
}

func newFakeNotifier() *fakeNotifier {
	return &fakeNotifier{failFor: make(map[string]bool)}
}

func (n *fakeNotifier) SendUserRegistrationEmail(_ context.Context, to, name string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.failFor[to] {
		return fmt.Errorf("transport failure for %s", to)
	}
	n.welcomes = append(n.welcomes, sentMail{To: to, Name: name})
	return nil
}

func (n *fakeNotifier) SendEventRegistrationEmail(_ context.Context, to, name, eventTitle, eventDate string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.failFor[to] {
		return fmt.Errorf("transport failure for %s", to)
	}
	n.confirmations = append(n.confirmations, sentMail{To: to, Name: name, EventTitle: eventTitle, Detail: eventDate})
	return nil
}

func (n *fakeNotifier) SendEventUpdateEmail(_ context.Context, to, name, eventTitle, changes string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.failFor[to] {
		return fmt.Errorf("transport failure for %s", to)
	}
	n.updates = append(n.updates, sentMail{To: to, Name: name, EventTitle: eventTitle, Detail: changes})
	return nil
}

func (n *fakeNotifier) setFail(to string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.failFor[to] = true
}

func (n *fakeNotifier) firstConfirmation() sentMail {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.confirmations[0]
}

func (n *fakeNotifier) firstUpdate() sentMail {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.updates[0]
}

func (n *fakeNotifier) confirmationCount() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.confirmations)
}

func (n *fakeNotifier) updateRecipients() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	var recipients []string
	for _, mail := range n.updates {
		recipients = append(recipients, mail.To)
	}
	return recipients
}
