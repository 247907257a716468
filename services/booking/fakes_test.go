package booking

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"dineslot/config"
	"dineslot/database/repository"
	"dineslot/models"
	"dineslot/services/capacity"
)

type fakeVenues struct {
	spaces      map[string]*models.Space
	restaurants map[string]*models.Restaurant
}

func (f *fakeVenues) FindSpaceByID(_ context.Context, id string) (*models.Space, error) {
	if s, ok := f.spaces[id]; ok {
		return s, nil
	}
	return nil, repository.ErrNotFound
}

func (f *fakeVenues) FindRestaurantByID(_ context.Context, id string) (*models.Restaurant, error) {
	if r, ok := f.restaurants[id]; ok {
		return r, nil
	}
	return nil, repository.ErrNotFound
}

// memReservations emulates the versioned reservation collection.
type memReservations struct {
	mu    sync.Mutex
	items map[string]models.Reservation

	saveErrs     []error // returned by successive Save calls, then nil
	saves        int
	updateErr    error
	beforeUpdate func(r *models.Reservation)
	beforeDelete func(r *models.Reservation)
}

func newMemReservations() *memReservations {
	return &memReservations{items: make(map[string]models.Reservation)}
}

func (s *memReservations) Save(_ context.Context, r *models.Reservation) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.saveErrs) > 0 {
		err := s.saveErrs[0]
		s.saveErrs = s.saveErrs[1:]
		if err != nil {
			return err
		}
	}
	s.saves++
	s.items[r.ID] = *r
	return nil
}

func (s *memReservations) Update(_ context.Context, r *models.Reservation) error {
	s.mu.Lock()
	hook := s.beforeUpdate
	s.beforeUpdate = nil
	s.mu.Unlock()
	if hook != nil {
		hook(r)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.updateErr != nil {
		return s.updateErr
	}
	cur, ok := s.items[r.ID]
	if !ok || cur.Version != r.Version {
		return fmt.Errorf("reservation %s changed concurrently: %w", r.ID, repository.ErrWriteConflict)
	}
	r.Version++
	s.items[r.ID] = *r
	return nil
}

func (s *memReservations) FindByID(_ context.Context, id string) (*models.Reservation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.items[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &r, nil
}

func (s *memReservations) DeleteVersion(_ context.Context, r *models.Reservation) (bool, error) {
	s.mu.Lock()
	hook := s.beforeDelete
	s.beforeDelete = nil
	s.mu.Unlock()
	if hook != nil {
		hook(r)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	cur, ok := s.items[r.ID]
	if !ok || cur.Version != r.Version {
		return false, nil
	}
	delete(s.items, r.ID)
	return true, nil
}

// forceStatus changes a stored reservation as another writer would.
func (s *memReservations) forceStatus(id string, status models.ReservationStatus) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r := s.items[id]
	r.Status = status
	r.Version++
	s.items[id] = r
}

func (s *memReservations) status(id string) models.ReservationStatus {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.items[id].Status
}

// fakeCapacity is an atomic in-memory slot counter with the same ceiling
// snapshot behaviour as capacity.Manager.
type fakeCapacity struct {
	mu       sync.Mutex
	booked   map[string]int
	ceiling  map[string]int
	reserves int
	releases int
	failNext error
}

func newFakeCapacity() *fakeCapacity {
	return &fakeCapacity{booked: map[string]int{}, ceiling: map[string]int{}}
}

func (c *fakeCapacity) TryReserve(_ context.Context, spaceID, date, startTime, _ string, maxCapacity, partySize int) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.reserves++
	if c.failNext != nil {
		err := c.failNext
		c.failNext = nil
		return false, err
	}
	key := capacity.SlotKey(spaceID, date, startTime)
	if _, ok := c.ceiling[key]; !ok {
		c.ceiling[key] = maxCapacity
	}
	if c.booked[key]+partySize > c.ceiling[key] {
		return false, nil
	}
	c.booked[key] += partySize
	return true, nil
}

func (c *fakeCapacity) Release(_ context.Context, spaceID, date, startTime string, partySize int) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.releases++
	key := capacity.SlotKey(spaceID, date, startTime)
	c.booked[key] -= partySize
	if c.booked[key] < 0 {
		c.booked[key] = 0
	}
	return nil
}

func (c *fakeCapacity) GetBooked(_ context.Context, spaceID, date, startTime string) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.booked[capacity.SlotKey(spaceID, date, startTime)], nil
}

func (c *fakeCapacity) GetAvailable(_ context.Context, spaceID, date, startTime string, maxCapacity int) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	key := capacity.SlotKey(spaceID, date, startTime)
	ceiling, ok := c.ceiling[key]
	if !ok {
		return maxCapacity, nil
	}
	if avail := ceiling - c.booked[key]; avail > 0 {
		return avail, nil
	}
	return 0, nil
}

func (c *fakeCapacity) at(spaceID, date, startTime string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.booked[capacity.SlotKey(spaceID, date, startTime)]
}

type recorder struct {
	mu          sync.Mutex
	events      []models.ReservationEvent
	invalidated []string
	publishErr  error
}

func (r *recorder) Publish(_ context.Context, e models.ReservationEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
	return r.publishErr
}

func (r *recorder) Invalidate(_ context.Context, spaceID, date string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.invalidated = append(r.invalidated, spaceID+":"+date)
}

func (r *recorder) eventTypes() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.events))
	for i, e := range r.events {
		out[i] = e.Type
	}
	return out
}

var errDatabaseDown = errors.New("connection reset by peer")

const (
	spaceID = "cellar"
	friday  = "2030-05-17"
)

// today is a Friday one week before the booking date used throughout.
var today = time.Date(2030, 5, 10, 10, 0, 0, 0, time.UTC)

type harness struct {
	svc      *DefaultReservationService
	store    *memReservations
	capacity *fakeCapacity
	rec      *recorder
}

func newHarness() *harness {
	venues := &fakeVenues{
		spaces: map[string]*models.Space{
			spaceID:   {ID: spaceID, RestaurantID: "r1", Name: "Wine Cellar", MinCapacity: 2, MaxCapacity: 20, SlotDurationMinutes: 60, IsActive: true},
			"retired": {ID: "retired", RestaurantID: "r1", Name: "Old Room", MaxCapacity: 10, SlotDurationMinutes: 60},
		},
		restaurants: map[string]*models.Restaurant{
			"r1": {ID: "r1", Name: "Bistro", OperatingHours: []models.OperatingHours{
				{DayOfWeek: int(time.Friday), OpenTime: "09:00", CloseTime: "22:00"},
				{DayOfWeek: int(time.Saturday), IsClosed: true},
			}},
		},
	}
	h := &harness{
		store:    newMemReservations(),
		capacity: newFakeCapacity(),
		rec:      &recorder{},
	}
	h.svc = &DefaultReservationService{
		Spaces:       venues,
		Restaurants:  venues,
		Reservations: h.store,
		Capacity:     h.capacity,
		Events:       h.rec,
		Availability: h.rec,
		Policy:       config.Policy{AdvanceBookingDays: 90, MaxAttempts: 3, BaseDelay: time.Millisecond},
		Now:          func() time.Time { return today },
		Location:     time.UTC,
	}
	return h
}

func request(start string, party int) models.CreateReservationRequest {
	return models.CreateReservationRequest{
		SpaceID:         spaceID,
		ReservationDate: friday,
		StartTime:       start,
		PartySize:       party,
		CustomerName:    "Ada Lovelace",
		CustomerEmail:   "ada@example.com",
	}
}
