package capacity

import (
	"context"
	"sort"
	"sync"

	"dineslot/database/repository"
	"dineslot/models"
)

// memStore emulates the document store: every method holds the lock for the
// whole condition-and-mutation, like a single Mongo document update.
type memStore struct {
	mu      sync.Mutex
	records map[string]*models.SlotCapacityRecord

	clamps int
}

func newMemStore() *memStore {
	return &memStore{records: make(map[string]*models.SlotCapacityRecord)}
}

func (s *memStore) EnsureRecord(_ context.Context, rec models.SlotCapacityRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.records[rec.Key]; ok {
		return nil
	}
	rec.BookedCapacity = 0
	s.records[rec.Key] = &rec
	return nil
}

func (s *memStore) IncrementIfFits(_ context.Context, key string, partySize int) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.records[key]
	if !ok || rec.BookedCapacity+partySize > rec.MaxCapacity {
		return false, nil
	}
	rec.BookedCapacity += partySize
	return true, nil
}

func (s *memStore) Decrement(_ context.Context, key string, partySize int) (*models.SlotCapacityRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.records[key]
	if !ok {
		return nil, repository.ErrNotFound
	}
	rec.BookedCapacity -= partySize
	out := *rec
	return &out, nil
}

func (s *memStore) ClampNegative(_ context.Context, key string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.records[key]
	if !ok || rec.BookedCapacity >= 0 {
		return false, nil
	}
	rec.BookedCapacity = 0
	s.clamps++
	return true, nil
}

func (s *memStore) Find(_ context.Context, key string) (*models.SlotCapacityRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.records[key]
	if !ok {
		return nil, repository.ErrNotFound
	}
	out := *rec
	return &out, nil
}

func (s *memStore) FindBySpaceAndDate(_ context.Context, spaceID, date string) ([]models.SlotCapacityRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.SlotCapacityRecord
	for _, rec := range s.records {
		if rec.SpaceID == spaceID && rec.Date == date {
			out = append(out, *rec)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartTime < out[j].StartTime })
	return out, nil
}

func (s *memStore) CompareAndSetBooked(_ context.Context, key string, expected, value int) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.records[key]
	if !ok || rec.BookedCapacity != expected {
		return false, nil
	}
	rec.BookedCapacity = value
	return true, nil
}

func (s *memStore) DeleteBefore(_ context.Context, date string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var n int64
	for key, rec := range s.records {
		if rec.Date < date {
			delete(s.records, key)
			n++
		}
	}
	return n, nil
}

func (s *memStore) EnsureIndexes(context.Context) error { return nil }

func (s *memStore) booked(key string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if rec, ok := s.records[key]; ok {
		return rec.BookedCapacity
	}
	return 0
}

// setBooked forces a counter value, simulating drift.
func (s *memStore) setBooked(key string, v int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[key].BookedCapacity = v
}
