package capacity

import (
	"context"
	"errors"
	"sync"
	"testing"
)

const (
	testSpace = "space-1"
	testDate  = "2030-05-17"
	testStart = "18:00"
	testEnd   = "19:00"
)

func TestSlotKey(t *testing.T) {
	got := SlotKey("abc", "2030-01-02", "09:30")
	if got != "abc:2030-01-02:09:30" {
		t.Fatalf("SlotKey = %q", got)
	}
	if SlotKey("a", "2030-01-02", "10:00") == SlotKey("b", "2030-01-02", "10:00") {
		t.Fatal("keys of different spaces collide")
	}
}

func TestTryReserveContention(t *testing.T) {
	store := newMemStore()
	m := NewManager(store, nil)

	const callers = 10
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		successes int
		failures  int
	)
	start := make(chan struct{})
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			ok, err := m.TryReserve(context.Background(), testSpace, testDate, testStart, testEnd, 9, 3)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				t.Errorf("TryReserve error: %v", err)
				return
			}
			if ok {
				successes++
			} else {
				failures++
			}
		}()
	}
	close(start)
	wg.Wait()

	if successes != 3 || failures != 7 {
		t.Fatalf("successes=%d failures=%d, want 3 and 7", successes, failures)
	}
	if got := store.booked(SlotKey(testSpace, testDate, testStart)); got != 9 {
		t.Fatalf("booked = %d, want 9", got)
	}
}

func TestTryReserveBoundary(t *testing.T) {
	ctx := context.Background()
	m := NewManager(newMemStore(), nil)

	steps := []struct {
		partySize int
		want      bool
	}{
		{7, true},
		{4, false}, // one more than the remaining 3
		{3, true},  // exactly the remaining capacity
		{1, false},
	}
	for i, s := range steps {
		ok, err := m.TryReserve(ctx, testSpace, testDate, testStart, testEnd, 10, s.partySize)
		if err != nil {
			t.Fatalf("step %d: %v", i, err)
		}
		if ok != s.want {
			t.Fatalf("step %d: TryReserve(%d) = %v, want %v", i, s.partySize, ok, s.want)
		}
	}
}

func TestTryReserveRejectsNonPositiveParty(t *testing.T) {
	m := NewManager(newMemStore(), nil)
	for _, n := range []int{0, -2} {
		if _, err := m.TryReserve(context.Background(), testSpace, testDate, testStart, testEnd, 10, n); !errors.Is(err, ErrInvalidPartySize) {
			t.Fatalf("partySize %d: err = %v, want ErrInvalidPartySize", n, err)
		}
	}
}

func TestReleaseConservation(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()
	m := NewManager(store, nil)
	key := SlotKey(testSpace, testDate, testStart)

	if ok, _ := m.TryReserve(ctx, testSpace, testDate, testStart, testEnd, 20, 5); !ok {
		t.Fatal("first reserve rejected")
	}
	before := store.booked(key)

	if ok, _ := m.TryReserve(ctx, testSpace, testDate, testStart, testEnd, 20, 8); !ok {
		t.Fatal("second reserve rejected")
	}
	if err := m.Release(ctx, testSpace, testDate, testStart, 8); err != nil {
		t.Fatal(err)
	}
	if got := store.booked(key); got != before {
		t.Fatalf("booked after reserve+release = %d, want %d", got, before)
	}
}

func TestReleaseClampsNegative(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()
	m := NewManager(store, nil)
	key := SlotKey(testSpace, testDate, testStart)

	if ok, _ := m.TryReserve(ctx, testSpace, testDate, testStart, testEnd, 10, 2); !ok {
		t.Fatal("reserve rejected")
	}
	if err := m.Release(ctx, testSpace, testDate, testStart, 2); err != nil {
		t.Fatal(err)
	}
	// Double release.
	if err := m.Release(ctx, testSpace, testDate, testStart, 2); err != nil {
		t.Fatal(err)
	}
	if got := store.booked(key); got != 0 {
		t.Fatalf("booked = %d, want 0 after clamp", got)
	}
	if store.clamps != 1 {
		t.Fatalf("clamps = %d, want 1", store.clamps)
	}
	// A clamped slot must not have gained seats.
	if ok, _ := m.TryReserve(ctx, testSpace, testDate, testStart, testEnd, 10, 11); ok {
		t.Fatal("admitted more than maxCapacity after a double release")
	}
}

func TestReleaseMissingRecord(t *testing.T) {
	m := NewManager(newMemStore(), nil)
	if err := m.Release(context.Background(), testSpace, testDate, testStart, 4); err != nil {
		t.Fatalf("Release on missing record = %v, want nil", err)
	}
}

func TestMaxCapacityIsSnapshotAtCreation(t *testing.T) {
	ctx := context.Background()
	m := NewManager(newMemStore(), nil)

	if ok, _ := m.TryReserve(ctx, testSpace, testDate, testStart, testEnd, 9, 9); !ok {
		t.Fatal("initial reserve rejected")
	}
	// The space was edited to hold 20; the existing record keeps its ceiling.
	if ok, _ := m.TryReserve(ctx, testSpace, testDate, testStart, testEnd, 20, 1); ok {
		t.Fatal("existing record adopted the new maxCapacity")
	}
	// A different slot picks up the new capacity.
	if ok, _ := m.TryReserve(ctx, testSpace, testDate, "19:00", "20:00", 20, 15); !ok {
		t.Fatal("new record did not use the new maxCapacity")
	}
}

func TestGetBookedAndAvailable(t *testing.T) {
	ctx := context.Background()
	m := NewManager(newMemStore(), nil)

	avail, err := m.GetAvailable(ctx, testSpace, testDate, testStart, 12)
	if err != nil || avail != 12 {
		t.Fatalf("GetAvailable on empty slot = %d, %v; want 12", avail, err)
	}
	booked, err := m.GetBooked(ctx, testSpace, testDate, testStart)
	if err != nil || booked != 0 {
		t.Fatalf("GetBooked on empty slot = %d, %v; want 0", booked, err)
	}

	if ok, _ := m.TryReserve(ctx, testSpace, testDate, testStart, testEnd, 12, 5); !ok {
		t.Fatal("reserve rejected")
	}
	if booked, _ := m.GetBooked(ctx, testSpace, testDate, testStart); booked != 5 {
		t.Fatalf("GetBooked = %d, want 5", booked)
	}
	if avail, _ := m.GetAvailable(ctx, testSpace, testDate, testStart, 12); avail != 7 {
		t.Fatalf("GetAvailable = %d, want 7", avail)
	}
}

func TestInterleavedReserveReleaseStaysInBounds(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()
	m := NewManager(store, nil)
	key := SlotKey(testSpace, testDate, testStart)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(size int) {
			defer wg.Done()
			ok, err := m.TryReserve(ctx, testSpace, testDate, testStart, testEnd, 8, size)
			if err != nil {
				t.Error(err)
				return
			}
			if got := store.booked(key); got < 0 || got > 8 {
				t.Errorf("booked out of bounds: %d", got)
			}
			if ok {
				if err := m.Release(ctx, testSpace, testDate, testStart, size); err != nil {
					t.Error(err)
				}
			}
		}(i%4 + 1)
	}
	wg.Wait()

	if got := store.booked(key); got != 0 {
		t.Fatalf("booked = %d after all pairs released, want 0", got)
	}
	if store.clamps != 0 {
		t.Fatalf("unexpected clamps: %d", store.clamps)
	}
}
