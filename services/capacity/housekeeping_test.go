package capacity

import (
	"context"
	"testing"
	"time"
)

type fakeSums map[string]int

func (f fakeSums) SumConfirmedBySlotKey(context.Context, string, string) (map[string]int, error) {
	return f, nil
}

func seed(t *testing.T, m *Manager, start string, party int) {
	t.Helper()
	ok, err := m.TryReserve(context.Background(), testSpace, testDate, start, "", 20, party)
	if err != nil || !ok {
		t.Fatalf("seed %s: ok=%v err=%v", start, ok, err)
	}
}

func TestReconcileReportsAndRepairsDrift(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()
	m := NewManager(store, nil)

	seed(t, m, "18:00", 8)
	seed(t, m, "19:00", 4)
	k18 := SlotKey(testSpace, testDate, "18:00")
	k19 := SlotKey(testSpace, testDate, "19:00")
	k20 := SlotKey(testSpace, testDate, "20:00")

	sums := fakeSums{k18: 8, k19: 6, k20: 3}
	h := &Housekeeper{Repo: store, Reservations: sums}

	drifts, err := h.Reconcile(ctx, testSpace, testDate, false)
	if err != nil {
		t.Fatal(err)
	}
	if len(drifts) != 2 {
		t.Fatalf("drifts = %+v, want 2 entries", drifts)
	}
	if drifts[0].SlotKey != k19 || drifts[0].Counter != 4 || drifts[0].Confirmed != 6 || drifts[0].Repaired {
		t.Fatalf("unexpected drift %+v", drifts[0])
	}
	if drifts[1].SlotKey != k20 || drifts[1].Counter != 0 || drifts[1].Repaired {
		t.Fatalf("orphaned slot not reported: %+v", drifts[1])
	}
	if store.booked(k19) != 4 {
		t.Fatal("dry run modified a counter")
	}

	drifts, err = h.Reconcile(ctx, testSpace, testDate, true)
	if err != nil {
		t.Fatal(err)
	}
	if !drifts[0].Repaired {
		t.Fatalf("drift not repaired: %+v", drifts[0])
	}
	if store.booked(k19) != 6 {
		t.Fatalf("counter = %d after repair, want 6", store.booked(k19))
	}
	if store.booked(k18) != 8 {
		t.Fatal("repair touched a consistent counter")
	}
}

func TestReconcileKeepsSeatsOfUnsavedReservation(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()
	m := NewManager(store, nil)
	key := SlotKey(testSpace, testDate, "18:00")

	// Seats are taken but the reservation is not saved yet, so the confirmed sum is still empty.
	if ok, err := m.TryReserve(ctx, testSpace, testDate, "18:00", "20:00", 9, 8); err != nil || !ok {
		t.Fatalf("first reservation: ok=%v err=%v", ok, err)
	}
	h := &Housekeeper{Repo: store, Reservations: fakeSums{}, Location: time.UTC,
		Now: func() time.Time { return time.Date(2030, 5, 10, 12, 0, 0, 0, time.UTC) }}

	drifts, err := h.Reconcile(ctx, testSpace, testDate, true)
	if err != nil {
		t.Fatal(err)
	}
	if len(drifts) != 1 || drifts[0].Counter != 8 || drifts[0].Confirmed != 0 || drifts[0].Repaired {
		t.Fatalf("drifts = %+v, want one unrepaired surplus", drifts)
	}
	if got := store.booked(key); got != 8 {
		t.Fatalf("counter = %d after repair, want 8", got)
	}

	ok, err := m.TryReserve(ctx, testSpace, testDate, "18:00", "20:00", 9, 8)
	if err != nil {
		t.Fatal(err)
	}
	if ok {
		t.Fatal("second party of 8 admitted into a 9-seat slot")
	}
}

func TestReconcileLowersCounterOfPastDate(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()
	m := NewManager(store, nil)
	seed(t, m, "18:00", 8)
	key := SlotKey(testSpace, testDate, "18:00")

	h := &Housekeeper{Repo: store, Reservations: fakeSums{key: 5}, Location: time.UTC,
		Now: func() time.Time { return time.Date(2030, 5, 18, 9, 0, 0, 0, time.UTC) }}

	drifts, err := h.Reconcile(ctx, testSpace, testDate, true)
	if err != nil {
		t.Fatal(err)
	}
	if len(drifts) != 1 || !drifts[0].Repaired {
		t.Fatalf("drifts = %+v, want one repaired entry", drifts)
	}
	if got := store.booked(key); got != 5 {
		t.Fatalf("counter = %d after repair, want 5", got)
	}

	if _, err := h.Reconcile(ctx, testSpace, "2030/05/17", false); err == nil {
		t.Fatal("Reconcile accepted an invalid date")
	}
}

func TestReconcileNoDrift(t *testing.T) {
	store := newMemStore()
	m := NewManager(store, nil)
	seed(t, m, "18:00", 5)

	h := &Housekeeper{Repo: store, Reservations: fakeSums{SlotKey(testSpace, testDate, "18:00"): 5}}
	drifts, err := h.Reconcile(context.Background(), testSpace, testDate, true)
	if err != nil {
		t.Fatal(err)
	}
	if len(drifts) != 0 {
		t.Fatalf("drifts = %+v, want none", drifts)
	}
}

func TestReapDeletesPastRecords(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()
	m := NewManager(store, nil)

	for _, date := range []string{"2030-01-01", "2030-01-20", "2030-02-01"} {
		if ok, _ := m.TryReserve(ctx, testSpace, date, "18:00", "19:00", 10, 1); !ok {
			t.Fatal("seed rejected")
		}
	}

	now := time.Date(2030, 2, 10, 15, 0, 0, 0, time.UTC)
	h := &Housekeeper{
		Repo:          store,
		RetentionDays: 10,
		Location:      time.UTC,
		Now:           func() time.Time { return now },
	}
	if got := h.ReapCutoff(); got != "2030-01-31" {
		t.Fatalf("ReapCutoff = %s, want 2030-01-31", got)
	}

	n, err := h.Reap(ctx, "")
	if err != nil {
		t.Fatal(err)
	}
	if n != 2 {
		t.Fatalf("deleted %d, want 2", n)
	}
	if _, err := store.Find(ctx, SlotKey(testSpace, "2030-02-01", "18:00")); err != nil {
		t.Fatal("record inside the retention window was deleted")
	}

	if _, err := h.Reap(ctx, "not-a-date"); err == nil {
		t.Fatal("Reap accepted an invalid date")
	}
}
