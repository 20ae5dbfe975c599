package schedule

import (
	"context"
	"testing"
)

func TestConflictChecker(t *testing.T) {
	ctx := context.Background()
	m := NewMemorySource()
	checker := NewConflictChecker(m.FindOverlapping)

	held := newReservation(1, "workshop", "2026-02-06T10:00:00Z", "2026-02-06T14:00:00Z")
	if err := m.Create(ctx, held); err != nil {
		t.Fatalf("Create: %v", err)
	}

	t.Run("reports overlap window", func(t *testing.T) {
		conflicts, err := checker.Check(ctx, 1,
			parseTime(t, "2026-02-06T12:00:00Z"), parseTime(t, "2026-02-06T16:00:00Z"))
		if err != nil {
			t.Fatalf("Check: %v", err)
		}
		if len(conflicts) != 1 {
			t.Fatalf("Check returned %d conflicts, want 1", len(conflicts))
		}

		c := conflicts[0]
		if c.ReservationID != held.ID || c.Title != "workshop" {
			t.Errorf("conflict identifies %d %q, want %d %q", c.ReservationID, c.Title, held.ID, "workshop")
		}
		if !c.OverlapStart.Equal(parseTime(t, "2026-02-06T12:00:00Z")) {
			t.Errorf("OverlapStart = %v, want 12:00", c.OverlapStart)
		}
		if !c.OverlapEnd.Equal(parseTime(t, "2026-02-06T14:00:00Z")) {
			t.Errorf("OverlapEnd = %v, want 14:00", c.OverlapEnd)
		}
	})

	t.Run("clear window has no conflicts", func(t *testing.T) {
		has, err := checker.HasConflict(ctx, 1,
			parseTime(t, "2026-02-07T10:00:00Z"), parseTime(t, "2026-02-07T11:00:00Z"))
		if err != nil {
			t.Fatalf("HasConflict: %v", err)
		}
		if has {
			t.Error("HasConflict = true for a clear window")
		}
	})

	t.Run("other owners do not conflict", func(t *testing.T) {
		has, err := checker.HasConflict(ctx, 2,
			parseTime(t, "2026-02-06T10:00:00Z"), parseTime(t, "2026-02-06T14:00:00Z"))
		if err != nil {
			t.Fatalf("HasConflict: %v", err)
		}
		if has {
			t.Error("HasConflict = true across owners")
		}
	})
}
