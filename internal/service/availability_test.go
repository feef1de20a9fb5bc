package service

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/seatly/desk-reservation/internal/model"
)

func TestListAvailabilityConcreteScenario(t *testing.T) {
	// One booking 09:00-09:30; querying 09:00-10:30 yields three slots
	// with only the first booked.
	existing := model.Booking{
		DeskID:  1,
		UserID:  99,
		StartAt: time.Date(2025, 1, 6, 9, 0, 0, 0, time.UTC),
		EndAt:   time.Date(2025, 1, 6, 9, 30, 0, 0, time.UTC),
	}
	engine := NewBookingEngine(newFakeStore(existing))

	slots, err := engine.ListAvailability(context.Background(), 1,
		time.Date(2025, 1, 6, 9, 0, 0, 0, time.UTC),
		time.Date(2025, 1, 6, 10, 30, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("ListAvailability error: %v", err)
	}
	want := []AvailabilitySlot{
		{StartAt: time.Date(2025, 1, 6, 9, 0, 0, 0, time.UTC), EndAt: time.Date(2025, 1, 6, 9, 30, 0, 0, time.UTC), Status: StatusBooked},
		{StartAt: time.Date(2025, 1, 6, 9, 30, 0, 0, time.UTC), EndAt: time.Date(2025, 1, 6, 10, 0, 0, 0, time.UTC), Status: StatusAvailable},
		{StartAt: time.Date(2025, 1, 6, 10, 0, 0, 0, time.UTC), EndAt: time.Date(2025, 1, 6, 10, 30, 0, 0, time.UTC), Status: StatusAvailable},
	}
	if !reflect.DeepEqual(slots, want) {
		t.Fatalf("slots = %+v, want %+v", slots, want)
	}
}

func TestListAvailabilityWidensToHalfHourBoundaries(t *testing.T) {
	engine := NewBookingEngine(newFakeStore())

	// 09:10-09:50 widens to 09:00-10:00, two slots.
	slots, err := engine.ListAvailability(context.Background(), 1,
		time.Date(2025, 1, 6, 9, 10, 0, 0, time.UTC),
		time.Date(2025, 1, 6, 9, 50, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("ListAvailability error: %v", err)
	}
	if len(slots) != 2 {
		t.Fatalf("got %d slots, want 2", len(slots))
	}
	if !slots[0].StartAt.Equal(time.Date(2025, 1, 6, 9, 0, 0, 0, time.UTC)) {
		t.Fatalf("window start = %v, want 09:00", slots[0].StartAt)
	}
	if !slots[1].EndAt.Equal(time.Date(2025, 1, 6, 10, 0, 0, 0, time.UTC)) {
		t.Fatalf("window end = %v, want 10:00", slots[1].EndAt)
	}
}

func TestListAvailabilityDegenerateWindow(t *testing.T) {
	engine := NewBookingEngine(newFakeStore())

	// Equal endpoints on a boundary round to an empty window.
	at := time.Date(2025, 1, 6, 9, 0, 0, 0, time.UTC)
	slots, err := engine.ListAvailability(context.Background(), 1, at, at)
	if err != nil {
		t.Fatalf("ListAvailability error: %v", err)
	}
	if len(slots) != 0 {
		t.Fatalf("got %d slots for degenerate window, want 0", len(slots))
	}
}

func TestListAvailabilityRejectsInvertedWindow(t *testing.T) {
	engine := NewBookingEngine(newFakeStore())

	_, err := engine.ListAvailability(context.Background(), 1,
		time.Date(2025, 1, 6, 10, 0, 0, 0, time.UTC),
		time.Date(2025, 1, 6, 9, 0, 0, 0, time.UTC))
	var vErr *ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("error = %v (%T), want *ValidationError", err, err)
	}
}

func TestListAvailabilityBoundaryBookingDoesNotBleed(t *testing.T) {
	// A booking ending exactly at a slot start leaves that slot free.
	existing := model.Booking{
		DeskID:  1,
		UserID:  99,
		StartAt: time.Date(2025, 1, 6, 9, 0, 0, 0, time.UTC),
		EndAt:   time.Date(2025, 1, 6, 10, 0, 0, 0, time.UTC),
	}
	engine := NewBookingEngine(newFakeStore(existing))

	slots, err := engine.ListAvailability(context.Background(), 1,
		time.Date(2025, 1, 6, 9, 0, 0, 0, time.UTC),
		time.Date(2025, 1, 6, 11, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("ListAvailability error: %v", err)
	}
	wantStatus := []SlotStatus{StatusBooked, StatusBooked, StatusAvailable, StatusAvailable}
	if len(slots) != len(wantStatus) {
		t.Fatalf("got %d slots, want %d", len(slots), len(wantStatus))
	}
	for i, s := range slots {
		if s.Status != wantStatus[i] {
			t.Fatalf("slot %d (%v) status = %s, want %s", i, s.StartAt, s.Status, wantStatus[i])
		}
	}
}

func TestListAvailabilityIsIdempotent(t *testing.T) {
	existing := model.Booking{
		DeskID:  1,
		UserID:  99,
		StartAt: time.Date(2025, 1, 6, 9, 0, 0, 0, time.UTC),
		EndAt:   time.Date(2025, 1, 6, 9, 30, 0, 0, time.UTC),
	}
	f := newFakeStore(existing)
	engine := NewBookingEngine(f)

	start := time.Date(2025, 1, 6, 8, 0, 0, 0, time.UTC)
	end := time.Date(2025, 1, 6, 12, 0, 0, 0, time.UTC)
	first, err := engine.ListAvailability(context.Background(), 1, start, end)
	if err != nil {
		t.Fatalf("first ListAvailability error: %v", err)
	}
	second, err := engine.ListAvailability(context.Background(), 1, start, end)
	if err != nil {
		t.Fatalf("second ListAvailability error: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("repeated reads differ: %+v vs %+v", first, second)
	}
	if f.findCalls != 2 {
		t.Fatalf("findCalls = %d, want one fetch per query", f.findCalls)
	}
}

func TestExpandSlotsOrderAndCount(t *testing.T) {
	start := time.Date(2025, 2, 3, 9, 0, 0, 0, time.UTC)
	end := time.Date(2025, 2, 3, 10, 0, 0, 0, time.UTC)

	slots, err := expandSlots(start, end, &Recurrence{Occurrences: 3})
	if err != nil {
		t.Fatalf("expandSlots error: %v", err)
	}
	if len(slots) != 4 {
		t.Fatalf("got %d slots, want 4", len(slots))
	}
	for offset, s := range slots {
		if !s.start.Equal(start.AddDate(0, 0, 7*offset)) {
			t.Fatalf("slot %d start = %v, want %v", offset, s.start, start.AddDate(0, 0, 7*offset))
		}
		if s.end.Sub(s.start) != end.Sub(start) {
			t.Fatalf("slot %d duration changed", offset)
		}
	}

	// nil recurrence yields exactly the original slot.
	slots, err = expandSlots(start, end, nil)
	if err != nil {
		t.Fatalf("expandSlots error: %v", err)
	}
	if len(slots) != 1 || !slots[0].start.Equal(start) || !slots[0].end.Equal(end) {
		t.Fatalf("nil recurrence slots = %+v", slots)
	}
}
