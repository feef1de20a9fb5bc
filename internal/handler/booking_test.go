package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/seatly/desk-reservation/internal/model"
	"github.com/seatly/desk-reservation/internal/repository"
	"github.com/seatly/desk-reservation/internal/service"
	"github.com/seatly/desk-reservation/internal/store"
)

// fakeDesks serves a fixed desk set.
type fakeDesks struct {
	desks map[uint64]model.Desk
}

func (f *fakeDesks) Create(_ context.Context, d *model.Desk) error {
	d.ID = uint64(len(f.desks) + 1)
	f.desks[d.ID] = *d
	return nil
}

func (f *fakeDesks) GetByID(_ context.Context, id uint64) (model.Desk, error) {
	d, ok := f.desks[id]
	if !ok {
		return model.Desk{}, repository.ErrDeskNotFound
	}
	return d, nil
}

func (f *fakeDesks) List(_ context.Context) ([]model.Desk, error) {
	out := make([]model.Desk, 0, len(f.desks))
	for _, d := range f.desks {
		out = append(out, d)
	}
	return out, nil
}

// fakeBookings backs the engine and the my-bookings listing with an
// in-memory slice.  Writes inside InTx apply only when fn succeeds,
// mirroring transaction semantics.
type fakeBookings struct {
	bookings []model.Booking
	nextID   uint64
}

func (f *fakeBookings) FindOverlapping(_ context.Context, deskID uint64, start, end time.Time) ([]model.Booking, error) {
	var out []model.Booking
	for _, b := range f.bookings {
		if b.DeskID == deskID && b.StartAt.Before(end) && b.EndAt.After(start) {
			out = append(out, b)
		}
	}
	return out, nil
}

func (f *fakeBookings) InTx(_ context.Context, fn func(tx store.BookingTx) error) error {
	tx := &fakeBookingTx{parent: f}
	if err := fn(tx); err != nil {
		return err
	}
	f.bookings = append(f.bookings, tx.pending...)
	return nil
}

func (f *fakeBookings) ListByUser(_ context.Context, userID uint64) ([]model.Booking, error) {
	var out []model.Booking
	for _, b := range f.bookings {
		if b.UserID == userID {
			out = append(out, b)
		}
	}
	return out, nil
}

type fakeBookingTx struct {
	parent  *fakeBookings
	pending []model.Booking
}

func (tx *fakeBookingTx) ExistsOverlapping(_ context.Context, deskID uint64, start, end time.Time) (bool, error) {
	for _, b := range append(tx.parent.bookings, tx.pending...) {
		if b.DeskID == deskID && b.StartAt.Before(end) && b.EndAt.After(start) {
			return true, nil
		}
	}
	return false, nil
}

func (tx *fakeBookingTx) Insert(_ context.Context, b *model.Booking) error {
	tx.parent.nextID++
	b.ID = tx.parent.nextID
	tx.pending = append(tx.pending, *b)
	return nil
}

func newTestHandler() (*BookingHandler, *fakeBookings) {
	desks := &fakeDesks{desks: map[uint64]model.Desk{
		1: {ID: 1, Name: "Desk A"},
	}}
	bookings := &fakeBookings{}
	engine := service.NewBookingEngine(bookings)
	return NewBookingHandler(engine, desks, bookings), bookings
}

func doRequest(h echo.HandlerFunc, method, target, body string, userID uint64, params map[string]string) *httptest.ResponseRecorder {
	e := echo.New()
	var reader *strings.Reader
	if body != "" {
		reader = strings.NewReader(body)
	} else {
		reader = strings.NewReader("")
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if userID != 0 {
		c.Set("user_id", float64(userID))
	}
	for k, v := range params {
		c.SetParamNames(k)
		c.SetParamValues(v)
	}
	if err := h(c); err != nil {
		panic(err)
	}
	return rec
}

func TestCreateBookingReturnsCreatedSlots(t *testing.T) {
	h, _ := newTestHandler()

	body := `{"startAt":"2025-02-03T09:00","endAt":"2025-02-03T10:00","recurrence":{"type":"WEEKLY","occurrences":1}}`
	rec := doRequest(h.CreateBooking, http.MethodPost, "/v1/desks/1/bookings", body, 7, map[string]string{"id": "1"})

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201; body %s", rec.Code, rec.Body.String())
	}
	var resp struct {
		Bookings []struct {
			ID      uint64 `json:"id"`
			DeskID  uint64 `json:"deskId"`
			StartAt string `json:"startAt"`
			EndAt   string `json:"endAt"`
		} `json:"bookings"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if len(resp.Bookings) != 2 {
		t.Fatalf("bookings = %d, want 2", len(resp.Bookings))
	}
	if resp.Bookings[0].StartAt != "2025-02-03T09:00:00" {
		t.Errorf("first startAt = %q", resp.Bookings[0].StartAt)
	}
	if resp.Bookings[1].StartAt != "2025-02-10T09:00:00" {
		t.Errorf("second startAt = %q", resp.Bookings[1].StartAt)
	}
	if resp.Bookings[0].DeskID != 1 {
		t.Errorf("deskId = %d, want 1", resp.Bookings[0].DeskID)
	}
}

func TestCreateBookingConflictShape(t *testing.T) {
	h, bookings := newTestHandler()
	bookings.bookings = append(bookings.bookings, model.Booking{
		ID: 1, DeskID: 1, UserID: 2,
		StartAt: time.Date(2025, 2, 10, 9, 0, 0, 0, time.UTC),
		EndAt:   time.Date(2025, 2, 10, 10, 0, 0, 0, time.UTC),
	})

	body := `{"startAt":"2025-02-03T09:00","endAt":"2025-02-03T10:00","recurrence":{"type":"WEEKLY","occurrences":2}}`
	rec := doRequest(h.CreateBooking, http.MethodPost, "/v1/desks/1/bookings", body, 7, map[string]string{"id": "1"})

	if rec.Code != http.StatusConflict {
		t.Fatalf("status = %d, want 409; body %s", rec.Code, rec.Body.String())
	}
	var resp struct {
		Message    string `json:"message"`
		ConflictAt string `json:"conflictAt"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if resp.ConflictAt != "2025-02-10T09:00:00" {
		t.Errorf("conflictAt = %q, want 2025-02-10T09:00:00", resp.ConflictAt)
	}
	if resp.Message == "" {
		t.Error("message should not be empty")
	}

	// Nothing persisted from the aborted request.
	if len(bookings.bookings) != 1 {
		t.Errorf("stored bookings = %d, want only the pre-existing one", len(bookings.bookings))
	}
}

func TestCreateBookingValidation(t *testing.T) {
	h, _ := newTestHandler()

	cases := []struct {
		name string
		body string
	}{
		{"inverted interval", `{"startAt":"2025-02-03T10:00","endAt":"2025-02-03T09:00"}`},
		{"cross-day span", `{"startAt":"2025-02-03T23:00","endAt":"2025-02-04T01:00"}`},
		{"occurrences above cap", `{"startAt":"2025-02-03T09:00","endAt":"2025-02-03T10:00","recurrence":{"type":"WEEKLY","occurrences":4}}`},
		{"unsupported recurrence type", `{"startAt":"2025-02-03T09:00","endAt":"2025-02-03T10:00","recurrence":{"type":"DAILY","occurrences":1}}`},
		{"missing endAt", `{"startAt":"2025-02-03T09:00"}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := doRequest(h.CreateBooking, http.MethodPost, "/v1/desks/1/bookings", tc.body, 7, map[string]string{"id": "1"})
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want 400; body %s", rec.Code, rec.Body.String())
			}
			var resp struct {
				Message string `json:"message"`
			}
			if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
				t.Fatalf("unmarshal response: %v", err)
			}
			if resp.Message == "" {
				t.Error("message should not be empty")
			}
		})
	}
}

func TestCreateBookingUnknownDesk(t *testing.T) {
	h, _ := newTestHandler()

	body := `{"startAt":"2025-02-03T09:00","endAt":"2025-02-03T10:00"}`
	rec := doRequest(h.CreateBooking, http.MethodPost, "/v1/desks/99/bookings", body, 7, map[string]string{"id": "99"})

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404; body %s", rec.Code, rec.Body.String())
	}
}

func TestGetAvailabilityShape(t *testing.T) {
	h, bookings := newTestHandler()
	bookings.bookings = append(bookings.bookings, model.Booking{
		ID: 1, DeskID: 1, UserID: 2,
		StartAt: time.Date(2025, 2, 3, 9, 0, 0, 0, time.UTC),
		EndAt:   time.Date(2025, 2, 3, 9, 30, 0, 0, time.UTC),
	})

	rec := doRequest(h.GetAvailability, http.MethodGet,
		"/v1/desks/1/availability?startAt=2025-02-03T09:00&endAt=2025-02-03T10:30", "", 7,
		map[string]string{"id": "1"})

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200; body %s", rec.Code, rec.Body.String())
	}
	var slots []struct {
		StartAt string `json:"startAt"`
		EndAt   string `json:"endAt"`
		Status  string `json:"status"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &slots); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if len(slots) != 3 {
		t.Fatalf("slots = %d, want 3", len(slots))
	}
	wantStatus := []string{"BOOKED", "AVAILABLE", "AVAILABLE"}
	for i, s := range slots {
		if s.Status != wantStatus[i] {
			t.Errorf("slot %d status = %s, want %s", i, s.Status, wantStatus[i])
		}
	}
	if slots[0].StartAt != "2025-02-03T09:00:00" || slots[0].EndAt != "2025-02-03T09:30:00" {
		t.Errorf("slot 0 window = %s..%s", slots[0].StartAt, slots[0].EndAt)
	}
}

func TestGetAvailabilityBadWindow(t *testing.T) {
	h, _ := newTestHandler()

	rec := doRequest(h.GetAvailability, http.MethodGet,
		"/v1/desks/1/availability?startAt=not-a-date&endAt=2025-02-03T10:00", "", 7,
		map[string]string{"id": "1"})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}

	rec = doRequest(h.GetAvailability, http.MethodGet,
		"/v1/desks/1/availability?startAt=2025-02-03T10:00&endAt=2025-02-03T09:00", "", 7,
		map[string]string{"id": "1"})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("inverted window status = %d, want 400", rec.Code)
	}
}

func TestMyBookings(t *testing.T) {
	h, bookings := newTestHandler()
	bookings.bookings = append(bookings.bookings,
		model.Booking{ID: 1, DeskID: 1, UserID: 7,
			StartAt: time.Date(2025, 2, 3, 9, 0, 0, 0, time.UTC),
			EndAt:   time.Date(2025, 2, 3, 10, 0, 0, 0, time.UTC)},
		model.Booking{ID: 2, DeskID: 1, UserID: 8,
			StartAt: time.Date(2025, 2, 3, 11, 0, 0, 0, time.UTC),
			EndAt:   time.Date(2025, 2, 3, 12, 0, 0, 0, time.UTC)},
	)

	rec := doRequest(h.MyBookings, http.MethodGet, "/v1/my-bookings", "", 7, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var resp struct {
		Bookings []bookingResp `json:"bookings"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if len(resp.Bookings) != 1 || resp.Bookings[0].ID != 1 {
		t.Fatalf("bookings = %+v, want only user 7's booking", resp.Bookings)
	}
}
