package handler

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/seatly/desk-reservation/internal/model"
	"github.com/seatly/desk-reservation/internal/queue"
	"github.com/seatly/desk-reservation/internal/repository"
	"github.com/seatly/desk-reservation/internal/service"
	"github.com/seatly/desk-reservation/internal/store"
	"github.com/seatly/desk-reservation/internal/timeutil"
)

// BookingHandler exposes booking creation, the availability calendar and
// the caller's booking list.
type BookingHandler struct {
	Engine   *service.BookingEngine
	Desks    store.DeskStore
	Bookings store.BookingLister
}

func NewBookingHandler(e *service.BookingEngine, d store.DeskStore, b store.BookingLister) *BookingHandler {
	return &BookingHandler{Engine: e, Desks: d, Bookings: b}
}

type recurrenceReq struct {
	Type        string `json:"type"`
	Occurrences int    `json:"occurrences"`
}

type createBookingReq struct {
	StartAt    timeutil.LocalTime `json:"startAt"`
	EndAt      timeutil.LocalTime `json:"endAt"`
	Recurrence *recurrenceReq     `json:"recurrence"`
}

type bookingResp struct {
	ID      uint64 `json:"id"`
	DeskID  uint64 `json:"deskId"`
	StartAt string `json:"startAt"`
	EndAt   string `json:"endAt"`
}

func toBookingResp(b model.Booking) bookingResp {
	return bookingResp{
		ID:      b.ID,
		DeskID:  b.DeskID,
		StartAt: b.StartAt.Format(timeutil.Layout),
		EndAt:   b.EndAt.Format(timeutil.Layout),
	}
}

type availabilityResp struct {
	StartAt string `json:"startAt"`
	EndAt   string `json:"endAt"`
	Status  string `json:"status"`
}

// CreateBooking reserves a desk for one interval, optionally repeated
// weekly.  All slots of a recurring request are persisted atomically; the
// first conflicting slot aborts the whole request with 409.
func (h *BookingHandler) CreateBooking(c echo.Context) error {
	deskID, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid desk id"})
	}
	userID, ok := getUserID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "unauthorized"})
	}

	var req createBookingReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid body"})
	}
	if req.StartAt.IsZero() || req.EndAt.IsZero() {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "startAt and endAt are required"})
	}

	var rec *service.Recurrence
	if req.Recurrence != nil {
		if req.Recurrence.Type != "WEEKLY" {
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "unsupported recurrence type"})
		}
		rec = &service.Recurrence{Occurrences: req.Recurrence.Occurrences}
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	desk, err := h.Desks.GetByID(ctx, deskID)
	if err != nil {
		if err == repository.ErrDeskNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "desk not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "load desk failed"})
	}

	created, err := h.Engine.CreateBooking(ctx, deskID, userID, req.StartAt.Time, req.EndAt.Time, rec)
	if err != nil {
		var ve *service.ValidationError
		if errors.As(err, &ve) {
			return c.JSON(http.StatusBadRequest, echo.Map{"message": ve.Error()})
		}
		var ce *service.ConflictError
		if errors.As(err, &ce) {
			log.Printf("booking conflict | desk_id=%d user_id=%d conflict_at=%s",
				deskID, userID, ce.ConflictAt.Format(timeutil.Layout))
			return c.JSON(http.StatusConflict, echo.Map{
				"message":    "desk is already booked for the requested time",
				"conflictAt": ce.ConflictAt.Format(timeutil.Layout),
			})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "create booking failed"})
	}

	log.Printf("booking created | desk_id=%d user_id=%d slots=%d first_start=%s",
		deskID, userID, len(created), created[0].StartAt.Format(timeutil.Layout))

	go publishCreated(desk, userID, created)

	out := make([]bookingResp, 0, len(created))
	for _, b := range created {
		out = append(out, toBookingResp(b))
	}
	return c.JSON(http.StatusCreated, echo.Map{"bookings": out})
}

// publishCreated emits the booking.created event.  Failures are logged
// inside the publisher and ignored; the booking already committed.
func publishCreated(desk model.Desk, userID uint64, created []model.Booking) {
	slots := make([]queue.EventSlot, 0, len(created))
	for _, b := range created {
		slots = append(slots, queue.EventSlot{
			BookingID: b.ID,
			StartAt:   b.StartAt.Format(timeutil.Layout),
			EndAt:     b.EndAt.Format(timeutil.Layout),
		})
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = queue.PublishBookingCreated(ctx, queue.BookingCreatedEvent{
		EventID:   uuid.NewString(),
		UserID:    userID,
		DeskID:    desk.ID,
		DeskName:  desk.Name,
		Slots:     slots,
		CreatedAt: time.Now().UTC().Format(time.RFC3339),
	})
}

// GetAvailability returns the desk's 30-minute availability calendar for
// the requested window.
func (h *BookingHandler) GetAvailability(c echo.Context) error {
	deskID, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid desk id"})
	}

	startAt, err := timeutil.ParseLocal(c.QueryParam("startAt"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid startAt"})
	}
	endAt, err := timeutil.ParseLocal(c.QueryParam("endAt"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid endAt"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	if _, err := h.Desks.GetByID(ctx, deskID); err != nil {
		if err == repository.ErrDeskNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "desk not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "load desk failed"})
	}

	slots, err := h.Engine.ListAvailability(ctx, deskID, startAt, endAt)
	if err != nil {
		var ve *service.ValidationError
		if errors.As(err, &ve) {
			return c.JSON(http.StatusBadRequest, echo.Map{"message": ve.Error()})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "list availability failed"})
	}

	out := make([]availabilityResp, 0, len(slots))
	for _, s := range slots {
		out = append(out, availabilityResp{
			StartAt: s.StartAt.Format(timeutil.Layout),
			EndAt:   s.EndAt.Format(timeutil.Layout),
			Status:  string(s.Status),
		})
	}
	return c.JSON(http.StatusOK, out)
}

// MyBookings lists the caller's bookings, newest first.
func (h *BookingHandler) MyBookings(c echo.Context) error {
	userID, ok := getUserID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "unauthorized"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	bookings, err := h.Bookings.ListByUser(ctx, userID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "list bookings failed"})
	}
	out := make([]bookingResp, 0, len(bookings))
	for _, b := range bookings {
		out = append(out, toBookingResp(b))
	}
	return c.JSON(http.StatusOK, echo.Map{"bookings": out})
}
