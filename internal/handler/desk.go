package handler

import (
	"context"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/seatly/desk-reservation/internal/model"
	"github.com/seatly/desk-reservation/internal/store"
	"github.com/seatly/desk-reservation/internal/timeutil"
)

// DeskHandler exposes desk administration: creating desks and listing the
// desk grid.
type DeskHandler struct {
	Desks store.DeskStore
}

func NewDeskHandler(d store.DeskStore) *DeskHandler {
	return &DeskHandler{Desks: d}
}

type createDeskReq struct {
	Name     string  `json:"name"`
	Location *string `json:"location"`
}

type deskResp struct {
	ID        uint64  `json:"id"`
	Name      string  `json:"name"`
	Location  *string `json:"location,omitempty"`
	CreatedAt string  `json:"createdAt,omitempty"`
}

func toDeskResp(d model.Desk) deskResp {
	out := deskResp{ID: d.ID, Name: d.Name, Location: d.Location}
	if !d.CreatedAt.IsZero() {
		out.CreatedAt = d.CreatedAt.Format(timeutil.Layout)
	}
	return out
}

// CreateDesk registers a new desk.
func (h *DeskHandler) CreateDesk(c echo.Context) error {
	var req createDeskReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid body"})
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "name is required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	d := model.Desk{Name: req.Name, Location: req.Location}
	if err := h.Desks.Create(ctx, &d); err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "1062") {
			return c.JSON(http.StatusConflict, echo.Map{"message": "desk name already exists"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "create desk failed"})
	}
	return c.JSON(http.StatusCreated, toDeskResp(d))
}

// ListDesks returns all desks ordered by ID.
func (h *DeskHandler) ListDesks(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	desks, err := h.Desks.List(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "list desks failed"})
	}
	out := make([]deskResp, 0, len(desks))
	for _, d := range desks {
		out = append(out, toDeskResp(d))
	}
	return c.JSON(http.StatusOK, echo.Map{"desks": out})
}
