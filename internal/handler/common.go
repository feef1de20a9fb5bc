// Package handler contains the HTTP handlers: auth, desk administration,
// booking creation and the availability calendar.
package handler

import (
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
)

// dbTimeout bounds every database round-trip triggered by a request.
const dbTimeout = 5 * time.Second

// getUserID extracts the authenticated user's ID injected by the JWT
// middleware.  JSON numbers decode as float64; string subjects are parsed
// for tolerance.
func getUserID(c echo.Context) (uint64, bool) {
	switch v := c.Get("user_id").(type) {
	case float64:
		return uint64(v), true
	case uint64:
		return v, true
	case string:
		if n, err := strconv.ParseUint(v, 10, 64); err == nil {
			return n, true
		}
	}
	return 0, false
}

// pathID parses a numeric path parameter.
func pathID(c echo.Context, name string) (uint64, bool) {
	n, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || n == 0 {
		return 0, false
	}
	return n, true
}
