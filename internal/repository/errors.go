// Package repository contains the MySQL data access layer.  This file
// defines sentinel error values shared across repositories so that
// handlers can map failure scenarios to HTTP outcomes without parsing
// driver errors themselves.
package repository

import "errors"

// ErrDeskNotFound indicates that a desk was not located in the DB.
// Handlers translate this into an HTTP 404 response.
var ErrDeskNotFound = errors.New("desk not found")

// ErrEmailExists is returned when user creation collides with an
// existing email.  Handlers translate this into an HTTP 409 response.
var ErrEmailExists = errors.New("email already exists")
