// Package repository implements data access for the tutors and
// bookings collections and the admin account tables.  Sentinel errors
// defined here let handlers map failure scenarios to HTTP codes
// without inspecting driver errors.
package repository

import "errors"

// ErrNotFound is returned when an operation targets a record that does
// not exist, e.g. updating a deleted tutor or creating a booking whose
// tutor reference is dangling.  Handlers translate this into 404 (or
// 400 for a dangling reference on create).
var ErrNotFound = errors.New("not found")

// ErrConflict is returned when an operation cannot proceed because of
// dependent records, such as deleting a tutor that still has bookings.
// Handlers translate this into 409.
var ErrConflict = errors.New("conflict")

// ErrEmailExists is returned when registering an admin with an email
// that is already taken.  Handlers translate this into 409.
var ErrEmailExists = errors.New("email already exists")
