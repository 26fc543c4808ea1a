// Package repository implements MySQL persistence for the catalog, the
// reservation ledger, users, subscriptions and refresh tokens.  Sentinel
// errors defined here let handlers map failures onto distinct HTTP
// responses without inspecting driver error strings.
package repository

import "errors"

// ErrItemNotFound is returned when a catalog item does not exist or
// belongs to another club.  Handlers translate it into a 404.
var ErrItemNotFound = errors.New("item not found")

// ErrReservationNotFound is returned when a reservation does not exist
// or belongs to another club.  Handlers translate it into a 404.
var ErrReservationNotFound = errors.New("reservation not found")

// ErrUserNotFound is returned for lookups of missing or foreign users.
var ErrUserNotFound = errors.New("user not found")

// ErrEmailExists is returned when registration hits the unique email
// index.  Handlers translate it into a 409.
var ErrEmailExists = errors.New("email already exists")

// ErrSubscriptionNotFound is returned when no subscription row exists
// for a club admin.
var ErrSubscriptionNotFound = errors.New("subscription not found")
