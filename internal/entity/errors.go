package entity

import "errors"

var (
	// Event errors
	ErrEventNotFound     = errors.New("event not found")
	ErrEventFull         = errors.New("event is at full capacity")
	ErrAlreadyRegistered = errors.New("user is already registered for this event")
	ErrCapacityExceeded  = errors.New("event capacity exceeds location capacity")
	ErrInvalidDateRange  = errors.New("event end date cannot be before start date")

	// Location errors
	ErrLocationNotFound = errors.New("location not found")

	// User errors
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailTaken         = errors.New("email is already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidRole        = errors.New("invalid role")

	// General errors
	ErrUnauthorized = errors.New("unauthorized access")
	ErrForbidden    = errors.New("forbidden operation")
)
