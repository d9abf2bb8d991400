package network

import "errors"

var (
	// ErrNotFound is returned when a station or line identifier is unknown
	ErrNotFound = errors.New("not found")

	// ErrInvalidData is returned when reference data is malformed or referentially inconsistent
	ErrInvalidData = errors.New("invalid data")

	// ErrNoRoute is returned when two known stations are not connected
	ErrNoRoute = errors.New("no route")
)
