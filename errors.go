package linkshelf

import "errors"

var (
	// ErrConfiguration is returned when required startup configuration is missing or invalid
	ErrConfiguration = errors.New("invalid configuration")
	// ErrPathTraversal is returned when a requested path resolves outside the base directory
	ErrPathTraversal = errors.New("path traversal")
	// ErrMalformedPath is returned when a path segment has invalid percent-encoding
	ErrMalformedPath = errors.New("malformed path")
	// ErrNotFound is returned when a resource is not found
	ErrNotFound = errors.New("not found")
	// ErrNotDirectory is returned when a listing is requested for something that is not a directory
	ErrNotDirectory = errors.New("not a directory")
	// ErrFilesystem is returned when reading the filesystem fails
	ErrFilesystem = errors.New("filesystem error")
	// ErrClock is returned when the time source is unavailable
	ErrClock = errors.New("clock unavailable")
	// ErrInvalidInput is returned when input validation fails
	ErrInvalidInput = errors.New("invalid input")
	// ErrUnauthorized is returned when a signed link does not verify
	ErrUnauthorized = errors.New("unauthorized")
	// ErrExpired is returned when a signed link is past its expiry
	ErrExpired = errors.New("link expired")
)
