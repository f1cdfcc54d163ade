package domain

import "errors"

// ErrNotFound is returned by repo functions when the requested record does
// not exist in the database.
// Handlers should map this to HTTP 404.
var ErrNotFound = errors.New("not found")
