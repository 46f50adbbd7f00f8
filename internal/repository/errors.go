package repository

import "errors"

// ErrNotFound is returned by single-row finders when nothing matched.
var ErrNotFound = errors.New("not found")
