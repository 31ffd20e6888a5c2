package storage

import "errors"

// ErrNotFound is returned when a requested project does not exist on disk.
var ErrNotFound = errors.New("project not found")
