package repository

import "errors"

var (
	// ErrNotFound is returned when a requested entity does not exist.
	ErrNotFound = errors.New("entity not found")

	// ErrDuplicate is returned when a storage-level uniqueness constraint
	// rejects a write (plate number, location name, route pair).
	ErrDuplicate = errors.New("duplicate entity")

	// ErrReferenced is returned when a delete is blocked because other
	// entities still reference the target (protect-on-delete).
	ErrReferenced = errors.New("entity is referenced by other entities")
)
