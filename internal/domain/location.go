package domain

import "time"

// Location is a named place served by routes. Names are globally unique.
type Location struct {
	ID        string
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}
