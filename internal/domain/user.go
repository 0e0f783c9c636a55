package domain

import (
	"fmt"
	"time"
)

// Role is the closed set of user roles known to the system.
type Role string

const (
	RolePassenger Role = "passenger"
	RoleDriver    Role = "driver"
	RoleAdmin     Role = "admin"
)

// ParseRole validates a raw role string against the closed set.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RolePassenger, RoleDriver, RoleAdmin:
		return Role(s), nil
	default:
		return "", fmt.Errorf("unknown role %q", s)
	}
}

// User is a directory entry. Users are owned by the external user directory;
// this service only reads them to resolve roles and display names.
type User struct {
	ID        string
	Name      string
	Role      Role
	CreatedAt time.Time
}
