package platform

import "github.com/google/uuid"

// IDGenerator produces identifiers for records created on the caller's behalf
type IDGenerator interface {
	NewID() string
}

// UUIDGenerator issues random (v4) UUIDs
type UUIDGenerator struct{}

func (UUIDGenerator) NewID() string {
	return uuid.New().String()
}
