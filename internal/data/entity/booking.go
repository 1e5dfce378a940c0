package entity

import (
	"github.com/google/uuid"
)

// Booking records one slot taken in a class. CreatedAt is the booking
// instant in UTC, set once at creation. A (class, email) pair is booked
// at most once, and an email keeps the client name it was first used with.
type Booking struct {
	BaseSimple
	ClassID     uuid.UUID `db:"class_id"`
	ClientName  string    `db:"client_name"`
	ClientEmail string    `db:"client_email"`
}
