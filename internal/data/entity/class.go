package entity

import (
	"time"
)

// Class is a bookable fitness class offering. SlotsAvailable is never
// negative; it only goes down, by one, on a successful booking.
type Class struct {
	Base
	Name           string    `db:"name"`
	Instructor     string    `db:"instructor"`
	StartTime      time.Time `db:"start_time"`
	SlotsAvailable int       `db:"slots_available"`
}
