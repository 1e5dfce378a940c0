package request

import "time"

type CreateClassRequest struct {
	Name           string    `json:"name" validate:"required,max=200"`
	Instructor     string    `json:"instructor" validate:"required,max=100"`
	StartTime      time.Time `json:"start_time" validate:"required"`
	SlotsAvailable int       `json:"slots_available" validate:"min=0"`
}
