package response

import (
	"time"

	"fitness-booking/internal/data/entity"
	"fitness-booking/pkg/timewindow"
)

type BookingResponse struct {
	ID            string    `json:"id"`
	ClassID       string    `json:"class_id"`
	ClassName     string    `json:"class_name,omitempty"`
	Instructor    string    `json:"instructor,omitempty"`
	ClassTime     string    `json:"class_time,omitempty"`
	ClientName    string    `json:"client_name"`
	ClientEmail   string    `json:"client_email"`
	BookedAt      time.Time `json:"booked_at"`
	BookedAtLocal string    `json:"booked_at_local"`
}

// BookingCreatedResponse is the accept outcome of the eligibility pipeline:
// the booking that was persisted and the class capacity left after it.
type BookingCreatedResponse struct {
	Booking        BookingResponse `json:"booking"`
	SlotsRemaining int             `json:"slots_remaining"`
}

// BookingToResponse renders a booking in the client's timezone. class may be
// nil when the offering could not be loaded for display.
func BookingToResponse(booking *entity.Booking, class *entity.Class, loc *time.Location) BookingResponse {
	resp := BookingResponse{
		ID:            booking.ID.String(),
		ClassID:       booking.ClassID.String(),
		ClientName:    booking.ClientName,
		ClientEmail:   booking.ClientEmail,
		BookedAt:      booking.CreatedAt.UTC(),
		BookedAtLocal: timewindow.FormatLocal(booking.CreatedAt, loc),
	}

	if class != nil {
		resp.ClassName = class.Name
		resp.Instructor = class.Instructor
		resp.ClassTime = timewindow.FormatLocal(class.StartTime, loc)
	}

	return resp
}
