package response

import (
	"time"

	"fitness-booking/internal/data/entity"
	"fitness-booking/pkg/timewindow"
)

type ClassResponse struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Instructor     string    `json:"instructor"`
	StartTime      string    `json:"start_time"`
	StartTimeUTC   time.Time `json:"start_time_utc"`
	SlotsAvailable int       `json:"slots_available"`
}

// ClassToResponse renders the class with its start time as wall-clock time
// in the client's timezone.
func ClassToResponse(class *entity.Class, loc *time.Location) ClassResponse {
	return ClassResponse{
		ID:             class.ID.String(),
		Name:           class.Name,
		Instructor:     class.Instructor,
		StartTime:      timewindow.FormatLocal(class.StartTime, loc),
		StartTimeUTC:   class.StartTime.UTC(),
		SlotsAvailable: class.SlotsAvailable,
	}
}
