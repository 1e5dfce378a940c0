package adaptor

import (
	"errors"
	"net/http"

	"fitness-booking/internal/usecase"
	"fitness-booking/pkg/utils"

	"go.uber.org/zap"
)

type Handler struct {
	Class   *ClassHandler
	Booking *BookingHandler
}

func NewHandler(service *usecase.Service, log *zap.Logger) *Handler {
	return &Handler{
		Class:   NewClassHandler(service.Class, log),
		Booking: NewBookingHandler(service.Booking, log),
	}
}

// respondServiceError maps a business rejection to its own status code;
// everything else is an infrastructure failure.
func respondServiceError(w http.ResponseWriter, log *zap.Logger, err error, operation string) {
	var rejection *usecase.Rejection
	if errors.As(err, &rejection) {
		log.Warn(operation+" rejected",
			zap.String("reason", rejection.Reason),
			zap.Int("status", rejection.Status),
		)
		utils.ResponseError(w, rejection.Status, rejection.Reason)
		return
	}

	log.Error("Failed to "+operation,
		zap.Error(err),
		zap.String("operation", operation),
	)
	utils.ResponseInternalError(w, "Internal server error")
}
