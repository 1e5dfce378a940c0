package usecase

import (
	"fitness-booking/internal/data/repository"
	"fitness-booking/pkg/utils"

	"go.uber.org/zap"
)

type Service struct {
	Class   ClassService
	Booking BookingService
}

func NewService(repo *repository.Repository, config *utils.Config, log *zap.Logger) *Service {
	return &Service{
		Class:   NewClassService(repo, log),
		Booking: NewBookingService(repo, config.Booking, log),
	}
}
