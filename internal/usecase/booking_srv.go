package usecase

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"fitness-booking/internal/data/entity"
	"fitness-booking/internal/data/repository"
	"fitness-booking/internal/dto/request"
	"fitness-booking/internal/dto/response"
	"fitness-booking/pkg/timewindow"
	"fitness-booking/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type BookingService interface {
	// CreateBooking runs the eligibility pipeline for one booking attempt.
	// now is the booking instant in UTC, loc the client timezone used for
	// the daily and weekly limit windows. Rejections come back as
	// *Rejection; anything else is an infrastructure error.
	CreateBooking(ctx context.Context, req *request.CreateBookingRequest, now time.Time, loc *time.Location) (*response.BookingCreatedResponse, error)

	GetBookingsByEmail(ctx context.Context, email string, page *request.PaginatedRequest, loc *time.Location) (*response.PaginatedResponse[response.BookingResponse], error)
}

type bookingService struct {
	repo   *repository.Repository
	limits utils.BookingConfig
	log    *zap.Logger
}

func NewBookingService(repo *repository.Repository, limits utils.BookingConfig, log *zap.Logger) BookingService {
	return &bookingService{
		repo:   repo,
		limits: limits,
		log:    log.With(zap.String("service", "booking")),
	}
}

func (s *bookingService) CreateBooking(ctx context.Context, req *request.CreateBookingRequest, now time.Time, loc *time.Location) (*response.BookingCreatedResponse, error) {
	// Required fields, reported together in declared order.
	var missing []string
	if req.ClassID == "" {
		missing = append(missing, "class_id")
	}
	if req.ClientName == "" {
		missing = append(missing, "client_name")
	}
	if req.ClientEmail == "" {
		missing = append(missing, "client_email")
	}
	if len(missing) > 0 {
		return nil, reject("missing fields: "+strings.Join(missing, ", "), http.StatusBadRequest)
	}

	if !utils.IsValidName(req.ClientName) {
		return nil, reject("name must contain only letters and spaces", http.StatusBadRequest)
	}

	if !utils.IsValidEmail(req.ClientEmail) {
		return nil, reject("invalid email format", http.StatusBadRequest)
	}

	// An email keeps the client name it was first used with.
	existingName, found, err := s.repo.Booking.FindLatestNameByEmail(ctx, req.ClientEmail)
	if err != nil {
		return nil, fmt.Errorf("check email identity: %w", err)
	}
	if found && existingName != req.ClientName {
		s.log.Warn("Booking denied, email bound to another name",
			zap.String("client_email", req.ClientEmail),
		)
		return nil, reject("email already in use", http.StatusBadRequest)
	}

	// A malformed ID cannot reference an existing class.
	classID, parseErr := uuid.Parse(req.ClassID)

	var booking *entity.Booking
	var slotsRemaining int
	var class *entity.Class

	// Existence, capacity, limit, and duplicate checks run against the
	// locked class row so two attempts at the last slot serialize instead
	// of both passing the capacity check.
	err = s.repo.Tx.RunSerialized(ctx, func(r *repository.Repository) error {
		if parseErr != nil {
			return reject("class not found", http.StatusNotFound)
		}

		var err error
		class, err = r.Class.FindByIDForUpdate(ctx, classID)
		if err != nil {
			return fmt.Errorf("fetch class: %w", err)
		}
		if class == nil {
			return reject("class not found", http.StatusNotFound)
		}

		if class.SlotsAvailable <= 0 {
			return reject("no slots available", http.StatusBadRequest)
		}

		dayStart, dayEnd := timewindow.DailyBounds(now, loc)
		dailyCount, err := r.Booking.CountByEmailInRange(ctx, req.ClientEmail, dayStart, dayEnd)
		if err != nil {
			return fmt.Errorf("count daily bookings: %w", err)
		}
		if dailyCount >= s.limits.DailyLimit {
			s.log.Warn("Booking denied, daily limit exceeded",
				zap.String("client_email", req.ClientEmail),
				zap.Int("count", dailyCount),
				zap.String("timezone", loc.String()),
			)
			return reject("daily limit exceeded", http.StatusBadRequest)
		}

		weekStart, weekEnd := timewindow.WeeklyBounds(now, loc)
		weeklyCount, err := r.Booking.CountByEmailInRange(ctx, req.ClientEmail, weekStart, weekEnd)
		if err != nil {
			return fmt.Errorf("count weekly bookings: %w", err)
		}
		if weeklyCount >= s.limits.WeeklyLimit {
			s.log.Warn("Booking denied, weekly limit exceeded",
				zap.String("client_email", req.ClientEmail),
				zap.Int("count", weeklyCount),
				zap.String("timezone", loc.String()),
			)
			return reject("weekly limit exceeded", http.StatusBadRequest)
		}

		alreadyBooked, err := r.Booking.ExistsByClassAndEmail(ctx, classID, req.ClientEmail)
		if err != nil {
			return fmt.Errorf("check duplicate booking: %w", err)
		}
		if alreadyBooked {
			return reject("already booked this class", http.StatusBadRequest)
		}

		booking = &entity.Booking{
			BaseSimple: entity.BaseSimple{
				ID:        uuid.New(),
				CreatedAt: now.UTC(),
			},
			ClassID:     classID,
			ClientName:  req.ClientName,
			ClientEmail: req.ClientEmail,
		}

		if err := r.Booking.Create(ctx, booking); err != nil {
			return fmt.Errorf("create booking: %w", err)
		}

		slotsRemaining, err = r.Class.DecrementSlots(ctx, classID)
		if err != nil {
			return fmt.Errorf("decrement slots: %w", err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("Booking created",
		zap.String("booking_id", booking.ID.String()),
		zap.String("class_id", classID.String()),
		zap.String("client_email", req.ClientEmail),
		zap.Int("slots_remaining", slotsRemaining),
	)

	bookingResp := response.BookingToResponse(booking, class, loc)
	return &response.BookingCreatedResponse{
		Booking:        bookingResp,
		SlotsRemaining: slotsRemaining,
	}, nil
}

func (s *bookingService) GetBookingsByEmail(ctx context.Context, email string, page *request.PaginatedRequest, loc *time.Location) (*response.PaginatedResponse[response.BookingResponse], error) {
	if email == "" {
		return nil, reject("email is required", http.StatusBadRequest)
	}
	if !utils.IsValidEmail(email) {
		return nil, reject("invalid email format", http.StatusBadRequest)
	}

	bookings, err := s.repo.Booking.FindByEmail(ctx, email, page.Limit(), page.Offset())
	if err != nil {
		s.log.Error("Failed to get bookings",
			zap.Error(err),
			zap.String("client_email", email),
		)
		return nil, fmt.Errorf("get bookings: %w", err)
	}

	total, err := s.repo.Booking.CountByEmail(ctx, email)
	if err != nil {
		s.log.Error("Failed to count bookings", zap.Error(err))
		return nil, fmt.Errorf("count bookings: %w", err)
	}

	if total == 0 {
		return nil, reject("no bookings found", http.StatusNotFound)
	}

	bookingResponses := make([]response.BookingResponse, len(bookings))
	for i, booking := range bookings {
		class, _ := s.repo.Class.FindByID(ctx, booking.ClassID)
		bookingResponses[i] = response.BookingToResponse(booking, class, loc)
	}

	s.log.Info("Bookings retrieved",
		zap.String("client_email", email),
		zap.Int("count", len(bookings)),
		zap.Int64("total", total),
	)

	return response.NewPaginatedResponse(bookingResponses, page.Page, page.PerPage, total), nil
}
