package usecase

import (
	"context"
	"fmt"
	"time"

	"fitness-booking/internal/data/entity"
	"fitness-booking/internal/data/repository"
	"fitness-booking/internal/dto/request"
	"fitness-booking/internal/dto/response"
	"fitness-booking/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type ClassService interface {
	// ListUpcoming returns classes starting at or after now, soonest first.
	ListUpcoming(ctx context.Context, now time.Time, loc *time.Location) ([]response.ClassResponse, error)

	// CreateClass registers a new offering (admin/seed lifecycle).
	CreateClass(ctx context.Context, req *request.CreateClassRequest) (*response.ClassResponse, error)
}

type classService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewClassService(repo *repository.Repository, log *zap.Logger) ClassService {
	return &classService{
		repo: repo,
		log:  log.With(zap.String("service", "class")),
	}
}

func (s *classService) ListUpcoming(ctx context.Context, now time.Time, loc *time.Location) ([]response.ClassResponse, error) {
	classes, err := s.repo.Class.FindUpcoming(ctx, now)
	if err != nil {
		s.log.Error("Failed to list upcoming classes", zap.Error(err))
		return nil, fmt.Errorf("list upcoming classes: %w", err)
	}

	classResponses := make([]response.ClassResponse, len(classes))
	for i, class := range classes {
		classResponses[i] = response.ClassToResponse(class, loc)
	}

	return classResponses, nil
}

func (s *classService) CreateClass(ctx context.Context, req *request.CreateClassRequest) (*response.ClassResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create class validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	now := time.Now().UTC()
	class := &entity.Class{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Name:           req.Name,
		Instructor:     req.Instructor,
		StartTime:      req.StartTime.UTC(),
		SlotsAvailable: req.SlotsAvailable,
	}

	if err := s.repo.Class.Create(ctx, class); err != nil {
		s.log.Error("Failed to create class",
			zap.Error(err),
			zap.String("name", req.Name),
		)
		return nil, fmt.Errorf("create class: %w", err)
	}

	s.log.Info("Class created",
		zap.String("class_id", class.ID.String()),
		zap.String("name", class.Name),
		zap.Time("start_time", class.StartTime),
		zap.Int("slots_available", class.SlotsAvailable),
	)

	resp := response.ClassToResponse(class, time.UTC)
	return &resp, nil
}
