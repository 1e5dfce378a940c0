package repository

import (
	"context"
	"fmt"
	"time"

	"fitness-booking/internal/data/entity"
	"fitness-booking/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type ClassRepository interface {
	Create(ctx context.Context, class *entity.Class) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Class, error)

	// FindByIDForUpdate locks the class row for the rest of the transaction.
	// Only meaningful when the repository is transaction-bound.
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*entity.Class, error)

	FindUpcoming(ctx context.Context, now time.Time) ([]*entity.Class, error)
	DecrementSlots(ctx context.Context, id uuid.UUID) (int, error)
}

type classRepository struct {
	db  database.Querier
	log *zap.Logger
}

func NewClassRepository(db database.Querier, log *zap.Logger) ClassRepository {
	return &classRepository{
		db:  db,
		log: log.With(zap.String("repository", "class")),
	}
}

func (r *classRepository) Create(ctx context.Context, class *entity.Class) error {
	query := `
		INSERT INTO classes (id, name, instructor, start_time, slots_available, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.db.Exec(ctx, query,
		class.ID,
		class.Name,
		class.Instructor,
		class.StartTime,
		class.SlotsAvailable,
		class.CreatedAt,
		class.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create class",
			zap.Error(err),
			zap.String("name", class.Name),
		)
		return fmt.Errorf("create class %s: %w", class.Name, err)
	}

	return nil
}

func (r *classRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Class, error) {
	return r.findByID(ctx, id, false)
}

func (r *classRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*entity.Class, error) {
	return r.findByID(ctx, id, true)
}

func (r *classRepository) findByID(ctx context.Context, id uuid.UUID, forUpdate bool) (*entity.Class, error) {
	query := `
		SELECT id, name, instructor, start_time, slots_available, created_at, updated_at
		FROM classes
		WHERE id = $1
	`
	if forUpdate {
		query += " FOR UPDATE"
	}

	var class entity.Class
	err := r.db.QueryRow(ctx, query, id).Scan(
		&class.ID,
		&class.Name,
		&class.Instructor,
		&class.StartTime,
		&class.SlotsAvailable,
		&class.CreatedAt,
		&class.UpdatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find class by ID",
			zap.Error(err),
			zap.String("class_id", id.String()),
		)
		return nil, fmt.Errorf("find class by ID %s: %w", id.String(), err)
	}

	return &class, nil
}

func (r *classRepository) FindUpcoming(ctx context.Context, now time.Time) ([]*entity.Class, error) {
	query := `
		SELECT id, name, instructor, start_time, slots_available, created_at, updated_at
		FROM classes
		WHERE start_time >= $1
		ORDER BY start_time
	`

	rows, err := r.db.Query(ctx, query, now)
	if err != nil {
		r.log.Error("Failed to find upcoming classes",
			zap.Error(err),
			zap.Time("now", now),
		)
		return nil, fmt.Errorf("find upcoming classes: %w", err)
	}
	defer rows.Close()

	var classes []*entity.Class
	for rows.Next() {
		var class entity.Class
		err := rows.Scan(
			&class.ID,
			&class.Name,
			&class.Instructor,
			&class.StartTime,
			&class.SlotsAvailable,
			&class.CreatedAt,
			&class.UpdatedAt,
		)
		if err != nil {
			r.log.Error("Failed to scan class row", zap.Error(err))
			return nil, fmt.Errorf("scan class row: %w", err)
		}
		classes = append(classes, &class)
	}

	return classes, nil
}

func (r *classRepository) DecrementSlots(ctx context.Context, id uuid.UUID) (int, error) {
	query := `
		UPDATE classes
		SET slots_available = slots_available - 1, updated_at = NOW()
		WHERE id = $1 AND slots_available > 0
		RETURNING slots_available
	`

	var remaining int
	err := r.db.QueryRow(ctx, query, id).Scan(&remaining)
	if err == pgx.ErrNoRows {
		return 0, fmt.Errorf("class %s has no slots to decrement", id.String())
	}
	if err != nil {
		r.log.Error("Failed to decrement class slots",
			zap.Error(err),
			zap.String("class_id", id.String()),
		)
		return 0, fmt.Errorf("decrement slots for class %s: %w", id.String(), err)
	}

	return remaining, nil
}
