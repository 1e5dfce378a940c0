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

type BookingRepository interface {
	Create(ctx context.Context, booking *entity.Booking) error
	FindByEmail(ctx context.Context, email string, limit, offset int) ([]*entity.Booking, error)
	CountByEmail(ctx context.Context, email string) (int64, error)

	// Business queries
	CountByEmailInRange(ctx context.Context, email string, start, end time.Time) (int, error)
	ExistsByClassAndEmail(ctx context.Context, classID uuid.UUID, email string) (bool, error)
	FindLatestNameByEmail(ctx context.Context, email string) (string, bool, error)
}

type bookingRepository struct {
	db  database.Querier
	log *zap.Logger
}

func NewBookingRepository(db database.Querier, log *zap.Logger) BookingRepository {
	return &bookingRepository{
		db:  db,
		log: log.With(zap.String("repository", "booking")),
	}
}

func (r *bookingRepository) Create(ctx context.Context, booking *entity.Booking) error {
	query := `
		INSERT INTO bookings (id, class_id, client_name, client_email, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := r.db.Exec(ctx, query,
		booking.ID,
		booking.ClassID,
		booking.ClientName,
		booking.ClientEmail,
		booking.CreatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create booking",
			zap.Error(err),
			zap.String("class_id", booking.ClassID.String()),
			zap.String("client_email", booking.ClientEmail),
		)
		return fmt.Errorf("create booking for %s: %w", booking.ClientEmail, err)
	}

	return nil
}

func (r *bookingRepository) FindByEmail(ctx context.Context, email string, limit, offset int) ([]*entity.Booking, error) {
	query := `
		SELECT id, class_id, client_name, client_email, created_at
		FROM bookings
		WHERE client_email = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.db.Query(ctx, query, email, limit, offset)
	if err != nil {
		r.log.Error("Failed to find bookings by email",
			zap.Error(err),
			zap.String("client_email", email),
			zap.Int("limit", limit),
			zap.Int("offset", offset),
		)
		return nil, fmt.Errorf("find bookings by email %s: %w", email, err)
	}
	defer rows.Close()

	var bookings []*entity.Booking
	for rows.Next() {
		var booking entity.Booking
		err := rows.Scan(
			&booking.ID,
			&booking.ClassID,
			&booking.ClientName,
			&booking.ClientEmail,
			&booking.CreatedAt,
		)
		if err != nil {
			r.log.Error("Failed to scan booking row", zap.Error(err))
			return nil, fmt.Errorf("scan booking row: %w", err)
		}
		bookings = append(bookings, &booking)
	}

	return bookings, nil
}

func (r *bookingRepository) CountByEmail(ctx context.Context, email string) (int64, error) {
	query := `SELECT COUNT(*) FROM bookings WHERE client_email = $1`

	var count int64
	err := r.db.QueryRow(ctx, query, email).Scan(&count)
	if err != nil {
		r.log.Error("Failed to count bookings by email",
			zap.Error(err),
			zap.String("client_email", email),
		)
		return 0, fmt.Errorf("count bookings by email %s: %w", email, err)
	}

	return count, nil
}

// CountByEmailInRange counts bookings in the half-open window [start, end).
func (r *bookingRepository) CountByEmailInRange(ctx context.Context, email string, start, end time.Time) (int, error) {
	query := `
		SELECT COUNT(*)
		FROM bookings
		WHERE client_email = $1 AND created_at >= $2 AND created_at < $3
	`

	var count int
	err := r.db.QueryRow(ctx, query, email, start, end).Scan(&count)
	if err != nil {
		r.log.Error("Failed to count bookings in range",
			zap.Error(err),
			zap.String("client_email", email),
			zap.Time("start", start),
			zap.Time("end", end),
		)
		return 0, fmt.Errorf("count bookings for %s in range: %w", email, err)
	}

	return count, nil
}

func (r *bookingRepository) ExistsByClassAndEmail(ctx context.Context, classID uuid.UUID, email string) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM bookings WHERE class_id = $1 AND client_email = $2)`

	var exists bool
	err := r.db.QueryRow(ctx, query, classID, email).Scan(&exists)
	if err != nil {
		r.log.Error("Failed to check booking existence",
			zap.Error(err),
			zap.String("class_id", classID.String()),
			zap.String("client_email", email),
		)
		return false, fmt.Errorf("check booking for class %s and %s: %w", classID.String(), email, err)
	}

	return exists, nil
}

// FindLatestNameByEmail returns the client name bound to an email, if any.
// The second return is false when the email has never booked.
func (r *bookingRepository) FindLatestNameByEmail(ctx context.Context, email string) (string, bool, error) {
	query := `
		SELECT client_name
		FROM bookings
		WHERE client_email = $1
		ORDER BY created_at DESC
		LIMIT 1
	`

	var name string
	err := r.db.QueryRow(ctx, query, email).Scan(&name)
	if err == pgx.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		r.log.Error("Failed to find client name by email",
			zap.Error(err),
			zap.String("client_email", email),
		)
		return "", false, fmt.Errorf("find client name for %s: %w", email, err)
	}

	return name, true, nil
}
