// Package seeder fills the store with sample classes and bookings for local
// development. All randomness comes from an explicitly seeded generator so
// runs are reproducible.
package seeder

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"fitness-booking/internal/data/entity"
	"fitness-booking/internal/data/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var classNames = []string{
	"Yoga", "Pilates", "Spin", "Boxing", "Crossfit",
	"Zumba", "Barre", "Kettlebell", "Stretching", "Bootcamp",
}

var firstNames = []string{
	"Alice", "Bob", "Carla", "Daniel", "Elena", "Frank",
	"Grace", "Hugo", "Irene", "Jonas", "Karen", "Liam",
}

var lastNames = []string{
	"Smith", "Johnson", "Garcia", "Miller", "Davis",
	"Martinez", "Lopez", "Wilson", "Anderson", "Taylor",
}

type Seeder struct {
	repo *repository.Repository
	rng  *rand.Rand
	log  *zap.Logger
}

// New builds a seeder around an explicit random source.
func New(repo *repository.Repository, rng *rand.Rand, log *zap.Logger) *Seeder {
	return &Seeder{
		repo: repo,
		rng:  rng,
		log:  log.With(zap.String("component", "seeder")),
	}
}

// Run creates numClasses upcoming classes in the next 30 days and up to
// bookingsPerClass bookings each, with globally unique emails.
func (s *Seeder) Run(ctx context.Context, numClasses, bookingsPerClass int) error {
	now := time.Now().UTC()
	usedEmails := make(map[string]bool)

	for i := 0; i < numClasses; i++ {
		class := &entity.Class{
			Base: entity.Base{
				ID:        uuid.New(),
				CreatedAt: now,
				UpdatedAt: now,
			},
			Name:           classNames[s.rng.Intn(len(classNames))],
			Instructor:     s.fullName(),
			StartTime:      now.Add(time.Duration(1+s.rng.Intn(30*24)) * time.Hour),
			SlotsAvailable: 5 + s.rng.Intn(16),
		}

		if err := s.repo.Class.Create(ctx, class); err != nil {
			return fmt.Errorf("seed class %s: %w", class.Name, err)
		}

		s.log.Info("Seeded class",
			zap.String("name", class.Name),
			zap.String("instructor", class.Instructor),
			zap.Time("start_time", class.StartTime),
			zap.Int("slots_available", class.SlotsAvailable),
		)

		created := 0
		for attempts := 0; created < bookingsPerClass && attempts < bookingsPerClass*3; attempts++ {
			name := s.fullName()
			email := s.email(name)

			if usedEmails[email] {
				continue
			}

			booking := &entity.Booking{
				BaseSimple: entity.BaseSimple{
					ID:        uuid.New(),
					CreatedAt: now,
				},
				ClassID:     class.ID,
				ClientName:  name,
				ClientEmail: email,
			}

			if err := s.repo.Booking.Create(ctx, booking); err != nil {
				return fmt.Errorf("seed booking for %s: %w", email, err)
			}

			usedEmails[email] = true
			created++

			s.log.Info("Seeded booking",
				zap.String("class", class.Name),
				zap.String("client_email", email),
			)
		}
	}

	return nil
}

func (s *Seeder) fullName() string {
	return firstNames[s.rng.Intn(len(firstNames))] + " " + lastNames[s.rng.Intn(len(lastNames))]
}

func (s *Seeder) email(name string) string {
	return fmt.Sprintf("%s%d@example.com", lowerFirst(name), s.rng.Intn(10000))
}

func lowerFirst(name string) string {
	for i, r := range name {
		if r == ' ' {
			name = name[:i]
			break
		}
	}
	out := []rune(name)
	if len(out) > 0 && out[0] >= 'A' && out[0] <= 'Z' {
		out[0] += 'a' - 'A'
	}
	return string(out)
}
