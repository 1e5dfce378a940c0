package usecase

import (
	"context"
	"errors"
	"net/http"
	"sort"
	"testing"
	"time"

	"fitness-booking/internal/data/entity"
	"fitness-booking/internal/data/repository"
	"fitness-booking/internal/dto/request"
	"fitness-booking/pkg/timewindow"
	"fitness-booking/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// memStore is a shared in-memory backing store for the stub repositories.
type memStore struct {
	classes  map[uuid.UUID]*entity.Class
	bookings []*entity.Booking
}

func newMemStore() *memStore {
	return &memStore{classes: make(map[uuid.UUID]*entity.Class)}
}

type stubClassRepo struct {
	store *memStore
}

func (r *stubClassRepo) Create(_ context.Context, class *entity.Class) error {
	r.store.classes[class.ID] = class
	return nil
}

func (r *stubClassRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Class, error) {
	return r.store.classes[id], nil
}

func (r *stubClassRepo) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*entity.Class, error) {
	return r.FindByID(ctx, id)
}

func (r *stubClassRepo) FindUpcoming(_ context.Context, now time.Time) ([]*entity.Class, error) {
	var upcoming []*entity.Class
	for _, class := range r.store.classes {
		if !class.StartTime.Before(now) {
			upcoming = append(upcoming, class)
		}
	}
	sort.Slice(upcoming, func(i, j int) bool {
		return upcoming[i].StartTime.Before(upcoming[j].StartTime)
	})
	return upcoming, nil
}

func (r *stubClassRepo) DecrementSlots(_ context.Context, id uuid.UUID) (int, error) {
	class, ok := r.store.classes[id]
	if !ok || class.SlotsAvailable <= 0 {
		return 0, errors.New("no slots to decrement")
	}
	class.SlotsAvailable--
	return class.SlotsAvailable, nil
}

type stubBookingRepo struct {
	store *memStore
}

func (r *stubBookingRepo) Create(_ context.Context, booking *entity.Booking) error {
	r.store.bookings = append(r.store.bookings, booking)
	return nil
}

func (r *stubBookingRepo) FindByEmail(_ context.Context, email string, limit, offset int) ([]*entity.Booking, error) {
	var matched []*entity.Booking
	for _, b := range r.store.bookings {
		if b.ClientEmail == email {
			matched = append(matched, b)
		}
	}
	sort.Slice(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})
	if offset >= len(matched) {
		return nil, nil
	}
	matched = matched[offset:]
	if limit < len(matched) {
		matched = matched[:limit]
	}
	return matched, nil
}

func (r *stubBookingRepo) CountByEmail(_ context.Context, email string) (int64, error) {
	var count int64
	for _, b := range r.store.bookings {
		if b.ClientEmail == email {
			count++
		}
	}
	return count, nil
}

func (r *stubBookingRepo) CountByEmailInRange(_ context.Context, email string, start, end time.Time) (int, error) {
	count := 0
	for _, b := range r.store.bookings {
		if b.ClientEmail == email && !b.CreatedAt.Before(start) && b.CreatedAt.Before(end) {
			count++
		}
	}
	return count, nil
}

func (r *stubBookingRepo) ExistsByClassAndEmail(_ context.Context, classID uuid.UUID, email string) (bool, error) {
	for _, b := range r.store.bookings {
		if b.ClassID == classID && b.ClientEmail == email {
			return true, nil
		}
	}
	return false, nil
}

func (r *stubBookingRepo) FindLatestNameByEmail(_ context.Context, email string) (string, bool, error) {
	var latest *entity.Booking
	for _, b := range r.store.bookings {
		if b.ClientEmail == email && (latest == nil || b.CreatedAt.After(latest.CreatedAt)) {
			latest = b
		}
	}
	if latest == nil {
		return "", false, nil
	}
	return latest.ClientName, true, nil
}

type stubTxRunner struct {
	repo *repository.Repository
}

func (r *stubTxRunner) RunSerialized(_ context.Context, fn func(r *repository.Repository) error) error {
	return fn(r.repo)
}

func newTestRepo(store *memStore) *repository.Repository {
	repo := &repository.Repository{
		Class:   &stubClassRepo{store: store},
		Booking: &stubBookingRepo{store: store},
	}
	repo.Tx = &stubTxRunner{repo: repo}
	return repo
}

func newBookingService(store *memStore, limits utils.BookingConfig) BookingService {
	return NewBookingService(newTestRepo(store), limits, zap.NewNop())
}

func defaultLimits() utils.BookingConfig {
	return utils.BookingConfig{DailyLimit: 3, WeeklyLimit: 12}
}

func addClass(store *memStore, name string, start time.Time, slots int) *entity.Class {
	class := &entity.Class{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: start.Add(-48 * time.Hour),
			UpdatedAt: start.Add(-48 * time.Hour),
		},
		Name:           name,
		Instructor:     "Alice Smith",
		StartTime:      start,
		SlotsAvailable: slots,
	}
	store.classes[class.ID] = class
	return class
}

func addBooking(store *memStore, classID uuid.UUID, name, email string, at time.Time) {
	store.bookings = append(store.bookings, &entity.Booking{
		BaseSimple: entity.BaseSimple{
			ID:        uuid.New(),
			CreatedAt: at,
		},
		ClassID:     classID,
		ClientName:  name,
		ClientEmail: email,
	})
}

func wantRejection(t *testing.T, err error, reason string, status int) {
	t.Helper()
	var rejection *Rejection
	if !errors.As(err, &rejection) {
		t.Fatalf("expected rejection %q, got %v", reason, err)
	}
	if rejection.Reason != reason {
		t.Fatalf("expected reason %q, got %q", reason, rejection.Reason)
	}
	if rejection.Status != status {
		t.Fatalf("expected status %d, got %d", status, rejection.Status)
	}
}

func TestCreateBookingSuccessDecrementsSlots(t *testing.T) {
	store := newMemStore()
	now := time.Date(2025, 1, 15, 10, 0, 0, 0, time.UTC)
	class := addClass(store, "Yoga", now.Add(24*time.Hour), 1)

	service := newBookingService(store, defaultLimits())
	result, err := service.CreateBooking(context.Background(), &request.CreateBookingRequest{
		ClassID:     class.ID.String(),
		ClientName:  "John Doe",
		ClientEmail: "john@example.com",
	}, now, time.UTC)
	if err != nil {
		t.Fatalf("CreateBooking: %v", err)
	}

	if result.SlotsRemaining != 0 {
		t.Fatalf("expected 0 slots remaining, got %d", result.SlotsRemaining)
	}
	if class.SlotsAvailable != 0 {
		t.Fatalf("expected stored class slots 0, got %d", class.SlotsAvailable)
	}
	if len(store.bookings) != 1 {
		t.Fatalf("expected 1 booking stored, got %d", len(store.bookings))
	}
	if !store.bookings[0].CreatedAt.Equal(now) {
		t.Fatalf("expected booking instant %s, got %s", now, store.bookings[0].CreatedAt)
	}
	if result.Booking.ClassName != "Yoga" {
		t.Fatalf("expected class name in response, got %q", result.Booking.ClassName)
	}
}

func TestCreateBookingMissingFields(t *testing.T) {
	service := newBookingService(newMemStore(), defaultLimits())

	_, err := service.CreateBooking(context.Background(), &request.CreateBookingRequest{}, time.Now().UTC(), time.UTC)
	wantRejection(t, err, "missing fields: class_id, client_name, client_email", http.StatusBadRequest)

	_, err = service.CreateBooking(context.Background(), &request.CreateBookingRequest{
		ClassID:    uuid.New().String(),
		ClientName: "John Doe",
	}, time.Now().UTC(), time.UTC)
	wantRejection(t, err, "missing fields: client_email", http.StatusBadRequest)
}

func TestCreateBookingInvalidName(t *testing.T) {
	service := newBookingService(newMemStore(), defaultLimits())

	_, err := service.CreateBooking(context.Background(), &request.CreateBookingRequest{
		ClassID:     uuid.New().String(),
		ClientName:  "John123",
		ClientEmail: "john@example.com",
	}, time.Now().UTC(), time.UTC)
	wantRejection(t, err, "name must contain only letters and spaces", http.StatusBadRequest)
}

func TestCreateBookingInvalidEmail(t *testing.T) {
	service := newBookingService(newMemStore(), defaultLimits())

	_, err := service.CreateBooking(context.Background(), &request.CreateBookingRequest{
		ClassID:     uuid.New().String(),
		ClientName:  "John Doe",
		ClientEmail: "johnexample.com",
	}, time.Now().UTC(), time.UTC)
	wantRejection(t, err, "invalid email format", http.StatusBadRequest)
}

func TestCreateBookingEmailBoundToAnotherName(t *testing.T) {
	store := newMemStore()
	now := time.Date(2025, 1, 15, 10, 0, 0, 0, time.UTC)
	yoga := addClass(store, "Yoga", now.Add(24*time.Hour), 5)
	pilates := addClass(store, "Pilates", now.Add(48*time.Hour), 5)
	addBooking(store, yoga.ID, "John Doe", "john@example.com", now.Add(-time.Hour))

	service := newBookingService(store, defaultLimits())
	_, err := service.CreateBooking(context.Background(), &request.CreateBookingRequest{
		ClassID:     pilates.ID.String(),
		ClientName:  "Jane Roe",
		ClientEmail: "john@example.com",
	}, now, time.UTC)
	wantRejection(t, err, "email already in use", http.StatusBadRequest)
}

func TestCreateBookingSameNameReusesEmail(t *testing.T) {
	store := newMemStore()
	now := time.Date(2025, 1, 15, 10, 0, 0, 0, time.UTC)
	yoga := addClass(store, "Yoga", now.Add(24*time.Hour), 5)
	pilates := addClass(store, "Pilates", now.Add(48*time.Hour), 5)
	addBooking(store, yoga.ID, "John Doe", "john@example.com", now.Add(-time.Hour))

	service := newBookingService(store, defaultLimits())
	_, err := service.CreateBooking(context.Background(), &request.CreateBookingRequest{
		ClassID:     pilates.ID.String(),
		ClientName:  "John Doe",
		ClientEmail: "john@example.com",
	}, now, time.UTC)
	if err != nil {
		t.Fatalf("CreateBooking: %v", err)
	}
}

func TestCreateBookingClassNotFound(t *testing.T) {
	store := newMemStore()
	now := time.Date(2025, 1, 15, 10, 0, 0, 0, time.UTC)
	// Full class left in the store; existence is checked before capacity, so
	// the unknown ID must win.
	addClass(store, "Yoga", now.Add(24*time.Hour), 0)

	service := newBookingService(store, defaultLimits())
	_, err := service.CreateBooking(context.Background(), &request.CreateBookingRequest{
		ClassID:     uuid.New().String(),
		ClientName:  "John Doe",
		ClientEmail: "john@example.com",
	}, now, time.UTC)
	wantRejection(t, err, "class not found", http.StatusNotFound)
}

func TestCreateBookingMalformedClassID(t *testing.T) {
	service := newBookingService(newMemStore(), defaultLimits())

	_, err := service.CreateBooking(context.Background(), &request.CreateBookingRequest{
		ClassID:     "not-a-uuid",
		ClientName:  "John Doe",
		ClientEmail: "john@example.com",
	}, time.Now().UTC(), time.UTC)
	wantRejection(t, err, "class not found", http.StatusNotFound)
}

func TestCreateBookingNoSlots(t *testing.T) {
	store := newMemStore()
	now := time.Date(2025, 1, 15, 10, 0, 0, 0, time.UTC)
	class := addClass(store, "Yoga", now.Add(24*time.Hour), 0)

	service := newBookingService(store, defaultLimits())
	_, err := service.CreateBooking(context.Background(), &request.CreateBookingRequest{
		ClassID:     class.ID.String(),
		ClientName:  "John Doe",
		ClientEmail: "john@example.com",
	}, now, time.UTC)
	wantRejection(t, err, "no slots available", http.StatusBadRequest)
}

func TestCreateBookingDailyLimit(t *testing.T) {
	store := newMemStore()
	kolkata := timewindow.ResolveLocation("Asia/Kolkata")
	if kolkata == time.UTC {
		t.Skip("tzdata not available")
	}

	now := time.Date(2025, 1, 15, 10, 0, 0, 0, time.UTC)
	dayStart, dayEnd := timewindow.DailyBounds(now, kolkata)

	target := addClass(store, "Spin", now.Add(24*time.Hour), 5)
	for i := 0; i < 3; i++ {
		other := addClass(store, "Yoga", now.Add(time.Duration(i+2)*24*time.Hour), 5)
		addBooking(store, other.ID, "John Doe", "john@example.com", dayStart.Add(time.Duration(i)*time.Hour))
	}

	service := newBookingService(store, defaultLimits())
	_, err := service.CreateBooking(context.Background(), &request.CreateBookingRequest{
		ClassID:     target.ID.String(),
		ClientName:  "John Doe",
		ClientEmail: "john@example.com",
	}, now, kolkata)
	wantRejection(t, err, "daily limit exceeded", http.StatusBadRequest)

	// A booking stamped in the next local day must not count: move one of
	// the three to exactly the window end, which belongs to tomorrow.
	store.bookings[0].CreatedAt = dayEnd

	result, err := service.CreateBooking(context.Background(), &request.CreateBookingRequest{
		ClassID:     target.ID.String(),
		ClientName:  "John Doe",
		ClientEmail: "john@example.com",
	}, now, kolkata)
	if err != nil {
		t.Fatalf("CreateBooking after freeing daily quota: %v", err)
	}
	if result.SlotsRemaining != 4 {
		t.Fatalf("expected 4 slots remaining, got %d", result.SlotsRemaining)
	}
}

func TestCreateBookingWeeklyLimit(t *testing.T) {
	store := newMemStore()
	now := time.Date(2025, 1, 15, 10, 0, 0, 0, time.UTC)
	weekStart, _ := timewindow.WeeklyBounds(now, time.UTC)

	target := addClass(store, "Spin", now.Add(24*time.Hour), 5)
	for i := 0; i < 12; i++ {
		other := addClass(store, "Yoga", now.Add(time.Duration(i+2)*24*time.Hour), 5)
		addBooking(store, other.ID, "John Doe", "john@example.com", weekStart.Add(time.Duration(i)*time.Hour))
	}

	// Daily limit raised so the weekly cap is the one that trips.
	service := newBookingService(store, utils.BookingConfig{DailyLimit: 100, WeeklyLimit: 12})
	_, err := service.CreateBooking(context.Background(), &request.CreateBookingRequest{
		ClassID:     target.ID.String(),
		ClientName:  "John Doe",
		ClientEmail: "john@example.com",
	}, now, time.UTC)
	wantRejection(t, err, "weekly limit exceeded", http.StatusBadRequest)
}

func TestCreateBookingDuplicateClass(t *testing.T) {
	store := newMemStore()
	now := time.Date(2025, 1, 15, 10, 0, 0, 0, time.UTC)
	class := addClass(store, "Yoga", now.Add(24*time.Hour), 2)

	service := newBookingService(store, defaultLimits())
	req := &request.CreateBookingRequest{
		ClassID:     class.ID.String(),
		ClientName:  "John Doe",
		ClientEmail: "john@example.com",
	}

	if _, err := service.CreateBooking(context.Background(), req, now, time.UTC); err != nil {
		t.Fatalf("first CreateBooking: %v", err)
	}

	_, err := service.CreateBooking(context.Background(), req, now.Add(time.Minute), time.UTC)
	wantRejection(t, err, "already booked this class", http.StatusBadRequest)
}

func TestGetBookingsByEmail(t *testing.T) {
	store := newMemStore()
	now := time.Date(2025, 1, 15, 10, 0, 0, 0, time.UTC)
	yoga := addClass(store, "Yoga", now.Add(24*time.Hour), 5)
	pilates := addClass(store, "Pilates", now.Add(48*time.Hour), 5)
	addBooking(store, yoga.ID, "John Doe", "john@example.com", now.Add(-2*time.Hour))
	addBooking(store, pilates.ID, "John Doe", "john@example.com", now.Add(-time.Hour))

	service := newBookingService(store, defaultLimits())
	page := &request.PaginatedRequest{Page: 1, PerPage: 50}

	result, err := service.GetBookingsByEmail(context.Background(), "john@example.com", page, time.UTC)
	if err != nil {
		t.Fatalf("GetBookingsByEmail: %v", err)
	}
	if len(result.Data) != 2 {
		t.Fatalf("expected 2 bookings, got %d", len(result.Data))
	}
	// Newest first.
	if result.Data[0].ClassName != "Pilates" || result.Data[1].ClassName != "Yoga" {
		t.Fatalf("expected newest-first ordering, got %q then %q",
			result.Data[0].ClassName, result.Data[1].ClassName)
	}
	if result.Pagination.Total != 2 {
		t.Fatalf("expected total 2, got %d", result.Pagination.Total)
	}
}

func TestGetBookingsByEmailRejections(t *testing.T) {
	service := newBookingService(newMemStore(), defaultLimits())
	page := &request.PaginatedRequest{Page: 1, PerPage: 50}

	_, err := service.GetBookingsByEmail(context.Background(), "", page, time.UTC)
	wantRejection(t, err, "email is required", http.StatusBadRequest)

	_, err = service.GetBookingsByEmail(context.Background(), "invalidemail", page, time.UTC)
	wantRejection(t, err, "invalid email format", http.StatusBadRequest)

	_, err = service.GetBookingsByEmail(context.Background(), "nobookings@example.com", page, time.UTC)
	wantRejection(t, err, "no bookings found", http.StatusNotFound)
}
