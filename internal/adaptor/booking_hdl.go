package adaptor

import (
	"encoding/json"
	"net/http"
	"time"

	"fitness-booking/internal/dto/request"
	"fitness-booking/internal/usecase"
	"fitness-booking/pkg/utils"

	"go.uber.org/zap"
)

type BookingHandler struct {
	service usecase.BookingService
	log     *zap.Logger
}

func NewBookingHandler(service usecase.BookingService, log *zap.Logger) *BookingHandler {
	return &BookingHandler{
		service: service,
		log:     log.With(zap.String("handler", "booking")),
	}
}

// CreateBooking handles POST /api/book
func (h *BookingHandler) CreateBooking(w http.ResponseWriter, r *http.Request) {
	var req request.CreateBookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	now := time.Now().UTC()
	loc := utils.LocationFromContext(r.Context())

	result, err := h.service.CreateBooking(r.Context(), &req, now, loc)
	if err != nil {
		respondServiceError(w, h.log, err, "create booking")
		return
	}

	utils.ResponseCreated(w, "Booking successful", result)
}

// GetBookings handles GET /api/bookings?email=...
func (h *BookingHandler) GetBookings(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	page := &request.PaginatedRequest{
		Page:    utils.ParseInt(query.Get("page"), 1),
		PerPage: utils.ParseInt(query.Get("per_page"), 50),
	}

	loc := utils.LocationFromContext(r.Context())

	bookings, err := h.service.GetBookingsByEmail(r.Context(), query.Get("email"), page, loc)
	if err != nil {
		respondServiceError(w, h.log, err, "get bookings")
		return
	}

	utils.ResponseSuccess(w, "success", bookings)
}
