package wire

import (
	"fitness-booking/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireBooking(r chi.Router, bookingHandler *adaptor.BookingHandler) {
	// POST /api/book - Run the eligibility pipeline and book a slot
	r.Post("/api/book", bookingHandler.CreateBooking)

	// GET /api/bookings?email=... - Booking history for an email
	r.Get("/api/bookings", bookingHandler.GetBookings)
}
