package wire

import (
	"fitness-booking/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireClass(r chi.Router, classHandler *adaptor.ClassHandler) {
	// GET /api/classes - List upcoming classes
	r.Get("/api/classes", classHandler.ListClasses)

	// POST /api/admin/classes - Register a new class offering
	r.Post("/api/admin/classes", classHandler.CreateClass)
}
