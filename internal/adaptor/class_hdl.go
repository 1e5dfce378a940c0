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

type ClassHandler struct {
	service usecase.ClassService
	log     *zap.Logger
}

func NewClassHandler(service usecase.ClassService, log *zap.Logger) *ClassHandler {
	return &ClassHandler{
		service: service,
		log:     log.With(zap.String("handler", "class")),
	}
}

// ListClasses handles GET /api/classes
func (h *ClassHandler) ListClasses(w http.ResponseWriter, r *http.Request) {
	now := time.Now().UTC()
	loc := utils.LocationFromContext(r.Context())

	classes, err := h.service.ListUpcoming(r.Context(), now, loc)
	if err != nil {
		respondServiceError(w, h.log, err, "list classes")
		return
	}

	if len(classes) == 0 {
		utils.ResponseSuccess(w, "No upcoming classes available.", classes)
		return
	}

	utils.ResponseSuccess(w, "success", classes)
}

// CreateClass handles POST /api/admin/classes
func (h *ClassHandler) CreateClass(w http.ResponseWriter, r *http.Request) {
	var req request.CreateClassRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	// Validate request
	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	class, err := h.service.CreateClass(r.Context(), &req)
	if err != nil {
		respondServiceError(w, h.log, err, "create class")
		return
	}

	utils.ResponseCreated(w, "success", class)
}
