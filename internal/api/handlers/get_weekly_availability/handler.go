package get_weekly_availability

import (
	"net/http"

	"github.com/m04kA/SMC-SchedulingService/internal/api/handlers"
	"github.com/m04kA/SMC-SchedulingService/internal/service/availability/models"
)

type Handler struct {
	service AvailabilityService
	logger  Logger
}

func NewHandler(service AvailabilityService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/scheduling/availability
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	rules := h.service.GetWeeklyRules(r.Context())

	h.logger.Info("GET /scheduling/availability - Rules retrieved: count=%d", len(rules))
	handlers.RespondJSON(w, http.StatusOK, models.FromDomainRules(rules))
}
