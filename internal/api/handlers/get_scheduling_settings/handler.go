package get_scheduling_settings

import (
	"net/http"

	"github.com/m04kA/SMC-SchedulingService/internal/api/handlers"
	"github.com/m04kA/SMC-SchedulingService/internal/service/availability/models"
)

type Handler struct {
	service SettingsService
	logger  Logger
}

func NewHandler(service SettingsService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/scheduling/settings
// Если настройки еще не созданы, возвращаются значения по умолчанию (isDefault = true)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	settings := h.service.GetSettings(r.Context())
	response := models.FromDomainSettings(settings)

	h.logger.Info("GET /scheduling/settings - Settings retrieved: slot=%d, min_hours=%d, max_days=%d, default=%t",
		response.SlotDurationMinutes, response.MinAdvanceBookingHours, response.MaxAdvanceBookingDays, response.IsDefault)
	handlers.RespondJSON(w, http.StatusOK, response)
}
