package update_scheduling_settings

import (
	"net/http"

	"github.com/m04kA/SMC-SchedulingService/internal/api/handlers"
	"github.com/m04kA/SMC-SchedulingService/internal/service/availability/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
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

// Handle PATCH /api/v1/scheduling/settings
// Частичное обновление: отсутствующие поля не меняются
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req models.UpdateSettingsRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /scheduling/settings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	updated, err := h.service.UpdateSettings(r.Context(), req.ToDomainPatch())
	if err != nil {
		if handlers.RespondDomainError(w, err) {
			h.logger.Warn("PATCH /scheduling/settings - Rejected: %v", err)
			return
		}
		h.logger.Error("PATCH /scheduling/settings - Failed to update settings: %v", err)
		return
	}

	h.logger.Info("PATCH /scheduling/settings - Settings updated: slot=%d, min_hours=%d, max_days=%d",
		updated.SlotDurationMinutes, updated.MinAdvanceBookingHours, updated.MaxAdvanceBookingDays)
	handlers.RespondJSON(w, http.StatusOK, models.FromDomainSettings(*updated))
}
