package replace_weekly_availability

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/m04kA/SMC-SchedulingService/internal/api/handlers"
	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/internal/service/availability"
	"github.com/m04kA/SMC-SchedulingService/internal/service/availability/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgTooManyRules       = "слишком много правил доступности, максимум %d"
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

// Handle PUT /api/v1/scheduling/availability
// Заменяет весь набор недельных правил. Пустой список означает, что запись не ведется ни в один день
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req models.ReplaceWeeklyRulesRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /scheduling/availability - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	rules, err := h.service.ReplaceWeeklyRules(r.Context(), req.ToDomainRules())
	if err != nil {
		switch {
		case errors.Is(err, availability.ErrTooManyRules):
			h.logger.Warn("PUT /scheduling/availability - Too many rules: count=%d", len(req.Rules))
			handlers.RespondBadRequest(w, fmt.Sprintf(msgTooManyRules, domain.MaxWeeklyRules))

		case domain.IsRuleViolation(err):
			h.logger.Warn("PUT /scheduling/availability - Rejected: %v", err)
			handlers.RespondDomainError(w, err)

		default:
			h.logger.Error("PUT /scheduling/availability - Failed to replace rules: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /scheduling/availability - Rules replaced: count=%d", len(rules))
	handlers.RespondJSON(w, http.StatusOK, models.FromDomainRules(rules))
}
