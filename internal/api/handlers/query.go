package handlers

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/service/bookings/models"
)

// ParseListQuery формирует фильтр списка бронирований из query параметров
// from, to (RFC 3339), status, includeCancelled (опционально)
func ParseListQuery(query url.Values) (*models.ListBookingsRequest, error) {
	req := &models.ListBookingsRequest{}

	if value := strings.TrimSpace(query.Get("from")); value != "" {
		from, err := time.Parse(time.RFC3339, value)
		if err != nil {
			return nil, fmt.Errorf("invalid from value: %w", err)
		}
		req.From = &from
	}

	if value := strings.TrimSpace(query.Get("to")); value != "" {
		to, err := time.Parse(time.RFC3339, value)
		if err != nil {
			return nil, fmt.Errorf("invalid to value: %w", err)
		}
		req.To = &to
	}

	if value := strings.TrimSpace(query.Get("status")); value != "" {
		req.Status = &value
	}

	if value := strings.TrimSpace(query.Get("includeCancelled")); value != "" {
		includeCancelled, err := strconv.ParseBool(value)
		if err != nil {
			return nil, fmt.Errorf("invalid includeCancelled value: %w", err)
		}
		req.IncludeCancelled = includeCancelled
	}

	return req, nil
}
