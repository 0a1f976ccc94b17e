package list_bookings

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-SchedulingService/internal/api/handlers"
	"github.com/m04kA/SMC-SchedulingService/internal/service/bookings/models"
)

// ToServiceRequest формирует запрос к сервису из query параметров
// Помимо общих фильтров поддерживается clientId
func ToServiceRequest(query url.Values) (*models.ListBookingsRequest, error) {
	req, err := handlers.ParseListQuery(query)
	if err != nil {
		return nil, err
	}

	if value := strings.TrimSpace(query.Get("clientId")); value != "" {
		clientID, err := uuid.Parse(value)
		if err != nil {
			return nil, fmt.Errorf("invalid clientId value: %w", err)
		}
		req.ClientID = &clientID
	}

	return req, nil
}
