package get_available_slots

import (
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

// Request модель запроса на получение доступных слотов
type Request struct {
	Date string // Дата в формате YYYY-MM-DD, в часовом поясе расписания
}

// Response модель ответа со списком доступных слотов
type Response struct {
	Date                time.Time              // Полночь запрошенного дня в часовом поясе расписания
	SlotDurationMinutes int                    // Длительность слота из настроек
	Slots               []domain.AvailableSlot // Свободные слоты в порядке времени начала
}
