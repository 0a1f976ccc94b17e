package create_booking

import (
	"time"

	"github.com/google/uuid"
)

// Request модель запроса на создание бронирования
// Время передается строками RFC 3339, разбор выполняет валидатор.
// Порядок полей задает порядок проверок: обязательные поля, статус, контакт, customer id
type Request struct {
	Title       string     `json:"title" validate:"required"`
	StartTime   string     `json:"startTime" validate:"required"`
	EndTime     string     `json:"endTime" validate:"required"`
	Status      string     `json:"status" validate:"required,oneof=pending confirmed cancelled"`
	Email       *string    `json:"email" validate:"required_without=Phone"`
	Phone       *string    `json:"phone"`
	CustomerID  string     `json:"customerId" validate:"omitempty,number,max=18"`
	ClientID    *uuid.UUID `json:"clientId"`
	Description *string    `json:"description"`
	Location    *string    `json:"location"`
}

// Response модель ответа с созданным бронированием
type Response struct {
	ID          uuid.UUID  // ID созданного бронирования
	Title       string     // Заголовок (обычно имя клиента)
	StartTime   time.Time  // Начало
	EndTime     time.Time  // Конец
	Status      string     // Статус бронирования
	ClientID    *uuid.UUID // Владелец записи
	CustomerID  string     // Последовательный номер клиента
	Email       *string
	Phone       *string
	Description *string
	Location    *string

	CreatedAt time.Time // Время создания
	UpdatedAt time.Time // Время обновления
}
