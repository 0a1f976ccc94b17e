package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

// Сообщения для пользователя
const (
	msgMissingField       = "не заполнено обязательное поле"
	msgMissingContact     = "укажите email или телефон для связи"
	msgInvalidTime        = "некорректный формат времени, ожидается RFC 3339"
	msgInvalidRange       = "время окончания должно быть позже времени начала"
	msgTooSoon            = "бронирование возможно не менее чем за %d ч. до начала"
	msgTooFar             = "бронирование возможно не более чем на %d дн. вперед"
	msgDayUnavailable     = "в выбранный день запись не ведется"
	msgOutsideHours       = "выбранное время вне рабочих часов"
	msgSlotTaken          = "это время уже занято, выберите другое"
	msgInvalidStatus      = "недопустимый статус бронирования"
	msgInvalidCustomerID  = "номер клиента должен состоять только из цифр, не более 18"
	msgDuplicateContact   = "у этого контакта уже есть подтвержденная запись на эту дату"
	msgConcurrentBooking  = "это время только что заняли, обновите расписание и попробуйте снова"
	msgBookingNotFound    = "бронирование не найдено"
	msgSettingsNotFound   = "настройки расписания еще не созданы"
	msgInvalidSettings    = "недопустимое значение настройки"
	msgInvalidRule        = "некорректное правило доступности"
	msgInvalidRequestData = "некорректные данные запроса"
)

// DomainErrorResponse возвращает HTTP статус и сообщение для доменной ошибки
// ok = false, если ошибка не доменная (отвечать нужно 500)
func DomainErrorResponse(err error) (status int, message string, ok bool) {
	var re *domain.RuleError
	errors.As(err, &re)

	switch {
	case errors.Is(err, domain.ErrMissingField):
		return http.StatusBadRequest, withField(msgMissingField, re), true
	case errors.Is(err, domain.ErrMissingContact):
		return http.StatusBadRequest, msgMissingContact, true
	case errors.Is(err, domain.ErrInvalidTime):
		return http.StatusBadRequest, withField(msgInvalidTime, re), true
	case errors.Is(err, domain.ErrInvalidRange):
		return http.StatusBadRequest, msgInvalidRange, true
	case errors.Is(err, domain.ErrTooSoon):
		return http.StatusBadRequest, fmt.Sprintf(msgTooSoon, limit(re)), true
	case errors.Is(err, domain.ErrTooFar):
		return http.StatusBadRequest, fmt.Sprintf(msgTooFar, limit(re)), true
	case errors.Is(err, domain.ErrDayUnavailable):
		return http.StatusBadRequest, msgDayUnavailable, true
	case errors.Is(err, domain.ErrOutsideHours):
		return http.StatusBadRequest, msgOutsideHours, true
	case errors.Is(err, domain.ErrSlotTaken):
		return http.StatusConflict, msgSlotTaken, true
	case errors.Is(err, domain.ErrInvalidStatus):
		return http.StatusBadRequest, msgInvalidStatus, true
	case errors.Is(err, domain.ErrInvalidCustomerID):
		return http.StatusBadRequest, msgInvalidCustomerID, true
	case errors.Is(err, domain.ErrDuplicateContact):
		return http.StatusConflict, msgDuplicateContact, true
	case errors.Is(err, domain.ErrConcurrentBooking):
		return http.StatusConflict, msgConcurrentBooking, true
	case errors.Is(err, domain.ErrBookingNotFound):
		return http.StatusNotFound, msgBookingNotFound, true
	case errors.Is(err, domain.ErrSettingsNotFound):
		return http.StatusNotFound, msgSettingsNotFound, true
	case errors.Is(err, domain.ErrInvalidSettings):
		msg := withField(msgInvalidSettings, re)
		if re != nil && re.Limit != 0 {
			msg = fmt.Sprintf("%s (не более %d)", msg, re.Limit)
		}
		return http.StatusBadRequest, msg, true
	case errors.Is(err, domain.ErrInvalidRule):
		return http.StatusBadRequest, withField(msgInvalidRule, re), true
	}

	return 0, "", false
}

// RespondDomainError отвечает сообщением доменной ошибки, для прочих ошибок - 500
// Возвращает true, если ошибка была доменной
func RespondDomainError(w http.ResponseWriter, err error) bool {
	status, message, ok := DomainErrorResponse(err)
	if !ok {
		RespondInternalError(w)
		return false
	}
	RespondError(w, status, message)
	return true
}

// RespondInvalidRequest отвечает 400 с общим сообщением о некорректных данных
func RespondInvalidRequest(w http.ResponseWriter) {
	RespondBadRequest(w, msgInvalidRequestData)
}

func withField(msg string, re *domain.RuleError) string {
	if re == nil || re.Field == "" {
		return msg
	}
	return fmt.Sprintf("%s: %s", msg, re.Field)
}

func limit(re *domain.RuleError) int {
	if re == nil {
		return 0
	}
	return re.Limit
}
