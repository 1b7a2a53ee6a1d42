package services

import (
	"errors"
	"fmt"
)

// Типизированные ошибки внешнего фида цен
// Все три восстанавливаются на границе PriceService и доходят до
// контроллера как типизированный результат, а не как паника
var (
	// ErrNoPricesForDate — фид ответил 404: цены на эту дату не опубликованы
	ErrNoPricesForDate = errors.New("ingen strømpriser for denne datoen")
	// ErrMalformedPriceData — фид ответил 200, но тело не прошло валидацию схемы
	ErrMalformedPriceData = errors.New("ugyldig svar fra prisleverandøren")
	// ErrUpstreamFailure — любой другой неуспешный статус или сетевая ошибка
	ErrUpstreamFailure = errors.New("prisleverandøren svarer ikke")

	// ErrUnknownPriceModel — тариф с моделью вне перечисления SPOT/FIXED/VARIABLE
	ErrUnknownPriceModel = errors.New("ukjent prismodell")
)

// InsufficientDataError — у пользователя меньше 720 часов потребления,
// оценка стоимости за 30 дней невозможна
type InsufficientDataError struct {
	Hours int // Сколько часов есть на самом деле
}

func (e *InsufficientDataError) Error() string {
	return fmt.Sprintf("ikke nok dager med forbruk (%d av %d timer)", e.Hours, HoursRequired)
}
