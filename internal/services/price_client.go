package services

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"stromvalg/server/internal/models"
)

// PriceClient клиент для работы с API hvakosterstrommen.no
type PriceClient struct {
	baseURL string
	client  *http.Client
}

// NewPriceClient создает новый клиент внешнего фида спотовых цен
// baseURL переопределяется в тестах на httptest-сервер
func NewPriceClient(baseURL string) *PriceClient {
	return &PriceClient{
		baseURL: baseURL,
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// rawHourPrice сырая запись фида
// Все шесть полей обязательны: указатели, чтобы отличить отсутствие поля от нуля
type rawHourPrice struct {
	NOKPerKWh *float64 `json:"NOK_per_kWh"`
	EURPerKWh *float64 `json:"EUR_per_kWh"`
	EXR       *float64 `json:"EXR"`
	TimeStart *string  `json:"time_start"`
	TimeEnd   *string  `json:"time_end"`
}

// FetchDay запрашивает почасовые цены за одни сутки в одной зоне
// Формат URL фида: {base}/{yyyy}/{MM}-{dd}_{REGION}.json
// Пример: https://www.hvakosterstrommen.no/api/v1/prices/2024/01-15_NO1.json
//
// Ошибки типизированы: 404 -> ErrNoPricesForDate, невалидное тело ->
// ErrMalformedPriceData, остальное -> ErrUpstreamFailure. Повторных
// попыток нет — ошибка апстрима финальна в рамках одного запроса
func (pc *PriceClient) FetchDay(ctx context.Context, date time.Time, region models.PriceRegion) ([]models.HourPrice, error) {
	year, month, day := date.Date()
	url := fmt.Sprintf("%s/%04d/%02d-%02d_%s.json", pc.baseURL, year, int(month), day, region)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstreamFailure, err)
	}

	resp, err := pc.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstreamFailure, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK:
		// Продолжаем разбор тела
	case resp.StatusCode == http.StatusNotFound:
		return nil, fmt.Errorf("%w: %04d-%02d-%02d %s", ErrNoPricesForDate, year, int(month), day, region)
	default:
		return nil, fmt.Errorf("%w: status %d", ErrUpstreamFailure, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstreamFailure, err)
	}

	var raw []rawHourPrice
	if err := json.Unmarshal(body, &raw); err != nil {
		log.Printf("⚠️ Prices: не удалось разобрать ответ фида (%s): %v", url, err)
		return nil, fmt.Errorf("%w: %v", ErrMalformedPriceData, err)
	}

	prices := make([]models.HourPrice, 0, len(raw))
	for i, entry := range raw {
		// Сохраняем только цену в NOK и границы часа,
		// EUR_per_kWh и курс EXR в кэш не попадают
		hour, err := transformHourPrice(entry)
		if err != nil {
			log.Printf("⚠️ Prices: запись %d не прошла валидацию схемы: %v", i, err)
			return nil, fmt.Errorf("%w: запись %d: %v", ErrMalformedPriceData, i, err)
		}
		prices = append(prices, hour)
	}

	return prices, nil
}

// transformHourPrice валидирует сырую запись фида и приводит к внутреннему виду
func transformHourPrice(entry rawHourPrice) (models.HourPrice, error) {
	if entry.NOKPerKWh == nil || entry.EURPerKWh == nil || entry.EXR == nil ||
		entry.TimeStart == nil || entry.TimeEnd == nil {
		return models.HourPrice{}, fmt.Errorf("обязательное поле отсутствует")
	}

	timeStart, err := time.Parse(time.RFC3339, *entry.TimeStart)
	if err != nil {
		return models.HourPrice{}, fmt.Errorf("time_start: %v", err)
	}
	timeEnd, err := time.Parse(time.RFC3339, *entry.TimeEnd)
	if err != nil {
		return models.HourPrice{}, fmt.Errorf("time_end: %v", err)
	}

	return models.HourPrice{
		Price:     *entry.NOKPerKWh,
		TimeStart: timeStart,
		TimeEnd:   timeEnd,
	}, nil
}
