package services

import (
	"github.com/shopspring/decimal"

	"stromvalg/server/internal/models"
)

// HoursRequired — ровно 30 дней почасового потребления
// Проверка строгая (==, не >=): ряды цен и потребления должны быть
// выровнены по индексу, элемент i обоих рядов относится к одному часу
const HoursRequired = 30 * 24

// EstimateService вычисляет оценку стоимости тарифа за 30 дней
// Чистая функция над входными рядами: ничего не читает и не пишет в БД,
// результат не кэшируется (цены и потребление под ним могут меняться)
type EstimateService struct{}

// NewEstimateService создает новый экземпляр EstimateService
func NewEstimateService() *EstimateService {
	return &EstimateService{}
}

// EstimateCost оценивает стоимость тарифа по потреблению и ценам
// Денежная арифметика — на decimal, результат отдается числом без
// округления (форматирование — забота презентационного слоя).
// Для поддерживаемых моделей единственная причина ошибки —
// InsufficientDataError при неполной истории потребления
func (s *EstimateService) EstimateCost(plan models.Plan, consumption []models.Consumption, prices []models.HourPrice) (float64, error) {
	if len(consumption) != HoursRequired {
		return 0, &InsufficientDataError{Hours: len(consumption)}
	}

	// Перечисление закрытое: неизвестная модель — ошибка, не молчаливый default
	switch plan.PriceModel {
	case models.PriceModelSpot:
		return s.spotCost(plan, consumption, prices), nil
	case models.PriceModelFixed:
		return s.fixedCost(plan, consumption), nil
	case models.PriceModelVariable:
		return s.variableCost(plan, consumption, prices), nil
	}
	return 0, ErrUnknownPriceModel
}

// spotCost: Σ(цена[i] · потребление[i]) + разовый месячный сбор Fee
func (s *EstimateService) spotCost(plan models.Plan, consumption []models.Consumption, prices []models.HourPrice) float64 {
	total := decimal.Zero
	for i, hour := range prices {
		total = total.Add(decimal.NewFromFloat(hour.Price).Mul(consumptionAt(consumption, i)))
	}
	return total.Add(decimal.NewFromFloat(plan.Fee)).InexactFloat64()
}

// fixedCost: Σпотребление · (Fee/100) + месячная плата Price
// Fee здесь — надбавка в øre за кВт·ч
func (s *EstimateService) fixedCost(plan models.Plan, consumption []models.Consumption) float64 {
	total := decimal.Zero
	for _, record := range consumption {
		total = total.Add(decimal.NewFromFloat(record.Consumption))
	}
	fee := decimal.NewFromFloat(plan.Fee).Div(decimal.NewFromInt(100))
	return total.Mul(fee).Add(decimal.NewFromFloat(plan.Price)).InexactFloat64()
}

// variableCost: Σ(цена[i] · потребление[i] / 100 + Price)
// Надбавка Price начисляется за КАЖДЫЙ час, не один раз — в отличие от
// SPOT, где Fee добавляется однократно. Это в точности поведение исходной
// модели; менять его нельзя, т.к. это молча изменит финансовый результат
func (s *EstimateService) variableCost(plan models.Plan, consumption []models.Consumption, prices []models.HourPrice) float64 {
	total := decimal.Zero
	hundred := decimal.NewFromInt(100)
	price := decimal.NewFromFloat(plan.Price)
	for i, hour := range prices {
		hourCost := decimal.NewFromFloat(hour.Price).
			Mul(consumptionAt(consumption, i)).
			Div(hundred).
			Add(price)
		total = total.Add(hourCost)
	}
	return total.InexactFloat64()
}

// consumptionAt возвращает потребление за час i или ноль за его пределами
func consumptionAt(consumption []models.Consumption, i int) decimal.Decimal {
	if i >= len(consumption) {
		return decimal.Zero
	}
	return decimal.NewFromFloat(consumption[i].Consumption)
}
