package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stromvalg/server/internal/models"
)

func makeConsumption(n int, amount float64) []models.Consumption {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	records := make([]models.Consumption, n)
	for i := range records {
		from := start.Add(time.Duration(i) * time.Hour)
		records[i] = models.Consumption{
			UserID:      "user-1",
			From:        from,
			To:          from.Add(time.Hour),
			Consumption: amount,
			Unit:        models.UnitKWH,
		}
	}
	return records
}

func makePrices(n int, price float64) []models.HourPrice {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	prices := make([]models.HourPrice, n)
	for i := range prices {
		from := start.Add(time.Duration(i) * time.Hour)
		prices[i] = models.HourPrice{
			Price:     price,
			TimeStart: from,
			TimeEnd:   from.Add(time.Hour),
		}
	}
	return prices
}

func TestEstimateCostRequiresExactly720Hours(t *testing.T) {
	estimator := NewEstimateService()
	prices := makePrices(HoursRequired, 1.0)

	for _, model := range []models.PriceModel{
		models.PriceModelSpot,
		models.PriceModelFixed,
		models.PriceModelVariable,
	} {
		for _, hours := range []int{0, 24, HoursRequired - 1, HoursRequired + 1} {
			plan := models.Plan{PriceModel: model, Fee: 50, Price: 40}
			_, err := estimator.EstimateCost(plan, makeConsumption(hours, 1.0), prices)
			require.Error(t, err, "model=%s hours=%d", model, hours)

			var insufficientErr *InsufficientDataError
			require.ErrorAs(t, err, &insufficientErr, "model=%s hours=%d", model, hours)
			assert.Equal(t, hours, insufficientErr.Hours)
		}
	}
}

func TestEstimateCostSpot(t *testing.T) {
	estimator := NewEstimateService()

	// Явный сценарий: fee 500, потребление 1.0, цена 1.0 -> 720 + 500
	plan := models.Plan{PriceModel: models.PriceModelSpot, Fee: 500}
	total, err := estimator.EstimateCost(plan, makeConsumption(HoursRequired, 1.0), makePrices(HoursRequired, 1.0))
	require.NoError(t, err)
	assert.Equal(t, 1220.0, total)

	// Fee добавляется к сумме один раз, не на каждый час
	plan = models.Plan{PriceModel: models.PriceModelSpot, Fee: 100}
	total, err = estimator.EstimateCost(plan, makeConsumption(HoursRequired, 2.0), makePrices(HoursRequired, 0.5))
	require.NoError(t, err)
	assert.InDelta(t, 720*0.5*2.0+100, total, 1e-9)
}

func TestEstimateCostFixed(t *testing.T) {
	estimator := NewEstimateService()

	// (Σпотребление) * (fee/100) + price
	plan := models.Plan{PriceModel: models.PriceModelFixed, Fee: 90, Price: 39}
	total, err := estimator.EstimateCost(plan, makeConsumption(HoursRequired, 2.0), makePrices(HoursRequired, 123.0))
	require.NoError(t, err)
	assert.InDelta(t, 1440*0.9+39, total, 1e-9)
}

func TestEstimateCostVariable(t *testing.T) {
	estimator := NewEstimateService()

	// Надбавка Price начисляется за каждый из 720 часов
	plan := models.Plan{PriceModel: models.PriceModelVariable, Price: 0.05}
	total, err := estimator.EstimateCost(plan, makeConsumption(HoursRequired, 1.0), makePrices(HoursRequired, 1.0))
	require.NoError(t, err)
	assert.InDelta(t, 720*(1.0/100+0.05), total, 1e-9)
}

func TestEstimateCostVariableAccumulatesPricePerHour(t *testing.T) {
	estimator := NewEstimateService()

	// При нулевом потреблении VARIABLE все равно набирает 720 * Price,
	// тогда как SPOT с нулевым потреблением дает ровно Fee
	variable := models.Plan{PriceModel: models.PriceModelVariable, Price: 1.0}
	total, err := estimator.EstimateCost(variable, makeConsumption(HoursRequired, 0), makePrices(HoursRequired, 1.0))
	require.NoError(t, err)
	assert.InDelta(t, 720.0, total, 1e-9)

	spot := models.Plan{PriceModel: models.PriceModelSpot, Fee: 1.0}
	total, err = estimator.EstimateCost(spot, makeConsumption(HoursRequired, 0), makePrices(HoursRequired, 1.0))
	require.NoError(t, err)
	assert.InDelta(t, 1.0, total, 1e-9)
}

func TestEstimateCostUnknownPriceModel(t *testing.T) {
	estimator := NewEstimateService()

	plan := models.Plan{PriceModel: models.PriceModel("PREPAID")}
	_, err := estimator.EstimateCost(plan, makeConsumption(HoursRequired, 1.0), makePrices(HoursRequired, 1.0))
	require.ErrorIs(t, err, ErrUnknownPriceModel)
}
