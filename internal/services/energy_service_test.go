package services

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stromvalg/server/internal/models"
)

func allConsumption(t *testing.T, service *EnergyService, userID string) []models.Consumption {
	t.Helper()
	var records []models.Consumption
	require.NoError(t, service.db.
		Where("user_id = ?", userID).
		Order(`"from" ASC`).
		Find(&records).Error)
	return records
}

func TestGenerateRandomEnergyProducesFullWindow(t *testing.T) {
	service := NewEnergyService(newTestDB(t), time.UTC)

	require.NoError(t, service.GenerateRandomEnergy("user-1"))
	records := allConsumption(t, service, "user-1")
	require.Len(t, records, DaysToGenerate*24)

	// Ровно 50 разных суток, часовые интервалы стыкуются без дыр
	days := make(map[string]bool)
	for i, record := range records {
		days[record.From.UTC().Format("2006-01-02")] = true
		assert.True(t, record.To.Equal(record.From.Add(time.Hour)))
		assert.Equal(t, models.UnitKWH, record.Unit)
		if i > 0 {
			assert.True(t, record.From.Equal(records[i-1].To), "интервалы должны быть непрерывными")
		}
	}
	assert.Len(t, days, DaysToGenerate)

	// Окно заканчивается ближайшей полуночью
	end := nextMidnight(time.Now().UTC())
	assert.True(t, records[len(records)-1].To.Equal(end))
}

func TestGenerateRandomEnergyRespectsHourlyRanges(t *testing.T) {
	service := NewEnergyService(newTestDB(t), time.UTC)

	require.NoError(t, service.GenerateRandomEnergy("user-1"))

	for _, record := range allConsumption(t, service, "user-1") {
		hour := record.From.UTC().Hour()
		v := record.Consumption

		assert.GreaterOrEqual(t, v, 2.0)
		assert.LessOrEqual(t, v, 12.0)
		if hour > 7 && hour < 22 {
			assert.GreaterOrEqual(t, v, 5.0, "дневной час %d", hour)
		} else {
			assert.LessOrEqual(t, v, 5.0, "ночной час %d", hour)
		}

		// Два знака после запятой
		scaled := v * 100
		assert.InDelta(t, math.Round(scaled), scaled, 1e-6)
	}
}

func TestGenerateRandomEnergyReplacesWholesale(t *testing.T) {
	db := newTestDB(t)
	service := NewEnergyService(db, time.UTC)

	// Старая запись далеко за пределами окна генерации
	stale := models.Consumption{
		UserID:      "user-1",
		From:        time.Date(2020, 5, 1, 10, 0, 0, 0, time.UTC),
		To:          time.Date(2020, 5, 1, 11, 0, 0, 0, time.UTC),
		Consumption: 99.0,
		Unit:        models.UnitKWH,
	}
	require.NoError(t, db.Create(&stale).Error)

	require.NoError(t, service.GenerateRandomEnergy("user-1"))
	require.NoError(t, service.GenerateRandomEnergy("user-1")) // Идемпотентно по форме

	records := allConsumption(t, service, "user-1")
	assert.Len(t, records, DaysToGenerate*24)
	for _, record := range records {
		assert.NotEqual(t, 99.0, record.Consumption, "старая запись должна быть удалена")
	}
}

func TestGenerateRandomEnergyDoesNotTouchOtherUsers(t *testing.T) {
	db := newTestDB(t)
	service := NewEnergyService(db, time.UTC)

	other := models.Consumption{
		UserID:      "user-2",
		From:        time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		To:          time.Date(2024, 1, 1, 1, 0, 0, 0, time.UTC),
		Consumption: 3.14,
		Unit:        models.UnitKWH,
	}
	require.NoError(t, db.Create(&other).Error)

	require.NoError(t, service.GenerateRandomEnergy("user-1"))

	records := allConsumption(t, service, "user-2")
	require.Len(t, records, 1)
	assert.Equal(t, 3.14, records[0].Consumption)
}
