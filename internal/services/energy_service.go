package services

import (
	"fmt"
	"math"
	"math/rand"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"stromvalg/server/internal/models"
)

const (
	// DaysToGenerate размер окна синтетической истории потребления
	DaysToGenerate = 50
	hoursInDay     = 24

	// Дневные часы (7 < час < 22) — [5.0, 12.0) кВт·ч, остальные — [2.0, 5.0)
	minDaytime   = 5.0
	maxDaytime   = 12.0
	minNighttime = 2.0
	maxNighttime = 5.0
)

// EnergyService генерирует случайную историю потребления
// Используется вместо реальных данных со счетчика: у пользователей
// приложения нет интеграции с оператором сети
type EnergyService struct {
	db  *gorm.DB
	loc *time.Location
}

// NewEnergyService создает новый экземпляр EnergyService
func NewEnergyService(db *gorm.DB, loc *time.Location) *EnergyService {
	return &EnergyService{db: db, loc: loc}
}

// GenerateRandomEnergy заменяет историю потребления пользователя целиком:
// удаляет все записи и вставляет 1200 новых (50 суток x 24 часа),
// окно заканчивается ближайшей полуночью.
// Delete + insert быстрее, чем 1200 upsert-ов, и операция идемпотентна
// по форме результата. Конфликтные записи пропускаются, а не валят батч
func (s *EnergyService) GenerateRandomEnergy(userID string) error {
	start := nextMidnight(time.Now().In(s.loc).AddDate(0, 0, -DaysToGenerate))

	if err := s.db.Where("user_id = ?", userID).Delete(&models.Consumption{}).Error; err != nil {
		return fmt.Errorf("ошибка удаления старого потребления: %w", err)
	}

	records := make([]models.Consumption, 0, DaysToGenerate*hoursInDay)
	for day := 0; day < DaysToGenerate; day++ {
		for hour := 0; hour < hoursInDay; hour++ {
			from := start.Add(time.Duration(day)*hoursInDay*time.Hour + time.Duration(hour)*time.Hour)
			records = append(records, models.Consumption{
				UserID:      userID,
				From:        from,
				To:          from.Add(time.Hour),
				Consumption: randomHourConsumption(from.In(s.loc)),
				Unit:        models.UnitKWH,
			})
		}
	}

	err := s.db.
		Clauses(clause.OnConflict{DoNothing: true}).
		CreateInBatches(records, 200).Error
	if err != nil {
		return fmt.Errorf("ошибка вставки сгенерированного потребления: %w", err)
	}

	return nil
}

// randomHourConsumption возвращает случайное потребление за час
// с двумя знаками после запятой, диапазон зависит от локального часа суток
func randomHourConsumption(t time.Time) float64 {
	hour := t.Hour()
	if hour > 7 && hour < 22 {
		return round2(rand.Float64()*(maxDaytime-minDaytime) + minDaytime)
	}
	return round2(rand.Float64()*(maxNighttime-minNighttime) + minNighttime)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
