package services

import (
	"fmt"
	"time"

	"gorm.io/gorm"

	"stromvalg/server/internal/models"
)

// ConsumptionService доступ к почасовому потреблению пользователя
// Чистое чтение без побочных эффектов; пустой результат — не ошибка,
// а признак неполной истории (вызывающий решает, что с этим делать)
type ConsumptionService struct {
	db  *gorm.DB
	loc *time.Location
}

// NewConsumptionService создает новый экземпляр ConsumptionService
func NewConsumptionService(db *gorm.DB, loc *time.Location) *ConsumptionService {
	return &ConsumptionService{db: db, loc: loc}
}

// GetByDay возвращает потребление пользователя за сутки [полночь, полночь+24ч),
// упорядоченное по началу часа. Для полностью сгенерированной истории
// это ровно 24 записи
func (s *ConsumptionService) GetByDay(userID string, date time.Time) ([]models.Consumption, error) {
	dayStart := startOfDay(date.In(s.loc))
	dayEnd := dayStart.AddDate(0, 0, 1)

	return s.findBetween(userID, dayStart, dayEnd)
}

// GetLastNDays возвращает потребление за последние n суток,
// окно заканчивается ближайшей полуночью, порядок — по началу часа
func (s *ConsumptionService) GetLastNDays(userID string, n int) ([]models.Consumption, error) {
	if n <= 0 {
		return nil, fmt.Errorf("количество дней должно быть положительным: %d", n)
	}

	end := nextMidnight(time.Now().In(s.loc))
	start := end.AddDate(0, 0, -n)

	return s.findBetween(userID, start, end)
}

// CountHours возвращает количество часов потребления в истории пользователя
func (s *ConsumptionService) CountHours(userID string) (int64, error) {
	var count int64
	err := s.db.Model(&models.Consumption{}).
		Where("user_id = ?", userID).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("ошибка подсчета потребления: %w", err)
	}
	return count, nil
}

func (s *ConsumptionService) findBetween(userID string, from, to time.Time) ([]models.Consumption, error) {
	var records []models.Consumption
	// from/to — зарезервированные слова, поэтому в кавычках
	err := s.db.
		Where(`user_id = ? AND "from" >= ? AND "to" <= ?`, userID, from, to).
		Order(`"from" ASC`).
		Find(&records).Error
	if err != nil {
		return nil, fmt.Errorf("ошибка чтения потребления: %w", err)
	}
	return records, nil
}
