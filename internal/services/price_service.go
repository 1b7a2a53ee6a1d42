package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"stromvalg/server/internal/models"
)

// PriceService кэширующий шлюз к спотовым ценам
// Единственный компонент, который ходит во внешнюю сеть: при промахе кэша
// цены забираются из фида и сохраняются одной строкой на (день, зона).
// Ошибки фида не кэшируются — следующий запрос повторит попытку
type PriceService struct {
	db     *gorm.DB
	client *PriceClient
	loc    *time.Location
}

// NewPriceService создает новый экземпляр PriceService
// loc задает календарь: ключ кэша — локальная календарная дата в этом поясе
func NewPriceService(db *gorm.DB, client *PriceClient, loc *time.Location) *PriceService {
	return &PriceService{db: db, client: client, loc: loc}
}

// GetByDay возвращает 24 почасовые цены за сутки в зоне,
// упорядоченные по началу часа
func (s *PriceService) GetByDay(ctx context.Context, date time.Time, region models.PriceRegion) ([]models.HourPrice, error) {
	if !region.Valid() {
		return nil, fmt.Errorf("неизвестная ценовая зона: %s", region)
	}

	// Ключ кэша — локальная календарная дата, не UTC
	local := date.In(s.loc)
	year, month, day := local.Date()

	cached, err := s.readCached(year, int(month), day, region)
	if err == nil {
		return cached, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("ошибка чтения кэша цен: %w", err)
	}

	prices, err := s.client.FetchDay(ctx, local, region)
	if err != nil {
		return nil, err
	}
	sort.Slice(prices, func(i, j int) bool {
		return prices[i].TimeStart.Before(prices[j].TimeStart)
	})

	info := models.ElectricityInfo{
		Year:   year,
		Month:  int(month),
		Day:    day,
		Region: region,
		Prices: prices,
	}
	if err := s.db.Create(&info).Error; err != nil {
		// Параллельный запрос успел создать строку первым: уникальный индекс
		// по (year, month, day, region) пропустил только одну вставку.
		// Проигравший читает победителя вместо ошибки
		if cached, readErr := s.readCached(year, int(month), day, region); readErr == nil {
			return cached, nil
		}
		return nil, fmt.Errorf("ошибка сохранения цен в кэш: %w", err)
	}

	return info.Prices, nil
}

// GetForLastNDays возвращает цены за последние n суток (включая текущие),
// n независимых однодневных запросов выполняются параллельно.
// Результат склеен от старых суток к новым; внутри суток цены упорядочены
// по началу часа, сквозной порядок между сутками не гарантируется
func (s *PriceService) GetForLastNDays(ctx context.Context, region models.PriceRegion, n int) ([]models.HourPrice, error) {
	if n <= 0 {
		return nil, fmt.Errorf("количество дней должно быть положительным: %d", n)
	}

	end := nextMidnight(time.Now().In(s.loc))

	g, ctx := errgroup.WithContext(ctx)
	results := make([][]models.HourPrice, n)
	for i := 0; i < n; i++ {
		i := i
		date := end.AddDate(0, 0, i-n)
		g.Go(func() error {
			prices, err := s.GetByDay(ctx, date, region)
			if err != nil {
				return err
			}
			results[i] = prices
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var all []models.HourPrice
	for _, dayPrices := range results {
		all = append(all, dayPrices...)
	}
	return all, nil
}

// readCached читает строку кэша с ценами, упорядоченными по началу часа
func (s *PriceService) readCached(year, month, day int, region models.PriceRegion) ([]models.HourPrice, error) {
	var info models.ElectricityInfo
	err := s.db.
		Preload("Prices", func(db *gorm.DB) *gorm.DB {
			return db.Order("time_start ASC")
		}).
		Where("year = ? AND month = ? AND day = ? AND region = ?", year, month, day, region).
		First(&info).Error
	if err != nil {
		return nil, err
	}
	return info.Prices, nil
}
