package services

import (
	"fmt"

	"gorm.io/gorm"

	"stromvalg/server/internal/models"
)

// ProviderService управляет справочником поставщиков и тарифов
type ProviderService struct {
	db *gorm.DB
}

// NewProviderService создает новый экземпляр ProviderService
func NewProviderService(db *gorm.DB) *ProviderService {
	return &ProviderService{db: db}
}

// GetProviders возвращает всех поставщиков вместе с тарифами
func (s *ProviderService) GetProviders() ([]models.Provider, error) {
	var providers []models.Provider
	if err := s.db.Preload("Plans").Find(&providers).Error; err != nil {
		return nil, fmt.Errorf("ошибка получения поставщиков: %w", err)
	}
	return providers, nil
}

// CreateProvider создает нового поставщика
func (s *ProviderService) CreateProvider(name string) (*models.Provider, error) {
	if name == "" {
		return nil, fmt.Errorf("имя поставщика обязательно")
	}

	provider := models.Provider{Name: name}
	if err := s.db.Create(&provider).Error; err != nil {
		return nil, fmt.Errorf("ошибка создания поставщика: %w", err)
	}
	return &provider, nil
}

// CreatePlan создает тариф у существующего поставщика
func (s *ProviderService) CreatePlan(plan *models.Plan) error {
	if !plan.PriceModel.Valid() {
		return fmt.Errorf("%w: %s", ErrUnknownPriceModel, plan.PriceModel)
	}

	var provider models.Provider
	if err := s.db.First(&provider, "id = ?", plan.ProviderID).Error; err != nil {
		return fmt.Errorf("поставщик с ID %s не найден: %w", plan.ProviderID, err)
	}

	if err := s.db.Create(plan).Error; err != nil {
		return fmt.Errorf("ошибка создания тарифа: %w", err)
	}
	return nil
}
