package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PriceModel представляет модель ценообразования тарифа
// Закрытое перечисление: добавление новой модели требует обновления
// всех switch-ей в EstimateService (там нет молчаливого default)
type PriceModel string

const (
	// PriceModelSpot — спотовая цена за час + фиксированный сбор за месяц
	PriceModelSpot PriceModel = "SPOT"
	// PriceModelFixed — фиксированная месячная плата + надбавка за кВт·ч
	PriceModelFixed PriceModel = "FIXED"
	// PriceModelVariable — привязка к спотовой цене + почасовая надбавка
	PriceModelVariable PriceModel = "VARIABLE"
)

// Valid проверяет, что значение входит в перечисление
func (m PriceModel) Valid() bool {
	switch m {
	case PriceModelSpot, PriceModelFixed, PriceModelVariable:
		return true
	}
	return false
}

// Provider представляет поставщика электроэнергии (справочные данные)
type Provider struct {
	ID        string    `json:"id" gorm:"type:uuid;primaryKey"`
	Name      string    `json:"name" gorm:"type:varchar(255);not null"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`

	Plans []Plan `json:"plans" gorm:"foreignKey:ProviderID;references:ID"`
}

func (Provider) TableName() string {
	return "providers"
}

func (p *Provider) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	return nil
}

// Plan представляет тариф поставщика
// Семантика Fee и Price зависит от PriceModel:
//   - SPOT:     Fee — разовый месячный сбор, Price не используется
//   - FIXED:    Fee — надбавка в øre за кВт·ч, Price — месячная плата
//   - VARIABLE: Price — надбавка, начисляемая за каждый час
type Plan struct {
	ID          string     `json:"id" gorm:"type:uuid;primaryKey"`
	ProviderID  string     `json:"provider_id" gorm:"type:uuid;not null;index"`
	Title       string     `json:"title" gorm:"type:varchar(255);not null"`
	Description string     `json:"description" gorm:"type:text"`
	PriceModel  PriceModel `json:"price_model" gorm:"type:varchar(20);not null"`
	Fee         float64    `json:"fee" gorm:"not null;default:0"`
	Price       float64    `json:"price" gorm:"not null;default:0"`
	Period      int        `json:"period" gorm:"not null;default:1"` // Срок привязки в месяцах
	CreatedAt   time.Time  `json:"created_at" gorm:"autoCreateTime"`
}

func (Plan) TableName() string {
	return "plans"
}

func (p *Plan) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	return nil
}
