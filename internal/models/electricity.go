package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PriceRegion представляет ценовую зону Норвегии
type PriceRegion string

const (
	RegionNO1 PriceRegion = "NO1" // Øst-Norge (Oslo)
	RegionNO2 PriceRegion = "NO2" // Sør-Norge (Kristiansand)
	RegionNO3 PriceRegion = "NO3" // Midt-Norge (Trondheim)
	RegionNO4 PriceRegion = "NO4" // Nord-Norge (Tromsø)
	RegionNO5 PriceRegion = "NO5" // Vest-Norge (Bergen)
)

// Valid проверяет, что зона входит в перечисление NO1-NO5
func (r PriceRegion) Valid() bool {
	switch r {
	case RegionNO1, RegionNO2, RegionNO3, RegionNO4, RegionNO5:
		return true
	}
	return false
}

// ElectricityInfo представляет кэш спотовых цен за один день в одной зоне
// Инвариант: не более одной строки на (year, month, day, region).
// Строка создается лениво при первом запросе и никогда не обновляется
type ElectricityInfo struct {
	ID     string      `json:"id" gorm:"type:uuid;primaryKey"`
	Year   int         `json:"year" gorm:"not null;uniqueIndex:idx_electricity_day_region"`
	Month  int         `json:"month" gorm:"not null;uniqueIndex:idx_electricity_day_region"`
	Day    int         `json:"day" gorm:"not null;uniqueIndex:idx_electricity_day_region"`
	Region PriceRegion `json:"region" gorm:"type:varchar(3);not null;uniqueIndex:idx_electricity_day_region"`

	Prices []HourPrice `json:"prices" gorm:"foreignKey:ElectricityInfoID;references:ID"`

	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
}

func (ElectricityInfo) TableName() string {
	return "electricity_info"
}

func (e *ElectricityInfo) BeforeCreate(tx *gorm.DB) error {
	if e.ID == "" {
		e.ID = uuid.New().String()
	}
	return nil
}

// HourPrice представляет спотовую цену за один час (NOK за кВт·ч)
// Неизменяема после кэширования
type HourPrice struct {
	ID                string    `json:"id" gorm:"type:uuid;primaryKey"`
	ElectricityInfoID string    `json:"-" gorm:"type:uuid;not null;index"`
	Price             float64   `json:"price" gorm:"not null"`
	TimeStart         time.Time `json:"time_start" gorm:"not null"`
	TimeEnd           time.Time `json:"time_end" gorm:"not null"`
}

func (HourPrice) TableName() string {
	return "hour_prices"
}

func (h *HourPrice) BeforeCreate(tx *gorm.DB) error {
	if h.ID == "" {
		h.ID = uuid.New().String()
	}
	return nil
}
