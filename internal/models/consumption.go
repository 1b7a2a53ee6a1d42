package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Unit единица измерения потребления
const UnitKWH = "kWh"

// Consumption представляет потребление пользователя за один час
// Инвариант: (user_id, from, to) уникальны; To = From + 1 час.
// Записи принадлежат одному пользователю и заменяются целиком
// при генерации (delete + bulk insert), частично не изменяются
type Consumption struct {
	ID          string    `json:"id" gorm:"type:uuid;primaryKey"`
	UserID      string    `json:"user_id" gorm:"type:uuid;not null;uniqueIndex:idx_consumption_user_window"`
	From        time.Time `json:"from" gorm:"not null;uniqueIndex:idx_consumption_user_window;index:idx_consumption_from"`
	To          time.Time `json:"to" gorm:"not null;uniqueIndex:idx_consumption_user_window"`
	Consumption float64   `json:"consumption" gorm:"not null"`
	Unit        string    `json:"unit" gorm:"type:varchar(10);not null;default:'kWh'"`
}

func (Consumption) TableName() string {
	return "consumption"
}

func (c *Consumption) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	return nil
}
