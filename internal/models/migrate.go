package models

import (
	"gorm.io/gorm"
)

// AutoMigrate создает таблицы в БД
// Порядок важен: родительские таблицы до дочерних
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&User{},
		&Provider{},
		&Plan{},
		&ElectricityInfo{},
		&HourPrice{},
		&Consumption{},
	)
}
