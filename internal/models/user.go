package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UserRole представляет роль пользователя в системе
// USER — обычный пользователь (сравнивает тарифы, генерирует потребление)
// ADMIN — администратор (управляет справочником поставщиков и тарифов)
type UserRole string

const (
	RoleUser  UserRole = "USER"
	RoleAdmin UserRole = "ADMIN"
)

// User представляет аккаунт пользователя
// Потребление (Consumption) принадлежит пользователю и заменяется целиком
// при генерации — см. EnergyService
type User struct {
	ID           string    `json:"id" gorm:"type:uuid;primaryKey"`
	Name         string    `json:"name" gorm:"type:varchar(255)"`
	Email        string    `json:"email" gorm:"type:varchar(255);uniqueIndex;not null"`
	PasswordHash string    `json:"-" gorm:"type:varchar(255);not null"` // Не возвращаем в JSON
	Role         UserRole  `json:"role" gorm:"type:varchar(20);not null;default:'USER'"`
	CreatedAt    time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt    time.Time `json:"updated_at" gorm:"autoUpdateTime"`

	Consumption []Consumption `json:"-" gorm:"foreignKey:UserID;references:ID"`
}

func (User) TableName() string {
	return "users"
}

// BeforeCreate генерирует UUID если не указан
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.New().String()
	}
	return nil
}

// IsAdmin проверяет, является ли пользователь администратором
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
