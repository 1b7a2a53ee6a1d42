package api

import (
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"stromvalg/server/internal/services"
)

const maxConsumptionDays = 90

// ConsumptionController управляет API endpoints потребления
// Все маршруты защищены RequireAuth и работают только с записями
// аутентифицированного пользователя
type ConsumptionController struct {
	consumption *services.ConsumptionService
	energy      *services.EnergyService
	loc         *time.Location
}

// NewConsumptionController создает новый контроллер потребления
func NewConsumptionController(consumption *services.ConsumptionService, energy *services.EnergyService, loc *time.Location) *ConsumptionController {
	return &ConsumptionController{consumption: consumption, energy: energy, loc: loc}
}

// GetByDay возвращает потребление за сутки
// GET /api/v1/consumption?date=2024-01-15
func (cc *ConsumptionController) GetByDay(c *gin.Context) {
	date, err := time.ParseInLocation("2006-01-02", c.Query("date"), cc.loc)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Ugyldig dato, forventet YYYY-MM-DD"})
		return
	}

	records, err := cc.consumption.GetByDay(CurrentUserID(c), date)
	if err != nil {
		log.Printf("❌ Consumption: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Noe gikk galt"})
		return
	}

	// Пустой список — не ошибка, у пользователя просто нет истории за этот день
	c.JSON(http.StatusOK, gin.H{"consumption": records})
}

// GetLastNDays возвращает потребление за последние n суток
// GET /api/v1/consumption/last/:days
func (cc *ConsumptionController) GetLastNDays(c *gin.Context) {
	days, err := strconv.Atoi(c.Param("days"))
	if err != nil || days < 1 || days > maxConsumptionDays {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Ugyldig antall dager"})
		return
	}

	records, err := cc.consumption.GetLastNDays(CurrentUserID(c), days)
	if err != nil {
		log.Printf("❌ Consumption: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Noe gikk galt"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"consumption": records})
}

// CountHours возвращает размер истории потребления в часах
// GET /api/v1/consumption/hours
func (cc *ConsumptionController) CountHours(c *gin.Context) {
	count, err := cc.consumption.CountHours(CurrentUserID(c))
	if err != nil {
		log.Printf("❌ Consumption: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Noe gikk galt"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"hours": count})
}

// Generate заменяет историю потребления пользователя случайной
// POST /api/v1/consumption/generate
// Затрагивает только записи вызывающего, чужие данные недостижимы
func (cc *ConsumptionController) Generate(c *gin.Context) {
	if err := cc.energy.GenerateRandomEnergy(CurrentUserID(c)); err != nil {
		log.Printf("❌ Energy: ошибка генерации потребления: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Noe gikk galt"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"days":   services.DaysToGenerate,
	})
}
