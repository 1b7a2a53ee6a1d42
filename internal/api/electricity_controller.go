package api

import (
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"stromvalg/server/internal/models"
	"stromvalg/server/internal/services"
)

// Жесткий потолок, чтобы публичный endpoint не раскручивал
// произвольное число запросов к апстриму
const maxPriceDays = 31

// ElectricityController управляет API endpoints спотовых цен
type ElectricityController struct {
	prices *services.PriceService
	loc    *time.Location
}

// NewElectricityController создает новый контроллер цен
func NewElectricityController(prices *services.PriceService, loc *time.Location) *ElectricityController {
	return &ElectricityController{prices: prices, loc: loc}
}

// GetByDay возвращает 24 почасовые цены за указанный день
// GET /api/v1/prices?date=2024-01-15&region=NO1
func (ec *ElectricityController) GetByDay(c *gin.Context) {
	dateStr := c.Query("date")
	date, err := time.ParseInLocation("2006-01-02", dateStr, ec.loc)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Ugyldig dato, forventet YYYY-MM-DD"})
		return
	}

	region, ok := parseRegion(c)
	if !ok {
		return
	}

	prices, err := ec.prices.GetByDay(c.Request.Context(), date, region)
	if err != nil {
		respondPriceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"date":   dateStr,
		"region": region,
		"prices": prices,
	})
}

// GetToday возвращает цены за текущие сутки
// GET /api/v1/prices/today?region=NO1
func (ec *ElectricityController) GetToday(c *gin.Context) {
	region, ok := parseRegion(c)
	if !ok {
		return
	}

	prices, err := ec.prices.GetByDay(c.Request.Context(), time.Now().In(ec.loc), region)
	if err != nil {
		respondPriceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"region": region,
		"prices": prices,
	})
}

// GetLastNDays возвращает цены за последние n суток
// GET /api/v1/prices/last/:days?region=NO1
func (ec *ElectricityController) GetLastNDays(c *gin.Context) {
	days, err := strconv.Atoi(c.Param("days"))
	if err != nil || days < 1 || days > maxPriceDays {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Ugyldig antall dager"})
		return
	}

	region, ok := parseRegion(c)
	if !ok {
		return
	}

	prices, err := ec.prices.GetForLastNDays(c.Request.Context(), region, days)
	if err != nil {
		respondPriceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"region": region,
		"days":   days,
		"prices": prices,
	})
}

// parseRegion читает и валидирует query-параметр region
func parseRegion(c *gin.Context) (models.PriceRegion, bool) {
	region := models.PriceRegion(c.Query("region"))
	if !region.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Ugyldig prisområde, forventet NO1-NO5"})
		return "", false
	}
	return region, true
}

// respondPriceError переводит типизированные ошибки шлюза цен в HTTP-ответы
func respondPriceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrNoPricesForDate):
		c.JSON(http.StatusNotFound, gin.H{"error": "Finner ikke strømpriser for denne datoen"})
	case errors.Is(err, services.ErrMalformedPriceData), errors.Is(err, services.ErrUpstreamFailure):
		log.Printf("⚠️ Prices: ошибка апстрима: %v", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "Noe gikk galt"})
	default:
		log.Printf("❌ Prices: внутренняя ошибка: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Noe gikk galt"})
	}
}
