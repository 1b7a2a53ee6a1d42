package api

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"

	"stromvalg/server/internal/models"
	"stromvalg/server/internal/services"
)

// Окно оценки стоимости: последние 30 суток
const estimateDays = 30

// ProviderController управляет API endpoints поставщиков и оценки стоимости
type ProviderController struct {
	providers   *services.ProviderService
	prices      *services.PriceService
	consumption *services.ConsumptionService
	estimator   *services.EstimateService
}

// NewProviderController создает новый контроллер поставщиков
func NewProviderController(
	providers *services.ProviderService,
	prices *services.PriceService,
	consumption *services.ConsumptionService,
	estimator *services.EstimateService,
) *ProviderController {
	return &ProviderController{
		providers:   providers,
		prices:      prices,
		consumption: consumption,
		estimator:   estimator,
	}
}

// GetProviders возвращает всех поставщиков с тарифами
// GET /api/v1/providers
func (pc *ProviderController) GetProviders(c *gin.Context) {
	providers, err := pc.providers.GetProviders()
	if err != nil {
		log.Printf("❌ Providers: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Noe gikk galt"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"providers": providers,
		"count":     len(providers),
	})
}

// CreateProviderRequest представляет запрос на создание поставщика
type CreateProviderRequest struct {
	Name string `json:"name" binding:"required"`
}

// CreateProvider создает нового поставщика (только администратор)
// POST /api/v1/providers
func (pc *ProviderController) CreateProvider(c *gin.Context) {
	var req CreateProviderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Ugyldige data",
			"details": err.Error(),
		})
		return
	}

	provider, err := pc.providers.CreateProvider(req.Name)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, provider)
}

// CreatePlan создает тариф поставщика (только администратор)
// POST /api/v1/providers/:id/plans
func (pc *ProviderController) CreatePlan(c *gin.Context) {
	var plan models.Plan
	if err := c.ShouldBindJSON(&plan); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Ugyldige data",
			"details": err.Error(),
		})
		return
	}
	plan.ProviderID = c.Param("id")

	if err := pc.providers.CreatePlan(&plan); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, plan)
}

// PlanEstimate оценка одного тарифа: либо сумма, либо причина отказа
// Транзиентное значение, никогда не кэшируется и не сохраняется
type PlanEstimate struct {
	PlanID       string            `json:"plan_id"`
	ProviderName string            `json:"provider_name"`
	Title        string            `json:"title"`
	PriceModel   models.PriceModel `json:"price_model"`
	Estimate     *float64          `json:"estimate,omitempty"`
	Message      string            `json:"message,omitempty"`
}

// GetEstimates оценивает стоимость всех тарифов за последние 30 суток
// GET /api/v1/providers/estimates?region=NO1 (защищен RequireAuth)
//
// Цены и потребление за 30 суток запрашиваются параллельно и соединяются
// поиндексно: элемент i обоих рядов относится к одному и тому же часу
func (pc *ProviderController) GetEstimates(c *gin.Context) {
	region, ok := parseRegion(c)
	if !ok {
		return
	}
	userID := CurrentUserID(c)

	var (
		prices      []models.HourPrice
		consumption []models.Consumption
	)
	g, ctx := errgroup.WithContext(c.Request.Context())
	g.Go(func() error {
		var err error
		prices, err = pc.prices.GetForLastNDays(ctx, region, estimateDays)
		return err
	})
	g.Go(func() error {
		var err error
		consumption, err = pc.consumption.GetLastNDays(userID, estimateDays)
		return err
	})
	if err := g.Wait(); err != nil {
		respondPriceError(c, err)
		return
	}

	providers, err := pc.providers.GetProviders()
	if err != nil {
		log.Printf("❌ Providers: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Noe gikk galt"})
		return
	}

	estimates := make([]PlanEstimate, 0)
	for _, provider := range providers {
		for _, plan := range provider.Plans {
			result := PlanEstimate{
				PlanID:       plan.ID,
				ProviderName: provider.Name,
				Title:        plan.Title,
				PriceModel:   plan.PriceModel,
			}

			total, err := pc.estimator.EstimateCost(plan, consumption, prices)
			switch {
			case err == nil:
				result.Estimate = &total
			case isInsufficientData(err):
				result.Message = "Ikke nok dager med forbruk. Gå på konto-siden og legg til forbruk"
			default:
				// Единственный оставшийся вариант — тариф с неизвестной моделью
				log.Printf("❌ Estimates: тариф %s: %v", plan.ID, err)
				result.Message = "Noe gikk galt"
			}
			estimates = append(estimates, result)
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"region":    region,
		"days":      estimateDays,
		"estimates": estimates,
	})
}

func isInsufficientData(err error) bool {
	var insufficientErr *services.InsufficientDataError
	return errors.As(err, &insufficientErr)
}
