package main

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"stromvalg/server/internal/api"
	"stromvalg/server/internal/config"
	"stromvalg/server/internal/database"
	"stromvalg/server/internal/models"
	"stromvalg/server/internal/services"
)

func main() {
	// Загружаем переменные окружения из .env файла (если существует)
	// Игнорируем ошибку, если файл не найден (для production окружений)
	if err := godotenv.Load(); err != nil {
		log.Printf("ℹ️ .env файл не найден, используем переменные окружения системы")
	} else {
		log.Printf("✅ Переменные окружения загружены из .env файла")
	}

	// Загрузка конфигурации
	cfg := config.Load()

	// Часовой пояс — явный параметр, а не системный: от него зависят
	// ключи кэша цен и границы суток потребления
	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		log.Fatalf("❌ Неизвестный часовой пояс %q: %v", cfg.Timezone, err)
	}
	log.Printf("🕐 Часовой пояс: %s", cfg.Timezone)

	// Подключение к PostgreSQL
	db, err := database.ConnectPostgres(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("❌ PostgreSQL connection failed: %v", err)
	}
	defer database.ClosePostgres(db)

	// Выполняем миграции
	if err := models.AutoMigrate(db); err != nil {
		log.Fatalf("❌ Migration failed: %v", err)
	}
	log.Println("✅ Database migrations completed")

	// Подключение к Redis (хранилище сессий)
	// Без Redis продолжаем в деградированном режиме: logout не отзывает токены
	redisClient, err := database.ConnectRedis(cfg.RedisURL)
	if err != nil {
		log.Printf("⚠️ Redis connection failed: %v (continuing without Redis)", err)
		redisClient = nil
	}
	defer database.CloseRedis(redisClient)

	sessionTTL := time.Duration(cfg.SessionTTLHours) * time.Hour
	sessions := api.NewSessionStore(redisClient, sessionTTL)

	// Инициализация сервисов
	priceClient := services.NewPriceClient(cfg.PriceAPIBaseURL)
	priceService := services.NewPriceService(db, priceClient, loc)
	consumptionService := services.NewConsumptionService(db, loc)
	energyService := services.NewEnergyService(db, loc)
	providerService := services.NewProviderService(db)
	estimateService := services.NewEstimateService()
	log.Println("✅ Services initialized")

	// Отключаем debug-логи gin
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	// Health check endpoint
	r.GET("/api/v1/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"service": "Stromvalg Server",
			"version": "1.0.0",
		})
	})

	// Логирование всех запросов
	r.Use(func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		method := c.Request.Method

		c.Next()

		latency := time.Since(start)
		status := c.Writer.Status()
		log.Printf("🌐 %s %s - Status: %d - Latency: %v", method, path, status, latency)
	})

	// CORS для фронтенда
	r.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})

	// API routes
	apiGroup := r.Group("/api/v1")
	requireAuth := api.RequireAuth(sessions, cfg.JWTSecret)
	requireAdmin := api.RequireAdmin(db)

	// Авторизация
	authController := api.NewAuthController(db, sessions, cfg.JWTSecret, sessionTTL)
	authGroup := apiGroup.Group("/auth")
	{
		authGroup.POST("/register", authController.Register)
		authGroup.POST("/login", authController.Login)
		authGroup.POST("/logout", requireAuth, authController.Logout)
	}
	log.Println("🔐 Auth endpoints enabled: /api/v1/auth")

	// Спотовые цены (публичные)
	electricityController := api.NewElectricityController(priceService, loc)
	priceGroup := apiGroup.Group("/prices")
	{
		priceGroup.GET("", electricityController.GetByDay)
		priceGroup.GET("/today", electricityController.GetToday)
		priceGroup.GET("/last/:days", electricityController.GetLastNDays)
	}
	log.Println("⚡ Price endpoints enabled: /api/v1/prices")

	// Потребление (только для аутентифицированных)
	consumptionController := api.NewConsumptionController(consumptionService, energyService, loc)
	consumptionGroup := apiGroup.Group("/consumption")
	consumptionGroup.Use(requireAuth)
	{
		consumptionGroup.GET("", consumptionController.GetByDay)
		consumptionGroup.GET("/last/:days", consumptionController.GetLastNDays)
		consumptionGroup.GET("/hours", consumptionController.CountHours)
		consumptionGroup.POST("/generate", consumptionController.Generate)
	}
	log.Println("📊 Consumption endpoints enabled: /api/v1/consumption")

	// Поставщики, тарифы и оценка стоимости
	providerController := api.NewProviderController(providerService, priceService, consumptionService, estimateService)
	providerGroup := apiGroup.Group("/providers")
	{
		providerGroup.GET("", providerController.GetProviders)
		providerGroup.GET("/estimates", requireAuth, providerController.GetEstimates)
		providerGroup.POST("", requireAuth, requireAdmin, providerController.CreateProvider)
		providerGroup.POST("/:id/plans", requireAuth, requireAdmin, providerController.CreatePlan)
	}
	log.Println("🏢 Provider endpoints enabled: /api/v1/providers")

	// Запуск на порту из конфига
	port := cfg.ServerPort
	log.Printf("🚀 Server starting on port %s", port)
	log.Printf("📡 API доступен на http://0.0.0.0:%s/api/v1", port)
	if err := r.Run("0.0.0.0:" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
