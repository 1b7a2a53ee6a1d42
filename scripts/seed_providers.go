package main

import (
	"log"

	"github.com/joho/godotenv"

	"stromvalg/server/internal/config"
	"stromvalg/server/internal/database"
	"stromvalg/server/internal/models"
)

// Заполняет справочник поставщиков и тарифов тестовыми данными
// Запуск: go run ./scripts
func main() {
	// Загружаем переменные окружения
	if err := godotenv.Load(); err != nil {
		log.Printf("⚠️ .env файл не найден, используем переменные окружения системы")
	}

	cfg := config.Load()

	db, err := database.ConnectPostgres(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("❌ PostgreSQL connection failed: %v", err)
	}
	defer database.ClosePostgres(db)

	if err := models.AutoMigrate(db); err != nil {
		log.Fatalf("❌ Migration failed: %v", err)
	}

	providers := []models.Provider{
		{
			Name: "Fjordkraft",
			Plans: []models.Plan{
				{
					Title:       "Spot Fjordkraft",
					Description: "Spotpris time for time pluss fast månedsbeløp",
					PriceModel:  models.PriceModelSpot,
					Fee:         49,
					Period:      1,
				},
				{
					Title:       "Fastpris 12 mnd",
					Description: "Forutsigbar pris i 12 måneder",
					PriceModel:  models.PriceModelFixed,
					Fee:         89.9,
					Price:       39,
					Period:      12,
				},
			},
		},
		{
			Name: "Tibber",
			Plans: []models.Plan{
				{
					Title:       "Tibber Spot",
					Description: "Ren spotpris med fast påslag",
					PriceModel:  models.PriceModelSpot,
					Fee:         39,
					Period:      1,
				},
			},
		},
		{
			Name: "NorgesEnergi",
			Plans: []models.Plan{
				{
					Title:       "Variabel kraftpris",
					Description: "Variabel pris som følger markedet",
					PriceModel:  models.PriceModelVariable,
					Price:       0.05,
					Period:      1,
				},
				{
					Title:       "Fastpris 6 mnd",
					Description: "Fast pris i 6 måneder",
					PriceModel:  models.PriceModelFixed,
					Fee:         95.5,
					Price:       49,
					Period:      6,
				},
			},
		},
	}

	created := 0
	for i := range providers {
		var existing models.Provider
		if err := db.Where("name = ?", providers[i].Name).First(&existing).Error; err == nil {
			log.Printf("ℹ️ Поставщик %s уже существует, пропускаем", providers[i].Name)
			continue
		}
		if err := db.Create(&providers[i]).Error; err != nil {
			log.Fatalf("❌ Ошибка создания поставщика %s: %v", providers[i].Name, err)
		}
		created++
		log.Printf("✅ Создан поставщик %s (%d тарифов)", providers[i].Name, len(providers[i].Plans))
	}

	log.Printf("🎉 Готово: создано %d поставщиков", created)
}
