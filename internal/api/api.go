package api

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/smartkitchen/inventory-api/internal/api/handlers"
	"github.com/smartkitchen/inventory-api/internal/api/middleware"
	"github.com/smartkitchen/inventory-api/internal/recommend"
	"github.com/smartkitchen/inventory-api/internal/service"
)

type Services struct {
	Consumption *service.ConsumptionService
	Forecast    *service.ForecastService
	Shopping    *service.ShoppingService
	MealPlan    *service.MealPlanService
	Dashboard   *service.DashboardService
	Recommender recommend.Recommender
}

// Health reports the readiness of the API's dependencies. Degraded
// dependencies do not fail the endpoint, they are reported as such.
type Health struct {
	StorageOK func() bool
	AIOK      bool
}

func NewRouter(services *Services, health Health, maxParallel int, allowedOrigins []string) *gin.Engine {
	router := gin.New()

	router.Use(middleware.Logger())
	router.Use(middleware.Recovery())
	defaultOrigins := []string{"http://localhost:3000", "http://127.0.0.1:3000"}
	corsConfig := cors.Config{
		AllowOrigins:     defaultOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(allowedOrigins) > 0 {
		normalizedOrigins, allowAll := normalizeAllowedOrigins(allowedOrigins)
		if allowAll {
			corsConfig.AllowOrigins = nil
			corsConfig.AllowOriginFunc = func(origin string) bool { return true }
		} else if len(normalizedOrigins) > 0 {
			corsConfig.AllowOrigins = normalizedOrigins
		}
	}
	router.Use(cors.New(corsConfig))

	router.GET("/health", healthHandler(health))

	apiGroup := router.Group("/api/v1")

	if services != nil {
		if services.Consumption != nil {
			consumptionHandler := handlers.NewConsumptionHandler(services.Consumption)
			apiGroup.POST("/log_consumption", consumptionHandler.LogConsumption)
			apiGroup.GET("/items", consumptionHandler.GetItems)
			apiGroup.GET("/item_history/:item_name", consumptionHandler.GetItemHistory)
		}

		if services.Forecast != nil {
			forecastHandler := handlers.NewForecastHandler(services.Forecast)
			apiGroup.GET("/predict/:item_name", forecastHandler.PredictItem)
			apiGroup.GET("/predict_expiry", forecastHandler.PredictExpiry)
		}

		if services.Shopping != nil {
			shoppingHandler := handlers.NewShoppingHandler(services.Shopping)
			apiGroup.GET("/smart_shopping_list", shoppingHandler.GetSmartShoppingList)
			apiGroup.POST("/enhanced_smart_shopping_list", shoppingHandler.PostEnhancedShoppingList)
		}

		if services.MealPlan != nil {
			mealPlanHandler := handlers.NewMealPlanHandler(services.MealPlan)
			apiGroup.POST("/generate_meal_plan", mealPlanHandler.GenerateMealPlan)
			apiGroup.GET("/meal_plans", mealPlanHandler.GetMealPlans)
			apiGroup.POST("/smart_meal_planner", mealPlanHandler.SmartMealPlanner)
		}

		recommendHandler := handlers.NewRecommendHandler(services.Recommender, maxParallel)
		apiGroup.POST("/suggest_similar_products", recommendHandler.SuggestSimilarProducts)
		apiGroup.POST("/suggest_for_shopping_list", recommendHandler.SuggestForShoppingList)

		if services.Dashboard != nil {
			dashboardHandler := handlers.NewDashboardHandler(services.Dashboard)
			apiGroup.GET("/kitchen_dashboard", dashboardHandler.GetKitchenDashboard)
		}
	}

	return router
}

func healthHandler(health Health) gin.HandlerFunc {
	return func(c *gin.Context) {
		storageOK := true
		if health.StorageOK != nil {
			storageOK = health.StorageOK()
		}

		status := "healthy"
		if !storageOK || !health.AIOK {
			status = "degraded"
		}

		dataStorage := "accessible"
		if !storageOK {
			dataStorage = "inaccessible"
		}
		aiService := "available"
		if !health.AIOK {
			aiService = "unavailable"
		}

		c.JSON(http.StatusOK, gin.H{
			"status":       status,
			"timestamp":    time.Now().Format(time.RFC3339),
			"data_storage": dataStorage,
			"ai_service":   aiService,
		})
	}
}

func normalizeAllowedOrigins(origins []string) ([]string, bool) {
	var (
		parsed   []string
		allowAll bool
	)
	for _, origin := range origins {
		parts := strings.Split(origin, ",")
		for _, part := range parts {
			trimmed := strings.TrimSpace(part)
			if trimmed == "" {
				continue
			}
			if trimmed == "*" {
				allowAll = true
				continue
			}
			parsed = append(parsed, trimmed)
		}
	}
	return parsed, allowAll
}
