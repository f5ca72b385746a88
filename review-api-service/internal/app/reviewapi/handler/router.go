package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"productreview/pkg/logger"
	"productreview/pkg/metrics"
)

func SetupRoutes(products *ProductHandler, ai *AIHandler, alerts *PriceAlertHandler) *gin.Engine {
	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(logger.GinLoggerMiddleware())
	router.Use(metrics.GinPrometheusMiddleware("review-api"))

	// Мобильные клиенты ходят с любых origin
	router.Use(cors.Default())

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"service": "review-api",
		})
	})

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := router.Group("/api")
	{
		productsGroup := api.Group("/products")
		{
			productsGroup.GET("", products.ListProducts)
			productsGroup.GET("/categories", products.GetCategories)
			productsGroup.GET("/compare", products.CompareProducts)
			productsGroup.GET("/:id", products.GetProduct)
			productsGroup.GET("/:id/reviews", products.GetReviews)
			productsGroup.POST("/:id/reviews", products.CreateReview)
			productsGroup.PUT("/:id/price", alerts.UpdatePrice)
			productsGroup.PUT("/reviews/:reviewId/helpful", products.MarkReviewHelpful)
		}

		aiGroup := api.Group("/ai")
		{
			aiGroup.POST("/chat", ai.Chat)
			aiGroup.POST("/chat/product/:productId", ai.ChatAboutProduct)
			aiGroup.POST("/compare", ai.Compare)
		}

		api.GET("/price-alerts/drops", alerts.RecentDrops)
	}

	return router
}

func parseIntDefault(raw string, def int) int {
	if raw == "" {
		return def
	}
	parsed, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return parsed
}

func parseFloatParam(raw string) *float64 {
	if raw == "" {
		return nil
	}
	parsed, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil
	}
	return &parsed
}

func parseIDList(raw string) ([]int64, error) {
	if raw == "" {
		return nil, nil
	}
	parts := strings.Split(raw, ",")
	ids := make([]int64, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := strconv.ParseInt(part, 10, 64)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}
