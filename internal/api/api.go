// internal/api/api.go
package api

import (
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/kocayazbey/Ayazlogistics-sub003/internal/api/handlers"
	"github.com/kocayazbey/Ayazlogistics-sub003/internal/api/middleware"
	"github.com/kocayazbey/Ayazlogistics-sub003/internal/service"
)

func NewRouter(slottingService *service.SlottingService, allowedOrigins []string) *gin.Engine {
	router := gin.New()

	// Add middleware
	router.Use(middleware.Logger())
	router.Use(middleware.Recovery())
	defaultOrigins := []string{"http://localhost:3000", "http://127.0.0.1:3000"}
	corsConfig := cors.Config{
		AllowOrigins:     defaultOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Tenant-ID"},
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

	apiGroup := router.Group("/api/v1")

	if slottingService != nil {
		slottingHandler := handlers.NewSlottingHandler(slottingService)
		slottingGroup := apiGroup.Group("/slotting")
		{
			slottingGroup.GET("/strategies", slottingHandler.Strategies)
			warehouseGroup := slottingGroup.Group("/warehouses/:warehouse_id")
			{
				warehouseGroup.POST("/analyze", slottingHandler.Analyze)
				warehouseGroup.POST("/simulate", slottingHandler.Simulate)
				warehouseGroup.POST("/recommendations/implement", slottingHandler.Implement)
				warehouseGroup.POST("/export", slottingHandler.Export)
				warehouseGroup.GET("/reports", slottingHandler.Reports)
			}
		}
	}

	return router
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
