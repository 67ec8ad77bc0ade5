package handlers

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	"github.com/jobmatchpro/backend/agent"
	"github.com/jobmatchpro/backend/config"
	"github.com/jobmatchpro/backend/mcp"
)

// NewRouter wires middleware and every route on a new gin engine
func NewRouter(cfg *config.Config, jobAgent *agent.JobAgent, logger *zap.Logger, version string) *gin.Engine {
	matchHandler := NewMatchHandler(jobAgent, cfg.Server.MaxUploadMB<<20, logger)
	cvHandler := NewCVHandler(jobAgent, logger)
	contactHandler := NewContactHandler(logger)
	systemHandler := NewSystemHandler(jobAgent, version)
	mcpServer := mcp.NewServer(jobAgent.Tools(), version, logger)

	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(RequestIDMiddleware())
	router.Use(LoggerMiddleware(logger.Named("http")))
	router.Use(cors.New(corsConfig(cfg.Server.AllowOrigins)))

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	router.GET("/health", systemHandler.HealthCheck)

	api := router.Group("/api")
	{
		api.POST("/match", matchHandler.Match)
		api.POST("/parse-cv", cvHandler.ParseCV)
		api.POST("/contact-hr", contactHandler.ContactHR)

		api.GET("/tools", systemHandler.GetTools)

		// MCP endpoints for external AI agents
		mcpServer.RegisterRoutes(api)
	}

	return router
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", RequestIDHeader},
		ExposeHeaders:    []string{"Content-Length", RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}

	for _, o := range origins {
		if o == "*" {
			cfg.AllowAllOrigins = true
			return cfg
		}
	}
	if len(origins) == 0 {
		cfg.AllowAllOrigins = true
		return cfg
	}
	cfg.AllowOrigins = origins
	return cfg
}
