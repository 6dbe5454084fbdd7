package httpapi

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/ishistore/backend/internal/assistant"
	"github.com/ishistore/backend/internal/config"
	"github.com/ishistore/backend/internal/db"
	"github.com/ishistore/backend/internal/http/handlers"
	"github.com/ishistore/backend/internal/http/middleware"

	_ "github.com/ishistore/backend/docs"
)

func Router(cfg config.Config, store *db.Store, svc *assistant.Service, logger zerolog.Logger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))

	corsCfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Request-Id"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if cfg.CORSAllowed == "*" {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = []string{cfg.CORSAllowed}
	}
	r.Use(cors.New(corsCfg))

	h := &handlers.Handler{
		Store:               store,
		Assistant:           svc,
		Validator:           validator.New(),
		Logger:              logger,
		AssistantConfigured: cfg.GeminiAPIKey != "" || cfg.Env == "dev",
		RequestTimeout:      cfg.RequestTimeout,
	}

	r.GET("/healthz", h.Healthz)

	api := r.Group("/api")
	{
		api.POST("/assistant/chat", h.AssistantChat)
		api.GET("/products", h.ProductsList)
		api.GET("/tickets", h.TicketsList)
		api.POST("/tickets", h.TicketCreate)
		api.POST("/tickets/:id/close", h.TicketClose)
		api.GET("/customers/:id", h.CustomerGet)
	}

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return r
}
