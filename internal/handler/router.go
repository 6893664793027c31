package handler

import (
	"context"
	"net/http"

	_ "docflow/api/swagger" // swagger docs
	"docflow/internal/middleware"
	"docflow/internal/websocket"
	"docflow/pkg/response"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
)

// RouterDeps carries everything the HTTP surface is built from.
type RouterDeps struct {
	Companies   *CompanyHandler
	Documents   *DocumentHandler
	Validations *ValidationHandler
	Audits      *AuditHandler
	Hub         *websocket.Hub
	Ping        func(ctx context.Context) error
	CORSOrigins []string
	Logger      *zap.Logger
}

func NewRouter(deps RouterDeps) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), middleware.ExtractActor(), middleware.RequestLogger(deps.Logger))

	if len(deps.CORSOrigins) > 0 {
		corsConfig := cors.DefaultConfig()
		corsConfig.AllowOrigins = deps.CORSOrigins
		corsConfig.AllowCredentials = true
		corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Accept", middleware.ActorHeader}
		corsConfig.AllowMethods = []string{"GET", "POST", "DELETE", "OPTIONS"}
		router.Use(cors.New(corsConfig))
	}

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	router.GET("/health", func(c *gin.Context) {
		if deps.Ping != nil {
			if err := deps.Ping(c.Request.Context()); err != nil {
				_ = c.Error(err)
				c.JSON(http.StatusServiceUnavailable, response.Error(http.StatusServiceUnavailable, "database unavailable"))
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{"status": "OK"})
	})

	if deps.Hub != nil {
		router.GET("/ws", func(c *gin.Context) {
			websocket.ServeWs(deps.Hub, c)
		})
	}

	api := router.Group("")
	deps.Companies.RegisterRoutes(api)
	deps.Documents.RegisterRoutes(api)
	deps.Validations.RegisterRoutes(api)
	deps.Audits.RegisterRoutes(api)

	return router
}
