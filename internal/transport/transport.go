package transport

import (
	"github.com/ds124wfegd/adstudio/internal/pkg/metrics"
	"github.com/ds124wfegd/adstudio/internal/transport/middleware"
	"github.com/gin-gonic/gin"
)

const requestIDKey = middleware.RequestIDKey

func InitRoutes(adHandler *AdHandler, maxUploadBytes int64) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger())
	if maxUploadBytes > 0 {
		router.MaxMultipartMemory = maxUploadBytes
		router.Use(middleware.BodyLimit(maxUploadBytes))
	}
	router.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type")
		c.Header("Access-Control-Expose-Headers", "X-Render-ID, X-Request-ID")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})

	router.POST("/generate-image/", adHandler.GenerateImage)
	router.POST("/create-ad/", adHandler.CreateAd)
	router.GET("/images/:id", adHandler.GetImage)
	router.DELETE("/images/:id", adHandler.DeleteImage)

	router.GET("/metrics", gin.WrapH(metrics.Handler()))

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"service": "adstudio",
		})
	})
	return router
}
