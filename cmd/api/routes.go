package main

import (
	"net/http"

	"history-map/internal/metrics"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// registerRoutes sets up all API endpoints
func (app *App) registerRoutes() {
	// Health check endpoint
	app.router.GET("/ping", app.handlePing)

	// Map state
	app.router.GET("/map", app.handleGetMap)
	app.router.GET("/countries", app.handleGetCountries)
	app.router.GET("/facts/:name", app.handleGetFact)

	// Country interaction
	app.router.POST("/countries/:name/enter", app.handleEnter)
	app.router.POST("/countries/:name/leave", app.handleLeave)
	app.router.POST("/countries/:name/click", app.handleClick)
	app.router.POST("/click", app.handleClickAt)
	app.router.GET("/canvas/:id", app.handleGetCanvas)

	// Location controls
	app.router.POST("/location", app.handleLocate)
	app.router.DELETE("/location", app.handleRemoveLocation)

	// Theme control
	app.router.POST("/theme/toggle", app.handleToggleTheme)

	// Metrics
	app.router.GET("/metrics", gin.WrapH(metrics.Handler()))

	// Swagger documentation
	app.router.GET("/swagger/*any", func(c *gin.Context) {
		path := c.Param("any")
		if path == "/" {
			c.Redirect(http.StatusMovedPermanently, "/swagger/index.html")
			return
		}
		ginSwagger.WrapHandler(swaggerFiles.Handler)(c)
	})
}
