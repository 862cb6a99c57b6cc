package main

import (
	"horoscopus-web/internal/httpkit"
	"horoscopus-web/web"
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// registerRoutes sets up pages, onboarding endpoints and the JSON API
func (app *App) registerRoutes() {
	// Health check endpoint
	app.router.GET("/ping", app.handlePing)

	app.router.StaticFS("/static", http.FS(web.Static()))

	// JSON API
	api := app.router.Group("/api/v1")
	api.GET("/locations/autocomplete", app.limiter.RateLimit(), app.handleAutocomplete)
	api.POST("/birth-data/validate", app.handleValidateBirthData)

	// Server-rendered pages, each tied to a browser session
	site := app.router.Group("", httpkit.ContentSecurityPolicy(), app.withSession())
	site.GET("/", app.handleDashboard)
	site.GET("/natal-chart", app.handleNatalChart)
	site.GET("/natal-chart/:id", app.handleNatalChart)
	site.GET("/forecasts", app.handleForecasts)
	site.GET("/reports", app.handleReports)
	site.GET("/profile", app.handleProfile)
	site.POST("/profile", app.handleSaveProfile)

	site.GET("/onboarding", app.handleOnboarding)
	site.POST("/onboarding", app.handleSubmitOnboarding)
	site.GET("/onboarding/locations/:field", app.limiter.RateLimit(), app.handleLocationSearch)
	site.POST("/onboarding/locations/:field/select", app.handleLocationSelect)
	site.POST("/onboarding/validate/:name", app.handleBlur)

	app.router.NoRoute(httpkit.ContentSecurityPolicy(), app.handleNotFound)

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
