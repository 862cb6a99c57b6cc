package main

import (
	"horoscopus-web/internal/apperr"
	"horoscopus-web/internal/httpkit"
	"horoscopus-web/internal/pages"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
)

type dashboardContent struct {
	Version  string
	Sections []pages.Section
}

func (app *App) handleDashboard(c *gin.Context) {
	app.render(c, http.StatusOK, "page/dashboard", "Дашборд", dashboardContent{
		Version:  pages.AppVersion,
		Sections: pages.DashboardSections,
	})
}

type natalChartContent struct {
	ChartID int64
	Metrics []pages.Metric
}

func (app *App) handleNatalChart(c *gin.Context) {
	content := natalChartContent{Metrics: pages.NatalMetrics}
	if raw := c.Param("id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || id <= 0 {
			app.handleNotFound(c)
			return
		}
		content.ChartID = id
	}
	app.render(c, http.StatusOK, "page/natal_chart", "Натальная карта", content)
}

type forecastsContent struct {
	Horizons []pages.Horizon
	Active   pages.Horizon
	Sample   pages.ForecastSample
}

func (app *App) handleForecasts(c *gin.Context) {
	app.render(c, http.StatusOK, "page/forecasts", "Прогнозы", forecastsContent{
		Horizons: pages.Horizons,
		Active:   pages.FindHorizon(c.Query("horizon")),
		Sample:   pages.Forecast,
	})
}

type reportsContent struct {
	Reports []pages.Report
}

func (app *App) handleReports(c *gin.Context) {
	app.render(c, http.StatusOK, "page/reports", "Отчёты", reportsContent{Reports: pages.SampleReports})
}

func (app *App) handleNotFound(c *gin.Context) {
	if strings.HasPrefix(c.Request.URL.Path, "/api/") {
		httpkit.HandleError(c, apperr.NotFound("resource not found"))
		return
	}
	// unknown paths reuse a session but never start one
	app.renderFor(c, app.existingSession(c), http.StatusNotFound, "page/not_found", "Страница не найдена", nil)
}
