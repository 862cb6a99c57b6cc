// Package pages holds the content of the dashboard shell and the pages that
// still render sample data until their backend endpoints are wired up.
package pages

import (
	"fmt"
	"strings"
	"time"
)

const (
	AppName    = "Horoscopus"
	AppTagline = "BioAstrology 2.0"
	AppVersion = "0.1.0"
)

// NavItem is a sidebar link
type NavItem struct {
	Label string
	Path  string
	Icon  string
}

var Navigation = []NavItem{
	{Label: "Дашборд", Path: "/", Icon: "home"},
	{Label: "Онбординг", Path: "/onboarding", Icon: "sparkles"},
	{Label: "Натальная карта", Path: "/natal-chart", Icon: "chart"},
	{Label: "Прогнозы", Path: "/forecasts", Icon: "cloud"},
	{Label: "Отчёты", Path: "/reports", Icon: "document"},
	{Label: "Профиль", Path: "/profile", Icon: "user"},
}

// IsActive reports whether the nav item should be highlighted for path.
// The dashboard only matches exactly; other items also match sub-paths.
func (n NavItem) IsActive(path string) bool {
	if n.Path == "/" {
		return path == "/"
	}
	return path == n.Path || strings.HasPrefix(path, n.Path+"/")
}

// Section is a dashboard card
type Section struct {
	Title       string
	Description string
	ActionPath  string
	ActionLabel string
}

var DashboardSections = []Section{
	{
		Title:       "Натальная карта",
		Description: "Просматривайте ключевые показатели BioAstrology 2.0 и персональные интерпретации.",
		ActionPath:  "/natal-chart",
		ActionLabel: "Открыть карту",
	},
	{
		Title:       "Прогнозы",
		Description: "Получайте краткосрочные, среднесрочные и долгосрочные прогнозы с практическими рекомендациями.",
		ActionPath:  "/forecasts",
		ActionLabel: "Перейти к прогнозам",
	},
	{
		Title:       "PDF отчёты",
		Description: "Формируйте и скачивайте персонализированные отчёты для клиентов и коллег.",
		ActionPath:  "/reports",
		ActionLabel: "Управлять отчётами",
	},
}

// Metric is a labelled percentage on the natal chart page
type Metric struct {
	Label string
	Value string
}

var NatalMetrics = []Metric{
	{Label: "Элемент Огня", Value: "32%"},
	{Label: "Элемент Воды", Value: "18%"},
	{Label: "Кардинальные знаки", Value: "41%"},
	{Label: "Фиксированные знаки", Value: "37%"},
}

// Horizon is a forecast period
type Horizon struct {
	ID    string
	Label string
}

var Horizons = []Horizon{
	{ID: "day", Label: "День"},
	{ID: "week", Label: "Неделя"},
	{ID: "month", Label: "Месяц"},
	{ID: "quarter", Label: "Квартал"},
	{ID: "year", Label: "Год"},
	{ID: "five_years", Label: "5 лет"},
}

// FindHorizon returns the horizon with the given id, or the first one
func FindHorizon(id string) Horizon {
	for _, h := range Horizons {
		if h.ID == id {
			return h
		}
	}
	return Horizons[0]
}

// ForecastSample is the placeholder synopsis shown for every horizon
type ForecastSample struct {
	Summary       string
	Opportunities []string
	Challenges    []string
	Aspects       []string
}

var Forecast = ForecastSample{
	Summary: "Здесь будет отображаться сводка ключевых транзитов и рекомендаций для выбранного периода.",
	Opportunities: []string{
		"Активизация социального взаимодействия и нетворкинга",
		"Расширение профессиональных горизонтов через обучение",
	},
	Challenges: []string{
		"Возможна эмоциональная нестабильность, связанная с ретроградными аспектами",
		"Необходимость соблюдать баланс между работой и отдыхом",
	},
	Aspects: []string{
		"Транзит Юпитера к управителю X дома — активация карьерных шансов.",
		"Напряжение Марса к Луне — обращайте внимание на эмоциональный баланс.",
		"Солярная прогрессия Солнца — уточнение личной миссии на год.",
	},
}

// Report is an entry in the recent reports list
type Report struct {
	ID        int64
	Title     string
	CreatedAt time.Time
	Status    string
}

var SampleReports = []Report{
	{ID: 1, Title: "Натальный отчёт — Анна", CreatedAt: time.Date(2025, 11, 10, 18, 45, 0, 0, time.UTC), Status: "Готов"},
	{ID: 2, Title: "Прогноз на квартал — Максим", CreatedAt: time.Date(2025, 11, 9, 12, 30, 0, 0, time.UTC), Status: "Формируется"},
}

var monthsGenitive = [...]string{
	"января", "февраля", "марта", "апреля", "мая", "июня",
	"июля", "августа", "сентября", "октября", "ноября", "декабря",
}

// FormatDate renders t as "10 ноября, 18:45"
func FormatDate(t time.Time) string {
	return fmt.Sprintf("%02d %s, %02d:%02d", t.Day(), monthsGenitive[t.Month()-1], t.Hour(), t.Minute())
}
