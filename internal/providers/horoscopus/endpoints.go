package horoscopus

// Paths relative to the API base URL. Only the autocomplete and profile
// endpoints are called today; the list endpoints back pages that still render
// sample data.
const (
	pathLocationAutocomplete = "/core/locations/autocomplete"
	pathProfiles             = "/accounts/profiles/"
	pathNatalCharts          = "/charts/natal-charts"
	pathForecasts            = "/forecasts/forecasts"
	pathReports              = "/reports/reports"
)
