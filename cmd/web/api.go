package main

import (
	"encoding/json"
	"horoscopus-web/internal/apperr"
	"horoscopus-web/internal/birthdata"
	"horoscopus-web/internal/httpkit"
	"horoscopus-web/internal/types"
	"net/http"

	"github.com/gin-gonic/gin"
)

const maxBodyBytes = 64 << 10

// AutocompleteInput defines the query parameters for location autocomplete
type AutocompleteInput struct {
	Query string `form:"q"`                                      // Search text
	Limit int    `form:"limit" binding:"omitempty,min=1,max=20"` // Maximum number of results
}

// handleAutocomplete godoc
// @Summary Location autocomplete
// @Description Search locations by name. Queries shorter than three characters return an empty list without searching. Upstream failures also return an empty list.
// @Tags locations
// @Produce json
// @Param q query string false "Search text" example(Moscow)
// @Param limit query int false "Maximum number of results" minimum(1) maximum(20) default(6)
// @Success 200 {array} types.LocationSuggestion
// @Failure 400 {object} httpkit.ErrorResponse
// @Failure 429 {object} httpkit.ErrorResponse
// @Router /api/v1/locations/autocomplete [get]
func (app *App) handleAutocomplete(c *gin.Context) {
	var input AutocompleteInput
	if err := c.ShouldBindQuery(&input); err != nil {
		httpkit.HandleError(c, apperr.BadRequest(err.Error()))
		return
	}

	suggestions, err := app.autocomplete.Fetch(c.Request.Context(), input.Query, input.Limit)
	if err != nil {
		app.logger.Warn("location autocomplete failed",
			"query", input.Query,
			"limit", input.Limit,
			"error", err,
		)
		suggestions = []types.LocationSuggestion{}
	}

	c.JSON(http.StatusOK, suggestions)
}

// ValidateResponse is the outcome of a birth data validation
type ValidateResponse struct {
	OK     bool                    `json:"ok"`
	Fields []birthdata.FieldResult `json:"fields"`
	Values *birthdata.Values       `json:"values,omitempty"`
}

// handleValidateBirthData godoc
// @Summary Validate birth data
// @Description Validate onboarding birth data. Location ids may be numbers or numeric strings. Unknown keys are rejected.
// @Tags birth-data
// @Accept json
// @Produce json
// @Param body body birthdata.Input true "Birth data"
// @Success 200 {object} ValidateResponse
// @Failure 400 {object} httpkit.ErrorResponse
// @Failure 422 {object} ValidateResponse
// @Router /api/v1/birth-data/validate [post]
func (app *App) handleValidateBirthData(c *gin.Context) {
	dec := json.NewDecoder(http.MaxBytesReader(c.Writer, c.Request.Body, maxBodyBytes))
	dec.DisallowUnknownFields()

	var input birthdata.Input
	if err := dec.Decode(&input); err != nil {
		httpkit.HandleError(c, apperr.BadRequest("invalid request body: "+err.Error()))
		return
	}

	res := app.schema.Validate(input)
	resp := ValidateResponse{OK: res.OK(), Fields: res.Fields}
	if !resp.OK {
		c.JSON(http.StatusUnprocessableEntity, resp)
		return
	}
	resp.Values = &res.Values
	c.JSON(http.StatusOK, resp)
}
