package main

import (
	"horoscopus-web/internal/apperr"
	"horoscopus-web/internal/birthdata"
	"horoscopus-web/internal/httpkit"
	"horoscopus-web/internal/onboarding"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

type onboardingContent struct {
	Form            onboarding.FormView
	TimezoneOptions []string
}

func (app *App) renderOnboarding(c *gin.Context, status int) {
	app.render(c, status, "page/onboarding", "Онбординг", onboardingContent{
		Form:            sessionFrom(c).Form.View(),
		TimezoneOptions: onboarding.TimezoneOptions,
	})
}

func (app *App) handleOnboarding(c *gin.Context) {
	app.renderOnboarding(c, http.StatusOK)
}

// applyTextFields copies the posted plain text values into the form.
// Location ids in the post are ignored, they are only set by selection.
func applyTextFields(c *gin.Context, form *onboarding.Form) {
	for _, f := range []birthdata.Field{birthdata.FieldBirthDate, birthdata.FieldBirthTime, birthdata.FieldTimezone} {
		if value, ok := c.GetPostForm(string(f)); ok {
			_ = form.SetValue(f, value)
		}
	}
}

func (app *App) handleSubmitOnboarding(c *gin.Context) {
	sess := sessionFrom(c)
	applyTextFields(c, sess.Form)

	_, err := app.onboarding.Submit(c.Request.Context(), sess)
	if err != nil {
		// validation, busy and submit failures all re-render the form
		app.renderOnboarding(c, httpkit.StatusOf(err))
		return
	}
	c.Redirect(http.StatusSeeOther, "/onboarding")
}

func locationField(c *gin.Context) (onboarding.LocationField, bool) {
	field, ok := onboarding.ParseLocationField(c.Param("field"))
	if !ok {
		httpkit.HandleError(c, apperr.NotFound("unknown location field"))
	}
	return field, ok
}

// handleLocationSearch answers one keystroke with the suggestion list
// fragment, or 204 when a newer keystroke already replaced it.
func (app *App) handleLocationSearch(c *gin.Context) {
	field, ok := locationField(c)
	if !ok {
		return
	}

	view, current := sessionFrom(c).Form.Search(c.Request.Context(), field, c.Query("q"))
	if !current {
		c.Status(http.StatusNoContent)
		return
	}
	c.HTML(http.StatusOK, "location_suggestions", view)
}

func (app *App) handleLocationSelect(c *gin.Context) {
	field, ok := locationField(c)
	if !ok {
		return
	}
	sess := sessionFrom(c)

	id, err := strconv.ParseInt(c.PostForm("id"), 10, 64)
	if err != nil {
		httpkit.HandleError(c, apperr.BadRequest("id must be an integer"))
		return
	}

	if !isFetch(c) {
		// plain form post from a suggestion button
		applyTextFields(c, sess.Form)
		if _, err := sess.Form.Select(field, id); err != nil {
			app.logger.Debug("selection rejected", "field", field, "id", id, "error", err)
		}
		c.Redirect(http.StatusSeeOther, "/onboarding")
		return
	}

	if _, err := sess.Form.Select(field, id); err != nil {
		httpkit.HandleError(c, err)
		return
	}

	view := sess.Form.View()
	fv := view.Birth
	if field == onboarding.LocationCurrent {
		fv = view.Current
	}
	c.HTML(http.StatusOK, "location_field", fv)
}

// handleBlur validates one field as the user leaves it
func (app *App) handleBlur(c *gin.Context) {
	name, ok := birthdata.ParseField(c.Param("name"))
	if !ok {
		httpkit.HandleError(c, apperr.NotFound("unknown field"))
		return
	}
	form := sessionFrom(c).Form

	if value, present := c.GetPostForm("value"); present {
		if err := form.SetValue(name, value); err != nil {
			httpkit.HandleError(c, err)
			return
		}
	}
	c.JSON(http.StatusOK, form.Blur(name))
}
