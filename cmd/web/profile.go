package main

import (
	"horoscopus-web/internal/store"
	"net/http"
	"strings"
	"unicode/utf8"

	"github.com/gin-gonic/gin"
)

const maxUserNameLen = 80

type profileContent struct {
	Name string
}

func (app *App) handleProfile(c *gin.Context) {
	app.render(c, http.StatusOK, "page/profile", "Профиль", profileContent{
		Name: store.DisplayName(app.auth),
	})
}

// handleSaveProfile stores the display name. An empty name restores the default.
func (app *App) handleSaveProfile(c *gin.Context) {
	name := strings.TrimSpace(c.PostForm("userName"))
	if utf8.RuneCountInString(name) > maxUserNameLen {
		name = string([]rune(name)[:maxUserNameLen])
	}

	app.auth.SetUserName(name)
	sessionFrom(c).Toasts.Notify("Изменения сохранены")
	c.Redirect(http.StatusSeeOther, "/profile")
}
