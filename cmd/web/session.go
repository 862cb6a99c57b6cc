package main

import (
	"horoscopus-web/internal/notify"
	"horoscopus-web/internal/onboarding"
	"horoscopus-web/internal/pages"
	"horoscopus-web/internal/store"
	"net/http"

	"github.com/gin-gonic/gin"
)

const (
	sessionCookie     = "horoscopus_session"
	contextSessionKey = "session"
	headerRequestedBy = "X-Requested-With"
)

// withSession attaches the browser's session, creating one on first visit
func (app *App) withSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		app.loadSession(c)
		c.Next()
	}
}

func (app *App) loadSession(c *gin.Context) *onboarding.Session {
	if sess, ok := c.Get(contextSessionKey); ok {
		return sess.(*onboarding.Session)
	}

	id, _ := c.Cookie(sessionCookie)
	sess, created := app.sessions.GetOrCreate(id)
	if created {
		c.SetSameSite(http.SameSiteLaxMode)
		c.SetCookie(sessionCookie, sess.ID, 0, "/", "", c.Request.TLS != nil, true)
	}
	c.Set(contextSessionKey, sess)
	return sess
}

// existingSession returns the browser's live session without creating one
func (app *App) existingSession(c *gin.Context) *onboarding.Session {
	if sess, ok := c.Get(contextSessionKey); ok {
		return sess.(*onboarding.Session)
	}
	id, err := c.Cookie(sessionCookie)
	if err != nil {
		return nil
	}
	sess, ok := app.sessions.Get(id)
	if !ok {
		return nil
	}
	c.Set(contextSessionKey, sess)
	return sess
}

func sessionFrom(c *gin.Context) *onboarding.Session {
	return c.MustGet(contextSessionKey).(*onboarding.Session)
}

// isFetch reports whether the request came from the page script and wants
// an HTML fragment instead of a full page.
func isFetch(c *gin.Context) bool {
	return c.GetHeader(headerRequestedBy) == "fetch"
}

// pageData is what every full page template receives
type pageData struct {
	Title       string
	Path        string
	AppName     string
	AppTagline  string
	Nav         []pages.NavItem
	UserName    string
	UserInitial string
	Toasts      []notify.Toast
	Content     any
}

// render writes a full page and drains the session's pending toasts into it
func (app *App) render(c *gin.Context, status int, name, title string, content any) {
	app.renderFor(c, app.loadSession(c), status, name, title, content)
}

// renderFor renders with the given session, which may be nil
func (app *App) renderFor(c *gin.Context, sess *onboarding.Session, status int, name, title string, content any) {
	var toasts []notify.Toast
	if sess != nil {
		toasts = sess.Toasts.Drain()
	}
	c.HTML(status, name, pageData{
		Title:       title,
		Path:        c.Request.URL.Path,
		AppName:     pages.AppName,
		AppTagline:  pages.AppTagline,
		Nav:         pages.Navigation,
		UserName:    store.DisplayName(app.auth),
		UserInitial: store.Initial(app.auth),
		Toasts:      toasts,
		Content:     content,
	})
}
