package handlers

import (
	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

// Render helper to inject common variables into every page.
// Copies obj first, some callers hand in a map that lives in the page cache.
func Render(c *gin.Context, code int, name string, obj gin.H) {
	data := gin.H{}
	for k, v := range obj {
		data[k] = v
	}

	// Consume a pending flash message (set after moderation actions)
	session := sessions.Default(c)
	if flashes := session.Flashes(); len(flashes) > 0 {
		_ = session.Save()
		data["Flash"] = flashes[0]
	}

	data["CurrentPath"] = c.Request.URL.Path

	c.HTML(code, name, data)
}

// Error helper
func RenderError(c *gin.Context, code int, message string) {
	Render(c, code, "error.html", gin.H{"Error": message, "Title": "Error"})
}

// setFlash stores a one-shot message shown on the next rendered page
func setFlash(c *gin.Context, message string) {
	session := sessions.Default(c)
	session.AddFlash(message)
	_ = session.Save()
}
