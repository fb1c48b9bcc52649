package routes

import (
	"path/filepath"

	"github.com/gin-gonic/gin"
)

// RegisterWebRoutes serves the landing page and its assets.
// The engine must already have its HTML templates loaded.
func RegisterWebRoutes(r *gin.Engine, staticDir string) {
	r.Static("/css", filepath.Join(staticDir, "css"))
	r.Static("/js", filepath.Join(staticDir, "js"))

	r.GET("/", func(c *gin.Context) {
		c.HTML(200, "index.html", nil)
	})
}
