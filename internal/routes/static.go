package routes

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"ambulance-backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// StaticFallback serves the bundled frontend for unmatched GETs: the file
// itself when it exists under dir, index.html otherwise.
func StaticFallback(dir string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if dir == "" || (c.Request.Method != http.MethodGet && c.Request.Method != http.MethodHead) {
			utils.APIError(c, http.StatusNotFound, "Not found", nil)
			return
		}

		rel := filepath.FromSlash(strings.TrimPrefix(filepath.Clean("/"+c.Request.URL.Path), "/"))
		if rel != "" {
			candidate := filepath.Join(dir, rel)
			if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
				c.File(candidate)
				return
			}
		}

		index := filepath.Join(dir, "index.html")
		if _, err := os.Stat(index); err != nil {
			utils.APIError(c, http.StatusNotFound, "Not found", nil)
			return
		}
		c.File(index)
	}
}
