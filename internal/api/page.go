package api

import (
	_ "embed"
	"net/http"

	"github.com/gin-gonic/gin"
)

//go:embed index.html
var indexPage []byte

// ServeIndex serves the single-page form.
func (h *Handler) ServeIndex(c *gin.Context) {
	c.Data(http.StatusOK, "text/html; charset=utf-8", indexPage)
}
