package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Translations returns the dictionary for the best matching locale. The
// explicit ?locale= override wins over Accept-Language.
func (s *Server) Translations(c *gin.Context) {
	locale := s.catalog.Match(c.Query("locale"), c.GetHeader("Accept-Language"))

	c.JSON(http.StatusOK, gin.H{
		"locale":       locale,
		"translations": s.catalog.Bundle(locale),
	})
}
