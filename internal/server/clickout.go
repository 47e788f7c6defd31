package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	clickoutdomain "github.com/shopshout/shopshout/internal/clickout/domain"
)

// Clickout records an affiliate click and 302s to the store. Falls back to
// the canonical product URL when the product carries no affiliate link.
func (s *Server) Clickout(c *gin.Context) {
	ref := strings.TrimSpace(c.Param("id"))

	result, err := s.clickoutSvc.Redirect(c.Request.Context(), clickoutdomain.RedirectRequest{
		Ref:       ref,
		Referrer:  c.GetHeader("Referer"),
		UserAgent: c.GetHeader("User-Agent"),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	s.obsMetrics.RecordClickout(c.Request.Context(), result.StoreID)
	c.Redirect(http.StatusFound, result.TargetURL)
}
