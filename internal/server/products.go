package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	productdomain "github.com/shopshout/shopshout/internal/product/domain"
)

func (s *Server) ListProducts(c *gin.Context) {
	var query struct {
		Q          string `form:"q"`
		StoreID    string `form:"store_id"`
		Brand      string `form:"brand"`
		Discounted string `form:"discounted"`
		SortBy     string `form:"sort_by"`
		OrderBy    string `form:"order_by"`
		Limit      string `form:"limit"`
		Offset     string `form:"offset"`
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	discounted, err := parseOptionalBool(query.Discounted)
	if err != nil {
		AbortWithError(c, newValidationError("discounted", "invalid_discounted", "invalid discounted"))
		return
	}
	limit, err := parseOptionalInt(query.Limit)
	if err != nil {
		AbortWithError(c, newValidationError("limit", "invalid_limit", "invalid limit"))
		return
	}
	offset, err := parseOptionalInt(query.Offset)
	if err != nil {
		AbortWithError(c, newValidationError("offset", "invalid_offset", "invalid offset"))
		return
	}

	req := productdomain.ListRequest{
		Query:   strings.TrimSpace(query.Q),
		StoreID: strings.TrimSpace(query.StoreID),
		Brand:   strings.TrimSpace(query.Brand),
		SortBy:  strings.TrimSpace(query.SortBy),
		OrderBy: strings.TrimSpace(query.OrderBy),
	}
	if discounted != nil {
		req.DiscountedOnly = *discounted
	}
	if limit != nil {
		req.Limit = *limit
	}
	if offset != nil {
		req.Offset = *offset
	}

	resp, err := s.productSvc.List(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) TopProducts(c *gin.Context) {
	limit, err := parseOptionalInt(c.Query("limit"))
	if err != nil {
		AbortWithError(c, newValidationError("limit", "invalid_limit", "invalid limit"))
		return
	}

	n := 0
	if limit != nil {
		n = *limit
	}

	resp, err := s.productSvc.Top(c.Request.Context(), n)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

// GetProduct resolves a canonical slug in either encoding, or a bare hash
// id, to a single product.
func (s *Server) GetProduct(c *gin.Context) {
	ref := strings.TrimSpace(c.Param("slug"))
	resp, err := s.productSvc.Resolve(c.Request.Context(), ref)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}
