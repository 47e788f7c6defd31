package server

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopshout/shopshout/internal/observability/logger"
	productdomain "github.com/shopshout/shopshout/internal/product/domain"
	"go.uber.org/zap"
)

const (
	feedContentType  = "application/xml; charset=utf-8"
	feedCacheControl = "public, max-age=3600, s-maxage=3600"

	feedNameSitemap = "sitemap"
	feedNameProduct = "product-feed"
)

// Sitemap serves /sitemap.xml: static pages plus every published product
// under its canonical URL.
func (s *Server) Sitemap(c *gin.Context) {
	s.serveFeed(c, feedNameSitemap, "Error generating sitemap", func(products []productdomain.Product) string {
		return s.sitemap.Build(products)
	})
}

// ProductFeed serves /product-feed.xml, the Google Shopping RSS document.
func (s *Server) ProductFeed(c *gin.Context) {
	s.serveFeed(c, feedNameProduct, "Error generating product feed", func(products []productdomain.Product) string {
		return s.productFeed.Build(products)
	})
}

// serveFeed answers from the cache when it can. A miss runs the ordered
// read-only product query and renders the document; any failure is a
// plain-text 500, never partial XML.
func (s *Server) serveFeed(c *gin.Context, name, errorBody string, build func([]productdomain.Product) string) {
	ctx := c.Request.Context()

	if body, ok := s.feedCache.Get(ctx, name); ok {
		s.obsMetrics.RecordFeedCacheHit(ctx, name)
		s.writeFeed(c, body)
		return
	}
	s.obsMetrics.RecordFeedCacheMiss(ctx, name)

	products, err := s.productSvc.ListPublished(ctx)
	if err != nil {
		logger.WithContext(ctx, s.log).Error("feed query", zap.String("feed", name), zap.Error(err))
		c.String(http.StatusInternalServerError, errorBody)
		return
	}

	body := []byte(build(products))
	s.obsMetrics.RecordFeedBuild(ctx, name, len(products))
	s.cacheFeed(c, name, body)
	s.writeFeed(c, body)
}

// cacheFeed stores the rendered document. With multiple instances only the
// lock holder writes, so concurrent rebuilds do not thrash the cache entry.
func (s *Server) cacheFeed(c *gin.Context, name string, body []byte) {
	ctx := c.Request.Context()
	ttl := s.cfg.FeedCacheTTL

	if s.feedLock == nil {
		s.feedCache.Set(ctx, name, body, ttl)
		return
	}

	lockKey := "feed:build:" + name
	token, ok, err := s.feedLock.TryLock(ctx, lockKey, 30*time.Second)
	if err != nil || !ok {
		return
	}
	s.feedCache.Set(ctx, name, body, ttl)
	if err := s.feedLock.Release(ctx, lockKey, token); err != nil {
		logger.WithContext(ctx, s.log).Warn("feed lock release", zap.String("feed", name), zap.Error(err))
	}
}

func (s *Server) writeFeed(c *gin.Context, body []byte) {
	c.Header("Cache-Control", feedCacheControl)
	c.Data(http.StatusOK, feedContentType, body)
}
