package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/shopshout/shopshout/internal/cache"
	"github.com/shopshout/shopshout/internal/clickout"
	clickoutdomain "github.com/shopshout/shopshout/internal/clickout/domain"
	"github.com/shopshout/shopshout/internal/config"
	"github.com/shopshout/shopshout/internal/feed"
	"github.com/shopshout/shopshout/internal/i18n"
	"github.com/shopshout/shopshout/internal/observability"
	obsmiddleware "github.com/shopshout/shopshout/internal/observability/logger"
	obsmetrics "github.com/shopshout/shopshout/internal/observability/metrics"
	obstracing "github.com/shopshout/shopshout/internal/observability/tracing"
	"github.com/shopshout/shopshout/internal/product"
	productdomain "github.com/shopshout/shopshout/internal/product/domain"
	"github.com/shopshout/shopshout/internal/ratelimit"
	"github.com/shopshout/shopshout/internal/store"
	storedomain "github.com/shopshout/shopshout/internal/store/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

var Module = fx.Module("http.server",
	cache.Module,
	ratelimit.Module,
	feed.Module,
	i18n.Module,
	product.Module,
	store.Module,
	clickout.Module,
	fx.Provide(registerGin),
	fx.Invoke(NewServer),
	fx.Invoke(run),
)

func NewEngine(obsCfg observability.Config, httpMetrics *obsmetrics.HTTPMetrics) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(obsmiddleware.GinMiddleware(obsmiddleware.MiddlewareConfig{
		Debug:           obsCfg.Debug(),
		ErrorClassifier: classifyErrorForLog,
	}))
	r.Use(obstracing.GinMiddleware())
	r.Use(obsmetrics.GinMiddleware(httpMetrics))
	r.Use(ErrorHandlingMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return r
}

func registerGin(obsCfg observability.Config, httpMetrics *obsmetrics.HTTPMetrics) *gin.Engine {
	return NewEngine(obsCfg, httpMetrics)
}

func run(lc fx.Lifecycle, r *gin.Engine, cfg config.Config, log *zap.Logger) {
	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: r,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					log.Fatal("http server", zap.Error(err))
				}
			}()
			log.Info("http server listening", zap.String("addr", cfg.HTTPAddr))
			return nil
		},
		OnStop: func(ctx context.Context) error {
			shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	})
}

type Server struct {
	engine      *gin.Engine
	cfg         config.Config
	productSvc  productdomain.Service
	storeSvc    storedomain.Service
	clickoutSvc clickoutdomain.Service
	sitemap     *feed.SitemapBuilder
	productFeed *feed.ProductFeedBuilder
	feedCache   cache.FeedCache
	feedLock    *ratelimit.Locker
	catalog     *i18n.Catalog
	apiLimiter  *ratelimit.APILimiter
	obsMetrics  *obsmetrics.Metrics
	log         *zap.Logger
}

type ServerParams struct {
	fx.In

	Gin         *gin.Engine
	Cfg         config.Config
	ProductSvc  productdomain.Service
	StoreSvc    storedomain.Service
	ClickoutSvc clickoutdomain.Service
	Sitemap     *feed.SitemapBuilder
	ProductFeed *feed.ProductFeedBuilder
	FeedCache   cache.FeedCache
	FeedLock    *ratelimit.Locker `optional:"true"`
	Catalog     *i18n.Catalog
	APILimiter  *ratelimit.APILimiter `optional:"true"`
	ObsMetrics  *obsmetrics.Metrics
	Log         *zap.Logger
}

func NewServer(p ServerParams) *Server {
	svc := &Server{
		engine:      p.Gin,
		cfg:         p.Cfg,
		productSvc:  p.ProductSvc,
		storeSvc:    p.StoreSvc,
		clickoutSvc: p.ClickoutSvc,
		sitemap:     p.Sitemap,
		productFeed: p.ProductFeed,
		feedCache:   p.FeedCache,
		feedLock:    p.FeedLock,
		catalog:     p.Catalog,
		apiLimiter:  p.APILimiter,
		obsMetrics:  p.ObsMetrics,
		log:         p.Log,
	}

	svc.registerFeedRoutes()
	svc.registerAPIRoutes()
	svc.registerRedirectRoutes()

	return svc
}

func (s *Server) Engine() *gin.Engine {
	return s.engine
}

func (s *Server) registerFeedRoutes() {
	s.engine.GET("/sitemap.xml", s.Sitemap)
	s.engine.GET("/product-feed.xml", s.ProductFeed)
}

func (s *Server) registerAPIRoutes() {
	api := s.engine.Group("/api", s.apiLimiter.Middleware())

	api.GET("/products", s.ListProducts)
	api.GET("/products/top", s.TopProducts)
	api.GET("/products/:slug", s.GetProduct)

	api.GET("/stores", s.ListStores)
	api.GET("/stores/:id", s.GetStore)

	api.GET("/translations", s.Translations)
}

func (s *Server) registerRedirectRoutes() {
	s.engine.GET("/out/:id", s.Clickout)
}
