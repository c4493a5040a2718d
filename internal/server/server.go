package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	activitydomain "github.com/orgcatalog/catalog/internal/activity/domain"
	buildingdomain "github.com/orgcatalog/catalog/internal/building/domain"
	"github.com/orgcatalog/catalog/internal/config"
	"github.com/orgcatalog/catalog/internal/observability"
	obslogger "github.com/orgcatalog/catalog/internal/observability/logger"
	obsmetrics "github.com/orgcatalog/catalog/internal/observability/metrics"
	organizationdomain "github.com/orgcatalog/catalog/internal/organization/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

var Module = fx.Module("http.server",
	fx.Provide(NewEngine),
	fx.Provide(NewServer),
	fx.Invoke(func(s *Server) { s.RegisterAPIRoutes() }),
	fx.Invoke(RunHTTP),
)

// NewEngine builds the gin engine with the shared middleware chain and the
// unauthenticated root, health and metrics endpoints.
func NewEngine(cfg config.Config, obsCfg observability.Config, httpMetrics *obsmetrics.HTTPMetrics) *gin.Engine {
	if !obsCfg.Debug() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(obslogger.GinMiddleware(obslogger.MiddlewareConfig{Debug: obsCfg.Debug()}))
	r.Use(obsmetrics.GinMiddleware(httpMetrics))
	r.Use(ErrorHandlingMiddleware())

	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": cfg.AppName,
			"version": cfg.AppVersion,
		})
	})
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return r
}

type Server struct {
	engine          *gin.Engine
	cfg             config.Config
	logger          *zap.Logger
	activitySvc     activitydomain.Service
	buildingSvc     buildingdomain.Service
	organizationSvc organizationdomain.Service
}

type ServerParams struct {
	fx.In

	Gin             *gin.Engine
	Cfg             config.Config
	Logger          *zap.Logger
	ActivitySvc     activitydomain.Service
	BuildingSvc     buildingdomain.Service
	OrganizationSvc organizationdomain.Service
}

func NewServer(p ServerParams) *Server {
	return &Server{
		engine:          p.Gin,
		cfg:             p.Cfg,
		logger:          p.Logger,
		activitySvc:     p.ActivitySvc,
		buildingSvc:     p.BuildingSvc,
		organizationSvc: p.OrganizationSvc,
	}
}

func (s *Server) Engine() *gin.Engine {
	return s.engine
}

// RegisterAPIRoutes mounts the key-protected catalog surface under /api/v1.
func (s *Server) RegisterAPIRoutes() {
	api := s.engine.Group("/api/v1", s.APIKeyRequired())

	activities := api.Group("/activities")
	activities.GET("", s.GetActivitiesTree)
	activities.GET("/:id", s.GetActivity)
	activities.POST("", s.CreateActivity)
	activities.PUT("/:id", s.UpdateActivity)
	activities.DELETE("/:id", s.DeleteActivity)

	buildings := api.Group("/buildings")
	buildings.GET("", s.ListBuildings)
	buildings.GET("/nearby", s.GetNearbyBuildings)
	buildings.GET("/:id", s.GetBuilding)
	buildings.GET("/:id/organizations", s.GetBuildingOrganizations)
	buildings.POST("", s.CreateBuilding)
	buildings.PUT("/:id", s.UpdateBuilding)

	organizations := api.Group("/organizations")
	organizations.GET("", s.SearchOrganizations)
	organizations.GET("/:id", s.GetOrganization)
	organizations.POST("", s.CreateOrganization)
	organizations.PUT("/:id", s.UpdateOrganization)
	organizations.DELETE("/:id", s.DeleteOrganization)
}

func RunHTTP(lc fx.Lifecycle, s *Server, logger *zap.Logger) {
	srv := &http.Server{
		Addr:    s.cfg.HTTPAddr,
		Handler: s.engine,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			_ = ctx
			go func() {
				logger.Info("http server listening", zap.String("addr", srv.Addr))
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					logger.Fatal("http server", zap.Error(err))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	})
}
