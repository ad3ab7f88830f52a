package api

import (
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerfiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	"github.com/onedrop-app/onedrop-api/docs"
	v1 "github.com/onedrop-app/onedrop-api/internal/api/handler/v1"
	"github.com/onedrop-app/onedrop-api/internal/api/middleware"
	"github.com/onedrop-app/onedrop-api/internal/config"
	"github.com/onedrop-app/onedrop-api/internal/metrics"
	"github.com/onedrop-app/onedrop-api/internal/repository"
	"github.com/onedrop-app/onedrop-api/internal/repository/dao"
	"github.com/onedrop-app/onedrop-api/internal/service"
	"github.com/onedrop-app/onedrop-api/internal/store"
)

type Server struct {
	Config *config.AppConfig
	Router *gin.Engine

	CampaignService *service.CampaignService

	registry *prometheus.Registry
	metrics  *metrics.Metrics
	cache    store.KV
}

type Option func(*Server)

// WithCountCache makes enrollment counts read through kv.
func WithCountCache(kv store.KV) Option {
	return func(s *Server) {
		s.cache = kv
	}
}

func NewServer(conf *config.AppConfig, db *gorm.DB, opts ...Option) *Server {
	gin.SetMode(conf.Gin.Mode)
	engine := gin.New()

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	s := &Server{
		Config:   conf,
		Router:   engine,
		registry: registry,
		metrics:  metrics.New(registry),
	}
	for _, opt := range opts {
		opt(s)
	}

	s.MountMiddlewares()

	participantRepo := repository.NewParticipantRepository(dao.NewParticipantDAO(db))
	campaignRepo := repository.NewCampaignRepository(dao.NewCampaignDAO(db))

	s.CampaignService = service.NewCampaignService(campaignRepo, participantRepo, s.metrics)

	participantHandler := s.initParticipantHandler(participantRepo)
	campaignHandler := v1.NewCampaignHandler(s.CampaignService)
	enrollmentHandler := s.initEnrollmentHandler(db, campaignRepo, participantRepo)
	s.MountHandlers(participantHandler, campaignHandler, enrollmentHandler)

	return s
}

// Metrics exposes the counters so background workers share the registry.
func (s *Server) Metrics() *metrics.Metrics {
	return s.metrics
}

func (s *Server) initParticipantHandler(repo *repository.ParticipantRepository) *v1.ParticipantHandler {
	svc := service.NewParticipantService(repo)
	handler := v1.NewParticipantHandler(s.Config.API, svc)

	return handler
}

func (s *Server) initEnrollmentHandler(
	db *gorm.DB,
	campaigns *repository.CampaignRepository,
	participants *repository.ParticipantRepository,
) *v1.EnrollmentHandler {
	repo := repository.NewEnrollmentRepository(dao.NewEnrollmentDAO(db))
	svc := service.NewEnrollmentService(repo, campaigns, participants, s.metrics)
	if s.cache != nil {
		svc.WithCountCache(s.cache, s.Config.Redis.CountTTL)
	}
	handler := v1.NewEnrollmentHandler(svc)

	return handler
}

func (s *Server) MountMiddlewares() {
	s.Router.Use(requestid.New())
	s.Router.Use(middleware.RequestLogger())
	s.Router.Use(gin.Recovery())
	s.Router.Use(middleware.ConfigCORS(s.Config.API.AllowedCORSDomains))
}

func (s *Server) MountHandlers(
	participantHandler *v1.ParticipantHandler,
	campaignHandler *v1.CampaignHandler,
	enrollmentHandler *v1.EnrollmentHandler,
) {
	const basePath = "/api/v1"

	public := s.Router.Group(basePath)
	{
		public.POST("/hospitals", participantHandler.HandleRegisterHospital)
		public.POST("/donors", participantHandler.HandleRegisterDonor)
		public.POST("/beneficiaries", participantHandler.HandleRegisterBeneficiary)
	}

	authenticated := s.Router.Group(basePath, middleware.NewAuthenticator(s.Config.API.JWTSigningKey).VerifyJWT())
	{
		authenticated.POST("/campaigns/requests", campaignHandler.HandleRequestCampaign)
		authenticated.POST("/campaigns/drives", campaignHandler.HandleCreateDrive)
		authenticated.GET("/campaigns/eligible", campaignHandler.HandleListEligible)
		authenticated.GET("/campaigns/mine", campaignHandler.HandleListMine)
		authenticated.GET("/campaigns/:campaignID", campaignHandler.HandleGetCampaign)
		authenticated.POST("/campaigns/:campaignID/approve", campaignHandler.HandleApprove)
		authenticated.POST("/campaigns/:campaignID/reject", campaignHandler.HandleReject)
		authenticated.POST("/campaigns/:campaignID/finalize", campaignHandler.HandleFinalize)

		authenticated.POST("/campaigns/:campaignID/enrollments", enrollmentHandler.HandleEnroll)
		authenticated.GET("/campaigns/:campaignID/enrollments/count", enrollmentHandler.HandleCountEnrollments)
		authenticated.GET("/enrollments/mine", enrollmentHandler.HandleListMine)
	}

	s.Router.GET("/", v1.HandleHealthcheck)
	s.Router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{})))

	// Setup Swagger UI.
	docs.SwaggerInfo.Host = s.Config.API.BaseURL
	docs.SwaggerInfo.BasePath = basePath
	docs.SwaggerInfo.Title = "OneDrop API"
	docs.SwaggerInfo.Description = "Blood donation campaigns: requests, approvals, drives and donor enrollment."
	docs.SwaggerInfo.Version = "1.0"
	s.Router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerfiles.Handler))
}
