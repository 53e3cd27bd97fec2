// internal/app/server.go
package app

import (
	"context"
	"fmt"
	"log"

	"cprice-service/internal/config"
	"cprice-service/internal/db"
	announcementHandler "cprice-service/internal/handlers/announcement"
	authHandler "cprice-service/internal/handlers/auth"
	businessTypeHandler "cprice-service/internal/handlers/businesstype"
	dashboardHandler "cprice-service/internal/handlers/dashboard"
	inquiryHandler "cprice-service/internal/handlers/inquiry"
	priceHandler "cprice-service/internal/handlers/price"
	settingHandler "cprice-service/internal/handlers/setting"
	userHandler "cprice-service/internal/handlers/user"
	wsHandler "cprice-service/internal/handlers/ws"
	"cprice-service/internal/middleware"
	"cprice-service/internal/pkg/jwt"
	"cprice-service/internal/pkg/ratelimit"
	"cprice-service/internal/repository/postgres"
	announcementService "cprice-service/internal/service/announcement"
	authService "cprice-service/internal/service/auth"
	businessTypeService "cprice-service/internal/service/businesstype"
	dashboardService "cprice-service/internal/service/dashboard"
	inquiryService "cprice-service/internal/service/inquiry"
	priceService "cprice-service/internal/service/price"
	settingService "cprice-service/internal/service/setting"
	userService "cprice-service/internal/service/user"
	"cprice-service/internal/websocket"
	"cprice-service/internal/worker"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Server struct {
	cfg    config.AppConfig
	engine *gin.Engine
	logger *zap.Logger
	cancel context.CancelFunc
}

func NewServer() *Server {
	cfg := config.Load()
	engine := gin.New()
	return &Server{cfg: cfg, engine: engine}
}

func (s *Server) Start() error {
	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel

	// ----- Logger -----
	logger, err := zap.NewProduction()
	if err != nil {
		return fmt.Errorf("failed to build logger: %w", err)
	}
	defer logger.Sync()
	s.logger = logger

	// ----- PostgreSQL -----
	pool, err := db.NewPostgresPool(ctx, s.cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect to PostgreSQL: %w", err)
	}

	// ----- Redis -----
	redisClient, err := db.NewRedisClient(db.RedisConfig{
		Addr:     s.cfg.RedisAddr,
		Password: s.cfg.RedisPass,
		DB:       s.cfg.RedisDB,
		PoolSize: 10,
	})
	if err != nil {
		return fmt.Errorf("failed to connect to Redis: %w", err)
	}

	// ----- JWT Manager -----
	jwtManager, err := jwt.NewManager(s.cfg.JWT)
	if err != nil {
		return fmt.Errorf("failed to build JWT manager: %w", err)
	}

	// ----- Rate Limiter -----
	rateLimiter := ratelimit.NewLimiter(redisClient)

	// ----- Repositories -----
	inquiryRepo := postgres.NewInquiryRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	priceRepo := postgres.NewPriceRepository(pool)
	businessTypeRepo := postgres.NewBusinessTypeRepository(pool)
	announcementRepo := postgres.NewAnnouncementRepository(pool)
	settingRepo := postgres.NewSettingRepository(pool)

	// ----- WebSocket Hub -----
	hub := websocket.NewHub(logger)
	go hub.Run()

	// ----- Services -----
	inquirySvc := inquiryService.NewInquiryService(inquiryRepo, userRepo, hub, logger)
	authSvc := authService.NewAuthService(userRepo, jwtManager, rateLimiter, logger)
	userSvc := userService.NewUserService(userRepo, logger)
	priceSvc := priceService.NewPriceService(priceRepo, businessTypeRepo, logger)
	businessTypeSvc := businessTypeService.NewBusinessTypeService(businessTypeRepo, priceRepo, inquiryRepo, logger)
	announcementSvc := announcementService.NewAnnouncementService(announcementRepo, logger)
	settingSvc := settingService.NewSettingService(settingRepo, logger)
	dashboardSvc := dashboardService.NewDashboardService(inquiryRepo, announcementRepo, priceRepo, logger)

	// ----- Background Workers -----
	autoReleaser := worker.NewAutoReleaser(inquirySvc, s.cfg.AutoReleaseInterval, logger)
	go autoReleaser.Run(ctx)

	// ----- Middlewares -----
	authMiddleware := middleware.NewAuthMiddleware(jwtManager)

	s.engine.Use(
		middleware.RecoveryMiddleware(logger),
		middleware.LoggingMiddleware(logger),
		middleware.MetricsMiddleware(),
		middleware.CORSMiddleware(s.cfg.CORSOrigins),
	)

	// ----- Router -----
	handlers := &Handlers{
		AuthHandler:         authHandler.NewAuthHandler(authSvc),
		InquiryHandler:      inquiryHandler.NewInquiryHandler(inquirySvc),
		DashboardHandler:    dashboardHandler.NewDashboardHandler(dashboardSvc),
		PriceHandler:        priceHandler.NewPriceHandler(priceSvc),
		BusinessTypeHandler: businessTypeHandler.NewBusinessTypeHandler(businessTypeSvc),
		AnnouncementHandler: announcementHandler.NewAnnouncementHandler(announcementSvc),
		UserHandler:         userHandler.NewUserHandler(userSvc),
		SettingHandler:      settingHandler.NewSettingHandler(settingSvc),
		WSHandler:           wsHandler.NewWebSocketHandler(hub, jwtManager, logger),
		AuthMiddleware:      authMiddleware,
	}
	SetupRouter(s.engine, logger, handlers)

	// ----- Start HTTP -----
	log.Printf("server listening on %s", s.cfg.HTTPAddr)
	return s.engine.Run(s.cfg.HTTPAddr)
}

// Stop cancels background workers. The HTTP listener exits with the process.
func (s *Server) Stop() {
	if s.cancel != nil {
		s.cancel()
	}
}
