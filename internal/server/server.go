package server

import (
	"database/sql"
	"fmt"
	"net/http"
	"time"

	"inza-store/internal/config"
	"inza-store/internal/database"
	custommiddleware "inza-store/internal/middleware"
	"inza-store/internal/repository"
	"inza-store/internal/service"
	"inza-store/internal/storage"
	"inza-store/internal/transport"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/afero"
	"go.uber.org/zap"
)

type Server struct {
	*http.Server
	config *config.Config
	logger *zap.Logger
	db     *sql.DB
	redis  *redis.Client
}

func NewServer(cfg *config.Config, logger *zap.Logger, db *sql.DB, redisClient *redis.Client) *Server {
	// Create router
	router := chi.NewRouter()

	isDevelopment := cfg.Server.Env == "development"

	// Add basic middleware
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Recoverer)
	router.Use(middleware.Compress(5))
	router.Use(custommiddleware.CORSMiddleware(nil, isDevelopment))
	router.Use(custommiddleware.LoggingMiddleware(logger))
	router.Use(custommiddleware.ErrorHandlingMiddleware(logger))
	router.Use(custommiddleware.RateLimitMiddleware(redisClient, custommiddleware.RateLimitConfig{
		RequestsPerWindow: 300,
		Window:            time.Minute,
		KeyPrefix:         "ratelimit",
	}, logger))

	// Health check endpoint
	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		custommiddleware.RespondWithJSON(w, http.StatusOK, map[string]any{
			"status":   "ok",
			"database": database.Health(db),
		})
	})

	// Initialize repositories
	productRepo := repository.NewProductRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	bannerRepo := repository.NewBannerRepository(db)

	// Initialize services
	catalogService := service.NewCatalogService(productRepo, categoryRepo)
	cartService := service.NewCartService(redisClient, productRepo)
	checkoutService := service.NewCheckoutService(orderRepo, cartService, cfg.Store, logger)
	orderService := service.NewOrderService(orderRepo)
	bannerService := service.NewBannerService(bannerRepo)
	adminService := service.NewAdminService(cfg.Admin)
	contentGenerator := service.NewContentGenerator(cfg.AI, logger)

	// Image uploads are served straight from the store
	imageStore := storage.New(afero.NewOsFs(), cfg.Uploads.Dir, cfg.Uploads.BaseURL)
	router.Handle(cfg.Uploads.BaseURL+"/*", http.StripPrefix(cfg.Uploads.BaseURL, imageStore.FileServer()))

	// Initialize handlers
	catalogHandler := transport.NewCatalogHandler(catalogService, logger)
	cartHandler := transport.NewCartHandler(cartService, logger)
	checkoutHandler := transport.NewCheckoutHandler(checkoutService, logger)
	orderHandler := transport.NewOrderHandler(orderService, logger)
	bannerHandler := transport.NewBannerHandler(bannerService, logger)
	adminHandler := transport.NewAdminHandler(adminService, logger)
	contentHandler := transport.NewContentHandler(contentGenerator, logger)
	uploadHandler := transport.NewUploadHandler(imageStore, logger)

	// Dashboard routes require a valid session carrying the admin role
	sessionMiddleware := custommiddleware.AuthMiddleware(adminService, logger)
	requireAdmin := custommiddleware.RequireAdmin(logger)
	authMiddleware := func(next http.Handler) http.Handler {
		return sessionMiddleware(requireAdmin(next))
	}

	// Register routes
	catalogHandler.RegisterRoutes(router, authMiddleware)
	cartHandler.RegisterRoutes(router)
	checkoutHandler.RegisterRoutes(router)
	orderHandler.RegisterRoutes(router, authMiddleware)
	bannerHandler.RegisterRoutes(router, authMiddleware)
	adminHandler.RegisterRoutes(router)
	contentHandler.RegisterRoutes(router, authMiddleware)
	uploadHandler.RegisterRoutes(router, authMiddleware)

	server := &Server{
		Server: &http.Server{
			Addr:         fmt.Sprintf(":%s", cfg.Server.Port),
			Handler:      router,
			IdleTimeout:  time.Minute,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 30 * time.Second,
		},
		config: cfg,
		logger: logger,
		db:     db,
		redis:  redisClient,
	}

	return server
}

func (s *Server) Close() error {
	s.logger.Info("Closing server resources")

	if s.redis != nil {
		if err := s.redis.Close(); err != nil {
			s.logger.Error("Failed to close redis connection", zap.Error(err))
		}
	}

	// Close database connection
	if s.db != nil {
		if err := s.db.Close(); err != nil {
			s.logger.Error("Failed to close database connection", zap.Error(err))
		}
	}

	s.logger.Sync()
	return nil
}
