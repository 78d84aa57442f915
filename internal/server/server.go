package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/cyphera/safe-gateway/internal/client/txservice"
	"github.com/cyphera/safe-gateway/internal/config"
	"github.com/cyphera/safe-gateway/internal/db"
	"github.com/cyphera/safe-gateway/internal/handlers"
	"github.com/cyphera/safe-gateway/internal/logger"
	"github.com/cyphera/safe-gateway/internal/metrics"
	"github.com/cyphera/safe-gateway/internal/middleware"
	"github.com/cyphera/safe-gateway/internal/repositories"
	"github.com/cyphera/safe-gateway/internal/services"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// RouterConfig contains everything needed to build the HTTP router
type RouterConfig struct {
	TransactionHandler *handlers.TransactionHandler
	MessageHandler     *handlers.MessageHandler
	HealthHandler      *handlers.HealthHandler
	Metrics            *metrics.Metrics
	RateLimiter        *middleware.RateLimiter
	CORSAllowedOrigins []string
}

// NewRouter registers the middlewares and routes of the gateway
func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.CorrelationIDMiddleware())
	router.Use(middleware.RequestLoggingMiddleware())
	router.Use(configureCORS(cfg.CORSAllowedOrigins))
	if cfg.Metrics != nil {
		router.Use(cfg.Metrics.Middleware())
		router.GET("/metrics", gin.WrapH(cfg.Metrics.Handler()))
	}
	if cfg.RateLimiter != nil {
		router.Use(cfg.RateLimiter.Middleware())
	}

	router.GET("/health", cfg.HealthHandler.Health)

	chains := router.Group("/v1/chains/:chainId")
	{
		safes := chains.Group("/safes/:safeAddress")
		{
			safes.POST("/transactions", cfg.TransactionHandler.ProposeTransaction)
			safes.GET("/multisig-transactions/:safeTxHash", cfg.TransactionHandler.GetMultisigTransaction)
			safes.POST("/messages", cfg.MessageHandler.CreateMessage)
		}

		chains.POST("/multisig-transactions/:safeTxHash/confirmations", cfg.TransactionHandler.AddConfirmation)
	}

	return router
}

// Server owns the HTTP server and the resources behind it
type Server struct {
	cfg         *config.Config
	pool        *pgxpool.Pool
	rateLimiter *middleware.RateLimiter
	httpServer  *http.Server
}

// New connects to the database and wires the verifier, the transaction
// service client and the HTTP handlers
func New(ctx context.Context, cfg *config.Config) (*Server, error) {
	pool, err := NewPool(ctx, cfg)
	if err != nil {
		return nil, err
	}

	if !cfg.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}

	m := metrics.New()
	txService := txservice.NewClient(txservice.Config{
		BaseURLs: cfg.TxServiceURLs,
		APIKey:   cfg.TxServiceAPIKey,
		Timeout:  cfg.TxServiceTimeout,
		Metrics:  m,
	})
	contractTrust := repositories.NewContractTrustRepository(db.New(pool))

	verifier := services.NewTransactionVerifierService(services.TransactionVerifierServiceConfig{
		SafeRepository:          txService,
		TransactionRepository:   txService,
		ContractTrustRepository: contractTrust,
		DelegateRepository:      txService,
		Blocklist:               cfg.Blocklist,
		Metrics:                 m,
	})
	statusService := services.NewTransactionStatusService(cfg.GracePeriod)

	rateLimiter := middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)
	router := NewRouter(RouterConfig{
		TransactionHandler: handlers.NewTransactionHandler(handlers.TransactionHandlerConfig{
			Verifier:     verifier,
			StatusMapper: statusService,
			Safes:        txService,
			Transactions: txService,
			Writer:       txService,
		}),
		MessageHandler:     handlers.NewMessageHandler(verifier, txService, txService),
		HealthHandler:      handlers.NewHealthHandler(pool),
		Metrics:            m,
		RateLimiter:        rateLimiter,
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
	})

	logger.Info("Gateway initialized",
		zap.String("stage", cfg.Stage),
		zap.Int("chains", len(cfg.TxServiceURLs)),
		zap.Int("blocklist_size", len(cfg.Blocklist)),
		zap.Duration("grace_period", cfg.GracePeriod),
	)

	return &Server{
		cfg:         cfg,
		pool:        pool,
		rateLimiter: rateLimiter,
		httpServer: &http.Server{
			Addr:              fmt.Sprintf(":%s", cfg.Port),
			Handler:           router,
			ReadHeaderTimeout: 20 * time.Second, // Prevent Slowloris attacks
		},
	}, nil
}

// NewPool creates the Postgres connection pool
func NewPool(ctx context.Context, cfg *config.Config) (*pgxpool.Pool, error) {
	poolConfig, err := pgxpool.ParseConfig(cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("unable to parse database connection string: %w", err)
	}

	poolConfig.MaxConns = cfg.DatabaseMaxConns
	poolConfig.MinConns = 1
	poolConfig.MaxConnLifetime = time.Hour
	poolConfig.MaxConnIdleTime = time.Minute * 30

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("unable to create connection pool: %w", err)
	}
	return pool, nil
}

// Run serves until ctx is cancelled, then shuts down gracefully
func (s *Server) Run(ctx context.Context) error {
	defer s.pool.Close()

	limiterCtx, stopLimiter := context.WithCancel(context.Background())
	defer stopLimiter()
	go s.rateLimiter.Run(limiterCtx)

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("Server starting", zap.String("addr", s.httpServer.Addr))
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		if err != nil {
			return fmt.Errorf("failed to start server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
	defer cancel()
	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	logger.Info("Server exiting")
	return nil
}

// configureCORS returns a configured CORS middleware. "*" allows every origin.
func configureCORS(origins []string) gin.HandlerFunc {
	corsConfig := cors.DefaultConfig()

	allowAll := len(origins) == 0
	for _, origin := range origins {
		if origin == "*" {
			allowAll = true
		}
	}
	if allowAll {
		corsConfig.AllowAllOrigins = true
	} else {
		corsConfig.AllowOrigins = origins
	}

	corsConfig.AllowMethods = []string{"GET", "POST", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "Authorization", middleware.CorrelationIDHeader}
	corsConfig.ExposeHeaders = []string{middleware.CorrelationIDHeader, "X-RateLimit-Limit", "X-RateLimit-Remaining", "Retry-After"}

	return cors.New(corsConfig)
}
