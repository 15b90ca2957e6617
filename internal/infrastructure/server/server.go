package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	resthttp "github.com/GriffinCanCode/filesystem-mcp/internal/api/http"
	"github.com/GriffinCanCode/filesystem-mcp/internal/api/mcp"
	"github.com/GriffinCanCode/filesystem-mcp/internal/api/middleware"
	"github.com/GriffinCanCode/filesystem-mcp/internal/domain/service"
	"github.com/GriffinCanCode/filesystem-mcp/internal/domain/session"
	"github.com/GriffinCanCode/filesystem-mcp/internal/infrastructure/config"
	"github.com/GriffinCanCode/filesystem-mcp/internal/infrastructure/logging"
	"github.com/GriffinCanCode/filesystem-mcp/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/filesystem-mcp/internal/infrastructure/tracing"
	"github.com/GriffinCanCode/filesystem-mcp/internal/providers/filesystem"
	"github.com/GriffinCanCode/filesystem-mcp/internal/shared/paths"
)

// Version is reported by the banner and MCP serverInfo.
const Version = "1.0.0"

// MCPPath is where the MCP endpoint is mounted.
const MCPPath = "/mcp"

const shutdownTimeout = 10 * time.Second

// Server wraps the HTTP server and dependencies
type Server struct {
	router   *gin.Engine
	http     *http.Server
	registry *service.Registry
	sessions *session.Manager
	tracer   *tracing.Tracer
	logger   *logging.Logger
	config   *config.Config
	metrics  *monitoring.Metrics
	root     string

	cancel context.CancelFunc
}

// NewServer creates a new server instance. It fails if the allowed root
// does not exist or is not a directory.
func NewServer(cfg *config.Config) (*Server, error) {
	logger, err := logging.New(logging.Config{
		Level:       cfg.Logging.Level,
		Development: cfg.Logging.Development,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	guard, err := paths.NewGuard(cfg.Filesystem.AllowedRoot)
	if err != nil {
		return nil, err
	}

	logger.Info("Initializing filesystem server",
		zap.String("addr", cfg.Addr()),
		zap.String("allowed_root", guard.Root()),
	)

	metrics := monitoring.NewMetrics()
	tracer := tracing.New("filesystem", logger.Logger)

	ops := filesystem.NewOperations(guard, logger.Named("filesystem"))
	provider := filesystem.NewProvider(ops, logger.Named("tools")).WithMetrics(metrics)

	registry := service.NewRegistry()
	if err := registry.Register(provider); err != nil {
		tracer.Close()
		return nil, fmt.Errorf("failed to register filesystem provider: %w", err)
	}
	logger.Info("Registered tools", zap.Int("count", len(registry.Tools())))

	sessions := session.NewManager(cfg.Session.IdleTimeout.Std(), logger.Named("session")).WithMetrics(metrics)

	if !cfg.Logging.Development {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(tracing.HTTPMiddleware(tracer))
	router.Use(monitoring.Middleware(metrics))
	router.Use(middleware.CORS(middleware.DefaultCORSConfig()))
	if cfg.RateLimit.Enabled {
		logger.Info("Rate limiting enabled",
			zap.Int("rps", cfg.RateLimit.RequestsPerSecond),
			zap.Int("burst", cfg.RateLimit.Burst),
		)
		router.Use(middleware.RateLimit(middleware.RateLimitConfig{
			RequestsPerSecond: cfg.RateLimit.RequestsPerSecond,
			Burst:             cfg.RateLimit.Burst,
		}))
	}
	if cfg.Server.MaxBodyBytes > 0 {
		router.Use(middleware.BodyLimit(cfg.Server.MaxBodyBytes))
	}

	resthttp.NewHandlers(registry, sessions, metrics, guard.Root(), Version).Register(router)
	mcp.NewHandler(registry, sessions, logger.Named("mcp"), Version).
		WithInstructions(fmt.Sprintf("All paths are relative to the allowed root directory %s.", guard.Root())).
		Register(router, MCPPath)

	logger.Info("Server initialized successfully")

	return &Server{
		router:   router,
		registry: registry,
		sessions: sessions,
		tracer:   tracer,
		logger:   logger,
		config:   cfg,
		metrics:  metrics,
		root:     guard.Root(),
	}, nil
}

// Handler returns the root HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Root returns the canonical allowed root.
func (s *Server) Root() string {
	return s.root
}

// Run starts the session janitor and serves HTTP until Close is called.
func (s *Server) Run() error {
	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel
	go s.sessions.Start(ctx)

	s.http = &http.Server{
		Addr:              s.config.Addr(),
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	s.logger.Info("Starting HTTP server", zap.String("addr", s.http.Addr))
	if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("http server failed: %w", err)
	}
	return nil
}

// Close gracefully shuts down the server
func (s *Server) Close() error {
	s.logger.Info("Shutting down server...")

	var shutdownErr error
	if s.http != nil {
		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := s.http.Shutdown(ctx); err != nil {
			s.logger.Error("Failed to shut down HTTP server", zap.Error(err))
			shutdownErr = fmt.Errorf("failed to shut down http server: %w", err)
		}
	}
	if s.cancel != nil {
		s.cancel()
	}
	s.tracer.Close()

	s.logger.Info("Server stopped", zap.Int("sessions", s.sessions.Count()))

	// Sync logger before exit
	_ = s.logger.Sync()

	return shutdownErr
}
