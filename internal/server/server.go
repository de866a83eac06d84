package server

import (
	"time"

	"converse/internal/analytics"
	"converse/internal/cache"
	"converse/internal/config"
	"converse/internal/database"
	"converse/internal/handlers"

	"github.com/jmoiron/sqlx"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"
)

// Server represents the application server
type Server struct {
	echo   *echo.Echo
	db     *sqlx.DB
	config *config.Config
	logger zerolog.Logger
	memo   *cache.Cache
	stats  *analytics.Service

	users    *database.UserService
	chats    *database.ChatService
	messages *database.MessageService
	contexts *database.ContextService
	meetings *database.MeetingService
}

// New creates a new server instance
func New(cfg *config.Config, db *sqlx.DB, logger zerolog.Logger) *Server {
	return &Server{
		config:   cfg,
		db:       db,
		logger:   logger,
		memo:     cache.New(),
		stats:    analytics.NewService(),
		users:    database.NewUserService(db),
		chats:    database.NewChatService(db),
		messages: database.NewMessageService(db),
		contexts: database.NewContextService(db),
		meetings: database.NewMeetingService(db),
	}
}

// zerologMiddleware creates a zerolog-based logging middleware for Echo
func (s *Server) zerologMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			err := next(c)

			req := c.Request()
			res := c.Response()

			s.stats.Record(req.Method, c.Path(), res.Status)

			s.logger.Info().
				Str("method", req.Method).
				Str("uri", req.RequestURI).
				Str("remote_ip", c.RealIP()).
				Int("status", res.Status).
				Int64("latency_ms", time.Since(start).Milliseconds()).
				Str("user_agent", req.UserAgent()).
				Msg("HTTP request")

			return err
		}
	}
}

// Initialize sets up the Echo framework with middleware and routes
func (s *Server) Initialize() {
	s.echo = echo.New()

	// Middleware
	s.echo.Use(s.zerologMiddleware())
	s.echo.Use(middleware.Recover())
	s.echo.Use(middleware.CORS())

	// Hide Echo banner
	s.echo.HideBanner = true

	// Setup routes
	s.setupRoutes()
}

// setupRoutes configures all the application routes
func (s *Server) setupRoutes() {
	// API group with /api prefix
	api := s.echo.Group("/api")

	// Swagger documentation
	s.echo.GET("/swagger/*", echoSwagger.WrapHandler)

	// Health endpoints (keep at root level for monitoring)
	s.echo.GET("/healthz", handlers.HealthHandler(s.config.Version))
	s.echo.GET("/healthz/db", handlers.DBHealthHandler(s.db))

	api.GET("/", handlers.RootHandler(s.config.Version))
	api.GET("/stats", handlers.StatsHandler(s.stats))

	// Users
	api.POST("/users", handlers.CreateUserHandler(s.users))
	api.GET("/users/:id", handlers.GetUserHandler(s.users))
	api.PATCH("/users/:id", handlers.UpdateUserHandler(s.users))
	api.GET("/users/:id/chats", handlers.GetUserChatsHandler(s.users, s.chats))
	api.GET("/users/:id/meetings", handlers.ListUserMeetingsHandler(s.users, s.meetings))

	// Chats and messages
	api.POST("/chats", handlers.CreateChatHandler(s.users, s.chats))
	api.GET("/chats/:id", handlers.GetChatHandler(s.chats))
	api.POST("/chats/:id/messages", handlers.SendMessageHandler(s.config, s.chats, s.messages))
	api.GET("/chats/:id/messages", handlers.ListMessagesHandler(s.chats, s.messages))
	api.PATCH("/messages/:id", handlers.EditMessageHandler(s.config, s.messages))

	// Heuristic assist features
	api.POST("/chats/:id/assist", handlers.AssistHandler(s.chats, s.messages, s.contexts))
	api.POST("/chats/:id/summary", handlers.SummaryHandler(s.config, s.chats, s.messages, s.memo))
	api.POST("/translate", handlers.TranslateHandler(s.config, s.users, s.contexts))
	api.POST("/chats/:id/meeting-suggestions", handlers.MeetingSuggestionsHandler(s.chats, s.messages, s.contexts))

	// Meetings
	api.POST("/meetings", handlers.CreateMeetingHandler(s.users, s.chats, s.meetings))
	api.GET("/meetings/:id", handlers.GetMeetingHandler(s.meetings))
	api.PATCH("/meetings/:id", handlers.UpdateMeetingHandler(s.meetings))
}

// Start starts the HTTP server
func (s *Server) Start() error {
	s.logger.Info().Str("port", s.config.Port).Msg("Server starting")
	return s.echo.Start(":" + s.config.Port)
}
