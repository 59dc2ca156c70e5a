package server

import (
	"context"
	"log"

	"github.com/gofiber/fiber/v3/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"notiguard/internal/assistant"
	"notiguard/internal/config"
	"notiguard/internal/db"
	"notiguard/internal/email"
	"notiguard/internal/handlers"
	"notiguard/internal/handlers/api"
	"notiguard/internal/middleware"
)

// RegisterRoutes registers all application routes.
func (s *Server) RegisterRoutes(ctx context.Context, database *db.DB, asst *assistant.Assistant, notifier *email.Notifier, departments *config.DepartmentsConfig) error {
	// Initialize middleware
	authMiddleware := middleware.NewAuthMiddleware(database, s.Cfg)

	// Initialize handlers
	probeHandler := handlers.NewProbeHandler(database)
	pageHandler := handlers.NewPageHandler(s.Cfg, database)
	chatHandler := api.NewChatHandler(asst)
	departmentHandler := api.NewDepartmentHandler(asst, departments)
	noticeHandler := api.NewNoticeHandler(database)
	inquiryHandler := api.NewInquiryHandler(database, asst, notifier, departments)
	statsHandler := api.NewStatsHandler(database)

	// Probes and metrics
	s.App.Get("/livez", probeHandler.Liveness)
	s.App.Get("/healthz", probeHandler.Readiness)
	s.App.Get("/readyz", probeHandler.Readiness)
	s.App.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	// Auth routes
	s.App.Get("/login", pageHandler.Login)
	if s.Cfg.OIDCIssuer != "" {
		authHandler, err := handlers.NewAuthHandler(ctx, s.Cfg, database)
		if err != nil {
			return err
		}
		s.App.Get("/auth/login", authHandler.Login)
		s.App.Get("/auth/callback", authHandler.Callback)
		s.App.Get("/auth/logout", authHandler.Logout)
	} else if s.Cfg.IdentityHeader == "" {
		log.Println("Warning: neither OIDC_ISSUER nor IDENTITY_HEADER is set, nobody can sign in")
	} else {
		log.Printf("OIDC disabled, identifying employees by %s header", s.Cfg.IdentityHeader)
	}

	// Pages
	s.App.Get("/", authMiddleware.RequireAuth, pageHandler.Chat)
	s.App.Get("/admin/keywords", authMiddleware.RequireAuth, authMiddleware.RequireAdmin, pageHandler.Keywords)

	// Employee API
	apiGroup := s.App.Group("/api", authMiddleware.RequireAuth)
	apiGroup.Post("/chat", chatHandler.Ask)
	apiGroup.Get("/chat/popup", chatHandler.Popup)
	apiGroup.Post("/chat/popup/:id/ack", chatHandler.AcknowledgePopup)
	apiGroup.Get("/notices/:id", noticeHandler.Get)
	apiGroup.Get("/departments/detect", departmentHandler.Detect)
	apiGroup.Post("/inquiries/refine", inquiryHandler.Refine)
	apiGroup.Post("/inquiries", inquiryHandler.Create)

	// Admin API
	adminGroup := apiGroup.Group("/admin", authMiddleware.RequireAdmin)
	adminGroup.Get("/inquiries", inquiryHandler.List)
	adminGroup.Get("/inquiries/:id", inquiryHandler.Get)
	adminGroup.Post("/inquiries/:id/status", inquiryHandler.UpdateStatus)
	adminGroup.Get("/keyword-stats", statsHandler.KeywordStats)

	return nil
}
