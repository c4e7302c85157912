package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/leads-api/internal/application/auth"
	"github.com/jhoicas/leads-api/internal/application/leads"
	"github.com/jhoicas/leads-api/internal/domain/repository"
	"github.com/jhoicas/leads-api/pkg/logger"
)

// RouterDeps dependencies for the router.
type RouterDeps struct {
	AuthUC    *auth.UseCase
	LeadUC    *leads.UseCase
	Users     repository.UserRepository
	JWTSecret string
	Cookie    CookieConfig
	Log       *logger.Logger
}

// Router registers the API routes.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (public)
	authHandler := NewAuthHandler(deps.AuthUC, deps.Log, deps.Cookie)
	api.Post("/register", authHandler.Register)
	api.Post("/login", authHandler.Login)
	api.Post("/logout", authHandler.Logout)

	// Protected routes (require the session cookie)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret, deps.Users))

	protected.Get("/me", authHandler.Me)

	leadHandler := NewLeadHandler(deps.LeadUC, deps.Log)
	leadGroup := protected.Group("/leads")
	leadGroup.Post("/", leadHandler.Create)
	leadGroup.Get("/", leadHandler.List)
	// Registered before /:id so "report" is not captured as a lead id.
	leadGroup.Get("/report", leadHandler.Report)
	leadGroup.Get("/:id", leadHandler.Get)
	leadGroup.Put("/:id", leadHandler.Update)
	leadGroup.Delete("/:id", leadHandler.Delete)
}
