package routes

import (
	"NutriMind-Backend/internal/api/handlers"
	"NutriMind-Backend/internal/middleware"
	"NutriMind-Backend/pkg/jwt"

	"github.com/gofiber/fiber/v2"
)

type Config struct {
	App                   *fiber.App
	WizardHandler         handlers.WizardHandler
	ProfileHandler        handlers.ProfileHandler
	RecommendationHandler handlers.RecommendationHandler
	SubscriptionHandler   handlers.SubscriptionHandler
	DashboardHandler      handlers.DashboardHandler
	Middleware            middleware.Middleware
	JWTService            jwt.JWTService
}

func (c *Config) Setup() {
	c.App.Use(c.Middleware.CORSMiddleware())
	c.Wizard()
	c.Profiles()
	c.Recommendations()
	c.Subscription()
	c.GuestRoute()
}

func (c *Config) Wizard() {
	wizard := c.App.Group("/api/v1/wizard", c.Middleware.AuthMiddleware(c.JWTService))
	// questionnaire flow
	{
		wizard.Get("", c.WizardHandler.GetState)
		wizard.Patch("", c.WizardHandler.ApplyAnswers)
		wizard.Post("/next", c.WizardHandler.Advance)
		wizard.Post("/back", c.WizardHandler.Back)
		wizard.Post("/generate", c.WizardHandler.Generate)
		wizard.Post("/dashboard", c.WizardHandler.ToDashboard)
		wizard.Post("/restart", c.WizardHandler.Restart)
	}

	c.App.Get("/api/v1/dashboard", c.Middleware.AuthMiddleware(c.JWTService), c.DashboardHandler.GetDashboard)
}

func (c *Config) Profiles() {
	profiles := c.App.Group("/api/v1/profiles", c.Middleware.AuthMiddleware(c.JWTService))
	{
		profiles.Get("/me", c.ProfileHandler.GetProfile)
		profiles.Put("", c.ProfileHandler.UpdateProfile)
	}
}

func (c *Config) Recommendations() {
	recommendations := c.App.Group("/api/v1/recommendations", c.Middleware.AuthMiddleware(c.JWTService))
	{
		recommendations.Get("/current", c.RecommendationHandler.GetCurrent)
		recommendations.Get("/history", c.RecommendationHandler.GetHistory)
		recommendations.Get("/:id/print", c.RecommendationHandler.GetPrintVersion)
		recommendations.Post("/:id/export", c.RecommendationHandler.Export)
		recommendations.Post("/:id/email", c.RecommendationHandler.Email)
	}
}

func (c *Config) Subscription() {
	subscription := c.App.Group("/api/v1/subscription", c.Middleware.AuthMiddleware(c.JWTService))
	{
		subscription.Get("", c.SubscriptionHandler.GetSubscription)
		subscription.Get("/usage", c.SubscriptionHandler.GetUsage)
		subscription.Post("/checkout", c.SubscriptionHandler.CreateCheckout)
		subscription.Post("/portal", c.SubscriptionHandler.BillingPortal)
	}
}

func (c *Config) GuestRoute() {
	c.App.Get("/api/ping", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"message": "pong, its works"})
	})
	c.App.Post("/webhook/midtrans", c.SubscriptionHandler.MidtransWebhookHandler)
}
