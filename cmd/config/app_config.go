package config

import (
	"NutriMind-Backend/internal/api/handlers"
	"NutriMind-Backend/internal/api/routes"
	"NutriMind-Backend/internal/middleware"
	"NutriMind-Backend/internal/utils"
	"NutriMind-Backend/internal/utils/storage"
	"NutriMind-Backend/pkg/jwt"
	"NutriMind-Backend/pkg/profile"
	"NutriMind-Backend/pkg/recommendation"
	"NutriMind-Backend/pkg/subscription"
	"NutriMind-Backend/pkg/wizard"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"gorm.io/gorm"
)

func NewApp(db *gorm.DB) (*fiber.App, error) {
	utils.InitValidator()
	app := fiber.New(fiber.Config{
		EnablePrintRoutes: true,
	})
	middlewares := middleware.NewMiddleware()
	validator := utils.Validate

	// setting up logging and limiter
	err := os.MkdirAll("./logs", os.ModePerm)
	if err != nil {
		log.Fatalf("error creating logs directory: %v", err)
	}
	file, err := os.OpenFile(
		"./logs/app.log",
		os.O_RDWR|os.O_CREATE|os.O_APPEND,
		0666,
	)
	if err != nil {
		log.Fatalf("error opening file: %v", err)
	}
	app.Use(logger.New(logger.Config{
		TimeFormat: "2006-01-02 15:04:05",
		TimeZone:   "Asia/Jakarta",
		Output:     file,
	}))

	app.Use(limiter.New(limiter.Config{
		Max:        10,
		Expiration: 1 * time.Second,
	}))

	// utils
	s3 := storage.NewAwsS3()

	// Repository
	profileRepository := profile.NewProfileRepository(db)
	recommendationRepository := recommendation.NewRecommendationRepository(db)
	subscriptionRepository := subscription.NewSubscriptionRepository(db)

	// Service
	jwtService := jwt.NewJWTService()
	profileService := profile.NewProfileService(profileRepository)
	recommendationService := recommendation.NewRecommendationService(
		recommendationRepository,
		profileRepository,
		s3,
	)
	subscriptionService := subscription.NewSubscriptionService(subscriptionRepository)

	wizardManager := wizard.NewManager(profileService, recommendationService, subscriptionService)

	// Handler
	wizardHandler := handlers.NewWizardHandler(wizardManager, profileService, validator)
	profileHandler := handlers.NewProfileHandler(profileService, validator)
	recommendationHandler := handlers.NewRecommendationHandler(recommendationService, validator)
	subscriptionHandler := handlers.NewSubscriptionHandler(subscriptionService, validator)
	dashboardHandler := handlers.NewDashboardHandler(profileService, subscriptionService, recommendationService)

	// routes
	routesConfig := routes.Config{
		App:                   app,
		WizardHandler:         wizardHandler,
		ProfileHandler:        profileHandler,
		RecommendationHandler: recommendationHandler,
		SubscriptionHandler:   subscriptionHandler,
		DashboardHandler:      dashboardHandler,
		Middleware:            middlewares,
		JWTService:            jwtService,
	}
	routesConfig.Setup()
	return app, nil
}
