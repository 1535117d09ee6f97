package main

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/joho/godotenv"

	"logistics-accounts/controller"
	"logistics-accounts/middleware"
	"logistics-accounts/repository"
	"logistics-accounts/service"
	"logistics-accounts/util"
)

func main() {
	// Load .env file with proper error handling
	if err := godotenv.Load(); err != nil {
		log.Printf("warning: failed to load .env file: %v (using system environment variables)", err)
	}

	db := util.InitDB()

	userRepo := repository.NewUserRepository(db)
	otpRepo := repository.NewInMemoryOtpRepo()

	emailService := service.NewEmailService()
	smsService := service.NewSmsService()

	otpService := service.NewOtpService(otpRepo)
	tokenService := service.NewTokenService(util.GetEnv("JWT_SECRET", "fallback-dev-secret"))
	resetService := service.NewResetTokenService(userRepo)

	authService := service.NewAuthService(userRepo, otpService, tokenService, resetService, emailService, smsService)

	util.StartDailyCleanup(tokenService, userRepo)

	app := fiber.New()
	setupRoutes(app, authService, tokenService)

	port := util.GetEnv("PORT", "4000")
	log.Fatal(app.Listen(":" + port))
}

func setupRoutes(app *fiber.App, authService *service.AuthService, tokenService *service.TokenService) {
	// Apply timer metrics middleware globally to all routes
	app.Use(middleware.TimerMetrics)

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	authController := controller.NewAuthController(authService)
	userController := controller.NewUserController(authService)

	user := app.Group("/user")

	user.Post("/register", authController.Register)
	user.Post("/login", authController.Login)
	user.Post("/verify-login-otp", authController.VerifyLoginOTP)
	user.Post("/resend-otp", authController.ResendOTP)
	user.Post("/logout", authController.Logout)

	// password reset (forgot password flow)
	user.Post("/forgot-password", userController.ForgotPassword)
	user.Post("/reset-password", userController.ResetPassword)

	// bearer-token protected
	authed := user.Group("", middleware.RequireAuth(tokenService))
	authed.Post("/update-password", userController.UpdatePassword)
	authed.Get("/me", userController.Me)
}
