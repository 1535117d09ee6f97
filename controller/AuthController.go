package controller

import (
	"errors"

	"logistics-accounts/dto"
	"logistics-accounts/service"
	"logistics-accounts/util"

	"github.com/gofiber/fiber/v2"
)

// AuthController provides handlers for authentication
type AuthController struct {
	svc *service.AuthService
}

func NewAuthController(s *service.AuthService) *AuthController {
	return &AuthController{svc: s}
}

// Register godoc
// @Summary      Register a new user
// @Description  Create an account with email, optional phone, password and a role (TRANSPORTER, DRIVER or MANUFACTURER).
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        payload body dto.RegisterRequest true "Register payload"
// @Success      201  {object}  dto.RegisterResponse
// @Failure      400  {object}  map[string]string
// @Failure      409  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /user/register [post]
func (ac *AuthController) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request payload"})
	}
	if err := util.ValidateStruct(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	res, err := ac.svc.Register(&req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidRole):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid role specified. Allowed roles: TRANSPORTER, DRIVER, MANUFACTURER"})
		case errors.Is(err, service.ErrEmailTaken):
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "email is already taken. Please use another email"})
		case errors.Is(err, service.ErrPhoneTaken):
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "phone number is already taken"})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "registration failed"})
		}
	}

	return c.Status(fiber.StatusCreated).JSON(res)
}

// Login godoc
// @Summary      Login with email or phone plus password
// @Description  Validates credentials and sends a 6-digit OTP to the account's email and phone. The session token is issued by /user/verify-login-otp.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        payload body dto.LoginRequest true "Login payload"
// @Success      200  {object}  dto.LoginResponse
// @Failure      400  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /user/login [post]
func (ac *AuthController) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request payload"})
	}
	if err := util.ValidateStruct(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	id, err := req.Identifier()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid login request"})
	}

	res, err := ac.svc.Login(id, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidCredentials):
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "invalid credentials"})
		case errors.Is(err, service.ErrNotificationFailed):
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "error while sending OTP email"})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "login failed"})
		}
	}

	return c.Status(fiber.StatusOK).JSON(res)
}

// VerifyLoginOTP godoc
// @Summary      Verify login OTP and issue session token
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        payload body dto.VerifyLoginOTPRequest true "Verification payload"
// @Success      200  {object}  dto.VerifyLoginResponse
// @Failure      400  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /user/verify-login-otp [post]
func (ac *AuthController) VerifyLoginOTP(c *fiber.Ctx) error {
	var req dto.VerifyLoginOTPRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request payload"})
	}
	if err := util.ValidateStruct(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	res, err := ac.svc.VerifyLoginOTP(req.Email, req.Code)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidOrExpiredOTP):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid or expired OTP"})
		case errors.Is(err, service.ErrUserNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "user not found"})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "verification failed"})
		}
	}

	return c.Status(fiber.StatusOK).JSON(res)
}

// ResendOTP godoc
// @Summary      Resend the login OTP
// @Description  Generates a fresh OTP (overwriting the pending one) and redelivers it through the available channels.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        payload body dto.ResendOTPRequest true "Resend payload"
// @Success      200  {object}  map[string]string
// @Failure      400  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /user/resend-otp [post]
func (ac *AuthController) ResendOTP(c *fiber.Ctx) error {
	var req dto.ResendOTPRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request payload"})
	}
	if err := util.ValidateStruct(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	// Resolve the duck-typed identifier once, here at the boundary
	id := resolveIdentifier(req.EmailOrPhone)

	if err := ac.svc.ResendOTP(id); err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "user not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to resend OTP"})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"message": "new OTP has been sent to email/phone"})
}

// Logout godoc
// @Summary      Logout and revoke the session token
// @Tags         auth
// @Produce      json
// @Param        Authorization header string true "Bearer <token>"
// @Success      200  {object}  map[string]string
// @Failure      400  {object}  map[string]string
// @Router       /user/logout [post]
func (ac *AuthController) Logout(c *fiber.Ctx) error {
	if err := ac.svc.Logout(c.Get("Authorization")); err != nil {
		switch {
		case errors.Is(err, service.ErrMissingOrMalformedToken):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "token is missing or invalid"})
		case errors.Is(err, service.ErrMalformedToken):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "malformed token"})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "logout failed"})
		}
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"message": "successfully logged out"})
}
