package controller

import (
	"errors"
	"strings"

	"logistics-accounts/dto"
	"logistics-accounts/middleware"
	"logistics-accounts/service"
	"logistics-accounts/util"

	"github.com/gofiber/fiber/v2"
)

// UserController provides handlers for the password-reset flow and profile
type UserController struct {
	svc *service.AuthService
}

func NewUserController(s *service.AuthService) *UserController {
	return &UserController{svc: s}
}

// resolveIdentifier turns a raw "email or phone" string into the typed form.
// Anything with an @ is treated as an email.
func resolveIdentifier(v string) dto.LoginIdentifier {
	if strings.Contains(v, "@") {
		return dto.LoginIdentifier{Kind: dto.IdentifierEmail, Value: v}
	}
	return dto.LoginIdentifier{Kind: dto.IdentifierPhone, Value: v}
}

// ForgotPassword godoc
// @Summary      Request a password-reset token
// @Description  Emails a single-use reset token valid for 1 hour. A new request overwrites any pending token.
// @Tags         user
// @Accept       json
// @Produce      json
// @Param        payload body dto.ForgotPasswordRequest true "Forgot password payload"
// @Success      200  {object}  map[string]string
// @Failure      400  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /user/forgot-password [post]
func (uc *UserController) ForgotPassword(c *fiber.Ctx) error {
	var req dto.ForgotPasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request payload"})
	}
	if err := util.ValidateStruct(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	if err := uc.svc.ForgotPassword(req.Email); err != nil {
		switch {
		case errors.Is(err, service.ErrUserNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "user not found"})
		case errors.Is(err, service.ErrNotificationFailed):
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "error while sending reset email"})
		case errors.Is(err, service.ErrPersistenceUnavailable):
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": "service temporarily unavailable"})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to issue reset token"})
		}
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"message": "reset token sent successfully to your email"})
}

// ResetPassword godoc
// @Summary      Reset password with a reset token
// @Tags         user
// @Accept       json
// @Produce      json
// @Param        payload body dto.ResetPasswordRequest true "Reset payload"
// @Success      200  {object}  map[string]string
// @Failure      400  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /user/reset-password [post]
func (uc *UserController) ResetPassword(c *fiber.Ctx) error {
	var req dto.ResetPasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request payload"})
	}
	if err := util.ValidateStruct(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	if err := uc.svc.ResetPassword(req.Token, req.NewPassword); err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidResetToken):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid or expired reset token"})
		case errors.Is(err, service.ErrPersistenceUnavailable):
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": "service temporarily unavailable"})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "password reset failed"})
		}
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"message": "password reset successful"})
}

// UpdatePassword godoc
// @Summary      Change password for the authenticated user
// @Tags         user
// @Accept       json
// @Produce      json
// @Param        Authorization header string true "Bearer <token>"
// @Param        payload body dto.UpdatePasswordRequest true "Update payload"
// @Success      200  {object}  map[string]string
// @Failure      400  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Router       /user/update-password [post]
func (uc *UserController) UpdatePassword(c *fiber.Ctx) error {
	principal, ok := middleware.PrincipalFromCtx(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "token is missing or invalid"})
	}

	var req dto.UpdatePasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request payload"})
	}
	if err := util.ValidateStruct(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	if err := uc.svc.UpdatePassword(principal.Subject, &req); err != nil {
		switch {
		case errors.Is(err, service.ErrPasswordMismatch):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "new password and confirm password do not match"})
		case errors.Is(err, service.ErrWrongOldPassword):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "old password is incorrect"})
		case errors.Is(err, service.ErrUserNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "user not found"})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "password update failed"})
		}
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"message": "password updated successfully"})
}

// Me godoc
// @Summary      Get the authenticated user's profile
// @Tags         user
// @Produce      json
// @Param        Authorization header string true "Bearer <token>"
// @Success      200  {object}  map[string]interface{}
// @Failure      401  {object}  map[string]string
// @Router       /user/me [get]
func (uc *UserController) Me(c *fiber.Ctx) error {
	principal, ok := middleware.PrincipalFromCtx(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "token is missing or invalid"})
	}

	user, err := uc.svc.GetProfile(principal.Subject)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "user not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to load profile"})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"user_id": user.ID.String(),
		"name":    user.Name,
		"email":   user.Email,
		"phone":   user.Phone,
		"role":    string(user.Role),
		"roles":   principal.Roles,
	})
}
