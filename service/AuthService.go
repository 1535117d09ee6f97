package service

import (
	"errors"
	"fmt"
	"log"
	"strings"

	"logistics-accounts/dto"
	"logistics-accounts/model"
	"logistics-accounts/repository"
	"logistics-accounts/util"
)

// AuthService orchestrates the two-step login (password, then OTP), the
// password-reset flow, and logout. It holds no state of its own; the OTP
// store, token issuer and reset-token lifecycle each own theirs.
type AuthService struct {
	userRepo repository.UserRepository
	otpSvc   *OtpService
	tokenSvc *TokenService
	resetSvc *ResetTokenService
	email    EmailSender
	sms      SmsSender
}

func NewAuthService(
	users repository.UserRepository,
	otp *OtpService,
	tokens *TokenService,
	reset *ResetTokenService,
	email EmailSender,
	sms SmsSender,
) *AuthService {
	return &AuthService{
		userRepo: users,
		otpSvc:   otp,
		tokenSvc: tokens,
		resetSvc: reset,
		email:    email,
		sms:      sms,
	}
}

// Register creates a new account with a hashed password and fires a
// best-effort welcome email.
func (s *AuthService) Register(req *dto.RegisterRequest) (*dto.RegisterResponse, error) {
	role := model.Role(strings.ToUpper(req.Role))
	if !role.IsValid() {
		return nil, ErrInvalidRole
	}

	taken, err := s.userRepo.ExistsByEmail(req.Email)
	if err != nil {
		return nil, persistenceErr(err)
	}
	if taken {
		return nil, ErrEmailTaken
	}
	if req.Phone != "" {
		taken, err = s.userRepo.ExistsByPhone(req.Phone)
		if err != nil {
			return nil, persistenceErr(err)
		}
		if taken {
			return nil, ErrPhoneTaken
		}
	}

	hashed, err := util.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Name:     req.Name,
		Email:    req.Email,
		Phone:    req.Phone,
		Password: hashed,
		Role:     role,
	}
	if err := s.userRepo.Create(user); err != nil {
		if util.IsDuplicateKeyError(err) {
			return nil, ErrEmailTaken
		}
		return nil, persistenceErr(err)
	}

	// Welcome mail is best-effort; registration already succeeded
	go func() {
		body := fmt.Sprintf("Dear %s,\n\nYour account has been successfully created.", user.Name)
		if err := s.email.Send(user.Email, "Welcome to Logistics Pvt Ltd!", body); err != nil {
			log.Printf("Failed to send welcome email to %s: %v", user.Email, err)
		}
	}()

	return &dto.RegisterResponse{
		ID:    user.ID.String(),
		Name:  user.Name,
		Email: user.Email,
		Role:  string(user.Role),
	}, nil
}

// Login checks the password for the account behind the identifier and, on
// match, issues an OTP keyed by the account's email (the canonical key even
// when the login came in by phone). Email delivery is mandatory; SMS is
// best-effort.
func (s *AuthService) Login(id dto.LoginIdentifier, password string) (*dto.LoginResponse, error) {
	user, err := s.lookup(id)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := util.ComparePassword(user.Password, password); err != nil {
		return nil, ErrInvalidCredentials
	}

	code, err := s.otpSvc.Generate(user.Email)
	if err != nil {
		return nil, err
	}

	body := fmt.Sprintf("Your OTP for login is: %s. This OTP is valid for 5 minutes.", code)
	if err := s.email.Send(user.Email, "Login OTP", body); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNotificationFailed, err)
	}

	if user.Phone != "" {
		if err := s.sms.Send(user.Phone, "Your OTP for login is: "+code); err != nil {
			log.Printf("Failed to send login OTP SMS to %s: %v", user.Phone, err)
		}
	}

	return &dto.LoginResponse{
		Message: "OTP sent to email and phone. Please verify to proceed.",
		Email:   user.Email,
	}, nil
}

// VerifyLoginOTP completes the login. A wrong or stale code leaves any still-
// valid pending code in place for further attempts; a correct one issues the
// session token and consumes the code.
func (s *AuthService) VerifyLoginOTP(email, code string) (*dto.VerifyLoginResponse, error) {
	if !s.otpSvc.Validate(email, code) {
		return nil, ErrInvalidOrExpiredOTP
	}

	user, err := s.userRepo.GetByEmail(email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, persistenceErr(err)
	}

	token, err := s.tokenSvc.Issue(user.Email, []string{string(user.Role)})
	if err != nil {
		return nil, err
	}

	s.otpSvc.Invalidate(email)

	return &dto.VerifyLoginResponse{
		Token:  token,
		UserID: user.ID.String(),
		Name:   user.Name,
		Email:  user.Email,
		Role:   string(user.Role),
	}, nil
}

// ResendOTP generates a fresh code (overwriting the pending one) and
// redispatches it. Both channels are best-effort here.
func (s *AuthService) ResendOTP(id dto.LoginIdentifier) error {
	user, err := s.lookup(id)
	if err != nil {
		return err
	}

	code, err := s.otpSvc.Generate(user.Email)
	if err != nil {
		return err
	}

	body := fmt.Sprintf("Your new OTP for login is: %s. This OTP is valid for 5 minutes.", code)
	if err := s.email.Send(user.Email, "Login OTP", body); err != nil {
		log.Printf("Failed to resend login OTP email to %s: %v", user.Email, err)
	}
	if user.Phone != "" {
		if err := s.sms.Send(user.Phone, "Your new OTP for login is: "+code); err != nil {
			log.Printf("Failed to resend login OTP SMS to %s: %v", user.Phone, err)
		}
	}
	return nil
}

// Logout pulls the bearer token out of the Authorization header value and
// revokes it until its natural expiry.
func (s *AuthService) Logout(authHeader string) error {
	if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
		return ErrMissingOrMalformedToken
	}
	token := strings.TrimPrefix(authHeader, "Bearer ")
	return s.tokenSvc.Invalidate(token)
}

// ForgotPassword issues a reset token for the account and emails it. Delivery
// is mandatory: a reset nobody receives helps nobody.
func (s *AuthService) ForgotPassword(email string) error {
	if _, err := s.userRepo.GetByEmail(email); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrUserNotFound
		}
		return persistenceErr(err)
	}

	token, err := s.resetSvc.GenerateResetToken(email)
	if err != nil {
		return err
	}

	body := fmt.Sprintf("Your password reset token is: %s. This token is valid for 1 hour.", token)
	if err := s.email.Send(email, "Password Reset", body); err != nil {
		return fmt.Errorf("%w: %v", ErrNotificationFailed, err)
	}
	return nil
}

// ResetPassword validates the reset token, updates the password, and
// invalidates the token immediately after the update so it cannot be
// replayed.
func (s *AuthService) ResetPassword(token, newPassword string) error {
	ok, err := s.resetSvc.ValidateResetToken(token)
	if err != nil {
		return err
	}
	if !ok {
		return ErrInvalidResetToken
	}

	email, err := s.resetSvc.GetEmailFromToken(token)
	if err != nil {
		return err
	}

	hashed, err := util.HashPassword(newPassword)
	if err != nil {
		return err
	}
	if err := s.userRepo.UpdatePassword(email, hashed); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrUserNotFound
		}
		return persistenceErr(err)
	}

	return s.resetSvc.InvalidateResetToken(token)
}

// UpdatePassword changes the password for an authenticated user after
// checking the old one.
func (s *AuthService) UpdatePassword(email string, req *dto.UpdatePasswordRequest) error {
	if req.NewPassword != req.ConfirmPassword {
		return ErrPasswordMismatch
	}

	user, err := s.userRepo.GetByEmail(email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrUserNotFound
		}
		return persistenceErr(err)
	}

	if err := util.ComparePassword(user.Password, req.OldPassword); err != nil {
		return ErrWrongOldPassword
	}

	hashed, err := util.HashPassword(req.NewPassword)
	if err != nil {
		return err
	}
	if err := s.userRepo.UpdatePassword(email, hashed); err != nil {
		return persistenceErr(err)
	}
	return nil
}

// GetProfile returns the account behind a validated subject.
func (s *AuthService) GetProfile(email string) (*model.User, error) {
	user, err := s.userRepo.GetByEmail(email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, persistenceErr(err)
	}
	return user, nil
}

func (s *AuthService) lookup(id dto.LoginIdentifier) (*model.User, error) {
	var (
		user *model.User
		err  error
	)
	switch id.Kind {
	case dto.IdentifierPhone:
		user, err = s.userRepo.GetByPhone(id.Value)
	default:
		user, err = s.userRepo.GetByEmail(id.Value)
	}
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, persistenceErr(err)
	}
	return user, nil
}
