package dto

import "errors"

type RegisterRequest struct {
	Name     string `json:"name" validate:"required,min=2,max=50"`
	Email    string `json:"email" validate:"required,email,max=255"`
	Phone    string `json:"phone" validate:"omitempty,min=7,max=20"`
	Password string `json:"password" validate:"required,min=8,max=72"` // Max 72 is a common bcrypt limit
	Role     string `json:"role" validate:"required"`
}

type RegisterResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// LoginRequest carries either email+password or phone+password
type LoginRequest struct {
	Email    string `json:"email" validate:"omitempty,email"`
	Phone    string `json:"phone" validate:"omitempty,min=7,max=20"`
	Password string `json:"password" validate:"required"`
}

// IdentifierKind distinguishes the two supported login channels.
type IdentifierKind int

const (
	IdentifierEmail IdentifierKind = iota
	IdentifierPhone
)

// LoginIdentifier is the typed form of "email or phone", resolved once at the
// request boundary so downstream code never re-guesses what the string is.
type LoginIdentifier struct {
	Kind  IdentifierKind
	Value string
}

var ErrNoIdentifier = errors.New("either email or phone is required")

// Identifier resolves the request into a typed identifier. Email wins when
// both fields are supplied.
func (r *LoginRequest) Identifier() (LoginIdentifier, error) {
	if r.Email != "" {
		return LoginIdentifier{Kind: IdentifierEmail, Value: r.Email}, nil
	}
	if r.Phone != "" {
		return LoginIdentifier{Kind: IdentifierPhone, Value: r.Phone}, nil
	}
	return LoginIdentifier{}, ErrNoIdentifier
}

// LoginResponse is returned after the password step; the session token only
// arrives after OTP verification.
type LoginResponse struct {
	Message string `json:"message"`
	Email   string `json:"email"`
}

// VerifyLoginResponse carries the session token plus a minimal account summary
type VerifyLoginResponse struct {
	Token  string `json:"token"`
	UserID string `json:"user_id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Role   string `json:"role"`
}

type ForgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type ResetPasswordRequest struct {
	Token       string `json:"token" validate:"required"`
	NewPassword string `json:"new_password" validate:"required,min=8,max=72"`
}

type UpdatePasswordRequest struct {
	OldPassword     string `json:"old_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required,min=8,max=72"`
	ConfirmPassword string `json:"confirm_password" validate:"required"`
}
