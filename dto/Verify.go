package dto

// VerifyLoginOTPRequest is the JSON payload sent to /user/verify-login-otp
type VerifyLoginOTPRequest struct {
	Email string `json:"email" validate:"required,email"`
	Code  string `json:"otp"   validate:"required,len=6"` // Enforce exact 6 digits
}

// ResendOTPRequest feeds the "Resend Code" button; accepts email or phone
type ResendOTPRequest struct {
	EmailOrPhone string `json:"email_or_phone" validate:"required"`
}
