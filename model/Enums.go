package model

// 1. Define the custom type (underlying type is string)
type Role string

// 2. Define the exact allowed values
const (
	RoleTransporter  Role = "TRANSPORTER"
	RoleDriver       Role = "DRIVER"
	RoleManufacturer Role = "MANUFACTURER"
)

// Optional: Helper to validate if a string is a valid enum
func (r Role) IsValid() bool {
	switch r {
	case RoleTransporter, RoleDriver, RoleManufacturer:
		return true
	}
	return false
}
