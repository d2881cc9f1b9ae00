package domain

import "time"

const (
	RoleAdmin   = "admin"
	RoleCitizen = "citizen"
)

type User struct {
	UserID        string     `json:"id" dynamodbav:"user_id"`
	FirstName     string     `json:"first_name" dynamodbav:"first_name"`
	LastName      string     `json:"last_name" dynamodbav:"last_name"`
	ContactNumber string     `json:"contact_number" dynamodbav:"contact_number"`
	PasswordHash  string     `json:"-" dynamodbav:"password_hash"`
	Barangay      string     `json:"barangay" dynamodbav:"barangay"`
	Role          string     `json:"role" dynamodbav:"role"`
	IsActive      bool       `json:"is_active" dynamodbav:"is_active"`
	IsVerified    bool       `json:"is_verified" dynamodbav:"is_verified"`
	LastLogin     *time.Time `json:"last_login,omitempty" dynamodbav:"last_login"`
	CreatedAt     time.Time  `json:"created" dynamodbav:"created_at"`
	UpdatedAt     time.Time  `json:"updated" dynamodbav:"updated_at"`
}

// RegistrationRequest is the body of POST /auth/send-otp. The fields are held
// in the pending-verification store until the OTP is confirmed; nothing is
// persisted before then.
type RegistrationRequest struct {
	FirstName     string `json:"firstName" validate:"required"`
	LastName      string `json:"lastName" validate:"required"`
	ContactNumber string `json:"contactNumber" validate:"required,phmobile"`
	Password      string `json:"password" validate:"required,min=8,max=72"`
	Barangay      string `json:"barangay" validate:"required,barangay"`
}

type LoginRequest struct {
	ContactNumber string `json:"contactNumber" validate:"required,phmobile"`
	Password      string `json:"password" validate:"required"`
}

type UpdateProfileRequest struct {
	FirstName *string `json:"firstName"`
	LastName  *string `json:"lastName"`
	Barangay  *string `json:"barangay" validate:"omitempty,barangay"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword" validate:"required,min=8,max=72"`
}

// AdminCreateUserRequest covers direct account creation from the admin
// console. Accounts created this way skip the OTP flow and come out verified.
type AdminCreateUserRequest struct {
	FirstName     string `json:"firstName" validate:"required"`
	LastName      string `json:"lastName" validate:"required"`
	ContactNumber string `json:"contactNumber" validate:"required,phmobile"`
	Password      string `json:"password" validate:"required,min=8,max=72"`
	Barangay      string `json:"barangay" validate:"required,barangay"`
	Role          string `json:"role" validate:"required,oneof=admin citizen"`
}

type AdminUpdateUserRequest struct {
	FirstName *string `json:"firstName"`
	LastName  *string `json:"lastName"`
	Barangay  *string `json:"barangay" validate:"omitempty,barangay"`
	Role      *string `json:"role" validate:"omitempty,oneof=admin citizen"`
	IsActive  *bool   `json:"isActive"`
}
