package model

import (
	"time"

	"github.com/google/uuid"
)

// User is the authentication identity: email, password digest and role,
// independent of the role-specific profile attached to it. Role is immutable
// after creation; no write path updates it.
type User struct {
	ID           uuid.UUID `json:"id" db:"id"`
	Email        string    `json:"email" db:"email"`
	PasswordHash string    `json:"-" db:"password_hash"`
	Role         Role      `json:"role" db:"role"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}

// RegisterRequest is the public patient sign-up payload. Staff accounts are
// never created through this path.
type RegisterRequest struct {
	Email    string               `json:"email" binding:"required,email"`
	Password string               `json:"password" binding:"required,min=8"`
	Role     Role                 `json:"role" binding:"required"`
	Profile  PatientProfileInput  `json:"profile" binding:"required"`
}

// CreateStaffRequest creates a Doctor or Hospital Admin account. The target
// hospital must match the creating admin's own hospital.
type CreateStaffRequest struct {
	Email    string             `json:"email" binding:"required,email"`
	Password string             `json:"password" binding:"required,min=8"`
	Role     Role               `json:"role" binding:"required"`
	Doctor   *DoctorProfileInput `json:"doctor_profile,omitempty"`
	Admin    *AdminProfileInput  `json:"admin_profile,omitempty"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// AnalyticsResponse summarises platform and hospital counts for an admin.
type AnalyticsResponse struct {
	TotalPatients      int `json:"total_patients"`
	TotalRecords       int `json:"total_records"`
	HospitalStaffCount int `json:"hospital_staff_count"`
	HospitalID         int `json:"hospital_id"`
}

// PatientSearchResult is the doctor-facing projection of a patient profile.
type PatientSearchResult struct {
	UserID        uuid.UUID  `json:"user_id"`
	FullName      string     `json:"full_name"`
	DateOfBirth   *time.Time `json:"date_of_birth,omitempty"`
	ContactNumber string     `json:"contact_number,omitempty"`
}
