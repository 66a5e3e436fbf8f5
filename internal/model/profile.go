package model

import (
	"time"

	"github.com/google/uuid"
)

// Profile is the one-of-three shape attached one-to-one to an identity.
// Dispatch is keyed by the identity's role; every switch over Profile or
// Role must handle all three cases.
type Profile interface {
	ProfileRole() Role
}

type PatientProfile struct {
	UserID        uuid.UUID  `json:"user_id" db:"user_id"`
	FirstName     string     `json:"first_name" db:"first_name"`
	LastName      string     `json:"last_name" db:"last_name"`
	DateOfBirth   *time.Time `json:"date_of_birth,omitempty" db:"date_of_birth"`
	Gender        string     `json:"gender,omitempty" db:"gender"`
	BloodType     string     `json:"blood_type,omitempty" db:"blood_type"`
	ContactNumber string     `json:"contact_number,omitempty" db:"contact_number"`
	Address       string     `json:"address,omitempty" db:"address"`
}

func (PatientProfile) ProfileRole() Role { return RolePatient }

type DoctorProfile struct {
	UserID        uuid.UUID `json:"user_id" db:"user_id"`
	HospitalID    int       `json:"hospital_id" db:"hospital_id"`
	Specialty     string    `json:"specialty" db:"specialty"`
	LicenseNumber string    `json:"license_number" db:"license_number"`
	ContactNumber string    `json:"contact_number,omitempty" db:"contact_number"`
}

func (DoctorProfile) ProfileRole() Role { return RoleDoctor }

type AdminProfile struct {
	UserID     uuid.UUID `json:"user_id" db:"user_id"`
	HospitalID int       `json:"hospital_id" db:"hospital_id"`
	JobTitle   string    `json:"job_title,omitempty" db:"job_title"`
}

func (AdminProfile) ProfileRole() Role { return RoleHospitalAdmin }

// PatientProfileInput is the patient-editable slice of PatientProfile, used
// for registration and self-service updates.
type PatientProfileInput struct {
	FirstName     string     `json:"first_name" binding:"required"`
	LastName      string     `json:"last_name" binding:"required"`
	DateOfBirth   *time.Time `json:"date_of_birth,omitempty"`
	Gender        string     `json:"gender,omitempty"`
	BloodType     string     `json:"blood_type,omitempty" binding:"omitempty,bloodtype"`
	ContactNumber string     `json:"contact_number,omitempty"`
	Address       string     `json:"address,omitempty"`
}

type DoctorProfileInput struct {
	HospitalID    int    `json:"hospital_id" binding:"required"`
	Specialty     string `json:"specialty" binding:"required"`
	LicenseNumber string `json:"license_number" binding:"required"`
	ContactNumber string `json:"contact_number,omitempty"`
}

type AdminProfileInput struct {
	HospitalID int    `json:"hospital_id" binding:"required"`
	JobTitle   string `json:"job_title,omitempty"`
}
