package model

import "time"

type Hospital struct {
	ID          int       `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	Address     string    `json:"address" db:"address"`
	ContactInfo string    `json:"contact_info,omitempty" db:"contact_info"`
	IsActive    bool      `json:"is_active" db:"is_active"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}

type CreateHospitalRequest struct {
	Name        string `json:"name" binding:"required"`
	Address     string `json:"address" binding:"required"`
	ContactInfo string `json:"contact_info,omitempty"`
}

// UpdateHospitalRequest is a partial update; nil fields are left untouched.
type UpdateHospitalRequest struct {
	Name        *string `json:"name,omitempty"`
	Address     *string `json:"address,omitempty"`
	ContactInfo *string `json:"contact_info,omitempty"`
	IsActive    *bool   `json:"is_active,omitempty"`
}
