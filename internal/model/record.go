package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// MedicalRecord is a structured visit record. It is created once by a doctor
// and immutable afterwards; doctor_id and hospital_id are stamped from the
// creating doctor's profile at write time, never taken from the client.
type MedicalRecord struct {
	ID               int         `json:"id" db:"id"`
	PatientID        uuid.UUID   `json:"patient_id" db:"patient_id"`
	DoctorID         uuid.UUID   `json:"doctor_id" db:"doctor_id"`
	HospitalID       int         `json:"hospital_id" db:"hospital_id"`
	DateOfVisit      time.Time   `json:"date_of_visit" db:"date_of_visit"`
	ChiefComplaint   string      `json:"chief_complaint,omitempty" db:"chief_complaint"`
	Diagnosis        string      `json:"diagnosis" db:"diagnosis"`
	TreatmentSummary string      `json:"treatment_summary,omitempty" db:"treatment_summary"`
	Medications      Medications `json:"medications,omitempty" db:"medications"`
	Notes            string      `json:"notes,omitempty" db:"notes"`
}

type Medication struct {
	Name      string `json:"name"`
	Dosage    string `json:"dosage,omitempty"`
	Frequency string `json:"frequency,omitempty"`
}

// Medications stores as a jsonb column.
type Medications []Medication

func (m Medications) Value() (driver.Value, error) {
	if m == nil {
		return nil, nil
	}
	return json.Marshal(m)
}

func (m *Medications) Scan(src interface{}) error {
	if src == nil {
		*m = nil
		return nil
	}
	raw, ok := src.([]byte)
	if !ok {
		return fmt.Errorf("medications: unsupported scan type %T", src)
	}
	return json.Unmarshal(raw, m)
}

// CreateRecordRequest deliberately has no doctor or hospital fields.
type CreateRecordRequest struct {
	PatientID        uuid.UUID   `json:"patient_id" binding:"required"`
	DateOfVisit      *time.Time  `json:"date_of_visit,omitempty"`
	ChiefComplaint   string      `json:"chief_complaint,omitempty"`
	Diagnosis        string      `json:"diagnosis" binding:"required"`
	TreatmentSummary string      `json:"treatment_summary,omitempty"`
	Medications      Medications `json:"medications,omitempty"`
	Notes            string      `json:"notes,omitempty"`
}

// LabTest is a detailed test result attached to a patient and optionally to
// the medical record that ordered it.
type LabTest struct {
	ID              int        `json:"id" db:"id"`
	MedicalRecordID *int       `json:"medical_record_id,omitempty" db:"medical_record_id"`
	PatientID       uuid.UUID  `json:"patient_id" db:"patient_id"`
	TestName        string     `json:"test_name" db:"test_name"`
	TestDate        time.Time  `json:"test_date" db:"test_date"`
	ResultValue     string     `json:"result_value,omitempty" db:"result_value"`
	Units           string     `json:"units,omitempty" db:"units"`
	ReferenceRange  string     `json:"reference_range,omitempty" db:"reference_range"`
	IsAbnormal      *bool      `json:"is_abnormal,omitempty" db:"is_abnormal"`
	PerformedByLab  string     `json:"performed_by_lab,omitempty" db:"performed_by_lab"`
}

type CreateLabTestRequest struct {
	TestName       string     `json:"test_name" binding:"required"`
	TestDate       *time.Time `json:"test_date,omitempty"`
	ResultValue    string     `json:"result_value,omitempty"`
	Units          string     `json:"units,omitempty"`
	ReferenceRange string     `json:"reference_range,omitempty"`
	IsAbnormal     *bool      `json:"is_abnormal,omitempty"`
	PerformedByLab string     `json:"performed_by_lab,omitempty"`
}
