package record

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/medrec/record-api/internal/model"
	"github.com/medrec/record-api/internal/repository"
	"github.com/medrec/record-api/internal/service/audit"
	apperrors "github.com/medrec/record-api/pkg/errors"
	"github.com/medrec/record-api/pkg/metrics"
)

const defaultListLimit = 100

// Service gates clinical record access. Records are written once by a doctor
// and never updated or deleted through this service.
type Service struct {
	records repository.RecordRepository
	users   repository.UserRepository
	auditor *audit.Service
	metrics *metrics.Metrics
}

func NewService(records repository.RecordRepository, users repository.UserRepository,
	auditor *audit.Service, m *metrics.Metrics) *Service {
	return &Service{records: records, users: users, auditor: auditor, metrics: m}
}

// Create writes a visit record for a patient. doctor_id and hospital_id are
// derived from the authenticated doctor's profile; the request carries
// neither, so a doctor cannot write on behalf of another doctor or hospital.
func (s *Service) Create(ctx context.Context, doctor *model.User, req *model.CreateRecordRequest) (*model.MedicalRecord, error) {
	if _, err := s.users.GetPatientProfile(ctx, req.PatientID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NotFound("patient")
		}
		return nil, apperrors.Internal(err)
	}

	doctorProfile, err := s.users.GetDoctorProfile(ctx, doctor.ID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.Internal(fmt.Errorf("doctor %s has no profile row", doctor.ID))
		}
		return nil, apperrors.Internal(err)
	}

	record := &model.MedicalRecord{
		PatientID:        req.PatientID,
		DoctorID:         doctor.ID,
		HospitalID:       doctorProfile.HospitalID,
		ChiefComplaint:   req.ChiefComplaint,
		Diagnosis:        req.Diagnosis,
		TreatmentSummary: req.TreatmentSummary,
		Medications:      req.Medications,
		Notes:            req.Notes,
	}
	if req.DateOfVisit != nil {
		record.DateOfVisit = *req.DateOfVisit
	}

	if err := s.records.Create(ctx, record); err != nil {
		return nil, apperrors.Internal(err)
	}

	if s.metrics != nil {
		s.metrics.RecordsCreated.Inc()
	}
	s.auditor.Record(ctx, doctor.ID, "create_record", "medical_record", fmt.Sprint(record.ID), model.AuditOutcomeAllowed)
	return record, nil
}

// Get returns a single record. Existence is checked before scope here: an
// unknown record id is 404 for everyone, then a patient caller is limited to
// their own records.
func (s *Service) Get(ctx context.Context, caller *model.User, recordID int) (*model.MedicalRecord, error) {
	record, err := s.records.Get(ctx, recordID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NotFound("medical record")
		}
		return nil, apperrors.Internal(err)
	}

	if caller.Role == model.RolePatient && record.PatientID != caller.ID {
		s.auditor.Record(ctx, caller.ID, "read_record", "medical_record", fmt.Sprint(recordID), model.AuditOutcomeDenied)
		return nil, apperrors.Forbidden("patients can only view their own records")
	}

	s.auditor.Record(ctx, caller.ID, "read_record", "medical_record", fmt.Sprint(recordID), model.AuditOutcomeAllowed)
	return record, nil
}

// ListForPatient returns a patient's records, newest visit first. Scope is
// checked before existence: a patient asking for another patient's list is
// refused without learning whether that patient exists.
func (s *Service) ListForPatient(ctx context.Context, caller *model.User, patientID uuid.UUID, limit, offset int) ([]*model.MedicalRecord, error) {
	if caller.Role == model.RolePatient && caller.ID != patientID {
		s.auditor.Record(ctx, caller.ID, "list_records", "patient", patientID.String(), model.AuditOutcomeDenied)
		return nil, apperrors.Forbidden("patients can only view their own records")
	}

	if _, err := s.users.GetPatientProfile(ctx, patientID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NotFound("patient")
		}
		return nil, apperrors.Internal(err)
	}

	if limit <= 0 || limit > defaultListLimit {
		limit = defaultListLimit
	}
	if offset < 0 {
		offset = 0
	}

	records, err := s.records.ListForPatient(ctx, patientID, limit, offset)
	if err != nil {
		return nil, apperrors.Internal(err)
	}

	s.auditor.Record(ctx, caller.ID, "list_records", "patient", patientID.String(), model.AuditOutcomeAllowed)
	return records, nil
}

// CreateLabTest attaches a test result to a record's patient. The record
// must exist (404 first) and the test is stamped with that record's patient.
func (s *Service) CreateLabTest(ctx context.Context, doctor *model.User, recordID int, req *model.CreateLabTestRequest) (*model.LabTest, error) {
	record, err := s.records.Get(ctx, recordID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NotFound("medical record")
		}
		return nil, apperrors.Internal(err)
	}

	test := &model.LabTest{
		MedicalRecordID: &record.ID,
		PatientID:       record.PatientID,
		TestName:        req.TestName,
		ResultValue:     req.ResultValue,
		Units:           req.Units,
		ReferenceRange:  req.ReferenceRange,
		IsAbnormal:      req.IsAbnormal,
		PerformedByLab:  req.PerformedByLab,
	}
	if req.TestDate != nil {
		test.TestDate = *req.TestDate
	}

	if err := s.records.CreateLabTest(ctx, test); err != nil {
		return nil, apperrors.Internal(err)
	}

	s.auditor.Record(ctx, doctor.ID, "create_lab_test", "lab_test", fmt.Sprint(test.ID), model.AuditOutcomeAllowed)
	return test, nil
}

// ListLabTestsForPatient mirrors the record listing rules: patient
// self-scope before patient existence.
func (s *Service) ListLabTestsForPatient(ctx context.Context, caller *model.User, patientID uuid.UUID) ([]*model.LabTest, error) {
	if caller.Role == model.RolePatient && caller.ID != patientID {
		s.auditor.Record(ctx, caller.ID, "list_lab_tests", "patient", patientID.String(), model.AuditOutcomeDenied)
		return nil, apperrors.Forbidden("patients can only view their own lab tests")
	}

	if _, err := s.users.GetPatientProfile(ctx, patientID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NotFound("patient")
		}
		return nil, apperrors.Internal(err)
	}

	tests, err := s.records.ListLabTestsForPatient(ctx, patientID)
	if err != nil {
		return nil, apperrors.Internal(err)
	}

	s.auditor.Record(ctx, caller.ID, "list_lab_tests", "patient", patientID.String(), model.AuditOutcomeAllowed)
	return tests, nil
}
