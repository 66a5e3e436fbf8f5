package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/medrec/record-api/internal/model"
	"github.com/medrec/record-api/internal/repository"
)

type recordRepository struct {
	BaseRepository
}

func NewRecordRepository(base BaseRepository) repository.RecordRepository {
	return &recordRepository{base}
}

func (r *recordRepository) Create(ctx context.Context, record *model.MedicalRecord) error {
	query := `
		INSERT INTO medical_records (
			patient_id, doctor_id, hospital_id, date_of_visit,
			chief_complaint, diagnosis, treatment_summary, medications, notes
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id
	`
	if record.DateOfVisit.IsZero() {
		record.DateOfVisit = time.Now()
	}

	err := r.db.QueryRowxContext(ctx, query,
		record.PatientID, record.DoctorID, record.HospitalID, record.DateOfVisit,
		record.ChiefComplaint, record.Diagnosis, record.TreatmentSummary,
		record.Medications, record.Notes,
	).Scan(&record.ID)
	return translateErr(err)
}

func (r *recordRepository) Get(ctx context.Context, id int) (*model.MedicalRecord, error) {
	query := `
		SELECT id, patient_id, doctor_id, hospital_id, date_of_visit,
			   chief_complaint, diagnosis, treatment_summary, medications, notes
		FROM medical_records WHERE id = $1
	`
	var record model.MedicalRecord
	if err := r.db.GetContext(ctx, &record, query, id); err != nil {
		return nil, translateErr(err)
	}
	return &record, nil
}

func (r *recordRepository) ListForPatient(ctx context.Context, patientID uuid.UUID, limit, offset int) ([]*model.MedicalRecord, error) {
	query := `
		SELECT id, patient_id, doctor_id, hospital_id, date_of_visit,
			   chief_complaint, diagnosis, treatment_summary, medications, notes
		FROM medical_records
		WHERE patient_id = $1
		ORDER BY date_of_visit DESC
		LIMIT $2 OFFSET $3
	`
	var records []*model.MedicalRecord
	if err := r.db.SelectContext(ctx, &records, query, patientID, limit, offset); err != nil {
		return nil, fmt.Errorf("failed to list patient records: %w", err)
	}
	return records, nil
}

func (r *recordRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM medical_records`); err != nil {
		return 0, fmt.Errorf("failed to count medical records: %w", err)
	}
	return count, nil
}

func (r *recordRepository) CreateLabTest(ctx context.Context, test *model.LabTest) error {
	query := `
		INSERT INTO lab_tests (
			medical_record_id, patient_id, test_name, test_date,
			result_value, units, reference_range, is_abnormal, performed_by_lab
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id
	`
	if test.TestDate.IsZero() {
		test.TestDate = time.Now()
	}

	err := r.db.QueryRowxContext(ctx, query,
		test.MedicalRecordID, test.PatientID, test.TestName, test.TestDate,
		test.ResultValue, test.Units, test.ReferenceRange, test.IsAbnormal, test.PerformedByLab,
	).Scan(&test.ID)
	return translateErr(err)
}

func (r *recordRepository) ListLabTestsForPatient(ctx context.Context, patientID uuid.UUID) ([]*model.LabTest, error) {
	query := `
		SELECT id, medical_record_id, patient_id, test_name, test_date,
			   result_value, units, reference_range, is_abnormal, performed_by_lab
		FROM lab_tests
		WHERE patient_id = $1
		ORDER BY test_date DESC
	`
	var tests []*model.LabTest
	if err := r.db.SelectContext(ctx, &tests, query, patientID); err != nil {
		return nil, fmt.Errorf("failed to list lab tests: %w", err)
	}
	return tests, nil
}
