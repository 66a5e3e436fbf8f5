package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/medrec/record-api/internal/model"
)

// ErrNotFound is returned by lookups when no row matches. Services translate
// it into the user-facing taxonomy; repositories never decide HTTP semantics.
var ErrNotFound = errors.New("not found")

// ErrDuplicate is returned when a uniqueness constraint (email, license
// number, hospital name) is violated.
var ErrDuplicate = errors.New("duplicate")

// UserRepository is the identity + profile side of the storage collaborator.
// The CreateWith* methods are atomic: either the identity row and its
// profile row both exist afterwards, or neither does.
type UserRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)

	CreateWithPatientProfile(ctx context.Context, user *model.User, profile *model.PatientProfile) error
	CreateWithDoctorProfile(ctx context.Context, user *model.User, profile *model.DoctorProfile) error
	CreateWithAdminProfile(ctx context.Context, user *model.User, profile *model.AdminProfile) error

	GetPatientProfile(ctx context.Context, userID uuid.UUID) (*model.PatientProfile, error)
	GetDoctorProfile(ctx context.Context, userID uuid.UUID) (*model.DoctorProfile, error)
	GetAdminProfile(ctx context.Context, userID uuid.UUID) (*model.AdminProfile, error)

	UpdatePatientProfile(ctx context.Context, profile *model.PatientProfile) error
	SearchPatients(ctx context.Context, query string) ([]*model.PatientProfile, error)

	CountPatients(ctx context.Context) (int, error)
	CountHospitalDoctors(ctx context.Context, hospitalID int) (int, error)
}

type HospitalRepository interface {
	Create(ctx context.Context, hospital *model.Hospital) error
	Get(ctx context.Context, id int) (*model.Hospital, error)
	List(ctx context.Context, limit, offset int) ([]*model.Hospital, error)
	Update(ctx context.Context, hospital *model.Hospital) error
	Exists(ctx context.Context, id int) (bool, error)
}

type RecordRepository interface {
	Create(ctx context.Context, record *model.MedicalRecord) error
	Get(ctx context.Context, id int) (*model.MedicalRecord, error)
	ListForPatient(ctx context.Context, patientID uuid.UUID, limit, offset int) ([]*model.MedicalRecord, error)
	Count(ctx context.Context) (int, error)

	CreateLabTest(ctx context.Context, test *model.LabTest) error
	ListLabTestsForPatient(ctx context.Context, patientID uuid.UUID) ([]*model.LabTest, error)
}

type AuditRepository interface {
	Insert(ctx context.Context, event *model.AccessEvent) error
}
