package user

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/medrec/record-api/internal/model"
	"github.com/medrec/record-api/internal/repository/repositorytest"
	"github.com/medrec/record-api/internal/service/audit"
	apperrors "github.com/medrec/record-api/pkg/errors"
	"github.com/medrec/record-api/pkg/security"
)

type fixture struct {
	svc       *Service
	users     *repositorytest.UserRepo
	hospitals *repositorytest.HospitalRepo
	records   *repositorytest.RecordRepo
}

func newFixture() *fixture {
	users := repositorytest.NewUserRepo()
	hospitals := repositorytest.NewHospitalRepo()
	records := repositorytest.NewRecordRepo()
	hasher := security.NewBcryptHasher(4)
	auditor := audit.NewService(repositorytest.NewAuditRepo())
	return &fixture{
		svc:       NewService(users, hospitals, records, hasher, auditor),
		users:     users,
		hospitals: hospitals,
		records:   records,
	}
}

func (f *fixture) seedHospital(t *testing.T, name string) int {
	t.Helper()
	h := &model.Hospital{Name: name, Address: "1 Main St"}
	require.NoError(t, f.hospitals.Create(context.Background(), h))
	return h.ID
}

func (f *fixture) seedAdmin(t *testing.T, email string, hospitalID int) *model.User {
	t.Helper()
	admin := &model.User{Email: email, PasswordHash: "x", Role: model.RoleHospitalAdmin}
	err := f.users.CreateWithAdminProfile(context.Background(), admin, &model.AdminProfile{HospitalID: hospitalID})
	require.NoError(t, err)
	return admin
}

func (f *fixture) seedPatient(t *testing.T, email, first, last string) *model.User {
	t.Helper()
	patient := &model.User{Email: email, PasswordHash: "x", Role: model.RolePatient}
	err := f.users.CreateWithPatientProfile(context.Background(), patient, &model.PatientProfile{
		FirstName: first, LastName: last,
	})
	require.NoError(t, err)
	return patient
}

func staffRequest(role model.Role, hospitalID int) *model.CreateStaffRequest {
	req := &model.CreateStaffRequest{
		Email:    "staff@example.com",
		Password: "testpass123",
		Role:     role,
	}
	switch role {
	case model.RoleDoctor:
		req.Doctor = &model.DoctorProfileInput{
			HospitalID: hospitalID, Specialty: "Cardiology", LicenseNumber: "LIC-000042",
		}
	case model.RoleHospitalAdmin:
		req.Admin = &model.AdminProfileInput{HospitalID: hospitalID, JobTitle: "Manager"}
	}
	return req
}

func TestCreateStaffDoctor(t *testing.T) {
	f := newFixture()
	hid := f.seedHospital(t, "General")
	admin := f.seedAdmin(t, "admin@example.com", hid)

	created, err := f.svc.CreateStaff(context.Background(), admin, staffRequest(model.RoleDoctor, hid))
	require.NoError(t, err)
	assert.Equal(t, model.RoleDoctor, created.Role)

	profile, err := f.users.GetDoctorProfile(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, hid, profile.HospitalID)
}

func TestCreateStaffRejectsPatientRole(t *testing.T) {
	f := newFixture()
	hid := f.seedHospital(t, "General")
	admin := f.seedAdmin(t, "admin@example.com", hid)

	_, err := f.svc.CreateStaff(context.Background(), admin, staffRequest(model.RolePatient, hid))
	assert.Equal(t, apperrors.KindValidation, apperrors.KindOf(err))
}

func TestCreateStaffRequiresMatchingProfile(t *testing.T) {
	f := newFixture()
	hid := f.seedHospital(t, "General")
	admin := f.seedAdmin(t, "admin@example.com", hid)

	req := staffRequest(model.RoleDoctor, hid)
	req.Doctor = nil
	_, err := f.svc.CreateStaff(context.Background(), admin, req)
	assert.Equal(t, apperrors.KindValidation, apperrors.KindOf(err))
}

func TestCreateStaffUnknownHospitalIs404BeforeScope(t *testing.T) {
	f := newFixture()
	hid := f.seedHospital(t, "General")
	admin := f.seedAdmin(t, "admin@example.com", hid)

	// Points at a hospital that does not exist: 404 even though it would
	// also have been out of scope.
	_, err := f.svc.CreateStaff(context.Background(), admin, staffRequest(model.RoleDoctor, 999))
	assert.Equal(t, apperrors.KindNotFound, apperrors.KindOf(err))
}

func TestCreateStaffForeignHospitalForbidden(t *testing.T) {
	f := newFixture()
	own := f.seedHospital(t, "Own")
	other := f.seedHospital(t, "Other")
	admin := f.seedAdmin(t, "admin@example.com", own)

	_, err := f.svc.CreateStaff(context.Background(), admin, staffRequest(model.RoleDoctor, other))
	assert.Equal(t, apperrors.KindForbidden, apperrors.KindOf(err))
}

func TestCreateStaffDuplicateLicense(t *testing.T) {
	f := newFixture()
	hid := f.seedHospital(t, "General")
	admin := f.seedAdmin(t, "admin@example.com", hid)

	_, err := f.svc.CreateStaff(context.Background(), admin, staffRequest(model.RoleDoctor, hid))
	require.NoError(t, err)

	dup := staffRequest(model.RoleDoctor, hid)
	dup.Email = "other@example.com"
	_, err = f.svc.CreateStaff(context.Background(), admin, dup)
	assert.Equal(t, apperrors.KindConflict, apperrors.KindOf(err))
}

func TestProfileForDispatchesByRole(t *testing.T) {
	f := newFixture()
	hid := f.seedHospital(t, "General")
	admin := f.seedAdmin(t, "admin@example.com", hid)
	patient := f.seedPatient(t, "pat@example.com", "Ada", "Lovelace")

	adminProfile, err := f.svc.ProfileFor(context.Background(), admin)
	require.NoError(t, err)
	assert.Equal(t, model.RoleHospitalAdmin, adminProfile.ProfileRole())

	patientProfile, err := f.svc.ProfileFor(context.Background(), patient)
	require.NoError(t, err)
	assert.Equal(t, model.RolePatient, patientProfile.ProfileRole())
}

func TestProfileForMissingRowIsInternal(t *testing.T) {
	f := newFixture()

	// An identity whose profile row is gone: data anomaly, not NotFound.
	orphan := &model.User{ID: uuid.New(), Email: "orphan@example.com", Role: model.RolePatient}
	_, err := f.svc.ProfileFor(context.Background(), orphan)
	assert.Equal(t, apperrors.KindInternal, apperrors.KindOf(err))
}

func TestUpdatePatientProfileWritesOwnRow(t *testing.T) {
	f := newFixture()
	patient := f.seedPatient(t, "pat@example.com", "Ada", "Lovelace")

	updated, err := f.svc.UpdatePatientProfile(context.Background(), patient, &model.PatientProfileInput{
		FirstName: "Augusta", LastName: "King", BloodType: "O+",
	})
	require.NoError(t, err)
	assert.Equal(t, patient.ID, updated.UserID)
	assert.Equal(t, "Augusta", updated.FirstName)

	stored, err := f.users.GetPatientProfile(context.Background(), patient.ID)
	require.NoError(t, err)
	assert.Equal(t, "O+", stored.BloodType)
}

func TestSearchPatientsTooShortQuery(t *testing.T) {
	f := newFixture()

	_, err := f.svc.SearchPatients(context.Background(), " a ")
	assert.Equal(t, apperrors.KindValidation, apperrors.KindOf(err))
}

func TestSearchPatientsNoMatchIs404(t *testing.T) {
	f := newFixture()
	f.seedPatient(t, "pat@example.com", "Ada", "Lovelace")

	_, err := f.svc.SearchPatients(context.Background(), "zz")
	assert.Equal(t, apperrors.KindNotFound, apperrors.KindOf(err))
}

func TestSearchPatientsMatches(t *testing.T) {
	f := newFixture()
	patient := f.seedPatient(t, "pat@example.com", "Ada", "Lovelace")

	results, err := f.svc.SearchPatients(context.Background(), "love")
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, patient.ID, results[0].UserID)
	assert.Equal(t, "Ada Lovelace", results[0].FullName)
}

func TestAnalytics(t *testing.T) {
	f := newFixture()
	hid := f.seedHospital(t, "General")
	admin := f.seedAdmin(t, "admin@example.com", hid)
	patient := f.seedPatient(t, "pat@example.com", "Ada", "Lovelace")

	_, err := f.svc.CreateStaff(context.Background(), admin, staffRequest(model.RoleDoctor, hid))
	require.NoError(t, err)

	require.NoError(t, f.records.Create(context.Background(), &model.MedicalRecord{
		PatientID: patient.ID, DoctorID: uuid.New(), HospitalID: hid, Diagnosis: "Flu",
	}))

	analytics, err := f.svc.Analytics(context.Background(), admin)
	require.NoError(t, err)
	assert.Equal(t, 1, analytics.TotalPatients)
	assert.Equal(t, 1, analytics.TotalRecords)
	assert.Equal(t, 1, analytics.HospitalStaffCount)
	assert.Equal(t, hid, analytics.HospitalID)
}
