package hospital

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/medrec/record-api/internal/model"
	"github.com/medrec/record-api/internal/repository/repositorytest"
	"github.com/medrec/record-api/internal/service/audit"
	apperrors "github.com/medrec/record-api/pkg/errors"
)

type fixture struct {
	svc       *Service
	hospitals *repositorytest.HospitalRepo
	users     *repositorytest.UserRepo
}

func newFixture() *fixture {
	hospitals := repositorytest.NewHospitalRepo()
	users := repositorytest.NewUserRepo()
	auditor := audit.NewService(repositorytest.NewAuditRepo())
	return &fixture{
		svc:       NewService(hospitals, users, auditor),
		hospitals: hospitals,
		users:     users,
	}
}

func (f *fixture) seedAdmin(t *testing.T, email string, hospitalID int) *model.User {
	t.Helper()
	admin := &model.User{Email: email, PasswordHash: "x", Role: model.RoleHospitalAdmin}
	err := f.users.CreateWithAdminProfile(context.Background(), admin, &model.AdminProfile{HospitalID: hospitalID})
	require.NoError(t, err)
	return admin
}

func TestCreateHospital(t *testing.T) {
	f := newFixture()
	admin := f.seedAdmin(t, "admin@example.com", 1)

	created, err := f.svc.Create(context.Background(), admin, &model.CreateHospitalRequest{
		Name: "General", Address: "1 Main St",
	})
	require.NoError(t, err)
	assert.NotZero(t, created.ID)
	assert.True(t, created.IsActive)
}

func TestCreateHospitalDuplicateName(t *testing.T) {
	f := newFixture()
	admin := f.seedAdmin(t, "admin@example.com", 1)

	_, err := f.svc.Create(context.Background(), admin, &model.CreateHospitalRequest{Name: "General", Address: "1 Main St"})
	require.NoError(t, err)

	_, err = f.svc.Create(context.Background(), admin, &model.CreateHospitalRequest{Name: "General", Address: "2 Oak Ave"})
	assert.Equal(t, apperrors.KindConflict, apperrors.KindOf(err))
}

func TestGetUnknownHospital(t *testing.T) {
	f := newFixture()

	_, err := f.svc.Get(context.Background(), 42)
	assert.Equal(t, apperrors.KindNotFound, apperrors.KindOf(err))
}

func TestListClampsLimit(t *testing.T) {
	f := newFixture()
	admin := f.seedAdmin(t, "admin@example.com", 1)

	for _, name := range []string{"A", "B", "C"} {
		_, err := f.svc.Create(context.Background(), admin, &model.CreateHospitalRequest{Name: name, Address: "x"})
		require.NoError(t, err)
	}

	hospitals, err := f.svc.List(context.Background(), -5, -1)
	require.NoError(t, err)
	assert.Len(t, hospitals, 3)
}

func TestUpdateUnknownHospitalIs404BeforeScope(t *testing.T) {
	f := newFixture()
	admin := f.seedAdmin(t, "admin@example.com", 1)

	name := "Renamed"
	_, err := f.svc.Update(context.Background(), admin, 42, &model.UpdateHospitalRequest{Name: &name})
	assert.Equal(t, apperrors.KindNotFound, apperrors.KindOf(err))
}

func TestUpdateForeignHospitalForbidden(t *testing.T) {
	f := newFixture()

	own := &model.Hospital{Name: "Own", Address: "x"}
	require.NoError(t, f.hospitals.Create(context.Background(), own))
	other := &model.Hospital{Name: "Other", Address: "y"}
	require.NoError(t, f.hospitals.Create(context.Background(), other))

	admin := f.seedAdmin(t, "admin@example.com", own.ID)

	name := "Renamed"
	_, err := f.svc.Update(context.Background(), admin, other.ID, &model.UpdateHospitalRequest{Name: &name})
	assert.Equal(t, apperrors.KindForbidden, apperrors.KindOf(err))
}

func TestUpdatePartialFields(t *testing.T) {
	f := newFixture()

	own := &model.Hospital{Name: "Own", Address: "1 Main St", ContactInfo: "555-0100"}
	require.NoError(t, f.hospitals.Create(context.Background(), own))
	admin := f.seedAdmin(t, "admin@example.com", own.ID)

	inactive := false
	updated, err := f.svc.Update(context.Background(), admin, own.ID, &model.UpdateHospitalRequest{
		IsActive: &inactive,
	})
	require.NoError(t, err)

	// Untouched fields survive a partial update.
	assert.Equal(t, "Own", updated.Name)
	assert.Equal(t, "1 Main St", updated.Address)
	assert.False(t, updated.IsActive)
}
