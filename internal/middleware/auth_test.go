package middleware_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/medrec/record-api/internal/middleware"
	"github.com/medrec/record-api/internal/model"
	"github.com/medrec/record-api/internal/repository/repositorytest"
	"github.com/medrec/record-api/pkg/token"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func setupAuth(t *testing.T) (*gin.Engine, *token.Service, *repositorytest.UserRepo) {
	t.Helper()

	users := repositorytest.NewUserRepo()
	tokens := token.NewService("test-secret", time.Hour)
	auth := middleware.NewAuthMiddleware(tokens, users, nil)

	r := gin.New()
	protected := r.Group("/", auth.Authenticate())
	protected.GET("/whoami", func(c *gin.Context) {
		user, ok := middleware.CurrentUser(c)
		require.True(t, ok)
		c.JSON(http.StatusOK, gin.H{"email": user.Email})
	})
	protected.GET("/doctors-only", auth.RequireRoles(model.RoleDoctor), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	return r, tokens, users
}

func seedPatient(t *testing.T, users *repositorytest.UserRepo, email string) *model.User {
	t.Helper()
	user := &model.User{Email: email, PasswordHash: "x", Role: model.RolePatient}
	err := users.CreateWithPatientProfile(context.Background(), user, &model.PatientProfile{
		FirstName: "Test", LastName: "Patient",
	})
	require.NoError(t, err)
	return user
}

func doRequest(r *gin.Engine, path, authorization string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthenticateValidToken(t *testing.T) {
	r, tokens, users := setupAuth(t)
	user := seedPatient(t, users, "p1@example.com")

	signed, err := tokens.Issue(user.ID, user.Role, time.Hour)
	require.NoError(t, err)

	w := doRequest(r, "/whoami", "Bearer "+signed)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "p1@example.com")
}

func TestAuthenticateMissingHeader(t *testing.T) {
	r, _, _ := setupAuth(t)

	w := doRequest(r, "/whoami", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Bearer", w.Header().Get("WWW-Authenticate"))
	assert.Contains(t, w.Body.String(), "could not validate credentials")
}

func TestAuthenticateMalformedHeader(t *testing.T) {
	r, tokens, users := setupAuth(t)
	user := seedPatient(t, users, "p2@example.com")

	signed, err := tokens.Issue(user.ID, user.Role, time.Hour)
	require.NoError(t, err)

	w := doRequest(r, "/whoami", "Token "+signed)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthenticateTamperedToken(t *testing.T) {
	r, tokens, users := setupAuth(t)
	user := seedPatient(t, users, "p3@example.com")

	signed, err := tokens.Issue(user.ID, user.Role, time.Hour)
	require.NoError(t, err)
	raw := []byte(signed)
	raw[len(raw)-1] ^= 0x01

	w := doRequest(r, "/whoami", "Bearer "+string(raw))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "could not validate credentials")
}

func TestAuthenticateDeletedIdentity(t *testing.T) {
	r, tokens, users := setupAuth(t)
	user := seedPatient(t, users, "p4@example.com")

	signed, err := tokens.Issue(user.ID, user.Role, time.Hour)
	require.NoError(t, err)

	// The signature stays valid, but the identity no longer resolves. This
	// must read as 401, never 404.
	users.Delete(user.ID)

	w := doRequest(r, "/whoami", "Bearer "+signed)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "could not validate credentials")
}

func TestRequireRolesDeniesOutsiders(t *testing.T) {
	r, tokens, users := setupAuth(t)
	patient := seedPatient(t, users, "p5@example.com")

	signed, err := tokens.Issue(patient.ID, patient.Role, time.Hour)
	require.NoError(t, err)

	w := doRequest(r, "/doctors-only", "Bearer "+signed)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "'Patient' is not authorized")
}

func TestRequireRolesAdmitsAllowedRole(t *testing.T) {
	r, tokens, users := setupAuth(t)

	doctor := &model.User{Email: "d1@example.com", PasswordHash: "x", Role: model.RoleDoctor}
	err := users.CreateWithDoctorProfile(context.Background(), doctor, &model.DoctorProfile{
		HospitalID: 1, Specialty: "Cardiology", LicenseNumber: "LIC-000001",
	})
	require.NoError(t, err)

	signed, err := tokens.Issue(doctor.ID, doctor.Role, time.Hour)
	require.NoError(t, err)

	w := doRequest(r, "/doctors-only", "Bearer "+signed)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRoleSnapshotNotTrusted(t *testing.T) {
	r, tokens, users := setupAuth(t)
	patient := seedPatient(t, users, "p6@example.com")

	// A token claiming Doctor for a Patient identity: the middleware
	// re-resolves the identity, so the stored role wins.
	signed, err := tokens.Issue(patient.ID, model.RoleDoctor, time.Hour)
	require.NoError(t, err)

	w := doRequest(r, "/doctors-only", "Bearer "+signed)
	assert.Equal(t, http.StatusForbidden, w.Code)
}
