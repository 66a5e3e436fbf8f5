package user

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/medrec/record-api/internal/model"
	"github.com/medrec/record-api/internal/repository"
	"github.com/medrec/record-api/internal/service/audit"
	apperrors "github.com/medrec/record-api/pkg/errors"
	"github.com/medrec/record-api/pkg/security"
)

// Service covers identity administration and profile access: staff account
// creation, profile dispatch, patient self-service and admin analytics.
type Service struct {
	users     repository.UserRepository
	hospitals repository.HospitalRepository
	records   repository.RecordRepository
	hasher    security.Hasher
	auditor   *audit.Service
}

func NewService(users repository.UserRepository, hospitals repository.HospitalRepository,
	records repository.RecordRepository, hasher security.Hasher, auditor *audit.Service) *Service {
	return &Service{users: users, hospitals: hospitals, records: records, hasher: hasher, auditor: auditor}
}

// CreateStaff creates a Doctor or Hospital Admin account. The caller must be
// a Hospital Admin; the target hospital must exist and be the caller's own.
func (s *Service) CreateStaff(ctx context.Context, admin *model.User, req *model.CreateStaffRequest) (*model.User, error) {
	var targetHospitalID int
	switch req.Role {
	case model.RolePatient:
		return nil, apperrors.Validation("use /auth/register for patient sign-up")
	case model.RoleDoctor:
		if req.Doctor == nil {
			return nil, apperrors.Validation("doctor_profile is required for the 'Doctor' role")
		}
		targetHospitalID = req.Doctor.HospitalID
	case model.RoleHospitalAdmin:
		if req.Admin == nil {
			return nil, apperrors.Validation("admin_profile is required for the 'Hospital Admin' role")
		}
		targetHospitalID = req.Admin.HospitalID
	default:
		return nil, apperrors.Validation(fmt.Sprintf("invalid role %q", req.Role))
	}

	adminProfile, err := s.users.GetAdminProfile(ctx, admin.ID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.Internal(fmt.Errorf("admin %s has no profile row", admin.ID))
		}
		return nil, apperrors.Internal(err)
	}

	// Existence before scope: an admin pointing at a nonexistent hospital
	// gets 404 regardless of whose hospital it would have been.
	exists, err := s.hospitals.Exists(ctx, targetHospitalID)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	if !exists {
		return nil, apperrors.NotFound("hospital")
	}

	if targetHospitalID != adminProfile.HospitalID {
		s.auditor.Record(ctx, admin.ID, "create_staff", "hospital", fmt.Sprint(targetHospitalID), model.AuditOutcomeDenied)
		return nil, apperrors.Forbidden("cannot create staff for another hospital")
	}

	digest, err := s.hasher.Hash(req.Password)
	if err != nil {
		if errors.Is(err, security.ErrPasswordTooShort) {
			return nil, apperrors.Validation("password is too short")
		}
		return nil, apperrors.Internal(err)
	}

	user := &model.User{
		Email:        req.Email,
		PasswordHash: digest,
		Role:         req.Role,
	}

	switch req.Role {
	case model.RoleDoctor:
		err = s.users.CreateWithDoctorProfile(ctx, user, &model.DoctorProfile{
			HospitalID:    req.Doctor.HospitalID,
			Specialty:     req.Doctor.Specialty,
			LicenseNumber: req.Doctor.LicenseNumber,
			ContactNumber: req.Doctor.ContactNumber,
		})
	case model.RoleHospitalAdmin:
		err = s.users.CreateWithAdminProfile(ctx, user, &model.AdminProfile{
			HospitalID: req.Admin.HospitalID,
			JobTitle:   req.Admin.JobTitle,
		})
	}
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, apperrors.Conflict("email or license number already registered")
		}
		return nil, apperrors.Internal(err)
	}

	s.auditor.Record(ctx, admin.ID, "create_staff", "user", user.ID.String(), model.AuditOutcomeAllowed)
	return user, nil
}

// ProfileFor dispatches an identity to its one-of-three profile shape. A
// missing profile row despite an existing identity is a data-integrity
// anomaly and surfaces as an internal error, not a NotFound.
func (s *Service) ProfileFor(ctx context.Context, user *model.User) (model.Profile, error) {
	var (
		profile model.Profile
		err     error
	)
	switch user.Role {
	case model.RolePatient:
		var p *model.PatientProfile
		if p, err = s.users.GetPatientProfile(ctx, user.ID); err == nil {
			profile = *p
		}
	case model.RoleDoctor:
		var p *model.DoctorProfile
		if p, err = s.users.GetDoctorProfile(ctx, user.ID); err == nil {
			profile = *p
		}
	case model.RoleHospitalAdmin:
		var p *model.AdminProfile
		if p, err = s.users.GetAdminProfile(ctx, user.ID); err == nil {
			profile = *p
		}
	default:
		return nil, apperrors.Internal(fmt.Errorf("identity %s has unknown role %q", user.ID, user.Role))
	}

	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.Internal(fmt.Errorf("identity %s (%s) has no profile row", user.ID, user.Role))
		}
		return nil, apperrors.Internal(err)
	}
	return profile, nil
}

// UpdatePatientProfile writes only the caller's own row; the route is gated
// to the Patient role.
func (s *Service) UpdatePatientProfile(ctx context.Context, user *model.User, req *model.PatientProfileInput) (*model.PatientProfile, error) {
	profile := &model.PatientProfile{
		UserID:        user.ID,
		FirstName:     req.FirstName,
		LastName:      req.LastName,
		DateOfBirth:   req.DateOfBirth,
		Gender:        req.Gender,
		BloodType:     req.BloodType,
		ContactNumber: req.ContactNumber,
		Address:       req.Address,
	}

	if err := s.users.UpdatePatientProfile(ctx, profile); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NotFound("patient profile")
		}
		return nil, apperrors.Internal(err)
	}
	return profile, nil
}

// SearchPatients matches patient names and emails, doctor-only at the route.
func (s *Service) SearchPatients(ctx context.Context, query string) ([]*model.PatientSearchResult, error) {
	if len(strings.TrimSpace(query)) < 2 {
		return nil, apperrors.Validation("search query must be at least 2 characters")
	}

	profiles, err := s.users.SearchPatients(ctx, strings.TrimSpace(query))
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	if len(profiles) == 0 {
		return nil, apperrors.NotFound("matching patient")
	}

	results := make([]*model.PatientSearchResult, 0, len(profiles))
	for _, p := range profiles {
		results = append(results, &model.PatientSearchResult{
			UserID:        p.UserID,
			FullName:      p.FirstName + " " + p.LastName,
			DateOfBirth:   p.DateOfBirth,
			ContactNumber: p.ContactNumber,
		})
	}
	return results, nil
}

// Analytics reports platform totals plus staffing for the admin's hospital.
func (s *Service) Analytics(ctx context.Context, admin *model.User) (*model.AnalyticsResponse, error) {
	adminProfile, err := s.users.GetAdminProfile(ctx, admin.ID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.Internal(fmt.Errorf("admin %s has no profile row", admin.ID))
		}
		return nil, apperrors.Internal(err)
	}

	totalPatients, err := s.users.CountPatients(ctx)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	totalRecords, err := s.records.Count(ctx)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	staffCount, err := s.users.CountHospitalDoctors(ctx, adminProfile.HospitalID)
	if err != nil {
		return nil, apperrors.Internal(err)
	}

	return &model.AnalyticsResponse{
		TotalPatients:      totalPatients,
		TotalRecords:       totalRecords,
		HospitalStaffCount: staffCount,
		HospitalID:         adminProfile.HospitalID,
	}, nil
}
