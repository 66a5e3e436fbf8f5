package hospital

import (
	"context"
	"errors"
	"fmt"

	"github.com/medrec/record-api/internal/model"
	"github.com/medrec/record-api/internal/repository"
	"github.com/medrec/record-api/internal/service/audit"
	apperrors "github.com/medrec/record-api/pkg/errors"
)

const defaultListLimit = 100

type Service struct {
	hospitals repository.HospitalRepository
	users     repository.UserRepository
	auditor   *audit.Service
}

func NewService(hospitals repository.HospitalRepository, users repository.UserRepository, auditor *audit.Service) *Service {
	return &Service{hospitals: hospitals, users: users, auditor: auditor}
}

func (s *Service) Create(ctx context.Context, admin *model.User, req *model.CreateHospitalRequest) (*model.Hospital, error) {
	hospital := &model.Hospital{
		Name:        req.Name,
		Address:     req.Address,
		ContactInfo: req.ContactInfo,
	}

	if err := s.hospitals.Create(ctx, hospital); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, apperrors.Conflict("hospital name already registered")
		}
		return nil, apperrors.Internal(err)
	}

	s.auditor.Record(ctx, admin.ID, "create_hospital", "hospital", fmt.Sprint(hospital.ID), model.AuditOutcomeAllowed)
	return hospital, nil
}

func (s *Service) Get(ctx context.Context, id int) (*model.Hospital, error) {
	hospital, err := s.hospitals.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NotFound("hospital")
		}
		return nil, apperrors.Internal(err)
	}
	return hospital, nil
}

func (s *Service) List(ctx context.Context, limit, offset int) ([]*model.Hospital, error) {
	if limit <= 0 || limit > defaultListLimit {
		limit = defaultListLimit
	}
	if offset < 0 {
		offset = 0
	}

	hospitals, err := s.hospitals.List(ctx, limit, offset)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	return hospitals, nil
}

// Update applies a partial update to a hospital. Existence is checked first
// (404), then the scope rule: an admin may only modify their own hospital.
func (s *Service) Update(ctx context.Context, admin *model.User, hospitalID int, req *model.UpdateHospitalRequest) (*model.Hospital, error) {
	hospital, err := s.hospitals.Get(ctx, hospitalID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NotFound("hospital")
		}
		return nil, apperrors.Internal(err)
	}

	adminProfile, err := s.users.GetAdminProfile(ctx, admin.ID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.Internal(fmt.Errorf("admin %s has no profile row", admin.ID))
		}
		return nil, apperrors.Internal(err)
	}
	if adminProfile.HospitalID != hospitalID {
		s.auditor.Record(ctx, admin.ID, "update_hospital", "hospital", fmt.Sprint(hospitalID), model.AuditOutcomeDenied)
		return nil, apperrors.Forbidden("cannot update another hospital's data")
	}

	if req.Name != nil {
		hospital.Name = *req.Name
	}
	if req.Address != nil {
		hospital.Address = *req.Address
	}
	if req.ContactInfo != nil {
		hospital.ContactInfo = *req.ContactInfo
	}
	if req.IsActive != nil {
		hospital.IsActive = *req.IsActive
	}

	if err := s.hospitals.Update(ctx, hospital); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, apperrors.Conflict("hospital name already registered")
		}
		return nil, apperrors.Internal(err)
	}

	s.auditor.Record(ctx, admin.ID, "update_hospital", "hospital", fmt.Sprint(hospitalID), model.AuditOutcomeAllowed)
	return hospital, nil
}
