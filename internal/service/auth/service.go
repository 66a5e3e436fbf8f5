package auth

import (
	"context"
	"errors"

	"github.com/medrec/record-api/internal/model"
	"github.com/medrec/record-api/internal/repository"
	"github.com/medrec/record-api/internal/service/audit"
	apperrors "github.com/medrec/record-api/pkg/errors"
	"github.com/medrec/record-api/pkg/security"
	"github.com/medrec/record-api/pkg/token"
)

var errBadCredentials = errors.New("email or password mismatch")

// Service handles the public authentication boundary: patient
// self-registration and credential login. Staff accounts are created through
// the user service by an authenticated hospital admin.
type Service struct {
	users   repository.UserRepository
	hasher  security.Hasher
	tokens  *token.Service
	auditor *audit.Service
}

func NewService(users repository.UserRepository, hasher security.Hasher, tokens *token.Service, auditor *audit.Service) *Service {
	return &Service{users: users, hasher: hasher, tokens: tokens, auditor: auditor}
}

// Register creates a Patient identity and its profile atomically. Only the
// Patient role may pass through this open endpoint.
func (s *Service) Register(ctx context.Context, req *model.RegisterRequest) (*model.User, error) {
	if req.Role != model.RolePatient {
		return nil, apperrors.Validation("public registration is only allowed for the 'Patient' role")
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
		Role:         model.RolePatient,
	}
	profile := &model.PatientProfile{
		FirstName:     req.Profile.FirstName,
		LastName:      req.Profile.LastName,
		DateOfBirth:   req.Profile.DateOfBirth,
		Gender:        req.Profile.Gender,
		BloodType:     req.Profile.BloodType,
		ContactNumber: req.Profile.ContactNumber,
		Address:       req.Profile.Address,
	}

	if err := s.users.CreateWithPatientProfile(ctx, user, profile); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, apperrors.Conflict("email already registered")
		}
		return nil, apperrors.Internal(err)
	}

	s.auditor.Record(ctx, user.ID, "register", "user", user.ID.String(), model.AuditOutcomeAllowed)
	return user, nil
}

// Login verifies credentials and issues a token carrying the identity's id
// and a snapshot of its role. A wrong email and a wrong password are
// indistinguishable to the caller.
func (s *Service) Login(ctx context.Context, email, password string) (*model.TokenResponse, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, apperrors.Unauthenticated(errBadCredentials)
	}

	if !s.hasher.Verify(password, user.PasswordHash) {
		s.auditor.Record(ctx, user.ID, "login", "user", user.ID.String(), model.AuditOutcomeDenied)
		return nil, apperrors.Unauthenticated(errBadCredentials)
	}

	accessToken, err := s.tokens.Issue(user.ID, user.Role, 0)
	if err != nil {
		return nil, apperrors.Internal(err)
	}

	s.auditor.Record(ctx, user.ID, "login", "user", user.ID.String(), model.AuditOutcomeAllowed)
	return &model.TokenResponse{AccessToken: accessToken, TokenType: "bearer"}, nil
}
