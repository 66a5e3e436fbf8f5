package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/medrec/record-api/internal/model"
)

// ErrInvalidToken is the single failure verification reports. Expired,
// tampered and malformed tokens are deliberately indistinguishable.
var ErrInvalidToken = errors.New("invalid token")

const DefaultTTL = 24 * time.Hour

// Claims is what a verified token proves: who the subject is and which role
// it held when the token was issued. The role is a snapshot; a role change
// after issuance is not reflected until the subject re-authenticates. There
// is no refresh or revocation mechanism.
type Claims struct {
	Subject uuid.UUID
	Role    model.Role
}

type jwtClaims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// Service issues and verifies signed, time-limited identity tokens. The
// signing secret and default TTL are fixed at construction.
type Service struct {
	secret     []byte
	defaultTTL time.Duration
}

func NewService(secret string, defaultTTL time.Duration) *Service {
	if defaultTTL <= 0 {
		defaultTTL = DefaultTTL
	}
	return &Service{secret: []byte(secret), defaultTTL: defaultTTL}
}

// Issue signs a token for subject with the given role. ttl <= 0 uses the
// service default.
func (s *Service) Issue(subject uuid.UUID, role model.Role, ttl time.Duration) (string, error) {
	if ttl <= 0 {
		ttl = s.defaultTTL
	}
	now := time.Now()

	claims := jwtClaims{
		Role: role.String(),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

// Verify fails closed: any signature mismatch, malformed payload, unexpected
// signing method, missing claim or passed expiry yields ErrInvalidToken.
func (s *Service) Verify(tokenString string) (*Claims, error) {
	var claims jwtClaims
	parsed, err := jwt.ParseWithClaims(tokenString, &claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
	if err != nil || !parsed.Valid {
		return nil, ErrInvalidToken
	}

	subject, err := uuid.Parse(claims.Subject)
	if err != nil {
		return nil, ErrInvalidToken
	}

	role := model.Role(claims.Role)
	if !role.Valid() {
		return nil, ErrInvalidToken
	}

	return &Claims{Subject: subject, Role: role}, nil
}
