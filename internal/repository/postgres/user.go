package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/medrec/record-api/internal/model"
	"github.com/medrec/record-api/internal/repository"
)

type userRepository struct {
	BaseRepository
}

func NewUserRepository(base BaseRepository) repository.UserRepository {
	return &userRepository{base}
}

func (r *userRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	query := `SELECT id, email, password_hash, role, created_at, updated_at FROM users WHERE id = $1`

	var user model.User
	if err := r.db.GetContext(ctx, &user, query, id); err != nil {
		return nil, translateErr(err)
	}
	return &user, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	query := `SELECT id, email, password_hash, role, created_at, updated_at FROM users WHERE email = $1`

	var user model.User
	if err := r.db.GetContext(ctx, &user, query, email); err != nil {
		return nil, translateErr(err)
	}
	return &user, nil
}

const insertUserQuery = `
	INSERT INTO users (id, email, password_hash, role, created_at, updated_at)
	VALUES ($1, $2, $3, $4, $5, $6)
`

// createWithProfile inserts the identity row and its profile row in one
// transaction. A partially created identity with no profile must never be
// observable.
func (r *userRepository) createWithProfile(ctx context.Context, user *model.User, insertProfile func(*sqlx.Tx) error) error {
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now

	err := r.WithTx(ctx, func(tx *sqlx.Tx) error {
		if _, err := tx.ExecContext(ctx, insertUserQuery,
			user.ID, user.Email, user.PasswordHash, user.Role, user.CreatedAt, user.UpdatedAt,
		); err != nil {
			return err
		}
		return insertProfile(tx)
	})
	return translateErr(err)
}

func (r *userRepository) CreateWithPatientProfile(ctx context.Context, user *model.User, profile *model.PatientProfile) error {
	return r.createWithProfile(ctx, user, func(tx *sqlx.Tx) error {
		profile.UserID = user.ID
		query := `
			INSERT INTO patient_profiles (user_id, first_name, last_name, date_of_birth, gender, blood_type, contact_number, address)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		`
		_, err := tx.ExecContext(ctx, query,
			profile.UserID, profile.FirstName, profile.LastName, profile.DateOfBirth,
			profile.Gender, profile.BloodType, profile.ContactNumber, profile.Address,
		)
		return err
	})
}

func (r *userRepository) CreateWithDoctorProfile(ctx context.Context, user *model.User, profile *model.DoctorProfile) error {
	return r.createWithProfile(ctx, user, func(tx *sqlx.Tx) error {
		profile.UserID = user.ID
		query := `
			INSERT INTO doctors (user_id, hospital_id, specialty, license_number, contact_number)
			VALUES ($1, $2, $3, $4, $5)
		`
		_, err := tx.ExecContext(ctx, query,
			profile.UserID, profile.HospitalID, profile.Specialty, profile.LicenseNumber, profile.ContactNumber,
		)
		return err
	})
}

func (r *userRepository) CreateWithAdminProfile(ctx context.Context, user *model.User, profile *model.AdminProfile) error {
	return r.createWithProfile(ctx, user, func(tx *sqlx.Tx) error {
		profile.UserID = user.ID
		query := `
			INSERT INTO hospital_admins (user_id, hospital_id, job_title)
			VALUES ($1, $2, $3)
		`
		_, err := tx.ExecContext(ctx, query, profile.UserID, profile.HospitalID, profile.JobTitle)
		return err
	})
}

func (r *userRepository) GetPatientProfile(ctx context.Context, userID uuid.UUID) (*model.PatientProfile, error) {
	query := `
		SELECT user_id, first_name, last_name, date_of_birth, gender, blood_type, contact_number, address
		FROM patient_profiles WHERE user_id = $1
	`
	var profile model.PatientProfile
	if err := r.db.GetContext(ctx, &profile, query, userID); err != nil {
		return nil, translateErr(err)
	}
	return &profile, nil
}

func (r *userRepository) GetDoctorProfile(ctx context.Context, userID uuid.UUID) (*model.DoctorProfile, error) {
	query := `
		SELECT user_id, hospital_id, specialty, license_number, contact_number
		FROM doctors WHERE user_id = $1
	`
	var profile model.DoctorProfile
	if err := r.db.GetContext(ctx, &profile, query, userID); err != nil {
		return nil, translateErr(err)
	}
	return &profile, nil
}

func (r *userRepository) GetAdminProfile(ctx context.Context, userID uuid.UUID) (*model.AdminProfile, error) {
	query := `
		SELECT user_id, hospital_id, job_title
		FROM hospital_admins WHERE user_id = $1
	`
	var profile model.AdminProfile
	if err := r.db.GetContext(ctx, &profile, query, userID); err != nil {
		return nil, translateErr(err)
	}
	return &profile, nil
}

func (r *userRepository) UpdatePatientProfile(ctx context.Context, profile *model.PatientProfile) error {
	query := `
		UPDATE patient_profiles SET
			first_name = $1,
			last_name = $2,
			date_of_birth = $3,
			gender = $4,
			blood_type = $5,
			contact_number = $6,
			address = $7
		WHERE user_id = $8
	`
	result, err := r.db.ExecContext(ctx, query,
		profile.FirstName, profile.LastName, profile.DateOfBirth, profile.Gender,
		profile.BloodType, profile.ContactNumber, profile.Address, profile.UserID,
	)
	if err != nil {
		return fmt.Errorf("failed to update patient profile: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *userRepository) SearchPatients(ctx context.Context, query string) ([]*model.PatientProfile, error) {
	term := "%" + query + "%"
	sqlQuery := `
		SELECT p.user_id, p.first_name, p.last_name, p.date_of_birth, p.gender, p.blood_type, p.contact_number, p.address
		FROM patient_profiles p
		JOIN users u ON u.id = p.user_id
		WHERE p.first_name ILIKE $1 OR p.last_name ILIKE $1 OR u.email ILIKE $1
		ORDER BY p.last_name, p.first_name
	`
	var profiles []*model.PatientProfile
	if err := r.db.SelectContext(ctx, &profiles, sqlQuery, term); err != nil {
		return nil, fmt.Errorf("failed to search patients: %w", err)
	}
	return profiles, nil
}

func (r *userRepository) CountPatients(ctx context.Context) (int, error) {
	var count int
	if err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM users WHERE role = $1`, model.RolePatient); err != nil {
		return 0, fmt.Errorf("failed to count patients: %w", err)
	}
	return count, nil
}

func (r *userRepository) CountHospitalDoctors(ctx context.Context, hospitalID int) (int, error) {
	var count int
	if err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM doctors WHERE hospital_id = $1`, hospitalID); err != nil {
		return 0, fmt.Errorf("failed to count hospital doctors: %w", err)
	}
	return count, nil
}
