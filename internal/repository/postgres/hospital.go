package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/medrec/record-api/internal/model"
	"github.com/medrec/record-api/internal/repository"
)

type hospitalRepository struct {
	BaseRepository
}

func NewHospitalRepository(base BaseRepository) repository.HospitalRepository {
	return &hospitalRepository{base}
}

func (r *hospitalRepository) Create(ctx context.Context, hospital *model.Hospital) error {
	query := `
		INSERT INTO hospitals (name, address, contact_info, is_active, created_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`
	hospital.IsActive = true
	hospital.CreatedAt = time.Now()

	err := r.db.QueryRowxContext(ctx, query,
		hospital.Name, hospital.Address, hospital.ContactInfo, hospital.IsActive, hospital.CreatedAt,
	).Scan(&hospital.ID)
	return translateErr(err)
}

func (r *hospitalRepository) Get(ctx context.Context, id int) (*model.Hospital, error) {
	query := `SELECT id, name, address, contact_info, is_active, created_at FROM hospitals WHERE id = $1`

	var hospital model.Hospital
	if err := r.db.GetContext(ctx, &hospital, query, id); err != nil {
		return nil, translateErr(err)
	}
	return &hospital, nil
}

func (r *hospitalRepository) List(ctx context.Context, limit, offset int) ([]*model.Hospital, error) {
	query := `
		SELECT id, name, address, contact_info, is_active, created_at
		FROM hospitals ORDER BY id LIMIT $1 OFFSET $2
	`
	var hospitals []*model.Hospital
	if err := r.db.SelectContext(ctx, &hospitals, query, limit, offset); err != nil {
		return nil, fmt.Errorf("failed to list hospitals: %w", err)
	}
	return hospitals, nil
}

func (r *hospitalRepository) Update(ctx context.Context, hospital *model.Hospital) error {
	query := `
		UPDATE hospitals SET
			name = $1,
			address = $2,
			contact_info = $3,
			is_active = $4
		WHERE id = $5
	`
	result, err := r.db.ExecContext(ctx, query,
		hospital.Name, hospital.Address, hospital.ContactInfo, hospital.IsActive, hospital.ID,
	)
	if err != nil {
		return translateErr(err)
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

func (r *hospitalRepository) Exists(ctx context.Context, id int) (bool, error) {
	var exists bool
	if err := r.db.GetContext(ctx, &exists, `SELECT EXISTS (SELECT 1 FROM hospitals WHERE id = $1)`, id); err != nil {
		return false, fmt.Errorf("failed to check hospital existence: %w", err)
	}
	return exists, nil
}
