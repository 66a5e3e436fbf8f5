// Package repositorytest provides in-memory repository implementations for
// service and middleware tests. They honor the same error contract as the
// postgres implementations: ErrNotFound for missing rows, ErrDuplicate for
// uniqueness violations.
package repositorytest

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/medrec/record-api/internal/model"
	"github.com/medrec/record-api/internal/repository"
)

type UserRepo struct {
	mu       sync.Mutex
	users    map[uuid.UUID]*model.User
	patients map[uuid.UUID]*model.PatientProfile
	doctors  map[uuid.UUID]*model.DoctorProfile
	admins   map[uuid.UUID]*model.AdminProfile
}

func NewUserRepo() *UserRepo {
	return &UserRepo{
		users:    make(map[uuid.UUID]*model.User),
		patients: make(map[uuid.UUID]*model.PatientProfile),
		doctors:  make(map[uuid.UUID]*model.DoctorProfile),
		admins:   make(map[uuid.UUID]*model.AdminProfile),
	}
}

var _ repository.UserRepository = (*UserRepo)(nil)

func (r *UserRepo) GetByID(_ context.Context, id uuid.UUID) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copied := *user
	return &copied, nil
}

func (r *UserRepo) GetByEmail(_ context.Context, email string) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, user := range r.users {
		if user.Email == email {
			copied := *user
			return &copied, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *UserRepo) insertUser(user *model.User) error {
	for _, existing := range r.users {
		if existing.Email == user.Email {
			return repository.ErrDuplicate
		}
	}
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now
	copied := *user
	r.users[user.ID] = &copied
	return nil
}

func (r *UserRepo) CreateWithPatientProfile(_ context.Context, user *model.User, profile *model.PatientProfile) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.insertUser(user); err != nil {
		return err
	}
	profile.UserID = user.ID
	copied := *profile
	r.patients[user.ID] = &copied
	return nil
}

func (r *UserRepo) CreateWithDoctorProfile(_ context.Context, user *model.User, profile *model.DoctorProfile) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.doctors {
		if existing.LicenseNumber == profile.LicenseNumber {
			return repository.ErrDuplicate
		}
	}
	if err := r.insertUser(user); err != nil {
		return err
	}
	profile.UserID = user.ID
	copied := *profile
	r.doctors[user.ID] = &copied
	return nil
}

func (r *UserRepo) CreateWithAdminProfile(_ context.Context, user *model.User, profile *model.AdminProfile) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.insertUser(user); err != nil {
		return err
	}
	profile.UserID = user.ID
	copied := *profile
	r.admins[user.ID] = &copied
	return nil
}

func (r *UserRepo) GetPatientProfile(_ context.Context, userID uuid.UUID) (*model.PatientProfile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	profile, ok := r.patients[userID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copied := *profile
	return &copied, nil
}

func (r *UserRepo) GetDoctorProfile(_ context.Context, userID uuid.UUID) (*model.DoctorProfile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	profile, ok := r.doctors[userID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copied := *profile
	return &copied, nil
}

func (r *UserRepo) GetAdminProfile(_ context.Context, userID uuid.UUID) (*model.AdminProfile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	profile, ok := r.admins[userID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copied := *profile
	return &copied, nil
}

func (r *UserRepo) UpdatePatientProfile(_ context.Context, profile *model.PatientProfile) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.patients[profile.UserID]; !ok {
		return repository.ErrNotFound
	}
	copied := *profile
	r.patients[profile.UserID] = &copied
	return nil
}

func (r *UserRepo) SearchPatients(_ context.Context, query string) ([]*model.PatientProfile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	term := strings.ToLower(query)
	var results []*model.PatientProfile
	for _, profile := range r.patients {
		email := ""
		if user, ok := r.users[profile.UserID]; ok {
			email = user.Email
		}
		if strings.Contains(strings.ToLower(profile.FirstName), term) ||
			strings.Contains(strings.ToLower(profile.LastName), term) ||
			strings.Contains(strings.ToLower(email), term) {
			copied := *profile
			results = append(results, &copied)
		}
	}
	return results, nil
}

func (r *UserRepo) CountPatients(_ context.Context) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.patients), nil
}

func (r *UserRepo) CountHospitalDoctors(_ context.Context, hospitalID int) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	count := 0
	for _, profile := range r.doctors {
		if profile.HospitalID == hospitalID {
			count++
		}
	}
	return count, nil
}

// Delete removes an identity, used to exercise stale-token rejection.
func (r *UserRepo) Delete(id uuid.UUID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.users, id)
	delete(r.patients, id)
	delete(r.doctors, id)
	delete(r.admins, id)
}

type HospitalRepo struct {
	mu        sync.Mutex
	nextID    int
	hospitals map[int]*model.Hospital
}

func NewHospitalRepo() *HospitalRepo {
	return &HospitalRepo{nextID: 1, hospitals: make(map[int]*model.Hospital)}
}

var _ repository.HospitalRepository = (*HospitalRepo)(nil)

func (r *HospitalRepo) Create(_ context.Context, hospital *model.Hospital) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.hospitals {
		if existing.Name == hospital.Name {
			return repository.ErrDuplicate
		}
	}
	hospital.ID = r.nextID
	r.nextID++
	hospital.IsActive = true
	hospital.CreatedAt = time.Now()
	copied := *hospital
	r.hospitals[hospital.ID] = &copied
	return nil
}

func (r *HospitalRepo) Get(_ context.Context, id int) (*model.Hospital, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	hospital, ok := r.hospitals[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copied := *hospital
	return &copied, nil
}

func (r *HospitalRepo) List(_ context.Context, limit, offset int) ([]*model.Hospital, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var all []*model.Hospital
	for id := 1; id < r.nextID; id++ {
		if hospital, ok := r.hospitals[id]; ok {
			copied := *hospital
			all = append(all, &copied)
		}
	}
	if offset >= len(all) {
		return nil, nil
	}
	all = all[offset:]
	if limit < len(all) {
		all = all[:limit]
	}
	return all, nil
}

func (r *HospitalRepo) Update(_ context.Context, hospital *model.Hospital) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.hospitals[hospital.ID]; !ok {
		return repository.ErrNotFound
	}
	for id, existing := range r.hospitals {
		if id != hospital.ID && existing.Name == hospital.Name {
			return repository.ErrDuplicate
		}
	}
	copied := *hospital
	r.hospitals[hospital.ID] = &copied
	return nil
}

func (r *HospitalRepo) Exists(_ context.Context, id int) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.hospitals[id]
	return ok, nil
}

type RecordRepo struct {
	mu      sync.Mutex
	nextID  int
	records map[int]*model.MedicalRecord

	nextTestID int
	labTests   map[int]*model.LabTest
}

func NewRecordRepo() *RecordRepo {
	return &RecordRepo{
		nextID:     1,
		records:    make(map[int]*model.MedicalRecord),
		nextTestID: 1,
		labTests:   make(map[int]*model.LabTest),
	}
}

var _ repository.RecordRepository = (*RecordRepo)(nil)

func (r *RecordRepo) Create(_ context.Context, record *model.MedicalRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	record.ID = r.nextID
	r.nextID++
	if record.DateOfVisit.IsZero() {
		record.DateOfVisit = time.Now()
	}
	copied := *record
	r.records[record.ID] = &copied
	return nil
}

func (r *RecordRepo) Get(_ context.Context, id int) (*model.MedicalRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	record, ok := r.records[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copied := *record
	return &copied, nil
}

func (r *RecordRepo) ListForPatient(_ context.Context, patientID uuid.UUID, limit, offset int) ([]*model.MedicalRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var matched []*model.MedicalRecord
	for id := 1; id < r.nextID; id++ {
		record, ok := r.records[id]
		if !ok || record.PatientID != patientID {
			continue
		}
		copied := *record
		matched = append(matched, &copied)
	}
	if offset >= len(matched) {
		return nil, nil
	}
	matched = matched[offset:]
	if limit < len(matched) {
		matched = matched[:limit]
	}
	return matched, nil
}

func (r *RecordRepo) Count(_ context.Context) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.records), nil
}

func (r *RecordRepo) CreateLabTest(_ context.Context, test *model.LabTest) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	test.ID = r.nextTestID
	r.nextTestID++
	if test.TestDate.IsZero() {
		test.TestDate = time.Now()
	}
	copied := *test
	r.labTests[test.ID] = &copied
	return nil
}

func (r *RecordRepo) ListLabTestsForPatient(_ context.Context, patientID uuid.UUID) ([]*model.LabTest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var matched []*model.LabTest
	for id := 1; id < r.nextTestID; id++ {
		test, ok := r.labTests[id]
		if !ok || test.PatientID != patientID {
			continue
		}
		copied := *test
		matched = append(matched, &copied)
	}
	return matched, nil
}

type AuditRepo struct {
	mu     sync.Mutex
	events []*model.AccessEvent
}

func NewAuditRepo() *AuditRepo {
	return &AuditRepo{}
}

var _ repository.AuditRepository = (*AuditRepo)(nil)

func (r *AuditRepo) Insert(_ context.Context, event *model.AccessEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := *event
	r.events = append(r.events, &copied)
	return nil
}

// Events returns a snapshot of the recorded events.
func (r *AuditRepo) Events() []*model.AccessEvent {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*model.AccessEvent, len(r.events))
	copy(out, r.events)
	return out
}
