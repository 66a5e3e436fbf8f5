package main

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/medrec/record-api/internal/config"
	"github.com/medrec/record-api/internal/model"
	"github.com/medrec/record-api/internal/repository"
	"github.com/medrec/record-api/internal/repository/postgres"
	"github.com/medrec/record-api/pkg/security"
)

// Seed sizes kept small; this is a development fixture, not a load test.
const (
	numHospitals      = 3
	numDoctors        = 6
	numPatients       = 12
	maxRecordsPerEach = 3

	// One shared password so every seeded account is usable from the API.
	testPassword = "testpass"
)

var specialties = []string{"Cardiology", "Neurology", "Pediatrics", "Oncology", "Orthopedics", "General Practice"}
var bloodTypes = []string{"A+", "A-", "B+", "B-", "AB+", "AB-", "O+", "O-"}
var firstNames = []string{"Alice", "Ben", "Carla", "David", "Elena", "Frank", "Grace", "Hassan", "Irene", "Jonas", "Kavya", "Liam"}
var lastNames = []string{"Nguyen", "Osei", "Petrov", "Quinn", "Rossi", "Sato", "Tanaka", "Umar", "Vargas", "Weber", "Xu", "Young"}

func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	db, err := postgres.NewDB(cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()

	base := postgres.NewBaseRepository(db)
	users := postgres.NewUserRepository(base)
	hospitals := postgres.NewHospitalRepository(base)
	records := postgres.NewRecordRepository(base)

	ctx := context.Background()

	if n, err := users.CountPatients(ctx); err == nil && n > 0 {
		log.Info().Int("patients", n).Msg("database already seeded, skipping")
		return
	}

	hasher := security.NewBcryptHasher(cfg.Security.BcryptCost)
	passwordHash, err := hasher.Hash(testPassword)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to hash seed password")
	}

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))

	hospitalIDs := make([]int, 0, numHospitals)
	for i := 0; i < numHospitals; i++ {
		h := &model.Hospital{
			Name:        fmt.Sprintf("Seed General Hospital %d", i+1),
			Address:     fmt.Sprintf("%d Main Street", 100+i),
			ContactInfo: fmt.Sprintf("555-010%d", i),
			IsActive:    true,
		}
		if err := hospitals.Create(ctx, h); err != nil {
			log.Fatal().Err(err).Msg("failed to create hospital")
		}
		hospitalIDs = append(hospitalIDs, h.ID)
	}
	log.Info().Int("count", numHospitals).Msg("hospitals created")

	// One admin per hospital.
	for i, hid := range hospitalIDs {
		admin := newUser(fmt.Sprintf("admin%d@example.com", i+1), passwordHash, model.RoleHospitalAdmin)
		profile := &model.AdminProfile{HospitalID: hid, JobTitle: "Manager"}
		if err := users.CreateWithAdminProfile(ctx, admin, profile); err != nil {
			log.Fatal().Err(err).Msg("failed to create admin")
		}
	}
	log.Info().Int("count", len(hospitalIDs)).Msg("admins created")

	doctorIDs := make([]uuid.UUID, 0, numDoctors)
	doctorHospitals := make(map[uuid.UUID]int, numDoctors)
	for i := 0; i < numDoctors; i++ {
		hid := hospitalIDs[rng.Intn(len(hospitalIDs))]
		doctor := newUser(fmt.Sprintf("doctor%d@example.com", i+1), passwordHash, model.RoleDoctor)
		profile := &model.DoctorProfile{
			HospitalID:    hid,
			Specialty:     specialties[rng.Intn(len(specialties))],
			LicenseNumber: fmt.Sprintf("LIC-%06d", 100000+i),
			ContactNumber: fmt.Sprintf("555-020%d", i),
		}
		if err := users.CreateWithDoctorProfile(ctx, doctor, profile); err != nil {
			log.Fatal().Err(err).Msg("failed to create doctor")
		}
		doctorIDs = append(doctorIDs, doctor.ID)
		doctorHospitals[doctor.ID] = hid
	}
	log.Info().Int("count", numDoctors).Msg("doctors created")

	patientIDs := make([]uuid.UUID, 0, numPatients)
	for i := 0; i < numPatients; i++ {
		patient := newUser(fmt.Sprintf("patient%d@example.com", i+1), passwordHash, model.RolePatient)
		dob := time.Date(1950+rng.Intn(50), time.Month(1+rng.Intn(12)), 1+rng.Intn(28), 0, 0, 0, 0, time.UTC)
		profile := &model.PatientProfile{
			FirstName:     firstNames[i%len(firstNames)],
			LastName:      lastNames[i%len(lastNames)],
			DateOfBirth:   &dob,
			Gender:        []string{"Male", "Female", "Other"}[rng.Intn(3)],
			BloodType:     bloodTypes[rng.Intn(len(bloodTypes))],
			ContactNumber: fmt.Sprintf("555-030%d", i),
			Address:       fmt.Sprintf("%d Oak Avenue", 200+i),
		}
		if err := users.CreateWithPatientProfile(ctx, patient, profile); err != nil {
			log.Fatal().Err(err).Msg("failed to create patient")
		}
		patientIDs = append(patientIDs, patient.ID)
	}
	log.Info().Int("count", numPatients).Msg("patients created")

	recordCount := 0
	for _, pid := range patientIDs {
		for j := 0; j < 1+rng.Intn(maxRecordsPerEach); j++ {
			did := doctorIDs[rng.Intn(len(doctorIDs))]
			if err := seedRecordWithLab(ctx, records, rng, pid, did, doctorHospitals[did]); err != nil {
				log.Fatal().Err(err).Msg("failed to create medical record")
			}
			recordCount++
		}
	}
	log.Info().Int("count", recordCount).Msg("medical records created")

	log.Info().Str("password", testPassword).Msg("seeding complete, all accounts share the test password")
}

func newUser(email, passwordHash string, role model.Role) *model.User {
	return &model.User{
		Email:        email,
		PasswordHash: passwordHash,
		Role:         role,
	}
}

func seedRecordWithLab(ctx context.Context, records repository.RecordRepository, rng *rand.Rand,
	patientID, doctorID uuid.UUID, hospitalID int) error {

	visit := time.Now().AddDate(0, 0, -rng.Intn(730))
	record := &model.MedicalRecord{
		PatientID:        patientID,
		DoctorID:         doctorID,
		HospitalID:       hospitalID,
		DateOfVisit:      visit,
		ChiefComplaint:   "Routine follow-up visit",
		Diagnosis:        []string{"Hypertension", "Seasonal allergy", "Migraine", "Type 2 diabetes"}[rng.Intn(4)],
		TreatmentSummary: "Condition reviewed, treatment plan adjusted.",
		Medications: model.Medications{
			{Name: "Lisinopril", Dosage: fmt.Sprintf("%dmg", 10*(1+rng.Intn(4))), Frequency: "Daily"},
		},
		Notes: "Seeded development record.",
	}
	if err := records.Create(ctx, record); err != nil {
		return err
	}

	abnormal := rng.Intn(5) == 0
	test := &model.LabTest{
		MedicalRecordID: &record.ID,
		PatientID:       patientID,
		TestName:        []string{"CBC", "CMP", "Lipid Panel", "Glucose"}[rng.Intn(4)],
		TestDate:        visit,
		ResultValue:     fmt.Sprintf("%d", 50+rng.Intn(150)),
		Units:           "mg/dL",
		ReferenceRange:  "Normal",
		IsAbnormal:      &abnormal,
		PerformedByLab:  "Seed Diagnostics",
	}
	return records.CreateLabTest(ctx, test)
}
