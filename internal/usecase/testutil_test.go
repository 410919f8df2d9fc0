package usecase_test

import (
	"context"
	"io"
	"testing"
	"time"

	"clinic-backend/config"
	"clinic-backend/internal/delivery/dto"
	"clinic-backend/internal/domain/entity"
	"clinic-backend/internal/repository"
	"clinic-backend/internal/service"
	"clinic-backend/internal/usecase"
	"clinic-backend/pkg/jwt"

	"github.com/alicebob/miniredis/v2"
	"github.com/glebarez/sqlite"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// newTestDB opens an isolated in-memory database with the full schema and
// the seed data the migrations normally provide.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	// A fresh connection would get its own empty in-memory database
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&entity.Role{},
		&entity.User{},
		&entity.Patient{},
		&entity.Provider{},
		&entity.ProviderPatientConnection{},
		&entity.OpenQuestion{},
		&entity.MultipleChoiceQuestion{},
		&entity.MultipleChoiceOption{},
		&entity.Survey{},
		&entity.OpenQuestionResponse{},
		&entity.MultipleChoiceResponse{},
		&entity.Recording{},
		&entity.RecordingRequest{},
		&entity.Signature{},
		&entity.AuditLog{},
	))

	seedRoles(t, db)
	seedQuestions(t, db)

	return db
}

func seedRoles(t *testing.T, db *gorm.DB) {
	t.Helper()
	roles := []entity.Role{
		{ID: entity.RoleIDAdmin, RoleName: entity.RoleAdmin},
		{ID: entity.RoleIDProvider, RoleName: entity.RoleProvider},
		{ID: entity.RoleIDPatient, RoleName: entity.RolePatient},
	}
	require.NoError(t, db.Create(&roles).Error)
}

func seedQuestions(t *testing.T, db *gorm.DB) {
	t.Helper()

	open := []entity.OpenQuestion{
		{Description: "How are you feeling today?"},
		{Description: "Describe any symptoms you have noticed."},
	}
	require.NoError(t, db.Create(&open).Error)

	mc := entity.MultipleChoiceQuestion{
		Description: "How often do you experience pain?",
		Options: []entity.MultipleChoiceOption{
			{Option: "Never"},
			{Option: "Sometimes"},
			{Option: "Often"},
		},
	}
	require.NoError(t, db.Create(&mc).Error)
}

func newTestLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func newTestRedis(t *testing.T) *redis.Client {
	t.Helper()
	mr := miniredis.RunT(t)
	return redis.NewClient(&redis.Options{Addr: mr.Addr()})
}

func newTestJWTService() *jwt.JWTService {
	return jwt.NewJWTService(config.JWTConfig{
		Secret:        "test-secret",
		AccessExpiry:  15 * time.Minute,
		RefreshExpiry: 24 * time.Hour,
	})
}

func newAuditService(db *gorm.DB) service.AuditService {
	return service.NewAuditService(db, newTestLogger(), repository.NewAuditLogRepository())
}

func newAuthUsecase(t *testing.T, db *gorm.DB) usecase.AuthUsecase {
	t.Helper()
	return usecase.NewAuthUsecase(
		db,
		newTestLogger(),
		repository.NewUserRepository(),
		repository.NewPatientRepository(),
		repository.NewProviderRepository(),
		newTestJWTService(),
		newTestRedis(t),
		newAuditService(db),
	)
}

// registerPatient creates a patient account and returns its identity
func registerPatient(t *testing.T, auth usecase.AuthUsecase, email string) *entity.Identity {
	t.Helper()

	result, err := auth.RegisterPatient(context.Background(), &dto.RegisterPatientRequest{
		Email:     email,
		Password:  "secret123",
		FirstName: "Pat",
		LastName:  "Doe",
		Age:       34,
	})
	require.NoError(t, err)

	identity, err := auth.ResolveIdentity(context.Background(), result.User.ID)
	require.NoError(t, err)
	require.True(t, identity.IsPatient())
	return identity
}

// registerProvider creates a provider account and returns its identity
func registerProvider(t *testing.T, auth usecase.AuthUsecase, email string) *entity.Identity {
	t.Helper()

	result, err := auth.RegisterProvider(context.Background(), &dto.RegisterProviderRequest{
		Email:     email,
		Password:  "secret123",
		FirstName: "Dana",
		LastName:  "Reed",
	})
	require.NoError(t, err)

	identity, err := auth.ResolveIdentity(context.Background(), result.User.ID)
	require.NoError(t, err)
	require.True(t, identity.IsProvider())
	return identity
}

// connect links a provider and a patient directly in the database
func connect(t *testing.T, db *gorm.DB, provider *entity.Identity, patient *entity.Identity) {
	t.Helper()
	conn := entity.ProviderPatientConnection{
		ProviderID: provider.Provider.ID,
		PatientID:  patient.Patient.ID,
	}
	require.NoError(t, db.Create(&conn).Error)
}
