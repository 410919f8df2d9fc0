package usecase_test

import (
	"context"
	"testing"

	"clinic-backend/internal/delivery/dto"
	"clinic-backend/internal/domain/entity"
	"clinic-backend/internal/repository"
	"clinic-backend/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newSurveyUsecase(db *gorm.DB) usecase.SurveyUsecase {
	return usecase.NewSurveyUsecase(
		db,
		newTestLogger(),
		repository.NewSurveyRepository(),
		repository.NewQuestionRepository(),
		repository.NewPatientRepository(),
		repository.NewConnectionRepository(),
		newAuditService(db),
	)
}

func TestCreateSurvey(t *testing.T) {
	db := newTestDB(t)
	auth := newAuthUsecase(t, db)
	uc := newSurveyUsecase(db)

	provider := registerProvider(t, auth, "doc@example.com")
	patient := registerPatient(t, auth, "pat@example.com")
	connect(t, db, provider, patient)

	result, err := uc.CreateSurvey(context.Background(), provider, &dto.CreateSurveyRequest{
		PatientID:       patient.Patient.ID,
		Title:           "Weekly checkin",
		OpenQuestionIDs: []int{1, 2},
		MCQuestionIDs:   []int{1},
	})
	require.NoError(t, err)

	assert.Equal(t, "sent", result.Status)
	assert.Nil(t, result.ResponseDate)

	// One blank response row per chosen question
	var openCount, mcCount int64
	require.NoError(t, db.Model(&entity.OpenQuestionResponse{}).Where("survey_id = ?", result.ID).Count(&openCount).Error)
	require.NoError(t, db.Model(&entity.MultipleChoiceResponse{}).Where("survey_id = ?", result.ID).Count(&mcCount).Error)
	assert.Equal(t, int64(2), openCount)
	assert.Equal(t, int64(1), mcCount)

	var mcRow entity.MultipleChoiceResponse
	require.NoError(t, db.Where("survey_id = ?", result.ID).First(&mcRow).Error)
	assert.Nil(t, mcRow.SelectedOptionID)
}

func TestCreateSurveyUnknownQuestionRollsBack(t *testing.T) {
	db := newTestDB(t)
	auth := newAuthUsecase(t, db)
	uc := newSurveyUsecase(db)

	provider := registerProvider(t, auth, "doc@example.com")
	patient := registerPatient(t, auth, "pat@example.com")
	connect(t, db, provider, patient)

	_, err := uc.CreateSurvey(context.Background(), provider, &dto.CreateSurveyRequest{
		PatientID:       patient.Patient.ID,
		Title:           "Broken",
		OpenQuestionIDs: []int{1, 999},
	})
	assert.ErrorIs(t, err, usecase.ErrQuestionNotFound)

	// Nothing of the failed create may survive
	var count int64
	require.NoError(t, db.Model(&entity.Survey{}).Count(&count).Error)
	assert.Equal(t, int64(0), count)
}

func TestCreateSurveyRequiresConnection(t *testing.T) {
	db := newTestDB(t)
	auth := newAuthUsecase(t, db)
	uc := newSurveyUsecase(db)

	provider := registerProvider(t, auth, "doc@example.com")
	patient := registerPatient(t, auth, "pat@example.com")

	_, err := uc.CreateSurvey(context.Background(), provider, &dto.CreateSurveyRequest{
		PatientID:       patient.Patient.ID,
		Title:           "Unauthorized",
		OpenQuestionIDs: []int{1},
	})
	assert.ErrorIs(t, err, usecase.ErrNotConnected)
}

func TestSubmitSurvey(t *testing.T) {
	db := newTestDB(t)
	auth := newAuthUsecase(t, db)
	uc := newSurveyUsecase(db)

	provider := registerProvider(t, auth, "doc@example.com")
	patient := registerPatient(t, auth, "pat@example.com")
	connect(t, db, provider, patient)

	created, err := uc.CreateSurvey(context.Background(), provider, &dto.CreateSurveyRequest{
		PatientID:       patient.Patient.ID,
		Title:           "Checkin",
		OpenQuestionIDs: []int{1},
		MCQuestionIDs:   []int{1},
	})
	require.NoError(t, err)

	err = uc.SubmitSurvey(context.Background(), patient, created.ID, &dto.SubmitSurveyRequest{
		MultipleChoiceResponses: []dto.MCAnswer{{QuestionID: 1, SelectedOptionID: 2}},
		OpenResponses:           []dto.OpenAnswer{{QuestionID: 1, Response: "Feeling better"}},
	})
	require.NoError(t, err)

	var survey entity.Survey
	require.NoError(t, db.First(&survey, created.ID).Error)
	assert.True(t, survey.IsCompleted())
	require.NotNil(t, survey.ResponseDate)
	assert.False(t, survey.ResponseDate.Before(survey.IssueDate))

	// The stored answers come back through the questions view
	questions, err := uc.GetSurveyQuestions(context.Background(), patient, created.ID)
	require.NoError(t, err)
	require.Len(t, questions.OpenResponses, 1)
	assert.Equal(t, "Feeling better", questions.OpenResponses[0].Response)
	require.Len(t, questions.MultipleChoiceResponses, 1)
	require.NotNil(t, questions.MultipleChoiceResponses[0].SelectedOption)
	assert.Equal(t, "Sometimes", *questions.MultipleChoiceResponses[0].SelectedOption)
}

func TestSubmitSurveyInvalidOptionRollsBack(t *testing.T) {
	db := newTestDB(t)
	auth := newAuthUsecase(t, db)
	uc := newSurveyUsecase(db)

	provider := registerProvider(t, auth, "doc@example.com")
	patient := registerPatient(t, auth, "pat@example.com")
	connect(t, db, provider, patient)

	created, err := uc.CreateSurvey(context.Background(), provider, &dto.CreateSurveyRequest{
		PatientID:       patient.Patient.ID,
		Title:           "Checkin",
		OpenQuestionIDs: []int{1},
		MCQuestionIDs:   []int{1},
	})
	require.NoError(t, err)

	err = uc.SubmitSurvey(context.Background(), patient, created.ID, &dto.SubmitSurveyRequest{
		OpenResponses:           []dto.OpenAnswer{{QuestionID: 1, Response: "Persisted early"}},
		MultipleChoiceResponses: []dto.MCAnswer{{QuestionID: 1, SelectedOptionID: 999}},
	})

	var invalid *usecase.InvalidAnswerError
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, 1, invalid.QuestionID)
	assert.True(t, invalid.MultipleChoice)

	// The open answer written before the failure must be rolled back
	var survey entity.Survey
	require.NoError(t, db.First(&survey, created.ID).Error)
	assert.False(t, survey.IsCompleted())

	var openRow entity.OpenQuestionResponse
	require.NoError(t, db.Where("survey_id = ?", created.ID).First(&openRow).Error)
	assert.Empty(t, openRow.Response)
}

func TestSubmitSurveyTwiceConflicts(t *testing.T) {
	db := newTestDB(t)
	auth := newAuthUsecase(t, db)
	uc := newSurveyUsecase(db)

	provider := registerProvider(t, auth, "doc@example.com")
	patient := registerPatient(t, auth, "pat@example.com")
	connect(t, db, provider, patient)

	created, err := uc.CreateSurvey(context.Background(), provider, &dto.CreateSurveyRequest{
		PatientID:       patient.Patient.ID,
		Title:           "Checkin",
		OpenQuestionIDs: []int{1},
	})
	require.NoError(t, err)

	submit := &dto.SubmitSurveyRequest{
		OpenResponses: []dto.OpenAnswer{{QuestionID: 1, Response: "First"}},
	}
	require.NoError(t, uc.SubmitSurvey(context.Background(), patient, created.ID, submit))

	err = uc.SubmitSurvey(context.Background(), patient, created.ID, submit)
	assert.ErrorIs(t, err, usecase.ErrSurveyAlreadyCompleted)
}

func TestGetSurveysByPatientAuthorization(t *testing.T) {
	db := newTestDB(t)
	auth := newAuthUsecase(t, db)
	uc := newSurveyUsecase(db)

	provider := registerProvider(t, auth, "doc@example.com")
	stranger := registerProvider(t, auth, "other@example.com")
	patient := registerPatient(t, auth, "pat@example.com")
	connect(t, db, provider, patient)

	_, err := uc.CreateSurvey(context.Background(), provider, &dto.CreateSurveyRequest{
		PatientID:       patient.Patient.ID,
		Title:           "Checkin",
		OpenQuestionIDs: []int{1},
	})
	require.NoError(t, err)

	result, err := uc.GetSurveysByPatient(context.Background(), provider, patient.Patient.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Total)

	// An unconnected provider is refused
	_, err = uc.GetSurveysByPatient(context.Background(), stranger, patient.Patient.ID)
	assert.ErrorIs(t, err, usecase.ErrNotConnected)

	// The patient sees their own surveys
	mine, err := uc.GetMySurveys(context.Background(), patient)
	require.NoError(t, err)
	assert.Equal(t, 1, mine.Total)
}

func TestGetSurveyQuestionsAuthorization(t *testing.T) {
	db := newTestDB(t)
	auth := newAuthUsecase(t, db)
	uc := newSurveyUsecase(db)

	provider := registerProvider(t, auth, "doc@example.com")
	stranger := registerProvider(t, auth, "other-doc@example.com")
	otherPatient := registerPatient(t, auth, "other-pat@example.com")
	patient := registerPatient(t, auth, "pat@example.com")
	connect(t, db, provider, patient)

	created, err := uc.CreateSurvey(context.Background(), provider, &dto.CreateSurveyRequest{
		PatientID:       patient.Patient.ID,
		Title:           "Checkin",
		OpenQuestionIDs: []int{1},
	})
	require.NoError(t, err)

	// Neither an unconnected provider nor another patient may read it
	_, err = uc.GetSurveyQuestions(context.Background(), stranger, created.ID)
	assert.ErrorIs(t, err, usecase.ErrNotConnected)
	_, err = uc.GetSurveyQuestions(context.Background(), otherPatient, created.ID)
	assert.ErrorIs(t, err, usecase.ErrNotConnected)

	result, err := uc.GetSurveyQuestions(context.Background(), provider, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Checkin", result.SurveyTitle)
}

func TestGetAllQuestions(t *testing.T) {
	db := newTestDB(t)
	uc := newSurveyUsecase(db)

	result, err := uc.GetAllQuestions(context.Background())
	require.NoError(t, err)
	assert.Len(t, result.OpenQuestions, 2)
	require.Len(t, result.MultipleChoiceQuestions, 1)
	assert.Len(t, result.MultipleChoiceQuestions[0].Options, 3)
}
