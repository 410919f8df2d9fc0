package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"clinic-backend/internal/converter"
	"clinic-backend/internal/delivery/dto"
	"clinic-backend/internal/domain/entity"
	"clinic-backend/internal/domain/repository"
	"clinic-backend/internal/service"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrSurveyNotFound         = errors.New("survey not found")
	ErrQuestionNotFound       = errors.New("question not found")
	ErrSurveyAlreadyCompleted = errors.New("survey has already been completed")
)

// InvalidAnswerError reports which question made a submission invalid, so
// the client sees a question-specific message.
type InvalidAnswerError struct {
	QuestionID     int
	MultipleChoice bool
}

func (e *InvalidAnswerError) Error() string {
	if e.MultipleChoice {
		return fmt.Sprintf("invalid multiple choice question or option for question_id %d", e.QuestionID)
	}
	return fmt.Sprintf("invalid open question ID %d", e.QuestionID)
}

type SurveyUsecase interface {
	CreateSurvey(ctx context.Context, actor *entity.Identity, req *dto.CreateSurveyRequest) (*dto.SurveyResponse, error)
	GetSurveysByPatient(ctx context.Context, actor *entity.Identity, patientID int) (*dto.SurveyListResponse, error)
	GetMySurveys(ctx context.Context, actor *entity.Identity) (*dto.SurveyListResponse, error)
	GetAllQuestions(ctx context.Context) (*dto.QuestionBankResponse, error)
	GetSurveyQuestions(ctx context.Context, actor *entity.Identity, surveyID int) (*dto.SurveyQuestionsResponse, error)
	SubmitSurvey(ctx context.Context, actor *entity.Identity, surveyID int, req *dto.SubmitSurveyRequest) error
}

type surveyUsecase struct {
	db             *gorm.DB
	log            *logrus.Logger
	surveyRepo     repository.SurveyRepository
	questionRepo   repository.QuestionRepository
	patientRepo    repository.PatientRepository
	connectionRepo repository.ConnectionRepository
	auditService   service.AuditService
}

func NewSurveyUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	surveyRepo repository.SurveyRepository,
	questionRepo repository.QuestionRepository,
	patientRepo repository.PatientRepository,
	connectionRepo repository.ConnectionRepository,
	auditService service.AuditService,
) SurveyUsecase {
	return &surveyUsecase{
		db:             db,
		log:            log,
		surveyRepo:     surveyRepo,
		questionRepo:   questionRepo,
		patientRepo:    patientRepo,
		connectionRepo: connectionRepo,
		auditService:   auditService,
	}
}

// CreateSurvey issues a survey to a patient. The survey starts in "sent"
// with one blank response row per chosen question.
func (u *surveyUsecase) CreateSurvey(ctx context.Context, actor *entity.Identity, req *dto.CreateSurveyRequest) (*dto.SurveyResponse, error) {
	if !actor.IsProvider() {
		return nil, ErrProviderNotFound
	}

	patient, err := u.patientRepo.FindByID(ctx, u.db, req.PatientID)
	if err != nil {
		u.log.Warnf("Failed to find patient %d: %+v", req.PatientID, err)
		return nil, err
	}
	if patient == nil {
		return nil, ErrPatientNotFound
	}

	connected, err := u.connectionRepo.Exists(ctx, u.db, actor.Provider.ID, patient.ID)
	if err != nil {
		u.log.Warnf("Failed to check connection: %+v", err)
		return nil, err
	}
	if !connected {
		return nil, ErrNotConnected
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	survey := &entity.Survey{
		Title:      req.Title,
		PatientID:  patient.ID,
		ProviderID: actor.Provider.ID,
		Status:     entity.SurveyStatusSent,
	}

	if err := u.surveyRepo.Create(ctx, tx, survey); err != nil {
		u.log.Warnf("Failed to create survey: %+v", err)
		return nil, err
	}

	// Blank open question responses
	for _, qid := range req.OpenQuestionIDs {
		question, err := u.questionRepo.FindOpenByID(ctx, tx, qid)
		if err != nil {
			u.log.Warnf("Failed to find open question %d: %+v", qid, err)
			return nil, err
		}
		if question == nil {
			return nil, ErrQuestionNotFound
		}

		resp := &entity.OpenQuestionResponse{
			SurveyID:   survey.ID,
			QuestionID: question.ID,
			Response:   "",
		}
		if err := u.surveyRepo.CreateOpenResponse(ctx, tx, resp); err != nil {
			u.log.Warnf("Failed to create open response: %+v", err)
			return nil, err
		}
	}

	// Blank multiple choice responses, selection unset
	for _, qid := range req.MCQuestionIDs {
		question, err := u.questionRepo.FindMultipleChoiceByID(ctx, tx, qid)
		if err != nil {
			u.log.Warnf("Failed to find multiple choice question %d: %+v", qid, err)
			return nil, err
		}
		if question == nil {
			return nil, ErrQuestionNotFound
		}

		resp := &entity.MultipleChoiceResponse{
			SurveyID:   survey.ID,
			QuestionID: question.ID,
		}
		if err := u.surveyRepo.CreateMCResponse(ctx, tx, resp); err != nil {
			u.log.Warnf("Failed to create multiple choice response: %+v", err)
			return nil, err
		}
	}

	u.auditService.Log(ctx, tx, &actor.User.ID, entity.AuditActionSurveyCreate, entity.JSON{
		"survey_id":  survey.ID,
		"patient_id": patient.ID,
	})

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return converter.SurveyToResponse(survey), nil
}

// GetSurveysByPatient lists a patient's surveys. Patients see only their
// own; providers must hold a connection to the patient.
func (u *surveyUsecase) GetSurveysByPatient(ctx context.Context, actor *entity.Identity, patientID int) (*dto.SurveyListResponse, error) {
	patient, err := u.patientRepo.FindByID(ctx, u.db, patientID)
	if err != nil {
		u.log.Warnf("Failed to find patient %d: %+v", patientID, err)
		return nil, err
	}
	if patient == nil {
		return nil, ErrPatientNotFound
	}

	if err := u.authorizePatientAccess(ctx, actor, patient.ID); err != nil {
		return nil, err
	}

	surveys, err := u.surveyRepo.FindByPatientID(ctx, u.db, patient.ID)
	if err != nil {
		u.log.Warnf("Failed to find surveys for patient %d: %+v", patient.ID, err)
		return nil, err
	}

	return &dto.SurveyListResponse{
		Surveys: converter.SurveysToResponses(surveys),
		Total:   len(surveys),
	}, nil
}

// GetMySurveys lists the calling patient's own surveys
func (u *surveyUsecase) GetMySurveys(ctx context.Context, actor *entity.Identity) (*dto.SurveyListResponse, error) {
	if !actor.IsPatient() {
		return nil, ErrProfileNotFound
	}

	surveys, err := u.surveyRepo.FindByPatientID(ctx, u.db, actor.Patient.ID)
	if err != nil {
		u.log.Warnf("Failed to find surveys for patient %d: %+v", actor.Patient.ID, err)
		return nil, err
	}

	return &dto.SurveyListResponse{
		Surveys: converter.SurveysToResponses(surveys),
		Total:   len(surveys),
	}, nil
}

// GetAllQuestions returns the shared question bank
func (u *surveyUsecase) GetAllQuestions(ctx context.Context) (*dto.QuestionBankResponse, error) {
	openQuestions, err := u.questionRepo.FindAllOpen(ctx, u.db)
	if err != nil {
		u.log.Warnf("Failed to list open questions: %+v", err)
		return nil, err
	}

	mcQuestions, err := u.questionRepo.FindAllMultipleChoice(ctx, u.db)
	if err != nil {
		u.log.Warnf("Failed to list multiple choice questions: %+v", err)
		return nil, err
	}

	resp := &dto.QuestionBankResponse{
		OpenQuestions:           make([]dto.OpenQuestionResponse, len(openQuestions)),
		MultipleChoiceQuestions: make([]dto.MCQuestionResponse, len(mcQuestions)),
	}
	for i, q := range openQuestions {
		resp.OpenQuestions[i] = converter.OpenQuestionToResponse(&q)
	}
	for i, q := range mcQuestions {
		resp.MultipleChoiceQuestions[i] = converter.MCQuestionToResponse(&q)
	}

	return resp, nil
}

// GetSurveyQuestions returns every response row of a survey with question
// text, the full option list and any stored selection. Access follows the
// connection rule of the survey's patient.
func (u *surveyUsecase) GetSurveyQuestions(ctx context.Context, actor *entity.Identity, surveyID int) (*dto.SurveyQuestionsResponse, error) {
	survey, err := u.surveyRepo.FindByID(ctx, u.db, surveyID)
	if err != nil {
		u.log.Warnf("Failed to find survey %d: %+v", surveyID, err)
		return nil, err
	}
	if survey == nil {
		return nil, ErrSurveyNotFound
	}

	if err := u.authorizePatientAccess(ctx, actor, survey.PatientID); err != nil {
		return nil, err
	}

	openResponses, err := u.surveyRepo.FindOpenResponses(ctx, u.db, survey.ID)
	if err != nil {
		u.log.Warnf("Failed to find open responses: %+v", err)
		return nil, err
	}

	mcResponses, err := u.surveyRepo.FindMCResponses(ctx, u.db, survey.ID)
	if err != nil {
		u.log.Warnf("Failed to find multiple choice responses: %+v", err)
		return nil, err
	}

	resp := &dto.SurveyQuestionsResponse{
		SurveyTitle:             survey.Title,
		MultipleChoiceResponses: make([]dto.AnsweredMCResponse, len(mcResponses)),
		OpenResponses:           make([]dto.AnsweredOpenResponse, len(openResponses)),
	}

	for i, mc := range mcResponses {
		answered := dto.AnsweredMCResponse{
			Question: converter.MCQuestionToResponse(&mc.Question),
			Options:  converter.MCOptionsToResponses(mc.Question.Options),
		}
		if mc.SelectedOption != nil {
			selected := mc.SelectedOption.Option
			answered.SelectedOption = &selected
		}
		resp.MultipleChoiceResponses[i] = answered
	}

	for i, open := range openResponses {
		resp.OpenResponses[i] = dto.AnsweredOpenResponse{
			Question: converter.OpenQuestionToResponse(&open.Question),
			Response: open.Response,
		}
	}

	return resp, nil
}

// SubmitSurvey stores the patient's answers and completes the survey. The
// whole submission runs in one transaction: an invalid answer rolls back
// every row written earlier in the same call.
func (u *surveyUsecase) SubmitSurvey(ctx context.Context, actor *entity.Identity, surveyID int, req *dto.SubmitSurveyRequest) error {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	survey, err := u.surveyRepo.FindByID(ctx, tx, surveyID)
	if err != nil {
		u.log.Warnf("Failed to find survey %d: %+v", surveyID, err)
		return err
	}
	if survey == nil {
		return ErrSurveyNotFound
	}
	if survey.IsCompleted() {
		return ErrSurveyAlreadyCompleted
	}

	for _, mc := range req.MultipleChoiceResponses {
		resp, err := u.surveyRepo.FindMCResponse(ctx, tx, survey.ID, mc.QuestionID)
		if err != nil {
			u.log.Warnf("Failed to find multiple choice response: %+v", err)
			return err
		}
		if resp == nil {
			return &InvalidAnswerError{QuestionID: mc.QuestionID, MultipleChoice: true}
		}

		option, err := u.questionRepo.FindOptionByID(ctx, tx, mc.SelectedOptionID)
		if err != nil {
			u.log.Warnf("Failed to find option %d: %+v", mc.SelectedOptionID, err)
			return err
		}
		// The option must belong to the question this row references
		if option == nil || option.QuestionID != resp.QuestionID {
			return &InvalidAnswerError{QuestionID: mc.QuestionID, MultipleChoice: true}
		}

		resp.SelectedOptionID = &option.ID
		if err := u.surveyRepo.UpdateMCResponse(ctx, tx, resp); err != nil {
			u.log.Warnf("Failed to update multiple choice response: %+v", err)
			return err
		}
	}

	for _, open := range req.OpenResponses {
		resp, err := u.surveyRepo.FindOpenResponse(ctx, tx, survey.ID, open.QuestionID)
		if err != nil {
			u.log.Warnf("Failed to find open response: %+v", err)
			return err
		}
		if resp == nil {
			return &InvalidAnswerError{QuestionID: open.QuestionID}
		}

		resp.Response = open.Response
		if err := u.surveyRepo.UpdateOpenResponse(ctx, tx, resp); err != nil {
			u.log.Warnf("Failed to update open response: %+v", err)
			return err
		}
	}

	survey.Complete(time.Now())
	if err := u.surveyRepo.Update(ctx, tx, survey); err != nil {
		u.log.Warnf("Failed to complete survey %d: %+v", survey.ID, err)
		return err
	}

	u.auditService.Log(ctx, tx, &actor.User.ID, entity.AuditActionSurveySubmit, entity.JSON{
		"survey_id": survey.ID,
	})

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return err
	}

	return nil
}

// authorizePatientAccess enforces the connection rule: patients reach only
// their own records, providers only connected patients. Admins pass.
func (u *surveyUsecase) authorizePatientAccess(ctx context.Context, actor *entity.Identity, patientID int) error {
	switch {
	case actor.IsAdmin():
		return nil
	case actor.IsPatient():
		if actor.Patient.ID != patientID {
			return ErrNotConnected
		}
		return nil
	case actor.IsProvider():
		connected, err := u.connectionRepo.Exists(ctx, u.db, actor.Provider.ID, patientID)
		if err != nil {
			return err
		}
		if !connected {
			return ErrNotConnected
		}
		return nil
	default:
		return ErrNotConnected
	}
}
