package repository

import (
	"context"
	"errors"

	"clinic-backend/internal/domain/entity"
	domainRepo "clinic-backend/internal/domain/repository"

	"gorm.io/gorm"
)

type surveyRepository struct{}

func NewSurveyRepository() domainRepo.SurveyRepository {
	return &surveyRepository{}
}

func (r *surveyRepository) Create(ctx context.Context, db *gorm.DB, survey *entity.Survey) error {
	return db.WithContext(ctx).Create(survey).Error
}

func (r *surveyRepository) FindByID(ctx context.Context, db *gorm.DB, id int) (*entity.Survey, error) {
	var survey entity.Survey
	err := db.WithContext(ctx).Where("id = ?", id).First(&survey).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &survey, nil
}

func (r *surveyRepository) FindByPatientID(ctx context.Context, db *gorm.DB, patientID int) ([]entity.Survey, error) {
	var surveys []entity.Survey
	err := db.WithContext(ctx).
		Where("patient_id = ?", patientID).
		Order("issue_date DESC").
		Find(&surveys).Error
	if err != nil {
		return nil, err
	}
	return surveys, nil
}

func (r *surveyRepository) Update(ctx context.Context, db *gorm.DB, survey *entity.Survey) error {
	return db.WithContext(ctx).Save(survey).Error
}

func (r *surveyRepository) CreateOpenResponse(ctx context.Context, db *gorm.DB, resp *entity.OpenQuestionResponse) error {
	return db.WithContext(ctx).Create(resp).Error
}

func (r *surveyRepository) CreateMCResponse(ctx context.Context, db *gorm.DB, resp *entity.MultipleChoiceResponse) error {
	return db.WithContext(ctx).Create(resp).Error
}

func (r *surveyRepository) FindOpenResponses(ctx context.Context, db *gorm.DB, surveyID int) ([]entity.OpenQuestionResponse, error) {
	var responses []entity.OpenQuestionResponse
	err := db.WithContext(ctx).Preload("Question").
		Where("survey_id = ?", surveyID).
		Order("id ASC").
		Find(&responses).Error
	if err != nil {
		return nil, err
	}
	return responses, nil
}

func (r *surveyRepository) FindMCResponses(ctx context.Context, db *gorm.DB, surveyID int) ([]entity.MultipleChoiceResponse, error) {
	var responses []entity.MultipleChoiceResponse
	err := db.WithContext(ctx).
		Preload("Question.Options").
		Preload("SelectedOption").
		Where("survey_id = ?", surveyID).
		Order("id ASC").
		Find(&responses).Error
	if err != nil {
		return nil, err
	}
	return responses, nil
}

func (r *surveyRepository) FindOpenResponse(ctx context.Context, db *gorm.DB, surveyID, questionID int) (*entity.OpenQuestionResponse, error) {
	var resp entity.OpenQuestionResponse
	err := db.WithContext(ctx).
		Where("survey_id = ? AND question_id = ?", surveyID, questionID).
		First(&resp).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &resp, nil
}

func (r *surveyRepository) FindMCResponse(ctx context.Context, db *gorm.DB, surveyID, questionID int) (*entity.MultipleChoiceResponse, error) {
	var resp entity.MultipleChoiceResponse
	err := db.WithContext(ctx).
		Where("survey_id = ? AND question_id = ?", surveyID, questionID).
		First(&resp).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &resp, nil
}

func (r *surveyRepository) UpdateOpenResponse(ctx context.Context, db *gorm.DB, resp *entity.OpenQuestionResponse) error {
	return db.WithContext(ctx).Save(resp).Error
}

func (r *surveyRepository) UpdateMCResponse(ctx context.Context, db *gorm.DB, resp *entity.MultipleChoiceResponse) error {
	return db.WithContext(ctx).Save(resp).Error
}
