package repository

import (
	"context"

	"clinic-backend/internal/domain/entity"

	"gorm.io/gorm"
)

type SurveyRepository interface {
	Create(ctx context.Context, db *gorm.DB, survey *entity.Survey) error
	FindByID(ctx context.Context, db *gorm.DB, id int) (*entity.Survey, error)
	FindByPatientID(ctx context.Context, db *gorm.DB, patientID int) ([]entity.Survey, error)
	Update(ctx context.Context, db *gorm.DB, survey *entity.Survey) error

	CreateOpenResponse(ctx context.Context, db *gorm.DB, resp *entity.OpenQuestionResponse) error
	CreateMCResponse(ctx context.Context, db *gorm.DB, resp *entity.MultipleChoiceResponse) error
	FindOpenResponses(ctx context.Context, db *gorm.DB, surveyID int) ([]entity.OpenQuestionResponse, error)
	FindMCResponses(ctx context.Context, db *gorm.DB, surveyID int) ([]entity.MultipleChoiceResponse, error)
	FindOpenResponse(ctx context.Context, db *gorm.DB, surveyID, questionID int) (*entity.OpenQuestionResponse, error)
	FindMCResponse(ctx context.Context, db *gorm.DB, surveyID, questionID int) (*entity.MultipleChoiceResponse, error)
	UpdateOpenResponse(ctx context.Context, db *gorm.DB, resp *entity.OpenQuestionResponse) error
	UpdateMCResponse(ctx context.Context, db *gorm.DB, resp *entity.MultipleChoiceResponse) error
}
