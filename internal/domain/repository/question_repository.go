package repository

import (
	"context"

	"clinic-backend/internal/domain/entity"

	"gorm.io/gorm"
)

type QuestionRepository interface {
	FindAllOpen(ctx context.Context, db *gorm.DB) ([]entity.OpenQuestion, error)
	FindAllMultipleChoice(ctx context.Context, db *gorm.DB) ([]entity.MultipleChoiceQuestion, error)
	FindOpenByID(ctx context.Context, db *gorm.DB, id int) (*entity.OpenQuestion, error)
	FindMultipleChoiceByID(ctx context.Context, db *gorm.DB, id int) (*entity.MultipleChoiceQuestion, error)
	FindOptionByID(ctx context.Context, db *gorm.DB, id int) (*entity.MultipleChoiceOption, error)
}
