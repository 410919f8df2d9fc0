package repository

import (
	"context"
	"errors"

	"clinic-backend/internal/domain/entity"
	domainRepo "clinic-backend/internal/domain/repository"

	"gorm.io/gorm"
)

type questionRepository struct{}

func NewQuestionRepository() domainRepo.QuestionRepository {
	return &questionRepository{}
}

func (r *questionRepository) FindAllOpen(ctx context.Context, db *gorm.DB) ([]entity.OpenQuestion, error) {
	var questions []entity.OpenQuestion
	err := db.WithContext(ctx).Order("id ASC").Find(&questions).Error
	if err != nil {
		return nil, err
	}
	return questions, nil
}

func (r *questionRepository) FindAllMultipleChoice(ctx context.Context, db *gorm.DB) ([]entity.MultipleChoiceQuestion, error) {
	var questions []entity.MultipleChoiceQuestion
	err := db.WithContext(ctx).Preload("Options").Order("id ASC").Find(&questions).Error
	if err != nil {
		return nil, err
	}
	return questions, nil
}

func (r *questionRepository) FindOpenByID(ctx context.Context, db *gorm.DB, id int) (*entity.OpenQuestion, error) {
	var question entity.OpenQuestion
	err := db.WithContext(ctx).Where("id = ?", id).First(&question).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &question, nil
}

func (r *questionRepository) FindMultipleChoiceByID(ctx context.Context, db *gorm.DB, id int) (*entity.MultipleChoiceQuestion, error) {
	var question entity.MultipleChoiceQuestion
	err := db.WithContext(ctx).Preload("Options").Where("id = ?", id).First(&question).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &question, nil
}

func (r *questionRepository) FindOptionByID(ctx context.Context, db *gorm.DB, id int) (*entity.MultipleChoiceOption, error) {
	var option entity.MultipleChoiceOption
	err := db.WithContext(ctx).Where("id = ?", id).First(&option).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &option, nil
}
