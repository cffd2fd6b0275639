package repository

import (
	"github.com/careloop/formflow/internal/model"
	"gorm.io/gorm"
)

type QuestionRepository interface {
	FindByID(id uint) (*model.Question, error)
	FindByPage(formID, pageID uint) ([]model.Question, error)
	FindByForm(formID uint) ([]model.Question, error)
}

type questionRepository struct {
	db *gorm.DB
}

func NewQuestionRepository(db *gorm.DB) QuestionRepository {
	return &questionRepository{db: db}
}

func (r *questionRepository) FindByID(id uint) (*model.Question, error) {
	var question model.Question
	if err := r.db.First(&question, id).Error; err != nil {
		return nil, err
	}
	return &question, nil
}

func (r *questionRepository) FindByPage(formID, pageID uint) ([]model.Question, error) {
	var questions []model.Question
	err := r.db.Where("form_id = ? AND form_page_id = ?", formID, pageID).
		Order("ranking ASC").Find(&questions).Error
	if err != nil {
		return nil, err
	}
	return questions, nil
}

func (r *questionRepository) FindByForm(formID uint) ([]model.Question, error) {
	var questions []model.Question
	err := r.db.Where("form_id = ?", formID).
		Order("form_page_id ASC, ranking ASC").Find(&questions).Error
	if err != nil {
		return nil, err
	}
	return questions, nil
}
