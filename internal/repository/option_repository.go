package repository

import (
	"github.com/careloop/formflow/internal/model"
	"github.com/careloop/formflow/internal/registry"
	"gorm.io/gorm"
)

// OptionRepository reads and writes the type-specific option tables through
// the registry. One generic implementation covers every question type.
type OptionRepository interface {
	FindByQuestionIDs(t model.QuestionType, questionIDs []uint) ([]model.QuestionOption, error)
	CreateBatch(tx *gorm.DB, t model.QuestionType, options []model.QuestionOption) error
}

type optionRepository struct {
	db  *gorm.DB
	reg *registry.Registry
}

func NewOptionRepository(db *gorm.DB, reg *registry.Registry) OptionRepository {
	return &optionRepository{db: db, reg: reg}
}

func (r *optionRepository) FindByQuestionIDs(t model.QuestionType, questionIDs []uint) ([]model.QuestionOption, error) {
	table, err := r.reg.OptionTable(t)
	if err != nil {
		return nil, err
	}
	if len(questionIDs) == 0 {
		return nil, nil
	}
	var options []model.QuestionOption
	err = r.db.Table(table).
		Where("question_id IN ?", questionIDs).
		Order("ranking ASC").
		Find(&options).Error
	if err != nil {
		return nil, err
	}
	return options, nil
}

func (r *optionRepository) CreateBatch(tx *gorm.DB, t model.QuestionType, options []model.QuestionOption) error {
	table, err := r.reg.OptionTable(t)
	if err != nil {
		return err
	}
	if len(options) == 0 {
		return nil
	}
	return tx.Table(table).Create(&options).Error
}
