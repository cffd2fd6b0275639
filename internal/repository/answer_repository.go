package repository

import (
	"github.com/careloop/formflow/internal/model"
	"github.com/careloop/formflow/internal/registry"
	"gorm.io/gorm"
)

// PageKey identifies one page's answers for one session.
type PageKey struct {
	UserID     uint
	FormID     uint
	FormPageID uint
	SessionID  string
}

// AnswerRepository is the generic path over every type-specific answer table.
// Write methods take the transaction handle so the delete-then-insert replace
// protocol runs as one atomic unit owned by the caller.
type AnswerRepository interface {
	DeleteForPage(tx *gorm.DB, t model.QuestionType, key PageKey) error
	BulkInsert(tx *gorm.DB, t model.QuestionType, answers []model.QuestionAnswer) ([]model.QuestionAnswer, error)
	FindForQuestions(t model.QuestionType, userID uint, sessionID string, questionIDs []uint) ([]model.QuestionAnswer, error)
}

type answerRepository struct {
	db  *gorm.DB
	reg *registry.Registry
}

func NewAnswerRepository(db *gorm.DB, reg *registry.Registry) AnswerRepository {
	return &answerRepository{db: db, reg: reg}
}

func (r *answerRepository) DeleteForPage(tx *gorm.DB, t model.QuestionType, key PageKey) error {
	table, err := r.reg.AnswerTable(t)
	if err != nil {
		return err
	}
	// Unconditional: deleting zero rows is not an error.
	return tx.Table(table).
		Where("user_id = ? AND form_id = ? AND form_page_id = ? AND session_id = ?",
			key.UserID, key.FormID, key.FormPageID, key.SessionID).
		Delete(&model.QuestionAnswer{}).Error
}

func (r *answerRepository) BulkInsert(tx *gorm.DB, t model.QuestionType, answers []model.QuestionAnswer) ([]model.QuestionAnswer, error) {
	table, err := r.reg.AnswerTable(t)
	if err != nil {
		return nil, err
	}
	if len(answers) == 0 {
		return nil, nil
	}
	if err := tx.Table(table).Create(&answers).Error; err != nil {
		return nil, err
	}
	return answers, nil
}

func (r *answerRepository) FindForQuestions(t model.QuestionType, userID uint, sessionID string, questionIDs []uint) ([]model.QuestionAnswer, error) {
	table, err := r.reg.AnswerTable(t)
	if err != nil {
		return nil, err
	}
	if len(questionIDs) == 0 {
		return nil, nil
	}
	var answers []model.QuestionAnswer
	err = r.db.Table(table).
		Where("user_id = ? AND session_id = ? AND question_id IN ?", userID, sessionID, questionIDs).
		Find(&answers).Error
	if err != nil {
		return nil, err
	}
	return answers, nil
}
