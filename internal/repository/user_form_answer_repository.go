package repository

import (
	"github.com/careloop/formflow/internal/model"
	"gorm.io/gorm"
)

type UserFormAnswerRepository interface {
	Create(ufa *model.UserFormAnswer) error
	FindByID(id uint) (*model.UserFormAnswer, error)
	// FindBySession returns nil (not an error) when the form has not been
	// submitted for the session.
	FindBySession(formID, userID uint, sessionID string) (*model.UserFormAnswer, error)
	FindByAppointment(formID, userID, appointmentID uint) (*model.UserFormAnswer, error)
}

type userFormAnswerRepository struct {
	db *gorm.DB
}

func NewUserFormAnswerRepository(db *gorm.DB) UserFormAnswerRepository {
	return &userFormAnswerRepository{db: db}
}

func (r *userFormAnswerRepository) Create(ufa *model.UserFormAnswer) error {
	return r.db.Create(ufa).Error
}

func (r *userFormAnswerRepository) FindByID(id uint) (*model.UserFormAnswer, error) {
	var ufa model.UserFormAnswer
	if err := r.db.First(&ufa, id).Error; err != nil {
		return nil, err
	}
	return &ufa, nil
}

func (r *userFormAnswerRepository) FindBySession(formID, userID uint, sessionID string) (*model.UserFormAnswer, error) {
	var ufa model.UserFormAnswer
	err := r.db.Where("form_id = ? AND user_id = ? AND session_id = ?", formID, userID, sessionID).
		First(&ufa).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &ufa, nil
}

func (r *userFormAnswerRepository) FindByAppointment(formID, userID, appointmentID uint) (*model.UserFormAnswer, error) {
	var ufa model.UserFormAnswer
	err := r.db.Where("form_id = ? AND user_id = ? AND appointment_id = ?", formID, userID, appointmentID).
		First(&ufa).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &ufa, nil
}
