package repository

import (
	"github.com/careloop/formflow/internal/model"
	"gorm.io/gorm"
)

// CareRepository covers the collaborator lookups the engine needs: existence
// checks and foreign-key resolution for users, schedules, toolkits, episodes,
// treatments and appointments. These entities are owned elsewhere.
type CareRepository interface {
	UserExists(userID uint) (bool, error)
	FindSchedule(scheduleID uint) (*model.Schedule, error)
	FindToolkit(toolkitID uint) (*model.Toolkit, error)
	FindToolkitEpisode(episodeID uint) (*model.ToolkitEpisode, error)
	FindTreatment(treatmentID uint) (*model.Treatment, error)
	FindAppointment(appointmentID uint) (*model.Appointment, error)
	FindAppointmentsByTreatment(treatmentID uint) ([]model.Appointment, error)
}

type careRepository struct {
	db *gorm.DB
}

func NewCareRepository(db *gorm.DB) CareRepository {
	return &careRepository{db: db}
}

func (r *careRepository) UserExists(userID uint) (bool, error) {
	var count int64
	err := r.db.Model(&model.User{}).Where("id = ?", userID).Count(&count).Error
	return count > 0, err
}

func (r *careRepository) FindSchedule(scheduleID uint) (*model.Schedule, error) {
	var schedule model.Schedule
	if err := r.db.First(&schedule, scheduleID).Error; err != nil {
		return nil, err
	}
	return &schedule, nil
}

func (r *careRepository) FindToolkit(toolkitID uint) (*model.Toolkit, error) {
	var toolkit model.Toolkit
	if err := r.db.First(&toolkit, toolkitID).Error; err != nil {
		return nil, err
	}
	return &toolkit, nil
}

func (r *careRepository) FindToolkitEpisode(episodeID uint) (*model.ToolkitEpisode, error) {
	var episode model.ToolkitEpisode
	if err := r.db.First(&episode, episodeID).Error; err != nil {
		return nil, err
	}
	return &episode, nil
}

func (r *careRepository) FindTreatment(treatmentID uint) (*model.Treatment, error) {
	var treatment model.Treatment
	if err := r.db.First(&treatment, treatmentID).Error; err != nil {
		return nil, err
	}
	return &treatment, nil
}

func (r *careRepository) FindAppointment(appointmentID uint) (*model.Appointment, error) {
	var appointment model.Appointment
	if err := r.db.First(&appointment, appointmentID).Error; err != nil {
		return nil, err
	}
	return &appointment, nil
}

func (r *careRepository) FindAppointmentsByTreatment(treatmentID uint) ([]model.Appointment, error) {
	var appointments []model.Appointment
	err := r.db.Where("treatment_id = ?", treatmentID).
		Order("starts_at ASC").Find(&appointments).Error
	if err != nil {
		return nil, err
	}
	return appointments, nil
}
