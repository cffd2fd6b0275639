package repository

import (
	"github.com/careloop/formflow/internal/model"
	"gorm.io/gorm"
)

type SubmitPageInfoRepository interface {
	// FindBracket returns the authored bracket containing the total, or nil
	// when the form has no results-page content for that score.
	FindBracket(formID uint, totalPoints int) (*model.FormSubmitPageInfo, error)
}

type submitPageInfoRepository struct {
	db *gorm.DB
}

func NewSubmitPageInfoRepository(db *gorm.DB) SubmitPageInfoRepository {
	return &submitPageInfoRepository{db: db}
}

func (r *submitPageInfoRepository) FindBracket(formID uint, totalPoints int) (*model.FormSubmitPageInfo, error) {
	var info model.FormSubmitPageInfo
	err := r.db.Where("form_id = ? AND min_points <= ? AND max_points >= ?", formID, totalPoints, totalPoints).
		Order("min_points ASC").First(&info).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &info, nil
}
