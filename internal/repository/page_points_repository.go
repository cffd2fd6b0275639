package repository

import (
	"github.com/careloop/formflow/internal/model"
	"gorm.io/gorm"
)

type PagePointsRepository interface {
	// FindForPage returns nil (not an error) when no row exists yet.
	FindForPage(key PageKey) (*model.FormPagePoints, error)
	Create(points *model.FormPagePoints) error
	Update(points *model.FormPagePoints) error
	SumForSession(userID, formID uint, sessionID string) (int, error)
}

type pagePointsRepository struct {
	db *gorm.DB
}

func NewPagePointsRepository(db *gorm.DB) PagePointsRepository {
	return &pagePointsRepository{db: db}
}

func (r *pagePointsRepository) FindForPage(key PageKey) (*model.FormPagePoints, error) {
	var points model.FormPagePoints
	err := r.db.Where("user_id = ? AND form_id = ? AND form_page_id = ? AND session_id = ?",
		key.UserID, key.FormID, key.FormPageID, key.SessionID).First(&points).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &points, nil
}

func (r *pagePointsRepository) Create(points *model.FormPagePoints) error {
	return r.db.Create(points).Error
}

func (r *pagePointsRepository) Update(points *model.FormPagePoints) error {
	return r.db.Save(points).Error
}

func (r *pagePointsRepository) SumForSession(userID, formID uint, sessionID string) (int, error) {
	var total int64
	err := r.db.Model(&model.FormPagePoints{}).
		Where("user_id = ? AND form_id = ? AND session_id = ?", userID, formID, sessionID).
		Select("COALESCE(SUM(calculated_points), 0)").
		Scan(&total).Error
	return int(total), err
}
