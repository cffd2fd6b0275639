package repository

import (
	"github.com/careloop/formflow/internal/model"
	"gorm.io/gorm"
)

type FormRepository interface {
	Create(form *model.Form) error
	FindByID(id uint) (*model.Form, error)
	FindByIDWithPages(id uint) (*model.Form, error)
	FindPage(formID, pageID uint) (*model.FormPage, error)
	FirstPage(formID uint) (*model.FormPage, error)
	// NextPage returns the page created immediately after the given page
	// within the same form, or nil when it is the last page.
	NextPage(formID, pageID uint) (*model.FormPage, error)
	CountPages(formID uint) (int64, error)
}

type formRepository struct {
	db *gorm.DB
}

func NewFormRepository(db *gorm.DB) FormRepository {
	return &formRepository{db: db}
}

func (r *formRepository) Create(form *model.Form) error {
	// Associated pages and questions are created along with the form.
	return r.db.Create(form).Error
}

func (r *formRepository) FindByID(id uint) (*model.Form, error) {
	var form model.Form
	if err := r.db.First(&form, id).Error; err != nil {
		return nil, err
	}
	return &form, nil
}

func (r *formRepository) FindByIDWithPages(id uint) (*model.Form, error) {
	var form model.Form
	err := r.db.Preload("Pages", func(db *gorm.DB) *gorm.DB {
		return db.Order("form_pages.created_at ASC")
	}).First(&form, id).Error
	if err != nil {
		return nil, err
	}
	return &form, nil
}

func (r *formRepository) FindPage(formID, pageID uint) (*model.FormPage, error) {
	var page model.FormPage
	err := r.db.Where("form_id = ?", formID).First(&page, pageID).Error
	if err != nil {
		return nil, err
	}
	return &page, nil
}

func (r *formRepository) FirstPage(formID uint) (*model.FormPage, error) {
	var page model.FormPage
	err := r.db.Where("form_id = ?", formID).Order("created_at ASC").First(&page).Error
	if err != nil {
		return nil, err
	}
	return &page, nil
}

func (r *formRepository) NextPage(formID, pageID uint) (*model.FormPage, error) {
	current, err := r.FindPage(formID, pageID)
	if err != nil {
		return nil, err
	}
	var next model.FormPage
	err = r.db.Where("form_id = ? AND created_at > ?", formID, current.CreatedAt).
		Order("created_at ASC").First(&next).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &next, nil
}

func (r *formRepository) CountPages(formID uint) (int64, error) {
	var count int64
	err := r.db.Model(&model.FormPage{}).Where("form_id = ?", formID).Count(&count).Error
	return count, err
}
