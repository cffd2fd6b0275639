package model

import (
	"time"

	"gorm.io/gorm"
)

type Form struct {
	ID          uint   `gorm:"primarykey" json:"id"`
	Title       string `json:"title" gorm:"not null"`
	Description string `json:"description,omitempty" gorm:"type:text"`
	// HlpPoints is the fixed reward copied onto UserFormAnswer at submit time.
	HlpPoints       int            `json:"hlp_points" gorm:"not null;default:0"`
	ShowResultsPage bool           `json:"show_results_page" gorm:"not null;default:false"`
	Pages           []FormPage     `json:"pages,omitempty" gorm:"foreignKey:FormID"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`
}

// FormPage ordering within a form is its creation timestamp; there is no
// separate order column.
type FormPage struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	FormID    uint           `json:"form_id" gorm:"not null;index"`
	Title     string         `json:"title" gorm:"not null"`
	Questions []Question     `json:"questions,omitempty" gorm:"foreignKey:FormPageID"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
