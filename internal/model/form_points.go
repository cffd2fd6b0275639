package model

import (
	"time"

	"gorm.io/gorm"
)

// FormPagePoints caches the computed score for one page/session/user.
// Uniqueness of (user, form, page, session) is enforced by read-then-upsert
// in the scoring path, not by a database constraint; two racing submissions
// for the same key can leave a duplicate row (last-write-wins behavior kept
// for compatibility with existing data).
type FormPagePoints struct {
	ID               uint      `gorm:"primarykey" json:"id"`
	UserID           uint      `json:"user_id" gorm:"not null;index:idx_page_points_session"`
	FormID           uint      `json:"form_id" gorm:"not null;index:idx_page_points_session"`
	FormPageID       uint      `json:"form_page_id" gorm:"not null;index:idx_page_points_session"`
	SessionID        string    `json:"session_id" gorm:"not null;index:idx_page_points_session"`
	CalculatedPoints int       `json:"calculated_points" gorm:"not null;default:0"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// UserFormAnswer marks a whole form as completed for a session. At most one
// row may exist per (form, user, session); a second full-form submission for
// the same session is rejected.
type UserFormAnswer struct {
	ID               uint           `gorm:"primarykey" json:"id"`
	FormID           uint           `json:"form_id" gorm:"not null;index"`
	UserID           uint           `json:"user_id" gorm:"not null;index"`
	SessionID        string         `json:"session_id" gorm:"not null;index"`
	SessionDate      string         `json:"session_date" gorm:"not null"`
	SessionTime      string         `json:"session_time" gorm:"not null"`
	HlpPointsEarned  int            `json:"hlp_points_earned" gorm:"not null;default:0"`
	ToolkitEpisodeID *uint          `json:"toolkit_episode_id,omitempty" gorm:"index"`
	AppointmentID    *uint          `json:"appointment_id,omitempty" gorm:"index"`
	CreatedAt        time.Time      `json:"created_at"`
	UpdatedAt        time.Time      `json:"updated_at"`
	DeletedAt        gorm.DeletedAt `gorm:"index" json:"-"`
}

// FormSubmitPageInfo is an authored scoring bracket: totals falling inside
// [MinPoints, MaxPoints] resolve to its message and recommended follow-up.
type FormSubmitPageInfo struct {
	ID                uint      `gorm:"primarykey" json:"id"`
	FormID            uint      `json:"form_id" gorm:"not null;index"`
	MinPoints         int       `json:"min_points" gorm:"not null"`
	MaxPoints         int       `json:"max_points" gorm:"not null"`
	Title             string    `json:"title"`
	Message           string    `json:"message" gorm:"type:text"`
	RecommendedItemID *uint     `json:"recommended_item_id,omitempty"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}
