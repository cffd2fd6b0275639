package model

import "time"

// QuestionAnswer is the row shape shared by every type-specific answer table.
// Exactly one payload field is meaningful per type: OptionID for discrete
// choices, Value for sliders/steppers/ratings, Answer for free text (or, for
// some legacy clients, the chosen option id rendered as text). Rows live in
// the registry's answer table for the question's type.
type QuestionAnswer struct {
	ID          uint   `gorm:"primarykey" json:"id"`
	UserID      uint   `json:"user_id" gorm:"not null;index:idx_answer_session"`
	FormID      uint   `json:"form_id" gorm:"not null;index:idx_answer_session"`
	FormPageID  uint   `json:"form_page_id" gorm:"not null;index:idx_answer_session"`
	QuestionID  uint   `json:"question_id" gorm:"not null;index"`
	ScheduleID  uint   `json:"schedule_id" gorm:"not null"`
	SessionID   string `json:"session_id" gorm:"not null;index:idx_answer_session"`
	SessionDate string `json:"session_date" gorm:"not null"` // YYYY-MM-DD, caller supplied
	SessionTime string `json:"session_time" gorm:"not null"` // HH:MM, caller supplied
	Answer      string `json:"answer,omitempty" gorm:"type:text"`
	OptionID    *uint  `json:"option_id,omitempty"`
	Value       *float64 `json:"value,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
