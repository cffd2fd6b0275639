package model

import "time"

// QuestionOption is the row shape shared by every type-specific option table.
// Which columns are populated depends on the question type: selectable choices
// carry Points, slider buckets carry Start/End/Points, steppers carry
// Operation, input fields carry Size/InputType, media options carry MediaURL
// and never carry points. Rows are read and written through the registry's
// option table for the question's type, never through a fixed table name.
type QuestionOption struct {
	ID         uint    `gorm:"primarykey" json:"id"`
	QuestionID uint    `json:"question_id" gorm:"not null;index"`
	Label      string  `json:"label"`
	Points     *int    `json:"points,omitempty"`
	Start      *float64 `json:"start,omitempty"`
	End        *float64 `json:"end,omitempty"`
	Operation  *string `json:"operation,omitempty"`
	Size       *string `json:"size,omitempty"`
	InputType  *string `json:"input_type,omitempty"`
	MediaURL   *string `json:"media_url,omitempty"`
	// Ranking is the display order and the tie-break for overlapping slider
	// ranges: the first declared range containing the value wins.
	Ranking   int       `json:"ranking" gorm:"not null;default:0"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
