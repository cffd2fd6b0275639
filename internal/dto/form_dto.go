package dto

import (
	"time"

	"github.com/careloop/formflow/internal/model"
)

type FormDTO struct {
	ID              uint      `json:"id"`
	Title           string    `json:"title"`
	Description     string    `json:"description,omitempty"`
	HlpPoints       int       `json:"hlp_points"`
	ShowResultsPage bool      `json:"show_results_page"`
	CreatedAt       time.Time `json:"created_at"`
}

// FormInfoDTO is the entry point for a client starting a form: the form, its
// first page, the page count and a fresh session id the client carries
// through every page submission.
type FormInfoDTO struct {
	Form        FormDTO `json:"form"`
	FirstPageID uint    `json:"first_page_id"`
	TotalPages  int     `json:"total_pages"`
	SessionID   string  `json:"session_id"`
}

type PageDTO struct {
	ID     uint   `json:"id"`
	FormID uint   `json:"form_id"`
	Title  string `json:"title"`
}

type OptionDTO struct {
	ID         uint     `json:"id"`
	QuestionID uint     `json:"question_id"`
	Label      string   `json:"label"`
	Points     *int     `json:"points,omitempty"`
	Start      *float64 `json:"start,omitempty"`
	End        *float64 `json:"end,omitempty"`
	Operation  *string  `json:"operation,omitempty"`
	Size       *string  `json:"size,omitempty"`
	InputType  *string  `json:"input_type,omitempty"`
	MediaURL   *string  `json:"media_url,omitempty"`
	Ranking    int      `json:"ranking"`
	// IsSelected is only meaningful on history reads; page reads leave it false.
	IsSelected bool `json:"is_selected"`
}

type QuestionDTO struct {
	ID                    uint                        `json:"id"`
	FormID                uint                        `json:"form_id"`
	FormPageID            uint                        `json:"form_page_id"`
	Title                 string                      `json:"title"`
	Type                  model.QuestionType          `json:"type"`
	PointsCalculationType model.PointsCalculationType `json:"points_calculation_type"`
	Points                *int                        `json:"points,omitempty"`
	Ranking               int                         `json:"ranking"`
	Validations           *string                     `json:"validations,omitempty"`
	MediaURL              *string                     `json:"media_url,omitempty"`
	ToolkitID             *uint                       `json:"toolkit_id,omitempty"`
	Options               []OptionDTO                 `json:"options,omitempty"`
}

type PageQuestionsDTO struct {
	Page       PageDTO       `json:"page"`
	NextPageID *uint         `json:"next_page_id,omitempty"`
	Questions  []QuestionDTO `json:"questions"`
}
