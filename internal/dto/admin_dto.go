package dto

import "github.com/careloop/formflow/internal/model"

// OptionCreateDTO is used within FormCreateDTO. Which fields are required
// depends on the question type and is validated against the registry.
type OptionCreateDTO struct {
	Label     string   `json:"label"`
	Points    *int     `json:"points"`
	Start     *float64 `json:"start"`
	End       *float64 `json:"end"`
	Operation *string  `json:"operation"`
	Size      *string  `json:"size"`
	InputType *string  `json:"input_type"`
	MediaURL  *string  `json:"media_url"`
	Ranking   int      `json:"ranking"`
}

type QuestionCreateDTO struct {
	Title                 string                      `json:"title" binding:"required"`
	Type                  model.QuestionType          `json:"type" binding:"required"`
	PointsCalculationType model.PointsCalculationType `json:"points_calculation_type" binding:"required,oneof=QUESTION_LEVEL OPTIONS_LEVEL NO_POINTS"`
	Points                *int                        `json:"points"`
	Ranking               int                         `json:"ranking" binding:"required,min=1"`
	Validations           *string                     `json:"validations"`
	MediaURL              *string                     `json:"media_url"`
	ToolkitID             *uint                       `json:"toolkit_id"`
	Options               []OptionCreateDTO           `json:"options" binding:"omitempty,dive"`
}

type PageCreateDTO struct {
	Title     string              `json:"title" binding:"required"`
	Questions []QuestionCreateDTO `json:"questions" binding:"required,min=1,dive"`
}

// FormCreateDTO is the content-tooling surface: a whole form with its pages,
// questions and per-type options in one request.
type FormCreateDTO struct {
	Title           string          `json:"title" binding:"required"`
	Description     string          `json:"description"`
	HlpPoints       int             `json:"hlp_points" binding:"min=0"`
	ShowResultsPage bool            `json:"show_results_page"`
	Pages           []PageCreateDTO `json:"pages" binding:"required,min=1,dive"`
}

type ErrorResponse struct {
	Message string   `json:"message"`
	Key     string   `json:"key,omitempty"`
	Details []string `json:"details,omitempty"`
}
