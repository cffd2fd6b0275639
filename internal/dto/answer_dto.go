package dto

import "github.com/careloop/formflow/internal/model"

// AnswerInput is one submitted answer, tagged with its question's type so the
// persistence layer can route it to the right storage. Exactly one payload
// field is expected per type.
type AnswerInput struct {
	QuestionID   uint               `json:"question_id" binding:"required"`
	QuestionType model.QuestionType `json:"question_type" binding:"required"`
	Answer       string             `json:"answer,omitempty"`
	OptionID     *uint              `json:"option_id,omitempty"`
	Value        *float64           `json:"value,omitempty"`
}

// SavePageAnswersRequest replaces a page's answers for one session.
type SavePageAnswersRequest struct {
	UserID      uint          `json:"user_id" binding:"required"`
	ScheduleID  uint          `json:"schedule_id" binding:"required"`
	SessionID   string        `json:"session_id" binding:"required,uuid"`
	SessionDate string        `json:"session_date" binding:"required"`
	SessionTime string        `json:"session_time" binding:"required"`
	Answers     []AnswerInput `json:"answers" binding:"required,min=1,dive"`
}

type SavePageAnswersResponse struct {
	Response string `json:"response"`
}

// SaveUserFormAnswersRequest marks a whole form as completed for a session.
// Exactly one of ToolkitEpisodeID / AppointmentID may be set.
type SaveUserFormAnswersRequest struct {
	UserID           uint   `json:"user_id" binding:"required"`
	SessionID        string `json:"session_id" binding:"required,uuid"`
	SessionDate      string `json:"session_date" binding:"required"`
	SessionTime      string `json:"session_time" binding:"required"`
	ToolkitEpisodeID *uint  `json:"toolkit_episode_id,omitempty"`
	AppointmentID    *uint  `json:"appointment_id,omitempty"`
}

type UserFormAnswerDTO struct {
	ID               uint   `json:"id"`
	FormID           uint   `json:"form_id"`
	UserID           uint   `json:"user_id"`
	SessionID        string `json:"session_id"`
	SessionDate      string `json:"session_date"`
	SessionTime      string `json:"session_time"`
	HlpPointsEarned  int    `json:"hlp_points_earned"`
	ToolkitEpisodeID *uint  `json:"toolkit_episode_id,omitempty"`
	AppointmentID    *uint  `json:"appointment_id,omitempty"`
}

type SaveUserFormAnswersResponse struct {
	UserFormAnswer  UserFormAnswerDTO `json:"user_form_answer"`
	ShowResultsPage bool              `json:"show_results_page"`
}
