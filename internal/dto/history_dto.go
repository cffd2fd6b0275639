package dto

import "github.com/careloop/formflow/internal/model"

// HistoryAnswerDTO is the tagged variant a history read returns: the
// question type discriminates which payload field carries the answer.
type HistoryAnswerDTO struct {
	ID           uint               `json:"id"`
	QuestionID   uint               `json:"question_id"`
	QuestionType model.QuestionType `json:"question_type"`
	Answer       string             `json:"answer,omitempty"`
	OptionID     *uint              `json:"option_id,omitempty"`
	Value        *float64           `json:"value,omitempty"`
	SessionDate  string             `json:"session_date"`
	SessionTime  string             `json:"session_time"`
}

// HistoryQuestionDTO carries one question with its resolved answers and its
// options annotated with selection state for the requested session.
type HistoryQuestionDTO struct {
	Question QuestionDTO        `json:"question"`
	Answers  []HistoryAnswerDTO `json:"answers"`
}

type FormHistoryDTO struct {
	Form      FormDTO              `json:"form"`
	Page      PageDTO              `json:"page"`
	SessionID string               `json:"session_id"`
	Questions []HistoryQuestionDTO `json:"questions"`
}
