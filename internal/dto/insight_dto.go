package dto

// InsightType selects which of a treatment's forms the insight walks.
type InsightType string

const (
	InsightSession   InsightType = "SESSION"
	InsightComplaint InsightType = "COMPLAINT"
)

// InsightEntryDTO is one question's merged observation within a date:
// earned and maximum points summed across same-day occurrences.
type InsightEntryDTO struct {
	QuestionID    uint   `json:"question_id"`
	QuestionTitle string `json:"question_title"`
	Category      int    `json:"category"`
	EarnedPoints  int    `json:"earned_points"`
	MaximumPoints int    `json:"maximum_points"`
}

type InsightDateDTO struct {
	Date    string            `json:"date"` // YYYY-MM-DD
	Entries []InsightEntryDTO `json:"entries"`
}

type FormsInsightDTO struct {
	TreatmentID uint             `json:"treatment_id"`
	InsightType InsightType      `json:"insight_type"`
	Dates       []InsightDateDTO `json:"dates"`
}
