package dto

// BracketDTO is the results-page bracket the total resolved into.
type BracketDTO struct {
	Title             string `json:"title"`
	Message           string `json:"message"`
	RecommendedItemID *uint  `json:"recommended_item_id,omitempty"`
}

type FormResultDTO struct {
	FormID      uint        `json:"form_id"`
	SessionID   string      `json:"session_id"`
	TotalPoints int         `json:"total_points"`
	Bracket     *BracketDTO `json:"bracket,omitempty"`
}
