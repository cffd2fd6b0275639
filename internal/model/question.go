package model

import (
	"time"

	"gorm.io/gorm"
)

// QuestionType is the closed set of question shapes. Each type has its own
// answer and option storage, resolved through the registry.
type QuestionType string

const (
	TypeMultiSelect       QuestionType = "multi_select"
	TypeSingleSelect      QuestionType = "single_select"
	TypeMultiSelectImage  QuestionType = "multi_select_image"
	TypeSingleSelectImage QuestionType = "single_select_image"
	TypeDropdown          QuestionType = "dropdown"
	TypeCheckboxList      QuestionType = "checkbox_list"
	TypeYesNo             QuestionType = "yes_no"
	TypeYesNoUnsure       QuestionType = "yes_no_unsure"
	TypeCircularSlider    QuestionType = "circular_slider"
	TypeHorizontalSlider  QuestionType = "horizontal_slider"
	TypeStepper           QuestionType = "stepper"
	TypeStarRating        QuestionType = "star_rating"
	TypeSmileyRating      QuestionType = "smiley_rating"
	TypeEmojiSelect       QuestionType = "emoji_select"
	TypeNumberInput       QuestionType = "number_input"
	TypeTextInput         QuestionType = "text_input"
	TypeTextArea          QuestionType = "text_area"
	TypeDatePicker        QuestionType = "date_picker"
	TypeTimePicker        QuestionType = "time_picker"
	TypeDateTimePicker    QuestionType = "date_time_picker"
	TypeEmailInput        QuestionType = "email_input"
	TypePhoneNumberInput  QuestionType = "phone_number_input"
	TypeRankingList       QuestionType = "ranking_list"
	TypePercentageSlider  QuestionType = "percentage_slider"
	TypeImageUpload       QuestionType = "image_upload"
	TypeAudioUpload       QuestionType = "audio_upload"
	TypeVideoUpload       QuestionType = "video_upload"
	TypeAudioPlayback     QuestionType = "audio_playback"
	TypeVideoPlayback     QuestionType = "video_playback"
	TypeBodyMap           QuestionType = "body_map"
)

// PointsCalculationType selects the scoring strategy for a question.
// It is fixed per question; answers never override it.
type PointsCalculationType string

const (
	PointsQuestionLevel PointsCalculationType = "QUESTION_LEVEL"
	PointsOptionsLevel  PointsCalculationType = "OPTIONS_LEVEL"
	PointsNone          PointsCalculationType = "NO_POINTS"
)

type Question struct {
	ID                    uint                  `gorm:"primarykey" json:"id"`
	FormID                uint                  `json:"form_id" gorm:"not null;index"`
	FormPageID            uint                  `json:"form_page_id" gorm:"not null;index"`
	Title                 string                `json:"title" gorm:"not null"`
	Type                  QuestionType          `json:"type" gorm:"not null"`
	PointsCalculationType PointsCalculationType `json:"points_calculation_type" gorm:"not null;default:'NO_POINTS'"`
	Points                *int                  `json:"points,omitempty"`
	// Ranking orders questions on a page and doubles as the insight category (1..7).
	Ranking     int            `json:"ranking" gorm:"not null"`
	Validations *string        `json:"validations,omitempty" gorm:"type:text"` // JSON blob authored with the question
	MediaURL    *string        `json:"media_url,omitempty"`
	ToolkitID   *uint          `json:"toolkit_id,omitempty" gorm:"index"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}
