package registry

import (
	"github.com/careloop/formflow/internal/apperr"
	"github.com/careloop/formflow/internal/model"
)

// Store names the two tables a question type persists into.
type Store struct {
	AnswerTable string
	OptionTable string
}

// Registry is the immutable question type → storage map. It is built once at
// startup and injected; an unmapped type is a configuration defect, never a
// user-facing condition.
type Registry struct {
	stores map[model.QuestionType]Store
	order  []model.QuestionType
}

// New returns the full registry covering every question type.
func New() *Registry {
	return FromStores(map[model.QuestionType]Store{
		model.TypeMultiSelect:       {"multi_select_answers", "multi_select_options"},
		model.TypeSingleSelect:      {"single_select_answers", "single_select_options"},
		model.TypeMultiSelectImage:  {"multi_select_image_answers", "multi_select_image_options"},
		model.TypeSingleSelectImage: {"single_select_image_answers", "single_select_image_options"},
		model.TypeDropdown:          {"dropdown_answers", "dropdown_options"},
		model.TypeCheckboxList:      {"checkbox_list_answers", "checkbox_list_options"},
		model.TypeYesNo:             {"yes_no_answers", "yes_no_options"},
		model.TypeYesNoUnsure:       {"yes_no_unsure_answers", "yes_no_unsure_options"},
		model.TypeCircularSlider:    {"circular_slider_answers", "circular_slider_options"},
		model.TypeHorizontalSlider:  {"horizontal_slider_answers", "horizontal_slider_options"},
		model.TypeStepper:           {"stepper_answers", "stepper_options"},
		model.TypeStarRating:        {"star_rating_answers", "star_rating_options"},
		model.TypeSmileyRating:      {"smiley_rating_answers", "smiley_rating_options"},
		model.TypeEmojiSelect:       {"emoji_select_answers", "emoji_select_options"},
		model.TypeNumberInput:       {"number_input_answers", "number_input_options"},
		model.TypeTextInput:         {"text_input_answers", "text_input_options"},
		model.TypeTextArea:          {"text_area_answers", "text_area_options"},
		model.TypeDatePicker:        {"date_picker_answers", "date_picker_options"},
		model.TypeTimePicker:        {"time_picker_answers", "time_picker_options"},
		model.TypeDateTimePicker:    {"date_time_picker_answers", "date_time_picker_options"},
		model.TypeEmailInput:        {"email_input_answers", "email_input_options"},
		model.TypePhoneNumberInput:  {"phone_number_input_answers", "phone_number_input_options"},
		model.TypeRankingList:       {"ranking_list_answers", "ranking_list_options"},
		model.TypePercentageSlider:  {"percentage_slider_answers", "percentage_slider_options"},
		model.TypeImageUpload:       {"image_upload_answers", "image_upload_options"},
		model.TypeAudioUpload:       {"audio_upload_answers", "audio_upload_options"},
		model.TypeVideoUpload:       {"video_upload_answers", "video_upload_options"},
		model.TypeAudioPlayback:     {"audio_playback_answers", "audio_playback_options"},
		model.TypeVideoPlayback:     {"video_playback_answers", "video_playback_options"},
		model.TypeBodyMap:           {"body_map_answers", "body_map_options"},
	})
}

// FromStores builds a registry from an explicit map. Tests use it to run the
// generic paths against a reduced type set.
func FromStores(stores map[model.QuestionType]Store) *Registry {
	r := &Registry{stores: make(map[model.QuestionType]Store, len(stores))}
	for t, s := range stores {
		r.stores[t] = s
		r.order = append(r.order, t)
	}
	return r
}

func (r *Registry) AnswerTable(t model.QuestionType) (string, error) {
	s, ok := r.stores[t]
	if !ok {
		return "", apperr.Configf("question_type_unmapped", "no answer storage registered for question type %q", t)
	}
	return s.AnswerTable, nil
}

func (r *Registry) OptionTable(t model.QuestionType) (string, error) {
	s, ok := r.stores[t]
	if !ok {
		return "", apperr.Configf("question_type_unmapped", "no option storage registered for question type %q", t)
	}
	return s.OptionTable, nil
}

// Types returns every registered question type. Order is not significant.
func (r *Registry) Types() []model.QuestionType {
	out := make([]model.QuestionType, len(r.order))
	copy(out, r.order)
	return out
}

// Known reports whether the type has a registry entry.
func (r *Registry) Known(t model.QuestionType) bool {
	_, ok := r.stores[t]
	return ok
}

// IsRangeType reports whether scoring matches the numeric answer value
// against option [start, end] buckets instead of resolving an option id.
func IsRangeType(t model.QuestionType) bool {
	return t == model.TypeCircularSlider || t == model.TypeHorizontalSlider
}

// IsMediaType reports whether the type carries a media payload and is never
// scored at options level.
func IsMediaType(t model.QuestionType) bool {
	switch t {
	case model.TypeImageUpload, model.TypeAudioUpload, model.TypeVideoUpload,
		model.TypeAudioPlayback, model.TypeVideoPlayback:
		return true
	}
	return false
}

// IsFreeTextType reports whether the answer payload is free text rather than
// an option reference or numeric value.
func IsFreeTextType(t model.QuestionType) bool {
	switch t {
	case model.TypeTextInput, model.TypeTextArea, model.TypeEmailInput,
		model.TypePhoneNumberInput, model.TypeDatePicker, model.TypeTimePicker,
		model.TypeDateTimePicker:
		return true
	}
	return false
}
