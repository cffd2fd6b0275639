package service

import (
	"errors"
	"sort"

	"github.com/careloop/formflow/internal/apperr"
	"github.com/careloop/formflow/internal/dto"
	"github.com/careloop/formflow/internal/model"
	"github.com/careloop/formflow/internal/repository"
	"gorm.io/gorm"
)

const maxInsightCategories = 7

// InsightService builds the cross-session trend view: every appointment
// occurrence's form submission re-scored per question, tagged with the
// appointment's calendar date and the question's category, then merged
// per date and per question.
type InsightService interface {
	GetAppointmentFormsInsight(treatmentID uint, insightType dto.InsightType, userID uint, categories []int) (*dto.FormsInsightDTO, error)
}

type insightService struct {
	questionRepo repository.QuestionRepository
	optionRepo   repository.OptionRepository
	answerRepo   repository.AnswerRepository
	ufaRepo      repository.UserFormAnswerRepository
	careRepo     repository.CareRepository
	scoring      ScoringService
}

func NewInsightService(
	questionRepo repository.QuestionRepository,
	optionRepo repository.OptionRepository,
	answerRepo repository.AnswerRepository,
	ufaRepo repository.UserFormAnswerRepository,
	careRepo repository.CareRepository,
	scoring ScoringService,
) InsightService {
	return &insightService{
		questionRepo: questionRepo,
		optionRepo:   optionRepo,
		answerRepo:   answerRepo,
		ufaRepo:      ufaRepo,
		careRepo:     careRepo,
		scoring:      scoring,
	}
}

func (s *insightService) GetAppointmentFormsInsight(treatmentID uint, insightType dto.InsightType, userID uint, categories []int) (*dto.FormsInsightDTO, error) {
	categoryFilter, err := normalizeCategories(categories)
	if err != nil {
		return nil, err
	}

	treatment, err := s.careRepo.FindTreatment(treatmentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("treatment_not_found", "treatment %d not found", treatmentID)
		}
		return nil, apperr.Internal("treatment_lookup_failed", err)
	}

	formID, err := insightFormID(treatment, insightType)
	if err != nil {
		return nil, err
	}

	questions, err := s.questionRepo.FindByForm(formID)
	if err != nil {
		return nil, apperr.Internal("question_lookup_failed", err)
	}
	_, optionsByQuestion, err := loadQuestionDTOs(s.optionRepo, questions)
	if err != nil {
		return nil, err
	}

	questionMap := make(map[uint]*model.Question, len(questions))
	byType := make(map[model.QuestionType][]uint)
	for i := range questions {
		questionMap[questions[i].ID] = &questions[i]
		byType[questions[i].Type] = append(byType[questions[i].Type], questions[i].ID)
	}

	appointments, err := s.careRepo.FindAppointmentsByTreatment(treatmentID)
	if err != nil {
		return nil, apperr.Internal("appointment_lookup_failed", err)
	}

	// date → question id → merged entry
	merged := make(map[string]map[uint]*dto.InsightEntryDTO)
	for i := range appointments {
		appt := &appointments[i]
		ufa, err := s.ufaRepo.FindByAppointment(formID, userID, appt.ID)
		if err != nil {
			return nil, apperr.Internal("user_form_answer_lookup_failed", err)
		}
		if ufa == nil {
			// Appointment without a submission contributes nothing.
			continue
		}
		date := appt.StartsAt.Format("2006-01-02")
		if err := s.accumulate(merged, date, ufa.SessionID, userID, byType, questionMap, optionsByQuestion); err != nil {
			return nil, err
		}
	}

	return &dto.FormsInsightDTO{
		TreatmentID: treatmentID,
		InsightType: insightType,
		Dates:       flatten(merged, categoryFilter),
	}, nil
}

// normalizeCategories de-duplicates the requested categories before checking
// the bound, so repeating the same category does not trip the limit. nil
// means no filtering.
func normalizeCategories(categories []int) (map[int]bool, error) {
	if len(categories) == 0 {
		return nil, nil
	}
	distinct := make(map[int]bool)
	for _, c := range categories {
		distinct[c] = true
	}
	if len(distinct) > maxInsightCategories {
		return nil, apperr.BadRequest("insight_category_limit_exceeded", "at most %d categories may be requested, got %d", maxInsightCategories, len(distinct))
	}
	return distinct, nil
}

func insightFormID(treatment *model.Treatment, insightType dto.InsightType) (uint, error) {
	switch insightType {
	case dto.InsightSession:
		if treatment.SessionFormID == nil {
			return 0, apperr.NotFound("treatment_has_no_session_form", "treatment %d has no session form", treatment.ID)
		}
		return *treatment.SessionFormID, nil
	case dto.InsightComplaint:
		if treatment.ComplaintFormID == nil {
			return 0, apperr.NotFound("treatment_has_no_complaint_form", "treatment %d has no complaint form", treatment.ID)
		}
		return *treatment.ComplaintFormID, nil
	}
	return 0, apperr.BadRequest("insight_type_invalid", "unknown insight type %q", insightType)
}

// accumulate folds one session's answers into the per-date map. Repeated
// observations of the same question on the same date sum their earned and
// maximum points.
func (s *insightService) accumulate(
	merged map[string]map[uint]*dto.InsightEntryDTO,
	date, sessionID string,
	userID uint,
	byType map[model.QuestionType][]uint,
	questionMap map[uint]*model.Question,
	optionsByQuestion map[uint][]model.QuestionOption,
) error {
	for t, ids := range byType {
		answers, err := s.answerRepo.FindForQuestions(t, userID, sessionID, ids)
		if err != nil {
			if apperr.KindOf(err) == apperr.KindConfig {
				return err
			}
			return apperr.Internal("answer_lookup_failed", err)
		}
		for i := range answers {
			question, ok := questionMap[answers[i].QuestionID]
			if !ok {
				continue
			}
			options := optionsByQuestion[question.ID]
			earned := s.scoring.EarnedPoints(question, options, &answers[i])
			maximum := s.scoring.MaxPoints(question, options)

			if merged[date] == nil {
				merged[date] = make(map[uint]*dto.InsightEntryDTO)
			}
			entry, ok := merged[date][question.ID]
			if !ok {
				merged[date][question.ID] = &dto.InsightEntryDTO{
					QuestionID:    question.ID,
					QuestionTitle: question.Title,
					Category:      question.Ranking,
					EarnedPoints:  earned,
					MaximumPoints: maximum,
				}
				continue
			}
			entry.EarnedPoints += earned
			entry.MaximumPoints += maximum
		}
	}
	return nil
}

func flatten(merged map[string]map[uint]*dto.InsightEntryDTO, categoryFilter map[int]bool) []dto.InsightDateDTO {
	dates := make([]string, 0, len(merged))
	for date := range merged {
		dates = append(dates, date)
	}
	sort.Strings(dates)

	out := make([]dto.InsightDateDTO, 0, len(dates))
	for _, date := range dates {
		entries := make([]dto.InsightEntryDTO, 0, len(merged[date]))
		for _, entry := range merged[date] {
			if categoryFilter != nil && !categoryFilter[entry.Category] {
				continue
			}
			entries = append(entries, *entry)
		}
		if len(entries) == 0 {
			continue
		}
		sort.Slice(entries, func(i, j int) bool {
			if entries[i].Category != entries[j].Category {
				return entries[i].Category < entries[j].Category
			}
			return entries[i].QuestionID < entries[j].QuestionID
		})
		out = append(out, dto.InsightDateDTO{Date: date, Entries: entries})
	}
	return out
}
