package service

import (
	"strconv"

	"github.com/careloop/formflow/internal/model"
	"github.com/careloop/formflow/internal/registry"
)

// ScoringService computes page points from committed answers and
// question/option metadata. It never errors on an unmatched answer; those
// contribute zero.
type ScoringService interface {
	// ComputePagePoints sums every answer's contribution for one page.
	// Options are keyed by question id, in declaration (ranking) order.
	ComputePagePoints(questions []model.Question, options map[uint][]model.QuestionOption, answers []model.QuestionAnswer) int
	// EarnedPoints is one answer's contribution.
	EarnedPoints(question *model.Question, options []model.QuestionOption, answer *model.QuestionAnswer) int
	// MaxPoints is the most a single answer to the question can earn: the
	// fixed question points, or the highest-points option for OPTIONS_LEVEL.
	// Note this intentionally differs from range scoring, which takes the
	// first matching range rather than the highest-points one.
	MaxPoints(question *model.Question, options []model.QuestionOption) int
}

type scoringService struct{}

func NewScoringService() ScoringService {
	return &scoringService{}
}

func (s *scoringService) ComputePagePoints(questions []model.Question, options map[uint][]model.QuestionOption, answers []model.QuestionAnswer) int {
	questionMap := make(map[uint]*model.Question, len(questions))
	for i := range questions {
		questionMap[questions[i].ID] = &questions[i]
	}

	total := 0
	for i := range answers {
		question, ok := questionMap[answers[i].QuestionID]
		if !ok {
			continue
		}
		total += s.EarnedPoints(question, options[question.ID], &answers[i])
	}
	return total
}

func (s *scoringService) EarnedPoints(question *model.Question, options []model.QuestionOption, answer *model.QuestionAnswer) int {
	switch question.PointsCalculationType {
	case model.PointsQuestionLevel:
		if question.Points != nil {
			return *question.Points
		}
		return 0
	case model.PointsOptionsLevel:
		if registry.IsRangeType(question.Type) {
			return rangePoints(options, answer)
		}
		return optionPoints(options, answer)
	}
	return 0
}

func (s *scoringService) MaxPoints(question *model.Question, options []model.QuestionOption) int {
	switch question.PointsCalculationType {
	case model.PointsQuestionLevel:
		if question.Points != nil {
			return *question.Points
		}
		return 0
	case model.PointsOptionsLevel:
		max := 0
		for i := range options {
			if options[i].Points != nil && *options[i].Points > max {
				max = *options[i].Points
			}
		}
		return max
	}
	return 0
}

// rangePoints matches the numeric answer value against [start, end] buckets.
// The first declared range containing the value wins; overlapping ranges
// resolve by declaration order, which is a documented policy.
func rangePoints(options []model.QuestionOption, answer *model.QuestionAnswer) int {
	value, ok := numericValue(answer)
	if !ok {
		return 0
	}
	for i := range options {
		opt := &options[i]
		if opt.Start == nil || opt.End == nil {
			continue
		}
		if value >= *opt.Start && value <= *opt.End {
			if opt.Points != nil {
				return *opt.Points
			}
			return 0
		}
	}
	return 0
}

// optionPoints resolves the chosen option id, carried either in option_id or
// as the answer text, and adds its points if it has any.
func optionPoints(options []model.QuestionOption, answer *model.QuestionAnswer) int {
	optionID, ok := resolveOptionID(answer)
	if !ok {
		return 0
	}
	for i := range options {
		if options[i].ID == optionID {
			if options[i].Points != nil {
				return *options[i].Points
			}
			return 0
		}
	}
	return 0
}

func numericValue(answer *model.QuestionAnswer) (float64, bool) {
	if answer.Value != nil {
		return *answer.Value, true
	}
	if answer.Answer == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(answer.Answer, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

func resolveOptionID(answer *model.QuestionAnswer) (uint, bool) {
	if answer.OptionID != nil {
		return *answer.OptionID, true
	}
	if answer.Answer == "" {
		return 0, false
	}
	id, err := strconv.ParseUint(answer.Answer, 10, 32)
	if err != nil {
		return 0, false
	}
	return uint(id), true
}
