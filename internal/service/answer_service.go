package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/careloop/formflow/internal/apperr"
	"github.com/careloop/formflow/internal/dto"
	"github.com/careloop/formflow/internal/model"
	"github.com/careloop/formflow/internal/registry"
	"github.com/careloop/formflow/internal/repository"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// AnswerService owns the answer-replace protocol for one page: validate the
// batch against the page's question list, replace the page's stored answers
// inside one transaction, score the committed set and upsert the cached page
// points.
type AnswerService interface {
	SavePageAnswers(formID, pageID uint, req dto.SavePageAnswersRequest) (*dto.SavePageAnswersResponse, error)
}

type answerService struct {
	formRepo       repository.FormRepository
	questionRepo   repository.QuestionRepository
	optionRepo     repository.OptionRepository
	answerRepo     repository.AnswerRepository
	pagePointsRepo repository.PagePointsRepository
	careRepo       repository.CareRepository
	scoring        ScoringService
	reg            *registry.Registry
	db             *gorm.DB
}

func NewAnswerService(
	formRepo repository.FormRepository,
	questionRepo repository.QuestionRepository,
	optionRepo repository.OptionRepository,
	answerRepo repository.AnswerRepository,
	pagePointsRepo repository.PagePointsRepository,
	careRepo repository.CareRepository,
	scoring ScoringService,
	reg *registry.Registry,
	db *gorm.DB,
) AnswerService {
	return &answerService{
		formRepo:       formRepo,
		questionRepo:   questionRepo,
		optionRepo:     optionRepo,
		answerRepo:     answerRepo,
		pagePointsRepo: pagePointsRepo,
		careRepo:       careRepo,
		scoring:        scoring,
		reg:            reg,
		db:             db,
	}
}

func (s *answerService) SavePageAnswers(formID, pageID uint, req dto.SavePageAnswersRequest) (*dto.SavePageAnswersResponse, error) {
	if err := s.checkScheduleEligibility(req.ScheduleID); err != nil {
		return nil, err
	}

	if _, err := s.formRepo.FindPage(formID, pageID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("form_page_not_found", "page %d not found on form %d", pageID, formID)
		}
		return nil, apperr.Internal("form_page_lookup_failed", err)
	}

	questions, err := s.questionRepo.FindByPage(formID, pageID)
	if err != nil {
		return nil, apperr.Internal("question_lookup_failed", err)
	}

	if err := validateAnswers(questions, req.Answers); err != nil {
		return nil, err
	}

	key := repository.PageKey{
		UserID:     req.UserID,
		FormID:     formID,
		FormPageID: pageID,
		SessionID:  req.SessionID,
	}

	saved, err := s.replacePageAnswers(key, req)
	if err != nil {
		log.Error().Err(err).
			Uint("formID", formID).Uint("pageID", pageID).
			Uint("userID", req.UserID).Str("sessionID", req.SessionID).
			Msg("SavePageAnswers: answer replace transaction rolled back")
		return nil, err
	}

	if err := s.scoreAndStore(key, questions, saved); err != nil {
		return nil, err
	}

	return &dto.SavePageAnswersResponse{
		Response: fmt.Sprintf("%d answers saved", len(saved)),
	}, nil
}

func (s *answerService) checkScheduleEligibility(scheduleID uint) error {
	schedule, err := s.careRepo.FindSchedule(scheduleID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound("schedule_not_found", "schedule %d not found", scheduleID)
		}
		return apperr.Internal("schedule_lookup_failed", err)
	}
	if schedule.Disabled && schedule.EndDate != nil && schedule.EndDate.Before(time.Now()) {
		return apperr.BadRequest("schedule_not_active", "schedule %d is disabled and past its end date", scheduleID)
	}
	return nil
}

// validateAnswers requires every submitted (question_id, question_type) pair
// to exist verbatim on the page. One bad answer rejects the whole batch.
func validateAnswers(questions []model.Question, answers []dto.AnswerInput) error {
	typeByID := make(map[uint]model.QuestionType, len(questions))
	for _, q := range questions {
		typeByID[q.ID] = q.Type
	}

	var invalid []string
	for _, a := range answers {
		recorded, ok := typeByID[a.QuestionID]
		if !ok {
			invalid = append(invalid, fmt.Sprintf("question %d is not on this page", a.QuestionID))
			continue
		}
		if recorded != a.QuestionType {
			invalid = append(invalid, fmt.Sprintf("question %d has type %s, not %s", a.QuestionID, recorded, a.QuestionType))
		}
	}
	if len(invalid) > 0 {
		return apperr.BadRequest("answers_reference_invalid_questions", "%d submitted answers reference invalid questions", len(invalid)).
			WithDetails(invalid...)
	}
	return nil
}

// replacePageAnswers runs the delete-then-insert protocol as one atomic unit:
// clear every type's storage for the page/session, then bulk-insert the new
// batch grouped by type. Any failure rolls the whole replace back.
func (s *answerService) replacePageAnswers(key repository.PageKey, req dto.SavePageAnswersRequest) ([]model.QuestionAnswer, error) {
	grouped := make(map[model.QuestionType][]model.QuestionAnswer)
	for _, a := range req.Answers {
		grouped[a.QuestionType] = append(grouped[a.QuestionType], model.QuestionAnswer{
			UserID:      key.UserID,
			FormID:      key.FormID,
			FormPageID:  key.FormPageID,
			QuestionID:  a.QuestionID,
			ScheduleID:  req.ScheduleID,
			SessionID:   key.SessionID,
			SessionDate: req.SessionDate,
			SessionTime: req.SessionTime,
			Answer:      a.Answer,
			OptionID:    a.OptionID,
			Value:       a.Value,
		})
	}

	var saved []model.QuestionAnswer
	err := s.db.Transaction(func(tx *gorm.DB) error {
		for _, t := range s.reg.Types() {
			if err := s.answerRepo.DeleteForPage(tx, t, key); err != nil {
				return err
			}
		}
		for t, rows := range grouped {
			inserted, err := s.answerRepo.BulkInsert(tx, t, rows)
			if err != nil {
				return err
			}
			saved = append(saved, inserted...)
		}
		return nil
	})
	if err != nil {
		if apperr.KindOf(err) == apperr.KindConfig {
			return nil, err
		}
		return nil, apperr.Internal("answer_replace_failed", err)
	}
	return saved, nil
}

// scoreAndStore computes the page total and upserts FormPagePoints. The
// read-then-write here is not guarded by a unique constraint; two racing
// submissions for the same key can each pass the read and insert (documented
// last-write-wins behavior).
func (s *answerService) scoreAndStore(key repository.PageKey, questions []model.Question, saved []model.QuestionAnswer) error {
	_, optionsByQuestion, err := loadQuestionDTOs(s.optionRepo, questions)
	if err != nil {
		return err
	}

	points := s.scoring.ComputePagePoints(questions, optionsByQuestion, saved)

	existing, err := s.pagePointsRepo.FindForPage(key)
	if err != nil {
		return apperr.Internal("page_points_lookup_failed", err)
	}
	if existing != nil {
		existing.CalculatedPoints = points
		if err := s.pagePointsRepo.Update(existing); err != nil {
			return apperr.Internal("page_points_update_failed", err)
		}
		return nil
	}
	err = s.pagePointsRepo.Create(&model.FormPagePoints{
		UserID:           key.UserID,
		FormID:           key.FormID,
		FormPageID:       key.FormPageID,
		SessionID:        key.SessionID,
		CalculatedPoints: points,
	})
	if err != nil {
		return apperr.Internal("page_points_create_failed", err)
	}
	return nil
}
