package service

import (
	"errors"
	"fmt"

	"github.com/careloop/formflow/internal/apperr"
	"github.com/careloop/formflow/internal/dto"
	"github.com/careloop/formflow/internal/events"
	"github.com/careloop/formflow/internal/model"
	"github.com/careloop/formflow/internal/repository"
	"github.com/jinzhu/copier"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// FormResultService closes out a session: the one-shot full-form completion
// marker and the results-page read built from cached page points.
type FormResultService interface {
	SaveUserFormAnswers(formID uint, req dto.SaveUserFormAnswersRequest) (*dto.SaveUserFormAnswersResponse, error)
	GetFormResult(userFormAnswerID uint, locale string) (*dto.FormResultDTO, error)
}

type formResultService struct {
	formRepo       repository.FormRepository
	ufaRepo        repository.UserFormAnswerRepository
	pagePointsRepo repository.PagePointsRepository
	bracketRepo    repository.SubmitPageInfoRepository
	careRepo       repository.CareRepository
	translator     Translator
	publisher      events.Publisher
}

func NewFormResultService(
	formRepo repository.FormRepository,
	ufaRepo repository.UserFormAnswerRepository,
	pagePointsRepo repository.PagePointsRepository,
	bracketRepo repository.SubmitPageInfoRepository,
	careRepo repository.CareRepository,
	translator Translator,
	publisher events.Publisher,
) FormResultService {
	return &formResultService{
		formRepo:       formRepo,
		ufaRepo:        ufaRepo,
		pagePointsRepo: pagePointsRepo,
		bracketRepo:    bracketRepo,
		careRepo:       careRepo,
		translator:     translator,
		publisher:      publisher,
	}
}

func (s *formResultService) SaveUserFormAnswers(formID uint, req dto.SaveUserFormAnswersRequest) (*dto.SaveUserFormAnswersResponse, error) {
	if req.ToolkitEpisodeID != nil && req.AppointmentID != nil {
		return nil, apperr.BadRequest("form_answer_context_invalid", "toolkit episode and appointment contexts are mutually exclusive")
	}

	form, err := s.formRepo.FindByID(formID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("form_not_found", "form %d not found", formID)
		}
		return nil, apperr.Internal("form_lookup_failed", err)
	}

	exists, err := s.careRepo.UserExists(req.UserID)
	if err != nil {
		return nil, apperr.Internal("user_lookup_failed", err)
	}
	if !exists {
		return nil, apperr.NotFound("user_not_found", "user %d not found", req.UserID)
	}

	if err := s.checkContext(req); err != nil {
		return nil, err
	}

	// Hard gate: one full-form submission per session.
	existing, err := s.ufaRepo.FindBySession(formID, req.UserID, req.SessionID)
	if err != nil {
		return nil, apperr.Internal("user_form_answer_lookup_failed", err)
	}
	if existing != nil {
		return nil, apperr.BadRequest("form_already_submitted", "form %d already submitted for session %s", formID, req.SessionID)
	}

	ufa := model.UserFormAnswer{
		FormID:           formID,
		UserID:           req.UserID,
		SessionID:        req.SessionID,
		SessionDate:      req.SessionDate,
		SessionTime:      req.SessionTime,
		HlpPointsEarned:  form.HlpPoints,
		ToolkitEpisodeID: req.ToolkitEpisodeID,
		AppointmentID:    req.AppointmentID,
	}
	if err := s.ufaRepo.Create(&ufa); err != nil {
		log.Error().Err(err).Uint("formID", formID).Str("sessionID", req.SessionID).Msg("SaveUserFormAnswers: create failed")
		return nil, apperr.Internal("user_form_answer_create_failed", err)
	}

	s.publisher.PublishFormCompleted(events.FormCompleted{
		UserFormAnswerID: ufa.ID,
		FormID:           formID,
		UserID:           req.UserID,
		SessionID:        req.SessionID,
		HlpPointsEarned:  ufa.HlpPointsEarned,
	})

	var ufaDTO dto.UserFormAnswerDTO
	if err := copier.Copy(&ufaDTO, &ufa); err != nil {
		return nil, apperr.Internal("user_form_answer_mapping_failed", err)
	}
	return &dto.SaveUserFormAnswersResponse{
		UserFormAnswer:  ufaDTO,
		ShowResultsPage: form.ShowResultsPage,
	}, nil
}

func (s *formResultService) checkContext(req dto.SaveUserFormAnswersRequest) error {
	if req.ToolkitEpisodeID != nil {
		if _, err := s.careRepo.FindToolkitEpisode(*req.ToolkitEpisodeID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.NotFound("toolkit_episode_not_found", "toolkit episode %d not found", *req.ToolkitEpisodeID)
			}
			return apperr.Internal("toolkit_episode_lookup_failed", err)
		}
	}
	if req.AppointmentID != nil {
		if _, err := s.careRepo.FindAppointment(*req.AppointmentID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.NotFound("appointment_not_found", "appointment %d not found", *req.AppointmentID)
			}
			return apperr.Internal("appointment_lookup_failed", err)
		}
	}
	return nil
}

func (s *formResultService) GetFormResult(userFormAnswerID uint, locale string) (*dto.FormResultDTO, error) {
	ufa, err := s.ufaRepo.FindByID(userFormAnswerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("user_form_answer_not_found", "user form answer %d not found", userFormAnswerID)
		}
		return nil, apperr.Internal("user_form_answer_lookup_failed", err)
	}

	// The cached page points are the authoritative total; raw answers are
	// never re-scored here.
	total, err := s.pagePointsRepo.SumForSession(ufa.UserID, ufa.FormID, ufa.SessionID)
	if err != nil {
		return nil, apperr.Internal("page_points_sum_failed", err)
	}

	result := &dto.FormResultDTO{
		FormID:      ufa.FormID,
		SessionID:   ufa.SessionID,
		TotalPoints: total,
	}

	bracket, err := s.bracketRepo.FindBracket(ufa.FormID, total)
	if err != nil {
		return nil, apperr.Internal("bracket_lookup_failed", err)
	}
	if bracket == nil {
		// A form without results-page content is legitimate.
		return result, nil
	}

	result.Bracket = &dto.BracketDTO{
		Title:             s.translator.Translate(locale, bracketKey(bracket.ID, "title"), bracket.Title),
		Message:           s.translator.Translate(locale, bracketKey(bracket.ID, "message"), bracket.Message),
		RecommendedItemID: bracket.RecommendedItemID,
	}
	return result, nil
}

func bracketKey(id uint, field string) string {
	return fmt.Sprintf("form_submit_page_info.%s.%d", field, id)
}
