package service

import (
	"errors"

	"github.com/careloop/formflow/internal/apperr"
	"github.com/careloop/formflow/internal/cache"
	"github.com/careloop/formflow/internal/dto"
	"github.com/careloop/formflow/internal/model"
	"github.com/careloop/formflow/internal/repository"
	"github.com/google/uuid"
	"github.com/jinzhu/copier"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// FormService is the form/page read side: form entry info and a page's
// questions with their type-specific options.
type FormService interface {
	GetFormInfo(toolkitID, formID *uint) (*dto.FormInfoDTO, error)
	GetFormPageQuestions(formID, pageID uint) (*dto.PageQuestionsDTO, error)
	GetNextPageID(formID, pageID uint) (*uint, error)
}

type formService struct {
	formRepo     repository.FormRepository
	questionRepo repository.QuestionRepository
	optionRepo   repository.OptionRepository
	careRepo     repository.CareRepository
	formCache    cache.FormCache
}

func NewFormService(
	formRepo repository.FormRepository,
	questionRepo repository.QuestionRepository,
	optionRepo repository.OptionRepository,
	careRepo repository.CareRepository,
	formCache cache.FormCache,
) FormService {
	return &formService{
		formRepo:     formRepo,
		questionRepo: questionRepo,
		optionRepo:   optionRepo,
		careRepo:     careRepo,
		formCache:    formCache,
	}
}

func (s *formService) GetFormInfo(toolkitID, formID *uint) (*dto.FormInfoDTO, error) {
	if (toolkitID == nil) == (formID == nil) {
		return nil, apperr.BadRequest("form_info_input_invalid", "exactly one of toolkit_id or form_id must be provided")
	}

	resolvedFormID, err := s.resolveFormID(toolkitID, formID)
	if err != nil {
		return nil, err
	}

	info, hit := s.formCache.GetFormInfo(resolvedFormID)
	if !hit {
		info, err = s.buildFormInfo(resolvedFormID)
		if err != nil {
			return nil, err
		}
		s.formCache.SetFormInfo(resolvedFormID, info)
	}

	// Session ids are never cached; every call starts a fresh session.
	out := *info
	out.SessionID = uuid.NewString()
	return &out, nil
}

func (s *formService) resolveFormID(toolkitID, formID *uint) (uint, error) {
	if formID != nil {
		return *formID, nil
	}
	toolkit, err := s.careRepo.FindToolkit(*toolkitID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, apperr.NotFound("toolkit_not_found", "toolkit %d not found", *toolkitID)
		}
		return 0, apperr.Internal("toolkit_lookup_failed", err)
	}
	if toolkit.FormID == nil {
		return 0, apperr.NotFound("toolkit_has_no_form", "toolkit %d has no form attached", *toolkitID)
	}
	return *toolkit.FormID, nil
}

func (s *formService) buildFormInfo(formID uint) (*dto.FormInfoDTO, error) {
	form, err := s.formRepo.FindByID(formID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("form_not_found", "form %d not found", formID)
		}
		return nil, apperr.Internal("form_lookup_failed", err)
	}

	firstPage, err := s.formRepo.FirstPage(formID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("form_has_no_pages", "form %d has no pages", formID)
		}
		return nil, apperr.Internal("form_page_lookup_failed", err)
	}

	totalPages, err := s.formRepo.CountPages(formID)
	if err != nil {
		return nil, apperr.Internal("form_page_count_failed", err)
	}

	var formDTO dto.FormDTO
	if err := copier.Copy(&formDTO, form); err != nil {
		log.Error().Err(err).Uint("formID", formID).Msg("GetFormInfo: failed to map form to DTO")
		return nil, apperr.Internal("form_mapping_failed", err)
	}

	return &dto.FormInfoDTO{
		Form:        formDTO,
		FirstPageID: firstPage.ID,
		TotalPages:  int(totalPages),
	}, nil
}

func (s *formService) GetFormPageQuestions(formID, pageID uint) (*dto.PageQuestionsDTO, error) {
	page, err := s.formRepo.FindPage(formID, pageID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("form_page_not_found", "page %d not found on form %d", pageID, formID)
		}
		return nil, apperr.Internal("form_page_lookup_failed", err)
	}

	questions, err := s.questionRepo.FindByPage(formID, pageID)
	if err != nil {
		return nil, apperr.Internal("question_lookup_failed", err)
	}

	questionDTOs, _, err := s.loadQuestionDTOs(questions)
	if err != nil {
		return nil, err
	}

	nextPageID, err := s.GetNextPageID(formID, pageID)
	if err != nil {
		return nil, err
	}

	return &dto.PageQuestionsDTO{
		Page:       dto.PageDTO{ID: page.ID, FormID: page.FormID, Title: page.Title},
		NextPageID: nextPageID,
		Questions:  questionDTOs,
	}, nil
}

func (s *formService) GetNextPageID(formID, pageID uint) (*uint, error) {
	next, err := s.formRepo.NextPage(formID, pageID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("form_page_not_found", "page %d not found on form %d", pageID, formID)
		}
		return nil, apperr.Internal("form_page_lookup_failed", err)
	}
	if next == nil {
		return nil, nil
	}
	id := next.ID
	return &id, nil
}

// loadQuestionDTOs attaches each question's type-specific options, fetching
// per type so an answer table never bleeds into another type's questions.
// The raw options are also returned keyed by question id for scoring reuse.
func (s *formService) loadQuestionDTOs(questions []model.Question) ([]dto.QuestionDTO, map[uint][]model.QuestionOption, error) {
	return loadQuestionDTOs(s.optionRepo, questions)
}

func loadQuestionDTOs(optionRepo repository.OptionRepository, questions []model.Question) ([]dto.QuestionDTO, map[uint][]model.QuestionOption, error) {
	byType := make(map[model.QuestionType][]uint)
	for _, q := range questions {
		byType[q.Type] = append(byType[q.Type], q.ID)
	}

	optionsByQuestion := make(map[uint][]model.QuestionOption)
	for t, ids := range byType {
		options, err := optionRepo.FindByQuestionIDs(t, ids)
		if err != nil {
			if apperr.KindOf(err) == apperr.KindConfig {
				log.Error().Err(err).Str("questionType", string(t)).Msg("unmapped question type encountered while loading options")
				return nil, nil, err
			}
			return nil, nil, apperr.Internal("option_lookup_failed", err)
		}
		for i := range options {
			optionsByQuestion[options[i].QuestionID] = append(optionsByQuestion[options[i].QuestionID], options[i])
		}
	}

	questionDTOs := make([]dto.QuestionDTO, 0, len(questions))
	for _, q := range questions {
		var qDTO dto.QuestionDTO
		if err := copier.Copy(&qDTO, &q); err != nil {
			return nil, nil, apperr.Internal("question_mapping_failed", err)
		}
		qDTO.Options = nil
		for _, opt := range optionsByQuestion[q.ID] {
			var optDTO dto.OptionDTO
			if err := copier.Copy(&optDTO, &opt); err != nil {
				return nil, nil, apperr.Internal("option_mapping_failed", err)
			}
			qDTO.Options = append(qDTO.Options, optDTO)
		}
		questionDTOs = append(questionDTOs, qDTO)
	}
	return questionDTOs, optionsByQuestion, nil
}
