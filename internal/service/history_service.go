package service

import (
	"errors"

	"github.com/careloop/formflow/internal/apperr"
	"github.com/careloop/formflow/internal/dto"
	"github.com/careloop/formflow/internal/model"
	"github.com/careloop/formflow/internal/repository"
	"github.com/jinzhu/copier"
	"gorm.io/gorm"
)

// HistoryService reconstructs a single session's answered page: each
// question re-joined with the answers from its own type's storage only, and
// each option flagged with whether an answer selected it.
type HistoryService interface {
	GetFormHistory(req FormHistoryRequest) (*dto.FormHistoryDTO, error)
}

// FormHistoryRequest resolves the form either directly or via a toolkit;
// exactly one of ToolkitID/FormID must be set. PageID defaults to the form's
// first page.
type FormHistoryRequest struct {
	ToolkitID *uint
	FormID    *uint
	UserID    uint
	SessionID string
	PageID    *uint
}

type historyService struct {
	formRepo     repository.FormRepository
	questionRepo repository.QuestionRepository
	optionRepo   repository.OptionRepository
	answerRepo   repository.AnswerRepository
	careRepo     repository.CareRepository
}

func NewHistoryService(
	formRepo repository.FormRepository,
	questionRepo repository.QuestionRepository,
	optionRepo repository.OptionRepository,
	answerRepo repository.AnswerRepository,
	careRepo repository.CareRepository,
) HistoryService {
	return &historyService{
		formRepo:     formRepo,
		questionRepo: questionRepo,
		optionRepo:   optionRepo,
		answerRepo:   answerRepo,
		careRepo:     careRepo,
	}
}

func (s *historyService) GetFormHistory(req FormHistoryRequest) (*dto.FormHistoryDTO, error) {
	if (req.ToolkitID == nil) == (req.FormID == nil) {
		return nil, apperr.BadRequest("form_history_input_invalid", "exactly one of toolkit_id or form_id must be provided")
	}

	formID, err := s.resolveFormID(req)
	if err != nil {
		return nil, err
	}

	form, err := s.formRepo.FindByID(formID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("form_not_found", "form %d not found", formID)
		}
		return nil, apperr.Internal("form_lookup_failed", err)
	}

	page, err := s.resolvePage(formID, req.PageID)
	if err != nil {
		return nil, err
	}

	questions, err := s.questionRepo.FindByPage(formID, page.ID)
	if err != nil {
		return nil, apperr.Internal("question_lookup_failed", err)
	}

	questionDTOs, _, err := loadQuestionDTOs(s.optionRepo, questions)
	if err != nil {
		return nil, err
	}

	historyQuestions, err := s.attachAnswers(questions, questionDTOs, req.UserID, req.SessionID)
	if err != nil {
		return nil, err
	}

	var formDTO dto.FormDTO
	if err := copier.Copy(&formDTO, form); err != nil {
		return nil, apperr.Internal("form_mapping_failed", err)
	}

	return &dto.FormHistoryDTO{
		Form:      formDTO,
		Page:      dto.PageDTO{ID: page.ID, FormID: page.FormID, Title: page.Title},
		SessionID: req.SessionID,
		Questions: historyQuestions,
	}, nil
}

func (s *historyService) resolveFormID(req FormHistoryRequest) (uint, error) {
	if req.FormID != nil {
		return *req.FormID, nil
	}
	toolkit, err := s.careRepo.FindToolkit(*req.ToolkitID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, apperr.NotFound("toolkit_not_found", "toolkit %d not found", *req.ToolkitID)
		}
		return 0, apperr.Internal("toolkit_lookup_failed", err)
	}
	if toolkit.FormID == nil {
		return 0, apperr.NotFound("toolkit_has_no_form", "toolkit %d has no form attached", *req.ToolkitID)
	}
	return *toolkit.FormID, nil
}

func (s *historyService) resolvePage(formID uint, pageID *uint) (*model.FormPage, error) {
	var page *model.FormPage
	var err error
	if pageID != nil {
		page, err = s.formRepo.FindPage(formID, *pageID)
	} else {
		page, err = s.formRepo.FirstPage(formID)
	}
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("form_page_not_found", "page not found on form %d", formID)
		}
		return nil, apperr.Internal("form_page_lookup_failed", err)
	}
	return page, nil
}

// attachAnswers reads each type's answer storage for the session and marks
// option selection. Reading per type keeps answers isolated: a row for a
// question of type A never surfaces under a question of type B, even if ids
// collide across tables.
func (s *historyService) attachAnswers(questions []model.Question, questionDTOs []dto.QuestionDTO, userID uint, sessionID string) ([]dto.HistoryQuestionDTO, error) {
	byType := make(map[model.QuestionType][]uint)
	typeByQuestion := make(map[uint]model.QuestionType, len(questions))
	for _, q := range questions {
		byType[q.Type] = append(byType[q.Type], q.ID)
		typeByQuestion[q.ID] = q.Type
	}

	answersByQuestion := make(map[uint][]model.QuestionAnswer)
	for t, ids := range byType {
		answers, err := s.answerRepo.FindForQuestions(t, userID, sessionID, ids)
		if err != nil {
			if apperr.KindOf(err) == apperr.KindConfig {
				return nil, err
			}
			return nil, apperr.Internal("answer_lookup_failed", err)
		}
		for i := range answers {
			answersByQuestion[answers[i].QuestionID] = append(answersByQuestion[answers[i].QuestionID], answers[i])
		}
	}

	out := make([]dto.HistoryQuestionDTO, 0, len(questionDTOs))
	for _, qDTO := range questionDTOs {
		answers := answersByQuestion[qDTO.ID]

		selected := make(map[uint]bool)
		for i := range answers {
			if id, ok := resolveOptionID(&answers[i]); ok {
				selected[id] = true
			}
		}
		for i := range qDTO.Options {
			qDTO.Options[i].IsSelected = selected[qDTO.Options[i].ID]
		}

		historyAnswers := make([]dto.HistoryAnswerDTO, 0, len(answers))
		for i := range answers {
			a := &answers[i]
			historyAnswers = append(historyAnswers, dto.HistoryAnswerDTO{
				ID:           a.ID,
				QuestionID:   a.QuestionID,
				QuestionType: typeByQuestion[a.QuestionID],
				Answer:       a.Answer,
				OptionID:     a.OptionID,
				Value:        a.Value,
				SessionDate:  a.SessionDate,
				SessionTime:  a.SessionTime,
			})
		}

		out = append(out, dto.HistoryQuestionDTO{
			Question: qDTO,
			Answers:  historyAnswers,
		})
	}
	return out, nil
}
