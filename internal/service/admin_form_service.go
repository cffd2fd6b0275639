package service

import (
	"fmt"

	"github.com/careloop/formflow/internal/apperr"
	"github.com/careloop/formflow/internal/cache"
	"github.com/careloop/formflow/internal/dto"
	"github.com/careloop/formflow/internal/model"
	"github.com/careloop/formflow/internal/registry"
	"github.com/careloop/formflow/internal/repository"
	"github.com/jinzhu/copier"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// AdminFormService is the content-tooling surface: a whole form with pages,
// questions and per-type options created in one request.
type AdminFormService interface {
	CreateForm(req dto.FormCreateDTO) (*dto.FormDTO, error)
}

type adminFormService struct {
	optionRepo repository.OptionRepository
	reg        *registry.Registry
	formCache  cache.FormCache
	db         *gorm.DB
}

func NewAdminFormService(optionRepo repository.OptionRepository, reg *registry.Registry, formCache cache.FormCache, db *gorm.DB) AdminFormService {
	return &adminFormService{optionRepo: optionRepo, reg: reg, formCache: formCache, db: db}
}

func (s *adminFormService) CreateForm(req dto.FormCreateDTO) (*dto.FormDTO, error) {
	if err := s.validate(req); err != nil {
		return nil, err
	}

	form := model.Form{
		Title:           req.Title,
		Description:     req.Description,
		HlpPoints:       req.HlpPoints,
		ShowResultsPage: req.ShowResultsPage,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&form).Error; err != nil {
			return fmt.Errorf("creating form: %w", err)
		}
		for pi, pageDTO := range req.Pages {
			page := model.FormPage{FormID: form.ID, Title: pageDTO.Title}
			if err := tx.Create(&page).Error; err != nil {
				return fmt.Errorf("creating page %d: %w", pi, err)
			}
			for qi, qDTO := range pageDTO.Questions {
				question := model.Question{
					FormID:                form.ID,
					FormPageID:            page.ID,
					Title:                 qDTO.Title,
					Type:                  qDTO.Type,
					PointsCalculationType: qDTO.PointsCalculationType,
					Points:                qDTO.Points,
					Ranking:               qDTO.Ranking,
					Validations:           qDTO.Validations,
					MediaURL:              qDTO.MediaURL,
					ToolkitID:             qDTO.ToolkitID,
				}
				if err := tx.Create(&question).Error; err != nil {
					return fmt.Errorf("creating question %d on page %d: %w", qi, pi, err)
				}
				if len(qDTO.Options) == 0 {
					continue
				}
				options := make([]model.QuestionOption, 0, len(qDTO.Options))
				for _, oDTO := range qDTO.Options {
					var opt model.QuestionOption
					if err := copier.Copy(&opt, &oDTO); err != nil {
						return fmt.Errorf("mapping option: %w", err)
					}
					opt.QuestionID = question.ID
					options = append(options, opt)
				}
				if err := s.optionRepo.CreateBatch(tx, question.Type, options); err != nil {
					return err
				}
			}
		}
		return nil
	})
	if err != nil {
		log.Error().Err(err).Str("title", req.Title).Msg("CreateForm: transaction rolled back")
		if apperr.KindOf(err) == apperr.KindConfig {
			return nil, err
		}
		return nil, apperr.Internal("form_create_failed", err)
	}

	s.formCache.Invalidate(form.ID)

	var resp dto.FormDTO
	if err := copier.Copy(&resp, &form); err != nil {
		return nil, apperr.Internal("form_mapping_failed", err)
	}
	return &resp, nil
}

// validate checks every question against the registry and every option
// against its type's expected shape.
func (s *adminFormService) validate(req dto.FormCreateDTO) error {
	var invalid []string
	for pi, page := range req.Pages {
		for qi, q := range page.Questions {
			at := fmt.Sprintf("page %d question %d", pi+1, qi+1)
			if !s.reg.Known(q.Type) {
				invalid = append(invalid, fmt.Sprintf("%s: unknown question type %q", at, q.Type))
				continue
			}
			if q.PointsCalculationType == model.PointsQuestionLevel && q.Points == nil {
				invalid = append(invalid, fmt.Sprintf("%s: QUESTION_LEVEL scoring requires fixed points", at))
			}
			for oi, opt := range q.Options {
				optAt := fmt.Sprintf("%s option %d", at, oi+1)
				switch {
				case registry.IsRangeType(q.Type):
					if opt.Start == nil || opt.End == nil {
						invalid = append(invalid, fmt.Sprintf("%s: range options require start and end", optAt))
					} else if *opt.Start > *opt.End {
						invalid = append(invalid, fmt.Sprintf("%s: range start exceeds end", optAt))
					}
				case q.Type == model.TypeStepper:
					if opt.Operation == nil {
						invalid = append(invalid, fmt.Sprintf("%s: stepper options require an operation", optAt))
					}
				case registry.IsMediaType(q.Type):
					if opt.Points != nil {
						invalid = append(invalid, fmt.Sprintf("%s: media options carry no points", optAt))
					}
				}
			}
		}
	}
	if len(invalid) > 0 {
		return apperr.BadRequest("form_definition_invalid", "form definition has %d invalid entries", len(invalid)).
			WithDetails(invalid...)
	}
	return nil
}
