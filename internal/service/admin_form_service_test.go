package service

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/careloop/formflow/internal/apperr"
	"github.com/careloop/formflow/internal/cache"
	"github.com/careloop/formflow/internal/dto"
	"github.com/careloop/formflow/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type invalidatingFormCache struct {
	cache.NopFormCache
	invalidated []uint
}

func (c *invalidatingFormCache) Invalidate(formID uint) {
	c.invalidated = append(c.invalidated, formID)
}

func formDefinition(questions ...dto.QuestionCreateDTO) dto.FormCreateDTO {
	return dto.FormCreateDTO{
		Title:     "Weekly check-in",
		HlpPoints: 25,
		Pages: []dto.PageCreateDTO{
			{Title: "Page one", Questions: questions},
		},
	}
}

func TestCreateFormRejectsUnknownQuestionType(t *testing.T) {
	db, _ := newTestDB(t)
	svc := NewAdminFormService(&mockOptionRepository{}, testRegistry(), &invalidatingFormCache{}, db)

	req := formDefinition(dto.QuestionCreateDTO{
		Title: "Mystery", Type: "hologram", PointsCalculationType: model.PointsNone, Ranking: 1,
	})

	_, err := svc.CreateForm(req)
	require.Error(t, err)
	assert.Equal(t, "form_definition_invalid", apperr.KeyOf(err))
	require.Len(t, apperr.DetailsOf(err), 1)
	assert.Contains(t, apperr.DetailsOf(err)[0], "hologram")
}

func TestCreateFormValidatesOptionShapes(t *testing.T) {
	db, _ := newTestDB(t)
	reg := testRegistry()
	svc := NewAdminFormService(&mockOptionRepository{}, reg, &invalidatingFormCache{}, db)

	req := formDefinition(
		dto.QuestionCreateDTO{
			Title: "Fixed", Type: model.TypeTextArea, PointsCalculationType: model.PointsQuestionLevel, Ranking: 1,
		},
		dto.QuestionCreateDTO{
			Title: "Pain level", Type: model.TypeHorizontalSlider, PointsCalculationType: model.PointsOptionsLevel, Ranking: 2,
			Options: []dto.OptionCreateDTO{
				{Points: intPtr(3), Start: floatPtr(10), End: floatPtr(0)},
				{Points: intPtr(1)},
			},
		},
	)

	_, err := svc.CreateForm(req)
	require.Error(t, err)
	details := apperr.DetailsOf(err)
	require.Len(t, details, 3)
	assert.Contains(t, details[0], "QUESTION_LEVEL scoring requires fixed points")
	assert.Contains(t, details[1], "range start exceeds end")
	assert.Contains(t, details[2], "range options require start and end")
}

func TestCreateFormPersistsHierarchyAndInvalidatesCache(t *testing.T) {
	db, mock := newTestDB(t)
	formCache := &invalidatingFormCache{}

	var batched []model.QuestionOption
	optRepo := &mockOptionRepository{
		createBatchFunc: func(tx *gorm.DB, qt model.QuestionType, options []model.QuestionOption) error {
			assert.Equal(t, model.TypeSingleSelect, qt)
			batched = options
			return nil
		},
	}
	svc := NewAdminFormService(optRepo, testRegistry(), formCache, db)

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "forms"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(10))
	mock.ExpectQuery(`INSERT INTO "form_pages"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(20))
	mock.ExpectQuery(`INSERT INTO "questions"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	mock.ExpectCommit()

	req := formDefinition(dto.QuestionCreateDTO{
		Title: "Mood", Type: model.TypeSingleSelect, PointsCalculationType: model.PointsOptionsLevel, Ranking: 1,
		Options: []dto.OptionCreateDTO{
			{Label: "Good", Points: intPtr(0), Ranking: 1},
			{Label: "Low", Points: intPtr(3), Ranking: 2},
		},
	})

	form, err := svc.CreateForm(req)
	require.NoError(t, err)
	assert.Equal(t, uint(10), form.ID)
	assert.Equal(t, "Weekly check-in", form.Title)

	require.Len(t, batched, 2)
	assert.Equal(t, uint(1), batched[0].QuestionID, "options attach to the created question")

	assert.Equal(t, []uint{10}, formCache.invalidated)
	assert.NoError(t, mock.ExpectationsWereMet())
}
