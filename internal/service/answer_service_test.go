package service

import (
	"testing"
	"time"

	"github.com/careloop/formflow/internal/apperr"
	"github.com/careloop/formflow/internal/dto"
	"github.com/careloop/formflow/internal/model"
	"github.com/careloop/formflow/internal/registry"
	"github.com/careloop/formflow/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func testRegistry() *registry.Registry {
	return registry.FromStores(map[model.QuestionType]registry.Store{
		model.TypeSingleSelect:     {AnswerTable: "single_select_answers", OptionTable: "single_select_options"},
		model.TypeHorizontalSlider: {AnswerTable: "horizontal_slider_answers", OptionTable: "horizontal_slider_options"},
		model.TypeTextArea:         {AnswerTable: "text_area_answers", OptionTable: "text_area_options"},
	})
}

func pageQuestions() []model.Question {
	return []model.Question{
		{ID: 1, FormID: 10, FormPageID: 20, Type: model.TypeSingleSelect, PointsCalculationType: model.PointsOptionsLevel, Ranking: 1},
		{ID: 2, FormID: 10, FormPageID: 20, Type: model.TypeHorizontalSlider, PointsCalculationType: model.PointsOptionsLevel, Ranking: 2},
		{ID: 3, FormID: 10, FormPageID: 20, Type: model.TypeTextArea, PointsCalculationType: model.PointsNone, Ranking: 3},
	}
}

func saveRequest(answers []dto.AnswerInput) dto.SavePageAnswersRequest {
	return dto.SavePageAnswersRequest{
		UserID:      7,
		ScheduleID:  4,
		SessionID:   "b3c9a5c0-0000-4000-8000-000000000001",
		SessionDate: "2026-08-29",
		SessionTime: "10:30",
		Answers:     answers,
	}
}

type answerServiceFixture struct {
	formRepo   *mockFormRepository
	qRepo      *mockQuestionRepository
	optRepo    *mockOptionRepository
	ansRepo    *mockAnswerRepository
	pointsRepo *mockPagePointsRepository
	careRepo   *mockCareRepository
	svc        AnswerService
}

func buildAnswerService(t *testing.T) *answerServiceFixture {
	t.Helper()
	db, mock := newTestDB(t)
	mock.ExpectBegin()
	mock.ExpectCommit()

	f := &answerServiceFixture{
		formRepo: &mockFormRepository{
			findPageFunc: func(formID, pageID uint) (*model.FormPage, error) {
				return &model.FormPage{ID: pageID, FormID: formID}, nil
			},
		},
		qRepo: &mockQuestionRepository{
			findByPageFunc: func(formID, pageID uint) ([]model.Question, error) {
				return pageQuestions(), nil
			},
		},
		optRepo:    &mockOptionRepository{},
		ansRepo:    &mockAnswerRepository{},
		pointsRepo: &mockPagePointsRepository{},
		careRepo:   &mockCareRepository{},
	}
	f.svc = NewAnswerService(f.formRepo, f.qRepo, f.optRepo, f.ansRepo, f.pointsRepo, f.careRepo, NewScoringService(), testRegistry(), db)
	return f
}

func TestSavePageAnswersRejectsForeignQuestions(t *testing.T) {
	f := buildAnswerService(t)

	inserted := false
	f.ansRepo.bulkInsertFunc = func(tx *gorm.DB, qt model.QuestionType, answers []model.QuestionAnswer) ([]model.QuestionAnswer, error) {
		inserted = true
		return answers, nil
	}

	req := saveRequest([]dto.AnswerInput{
		{QuestionID: 1, QuestionType: model.TypeSingleSelect, OptionID: uintPtr(5)},
		{QuestionID: 99, QuestionType: model.TypeSingleSelect, OptionID: uintPtr(5)},
		{QuestionID: 2, QuestionType: model.TypeTextArea, Answer: "wrong recorded type"},
	})

	_, err := f.svc.SavePageAnswers(10, 20, req)
	require.Error(t, err)
	assert.Equal(t, apperr.KindBadRequest, apperr.KindOf(err))
	assert.Equal(t, "answers_reference_invalid_questions", apperr.KeyOf(err))
	assert.Len(t, apperr.DetailsOf(err), 2)
	assert.False(t, inserted, "validation failure must persist nothing")
}

func TestSavePageAnswersDeletesEveryTypeThenInsertsGrouped(t *testing.T) {
	f := buildAnswerService(t)

	deletedTypes := map[model.QuestionType]bool{}
	f.ansRepo.deleteForPageFunc = func(tx *gorm.DB, qt model.QuestionType, key repository.PageKey) error {
		deletedTypes[qt] = true
		assert.Equal(t, uint(7), key.UserID)
		assert.Equal(t, uint(10), key.FormID)
		assert.Equal(t, uint(20), key.FormPageID)
		return nil
	}

	insertedByType := map[model.QuestionType]int{}
	f.ansRepo.bulkInsertFunc = func(tx *gorm.DB, qt model.QuestionType, answers []model.QuestionAnswer) ([]model.QuestionAnswer, error) {
		insertedByType[qt] = len(answers)
		return answers, nil
	}

	var created *model.FormPagePoints
	f.pointsRepo.createFunc = func(points *model.FormPagePoints) error {
		created = points
		return nil
	}
	f.optRepo.findByQuestionIDsFunc = func(qt model.QuestionType, ids []uint) ([]model.QuestionOption, error) {
		if qt == model.TypeSingleSelect {
			return []model.QuestionOption{{ID: 5, QuestionID: 1, Points: intPtr(4)}}, nil
		}
		return nil, nil
	}

	req := saveRequest([]dto.AnswerInput{
		{QuestionID: 1, QuestionType: model.TypeSingleSelect, OptionID: uintPtr(5)},
		{QuestionID: 3, QuestionType: model.TypeTextArea, Answer: "felt fine today"},
	})

	resp, err := f.svc.SavePageAnswers(10, 20, req)
	require.NoError(t, err)
	assert.Equal(t, "2 answers saved", resp.Response)

	// Delete runs for every registered type, answered or not; that is what
	// makes the replace idempotent.
	assert.Len(t, deletedTypes, 3)
	assert.True(t, deletedTypes[model.TypeHorizontalSlider])

	assert.Equal(t, 1, insertedByType[model.TypeSingleSelect])
	assert.Equal(t, 1, insertedByType[model.TypeTextArea])
	_, sliderInserted := insertedByType[model.TypeHorizontalSlider]
	assert.False(t, sliderInserted, "no insert for types with no answers")

	require.NotNil(t, created)
	assert.Equal(t, 4, created.CalculatedPoints)
	assert.Equal(t, "b3c9a5c0-0000-4000-8000-000000000001", created.SessionID)
}

func TestSavePageAnswersUpdatesExistingPagePoints(t *testing.T) {
	f := buildAnswerService(t)

	existing := &model.FormPagePoints{ID: 88, UserID: 7, FormID: 10, FormPageID: 20, SessionID: "b3c9a5c0-0000-4000-8000-000000000001", CalculatedPoints: 11}
	f.pointsRepo.findForPageFunc = func(key repository.PageKey) (*model.FormPagePoints, error) {
		return existing, nil
	}
	var updated *model.FormPagePoints
	f.pointsRepo.updateFunc = func(points *model.FormPagePoints) error {
		updated = points
		return nil
	}
	f.pointsRepo.createFunc = func(points *model.FormPagePoints) error {
		t.Fatal("resubmission must update in place, not insert")
		return nil
	}

	req := saveRequest([]dto.AnswerInput{
		{QuestionID: 3, QuestionType: model.TypeTextArea, Answer: "resubmitted"},
	})

	_, err := f.svc.SavePageAnswers(10, 20, req)
	require.NoError(t, err)
	require.NotNil(t, updated)
	assert.Equal(t, uint(88), updated.ID)
	assert.Equal(t, 0, updated.CalculatedPoints)
}

func TestSavePageAnswersRejectsInactiveSchedule(t *testing.T) {
	f := buildAnswerService(t)

	past := time.Now().Add(-24 * time.Hour)
	f.careRepo.findScheduleFunc = func(scheduleID uint) (*model.Schedule, error) {
		return &model.Schedule{ID: scheduleID, Disabled: true, EndDate: &past}, nil
	}

	req := saveRequest([]dto.AnswerInput{
		{QuestionID: 3, QuestionType: model.TypeTextArea, Answer: "too late"},
	})

	_, err := f.svc.SavePageAnswers(10, 20, req)
	require.Error(t, err)
	assert.Equal(t, apperr.KindBadRequest, apperr.KindOf(err))
	assert.Equal(t, "schedule_not_active", apperr.KeyOf(err))
}

func TestSavePageAnswersUnknownPage(t *testing.T) {
	f := buildAnswerService(t)
	f.formRepo.findPageFunc = func(formID, pageID uint) (*model.FormPage, error) {
		return nil, gorm.ErrRecordNotFound
	}

	req := saveRequest([]dto.AnswerInput{
		{QuestionID: 1, QuestionType: model.TypeSingleSelect, OptionID: uintPtr(5)},
	})

	_, err := f.svc.SavePageAnswers(10, 99, req)
	require.Error(t, err)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}
