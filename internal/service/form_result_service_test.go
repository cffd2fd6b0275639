package service

import (
	"testing"

	"github.com/careloop/formflow/internal/apperr"
	"github.com/careloop/formflow/internal/dto"
	"github.com/careloop/formflow/internal/events"
	"github.com/careloop/formflow/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type capturePublisher struct {
	published []events.FormCompleted
}

func (p *capturePublisher) PublishFormCompleted(event events.FormCompleted) {
	p.published = append(p.published, event)
}

type formResultFixture struct {
	formRepo    *mockFormRepository
	ufaRepo     *mockUserFormAnswerRepository
	pointsRepo  *mockPagePointsRepository
	bracketRepo *mockSubmitPageInfoRepository
	careRepo    *mockCareRepository
	publisher   *capturePublisher
	svc         FormResultService
}

func buildFormResultService() *formResultFixture {
	f := &formResultFixture{
		formRepo: &mockFormRepository{
			findByIDFunc: func(id uint) (*model.Form, error) {
				return &model.Form{ID: id, HlpPoints: 25, ShowResultsPage: true}, nil
			},
		},
		ufaRepo:     &mockUserFormAnswerRepository{},
		pointsRepo:  &mockPagePointsRepository{},
		bracketRepo: &mockSubmitPageInfoRepository{},
		careRepo:    &mockCareRepository{},
		publisher:   &capturePublisher{},
	}
	f.svc = NewFormResultService(f.formRepo, f.ufaRepo, f.pointsRepo, f.bracketRepo, f.careRepo, NewPassthroughTranslator(), f.publisher)
	return f
}

func submitRequest() dto.SaveUserFormAnswersRequest {
	return dto.SaveUserFormAnswersRequest{
		UserID:      7,
		SessionID:   "b3c9a5c0-0000-4000-8000-000000000002",
		SessionDate: "2026-08-29",
		SessionTime: "11:00",
	}
}

func TestSaveUserFormAnswersCopiesHlpPointsAndPublishes(t *testing.T) {
	f := buildFormResultService()

	var created *model.UserFormAnswer
	f.ufaRepo.createFunc = func(ufa *model.UserFormAnswer) error {
		ufa.ID = 42
		created = ufa
		return nil
	}

	resp, err := f.svc.SaveUserFormAnswers(10, submitRequest())
	require.NoError(t, err)

	require.NotNil(t, created)
	assert.Equal(t, 25, created.HlpPointsEarned, "reward snapshot comes from the form, not the request")
	assert.True(t, resp.ShowResultsPage)
	assert.Equal(t, uint(42), resp.UserFormAnswer.ID)

	require.Len(t, f.publisher.published, 1)
	assert.Equal(t, uint(42), f.publisher.published[0].UserFormAnswerID)
	assert.Equal(t, 25, f.publisher.published[0].HlpPointsEarned)
}

func TestSaveUserFormAnswersRejectsDoubleSubmission(t *testing.T) {
	f := buildFormResultService()
	f.ufaRepo.findBySessionFunc = func(formID, userID uint, sessionID string) (*model.UserFormAnswer, error) {
		return &model.UserFormAnswer{ID: 1, FormID: formID, UserID: userID, SessionID: sessionID}, nil
	}

	_, err := f.svc.SaveUserFormAnswers(10, submitRequest())
	require.Error(t, err)
	assert.Equal(t, apperr.KindBadRequest, apperr.KindOf(err))
	assert.Equal(t, "form_already_submitted", apperr.KeyOf(err))
	assert.Empty(t, f.publisher.published)
}

func TestSaveUserFormAnswersRejectsBothContexts(t *testing.T) {
	f := buildFormResultService()

	req := submitRequest()
	req.ToolkitEpisodeID = uintPtr(3)
	req.AppointmentID = uintPtr(4)

	_, err := f.svc.SaveUserFormAnswers(10, req)
	require.Error(t, err)
	assert.Equal(t, "form_answer_context_invalid", apperr.KeyOf(err))
}

func TestSaveUserFormAnswersAppointmentContextStored(t *testing.T) {
	f := buildFormResultService()
	f.careRepo.findAppointmentFunc = func(appointmentID uint) (*model.Appointment, error) {
		return &model.Appointment{ID: appointmentID}, nil
	}
	var created *model.UserFormAnswer
	f.ufaRepo.createFunc = func(ufa *model.UserFormAnswer) error {
		created = ufa
		return nil
	}

	req := submitRequest()
	req.AppointmentID = uintPtr(4)

	_, err := f.svc.SaveUserFormAnswers(10, req)
	require.NoError(t, err)
	require.NotNil(t, created.AppointmentID)
	assert.Equal(t, uint(4), *created.AppointmentID)
	assert.Nil(t, created.ToolkitEpisodeID)
}

func TestGetFormResultSumsCachedPoints(t *testing.T) {
	f := buildFormResultService()
	f.ufaRepo.findByIDFunc = func(id uint) (*model.UserFormAnswer, error) {
		return &model.UserFormAnswer{ID: id, FormID: 10, UserID: 7, SessionID: "s-1"}, nil
	}
	f.pointsRepo.sumForSessionFunc = func(userID, formID uint, sessionID string) (int, error) {
		assert.Equal(t, uint(7), userID)
		assert.Equal(t, uint(10), formID)
		return 37, nil
	}
	f.bracketRepo.findBracketFunc = func(formID uint, totalPoints int) (*model.FormSubmitPageInfo, error) {
		assert.Equal(t, 37, totalPoints)
		return &model.FormSubmitPageInfo{ID: 5, Title: "Moderate", Message: "Consider a follow-up", RecommendedItemID: uintPtr(9)}, nil
	}

	result, err := f.svc.GetFormResult(42, "en")
	require.NoError(t, err)
	assert.Equal(t, 37, result.TotalPoints)
	require.NotNil(t, result.Bracket)
	assert.Equal(t, "Moderate", result.Bracket.Title)
	assert.Equal(t, uint(9), *result.Bracket.RecommendedItemID)
}

func TestGetFormResultWithoutBracket(t *testing.T) {
	f := buildFormResultService()
	f.ufaRepo.findByIDFunc = func(id uint) (*model.UserFormAnswer, error) {
		return &model.UserFormAnswer{ID: id, FormID: 10, UserID: 7, SessionID: "s-1"}, nil
	}
	f.pointsRepo.sumForSessionFunc = func(userID, formID uint, sessionID string) (int, error) {
		return 0, nil
	}

	result, err := f.svc.GetFormResult(42, "en")
	require.NoError(t, err)
	assert.Equal(t, 0, result.TotalPoints)
	assert.Nil(t, result.Bracket)
}
