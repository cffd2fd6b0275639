package service

import (
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/careloop/formflow/internal/model"
	"github.com/careloop/formflow/internal/repository"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Mock repositories for testing: each method delegates to an optional func
// field, so a test only wires what it exercises.

type mockFormRepository struct {
	createFunc     func(form *model.Form) error
	findByIDFunc   func(id uint) (*model.Form, error)
	findPageFunc   func(formID, pageID uint) (*model.FormPage, error)
	firstPageFunc  func(formID uint) (*model.FormPage, error)
	nextPageFunc   func(formID, pageID uint) (*model.FormPage, error)
	countPagesFunc func(formID uint) (int64, error)
}

func (m *mockFormRepository) Create(form *model.Form) error {
	if m.createFunc != nil {
		return m.createFunc(form)
	}
	return errors.New("not implemented")
}

func (m *mockFormRepository) FindByID(id uint) (*model.Form, error) {
	if m.findByIDFunc != nil {
		return m.findByIDFunc(id)
	}
	return nil, errors.New("not implemented")
}

func (m *mockFormRepository) FindByIDWithPages(id uint) (*model.Form, error) {
	return nil, errors.New("not implemented")
}

func (m *mockFormRepository) FindPage(formID, pageID uint) (*model.FormPage, error) {
	if m.findPageFunc != nil {
		return m.findPageFunc(formID, pageID)
	}
	return nil, errors.New("not implemented")
}

func (m *mockFormRepository) FirstPage(formID uint) (*model.FormPage, error) {
	if m.firstPageFunc != nil {
		return m.firstPageFunc(formID)
	}
	return nil, errors.New("not implemented")
}

func (m *mockFormRepository) NextPage(formID, pageID uint) (*model.FormPage, error) {
	if m.nextPageFunc != nil {
		return m.nextPageFunc(formID, pageID)
	}
	return nil, errors.New("not implemented")
}

func (m *mockFormRepository) CountPages(formID uint) (int64, error) {
	if m.countPagesFunc != nil {
		return m.countPagesFunc(formID)
	}
	return 0, errors.New("not implemented")
}

type mockQuestionRepository struct {
	findByIDFunc   func(id uint) (*model.Question, error)
	findByPageFunc func(formID, pageID uint) ([]model.Question, error)
	findByFormFunc func(formID uint) ([]model.Question, error)
}

func (m *mockQuestionRepository) FindByID(id uint) (*model.Question, error) {
	if m.findByIDFunc != nil {
		return m.findByIDFunc(id)
	}
	return nil, errors.New("not implemented")
}

func (m *mockQuestionRepository) FindByPage(formID, pageID uint) ([]model.Question, error) {
	if m.findByPageFunc != nil {
		return m.findByPageFunc(formID, pageID)
	}
	return nil, errors.New("not implemented")
}

func (m *mockQuestionRepository) FindByForm(formID uint) ([]model.Question, error) {
	if m.findByFormFunc != nil {
		return m.findByFormFunc(formID)
	}
	return nil, errors.New("not implemented")
}

type mockOptionRepository struct {
	findByQuestionIDsFunc func(t model.QuestionType, questionIDs []uint) ([]model.QuestionOption, error)
	createBatchFunc       func(tx *gorm.DB, t model.QuestionType, options []model.QuestionOption) error
}

func (m *mockOptionRepository) FindByQuestionIDs(t model.QuestionType, questionIDs []uint) ([]model.QuestionOption, error) {
	if m.findByQuestionIDsFunc != nil {
		return m.findByQuestionIDsFunc(t, questionIDs)
	}
	return nil, nil
}

func (m *mockOptionRepository) CreateBatch(tx *gorm.DB, t model.QuestionType, options []model.QuestionOption) error {
	if m.createBatchFunc != nil {
		return m.createBatchFunc(tx, t, options)
	}
	return errors.New("not implemented")
}

type mockAnswerRepository struct {
	deleteForPageFunc    func(tx *gorm.DB, t model.QuestionType, key repository.PageKey) error
	bulkInsertFunc       func(tx *gorm.DB, t model.QuestionType, answers []model.QuestionAnswer) ([]model.QuestionAnswer, error)
	findForQuestionsFunc func(t model.QuestionType, userID uint, sessionID string, questionIDs []uint) ([]model.QuestionAnswer, error)
}

func (m *mockAnswerRepository) DeleteForPage(tx *gorm.DB, t model.QuestionType, key repository.PageKey) error {
	if m.deleteForPageFunc != nil {
		return m.deleteForPageFunc(tx, t, key)
	}
	return nil
}

func (m *mockAnswerRepository) BulkInsert(tx *gorm.DB, t model.QuestionType, answers []model.QuestionAnswer) ([]model.QuestionAnswer, error) {
	if m.bulkInsertFunc != nil {
		return m.bulkInsertFunc(tx, t, answers)
	}
	return answers, nil
}

func (m *mockAnswerRepository) FindForQuestions(t model.QuestionType, userID uint, sessionID string, questionIDs []uint) ([]model.QuestionAnswer, error) {
	if m.findForQuestionsFunc != nil {
		return m.findForQuestionsFunc(t, userID, sessionID, questionIDs)
	}
	return nil, nil
}

type mockPagePointsRepository struct {
	findForPageFunc   func(key repository.PageKey) (*model.FormPagePoints, error)
	createFunc        func(points *model.FormPagePoints) error
	updateFunc        func(points *model.FormPagePoints) error
	sumForSessionFunc func(userID, formID uint, sessionID string) (int, error)
}

func (m *mockPagePointsRepository) FindForPage(key repository.PageKey) (*model.FormPagePoints, error) {
	if m.findForPageFunc != nil {
		return m.findForPageFunc(key)
	}
	return nil, nil
}

func (m *mockPagePointsRepository) Create(points *model.FormPagePoints) error {
	if m.createFunc != nil {
		return m.createFunc(points)
	}
	return errors.New("not implemented")
}

func (m *mockPagePointsRepository) Update(points *model.FormPagePoints) error {
	if m.updateFunc != nil {
		return m.updateFunc(points)
	}
	return errors.New("not implemented")
}

func (m *mockPagePointsRepository) SumForSession(userID, formID uint, sessionID string) (int, error) {
	if m.sumForSessionFunc != nil {
		return m.sumForSessionFunc(userID, formID, sessionID)
	}
	return 0, errors.New("not implemented")
}

type mockUserFormAnswerRepository struct {
	createFunc            func(ufa *model.UserFormAnswer) error
	findByIDFunc          func(id uint) (*model.UserFormAnswer, error)
	findBySessionFunc     func(formID, userID uint, sessionID string) (*model.UserFormAnswer, error)
	findByAppointmentFunc func(formID, userID, appointmentID uint) (*model.UserFormAnswer, error)
}

func (m *mockUserFormAnswerRepository) Create(ufa *model.UserFormAnswer) error {
	if m.createFunc != nil {
		return m.createFunc(ufa)
	}
	return errors.New("not implemented")
}

func (m *mockUserFormAnswerRepository) FindByID(id uint) (*model.UserFormAnswer, error) {
	if m.findByIDFunc != nil {
		return m.findByIDFunc(id)
	}
	return nil, errors.New("not implemented")
}

func (m *mockUserFormAnswerRepository) FindBySession(formID, userID uint, sessionID string) (*model.UserFormAnswer, error) {
	if m.findBySessionFunc != nil {
		return m.findBySessionFunc(formID, userID, sessionID)
	}
	return nil, nil
}

func (m *mockUserFormAnswerRepository) FindByAppointment(formID, userID, appointmentID uint) (*model.UserFormAnswer, error) {
	if m.findByAppointmentFunc != nil {
		return m.findByAppointmentFunc(formID, userID, appointmentID)
	}
	return nil, nil
}

type mockSubmitPageInfoRepository struct {
	findBracketFunc func(formID uint, totalPoints int) (*model.FormSubmitPageInfo, error)
}

func (m *mockSubmitPageInfoRepository) FindBracket(formID uint, totalPoints int) (*model.FormSubmitPageInfo, error) {
	if m.findBracketFunc != nil {
		return m.findBracketFunc(formID, totalPoints)
	}
	return nil, nil
}

type mockCareRepository struct {
	userExistsFunc                  func(userID uint) (bool, error)
	findScheduleFunc                func(scheduleID uint) (*model.Schedule, error)
	findToolkitFunc                 func(toolkitID uint) (*model.Toolkit, error)
	findToolkitEpisodeFunc          func(episodeID uint) (*model.ToolkitEpisode, error)
	findTreatmentFunc               func(treatmentID uint) (*model.Treatment, error)
	findAppointmentFunc             func(appointmentID uint) (*model.Appointment, error)
	findAppointmentsByTreatmentFunc func(treatmentID uint) ([]model.Appointment, error)
}

func (m *mockCareRepository) UserExists(userID uint) (bool, error) {
	if m.userExistsFunc != nil {
		return m.userExistsFunc(userID)
	}
	return true, nil
}

func (m *mockCareRepository) FindSchedule(scheduleID uint) (*model.Schedule, error) {
	if m.findScheduleFunc != nil {
		return m.findScheduleFunc(scheduleID)
	}
	return &model.Schedule{ID: scheduleID}, nil
}

func (m *mockCareRepository) FindToolkit(toolkitID uint) (*model.Toolkit, error) {
	if m.findToolkitFunc != nil {
		return m.findToolkitFunc(toolkitID)
	}
	return nil, errors.New("not implemented")
}

func (m *mockCareRepository) FindToolkitEpisode(episodeID uint) (*model.ToolkitEpisode, error) {
	if m.findToolkitEpisodeFunc != nil {
		return m.findToolkitEpisodeFunc(episodeID)
	}
	return nil, errors.New("not implemented")
}

func (m *mockCareRepository) FindTreatment(treatmentID uint) (*model.Treatment, error) {
	if m.findTreatmentFunc != nil {
		return m.findTreatmentFunc(treatmentID)
	}
	return nil, errors.New("not implemented")
}

func (m *mockCareRepository) FindAppointment(appointmentID uint) (*model.Appointment, error) {
	if m.findAppointmentFunc != nil {
		return m.findAppointmentFunc(appointmentID)
	}
	return nil, errors.New("not implemented")
}

func (m *mockCareRepository) FindAppointmentsByTreatment(treatmentID uint) ([]model.Appointment, error) {
	if m.findAppointmentsByTreatmentFunc != nil {
		return m.findAppointmentsByTreatmentFunc(treatmentID)
	}
	return nil, errors.New("not implemented")
}

// newTestDB backs a gorm handle with sqlmock so explicit transactions issue
// real BEGIN/COMMIT against expectations while repositories stay mocked.
func newTestDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{
		Conn:                 sqlDB,
		PreferSimpleProtocol: true,
	}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("gorm.Open: %v", err)
	}
	return db, mock
}
