package user

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/careloop/formflow/internal/controller"
	"github.com/careloop/formflow/internal/dto"
	"github.com/careloop/formflow/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

type FormController struct {
	formService    service.FormService
	answerService  service.AnswerService
	resultService  service.FormResultService
	historyService service.HistoryService
	insightService service.InsightService
}

func NewFormController(
	formService service.FormService,
	answerService service.AnswerService,
	resultService service.FormResultService,
	historyService service.HistoryService,
	insightService service.InsightService,
) *FormController {
	return &FormController{
		formService:    formService,
		answerService:  answerService,
		resultService:  resultService,
		historyService: historyService,
		insightService: insightService,
	}
}

// GetFormInfo godoc
// @Summary Get form entry info
// @Description Resolves a form by toolkit or form id and returns its first page, page count and a fresh session id.
// @Tags Forms
// @Produce json
// @Param toolkit_id query int false "Toolkit ID (mutually exclusive with form_id)"
// @Param form_id query int false "Form ID (mutually exclusive with toolkit_id)"
// @Success 200 {object} dto.FormInfoDTO
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /forms/info [get]
func (c *FormController) GetFormInfo(ctx *gin.Context) {
	toolkitID, ok := optionalUintQuery(ctx, "toolkit_id")
	if !ok {
		return
	}
	formID, ok := optionalUintQuery(ctx, "form_id")
	if !ok {
		return
	}

	info, err := c.formService.GetFormInfo(toolkitID, formID)
	if err != nil {
		controller.WriteError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, info)
}

// GetFormPageQuestions godoc
// @Summary Get a page's questions with options
// @Tags Forms
// @Produce json
// @Param form_id path int true "Form ID"
// @Param page_id path int true "Page ID"
// @Success 200 {object} dto.PageQuestionsDTO
// @Failure 404 {object} dto.ErrorResponse
// @Router /forms/{form_id}/pages/{page_id}/questions [get]
func (c *FormController) GetFormPageQuestions(ctx *gin.Context) {
	formID, ok := uintParam(ctx, "form_id")
	if !ok {
		return
	}
	pageID, ok := uintParam(ctx, "page_id")
	if !ok {
		return
	}

	page, err := c.formService.GetFormPageQuestions(formID, pageID)
	if err != nil {
		controller.WriteError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, page)
}

// SavePageAnswers godoc
// @Summary Replace a page's answers for a session
// @Description Validates the batch against the page's questions, replaces all stored answers for the session and recomputes the page points.
// @Tags Forms
// @Accept json
// @Produce json
// @Param form_id path int true "Form ID"
// @Param page_id path int true "Page ID"
// @Param answers body dto.SavePageAnswersRequest true "Session info and tagged answers"
// @Success 200 {object} dto.SavePageAnswersResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /forms/{form_id}/pages/{page_id}/answers [post]
func (c *FormController) SavePageAnswers(ctx *gin.Context) {
	formID, ok := uintParam(ctx, "form_id")
	if !ok {
		return
	}
	pageID, ok := uintParam(ctx, "page_id")
	if !ok {
		return
	}

	var req dto.SavePageAnswersRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		log.Warn().Err(err).Msg("SavePageAnswers: failed to bind JSON")
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "invalid request body", Key: "request_body_invalid", Details: []string{err.Error()}})
		return
	}

	resp, err := c.answerService.SavePageAnswers(formID, pageID, req)
	if err != nil {
		controller.WriteError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// SaveUserFormAnswers godoc
// @Summary Mark a form as completed for a session
// @Tags Forms
// @Accept json
// @Produce json
// @Param form_id path int true "Form ID"
// @Param submission body dto.SaveUserFormAnswersRequest true "Session and context info"
// @Success 201 {object} dto.SaveUserFormAnswersResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /forms/{form_id}/answers [post]
func (c *FormController) SaveUserFormAnswers(ctx *gin.Context) {
	formID, ok := uintParam(ctx, "form_id")
	if !ok {
		return
	}

	var req dto.SaveUserFormAnswersRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		log.Warn().Err(err).Msg("SaveUserFormAnswers: failed to bind JSON")
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "invalid request body", Key: "request_body_invalid", Details: []string{err.Error()}})
		return
	}

	resp, err := c.resultService.SaveUserFormAnswers(formID, req)
	if err != nil {
		controller.WriteError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, resp)
}

// GetFormResult godoc
// @Summary Get the scored result for a completed form session
// @Tags Forms
// @Produce json
// @Param user_form_answer_id path int true "UserFormAnswer ID"
// @Param locale query string false "Caller locale for bracket text"
// @Success 200 {object} dto.FormResultDTO
// @Failure 404 {object} dto.ErrorResponse
// @Router /form-answers/{user_form_answer_id}/result [get]
func (c *FormController) GetFormResult(ctx *gin.Context) {
	ufaID, ok := uintParam(ctx, "user_form_answer_id")
	if !ok {
		return
	}

	result, err := c.resultService.GetFormResult(ufaID, ctx.Query("locale"))
	if err != nil {
		controller.WriteError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, result)
}

// GetFormHistory godoc
// @Summary Get a session's answered page
// @Description Returns the page's questions with their resolved answers and options flagged with selection state.
// @Tags Forms
// @Produce json
// @Param toolkit_id query int false "Toolkit ID (mutually exclusive with form_id)"
// @Param form_id query int false "Form ID (mutually exclusive with toolkit_id)"
// @Param session_id query string true "Session ID"
// @Param user_id query int true "User ID"
// @Param page_id query int false "Page ID (defaults to the first page)"
// @Success 200 {object} dto.FormHistoryDTO
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /forms/history [get]
func (c *FormController) GetFormHistory(ctx *gin.Context) {
	toolkitID, ok := optionalUintQuery(ctx, "toolkit_id")
	if !ok {
		return
	}
	formID, ok := optionalUintQuery(ctx, "form_id")
	if !ok {
		return
	}
	pageID, ok := optionalUintQuery(ctx, "page_id")
	if !ok {
		return
	}
	userID, ok := requiredUintQuery(ctx, "user_id")
	if !ok {
		return
	}
	sessionID := ctx.Query("session_id")
	if sessionID == "" {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "session_id is required", Key: "session_id_required"})
		return
	}

	history, err := c.historyService.GetFormHistory(service.FormHistoryRequest{
		ToolkitID: toolkitID,
		FormID:    formID,
		UserID:    userID,
		SessionID: sessionID,
		PageID:    pageID,
	})
	if err != nil {
		controller.WriteError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, history)
}

// GetAppointmentFormsInsight godoc
// @Summary Get per-date, per-category earned/maximum points across a treatment's appointments
// @Tags Insights
// @Produce json
// @Param treatment_id path int true "Treatment ID"
// @Param type query string true "Insight type: SESSION or COMPLAINT"
// @Param user_id query int true "User ID"
// @Param categories query string false "Comma-separated category filter, at most 7 distinct"
// @Success 200 {object} dto.FormsInsightDTO
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /treatments/{treatment_id}/forms-insight [get]
func (c *FormController) GetAppointmentFormsInsight(ctx *gin.Context) {
	treatmentID, ok := uintParam(ctx, "treatment_id")
	if !ok {
		return
	}
	userID, ok := requiredUintQuery(ctx, "user_id")
	if !ok {
		return
	}

	categories, err := parseCategories(ctx.Query("categories"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "invalid categories filter", Key: "categories_invalid", Details: []string{err.Error()}})
		return
	}

	insight, err := c.insightService.GetAppointmentFormsInsight(
		treatmentID, dto.InsightType(ctx.Query("type")), userID, categories)
	if err != nil {
		controller.WriteError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, insight)
}

func uintParam(ctx *gin.Context, name string) (uint, bool) {
	val, err := strconv.ParseUint(ctx.Param(name), 10, 32)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "invalid " + name, Key: name + "_invalid"})
		return 0, false
	}
	return uint(val), true
}

func requiredUintQuery(ctx *gin.Context, name string) (uint, bool) {
	val, err := strconv.ParseUint(ctx.Query(name), 10, 32)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: name + " is required", Key: name + "_invalid"})
		return 0, false
	}
	return uint(val), true
}

func optionalUintQuery(ctx *gin.Context, name string) (*uint, bool) {
	raw := ctx.Query(name)
	if raw == "" {
		return nil, true
	}
	val, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "invalid " + name, Key: name + "_invalid"})
		return nil, false
	}
	id := uint(val)
	return &id, true
}

func parseCategories(raw string) ([]int, error) {
	if raw == "" {
		return nil, nil
	}
	parts := strings.Split(raw, ",")
	out := make([]int, 0, len(parts))
	for _, p := range parts {
		v, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}
