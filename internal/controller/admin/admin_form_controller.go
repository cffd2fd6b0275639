package admin

import (
	"net/http"

	"github.com/careloop/formflow/internal/controller"
	"github.com/careloop/formflow/internal/dto"
	"github.com/careloop/formflow/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

type AdminFormController struct {
	adminFormService service.AdminFormService
}

func NewAdminFormController(adminFormService service.AdminFormService) *AdminFormController {
	return &AdminFormController{adminFormService: adminFormService}
}

// CreateForm godoc
// @Summary (Admin) Create a form with pages, questions and options
// @Description Content tooling creates a whole form in one request. Question types and option shapes are validated against the registry.
// @Tags Admin - Forms
// @Accept json
// @Produce json
// @Param form_data body dto.FormCreateDTO true "Form definition"
// @Success 201 {object} dto.FormDTO
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /admin/forms [post]
func (c *AdminFormController) CreateForm(ctx *gin.Context) {
	var req dto.FormCreateDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		log.Warn().Err(err).Msg("Admin CreateForm: failed to bind JSON")
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "invalid request body", Key: "request_body_invalid", Details: []string{err.Error()}})
		return
	}

	form, err := c.adminFormService.CreateForm(req)
	if err != nil {
		log.Error().Err(err).Str("title", req.Title).Msg("Admin CreateForm: service error")
		controller.WriteError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, form)
}
