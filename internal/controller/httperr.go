// Package controller holds the transport-facing helpers shared by the admin
// and user controller packages.
package controller

import (
	"net/http"

	"github.com/careloop/formflow/internal/apperr"
	"github.com/careloop/formflow/internal/dto"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// WriteError maps the error taxonomy onto HTTP statuses. Callers get the
// stable message key and any attached details; internal causes are only
// logged.
func WriteError(ctx *gin.Context, err error) {
	kind := apperr.KindOf(err)
	key := apperr.KeyOf(err)

	status := http.StatusInternalServerError
	message := "internal server error"
	switch kind {
	case apperr.KindNotFound:
		status = http.StatusNotFound
		message = "resource not found"
	case apperr.KindBadRequest:
		status = http.StatusBadRequest
		message = "invalid request"
	case apperr.KindConflict:
		status = http.StatusConflict
		message = "conflicting state"
	case apperr.KindConfig:
		// Configuration defects are server faults, never caller-correctable.
		log.Error().Err(err).Msg("configuration defect surfaced on request path")
		key = "internal_error"
	case apperr.KindInternal:
		log.Error().Err(err).Msg("internal error surfaced on request path")
		key = apperr.KeyOf(err)
	}

	ctx.JSON(status, dto.ErrorResponse{
		Message: message,
		Key:     key,
		Details: apperr.DetailsOf(err),
	})
}
