package handler

import (
	"net/http"

	"docflow/pkg/apperror"
	"docflow/pkg/response"

	"github.com/gin-gonic/gin"
)

var kindStatus = map[apperror.Kind]int{
	apperror.KindValidation:        http.StatusBadRequest,
	apperror.KindInvalidAction:     http.StatusUnprocessableEntity,
	apperror.KindNotFound:          http.StatusNotFound,
	apperror.KindIllegalTransition: http.StatusConflict,
	apperror.KindConflict:          http.StatusConflict,
	apperror.KindPersistence:       http.StatusInternalServerError,
}

// StatusFor maps an error kind onto its HTTP status.
func StatusFor(err error) int {
	if status, ok := kindStatus[apperror.KindOf(err)]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// respondError writes the error envelope. Server errors hide storage details from the
// body and attach the cause to the gin context for the request logger.
func respondError(c *gin.Context, err error) {
	status := StatusFor(err)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		_ = c.Error(err)
		msg = "internal storage error"
	}
	c.JSON(status, response.Error(status, msg))
}

func respondBindError(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "invalid request body: "+err.Error()))
}
