package handler

import (
	"net/http"

	"docflow/internal/service"
	"docflow/pkg/pagination"
	"docflow/pkg/response"

	"github.com/gin-gonic/gin"
)

type ValidationHandler struct {
	validationService service.ValidationService
}

func NewValidationHandler(validationService service.ValidationService) *ValidationHandler {
	return &ValidationHandler{validationService: validationService}
}

func (h *ValidationHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/api/validations", h.ListByActor)
}

// ListByActor returns every action an actor submitted, newest first
// @Summary      List validations by actor
// @Tags         validations
// @Produce      json
// @Param        actor_id  query     string  true   "Actor ID"
// @Param        page      query     int     false  "Page number (default 1)"
// @Param        limit     query     int     false  "Items per page (default 20)"
// @Success      200       {object}  response.Response{data=object}
// @Failure      400       {object}  response.Response
// @Router       /api/validations [get]
func (h *ValidationHandler) ListByActor(c *gin.Context) {
	params := pagination.Parse(c)

	entries, total, err := h.validationService.ListByActor(c.Request.Context(), c.Query("actor_id"), params.Page, params.Limit)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, response.Page("validations", entries, total, params.Page, params.Limit)))
}
