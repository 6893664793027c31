package handler

import (
	"net/http"

	"docflow/internal/service"
	"docflow/pkg/pagination"
	"docflow/pkg/response"

	"github.com/gin-gonic/gin"
)

type AuditHandler struct {
	auditService service.AuditService
}

func NewAuditHandler(auditService service.AuditService) *AuditHandler {
	return &AuditHandler{auditService: auditService}
}

func (h *AuditHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/api/audits", h.ListAudits)
}

// ListAudits retrieves transitions across documents filtered by actor and/or state change
// @Summary      List audit records
// @Description  At least one filter is required. States accept a name (Pending) or a code (P).
// @Tags         audits
// @Produce      json
// @Param        actor_id     query     string  false  "Actor ID"
// @Param        prior_state  query     string  false  "State before the transition"
// @Param        new_state    query     string  false  "State after the transition"
// @Param        page         query     int     false  "Page number (default 1)"
// @Param        limit        query     int     false  "Items per page (default 20)"
// @Success      200          {object}  response.Response{data=object}
// @Failure      400          {object}  response.Response
// @Router       /api/audits [get]
func (h *AuditHandler) ListAudits(c *gin.Context) {
	params := pagination.Parse(c)

	records, total, err := h.auditService.ListAudits(c.Request.Context(), service.AuditQuery{
		ActorID:    c.Query("actor_id"),
		PriorState: c.Query("prior_state"),
		NewState:   c.Query("new_state"),
		Page:       params.Page,
		Limit:      params.Limit,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, response.Page("audits", records, total, params.Page, params.Limit)))
}
