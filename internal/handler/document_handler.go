package handler

import (
	"net/http"

	"docflow/internal/middleware"
	"docflow/internal/service"
	"docflow/pkg/response"

	"github.com/gin-gonic/gin"
)

type DocumentHandler struct {
	documentService   service.DocumentService
	workflowService   service.WorkflowService
	validationService service.ValidationService
	auditService      service.AuditService
}

func NewDocumentHandler(
	documentService service.DocumentService,
	workflowService service.WorkflowService,
	validationService service.ValidationService,
	auditService service.AuditService,
) *DocumentHandler {
	return &DocumentHandler{
		documentService:   documentService,
		workflowService:   workflowService,
		validationService: validationService,
		auditService:      auditService,
	}
}

func (h *DocumentHandler) RegisterRoutes(router *gin.RouterGroup) {
	documents := router.Group("/api/documents")
	{
		documents.POST("", h.CreateDocument)
		documents.GET("/:id", h.GetDocument)
		documents.POST("/:id/actions", h.SubmitAction)
		documents.GET("/:id/validations", h.ListValidationHistory)
		documents.GET("/:id/audits", h.ListAuditHistory)
	}
}

// CreateDocument registers a document in Pending state
// @Summary      Create document
// @Tags         documents
// @Accept       json
// @Produce      json
// @Param        request  body      service.CreateDocumentRequest  true  "Document"
// @Success      201      {object}  response.Response{data=service.DocumentResponse}
// @Failure      400      {object}  response.Response
// @Router       /api/documents [post]
func (h *DocumentHandler) CreateDocument(c *gin.Context) {
	var req service.CreateDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	doc, err := h.documentService.CreateDocument(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, doc))
}

// GetDocument returns a document with its company and validation ledger
// @Summary      Get document
// @Tags         documents
// @Produce      json
// @Param        id   path      string  true  "Document ID"
// @Success      200  {object}  response.Response{data=service.DocumentDetailResponse}
// @Failure      404  {object}  response.Response
// @Router       /api/documents/{id} [get]
func (h *DocumentHandler) GetDocument(c *gin.Context) {
	doc, err := h.documentService.GetDocument(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, doc))
}

// SubmitAction approves or rejects a pending document
// @Summary      Submit validation action
// @Description  Accepts Approve or Reject (Aprobar/Rechazar, any case). actor_id falls back to the X-Actor-ID header.
// @Tags         documents
// @Accept       json
// @Produce      json
// @Param        id          path      string                       true   "Document ID"
// @Param        X-Actor-ID  header    string                       false  "Acting user"
// @Param        request     body      service.SubmitActionRequest  true   "Action"
// @Success      200         {object}  response.Response{data=service.SubmitActionResponse}
// @Failure      400         {object}  response.Response
// @Failure      404         {object}  response.Response
// @Failure      409         {object}  response.Response
// @Failure      422         {object}  response.Response
// @Failure      500         {object}  response.Response
// @Router       /api/documents/{id}/actions [post]
func (h *DocumentHandler) SubmitAction(c *gin.Context) {
	var req service.SubmitActionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	if req.ActorID == "" {
		req.ActorID = middleware.ActorID(c)
	}

	result, err := h.workflowService.SubmitAction(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, result))
}

// ListValidationHistory returns the document's ledger ascending by step
// @Summary      List validation history
// @Tags         documents
// @Produce      json
// @Param        id   path      string  true  "Document ID"
// @Success      200  {object}  response.Response{data=[]service.ValidationResponse}
// @Router       /api/documents/{id}/validations [get]
func (h *DocumentHandler) ListValidationHistory(c *gin.Context) {
	entries, err := h.validationService.ListByDocument(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, entries))
}

// ListAuditHistory returns the document's state transitions ascending by time
// @Summary      List audit history
// @Tags         documents
// @Produce      json
// @Param        id   path      string  true  "Document ID"
// @Success      200  {object}  response.Response{data=[]service.AuditResponse}
// @Router       /api/documents/{id}/audits [get]
func (h *DocumentHandler) ListAuditHistory(c *gin.Context) {
	records, err := h.auditService.ListByDocument(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, records))
}
