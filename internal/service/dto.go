package service

import (
	"time"

	"docflow/internal/model"

	"github.com/google/uuid"
)

// --- Company DTOs ---

type CreateCompanyRequest struct {
	TaxID         string `json:"tax_id" binding:"required,max=20"`
	Name          string `json:"name" binding:"required,max=100"`
	Location      string `json:"location" binding:"required,max=100"`
	EmployeeCount int    `json:"employee_count" binding:"min=0"`
}

type CompanyResponse struct {
	ID            uuid.UUID `json:"id"`
	TaxID         string    `json:"tax_id"`
	Name          string    `json:"name"`
	Location      string    `json:"location"`
	EmployeeCount int       `json:"employee_count"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// --- Document DTOs ---

type CreateDocumentRequest struct {
	CompanyID      string `json:"company_id" binding:"required"`
	FileURL        string `json:"file_url" binding:"required,max=500"`
	ValidationFlow string `json:"validation_flow" binding:"required"` // JSON, stored as given
}

type DocumentResponse struct {
	ID             uuid.UUID `json:"id"`
	CompanyID      uuid.UUID `json:"company_id"`
	FileURL        string    `json:"file_url"`
	ValidationFlow string    `json:"validation_flow"`
	State          string    `json:"state"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// DocumentDetailResponse nests the owning company and the ledger, each loaded by id.
type DocumentDetailResponse struct {
	DocumentResponse
	Company     *CompanyResponse     `json:"company"`
	Validations []ValidationResponse `json:"validations"`
}

// --- Workflow DTOs ---

type SubmitActionRequest struct {
	ActorID string  `json:"actor_id"`
	Action  string  `json:"action" binding:"required"`
	Reason  *string `json:"reason"`
}

type SubmitActionResponse struct {
	DocumentID uuid.UUID `json:"document_id"`
	PriorState string    `json:"prior_state"`
	NewState   string    `json:"new_state"`
	StepOrder  int       `json:"step_order"`
}

type ValidationResponse struct {
	ID         uuid.UUID `json:"id"`
	DocumentID uuid.UUID `json:"document_id"`
	ActorID    string    `json:"actor_id"`
	StepOrder  int       `json:"step_order"`
	Action     string    `json:"action"`
	Reason     *string   `json:"reason"`
	RecordedAt time.Time `json:"recorded_at"`
}

type AuditResponse struct {
	ID         uuid.UUID `json:"id"`
	DocumentID uuid.UUID `json:"document_id"`
	ActorID    *string   `json:"actor_id"`
	PriorState string    `json:"prior_state"`
	NewState   string    `json:"new_state"`
	ChangedAt  time.Time `json:"changed_at"`
}

// AuditQuery filters cross-document audit listings. States accept a code or a name.
type AuditQuery struct {
	ActorID    string
	PriorState string
	NewState   string
	Page       int
	Limit      int
}

// --- Mappers ---

func toCompanyResponse(c model.Company) CompanyResponse {
	return CompanyResponse{
		ID:            c.ID,
		TaxID:         c.TaxID,
		Name:          c.Name,
		Location:      c.Location,
		EmployeeCount: c.EmployeeCount,
		CreatedAt:     c.CreatedAt,
		UpdatedAt:     c.UpdatedAt,
	}
}

func toDocumentResponse(d model.Document) DocumentResponse {
	return DocumentResponse{
		ID:             d.ID,
		CompanyID:      d.CompanyID,
		FileURL:        d.FileURL,
		ValidationFlow: d.ValidationFlow,
		State:          d.State.String(),
		CreatedAt:      d.CreatedAt,
		UpdatedAt:      d.UpdatedAt,
	}
}

func toValidationResponse(v model.ValidationInstance) ValidationResponse {
	return ValidationResponse{
		ID:         v.ID,
		DocumentID: v.DocumentID,
		ActorID:    v.ActorID,
		StepOrder:  v.StepOrder,
		Action:     v.Action.String(),
		Reason:     v.Reason,
		RecordedAt: v.RecordedAt,
	}
}

func toValidationResponses(entries []model.ValidationInstance) []ValidationResponse {
	result := make([]ValidationResponse, 0, len(entries))
	for _, e := range entries {
		result = append(result, toValidationResponse(e))
	}
	return result
}

func toAuditResponse(a model.AuditRecord) AuditResponse {
	return AuditResponse{
		ID:         a.ID,
		DocumentID: a.DocumentID,
		ActorID:    a.ActorID,
		PriorState: a.PriorState.String(),
		NewState:   a.NewState.String(),
		ChangedAt:  a.ChangedAt,
	}
}

func toAuditResponses(records []model.AuditRecord) []AuditResponse {
	result := make([]AuditResponse, 0, len(records))
	for _, r := range records {
		result = append(result, toAuditResponse(r))
	}
	return result
}
