package service

import (
	"context"
	"strings"

	"docflow/internal/repository"
	"docflow/internal/workflow"
	"docflow/pkg/apperror"

	"github.com/google/uuid"
)

type AuditService interface {
	// ListByDocument returns the document's transitions ascending by time.
	ListByDocument(ctx context.Context, documentID string) ([]AuditResponse, error)
	ListByActor(ctx context.Context, actorID string, page, limit int) ([]AuditResponse, int64, error)
	ListByStateChange(ctx context.Context, priorState, newState string, page, limit int) ([]AuditResponse, int64, error)
	ListAudits(ctx context.Context, query AuditQuery) ([]AuditResponse, int64, error)
}

type auditService struct {
	auditRepo repository.AuditRepository
}

func NewAuditService(auditRepo repository.AuditRepository) AuditService {
	return &auditService{auditRepo: auditRepo}
}

func (s *auditService) ListByDocument(ctx context.Context, documentID string) ([]AuditResponse, error) {
	docID, err := uuid.Parse(documentID)
	if err != nil {
		return nil, apperror.Validation("invalid document id %q", documentID)
	}
	records, err := s.auditRepo.ListByDocument(ctx, docID)
	if err != nil {
		return nil, err
	}
	return toAuditResponses(records), nil
}

func (s *auditService) ListByActor(ctx context.Context, actorID string, page, limit int) ([]AuditResponse, int64, error) {
	if strings.TrimSpace(actorID) == "" {
		return nil, 0, apperror.Validation("actor_id is required")
	}
	return s.ListAudits(ctx, AuditQuery{ActorID: actorID, Page: page, Limit: limit})
}

func (s *auditService) ListByStateChange(ctx context.Context, priorState, newState string, page, limit int) ([]AuditResponse, int64, error) {
	if strings.TrimSpace(priorState) == "" || strings.TrimSpace(newState) == "" {
		return nil, 0, apperror.Validation("prior_state and new_state are required")
	}
	return s.ListAudits(ctx, AuditQuery{PriorState: priorState, NewState: newState, Page: page, Limit: limit})
}

// ListAudits requires at least one filter.
func (s *auditService) ListAudits(ctx context.Context, query AuditQuery) ([]AuditResponse, int64, error) {
	filter := repository.AuditFilter{ActorID: strings.TrimSpace(query.ActorID)}
	var err error
	if strings.TrimSpace(query.PriorState) != "" {
		if filter.PriorState, err = workflow.ParseState(query.PriorState); err != nil {
			return nil, 0, err
		}
	}
	if strings.TrimSpace(query.NewState) != "" {
		if filter.NewState, err = workflow.ParseState(query.NewState); err != nil {
			return nil, 0, err
		}
	}
	if filter == (repository.AuditFilter{}) {
		return nil, 0, apperror.Validation("at least one of actor_id, prior_state or new_state is required")
	}

	records, total, err := s.auditRepo.List(ctx, filter, query.Page, query.Limit)
	if err != nil {
		return nil, 0, err
	}
	return toAuditResponses(records), total, nil
}
