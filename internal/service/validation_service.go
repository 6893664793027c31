package service

import (
	"context"
	"strings"

	"docflow/internal/repository"
	"docflow/pkg/apperror"

	"github.com/google/uuid"
)

type ValidationService interface {
	// ListByDocument returns the ledger ascending by step. Unknown documents yield an empty list.
	ListByDocument(ctx context.Context, documentID string) ([]ValidationResponse, error)
	ListByActor(ctx context.Context, actorID string, page, limit int) ([]ValidationResponse, int64, error)
}

type validationService struct {
	ledgerRepo repository.LedgerRepository
}

func NewValidationService(ledgerRepo repository.LedgerRepository) ValidationService {
	return &validationService{ledgerRepo: ledgerRepo}
}

func (s *validationService) ListByDocument(ctx context.Context, documentID string) ([]ValidationResponse, error) {
	docID, err := uuid.Parse(documentID)
	if err != nil {
		return nil, apperror.Validation("invalid document id %q", documentID)
	}
	entries, err := s.ledgerRepo.ListByDocument(ctx, docID)
	if err != nil {
		return nil, err
	}
	return toValidationResponses(entries), nil
}

func (s *validationService) ListByActor(ctx context.Context, actorID string, page, limit int) ([]ValidationResponse, int64, error) {
	actorID = strings.TrimSpace(actorID)
	if actorID == "" {
		return nil, 0, apperror.Validation("actor_id is required")
	}
	entries, total, err := s.ledgerRepo.ListByActor(ctx, actorID, page, limit)
	if err != nil {
		return nil, 0, err
	}
	return toValidationResponses(entries), total, nil
}
