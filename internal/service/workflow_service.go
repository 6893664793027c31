package service

import (
	"context"
	"strings"
	"time"
	"unicode/utf8"

	"docflow/internal/model"
	"docflow/internal/repository"
	"docflow/internal/workflow"
	"docflow/pkg/apperror"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	EventDocumentTransitioned = "document.transitioned"

	maxActorIDLength = 64
	maxReasonLength  = 200
)

// Publisher receives committed transitions. Delivery is best effort.
type Publisher interface {
	Publish(eventType string, data any)
}

type WorkflowService interface {
	// SubmitAction applies one validation action to a pending document. The ledger
	// append, state update and audit record commit together or not at all.
	SubmitAction(ctx context.Context, documentID string, req SubmitActionRequest) (SubmitActionResponse, error)
}

type workflowService struct {
	uow       repository.UnitOfWork
	publisher Publisher
	logger    *zap.Logger
	clock     func() time.Time
}

func NewWorkflowService(uow repository.UnitOfWork, publisher Publisher, logger *zap.Logger) WorkflowService {
	return &workflowService{uow: uow, publisher: publisher, logger: logger, clock: now}
}

func (s *workflowService) SubmitAction(ctx context.Context, documentID string, req SubmitActionRequest) (SubmitActionResponse, error) {
	docID, err := uuid.Parse(documentID)
	if err != nil {
		return SubmitActionResponse{}, apperror.Validation("invalid document id %q", documentID)
	}
	actorID := strings.TrimSpace(req.ActorID)
	if actorID == "" {
		return SubmitActionResponse{}, apperror.Validation("actor_id is required")
	}
	if utf8.RuneCountInString(actorID) > maxActorIDLength {
		return SubmitActionResponse{}, apperror.Validation("actor_id must be at most %d characters", maxActorIDLength)
	}
	reason, err := normalizeReason(req.Reason)
	if err != nil {
		return SubmitActionResponse{}, err
	}

	var (
		prior workflow.State
		entry *model.ValidationInstance
		doc   *model.Document
	)
	err = s.uow.Do(ctx, func(ctx context.Context, repos repository.Repositories) error {
		var err error
		doc, err = repos.Documents.FindForUpdate(ctx, docID)
		if err != nil {
			return err
		}

		action, next, err := workflow.Decide(doc.State, req.Action)
		if err != nil {
			return err
		}
		prior = doc.State
		at := s.clock()

		entry, err = repos.Ledger.Append(ctx, doc.ID, actorID, action, reason, at)
		if err != nil {
			return err
		}
		if err := repos.Documents.TransitionState(ctx, doc, next, at); err != nil {
			return err
		}
		_, err = repos.Audits.Record(ctx, doc.ID, &actorID, prior, next, at)
		return err
	})
	if err != nil {
		return SubmitActionResponse{}, err
	}

	resp := SubmitActionResponse{
		DocumentID: doc.ID,
		PriorState: prior.String(),
		NewState:   doc.State.String(),
		StepOrder:  entry.StepOrder,
	}

	s.logger.Info("Document transitioned",
		zap.String("document_id", doc.ID.String()),
		zap.String("actor_id", actorID),
		zap.String("action", entry.Action.String()),
		zap.String("prior_state", resp.PriorState),
		zap.String("new_state", resp.NewState),
		zap.Int("step_order", entry.StepOrder),
	)
	if s.publisher != nil {
		s.publisher.Publish(EventDocumentTransitioned, resp)
	}

	return resp, nil
}

func normalizeReason(reason *string) (*string, error) {
	if reason == nil {
		return nil, nil
	}
	trimmed := strings.TrimSpace(*reason)
	if trimmed == "" {
		return nil, nil
	}
	if utf8.RuneCountInString(trimmed) > maxReasonLength {
		return nil, apperror.Validation("reason must be at most %d characters", maxReasonLength)
	}
	return &trimmed, nil
}
