package repository

import (
	"context"
	"iter"
	"time"

	"docflow/internal/model"
	"docflow/internal/workflow"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// LedgerRepository is the append-only validation step log of each document.
type LedgerRepository interface {
	// Append records action as the next step of the document. A concurrent append that
	// claimed the same step first makes this call fail with a conflict.
	Append(ctx context.Context, documentID uuid.UUID, actorID string, action workflow.Action, reason *string, at time.Time) (*model.ValidationInstance, error)
	// IterByDocument yields the ledger ascending by step. Each range over the result re-runs the query.
	IterByDocument(ctx context.Context, documentID uuid.UUID) iter.Seq2[model.ValidationInstance, error]
	ListByDocument(ctx context.Context, documentID uuid.UUID) ([]model.ValidationInstance, error)
	ListByActor(ctx context.Context, actorID string, page, limit int) ([]model.ValidationInstance, int64, error)
}

type ledgerRepository struct {
	db *gorm.DB
}

func NewLedgerRepository(db *gorm.DB) LedgerRepository {
	return &ledgerRepository{db: db}
}

func (r *ledgerRepository) Append(ctx context.Context, documentID uuid.UUID, actorID string, action workflow.Action, reason *string, at time.Time) (*model.ValidationInstance, error) {
	db := r.db.WithContext(ctx)

	var last int
	err := db.Model(&model.ValidationInstance{}).
		Where("document_id = ?", documentID).
		Select("COALESCE(MAX(step_order), -1)").
		Scan(&last).Error
	if err != nil {
		return nil, translateError(err, "read last step of document %s", documentID)
	}

	entry := &model.ValidationInstance{
		DocumentID: documentID,
		ActorID:    actorID,
		StepOrder:  last + 1,
		Action:     action,
		Reason:     reason,
		RecordedAt: at,
	}
	if err := db.Create(entry).Error; err != nil {
		return nil, translateError(err, "append step %d to document %s", entry.StepOrder, documentID)
	}
	return entry, nil
}

func (r *ledgerRepository) IterByDocument(ctx context.Context, documentID uuid.UUID) iter.Seq2[model.ValidationInstance, error] {
	return func(yield func(model.ValidationInstance, error) bool) {
		db := r.db.WithContext(ctx)
		rows, err := db.Model(&model.ValidationInstance{}).
			Where("document_id = ?", documentID).
			Order("step_order ASC").
			Rows()
		if err != nil {
			yield(model.ValidationInstance{}, translateError(err, "list ledger of document %s", documentID))
			return
		}
		defer rows.Close()

		for rows.Next() {
			var entry model.ValidationInstance
			if err := db.ScanRows(rows, &entry); err != nil {
				yield(model.ValidationInstance{}, translateError(err, "scan ledger of document %s", documentID))
				return
			}
			if !yield(entry, nil) {
				return
			}
		}
		if err := rows.Err(); err != nil {
			yield(model.ValidationInstance{}, translateError(err, "list ledger of document %s", documentID))
		}
	}
}

func (r *ledgerRepository) ListByDocument(ctx context.Context, documentID uuid.UUID) ([]model.ValidationInstance, error) {
	return Collect(r.IterByDocument(ctx, documentID))
}

func (r *ledgerRepository) ListByActor(ctx context.Context, actorID string, page, limit int) ([]model.ValidationInstance, int64, error) {
	var entries []model.ValidationInstance
	var total int64

	query := r.db.WithContext(ctx).Model(&model.ValidationInstance{}).Where("actor_id = ?", actorID).Session(&gorm.Session{})
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, translateError(err, "count steps of actor %s", actorID)
	}
	err := paginate(query.Order("recorded_at DESC").Order("step_order DESC"), page, limit).Find(&entries).Error
	if err != nil {
		return nil, 0, translateError(err, "list steps of actor %s", actorID)
	}
	return entries, total, nil
}
