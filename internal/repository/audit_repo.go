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

// AuditFilter narrows cross-document audit queries. Zero fields are ignored.
type AuditFilter struct {
	ActorID    string
	PriorState workflow.State
	NewState   workflow.State
}

// AuditRepository records realized transitions. It never gates them.
type AuditRepository interface {
	// Record appends a transition. changedAt is moved forward when needed so a document's
	// history stays strictly ordered.
	Record(ctx context.Context, documentID uuid.UUID, actorID *string, prior, next workflow.State, changedAt time.Time) (*model.AuditRecord, error)
	// HistoryFor yields a document's records ascending by changedAt. Each range re-runs the query.
	HistoryFor(ctx context.Context, documentID uuid.UUID) iter.Seq2[model.AuditRecord, error]
	ListByDocument(ctx context.Context, documentID uuid.UUID) ([]model.AuditRecord, error)
	List(ctx context.Context, filter AuditFilter, page, limit int) ([]model.AuditRecord, int64, error)
}

type auditRepository struct {
	db *gorm.DB
}

func NewAuditRepository(db *gorm.DB) AuditRepository {
	return &auditRepository{db: db}
}

func (r *auditRepository) Record(ctx context.Context, documentID uuid.UUID, actorID *string, prior, next workflow.State, changedAt time.Time) (*model.AuditRecord, error) {
	db := r.db.WithContext(ctx)

	var latest []model.AuditRecord
	err := db.Where("document_id = ?", documentID).
		Order("changed_at DESC").
		Limit(1).
		Find(&latest).Error
	if err != nil {
		return nil, translateError(err, "read audit history of document %s", documentID)
	}
	if len(latest) > 0 && !changedAt.After(latest[0].ChangedAt) {
		changedAt = latest[0].ChangedAt.Add(time.Microsecond)
	}

	record := &model.AuditRecord{
		DocumentID: documentID,
		ActorID:    actorID,
		PriorState: prior,
		NewState:   next,
		ChangedAt:  changedAt,
	}
	if err := db.Create(record).Error; err != nil {
		return nil, translateError(err, "record audit for document %s", documentID)
	}
	return record, nil
}

func (r *auditRepository) HistoryFor(ctx context.Context, documentID uuid.UUID) iter.Seq2[model.AuditRecord, error] {
	return func(yield func(model.AuditRecord, error) bool) {
		db := r.db.WithContext(ctx)
		rows, err := db.Model(&model.AuditRecord{}).
			Where("document_id = ?", documentID).
			Order("changed_at ASC").
			Rows()
		if err != nil {
			yield(model.AuditRecord{}, translateError(err, "list audit history of document %s", documentID))
			return
		}
		defer rows.Close()

		for rows.Next() {
			var record model.AuditRecord
			if err := db.ScanRows(rows, &record); err != nil {
				yield(model.AuditRecord{}, translateError(err, "scan audit history of document %s", documentID))
				return
			}
			if !yield(record, nil) {
				return
			}
		}
		if err := rows.Err(); err != nil {
			yield(model.AuditRecord{}, translateError(err, "list audit history of document %s", documentID))
		}
	}
}

func (r *auditRepository) ListByDocument(ctx context.Context, documentID uuid.UUID) ([]model.AuditRecord, error) {
	return Collect(r.HistoryFor(ctx, documentID))
}

func (r *auditRepository) List(ctx context.Context, filter AuditFilter, page, limit int) ([]model.AuditRecord, int64, error) {
	var records []model.AuditRecord
	var total int64

	query := r.db.WithContext(ctx).Model(&model.AuditRecord{})
	if filter.ActorID != "" {
		query = query.Where("actor_id = ?", filter.ActorID)
	}
	if filter.PriorState != "" {
		query = query.Where("prior_state = ?", string(filter.PriorState))
	}
	if filter.NewState != "" {
		query = query.Where("new_state = ?", string(filter.NewState))
	}
	query = query.Session(&gorm.Session{})

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, translateError(err, "count audit records")
	}
	if err := paginate(query.Order("changed_at DESC"), page, limit).Find(&records).Error; err != nil {
		return nil, 0, translateError(err, "list audit records")
	}
	return records, total, nil
}
