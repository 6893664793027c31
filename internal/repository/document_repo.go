package repository

import (
	"context"
	"time"

	"docflow/internal/model"
	"docflow/internal/workflow"
	"docflow/pkg/apperror"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type DocumentRepository interface {
	Create(ctx context.Context, doc *model.Document) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Document, error)
	// FindForUpdate loads the document and holds a row lock until the surrounding transaction ends.
	FindForUpdate(ctx context.Context, id uuid.UUID) (*model.Document, error)
	// TransitionState writes next only if the row still carries doc's state and version.
	TransitionState(ctx context.Context, doc *model.Document, next workflow.State, at time.Time) error
	CountByCompany(ctx context.Context, companyID uuid.UUID) (int64, error)
}

type documentRepository struct {
	db *gorm.DB
}

func NewDocumentRepository(db *gorm.DB) DocumentRepository {
	return &documentRepository{db: db}
}

func (r *documentRepository) Create(ctx context.Context, doc *model.Document) error {
	err := r.db.WithContext(ctx).Create(doc).Error
	if err != nil && isForeignKeyViolation(err) {
		return apperror.Wrap(apperror.KindValidation, err, "company %s does not exist", doc.CompanyID)
	}
	return translateError(err, "create document")
}

func (r *documentRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Document, error) {
	var doc model.Document
	if err := r.db.WithContext(ctx).First(&doc, "id = ?", id).Error; err != nil {
		return nil, translateError(err, "document %s", id)
	}
	return &doc, nil
}

func (r *documentRepository) FindForUpdate(ctx context.Context, id uuid.UUID) (*model.Document, error) {
	var doc model.Document
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&doc, "id = ?", id).Error
	if err != nil {
		return nil, translateError(err, "document %s", id)
	}
	return &doc, nil
}

func (r *documentRepository) TransitionState(ctx context.Context, doc *model.Document, next workflow.State, at time.Time) error {
	result := r.db.WithContext(ctx).
		Model(&model.Document{}).
		Where("id = ? AND state = ? AND version = ?", doc.ID, string(doc.State), doc.Version).
		Updates(map[string]any{
			"state":      string(next),
			"version":    doc.Version + 1,
			"updated_at": at,
		})
	if result.Error != nil {
		return translateError(result.Error, "update state of document %s", doc.ID)
	}
	if result.RowsAffected == 0 {
		return apperror.Conflict("document %s was modified concurrently", doc.ID)
	}
	doc.State = next
	doc.Version++
	doc.UpdatedAt = at
	return nil
}

func (r *documentRepository) CountByCompany(ctx context.Context, companyID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Document{}).Where("company_id = ?", companyID).Count(&count).Error
	if err != nil {
		return 0, translateError(err, "count documents of company %s", companyID)
	}
	return count, nil
}
