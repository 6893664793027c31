package repository

import (
	"context"
	"errors"

	"docflow/pkg/apperror"

	"gorm.io/gorm"
)

// Repositories groups the stores a workflow operation may touch. Every member is bound
// to the same *gorm.DB, so inside UnitOfWork.Do they share one transaction.
type Repositories struct {
	Companies CompanyRepository
	Documents DocumentRepository
	Ledger    LedgerRepository
	Audits    AuditRepository
}

func NewRepositories(db *gorm.DB) Repositories {
	return Repositories{
		Companies: NewCompanyRepository(db),
		Documents: NewDocumentRepository(db),
		Ledger:    NewLedgerRepository(db),
		Audits:    NewAuditRepository(db),
	}
}

// UnitOfWork runs fn against repositories bound to one transaction. The transaction
// commits only when fn returns nil; any error or context cancellation rolls back every write.
type UnitOfWork interface {
	Do(ctx context.Context, fn func(ctx context.Context, repos Repositories) error) error
}

type unitOfWork struct {
	db *gorm.DB
}

func NewUnitOfWork(db *gorm.DB) UnitOfWork {
	return &unitOfWork{db: db}
}

func (u *unitOfWork) Do(ctx context.Context, fn func(ctx context.Context, repos Repositories) error) error {
	err := u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(ctx, NewRepositories(tx))
	})
	if err == nil {
		return nil
	}
	var appErr *apperror.Error
	if errors.As(err, &appErr) {
		return err
	}
	return apperror.Persistence(err, "transaction failed")
}
