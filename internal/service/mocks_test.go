package service

import (
	"context"
	"iter"
	"time"

	"docflow/internal/model"
	"docflow/internal/repository"
	"docflow/internal/workflow"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockCompanyRepository is a mock implementation of repository.CompanyRepository
type MockCompanyRepository struct {
	mock.Mock
}

var _ repository.CompanyRepository = (*MockCompanyRepository)(nil)

func (m *MockCompanyRepository) Create(ctx context.Context, company *model.Company) error {
	args := m.Called(ctx, company)
	return args.Error(0)
}

func (m *MockCompanyRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Company, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Company), args.Error(1)
}

func (m *MockCompanyRepository) FindByTaxID(ctx context.Context, taxID string) (*model.Company, error) {
	args := m.Called(ctx, taxID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Company), args.Error(1)
}

func (m *MockCompanyRepository) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockCompanyRepository) List(ctx context.Context, minEmployees *int, page, limit int) ([]model.Company, int64, error) {
	args := m.Called(ctx, minEmployees, page, limit)
	return args.Get(0).([]model.Company), args.Get(1).(int64), args.Error(2)
}

func (m *MockCompanyRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockDocumentRepository is a mock implementation of repository.DocumentRepository
type MockDocumentRepository struct {
	mock.Mock
}

var _ repository.DocumentRepository = (*MockDocumentRepository)(nil)

func (m *MockDocumentRepository) Create(ctx context.Context, doc *model.Document) error {
	args := m.Called(ctx, doc)
	return args.Error(0)
}

func (m *MockDocumentRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Document, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Document), args.Error(1)
}

func (m *MockDocumentRepository) FindForUpdate(ctx context.Context, id uuid.UUID) (*model.Document, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Document), args.Error(1)
}

func (m *MockDocumentRepository) TransitionState(ctx context.Context, doc *model.Document, next workflow.State, at time.Time) error {
	args := m.Called(ctx, doc, next, at)
	return args.Error(0)
}

func (m *MockDocumentRepository) CountByCompany(ctx context.Context, companyID uuid.UUID) (int64, error) {
	args := m.Called(ctx, companyID)
	return args.Get(0).(int64), args.Error(1)
}

// MockLedgerRepository is a mock implementation of repository.LedgerRepository
type MockLedgerRepository struct {
	mock.Mock
}

var _ repository.LedgerRepository = (*MockLedgerRepository)(nil)

func (m *MockLedgerRepository) Append(ctx context.Context, documentID uuid.UUID, actorID string, action workflow.Action, reason *string, at time.Time) (*model.ValidationInstance, error) {
	args := m.Called(ctx, documentID, actorID, action, reason, at)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ValidationInstance), args.Error(1)
}

func (m *MockLedgerRepository) IterByDocument(ctx context.Context, documentID uuid.UUID) iter.Seq2[model.ValidationInstance, error] {
	args := m.Called(ctx, documentID)
	return args.Get(0).(iter.Seq2[model.ValidationInstance, error])
}

func (m *MockLedgerRepository) ListByDocument(ctx context.Context, documentID uuid.UUID) ([]model.ValidationInstance, error) {
	args := m.Called(ctx, documentID)
	return args.Get(0).([]model.ValidationInstance), args.Error(1)
}

func (m *MockLedgerRepository) ListByActor(ctx context.Context, actorID string, page, limit int) ([]model.ValidationInstance, int64, error) {
	args := m.Called(ctx, actorID, page, limit)
	return args.Get(0).([]model.ValidationInstance), args.Get(1).(int64), args.Error(2)
}

// MockAuditRepository is a mock implementation of repository.AuditRepository
type MockAuditRepository struct {
	mock.Mock
}

var _ repository.AuditRepository = (*MockAuditRepository)(nil)

func (m *MockAuditRepository) Record(ctx context.Context, documentID uuid.UUID, actorID *string, prior, next workflow.State, changedAt time.Time) (*model.AuditRecord, error) {
	args := m.Called(ctx, documentID, actorID, prior, next, changedAt)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.AuditRecord), args.Error(1)
}

func (m *MockAuditRepository) HistoryFor(ctx context.Context, documentID uuid.UUID) iter.Seq2[model.AuditRecord, error] {
	args := m.Called(ctx, documentID)
	return args.Get(0).(iter.Seq2[model.AuditRecord, error])
}

func (m *MockAuditRepository) ListByDocument(ctx context.Context, documentID uuid.UUID) ([]model.AuditRecord, error) {
	args := m.Called(ctx, documentID)
	return args.Get(0).([]model.AuditRecord), args.Error(1)
}

func (m *MockAuditRepository) List(ctx context.Context, filter repository.AuditFilter, page, limit int) ([]model.AuditRecord, int64, error) {
	args := m.Called(ctx, filter, page, limit)
	return args.Get(0).([]model.AuditRecord), args.Get(1).(int64), args.Error(2)
}

// fakeUnitOfWork hands fn the mocked repositories without a real transaction.
type fakeUnitOfWork struct {
	repos repository.Repositories
	calls int
}

func (f *fakeUnitOfWork) Do(ctx context.Context, fn func(ctx context.Context, repos repository.Repositories) error) error {
	f.calls++
	return fn(ctx, f.repos)
}

// recordingPublisher captures published events.
type recordingPublisher struct {
	events []string
	data   []any
}

func (p *recordingPublisher) Publish(eventType string, data any) {
	p.events = append(p.events, eventType)
	p.data = append(p.data, data)
}
