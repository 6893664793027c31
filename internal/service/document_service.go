package service

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"docflow/internal/model"
	"docflow/internal/repository"
	"docflow/internal/workflow"
	"docflow/pkg/apperror"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type DocumentService interface {
	CreateDocument(ctx context.Context, req CreateDocumentRequest) (DocumentResponse, error)
	GetDocument(ctx context.Context, id string) (DocumentDetailResponse, error)
}

type documentService struct {
	companyRepo  repository.CompanyRepository
	documentRepo repository.DocumentRepository
	ledgerRepo   repository.LedgerRepository
	logger       *zap.Logger
	clock        func() time.Time
}

func NewDocumentService(
	companyRepo repository.CompanyRepository,
	documentRepo repository.DocumentRepository,
	ledgerRepo repository.LedgerRepository,
	logger *zap.Logger,
) DocumentService {
	return &documentService{
		companyRepo:  companyRepo,
		documentRepo: documentRepo,
		ledgerRepo:   ledgerRepo,
		logger:       logger,
		clock:        now,
	}
}

func (s *documentService) CreateDocument(ctx context.Context, req CreateDocumentRequest) (DocumentResponse, error) {
	companyID, err := uuid.Parse(req.CompanyID)
	if err != nil {
		return DocumentResponse{}, apperror.Validation("invalid company_id %q", req.CompanyID)
	}
	fileURL := strings.TrimSpace(req.FileURL)
	if fileURL == "" {
		return DocumentResponse{}, apperror.Validation("file_url is required")
	}
	if !json.Valid([]byte(req.ValidationFlow)) {
		return DocumentResponse{}, apperror.Validation("validation_flow must be valid JSON")
	}

	exists, err := s.companyRepo.Exists(ctx, companyID)
	if err != nil {
		return DocumentResponse{}, err
	}
	if !exists {
		return DocumentResponse{}, apperror.Validation("company %s does not exist", companyID)
	}

	doc := &model.Document{
		CompanyID:      companyID,
		FileURL:        fileURL,
		ValidationFlow: req.ValidationFlow,
		State:          workflow.StatePending,
		CreatedAt:      s.clock(),
	}
	if err := s.documentRepo.Create(ctx, doc); err != nil {
		return DocumentResponse{}, err
	}

	s.logger.Info("Document created",
		zap.String("document_id", doc.ID.String()),
		zap.String("company_id", companyID.String()),
	)
	return toDocumentResponse(*doc), nil
}

func (s *documentService) GetDocument(ctx context.Context, id string) (DocumentDetailResponse, error) {
	docID, err := uuid.Parse(id)
	if err != nil {
		return DocumentDetailResponse{}, apperror.Validation("invalid document id %q", id)
	}

	doc, err := s.documentRepo.FindByID(ctx, docID)
	if err != nil {
		return DocumentDetailResponse{}, err
	}
	company, err := s.companyRepo.FindByID(ctx, doc.CompanyID)
	if err != nil {
		return DocumentDetailResponse{}, err
	}
	entries, err := s.ledgerRepo.ListByDocument(ctx, doc.ID)
	if err != nil {
		return DocumentDetailResponse{}, err
	}

	companyResp := toCompanyResponse(*company)
	return DocumentDetailResponse{
		DocumentResponse: toDocumentResponse(*doc),
		Company:          &companyResp,
		Validations:      toValidationResponses(entries),
	}, nil
}
