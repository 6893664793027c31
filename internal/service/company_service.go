package service

import (
	"context"
	"strings"

	"docflow/internal/model"
	"docflow/internal/repository"
	"docflow/pkg/apperror"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type CompanyService interface {
	CreateCompany(ctx context.Context, req CreateCompanyRequest) (CompanyResponse, error)
	GetCompany(ctx context.Context, id string) (CompanyResponse, error)
	GetCompanyByTaxID(ctx context.Context, taxID string) (CompanyResponse, error)
	ListCompanies(ctx context.Context, minEmployees *int, page, limit int) ([]CompanyResponse, int64, error)
	DeleteCompany(ctx context.Context, id string) error
}

type companyService struct {
	companyRepo repository.CompanyRepository
	uow         repository.UnitOfWork
	logger      *zap.Logger
}

func NewCompanyService(companyRepo repository.CompanyRepository, uow repository.UnitOfWork, logger *zap.Logger) CompanyService {
	return &companyService{companyRepo: companyRepo, uow: uow, logger: logger}
}

func (s *companyService) CreateCompany(ctx context.Context, req CreateCompanyRequest) (CompanyResponse, error) {
	company := &model.Company{
		TaxID:         strings.TrimSpace(req.TaxID),
		Name:          strings.TrimSpace(req.Name),
		Location:      strings.TrimSpace(req.Location),
		EmployeeCount: req.EmployeeCount,
	}
	if company.TaxID == "" || company.Name == "" || company.Location == "" {
		return CompanyResponse{}, apperror.Validation("tax_id, name and location are required")
	}
	if company.EmployeeCount < 0 {
		return CompanyResponse{}, apperror.Validation("employee_count cannot be negative")
	}

	if err := s.companyRepo.Create(ctx, company); err != nil {
		return CompanyResponse{}, err
	}
	s.logger.Info("Company created", zap.String("company_id", company.ID.String()), zap.String("tax_id", company.TaxID))
	return toCompanyResponse(*company), nil
}

func (s *companyService) GetCompany(ctx context.Context, id string) (CompanyResponse, error) {
	companyID, err := uuid.Parse(id)
	if err != nil {
		return CompanyResponse{}, apperror.Validation("invalid company id %q", id)
	}
	company, err := s.companyRepo.FindByID(ctx, companyID)
	if err != nil {
		return CompanyResponse{}, err
	}
	return toCompanyResponse(*company), nil
}

func (s *companyService) GetCompanyByTaxID(ctx context.Context, taxID string) (CompanyResponse, error) {
	company, err := s.companyRepo.FindByTaxID(ctx, strings.TrimSpace(taxID))
	if err != nil {
		return CompanyResponse{}, err
	}
	return toCompanyResponse(*company), nil
}

func (s *companyService) ListCompanies(ctx context.Context, minEmployees *int, page, limit int) ([]CompanyResponse, int64, error) {
	companies, total, err := s.companyRepo.List(ctx, minEmployees, page, limit)
	if err != nil {
		return nil, 0, err
	}
	result := make([]CompanyResponse, 0, len(companies))
	for _, c := range companies {
		result = append(result, toCompanyResponse(c))
	}
	return result, total, nil
}

// DeleteCompany removes a company that owns no documents.
func (s *companyService) DeleteCompany(ctx context.Context, id string) error {
	companyID, err := uuid.Parse(id)
	if err != nil {
		return apperror.Validation("invalid company id %q", id)
	}

	err = s.uow.Do(ctx, func(ctx context.Context, repos repository.Repositories) error {
		count, err := repos.Documents.CountByCompany(ctx, companyID)
		if err != nil {
			return err
		}
		if count > 0 {
			return apperror.Conflict("company %s still owns %d documents", companyID, count)
		}
		return repos.Companies.Delete(ctx, companyID)
	})
	if err != nil {
		return err
	}

	s.logger.Info("Company deleted", zap.String("company_id", companyID.String()))
	return nil
}
