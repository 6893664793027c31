package repository

import (
	"context"

	"docflow/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CompanyRepository interface {
	Create(ctx context.Context, company *model.Company) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Company, error)
	FindByTaxID(ctx context.Context, taxID string) (*model.Company, error)
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
	List(ctx context.Context, minEmployees *int, page, limit int) ([]model.Company, int64, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type companyRepository struct {
	db *gorm.DB
}

func NewCompanyRepository(db *gorm.DB) CompanyRepository {
	return &companyRepository{db: db}
}

func (r *companyRepository) Create(ctx context.Context, company *model.Company) error {
	if err := r.db.WithContext(ctx).Create(company).Error; err != nil {
		return translateError(err, "create company with tax id %s", company.TaxID)
	}
	return nil
}

func (r *companyRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Company, error) {
	var company model.Company
	if err := r.db.WithContext(ctx).First(&company, "id = ?", id).Error; err != nil {
		return nil, translateError(err, "company %s", id)
	}
	return &company, nil
}

func (r *companyRepository) FindByTaxID(ctx context.Context, taxID string) (*model.Company, error) {
	var company model.Company
	if err := r.db.WithContext(ctx).First(&company, "tax_id = ?", taxID).Error; err != nil {
		return nil, translateError(err, "company with tax id %s", taxID)
	}
	return &company, nil
}

func (r *companyRepository) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&model.Company{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, translateError(err, "check company %s", id)
	}
	return count > 0, nil
}

func (r *companyRepository) List(ctx context.Context, minEmployees *int, page, limit int) ([]model.Company, int64, error) {
	var companies []model.Company
	var total int64

	query := r.db.WithContext(ctx).Model(&model.Company{})
	if minEmployees != nil {
		query = query.Where("employee_count >= ?", *minEmployees)
	}
	query = query.Session(&gorm.Session{})

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, translateError(err, "count companies")
	}
	if err := paginate(query.Order("created_at DESC"), page, limit).Find(&companies).Error; err != nil {
		return nil, 0, translateError(err, "list companies")
	}

	return companies, total, nil
}

// Delete removes a company. The documents foreign key restricts deletion, which surfaces as a conflict.
func (r *companyRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Company{})
	if result.Error != nil {
		return translateError(result.Error, "delete company %s", id)
	}
	if result.RowsAffected == 0 {
		return translateError(gorm.ErrRecordNotFound, "company %s", id)
	}
	return nil
}
