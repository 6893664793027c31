package service

import (
	"context"
	"testing"

	"docflow/internal/model"
	"docflow/internal/repository"
	"docflow/pkg/apperror"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestCreateCompany(t *testing.T) {
	t.Run("trims and persists", func(t *testing.T) {
		companies := new(MockCompanyRepository)
		svc := NewCompanyService(companies, &fakeUnitOfWork{}, zap.NewNop())

		companies.On("Create", mock.Anything, mock.MatchedBy(func(c *model.Company) bool {
			return c.TaxID == "900-1" && c.Name == "Acme" && c.EmployeeCount == 3
		})).Return(nil)

		resp, err := svc.CreateCompany(context.Background(), CreateCompanyRequest{TaxID: " 900-1 ", Name: "Acme ", Location: "Cali", EmployeeCount: 3})
		require.NoError(t, err)
		assert.Equal(t, "900-1", resp.TaxID)
		companies.AssertExpectations(t)
	})

	t.Run("duplicate tax id surfaces as conflict", func(t *testing.T) {
		companies := new(MockCompanyRepository)
		svc := NewCompanyService(companies, &fakeUnitOfWork{}, zap.NewNop())
		companies.On("Create", mock.Anything, mock.Anything).Return(apperror.Conflict("tax id taken"))

		_, err := svc.CreateCompany(context.Background(), CreateCompanyRequest{TaxID: "1", Name: "A", Location: "B"})
		assert.ErrorIs(t, err, apperror.ErrConflict)
	})

	t.Run("blank fields are rejected", func(t *testing.T) {
		companies := new(MockCompanyRepository)
		svc := NewCompanyService(companies, &fakeUnitOfWork{}, zap.NewNop())

		_, err := svc.CreateCompany(context.Background(), CreateCompanyRequest{TaxID: " ", Name: "A", Location: "B"})
		assert.ErrorIs(t, err, apperror.ErrValidation)
		_, err = svc.CreateCompany(context.Background(), CreateCompanyRequest{TaxID: "1", Name: "A", Location: "B", EmployeeCount: -1})
		assert.ErrorIs(t, err, apperror.ErrValidation)
		companies.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}

func TestDeleteCompany(t *testing.T) {
	id := uuid.New()

	newSvc := func() (*MockCompanyRepository, *MockDocumentRepository, CompanyService) {
		companies := new(MockCompanyRepository)
		documents := new(MockDocumentRepository)
		uow := &fakeUnitOfWork{repos: repository.Repositories{Companies: companies, Documents: documents}}
		return companies, documents, NewCompanyService(companies, uow, zap.NewNop())
	}

	t.Run("restricted while documents exist", func(t *testing.T) {
		companies, documents, svc := newSvc()
		documents.On("CountByCompany", mock.Anything, id).Return(int64(2), nil)

		err := svc.DeleteCompany(context.Background(), id.String())
		assert.ErrorIs(t, err, apperror.ErrConflict)
		companies.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})

	t.Run("deletes an empty company", func(t *testing.T) {
		companies, documents, svc := newSvc()
		documents.On("CountByCompany", mock.Anything, id).Return(int64(0), nil)
		companies.On("Delete", mock.Anything, id).Return(nil)

		require.NoError(t, svc.DeleteCompany(context.Background(), id.String()))
		companies.AssertExpectations(t)
	})

	t.Run("invalid id", func(t *testing.T) {
		_, _, svc := newSvc()
		assert.ErrorIs(t, svc.DeleteCompany(context.Background(), "x"), apperror.ErrValidation)
	})
}

func TestListCompaniesPassesFilter(t *testing.T) {
	companies := new(MockCompanyRepository)
	svc := NewCompanyService(companies, &fakeUnitOfWork{}, zap.NewNop())

	minEmployees := 10
	rows := []model.Company{{ID: uuid.New(), TaxID: "1", Name: "Big", Location: "X", EmployeeCount: 50}}
	companies.On("List", mock.Anything, &minEmployees, 2, 5).Return(rows, int64(6), nil)

	list, total, err := svc.ListCompanies(context.Background(), &minEmployees, 2, 5)
	require.NoError(t, err)
	assert.EqualValues(t, 6, total)
	require.Len(t, list, 1)
	assert.Equal(t, "Big", list[0].Name)
}

func TestGetCompanyByTaxIDNotFound(t *testing.T) {
	companies := new(MockCompanyRepository)
	svc := NewCompanyService(companies, &fakeUnitOfWork{}, zap.NewNop())
	companies.On("FindByTaxID", mock.Anything, "404").Return(nil, apperror.NotFound("company with tax id 404"))

	_, err := svc.GetCompanyByTaxID(context.Background(), " 404 ")
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}
