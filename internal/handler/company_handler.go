package handler

import (
	"net/http"
	"strconv"

	"docflow/internal/service"
	"docflow/pkg/pagination"
	"docflow/pkg/response"

	"github.com/gin-gonic/gin"
)

type CompanyHandler struct {
	companyService service.CompanyService
}

func NewCompanyHandler(companyService service.CompanyService) *CompanyHandler {
	return &CompanyHandler{companyService: companyService}
}

func (h *CompanyHandler) RegisterRoutes(router *gin.RouterGroup) {
	companies := router.Group("/api/companies")
	{
		companies.POST("", h.CreateCompany)
		companies.GET("", h.ListCompanies)
		companies.GET("/tax-id/:taxId", h.GetCompanyByTaxID)
		companies.GET("/:id", h.GetCompany)
		companies.DELETE("/:id", h.DeleteCompany)
	}
}

// CreateCompany registers a company that can own documents
// @Summary      Create company
// @Tags         companies
// @Accept       json
// @Produce      json
// @Param        request  body      service.CreateCompanyRequest  true  "Company"
// @Success      201      {object}  response.Response{data=service.CompanyResponse}
// @Failure      400      {object}  response.Response
// @Failure      409      {object}  response.Response
// @Router       /api/companies [post]
func (h *CompanyHandler) CreateCompany(c *gin.Context) {
	var req service.CreateCompanyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	company, err := h.companyService.CreateCompany(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, company))
}

// ListCompanies returns companies, newest first
// @Summary      List companies
// @Tags         companies
// @Produce      json
// @Param        page           query     int  false  "Page number (default 1)"
// @Param        limit          query     int  false  "Items per page (default 20)"
// @Param        min_employees  query     int  false  "Only companies with at least this many employees"
// @Success      200            {object}  response.Response{data=object}
// @Router       /api/companies [get]
func (h *CompanyHandler) ListCompanies(c *gin.Context) {
	params := pagination.Parse(c)

	var minEmployees *int
	if raw := c.Query("min_employees"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "min_employees must be a non-negative integer"))
			return
		}
		minEmployees = &n
	}

	companies, total, err := h.companyService.ListCompanies(c.Request.Context(), minEmployees, params.Page, params.Limit)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, response.Page("companies", companies, total, params.Page, params.Limit)))
}

// GetCompany returns one company by id
// @Summary      Get company
// @Tags         companies
// @Produce      json
// @Param        id   path      string  true  "Company ID"
// @Success      200  {object}  response.Response{data=service.CompanyResponse}
// @Failure      404  {object}  response.Response
// @Router       /api/companies/{id} [get]
func (h *CompanyHandler) GetCompany(c *gin.Context) {
	company, err := h.companyService.GetCompany(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, company))
}

// GetCompanyByTaxID looks a company up by its tax identifier
// @Summary      Get company by tax id
// @Tags         companies
// @Produce      json
// @Param        taxId  path      string  true  "Tax ID"
// @Success      200    {object}  response.Response{data=service.CompanyResponse}
// @Failure      404    {object}  response.Response
// @Router       /api/companies/tax-id/{taxId} [get]
func (h *CompanyHandler) GetCompanyByTaxID(c *gin.Context) {
	company, err := h.companyService.GetCompanyByTaxID(c.Request.Context(), c.Param("taxId"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, company))
}

// DeleteCompany removes a company that owns no documents
// @Summary      Delete company
// @Tags         companies
// @Produce      json
// @Param        id   path      string  true  "Company ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Failure      409  {object}  response.Response
// @Router       /api/companies/{id} [delete]
func (h *CompanyHandler) DeleteCompany(c *gin.Context) {
	if err := h.companyService.DeleteCompany(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, gin.H{"message": "Company deleted successfully"}))
}
