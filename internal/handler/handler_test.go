package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"

	"docflow/internal/database"
	"docflow/internal/handler"
	"docflow/internal/middleware"
	"docflow/internal/repository"
	"docflow/internal/service"
	"docflow/pkg/apperror"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.uber.org/zap"
)

type envelope struct {
	Status     string          `json:"status"`
	StatusCode int             `json:"status_code"`
	Data       json.RawMessage `json:"data"`
	Error      string          `json:"error"`
}

func newTestRouter(dir string) *gin.Engine {
	gin.SetMode(gin.TestMode)

	db, err := database.OpenSQLite(filepath.Join(dir, "handler_test.db"))
	Expect(err).ToNot(HaveOccurred())
	_, err = database.Migrate(context.Background(), db, database.DriverSQLite)
	Expect(err).ToNot(HaveOccurred())
	DeferCleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	log := zap.NewNop()
	repos := repository.NewRepositories(db)
	uow := repository.NewUnitOfWork(db)
	validationService := service.NewValidationService(repos.Ledger)
	auditService := service.NewAuditService(repos.Audits)

	return handler.NewRouter(handler.RouterDeps{
		Companies: handler.NewCompanyHandler(service.NewCompanyService(repos.Companies, uow, log)),
		Documents: handler.NewDocumentHandler(
			service.NewDocumentService(repos.Companies, repos.Documents, repos.Ledger, log),
			service.NewWorkflowService(uow, nil, log),
			validationService,
			auditService,
		),
		Validations: handler.NewValidationHandler(validationService),
		Audits:      handler.NewAuditHandler(auditService),
		Ping:        database.Ping(db),
		Logger:      log,
	})
}

func call(router http.Handler, method, path string, body any, headers ...string) (int, envelope) {
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		Expect(err).ToNot(HaveOccurred())
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	var env envelope
	if w.Body.Len() > 0 {
		Expect(json.Unmarshal(w.Body.Bytes(), &env)).To(Succeed())
	}
	return w.Code, env
}

func decode[T any](raw json.RawMessage) T {
	var v T
	Expect(json.Unmarshal(raw, &v)).To(Succeed())
	return v
}

var _ = Describe("Document approval API", func() {
	var (
		router    *gin.Engine
		companyID string
	)

	BeforeEach(func() {
		router = newTestRouter(GinkgoT().TempDir())

		status, env := call(router, http.MethodPost, "/api/companies", map[string]any{
			"tax_id": "900100200", "name": "Acme SAS", "location": "Bogota", "employee_count": 25,
		})
		Expect(status).To(Equal(http.StatusCreated))
		companyID = decode[service.CompanyResponse](env.Data).ID.String()
	})

	createDocument := func() service.DocumentResponse {
		status, env := call(router, http.MethodPost, "/api/documents", map[string]any{
			"company_id": companyID, "file_url": "s3://docs/contract.pdf", "validation_flow": `{"steps":[0,1]}`,
		})
		Expect(status).To(Equal(http.StatusCreated))
		return decode[service.DocumentResponse](env.Data)
	}

	It("reports health", func() {
		status, _ := call(router, http.MethodGet, "/health", nil)
		Expect(status).To(Equal(http.StatusOK))
	})

	Describe("CreateDocument", func() {
		It("creates a pending document", func() {
			doc := createDocument()
			Expect(doc.State).To(Equal("Pending"))
			Expect(doc.CompanyID.String()).To(Equal(companyID))
		})

		It("rejects an unknown company with 400", func() {
			status, env := call(router, http.MethodPost, "/api/documents", map[string]any{
				"company_id": uuid.NewString(), "file_url": "f", "validation_flow": `{}`,
			})
			Expect(status).To(Equal(http.StatusBadRequest))
			Expect(env.Status).To(Equal("error"))
		})

		It("rejects a missing body field with 400", func() {
			status, _ := call(router, http.MethodPost, "/api/documents", map[string]any{"company_id": companyID})
			Expect(status).To(Equal(http.StatusBadRequest))
		})
	})

	Describe("SubmitAction", func() {
		var doc service.DocumentResponse

		BeforeEach(func() {
			doc = createDocument()
		})

		It("approves once and then refuses further actions", func() {
			path := "/api/documents/" + doc.ID.String() + "/actions"

			status, env := call(router, http.MethodPost, path, map[string]any{"action": "Approve"}, middleware.ActorHeader, "actor1")
			Expect(status).To(Equal(http.StatusOK))
			result := decode[service.SubmitActionResponse](env.Data)
			Expect(result.NewState).To(Equal("Approved"))
			Expect(result.DocumentID).To(Equal(doc.ID))

			status, _ = call(router, http.MethodPost, path, map[string]any{"actor_id": "actor2", "action": "Reject", "reason": "late"})
			Expect(status).To(Equal(http.StatusConflict))

			status, env = call(router, http.MethodGet, "/api/documents/"+doc.ID.String()+"/validations", nil)
			Expect(status).To(Equal(http.StatusOK))
			ledger := decode[[]service.ValidationResponse](env.Data)
			Expect(ledger).To(HaveLen(1))
			Expect(ledger[0].StepOrder).To(Equal(0))
			Expect(ledger[0].ActorID).To(Equal("actor1"))

			status, env = call(router, http.MethodGet, "/api/documents/"+doc.ID.String()+"/audits", nil)
			Expect(status).To(Equal(http.StatusOK))
			history := decode[[]service.AuditResponse](env.Data)
			Expect(history).To(HaveLen(1))
			Expect(history[0].PriorState).To(Equal("Pending"))
			Expect(history[0].NewState).To(Equal("Approved"))
		})

		It("maps an unknown action to 422", func() {
			status, _ := call(router, http.MethodPost, "/api/documents/"+doc.ID.String()+"/actions",
				map[string]any{"actor_id": "actor1", "action": "Maybe"})
			Expect(status).To(Equal(http.StatusUnprocessableEntity))
		})

		It("requires an actor", func() {
			status, _ := call(router, http.MethodPost, "/api/documents/"+doc.ID.String()+"/actions",
				map[string]any{"action": "Approve"})
			Expect(status).To(Equal(http.StatusBadRequest))
		})

		It("returns 404 for a missing document", func() {
			status, _ := call(router, http.MethodPost, "/api/documents/"+uuid.NewString()+"/actions",
				map[string]any{"actor_id": "actor1", "action": "Approve"})
			Expect(status).To(Equal(http.StatusNotFound))
		})
	})

	Describe("GetDocument", func() {
		It("nests the company and ledger", func() {
			doc := createDocument()
			_, _ = call(router, http.MethodPost, "/api/documents/"+doc.ID.String()+"/actions",
				map[string]any{"actor_id": "actor1", "action": "rechazar", "reason": "unsigned"})

			status, env := call(router, http.MethodGet, "/api/documents/"+doc.ID.String(), nil)
			Expect(status).To(Equal(http.StatusOK))
			detail := decode[service.DocumentDetailResponse](env.Data)
			Expect(detail.State).To(Equal("Rejected"))
			Expect(detail.Company).ToNot(BeNil())
			Expect(detail.Company.TaxID).To(Equal("900100200"))
			Expect(detail.Validations).To(HaveLen(1))
			Expect(*detail.Validations[0].Reason).To(Equal("unsigned"))
		})

		It("returns 404 for a missing document", func() {
			status, _ := call(router, http.MethodGet, "/api/documents/"+uuid.NewString(), nil)
			Expect(status).To(Equal(http.StatusNotFound))
		})

		It("returns an empty ledger for an unknown document", func() {
			status, env := call(router, http.MethodGet, "/api/documents/"+uuid.NewString()+"/validations", nil)
			Expect(status).To(Equal(http.StatusOK))
			Expect(decode[[]service.ValidationResponse](env.Data)).To(BeEmpty())
		})
	})

	Describe("cross-document queries", func() {
		It("filters audits and validations by actor", func() {
			doc := createDocument()
			_, _ = call(router, http.MethodPost, "/api/documents/"+doc.ID.String()+"/actions",
				map[string]any{"actor_id": "carol", "action": "Approve"})

			status, env := call(router, http.MethodGet, "/api/audits?actor_id=carol", nil)
			Expect(status).To(Equal(http.StatusOK))
			page := decode[struct {
				Audits []service.AuditResponse `json:"audits"`
				Total  int64                   `json:"total"`
			}](env.Data)
			Expect(page.Total).To(BeEquivalentTo(1))
			Expect(page.Audits[0].DocumentID).To(Equal(doc.ID))

			status, env = call(router, http.MethodGet, "/api/audits?prior_state=Pending&new_state=Approved", nil)
			Expect(status).To(Equal(http.StatusOK))

			status, env = call(router, http.MethodGet, "/api/validations?actor_id=carol", nil)
			Expect(status).To(Equal(http.StatusOK))
			vpage := decode[struct {
				Validations []service.ValidationResponse `json:"validations"`
			}](env.Data)
			Expect(vpage.Validations).To(HaveLen(1))
		})

		It("requires a filter for audits", func() {
			status, _ := call(router, http.MethodGet, "/api/audits", nil)
			Expect(status).To(Equal(http.StatusBadRequest))
		})
	})

	Describe("companies", func() {
		It("finds by tax id and restricts deletion", func() {
			status, env := call(router, http.MethodGet, "/api/companies/tax-id/900100200", nil)
			Expect(status).To(Equal(http.StatusOK))
			Expect(decode[service.CompanyResponse](env.Data).ID.String()).To(Equal(companyID))

			status, _ = call(router, http.MethodPost, "/api/companies", map[string]any{
				"tax_id": "900100200", "name": "Dup", "location": "Cali", "employee_count": 1,
			})
			Expect(status).To(Equal(http.StatusConflict))

			createDocument()
			status, _ = call(router, http.MethodDelete, "/api/companies/"+companyID, nil)
			Expect(status).To(Equal(http.StatusConflict))

			status, _ = call(router, http.MethodDelete, "/api/companies/"+uuid.NewString(), nil)
			Expect(status).To(Equal(http.StatusNotFound))
		})

		It("lists with a minimum employee filter", func() {
			status, env := call(router, http.MethodGet, "/api/companies?min_employees=100", nil)
			Expect(status).To(Equal(http.StatusOK))
			page := decode[struct {
				Companies []service.CompanyResponse `json:"companies"`
				Total     int64                     `json:"total"`
			}](env.Data)
			Expect(page.Companies).To(BeEmpty())

			status, _ = call(router, http.MethodGet, "/api/companies?min_employees=-3", nil)
			Expect(status).To(Equal(http.StatusBadRequest))
		})
	})
})

var _ = DescribeTable("StatusFor",
	func(err error, want int) {
		Expect(handler.StatusFor(err)).To(Equal(want))
	},
	Entry("validation", apperror.Validation("bad"), http.StatusBadRequest),
	Entry("invalid action", apperror.New(apperror.KindInvalidAction, "maybe"), http.StatusUnprocessableEntity),
	Entry("not found", apperror.NotFound("gone"), http.StatusNotFound),
	Entry("illegal transition", apperror.New(apperror.KindIllegalTransition, "terminal"), http.StatusConflict),
	Entry("conflict", apperror.Conflict("race"), http.StatusConflict),
	Entry("persistence", apperror.Persistence(errors.New("io"), "load"), http.StatusInternalServerError),
	Entry("foreign error", errors.New("boom"), http.StatusInternalServerError),
)
