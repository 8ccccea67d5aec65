package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	analyticsdomain "github.com/smallbiznis/billfold/internal/analytics/domain"
	"github.com/smallbiznis/billfold/internal/config"
	customerdomain "github.com/smallbiznis/billfold/internal/customer/domain"
	invoicedomain "github.com/smallbiznis/billfold/internal/invoice/domain"
	"github.com/smallbiznis/billfold/internal/invoice/number"
	productdomain "github.com/smallbiznis/billfold/internal/product/domain"
	"github.com/smallbiznis/billfold/internal/providers/pdf"
	"go.uber.org/zap"
)

type productStub struct {
	err     error
	product productdomain.Product
}

func (s *productStub) Create(ctx context.Context, req productdomain.CreateProductRequest) (productdomain.Product, error) {
	return s.product, s.err
}

func (s *productStub) List(ctx context.Context) ([]productdomain.Product, error) {
	return []productdomain.Product{s.product}, s.err
}

func (s *productStub) GetByID(ctx context.Context, id string) (productdomain.Product, error) {
	return s.product, s.err
}

func (s *productStub) Update(ctx context.Context, req productdomain.UpdateProductRequest) (productdomain.Product, error) {
	return s.product, s.err
}

func (s *productStub) Delete(ctx context.Context, id string) error {
	return s.err
}

type customerStub struct {
	err      error
	customer customerdomain.Customer
}

func (s *customerStub) Create(ctx context.Context, req customerdomain.CreateCustomerRequest) (customerdomain.Customer, error) {
	return s.customer, s.err
}

func (s *customerStub) List(ctx context.Context) ([]customerdomain.Customer, error) {
	return []customerdomain.Customer{s.customer}, s.err
}

func (s *customerStub) GetByID(ctx context.Context, id string) (customerdomain.Customer, error) {
	return s.customer, s.err
}

func (s *customerStub) Update(ctx context.Context, req customerdomain.UpdateCustomerRequest) (customerdomain.Customer, error) {
	return s.customer, s.err
}

func (s *customerStub) Delete(ctx context.Context, id string) error {
	return s.err
}

type invoiceStub struct {
	err    error
	detail invoicedomain.InvoiceDetail
}

func (s *invoiceStub) Create(ctx context.Context, req invoicedomain.CreateInvoiceRequest) (*invoicedomain.CreateInvoiceResponse, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &invoicedomain.CreateInvoiceResponse{}, nil
}

func (s *invoiceStub) List(ctx context.Context, req invoicedomain.ListInvoiceRequest) (invoicedomain.ListInvoiceResponse, error) {
	if s.err != nil {
		return invoicedomain.ListInvoiceResponse{}, s.err
	}
	return invoicedomain.ListInvoiceResponse{Invoices: []invoicedomain.InvoiceDetail{s.detail}}, nil
}

func (s *invoiceStub) GetByID(ctx context.Context, id string) (*invoicedomain.InvoiceDetail, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &s.detail, nil
}

type analyticsStub struct {
	err     error
	summary analyticsdomain.Summary
}

func (s *analyticsStub) Summary(ctx context.Context) (analyticsdomain.Summary, error) {
	return s.summary, s.err
}

type stubs struct {
	product   *productStub
	customer  *customerStub
	invoice   *invoiceStub
	analytics *analyticsStub
}

func setupServer(t *testing.T) (*gin.Engine, *stubs) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	st := &stubs{
		product:   &productStub{},
		customer:  &customerStub{},
		invoice:   &invoiceStub{},
		analytics: &analyticsStub{},
	}

	holder := &config.ShopProfileHolder{}
	holder.Set(config.DefaultShopProfile())

	engine := NewEngine(zap.NewNop(), nil)
	NewServer(ServerParams{
		Gin:          engine,
		Cfg:          config.Config{},
		Log:          zap.NewNop(),
		ProductSvc:   st.product,
		CustomerSvc:  st.customer,
		InvoiceSvc:   st.invoice,
		AnalyticsSvc: st.analytics,
		PDFProvider:  pdf.NewProvider(holder),
	})

	return engine, st
}

func do(t *testing.T, engine *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func errorPayload(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()

	var payload struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode error payload: %v (body %q)", err, w.Body.String())
	}
	return payload.Error
}

func TestHealth(t *testing.T) {
	engine, _ := setupServer(t)

	w := do(t, engine, http.MethodGet, "/health", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
}

func TestCreateProductBadJSON(t *testing.T) {
	engine, _ := setupServer(t)

	w := do(t, engine, http.MethodPost, "/api/products", "{not json")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
	if errorPayload(t, w) == "" {
		t.Fatal("expected error message in payload")
	}
}

func TestCreateProductDuplicateConflict(t *testing.T) {
	engine, st := setupServer(t)
	st.product.err = productdomain.ErrDuplicateName

	w := do(t, engine, http.MethodPost, "/api/products", `{"name":"Tea Pack","rate":2500}`)
	if w.Code != http.StatusConflict {
		t.Fatalf("status = %d, want 409", w.Code)
	}
	if got := errorPayload(t, w); !strings.Contains(got, "already exists") {
		t.Fatalf("error = %q", got)
	}
}

func TestGetProductNotFound(t *testing.T) {
	engine, st := setupServer(t)
	st.product.err = productdomain.ErrNotFound

	w := do(t, engine, http.MethodGet, "/api/products/123", "")
	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", w.Code)
	}
}

func TestDeleteProductInUse(t *testing.T) {
	engine, st := setupServer(t)
	st.product.err = productdomain.ErrProductInUse

	w := do(t, engine, http.MethodDelete, "/api/products/123", "")
	if w.Code != http.StatusConflict {
		t.Fatalf("status = %d, want 409", w.Code)
	}
}

func TestCreateCustomerInvalidMobile(t *testing.T) {
	engine, st := setupServer(t)
	st.customer.err = customerdomain.ErrInvalidMobile

	w := do(t, engine, http.MethodPost, "/api/customers", `{"name":"Asha","mobile":"123","address":"Road"}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
	if got := errorPayload(t, w); !strings.Contains(got, "10 digits") {
		t.Fatalf("error = %q", got)
	}
}

func TestDeleteCustomerWithInvoices(t *testing.T) {
	engine, st := setupServer(t)
	st.customer.err = customerdomain.ErrCustomerHasInvoices

	w := do(t, engine, http.MethodDelete, "/api/customers/123", "")
	if w.Code != http.StatusConflict {
		t.Fatalf("status = %d, want 409", w.Code)
	}
}

func TestCreateInvoiceValidationStatuses(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{invoicedomain.ErrEmptyItems, http.StatusBadRequest},
		{invoicedomain.ErrCustomerNotFound, http.StatusBadRequest},
		{invoicedomain.ErrProductNotFound, http.StatusBadRequest},
		{invoicedomain.ErrTotalMismatch, http.StatusBadRequest},
		{invoicedomain.ErrInvalidQuantity, http.StatusBadRequest},
		{fmt.Errorf("%w: scope read failed", number.ErrAllocation), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		engine, st := setupServer(t)
		st.invoice.err = tc.err

		w := do(t, engine, http.MethodPost, "/api/invoices", `{"customerId":"1","total":0,"items":[]}`)
		if w.Code != tc.want {
			t.Fatalf("%v: status = %d, want %d", tc.err, w.Code, tc.want)
		}
	}
}

func TestCreateInvoiceInternalErrorHidesDetail(t *testing.T) {
	engine, st := setupServer(t)
	st.invoice.err = fmt.Errorf("pq: connection refused at 10.0.0.5")

	w := do(t, engine, http.MethodPost, "/api/invoices", `{"customerId":"1","total":0,"items":[]}`)
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", w.Code)
	}
	if got := errorPayload(t, w); strings.Contains(got, "10.0.0.5") {
		t.Fatalf("internal detail leaked: %q", got)
	}
}

func TestGetInvoiceNotFound(t *testing.T) {
	engine, st := setupServer(t)
	st.invoice.err = invoicedomain.ErrNotFound

	w := do(t, engine, http.MethodGet, "/api/invoices/999", "")
	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", w.Code)
	}
}

func TestGetInvoiceReceipt(t *testing.T) {
	engine, st := setupServer(t)
	st.invoice.detail = invoicedomain.InvoiceDetail{
		ID:            "1",
		InvoiceNumber: "001/03/24",
		Date:          "2024-03-15T10:00:00Z",
		Total:         5000,
		CustomerDetails: invoicedomain.CustomerDetails{
			Name:    "Asha Traders",
			Mobile:  "9876543210",
			Address: "14 Market Road",
		},
		Items: []invoicedomain.InvoiceItem{
			{ProductName: "Tea Pack", Quantity: 2, Rate: 2500, Total: 5000},
		},
	}

	w := do(t, engine, http.MethodGet, "/api/invoices/1/receipt", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/pdf" {
		t.Fatalf("content type = %q, want application/pdf", ct)
	}
	if w.Body.Len() == 0 {
		t.Fatal("expected pdf bytes")
	}
	if cd := w.Header().Get("Content-Disposition"); !strings.Contains(cd, "invoice-001-03-24.pdf") {
		t.Fatalf("content disposition = %q", cd)
	}
}

func TestGetAnalytics(t *testing.T) {
	engine, st := setupServer(t)
	st.analytics.summary = analyticsdomain.Summary{
		CurrentMonthRevenue: 3000,
		TotalCustomers:      2,
		MonthlyRevenue:      []analyticsdomain.MonthRevenue{{Month: "Mar", Revenue: 3000}},
	}

	w := do(t, engine, http.MethodGet, "/api/analytics", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}

	var payload map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if payload["currentMonthRevenue"].(float64) != 3000 {
		t.Fatalf("currentMonthRevenue = %v", payload["currentMonthRevenue"])
	}
	if _, ok := payload["monthlyRevenue"]; !ok {
		t.Fatal("missing monthlyRevenue key")
	}
}

func TestRequestIDHeader(t *testing.T) {
	engine, _ := setupServer(t)

	w := do(t, engine, http.MethodGet, "/health", "")
	if w.Header().Get("X-Request-Id") == "" {
		t.Fatal("expected generated request id header")
	}

	req := httptest.NewRequest(http.MethodGet, "/health", strings.NewReader(""))
	req.Header.Set("X-Request-Id", "keep-this-id")
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)
	if got := rec.Header().Get("X-Request-Id"); got != "keep-this-id" {
		t.Fatalf("request id = %q, want keep-this-id", got)
	}
}
