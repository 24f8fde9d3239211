package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"nightshift/mock"
	"nightshift/model"
	"nightshift/session"
	"nightshift/view"
)

type fakePrinter struct{ html string }

func (p *fakePrinter) PDF(ctx context.Context, html string) ([]byte, error) {
	p.html = html
	return []byte("%PDF-1.4 fake"), nil
}

func newTestApp(t *testing.T) (*App, *http.ServeMux, *fakePrinter) {
	t.Helper()
	printer := &fakePrinter{}
	connect := func(ctx context.Context) (*session.Session, error) {
		b, err := mock.Seeded()
		if err != nil {
			return nil, err
		}
		s := session.New(session.MockSource(b), nil, nil)
		return s, s.Refresh(ctx)
	}
	a := NewApp(connect, printer, "Nightshift Traders")
	a.Now = func() time.Time { return time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC) }
	mux := http.NewServeMux()
	Register(mux, a)
	return a, mux, printer
}

func do(t *testing.T, mux http.Handler, method, target string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, target, &buf)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	return rec
}

func TestListWithCriteria(t *testing.T) {
	_, mux, _ := newTestApp(t)

	rec := do(t, mux, http.MethodGet, "/api/employees?status=ACTIVE", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var res view.Result[model.Employee, model.EmployeeStats]
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.Len(t, res.Records, 2)
	assert.Equal(t, 2, res.Stats.Total)
	assert.Equal(t, "all", res.Criteria.Category)

	rec = do(t, mux, http.MethodGet, "/api/vendors?category=Steel&search=BHARAT", nil)
	var vres view.Result[model.Vendor, model.VendorStats]
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &vres))
	require.Len(t, vres.Records, 1)
	assert.Equal(t, "VEND-001", vres.Records[0].VendorID)
}

func TestCreateUpdateDelete(t *testing.T) {
	_, mux, _ := newTestApp(t)

	rec := do(t, mux, http.MethodPost, "/api/customers", model.CustomerInput{Name: "Harbor Hardware", PreferredCategories: []string{"Tools"}})
	require.Equal(t, http.StatusCreated, rec.Code)
	var created model.Customer
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.Equal(t, "CUST-004", created.CustomerID)

	rec = do(t, mux, http.MethodGet, "/api/customers?category=Tools", nil)
	var res view.Result[model.Customer, model.CustomerStats]
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.Len(t, res.Records, 1)

	rec = do(t, mux, http.MethodPut, "/api/customers/"+string(created.ID), model.CustomerInput{Status: model.PartnerInactive})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = do(t, mux, http.MethodDelete, "/api/customers/"+string(created.ID), nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = do(t, mux, http.MethodDelete, "/api/customers/"+string(created.ID), nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "Failed to delete customer!")
}

func TestQuantityUpdateAndDashboard(t *testing.T) {
	_, mux, _ := newTestApp(t)

	rec := do(t, mux, http.MethodPost, "/api/items/item-c/quantity", model.QuantityUpdate{QuantityUpdated: 50, VendorID: "VEND-001", Cost: 12})
	require.Equal(t, http.StatusOK, rec.Code)
	var res view.Result[model.Item, model.InventoryStats]
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.Equal(t, 0, res.Stats.OutOfStock)

	rec = do(t, mux, http.MethodGet, "/api/dashboard", nil)
	var d model.DashboardSummary
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &d))
	assert.Equal(t, 178, d.TotalQuantity)
	assert.Empty(t, d.OutOfStockItems)
}

func TestInsightAndInvoice(t *testing.T) {
	_, mux, printer := newTestApp(t)

	rec := do(t, mux, http.MethodGet, "/api/customers/CUST-002/insight", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var in model.CustomerInsight
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &in))
	assert.InDelta(t, 2220.0, in.TotalOrderValue, 1e-9)

	rec = do(t, mux, http.MethodGet, "/api/orders/ORD-003/invoice", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/pdf", rec.Header().Get("Content-Type"))
	assert.True(t, strings.HasPrefix(rec.Body.String(), "%PDF"))
	assert.Contains(t, printer.html, "Nightshift Traders")
	assert.Contains(t, printer.html, "1420.00")

	rec = do(t, mux, http.MethodGet, "/api/orders/ORD-404/invoice", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestItemHistoryAndReviews(t *testing.T) {
	_, mux, _ := newTestApp(t)

	rec := do(t, mux, http.MethodGet, "/api/items/ITEM-001/history", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var h model.ItemHistory
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &h))
	require.Len(t, h.Entries, 2)
	assert.Equal(t, model.UpdateOrder, h.Entries[0].UpdateType)
	require.Len(t, h.Replenishments, 1)
	assert.InDelta(t, 6375.0, h.Total, 1e-9)

	rec = do(t, mux, http.MethodGet, "/api/employees/EMP-001/reviews", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var reviews []model.PerformanceReview
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &reviews))
	require.Len(t, reviews, 2)
	assert.Equal(t, model.ID("rev-2"), reviews[0].ID)

	rec = do(t, mux, http.MethodGet, "/api/employees/EMP-404/reviews", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestExport(t *testing.T) {
	_, mux, _ := newTestApp(t)

	rec := do(t, mux, http.MethodGet, "/api/items/export?status=low-stock", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "items_20240601.xlsx")
	f, err := excelize.OpenReader(rec.Body)
	require.NoError(t, err)
	defer f.Close()
	rows, err := f.GetRows("Inventory")
	require.NoError(t, err)
	assert.Len(t, rows, 2)

	rec = do(t, mux, http.MethodGet, "/api/orders/export?format=csv", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/csv; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.Equal(t, 4, strings.Count(rec.Body.String(), "\r\n"))
}

func TestLogoutReconnects(t *testing.T) {
	a, mux, _ := newTestApp(t)

	do(t, mux, http.MethodPost, "/api/customers", model.CustomerInput{Name: "Temp"})
	rec := do(t, mux, http.MethodPost, "/api/logout", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	s, err := a.Session(context.Background())
	require.NoError(t, err)
	assert.Len(t, s.Customers.Items(), 3)
}

func TestNoSession(t *testing.T) {
	a := NewApp(nil, nil, "")
	mux := http.NewServeMux()
	Register(mux, a)
	rec := do(t, mux, http.MethodGet, "/api/items", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestReviewEndpoints(t *testing.T) {
	_, mux, _ := newTestApp(t)

	avg := func() float64 {
		var res view.Result[model.Employee, model.EmployeeStats]
		require.NoError(t, json.Unmarshal(do(t, mux, http.MethodGet, "/api/employees", nil).Body.Bytes(), &res))
		return res.Stats.AvgPerformance
	}
	before := avg()

	rec := do(t, mux, http.MethodPost, "/api/reviews", map[string]any{"employeeId": "EMP-003", "rating": 1, "comments": "No shows"})
	require.Equal(t, http.StatusCreated, rec.Code)
	var created reviewResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.Equal(t, "Review Created!", created.Message)
	assert.Equal(t, "EMP-001", created.PerformanceReview.ReviewerID)
	assert.NotEqual(t, before, avg())

	id := string(created.PerformanceReview.ID)
	rec = do(t, mux, http.MethodPut, "/api/reviews/"+id, map[string]any{"rating": 3})
	require.Equal(t, http.StatusOK, rec.Code)
	var updated reviewResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &updated))
	assert.Equal(t, "Review updated successfully!", updated.Message)
	assert.Equal(t, model.Rating(3), updated.PerformanceReview.Rating)
	assert.Equal(t, "No shows", updated.PerformanceReview.Comments)

	rec = do(t, mux, http.MethodGet, "/api/employees/EMP-003/reviews", nil)
	var reviews []model.PerformanceReview
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &reviews))
	require.Len(t, reviews, 1)
	assert.Equal(t, model.Rating(3), reviews[0].Rating)

	rec = do(t, mux, http.MethodGet, "/api/reviews", nil)
	var given []model.PerformanceReview
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &given))
	assert.Len(t, given, 4)

	rec = do(t, mux, http.MethodDelete, "/api/reviews/"+id, nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.InDelta(t, before, avg(), 1e-9)

	rec = do(t, mux, http.MethodDelete, "/api/reviews/"+id, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "Failed to delete review")
}

func TestReviewValidation(t *testing.T) {
	_, mux, _ := newTestApp(t)

	rec := do(t, mux, http.MethodPost, "/api/reviews", map[string]any{"rating": 4})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	rec = do(t, mux, http.MethodPost, "/api/reviews", map[string]any{"employeeId": "EMP-002", "rating": 9})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"message":"Rating must be between 1 and 5"}`, rec.Body.String())
	rec = do(t, mux, http.MethodPut, "/api/reviews/rev-1", map[string]any{"rating": 0.5})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	rec = do(t, mux, http.MethodPost, "/api/reviews", map[string]any{"employeeId": "EMP-404", "rating": 4})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCurrentUserAndChangePassword(t *testing.T) {
	_, mux, _ := newTestApp(t)

	rec := do(t, mux, http.MethodGet, "/api/auth/me", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var me struct {
		Employee model.Employee `json:"employee"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &me))
	assert.Equal(t, "EMP-001", me.Employee.EmployeeID)

	rec = do(t, mux, http.MethodPost, "/api/auth/change-password", map[string]string{"password": "abcdef", "confirmPassword": "abcdeg"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"message":"Passwords do not match"}`, rec.Body.String())

	rec = do(t, mux, http.MethodPost, "/api/auth/change-password", map[string]string{"password": "abc", "confirmPassword": "abc"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"message":"Password must be at least 6 characters long"}`, rec.Body.String())

	rec = do(t, mux, http.MethodPost, "/api/auth/change-password", map[string]string{"password": "hunter22", "confirmPassword": "hunter22"})
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestDashboardListsTopThree(t *testing.T) {
	_, mux, _ := newTestApp(t)
	do(t, mux, http.MethodPost, "/api/vendors", model.VendorInput{Name: "Delta Tools"})

	rec := do(t, mux, http.MethodGet, "/api/dashboard", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var d model.DashboardSummary
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &d))
	assert.Len(t, d.TopVendors, 3)
}
