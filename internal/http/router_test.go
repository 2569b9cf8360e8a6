package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"gateway/internal/config"
	"gateway/internal/domain"
	"gateway/internal/http/middleware"
	"gateway/internal/services"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "router-secret"

var orderRowColumns = []string{
	"id", "tenant_id", "tracking_number", "customer_name", "customer_phone",
	"pickup_address", "pickup_lat", "pickup_lng",
	"dropoff_address", "dropoff_lat", "dropoff_lng",
	"weight_kg", "distance_km", "status", "driver_id", "vehicle_id", "route_id",
	"created_at", "updated_at",
}

func newTestRouter(t *testing.T) (*gin.Engine, sqlmock.Sqlmock) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	conn, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	cfg := config.Config{
		JWTSecret:   testSecret,
		JWTTTL:      time.Hour,
		CORSOrigins: []string{"http://localhost:5173"},
		MaxPageSize: 100,
	}
	return NewRouter(cfg, conn, middleware.NewRateLimiter(1000, 1000)), mock
}

func token(t *testing.T, role string) string {
	t.Helper()
	tok, _, err := services.IssueToken([]byte(testSecret), domain.RequestContext{UserID: 9, TenantID: 4, Role: role}, time.Hour, time.Now())
	require.NoError(t, err)
	return "Bearer " + tok
}

func do(r *gin.Engine, method, target, body, auth string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func TestHealthIsPublic(t *testing.T) {
	r, _ := newTestRouter(t)
	rec := do(r, http.MethodGet, "/api/health", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestListRequiresToken(t *testing.T) {
	r, _ := newTestRouter(t)
	rec := do(r, http.MethodGet, "/api/orders", "", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestListOrders_PagingInBothPlacesIsRejected(t *testing.T) {
	r, mock := newTestRouter(t)
	rec := do(r, http.MethodGet, "/api/orders?page=1&pageSize=10",
		`{"paging":{"page":2,"pageSize":5}}`, token(t, "viewer"))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	body := decode(t, rec)
	assert.Equal(t, "conflicting_input", body["code"])
	assert.Equal(t, "Paging cannot be specified in both query and body", body["error"])
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestListOrders_SortingInBothPlacesIsRejected(t *testing.T) {
	r, _ := newTestRouter(t)
	rec := do(r, http.MethodPost, "/api/orders/query?sortProperty=id&sortDirection=ascending",
		`{"sorting":{"property":"id","direction":"descending"}}`, token(t, "viewer"))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Sorting cannot be specified in both query and body", decode(t, rec)["error"])
}

func TestListOrders_QueryDirectives(t *testing.T) {
	r, mock := newTestRouter(t)
	now := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM orders WHERE tenant_id = \?`).
		WithArgs(int64(4)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(11))
	mock.ExpectQuery(`ORDER BY created_at DESC, id DESC LIMIT \? OFFSET \?`).
		WithArgs(int64(4), 10, 10).
		WillReturnRows(sqlmock.NewRows(orderRowColumns).
			AddRow(1, 4, "TRK-1", "Sari", "", "A", 0.0, 0.0, "B", 0.0, 0.0, 1.0, 0.0, "pending", nil, nil, nil, now, now))

	rec := do(r, http.MethodGet, "/api/orders?page=2&pageSize=10&sortProperty=createdAt&sortDirection=descending", "", token(t, "viewer"))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	body := decode(t, rec)
	assert.EqualValues(t, 2, body["page"])
	assert.EqualValues(t, 10, body["pageSize"])
	assert.EqualValues(t, 11, body["total"])
	assert.EqualValues(t, 2, body["totalPages"])
	assert.Len(t, body["items"], 1)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestQueryOrders_BodyDirectivesAndFilter(t *testing.T) {
	r, mock := newTestRouter(t)
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM orders WHERE tenant_id = \? AND status = \?`).
		WithArgs(int64(4), "pending").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectQuery(`ORDER BY customer_name ASC, id ASC LIMIT \? OFFSET \?`).
		WithArgs(int64(4), "pending", 5, 5).
		WillReturnRows(sqlmock.NewRows(orderRowColumns))

	rec := do(r, http.MethodPost, "/api/orders/query",
		`{"filter":{"Status":"pending"},"paging":{"page":2,"pageSize":5},"sorting":{"property":"customerName","direction":"ascending"}}`,
		token(t, "viewer"))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	body := decode(t, rec)
	assert.Equal(t, []any{}, body["items"])
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestListOrders_UnknownSortProperty(t *testing.T) {
	r, _ := newTestRouter(t)
	rec := do(r, http.MethodGet, "/api/orders?sortProperty=password&sortDirection=ascending", "", token(t, "viewer"))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "validation_error", decode(t, rec)["code"])
}

func TestListOrders_NonPositivePage(t *testing.T) {
	r, _ := newTestRouter(t)
	rec := do(r, http.MethodGet, "/api/drivers?page=0&pageSize=10", "", token(t, "viewer"))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "validation_error", decode(t, rec)["code"])
}

func TestWritesNeedRole(t *testing.T) {
	r, _ := newTestRouter(t)
	rec := do(r, http.MethodPost, "/api/orders", `{"customerName":"x"}`, token(t, "viewer"))
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestGetOrder_NotFound(t *testing.T) {
	r, mock := newTestRouter(t)
	mock.ExpectQuery(`FROM orders WHERE tenant_id = \? AND id = \?`).
		WithArgs(int64(4), int64(77)).
		WillReturnRows(sqlmock.NewRows(orderRowColumns))

	rec := do(r, http.MethodGet, "/api/orders/77", "", token(t, "viewer"))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "not_found", decode(t, rec)["code"])
}

func TestDriverManifestIsPDF(t *testing.T) {
	r, mock := newTestRouter(t)
	mock.ExpectQuery(`FROM drivers WHERE tenant_id = \? AND id = \?`).
		WithArgs(int64(4), int64(5)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "tenant_id", "name", "phone", "license_number", "status", "created_at"}).
			AddRow(5, 4, "Budi", "", "SIM-1", "on_duty", time.Now()))
	mock.ExpectQuery(`FROM orders\s+WHERE tenant_id = \? AND driver_id = \?`).
		WithArgs(int64(4), int64(5)).
		WillReturnRows(sqlmock.NewRows(orderRowColumns))

	rec := do(r, http.MethodGet, "/api/dispatch/drivers/5/manifest", "", token(t, "driver"))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/pdf", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "MANIFEST_5_Budi_")
}

func TestMetricsEndpoint(t *testing.T) {
	r, _ := newTestRouter(t)
	do(r, http.MethodGet, "/api/health", "", "")
	rec := do(r, http.MethodGet, "/metrics", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "gateway_http_requests_total")
}

func TestRoutesTableListsEndpoints(t *testing.T) {
	r, _ := newTestRouter(t)
	rec := do(r, http.MethodGet, "/api/routes-table", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "/api/orders/query")
}

func TestDBCheck_ReportsMissingTables(t *testing.T) {
	r, mock := newTestRouter(t)
	for _, table := range []string{"tenants", "users", "drivers", "vehicles", "routes", "orders"} {
		rows := sqlmock.NewRows([]string{"table_name"})
		if table != "orders" {
			rows.AddRow(table)
		}
		mock.ExpectQuery(`information_schema.tables`).WithArgs(table).WillReturnRows(rows)
	}

	rec := do(r, http.MethodGet, "/api/db-check", "", "")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	body := decode(t, rec)
	assert.Equal(t, "schema_incomplete", body["code"])
	assert.Equal(t, []any{"orders"}, body["details"])
}
