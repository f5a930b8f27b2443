package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/amirphl/retail-inventory/app/dto"
	businessflow "github.com/amirphl/retail-inventory/business_flow"
	"github.com/amirphl/retail-inventory/fixtures"
	"github.com/amirphl/retail-inventory/repository"
	"github.com/gofiber/fiber/v3"
	"github.com/stretchr/testify/require"
)

type fakeReportFlow struct {
	storeReq   dto.StoreQueryRequest
	searchReq  dto.ProductSearchRequest
	verboseAll bool
	err        error
}

func (f *fakeReportFlow) StoreProducts(_ context.Context, req dto.StoreQueryRequest) (*dto.QueryResult[repository.StoreProductRow], error) {
	f.storeReq = req
	if f.err != nil {
		return nil, f.err
	}
	return &dto.QueryResult[repository.StoreProductRow]{Query: businessflow.QueryStoreProducts, Rows: []repository.StoreProductRow{{StoreName: "Central"}}, RowCount: 1}, nil
}

func (f *fakeReportFlow) BaseProducts(context.Context, dto.TradingBaseQueryRequest) (*dto.QueryResult[repository.BaseProductRow], error) {
	return &dto.QueryResult[repository.BaseProductRow]{Query: businessflow.QueryBaseProducts, Rows: []repository.BaseProductRow{}}, f.err
}

func (f *fakeReportFlow) OrderableProducts(context.Context, dto.StoreQueryRequest) (*dto.QueryResult[repository.OrderableProductRow], error) {
	return &dto.QueryResult[repository.OrderableProductRow]{Query: businessflow.QueryOrderableProducts, Rows: []repository.OrderableProductRow{}}, f.err
}

func (f *fakeReportFlow) ExtendedOrderableProducts(context.Context, dto.StoreQueryRequest) (*dto.QueryResult[repository.ExtendedOrderableProductRow], error) {
	return &dto.QueryResult[repository.ExtendedOrderableProductRow]{Query: businessflow.QueryExtendedOrderableProducts, Rows: []repository.ExtendedOrderableProductRow{}}, f.err
}

func (f *fakeReportFlow) DepartmentProducts(context.Context, dto.DepartmentQueryRequest) (*dto.QueryResult[repository.DepartmentProductRow], error) {
	return &dto.QueryResult[repository.DepartmentProductRow]{Query: businessflow.QueryDepartmentProducts, Rows: []repository.DepartmentProductRow{}}, f.err
}

func (f *fakeReportFlow) DepartmentManagers(context.Context, dto.StoreQueryRequest) (*dto.QueryResult[repository.DepartmentManagerRow], error) {
	return &dto.QueryResult[repository.DepartmentManagerRow]{Query: businessflow.QueryDepartmentManagers, Rows: []repository.DepartmentManagerRow{}}, f.err
}

func (f *fakeReportFlow) DepartmentValues(context.Context, dto.VerboseRequest) (*dto.QueryResult[repository.DepartmentValueRow], error) {
	return &dto.QueryResult[repository.DepartmentValueRow]{Query: businessflow.QueryDepartmentValues, Rows: []repository.DepartmentValueRow{}}, f.err
}

func (f *fakeReportFlow) ProductSearch(_ context.Context, req dto.ProductSearchRequest) (*dto.QueryResult[repository.ProductSearchRow], error) {
	f.searchReq = req
	return &dto.QueryResult[repository.ProductSearchRow]{Query: businessflow.QueryProductSearch, Rows: []repository.ProductSearchRow{}}, f.err
}

func (f *fakeReportFlow) RunAll(_ context.Context, verbose bool) (*dto.RunAllResponse, error) {
	f.verboseAll = verbose
	if f.err != nil {
		return nil, f.err
	}
	return &dto.RunAllResponse{Results: []dto.QuerySummary{{Query: businessflow.QueryStoreProducts, Result: "[(Central)]", RowCount: 1}}}, nil
}

func (f *fakeReportFlow) ExportXLSX(context.Context) (string, []byte, error) {
	if f.err != nil {
		return "", nil, f.err
	}
	return "inventory_report_20260101T000000Z.xlsx", []byte("PK"), nil
}

type fakeCatalogFlow struct {
	stores map[uint]*dto.StoreDTO
}

func (f *fakeCatalogFlow) GetStore(_ context.Context, id uint) (*dto.StoreDTO, error) {
	if s, ok := f.stores[id]; ok {
		return s, nil
	}
	return nil, businessflow.NewBusinessError("STORE_NOT_FOUND", "Store not found", businessflow.ErrStoreNotFound)
}

func (f *fakeCatalogFlow) ListDepartments(_ context.Context, storeID uint) ([]dto.DepartmentSummaryDTO, error) {
	if s, ok := f.stores[storeID]; ok {
		return s.Departments, nil
	}
	return nil, businessflow.NewBusinessError("STORE_NOT_FOUND", "Store not found", businessflow.ErrStoreNotFound)
}

func (f *fakeCatalogFlow) GetDepartment(context.Context, uint) (*dto.DepartmentDTO, error) {
	return nil, businessflow.NewBusinessError("DEPARTMENT_NOT_FOUND", "Department not found", businessflow.ErrDepartmentNotFound)
}

type fakeFixtureFlow struct {
	randomReq *dto.LoadRandomFixturesRequest
	err       error
}

func (f *fakeFixtureFlow) LoadSeed(context.Context) (*dto.LoadReport, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &dto.LoadReport{Strategy: dto.FixtureStrategySeed, Total: 117}, nil
}

func (f *fakeFixtureFlow) LoadRandom(_ context.Context, req dto.LoadRandomFixturesRequest) (*dto.LoadReport, error) {
	f.randomReq = &req
	if f.err != nil {
		return nil, f.err
	}
	return &dto.LoadReport{Strategy: dto.FixtureStrategyRandom}, nil
}

func (f *fakeFixtureFlow) Load(context.Context, string, *fixtures.Dataset) (*dto.LoadReport, error) {
	return nil, nil
}

type fakeSchemaFlow struct {
	err error
}

func (f *fakeSchemaFlow) Migrate(context.Context) (*dto.MigrateResponse, error) {
	return &dto.MigrateResponse{}, nil
}

func (f *fakeSchemaFlow) CreateIndexes(context.Context) (*dto.IndexStatusResponse, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &dto.IndexStatusResponse{Operation: businessflow.IndexOperationCreate, Indexes: []string{"idx_store_class"}, Expected: 12}, nil
}

func (f *fakeSchemaFlow) DropIndexes(context.Context) (*dto.IndexStatusResponse, error) {
	return &dto.IndexStatusResponse{Operation: businessflow.IndexOperationDrop, Indexes: []string{}, Expected: 12}, nil
}

func (f *fakeSchemaFlow) ListIndexes(context.Context) (*dto.IndexStatusResponse, error) {
	return &dto.IndexStatusResponse{Operation: businessflow.IndexOperationList, Indexes: []string{}, Expected: 12}, nil
}

var errTest = errors.New("test failure")

// apiResponse mirrors dto.APIResponse with the payloads left raw
type apiResponse struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Error   struct {
		Code    string `json:"code"`
		Details any    `json:"details"`
	} `json:"error"`
}

func newTestApp(routes ...[]Route) *fiber.App {
	app := fiber.New()
	api := app.Group("/api/v1")
	for _, group := range routes {
		for _, r := range group {
			api.Add([]string{r.Method}, r.Path, r.Handler)
		}
	}
	return app
}

func doRequest(t *testing.T, app *fiber.App, method, target, body string) (*http.Response, apiResponse) {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := app.Test(req, fiber.TestConfig{Timeout: 5 * time.Second})
	require.NoError(t, err)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	_ = resp.Body.Close()

	var out apiResponse
	if strings.HasPrefix(resp.Header.Get("Content-Type"), "application/json") {
		require.NoError(t, json.Unmarshal(raw, &out), string(raw))
	}
	return resp, out
}
