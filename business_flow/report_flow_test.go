package businessflow

import (
	"bytes"
	"context"
	"strings"
	"sync"
	"testing"

	"github.com/amirphl/retail-inventory/app/dto"
	"github.com/amirphl/retail-inventory/repository"
	"github.com/amirphl/retail-inventory/utils"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

// fakeReportRepo records the parameters it receives
type fakeReportRepo struct {
	mu        sync.Mutex
	storeIDs  []uint
	baseIDs   []uint
	deptIDs   []uint
	names     []string
	failOn    string
	storeRows []repository.StoreProductRow
}

func (r *fakeReportRepo) record(list *[]uint, id uint) {
	r.mu.Lock()
	defer r.mu.Unlock()
	*list = append(*list, id)
}

func (r *fakeReportRepo) fail(query string) error {
	if r.failOn == query {
		return errBoom
	}
	return nil
}

func (r *fakeReportRepo) StoreProducts(_ context.Context, storeID uint) ([]repository.StoreProductRow, error) {
	r.record(&r.storeIDs, storeID)
	return r.storeRows, r.fail(QueryStoreProducts)
}

func (r *fakeReportRepo) BaseProducts(_ context.Context, id uint) ([]repository.BaseProductRow, error) {
	r.record(&r.baseIDs, id)
	return nil, r.fail(QueryBaseProducts)
}

func (r *fakeReportRepo) OrderableProducts(_ context.Context, storeID uint) ([]repository.OrderableProductRow, error) {
	r.record(&r.storeIDs, storeID)
	return []repository.OrderableProductRow{{StoreName: "S", ProductName: "Молоко 2,5%", TradingBase: "B", AvailableQuantity: 200, BasePrice: decimal.RequireFromString("65.5"), Priority: 1}}, r.fail(QueryOrderableProducts)
}

func (r *fakeReportRepo) ExtendedOrderableProducts(_ context.Context, storeID uint) ([]repository.ExtendedOrderableProductRow, error) {
	r.record(&r.storeIDs, storeID)
	return nil, r.fail(QueryExtendedOrderableProducts)
}

func (r *fakeReportRepo) DepartmentProducts(_ context.Context, id uint) ([]repository.DepartmentProductRow, error) {
	r.record(&r.deptIDs, id)
	return nil, r.fail(QueryDepartmentProducts)
}

func (r *fakeReportRepo) DepartmentManagers(_ context.Context, storeID uint) ([]repository.DepartmentManagerRow, error) {
	r.record(&r.storeIDs, storeID)
	return nil, r.fail(QueryDepartmentManagers)
}

func (r *fakeReportRepo) DepartmentValues(context.Context) ([]repository.DepartmentValueRow, error) {
	return nil, r.fail(QueryDepartmentValues)
}

func (r *fakeReportRepo) ProductSearch(_ context.Context, name string) ([]repository.ProductSearchRow, error) {
	r.mu.Lock()
	r.names = append(r.names, name)
	r.mu.Unlock()
	return nil, r.fail(QueryProductSearch)
}

func newTestReportFlow(repo *fakeReportRepo) (ReportFlow, *fakeTransactor, *observer.ObservedLogs) {
	core, logs := observer.New(zap.InfoLevel)
	tx := &fakeTransactor{}
	return NewReportFlow(repo, tx, zap.New(core)), tx, logs
}

func TestReportFlowDefaults(t *testing.T) {
	repo := &fakeReportRepo{}
	flow, tx, _ := newTestReportFlow(repo)
	ctx := context.Background()

	_, err := flow.StoreProducts(ctx, dto.StoreQueryRequest{})
	require.NoError(t, err)
	_, err = flow.BaseProducts(ctx, dto.TradingBaseQueryRequest{})
	require.NoError(t, err)
	_, err = flow.DepartmentProducts(ctx, dto.DepartmentQueryRequest{})
	require.NoError(t, err)
	_, err = flow.ProductSearch(ctx, dto.ProductSearchRequest{})
	require.NoError(t, err)

	assert.Equal(t, []uint{dto.DefaultStoreID}, repo.storeIDs)
	assert.Equal(t, []uint{dto.DefaultTradingBaseID}, repo.baseIDs)
	assert.Equal(t, []uint{dto.DefaultDepartmentID}, repo.deptIDs)
	assert.Equal(t, []string{dto.DefaultProductName}, repo.names)
	assert.Equal(t, 4, tx.readOnly)
	assert.Zero(t, tx.writes)
}

func TestReportFlowExplicitParameters(t *testing.T) {
	repo := &fakeReportRepo{}
	flow, _, _ := newTestReportFlow(repo)
	ctx := context.Background()

	_, err := flow.DepartmentManagers(ctx, dto.StoreQueryRequest{StoreID: utils.ToPtr(4)})
	require.NoError(t, err)
	_, err = flow.ProductSearch(ctx, dto.ProductSearchRequest{ProductName: utils.ToPtr("хлеб")})
	require.NoError(t, err)

	assert.Equal(t, []uint{4}, repo.storeIDs)
	assert.Equal(t, []string{"хлеб"}, repo.names)
}

func TestReportFlowResult(t *testing.T) {
	t.Run("EmptyRowsAreNotNil", func(t *testing.T) {
		flow, _, _ := newTestReportFlow(&fakeReportRepo{})
		res, err := flow.BaseProducts(context.Background(), dto.TradingBaseQueryRequest{})
		require.NoError(t, err)
		assert.NotNil(t, res.Rows)
		assert.Zero(t, res.RowCount)
		assert.Equal(t, QueryBaseProducts, res.Query)
	})

	t.Run("FailureIsWrapped", func(t *testing.T) {
		flow, _, logs := newTestReportFlow(&fakeReportRepo{failOn: QueryOrderableProducts})
		_, err := flow.OrderableProducts(context.Background(), dto.StoreQueryRequest{})
		require.Error(t, err)
		assert.ErrorIs(t, err, errBoom)

		be, ok := AsBusinessError(err)
		require.True(t, ok)
		assert.Equal(t, "QUERY_FAILED", be.Code)
		assert.Equal(t, 1, logs.FilterMessage("query failed").Len())
	})

	t.Run("FailureLogCarriesClient", func(t *testing.T) {
		flow, _, logs := newTestReportFlow(&fakeReportRepo{failOn: QueryStoreProducts})
		ctx := context.WithValue(context.Background(), utils.RequestIDKey, "req-9")
		ctx = context.WithValue(ctx, utils.EndpointKey, "/api/v1/queries/store_products")
		ctx = context.WithValue(ctx, utils.IPAddressKey, "10.0.0.7")
		ctx = context.WithValue(ctx, utils.UserAgentKey, "curl/8.5.0")

		_, err := flow.StoreProducts(ctx, dto.StoreQueryRequest{})
		require.Error(t, err)

		entries := logs.FilterMessage("query failed").All()
		require.Len(t, entries, 1)
		fields := entries[0].ContextMap()
		assert.Equal(t, "req-9", fields["request_id"])
		assert.Equal(t, "/api/v1/queries/store_products", fields["endpoint"])
		assert.Equal(t, "10.0.0.7", fields["ip"])
		assert.Equal(t, "curl/8.5.0", fields["user_agent"])
	})

	t.Run("VerboseLogsTable", func(t *testing.T) {
		flow, _, logs := newTestReportFlow(&fakeReportRepo{})
		res, err := flow.OrderableProducts(context.Background(), dto.StoreQueryRequest{Verbose: true})
		require.NoError(t, err)
		assert.Equal(t, 1, res.RowCount)

		entries := logs.FilterMessage("query result").All()
		require.Len(t, entries, 1)
		table := entries[0].ContextMap()["table"].(string)
		assert.Contains(t, table, "product_name")
		assert.Contains(t, table, "65.50")
	})

	t.Run("QuietByDefault", func(t *testing.T) {
		flow, _, logs := newTestReportFlow(&fakeReportRepo{})
		_, err := flow.OrderableProducts(context.Background(), dto.StoreQueryRequest{})
		require.NoError(t, err)
		assert.Zero(t, logs.FilterMessage("query result").Len())
		assert.Equal(t, 1, logs.FilterMessage("query executed").Len())
	})
}

func TestReportFlowRunAll(t *testing.T) {
	t.Run("EveryQueryInOrder", func(t *testing.T) {
		flow, tx, _ := newTestReportFlow(&fakeReportRepo{})
		res, err := flow.RunAll(context.Background(), false)
		require.NoError(t, err)

		require.Len(t, res.Results, len(QueryNames))
		for i, name := range QueryNames {
			assert.Equal(t, name, res.Results[i].Query)
		}
		assert.Equal(t, len(QueryNames), tx.readOnly)

		orderable, ok := res.Result(QueryOrderableProducts)
		require.True(t, ok)
		assert.Equal(t, "[(S, Молоко 2,5%, B, 200, 65.50, 1)]", orderable.Result)

		values, ok := res.Result(QueryDepartmentValues)
		require.True(t, ok)
		assert.Equal(t, "[]", values.Result)
	})

	t.Run("StopsOnFailure", func(t *testing.T) {
		flow, _, _ := newTestReportFlow(&fakeReportRepo{failOn: QueryProductSearch})
		_, err := flow.RunAll(context.Background(), false)
		assert.ErrorIs(t, err, errBoom)
	})
}

func TestReportFlowExportXLSX(t *testing.T) {
	flow, _, _ := newTestReportFlow(&fakeReportRepo{})
	filename, data, err := flow.ExportXLSX(context.Background())
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(filename, "inventory_report_"))
	assert.True(t, strings.HasSuffix(filename, ".xlsx"))

	xl, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer func() { _ = xl.Close() }()

	sheets := xl.GetSheetList()
	assert.Equal(t, summarySheet, sheets[0])
	for _, name := range QueryNames {
		assert.Contains(t, sheets, name)
	}

	product, err := xl.GetCellValue(QueryOrderableProducts, "B2")
	require.NoError(t, err)
	assert.Equal(t, "Молоко 2,5%", product)

	query, err := xl.GetCellValue(summarySheet, "A2")
	require.NoError(t, err)
	assert.Equal(t, QueryStoreProducts, query)
}
