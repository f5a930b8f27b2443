package businessflow

import (
	"context"
	"fmt"
	"time"

	"github.com/amirphl/retail-inventory/app/dto"
	"github.com/amirphl/retail-inventory/reporting"
	"github.com/amirphl/retail-inventory/repository"
	"github.com/amirphl/retail-inventory/utils"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Query names, also used as route names and metric labels
const (
	QueryStoreProducts             = "store_products"
	QueryBaseProducts              = "base_products"
	QueryOrderableProducts         = "orderable_products"
	QueryExtendedOrderableProducts = "extended_orderable_products"
	QueryDepartmentProducts        = "department_products"
	QueryDepartmentManagers        = "department_managers"
	QueryDepartmentValues          = "department_values"
	QueryProductSearch             = "product_search"
)

// QueryNames lists every report query in presentation order
var QueryNames = []string{
	QueryStoreProducts,
	QueryBaseProducts,
	QueryOrderableProducts,
	QueryExtendedOrderableProducts,
	QueryDepartmentProducts,
	QueryDepartmentManagers,
	QueryDepartmentValues,
	QueryProductSearch,
}

const parallelQueries = 4

// ReportFlow runs the analytical queries
type ReportFlow interface {
	StoreProducts(ctx context.Context, req dto.StoreQueryRequest) (*dto.QueryResult[repository.StoreProductRow], error)
	BaseProducts(ctx context.Context, req dto.TradingBaseQueryRequest) (*dto.QueryResult[repository.BaseProductRow], error)
	OrderableProducts(ctx context.Context, req dto.StoreQueryRequest) (*dto.QueryResult[repository.OrderableProductRow], error)
	ExtendedOrderableProducts(ctx context.Context, req dto.StoreQueryRequest) (*dto.QueryResult[repository.ExtendedOrderableProductRow], error)
	DepartmentProducts(ctx context.Context, req dto.DepartmentQueryRequest) (*dto.QueryResult[repository.DepartmentProductRow], error)
	DepartmentManagers(ctx context.Context, req dto.StoreQueryRequest) (*dto.QueryResult[repository.DepartmentManagerRow], error)
	DepartmentValues(ctx context.Context, req dto.VerboseRequest) (*dto.QueryResult[repository.DepartmentValueRow], error)
	ProductSearch(ctx context.Context, req dto.ProductSearchRequest) (*dto.QueryResult[repository.ProductSearchRow], error)
	RunAll(ctx context.Context, verbose bool) (*dto.RunAllResponse, error)
	ExportXLSX(ctx context.Context) (string, []byte, error)
}

// ReportFlowImpl implements ReportFlow
type ReportFlowImpl struct {
	reportRepo repository.ReportRepository
	tx         repository.Transactor
	logger     *zap.Logger
}

func NewReportFlow(reportRepo repository.ReportRepository, tx repository.Transactor, logger *zap.Logger) ReportFlow {
	return &ReportFlowImpl{reportRepo: reportRepo, tx: tx, logger: logger}
}

// runQuery executes fn inside a read-only transaction, then times, counts and logs the result
func runQuery[T any](ctx context.Context, f *ReportFlowImpl, name string, verbose bool, fn func(context.Context) ([]T, error)) (*dto.QueryResult[T], error) {
	var rows []T
	start := time.Now()
	err := f.tx.WithReadOnlyTransaction(ctx, func(txCtx context.Context) error {
		var qerr error
		rows, qerr = fn(txCtx)
		return qerr
	})
	elapsed := time.Since(start)
	if err != nil {
		f.logger.Error("query failed",
			zap.String("query", name),
			zap.String("request_id", utils.RequestID(ctx)),
			zap.String("endpoint", utils.Endpoint(ctx)),
			zap.String("ip", utils.IPAddress(ctx)),
			zap.String("user_agent", utils.UserAgent(ctx)),
			zap.Error(err))
		return nil, NewBusinessErrorf("QUERY_FAILED", "query %s failed", err, name)
	}
	if rows == nil {
		rows = []T{}
	}

	queryDuration.WithLabelValues(name).Observe(elapsed.Seconds())
	queryRows.WithLabelValues(name).Set(float64(len(rows)))

	f.logger.Info("query executed",
		zap.String("query", name),
		zap.Float64("elapsed_seconds", utils.Seconds(elapsed)),
		zap.Int("rows", len(rows)),
		zap.String("request_id", utils.RequestID(ctx)))
	if verbose {
		f.logger.Info("query result", zap.String("query", name), zap.String("table", "\n"+reporting.Table(rows)))
	}

	return &dto.QueryResult[T]{
		Query:          name,
		Rows:           rows,
		RowCount:       len(rows),
		ElapsedSeconds: utils.Seconds(elapsed),
	}, nil
}

func (f *ReportFlowImpl) StoreProducts(ctx context.Context, req dto.StoreQueryRequest) (*dto.QueryResult[repository.StoreProductRow], error) {
	storeID := req.StoreIDOrDefault()
	return runQuery(ctx, f, QueryStoreProducts, req.Verbose, func(txCtx context.Context) ([]repository.StoreProductRow, error) {
		return f.reportRepo.StoreProducts(txCtx, storeID)
	})
}

func (f *ReportFlowImpl) BaseProducts(ctx context.Context, req dto.TradingBaseQueryRequest) (*dto.QueryResult[repository.BaseProductRow], error) {
	baseID := req.BaseIDOrDefault()
	return runQuery(ctx, f, QueryBaseProducts, req.Verbose, func(txCtx context.Context) ([]repository.BaseProductRow, error) {
		return f.reportRepo.BaseProducts(txCtx, baseID)
	})
}

func (f *ReportFlowImpl) OrderableProducts(ctx context.Context, req dto.StoreQueryRequest) (*dto.QueryResult[repository.OrderableProductRow], error) {
	storeID := req.StoreIDOrDefault()
	return runQuery(ctx, f, QueryOrderableProducts, req.Verbose, func(txCtx context.Context) ([]repository.OrderableProductRow, error) {
		return f.reportRepo.OrderableProducts(txCtx, storeID)
	})
}

func (f *ReportFlowImpl) ExtendedOrderableProducts(ctx context.Context, req dto.StoreQueryRequest) (*dto.QueryResult[repository.ExtendedOrderableProductRow], error) {
	storeID := req.StoreIDOrDefault()
	return runQuery(ctx, f, QueryExtendedOrderableProducts, req.Verbose, func(txCtx context.Context) ([]repository.ExtendedOrderableProductRow, error) {
		return f.reportRepo.ExtendedOrderableProducts(txCtx, storeID)
	})
}

func (f *ReportFlowImpl) DepartmentProducts(ctx context.Context, req dto.DepartmentQueryRequest) (*dto.QueryResult[repository.DepartmentProductRow], error) {
	departmentID := req.DepartmentIDOrDefault()
	return runQuery(ctx, f, QueryDepartmentProducts, req.Verbose, func(txCtx context.Context) ([]repository.DepartmentProductRow, error) {
		return f.reportRepo.DepartmentProducts(txCtx, departmentID)
	})
}

func (f *ReportFlowImpl) DepartmentManagers(ctx context.Context, req dto.StoreQueryRequest) (*dto.QueryResult[repository.DepartmentManagerRow], error) {
	storeID := req.StoreIDOrDefault()
	return runQuery(ctx, f, QueryDepartmentManagers, req.Verbose, func(txCtx context.Context) ([]repository.DepartmentManagerRow, error) {
		return f.reportRepo.DepartmentManagers(txCtx, storeID)
	})
}

func (f *ReportFlowImpl) DepartmentValues(ctx context.Context, req dto.VerboseRequest) (*dto.QueryResult[repository.DepartmentValueRow], error) {
	return runQuery(ctx, f, QueryDepartmentValues, req.Verbose, f.reportRepo.DepartmentValues)
}

func (f *ReportFlowImpl) ProductSearch(ctx context.Context, req dto.ProductSearchRequest) (*dto.QueryResult[repository.ProductSearchRow], error) {
	name := req.ProductNameOrDefault()
	return runQuery(ctx, f, QueryProductSearch, req.Verbose, func(txCtx context.Context) ([]repository.ProductSearchRow, error) {
		return f.reportRepo.ProductSearch(txCtx, name)
	})
}

// querySnapshot is a finished query with its rows kept untyped for rendering
type querySnapshot struct {
	name    string
	rows    any
	count   int
	elapsed float64
}

func snapshot[T any](res *dto.QueryResult[T], err error) (querySnapshot, error) {
	if err != nil {
		return querySnapshot{}, err
	}
	return querySnapshot{name: res.Query, rows: res.Rows, count: res.RowCount, elapsed: res.ElapsedSeconds}, nil
}

// collect runs every query with its default parameters; results keep QueryNames order
func (f *ReportFlowImpl) collect(ctx context.Context, verbose bool) ([]querySnapshot, time.Duration, error) {
	runners := []func(context.Context) (querySnapshot, error){
		func(ctx context.Context) (querySnapshot, error) {
			return snapshot(f.StoreProducts(ctx, dto.StoreQueryRequest{Verbose: verbose}))
		},
		func(ctx context.Context) (querySnapshot, error) {
			return snapshot(f.BaseProducts(ctx, dto.TradingBaseQueryRequest{Verbose: verbose}))
		},
		func(ctx context.Context) (querySnapshot, error) {
			return snapshot(f.OrderableProducts(ctx, dto.StoreQueryRequest{Verbose: verbose}))
		},
		func(ctx context.Context) (querySnapshot, error) {
			return snapshot(f.ExtendedOrderableProducts(ctx, dto.StoreQueryRequest{Verbose: verbose}))
		},
		func(ctx context.Context) (querySnapshot, error) {
			return snapshot(f.DepartmentProducts(ctx, dto.DepartmentQueryRequest{Verbose: verbose}))
		},
		func(ctx context.Context) (querySnapshot, error) {
			return snapshot(f.DepartmentManagers(ctx, dto.StoreQueryRequest{Verbose: verbose}))
		},
		func(ctx context.Context) (querySnapshot, error) {
			return snapshot(f.DepartmentValues(ctx, dto.VerboseRequest{Verbose: verbose}))
		},
		func(ctx context.Context) (querySnapshot, error) {
			return snapshot(f.ProductSearch(ctx, dto.ProductSearchRequest{Verbose: verbose}))
		},
	}

	snaps := make([]querySnapshot, len(runners))
	start := time.Now()

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(parallelQueries)
	for i, run := range runners {
		g.Go(func() error {
			s, err := run(gctx)
			if err != nil {
				return err
			}
			snaps[i] = s
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, 0, err
	}

	return snaps, time.Since(start), nil
}

// RunAll executes all queries with defaults and stringifies each result
func (f *ReportFlowImpl) RunAll(ctx context.Context, verbose bool) (*dto.RunAllResponse, error) {
	snaps, total, err := f.collect(ctx, verbose)
	if err != nil {
		return nil, err
	}

	res := &dto.RunAllResponse{
		Results:             make([]dto.QuerySummary, 0, len(snaps)),
		TotalElapsedSeconds: utils.Seconds(total),
	}
	for _, s := range snaps {
		res.Results = append(res.Results, dto.QuerySummary{
			Query:          s.name,
			Result:         reporting.Stringify(s.rows),
			RowCount:       s.count,
			ElapsedSeconds: s.elapsed,
		})
	}

	f.logger.Info("all queries executed",
		zap.Int("queries", len(snaps)),
		zap.Float64("elapsed_seconds", res.TotalElapsedSeconds))
	return res, nil
}

func (f *ReportFlowImpl) ExportXLSX(ctx context.Context) (string, []byte, error) {
	snaps, _, err := f.collect(ctx, false)
	if err != nil {
		return "", nil, err
	}

	data, err := buildWorkbook(snaps)
	if err != nil {
		return "", nil, NewBusinessError("EXCEL_WRITE_ERROR", "Failed to write Excel file", err)
	}

	filename := fmt.Sprintf("inventory_report_%s.xlsx", utils.UTCNow().Format("20060102T150405Z"))
	return filename, data, nil
}
