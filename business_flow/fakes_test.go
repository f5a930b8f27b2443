package businessflow

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/amirphl/retail-inventory/models"
	"github.com/amirphl/retail-inventory/repository"
)

// fakeTransactor runs fn directly and counts how it was called
type fakeTransactor struct {
	mu       sync.Mutex
	writes   int
	readOnly int
	beginErr error
}

func (t *fakeTransactor) WithTransaction(ctx context.Context, fn func(context.Context) error) error {
	t.mu.Lock()
	t.writes++
	t.mu.Unlock()
	if t.beginErr != nil {
		return t.beginErr
	}
	return fn(ctx)
}

func (t *fakeTransactor) WithReadOnlyTransaction(ctx context.Context, fn func(context.Context) error) error {
	t.mu.Lock()
	t.readOnly++
	t.mu.Unlock()
	if t.beginErr != nil {
		return t.beginErr
	}
	return fn(ctx)
}

// fakeRepo stores saved entities in memory and hands out sequential keys
type fakeRepo[T any, F any] struct {
	mu      sync.Mutex
	saved   []*T
	next    uint
	assign  func(*T, uint)
	saveErr error
}

func newFakeRepo[T any, F any](assign func(*T, uint)) *fakeRepo[T, F] {
	return &fakeRepo[T, F]{assign: assign}
}

func (r *fakeRepo[T, F]) ByID(context.Context, uint) (*T, error) { return nil, nil }

func (r *fakeRepo[T, F]) ByFilter(context.Context, F, string, int, int) ([]*T, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]*T(nil), r.saved...), nil
}

func (r *fakeRepo[T, F]) SaveBatch(_ context.Context, entities []*T) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.saveErr != nil {
		return r.saveErr
	}
	for _, e := range entities {
		r.next++
		if r.assign != nil {
			r.assign(e, r.next)
		}
		r.saved = append(r.saved, e)
	}
	return nil
}

func (r *fakeRepo[T, F]) Count(context.Context, F) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.saved)), nil
}

func (r *fakeRepo[T, F]) Exists(ctx context.Context, f F) (bool, error) {
	n, err := r.Count(ctx, f)
	return n > 0, err
}

type fakeStoreRepo struct {
	*fakeRepo[models.Store, models.StoreFilter]
	byID map[uint]*models.Store
	err  error
}

func (r *fakeStoreRepo) Exists(_ context.Context, f models.StoreFilter) (bool, error) {
	if r.err != nil {
		return false, r.err
	}
	if f.ID == nil {
		return len(r.byID) > 0, nil
	}
	_, ok := r.byID[*f.ID]
	return ok, nil
}

func (r *fakeStoreRepo) ByIDWithRelations(_ context.Context, id uint) (*models.Store, error) {
	if r.err != nil {
		return nil, r.err
	}
	return r.byID[id], nil
}

type fakeDepartmentRepo struct {
	*fakeRepo[models.Department, models.DepartmentFilter]
	byID    map[uint]*models.Department
	listErr error
}

func (r *fakeDepartmentRepo) ByIDWithRelations(_ context.Context, id uint) (*models.Department, error) {
	return r.byID[id], nil
}

func (r *fakeDepartmentRepo) ListByStore(_ context.Context, storeID uint) ([]*models.Department, error) {
	if r.listErr != nil {
		return nil, r.listErr
	}
	var out []*models.Department
	for _, d := range r.byID {
		if d.StoreID == storeID {
			out = append(out, d)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

type fakeSchemaRepo struct {
	mu          sync.Mutex
	truncated   int
	migrated    int
	indexes     map[string]bool
	createErr   error
	truncateErr error
}

func newFakeSchemaRepo() *fakeSchemaRepo {
	return &fakeSchemaRepo{indexes: map[string]bool{}}
}

func (r *fakeSchemaRepo) CreateTables(context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.migrated++
	return nil
}

func (r *fakeSchemaRepo) CreateIndexes(context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, idx := range repository.ReportIndexes {
		r.indexes[idx.Name] = true
	}
	return r.createErr
}

func (r *fakeSchemaRepo) DropIndexes(context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.indexes = map[string]bool{}
	return nil
}

func (r *fakeSchemaRepo) ListIndexes(context.Context) ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []string
	for _, idx := range repository.ReportIndexes {
		if r.indexes[idx.Name] {
			out = append(out, idx.Name)
		}
	}
	return out, nil
}

func (r *fakeSchemaRepo) TruncateAll(context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.truncated++
	return r.truncateErr
}

var errBoom = errors.New("boom")

type fakeFixtureRepos struct {
	schema      *fakeSchemaRepo
	classes     *fakeRepo[models.StoreClass, models.StoreClassFilter]
	bases       *fakeRepo[models.TradingBase, models.TradingBaseFilter]
	employees   *fakeRepo[models.Employee, models.EmployeeFilter]
	stores      *fakeStoreRepo
	departments *fakeDepartmentRepo
	products    *fakeRepo[models.Product, models.ProductFilter]
	stock       *fakeRepo[models.DepartmentProduct, models.DepartmentProductFilter]
	warehouse   *fakeRepo[models.WarehouseProduct, models.WarehouseProductFilter]
	prices      *fakeRepo[models.ProductPrice, models.ProductPriceFilter]
	priorities  *fakeRepo[models.WarehousePriority, models.WarehousePriorityFilter]
}

func newFakeFixtureRepos() *fakeFixtureRepos {
	return &fakeFixtureRepos{
		schema:      newFakeSchemaRepo(),
		classes:     newFakeRepo[models.StoreClass, models.StoreClassFilter](func(e *models.StoreClass, id uint) { e.ID = id }),
		bases:       newFakeRepo[models.TradingBase, models.TradingBaseFilter](func(e *models.TradingBase, id uint) { e.ID = id }),
		employees:   newFakeRepo[models.Employee, models.EmployeeFilter](func(e *models.Employee, id uint) { e.ID = id }),
		stores:      &fakeStoreRepo{fakeRepo: newFakeRepo[models.Store, models.StoreFilter](func(e *models.Store, id uint) { e.ID = id })},
		departments: &fakeDepartmentRepo{fakeRepo: newFakeRepo[models.Department, models.DepartmentFilter](func(e *models.Department, id uint) { e.ID = id })},
		products:    newFakeRepo[models.Product, models.ProductFilter](func(e *models.Product, id uint) { e.Article = 1000 + id }),
		stock:       newFakeRepo[models.DepartmentProduct, models.DepartmentProductFilter](nil),
		warehouse:   newFakeRepo[models.WarehouseProduct, models.WarehouseProductFilter](nil),
		prices:      newFakeRepo[models.ProductPrice, models.ProductPriceFilter](nil),
		priorities:  newFakeRepo[models.WarehousePriority, models.WarehousePriorityFilter](nil),
	}
}

func (f *fakeFixtureRepos) repositories() FixtureRepositories {
	return FixtureRepositories{
		Schema:              f.schema,
		StoreClasses:        f.classes,
		TradingBases:        f.bases,
		Employees:           f.employees,
		Stores:              f.stores,
		Departments:         f.departments,
		Products:            f.products,
		DepartmentProducts:  f.stock,
		WarehouseProducts:   f.warehouse,
		ProductPrices:       f.prices,
		WarehousePriorities: f.priorities,
	}
}
