package businessflow

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/amirphl/retail-inventory/app/dto"
	"github.com/amirphl/retail-inventory/fixtures"
	"github.com/amirphl/retail-inventory/models"
	"github.com/amirphl/retail-inventory/repository"
	"github.com/amirphl/retail-inventory/utils"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// FixtureFlow replaces the whole inventory population with a dataset
type FixtureFlow interface {
	LoadSeed(ctx context.Context) (*dto.LoadReport, error)
	LoadRandom(ctx context.Context, req dto.LoadRandomFixturesRequest) (*dto.LoadReport, error)
	Load(ctx context.Context, strategy string, dataset *fixtures.Dataset) (*dto.LoadReport, error)
}

// FixtureRepositories groups the writers used by a reload
type FixtureRepositories struct {
	Schema              repository.SchemaRepository
	StoreClasses        repository.StoreClassRepository
	TradingBases        repository.TradingBaseRepository
	Employees           repository.EmployeeRepository
	Stores              repository.StoreRepository
	Departments         repository.DepartmentRepository
	Products            repository.ProductRepository
	DepartmentProducts  repository.DepartmentProductRepository
	WarehouseProducts   repository.WarehouseProductRepository
	ProductPrices       repository.ProductPriceRepository
	WarehousePriorities repository.WarehousePriorityRepository
}

// NewFixtureRepositories builds every repository a reload needs on db
func NewFixtureRepositories(db *gorm.DB) FixtureRepositories {
	return FixtureRepositories{
		Schema:              repository.NewSchemaRepository(db),
		StoreClasses:        repository.NewStoreClassRepository(db),
		TradingBases:        repository.NewTradingBaseRepository(db),
		Employees:           repository.NewEmployeeRepository(db),
		Stores:              repository.NewStoreRepository(db),
		Departments:         repository.NewDepartmentRepository(db),
		Products:            repository.NewProductRepository(db),
		DepartmentProducts:  repository.NewDepartmentProductRepository(db),
		WarehouseProducts:   repository.NewWarehouseProductRepository(db),
		ProductPrices:       repository.NewProductPriceRepository(db),
		WarehousePriorities: repository.NewWarehousePriorityRepository(db),
	}
}

// FixtureFlowImpl implements FixtureFlow
type FixtureFlowImpl struct {
	repos          FixtureRepositories
	tx             repository.Transactor
	lock           ReloadLock
	defaultRecords int
	logger         *zap.Logger
}

func NewFixtureFlow(repos FixtureRepositories, tx repository.Transactor, lock ReloadLock, defaultRecords int, logger *zap.Logger) FixtureFlow {
	return &FixtureFlowImpl{
		repos:          repos,
		tx:             tx,
		lock:           lock,
		defaultRecords: defaultRecords,
		logger:         logger,
	}
}

func (f *FixtureFlowImpl) LoadSeed(ctx context.Context) (*dto.LoadReport, error) {
	return f.Load(ctx, dto.FixtureStrategySeed, fixtures.Seed())
}

func (f *FixtureFlowImpl) LoadRandom(ctx context.Context, req dto.LoadRandomFixturesRequest) (*dto.LoadReport, error) {
	records := f.defaultRecords
	if req.Records != nil {
		records = *req.Records
	}

	dataset, err := fixtures.Generate(fixtures.GenerateOptions{Records: records, Seed: req.Seed})
	if err != nil {
		return nil, NewBusinessError("INVALID_RECORD_COUNT", "Record count is out of range", err)
	}
	return f.Load(ctx, dto.FixtureStrategyRandom, dataset)
}

// Load validates dataset, takes the reload lock and swaps the population in one transaction
func (f *FixtureFlowImpl) Load(ctx context.Context, strategy string, dataset *fixtures.Dataset) (*dto.LoadReport, error) {
	if err := dataset.Validate(); err != nil {
		return nil, NewBusinessError("INVALID_DATASET", "Dataset failed validation", err)
	}

	release, err := f.lock.Acquire(ctx)
	if err != nil {
		if errors.Is(err, ErrReloadInProgress) {
			return nil, NewBusinessError("RELOAD_IN_PROGRESS", "Another fixture reload is running", err)
		}
		return nil, NewBusinessError("RELOAD_LOCK_FAILED", "Failed to acquire reload lock", err)
	}
	defer release()

	runID := uuid.New()
	log := f.logger.With(zap.String("run_id", runID.String()), zap.String("strategy", strategy))
	log.Info("fixture reload started", zap.Int("rows", dataset.Total()))

	start := time.Now()
	err = f.tx.WithTransaction(ctx, func(txCtx context.Context) error {
		if err := f.repos.Schema.TruncateAll(txCtx); err != nil {
			return err
		}
		return f.insert(txCtx, dataset)
	})
	elapsed := time.Since(start)
	if err != nil {
		log.Error("fixture reload failed", zap.Error(err))
		return nil, NewBusinessError("FIXTURE_LOAD_FAILED", "Failed to load fixtures", err)
	}

	counts := dataset.Counts()
	for entity, n := range counts {
		fixtureRowsLoaded.WithLabelValues(entity).Add(float64(n))
	}
	fixtureLoadDuration.Observe(elapsed.Seconds())

	report := &dto.LoadReport{
		RunID:          runID.String(),
		Strategy:       strategy,
		Counts:         counts,
		Total:          dataset.Total(),
		ElapsedSeconds: utils.Seconds(elapsed),
		FinishedAt:     utils.UTCNow(),
	}
	log.Info("fixture reload finished", zap.Int("rows", report.Total), zap.Float64("elapsed_seconds", report.ElapsedSeconds))
	return report, nil
}

// insert writes parents first and resolves positional references to the keys they received
func (f *FixtureFlowImpl) insert(ctx context.Context, d *fixtures.Dataset) error {
	classes := make([]*models.StoreClass, len(d.StoreClasses))
	for i, c := range d.StoreClasses {
		classes[i] = &models.StoreClass{Name: c.Name, Description: c.Description}
	}
	if err := f.repos.StoreClasses.SaveBatch(ctx, classes); err != nil {
		return fmt.Errorf("store classes: %w", err)
	}

	bases := make([]*models.TradingBase, len(d.TradingBases))
	for i, b := range d.TradingBases {
		bases[i] = &models.TradingBase{Name: b.Name, Description: b.Description}
	}
	if err := f.repos.TradingBases.SaveBatch(ctx, bases); err != nil {
		return fmt.Errorf("trading bases: %w", err)
	}

	employees := make([]*models.Employee, len(d.Employees))
	for i, e := range d.Employees {
		employees[i] = &models.Employee{FirstName: e.FirstName, LastName: e.LastName}
	}
	if err := f.repos.Employees.SaveBatch(ctx, employees); err != nil {
		return fmt.Errorf("employees: %w", err)
	}

	stores := make([]*models.Store, len(d.Stores))
	for i, s := range d.Stores {
		stores[i] = &models.Store{
			Name:         s.Name,
			Description:  s.Description,
			StoreClassID: classes[s.ClassRef-1].ID,
			DirectorID:   employees[s.DirectorRef-1].ID,
		}
	}
	if err := f.repos.Stores.SaveBatch(ctx, stores); err != nil {
		return fmt.Errorf("stores: %w", err)
	}

	departments := make([]*models.Department, len(d.Departments))
	for i, dep := range d.Departments {
		departments[i] = &models.Department{
			Name:      dep.Name,
			StoreID:   stores[dep.StoreRef-1].ID,
			ManagerID: employees[dep.ManagerRef-1].ID,
		}
	}
	if err := f.repos.Departments.SaveBatch(ctx, departments); err != nil {
		return fmt.Errorf("departments: %w", err)
	}

	products := make([]*models.Product, len(d.Products))
	for i, p := range d.Products {
		products[i] = &models.Product{Name: p.Name, Sort: p.Sort}
	}
	if err := f.repos.Products.SaveBatch(ctx, products); err != nil {
		return fmt.Errorf("products: %w", err)
	}

	stock := make([]*models.DepartmentProduct, len(d.DepartmentProducts))
	for i, r := range d.DepartmentProducts {
		stock[i] = &models.DepartmentProduct{
			DepartmentID: departments[r.DepartmentRef-1].ID,
			Article:      products[r.ProductRef-1].Article,
			Count:        r.Count,
		}
	}
	if err := f.repos.DepartmentProducts.SaveBatch(ctx, stock); err != nil {
		return fmt.Errorf("department products: %w", err)
	}

	warehouse := make([]*models.WarehouseProduct, len(d.WarehouseProducts))
	for i, r := range d.WarehouseProducts {
		warehouse[i] = &models.WarehouseProduct{
			TradingBaseID: bases[r.BaseRef-1].ID,
			Article:       products[r.ProductRef-1].Article,
			Count:         r.Count,
			Price:         r.Price,
		}
	}
	if err := f.repos.WarehouseProducts.SaveBatch(ctx, warehouse); err != nil {
		return fmt.Errorf("warehouse products: %w", err)
	}

	prices := make([]*models.ProductPrice, len(d.ProductPrices))
	for i, r := range d.ProductPrices {
		prices[i] = &models.ProductPrice{
			StoreClassID: classes[r.ClassRef-1].ID,
			Article:      products[r.ProductRef-1].Article,
			Price:        r.Price,
		}
	}
	if err := f.repos.ProductPrices.SaveBatch(ctx, prices); err != nil {
		return fmt.Errorf("product prices: %w", err)
	}

	priorities := make([]*models.WarehousePriority, len(d.WarehousePriorities))
	for i, r := range d.WarehousePriorities {
		priority := r.Priority
		if priority == 0 {
			priority = models.DefaultPriority
		}
		priorities[i] = &models.WarehousePriority{
			Article:       products[r.ProductRef-1].Article,
			StoreID:       stores[r.StoreRef-1].ID,
			TradingBaseID: bases[r.BaseRef-1].ID,
			Priority:      priority,
		}
	}
	if err := f.repos.WarehousePriorities.SaveBatch(ctx, priorities); err != nil {
		return fmt.Errorf("warehouse priorities: %w", err)
	}

	return nil
}
