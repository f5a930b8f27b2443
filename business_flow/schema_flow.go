package businessflow

import (
	"context"
	"fmt"

	"github.com/amirphl/retail-inventory/app/dto"
	"github.com/amirphl/retail-inventory/models"
	"github.com/amirphl/retail-inventory/repository"
	"go.uber.org/zap"
)

// Index operations reported back to callers
const (
	IndexOperationCreate = "create"
	IndexOperationDrop   = "drop"
	IndexOperationList   = "list"
)

// SchemaFlow manages tables and report indexes
type SchemaFlow interface {
	Migrate(ctx context.Context) (*dto.MigrateResponse, error)
	CreateIndexes(ctx context.Context) (*dto.IndexStatusResponse, error)
	DropIndexes(ctx context.Context) (*dto.IndexStatusResponse, error)
	ListIndexes(ctx context.Context) (*dto.IndexStatusResponse, error)
}

// SchemaFlowImpl implements SchemaFlow
type SchemaFlowImpl struct {
	schemaRepo repository.SchemaRepository
	logger     *zap.Logger
}

func NewSchemaFlow(schemaRepo repository.SchemaRepository, logger *zap.Logger) SchemaFlow {
	return &SchemaFlowImpl{schemaRepo: schemaRepo, logger: logger}
}

func (f *SchemaFlowImpl) Migrate(ctx context.Context) (*dto.MigrateResponse, error) {
	if err := f.schemaRepo.CreateTables(ctx); err != nil {
		return nil, NewBusinessError("MIGRATION_FAILED", "Failed to create tables", err)
	}

	tables := make([]string, 0, len(models.AllModels()))
	for _, m := range models.AllModels() {
		if t, ok := m.(interface{ TableName() string }); ok {
			tables = append(tables, t.TableName())
		}
	}
	f.logger.Info("schema ready", zap.Strings("tables", tables))
	return &dto.MigrateResponse{Tables: tables}, nil
}

func (f *SchemaFlowImpl) CreateIndexes(ctx context.Context) (*dto.IndexStatusResponse, error) {
	return f.applyIndexes(ctx, IndexOperationCreate, f.schemaRepo.CreateIndexes)
}

func (f *SchemaFlowImpl) DropIndexes(ctx context.Context) (*dto.IndexStatusResponse, error) {
	return f.applyIndexes(ctx, IndexOperationDrop, f.schemaRepo.DropIndexes)
}

func (f *SchemaFlowImpl) ListIndexes(ctx context.Context) (*dto.IndexStatusResponse, error) {
	return f.indexStatus(ctx, IndexOperationList)
}

// applyIndexes logs each failed statement; the other statements have already run
func (f *SchemaFlowImpl) applyIndexes(ctx context.Context, op string, apply func(context.Context) error) (*dto.IndexStatusResponse, error) {
	if err := apply(ctx); err != nil {
		failures := []error{err}
		if joined, ok := err.(interface{ Unwrap() []error }); ok {
			failures = joined.Unwrap()
		}
		for _, failure := range failures {
			f.logger.Warn("index statement failed", zap.String("operation", op), zap.Error(failure))
		}
		return nil, NewBusinessErrorf("INDEX_OPERATION_FAILED", "%d index statements failed during %s",
			fmt.Errorf("%w: %w", ErrIndexOperationFailed, err), len(failures), op)
	}

	res, err := f.indexStatus(ctx, op)
	if err != nil {
		return nil, err
	}
	f.logger.Info("indexes updated", zap.String("operation", op), zap.Strings("present", res.Indexes))
	return res, nil
}

func (f *SchemaFlowImpl) indexStatus(ctx context.Context, op string) (*dto.IndexStatusResponse, error) {
	present, err := f.schemaRepo.ListIndexes(ctx)
	if err != nil {
		return nil, NewBusinessError("INDEX_LIST_FAILED", "Failed to list indexes", err)
	}
	if present == nil {
		present = []string{}
	}
	return &dto.IndexStatusResponse{Operation: op, Indexes: present, Expected: len(repository.ReportIndexes)}, nil
}
