package testing

import (
	"context"
	"fmt"

	"github.com/amirphl/retail-inventory/app/dto"
	businessflow "github.com/amirphl/retail-inventory/business_flow"
	"github.com/amirphl/retail-inventory/repository"
	"github.com/amirphl/retail-inventory/utils"
	"go.uber.org/zap"
)

// TestFixtures loads datasets into a test database through the fixture flow
type TestFixtures struct {
	DB   *TestDB
	Flow businessflow.FixtureFlow
}

// NewTestFixtures creates a new test fixtures instance
func NewTestFixtures(db *TestDB) *TestFixtures {
	lock := businessflow.NewReloadLock(nil, "", 0, zap.NewNop())
	flow := businessflow.NewFixtureFlow(businessflow.NewFixtureRepositories(db.DB), repository.NewTransactor(db.DB), lock, 50, zap.NewNop())
	return &TestFixtures{DB: db, Flow: flow}
}

// LoadSeed replaces the database content with the deterministic dataset
func (tf *TestFixtures) LoadSeed(ctx context.Context) (*dto.LoadReport, error) {
	return tf.Flow.LoadSeed(ctx)
}

// LoadRandom replaces the database content with a generated dataset
func (tf *TestFixtures) LoadRandom(ctx context.Context, records int, seed uint64) (*dto.LoadReport, error) {
	return tf.Flow.LoadRandom(ctx, dto.LoadRandomFixturesRequest{Records: utils.ToPtr(records), Seed: seed})
}

// CountRows returns the number of rows in table
func (tf *TestFixtures) CountRows(table string) (int64, error) {
	var n int64
	if err := tf.DB.DB.Table(table).Count(&n).Error; err != nil {
		return 0, fmt.Errorf("failed to count %s: %w", table, err)
	}
	return n, nil
}
