package businessflow

import (
	"context"
	"testing"

	"github.com/amirphl/retail-inventory/app/dto"
	"github.com/amirphl/retail-inventory/fixtures"
	"github.com/amirphl/retail-inventory/models"
	"github.com/amirphl/retail-inventory/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestFixtureFlow(repos *fakeFixtureRepos) (FixtureFlow, *fakeTransactor, ReloadLock) {
	tx := &fakeTransactor{}
	lock := NewReloadLock(nil, "", 0, zap.NewNop())
	return NewFixtureFlow(repos.repositories(), tx, lock, 10, zap.NewNop()), tx, lock
}

func TestFixtureFlowLoadSeed(t *testing.T) {
	repos := newFakeFixtureRepos()
	flow, tx, _ := newTestFixtureFlow(repos)

	report, err := flow.LoadSeed(context.Background())
	require.NoError(t, err)

	assert.Equal(t, dto.FixtureStrategySeed, report.Strategy)
	assert.Equal(t, 117, report.Total)
	assert.Equal(t, 15, report.Counts[models.TableProduct])
	assert.NotEmpty(t, report.RunID)
	assert.False(t, report.FinishedAt.IsZero())

	assert.Equal(t, 1, tx.writes)
	assert.Equal(t, 1, repos.schema.truncated)
	assert.Len(t, repos.products.saved, 15)
	assert.Len(t, repos.priorities.saved, 16)
}

func TestFixtureFlowResolvesReferences(t *testing.T) {
	repos := newFakeFixtureRepos()
	flow, _, _ := newTestFixtureFlow(repos)
	seed := fixtures.Seed()

	_, err := flow.Load(context.Background(), dto.FixtureStrategySeed, seed)
	require.NoError(t, err)

	// stock rows carry the article generated for their product, not its position
	first := repos.stock.saved[0]
	assert.Equal(t, uint(1001), first.Article)
	assert.Equal(t, uint(seed.DepartmentProducts[0].DepartmentRef), first.DepartmentID)

	for i, s := range repos.stores.saved {
		assert.Equal(t, uint(seed.Stores[i].ClassRef), s.StoreClassID)
		assert.Equal(t, uint(seed.Stores[i].DirectorRef), s.DirectorID)
	}
	for i, p := range repos.priorities.saved {
		assert.Equal(t, uint(1000+seed.WarehousePriorities[i].ProductRef), p.Article)
		assert.Equal(t, seed.WarehousePriorities[i].Priority, p.Priority)
	}
}

func TestFixtureFlowDefaultPriority(t *testing.T) {
	repos := newFakeFixtureRepos()
	flow, _, _ := newTestFixtureFlow(repos)
	seed := fixtures.Seed()
	seed.WarehousePriorities[0].Priority = 0

	_, err := flow.Load(context.Background(), dto.FixtureStrategySeed, seed)
	require.NoError(t, err)
	assert.Equal(t, models.DefaultPriority, repos.priorities.saved[0].Priority)
}

func TestFixtureFlowLoadRandom(t *testing.T) {
	t.Run("DefaultRecords", func(t *testing.T) {
		flow, _, _ := newTestFixtureFlow(newFakeFixtureRepos())
		report, err := flow.LoadRandom(context.Background(), dto.LoadRandomFixturesRequest{Seed: 7})
		require.NoError(t, err)
		assert.Equal(t, dto.FixtureStrategyRandom, report.Strategy)
		assert.Positive(t, report.Total)
	})

	t.Run("Deterministic", func(t *testing.T) {
		a, _, _ := newTestFixtureFlow(newFakeFixtureRepos())
		b, _, _ := newTestFixtureFlow(newFakeFixtureRepos())
		req := dto.LoadRandomFixturesRequest{Records: utils.ToPtr(25), Seed: 42}

		ra, err := a.LoadRandom(context.Background(), req)
		require.NoError(t, err)
		rb, err := b.LoadRandom(context.Background(), req)
		require.NoError(t, err)
		assert.Equal(t, ra.Counts, rb.Counts)
	})

	t.Run("InvalidRecordCount", func(t *testing.T) {
		repos := newFakeFixtureRepos()
		flow, _, _ := newTestFixtureFlow(repos)
		_, err := flow.LoadRandom(context.Background(), dto.LoadRandomFixturesRequest{Records: utils.ToPtr(fixtures.MaxRecords + 1)})
		require.Error(t, err)
		assert.True(t, IsInvalidRecordCount(err))

		be, ok := AsBusinessError(err)
		require.True(t, ok)
		assert.Equal(t, "INVALID_RECORD_COUNT", be.Code)
		assert.Zero(t, repos.schema.truncated)
	})
}

func TestFixtureFlowFailures(t *testing.T) {
	t.Run("InvalidDataset", func(t *testing.T) {
		repos := newFakeFixtureRepos()
		flow, tx, _ := newTestFixtureFlow(repos)
		d := fixtures.Seed()
		d.Departments[0].StoreRef = 99

		_, err := flow.Load(context.Background(), dto.FixtureStrategySeed, d)
		require.Error(t, err)
		assert.True(t, IsInvalidDataset(err))
		assert.Zero(t, tx.writes)
	})

	t.Run("ReloadInProgress", func(t *testing.T) {
		repos := newFakeFixtureRepos()
		flow, _, lock := newTestFixtureFlow(repos)

		release, err := lock.Acquire(context.Background())
		require.NoError(t, err)

		_, err = flow.LoadSeed(context.Background())
		require.Error(t, err)
		assert.True(t, IsReloadInProgress(err))
		assert.Zero(t, repos.schema.truncated)

		release()
		_, err = flow.LoadSeed(context.Background())
		assert.NoError(t, err)
	})

	t.Run("InsertFailure", func(t *testing.T) {
		repos := newFakeFixtureRepos()
		repos.warehouse.saveErr = errBoom
		flow, _, lock := newTestFixtureFlow(repos)

		_, err := flow.LoadSeed(context.Background())
		require.Error(t, err)
		assert.ErrorIs(t, err, errBoom)
		assert.Contains(t, err.Error(), "warehouse products")

		be, ok := AsBusinessError(err)
		require.True(t, ok)
		assert.Equal(t, "FIXTURE_LOAD_FAILED", be.Code)

		// the lock is released after a failed reload
		release, err := lock.Acquire(context.Background())
		require.NoError(t, err)
		release()
	})

	t.Run("TruncateFailure", func(t *testing.T) {
		repos := newFakeFixtureRepos()
		repos.schema.truncateErr = errBoom
		flow, _, _ := newTestFixtureFlow(repos)

		_, err := flow.LoadSeed(context.Background())
		assert.ErrorIs(t, err, errBoom)
		assert.Empty(t, repos.classes.saved)
	})
}
