package tests

import (
	"testing"

	"github.com/amirphl/retail-inventory/app/dto"
	"github.com/amirphl/retail-inventory/models"
	testingutil "github.com/amirphl/retail-inventory/testing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func assertTableCounts(t *testing.T, fixtures *testingutil.TestFixtures, want map[string]int) {
	t.Helper()
	for _, table := range models.TruncateOrder() {
		n, err := fixtures.CountRows(table)
		require.NoError(t, err)
		assert.Equal(t, int64(want[table]), n, table)
	}
}

func TestFixtureLoad(t *testing.T) {
	withSeededDB(t, func(testDB *testingutil.TestDB, fixtures *testingutil.TestFixtures) {
		ctx := testingutil.CreateTestContext()

		t.Run("SeedReloadIsIdempotent", func(t *testing.T) {
			report, err := fixtures.LoadSeed(ctx)
			require.NoError(t, err)
			assert.Equal(t, dto.FixtureStrategySeed, report.Strategy)
			assert.Equal(t, 117, report.Total)
			assertTableCounts(t, fixtures, report.Counts)
		})

		t.Run("RandomReplacesSeed", func(t *testing.T) {
			report, err := fixtures.LoadRandom(ctx, 25, 42)
			require.NoError(t, err)
			assert.Equal(t, dto.FixtureStrategyRandom, report.Strategy)
			assertTableCounts(t, fixtures, report.Counts)
		})

		t.Run("SeedAfterRandomRestartsKeys", func(t *testing.T) {
			_, err := fixtures.LoadSeed(ctx)
			require.NoError(t, err)

			var product models.Product
			require.NoError(t, testDB.DB.Order("article").First(&product).Error)
			assert.Equal(t, uint(1), product.Article)
			assert.Equal(t, "Молоко 2,5%", product.Name)
		})

		t.Run("ClearAllTables", func(t *testing.T) {
			require.NoError(t, testDB.ClearAllTables())
			assertTableCounts(t, fixtures, map[string]int{})
		})
	})
}
