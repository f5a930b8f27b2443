// Package tests runs the repositories and flows against a real PostgreSQL database
package tests

import (
	"errors"
	"testing"

	testingutil "github.com/amirphl/retail-inventory/testing"
	"github.com/stretchr/testify/require"
)

// withSeededDB runs fn on a fresh database holding the demonstration dataset.
// The test is skipped when no server answers at TEST_DB_*.
func withSeededDB(t *testing.T, fn func(*testingutil.TestDB, *testingutil.TestFixtures)) {
	t.Helper()
	err := testingutil.TestWithDB(func(testDB *testingutil.TestDB) error {
		fixtures := testingutil.NewTestFixtures(testDB)
		if _, err := fixtures.LoadSeed(testingutil.CreateTestContext()); err != nil {
			return err
		}
		fn(testDB, fixtures)
		return nil
	})
	if errors.Is(err, testingutil.ErrDatabaseUnavailable) {
		t.Skipf("skipping database test: %v", err)
	}
	require.NoError(t, err)
}
