package tests

import (
	"testing"

	businessflow "github.com/amirphl/retail-inventory/business_flow"
	"github.com/amirphl/retail-inventory/repository"
	testingutil "github.com/amirphl/retail-inventory/testing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalogFlow(t *testing.T) {
	withSeededDB(t, func(testDB *testingutil.TestDB, _ *testingutil.TestFixtures) {
		flow := businessflow.NewCatalogFlow(repository.NewStoreRepository(testDB.DB), repository.NewDepartmentRepository(testDB.DB))
		ctx := testingutil.CreateTestContext()

		t.Run("GetStore", func(t *testing.T) {
			store, err := flow.GetStore(ctx, 1)
			require.NoError(t, err)
			assert.Equal(t, `Супермаркет "Восток"`, store.Name)
			require.NotNil(t, store.Class)
			assert.Equal(t, "Стандарт", store.Class.Name)
			require.NotNil(t, store.Director)
			assert.Equal(t, "Иван Петров", store.Director.FullName)
			assert.Len(t, store.Departments, 3)
		})

		t.Run("GetStoreNotFound", func(t *testing.T) {
			_, err := flow.GetStore(ctx, 999)
			require.Error(t, err)
			assert.True(t, businessflow.IsStoreNotFound(err))
		})

		t.Run("ListDepartments", func(t *testing.T) {
			departments, err := flow.ListDepartments(ctx, 1)
			require.NoError(t, err)
			require.Len(t, departments, 3)
			names := make([]string, len(departments))
			for i, d := range departments {
				names[i] = d.Name
				assert.NotNil(t, d.Manager)
			}
			assert.ElementsMatch(t, []string{"Молочный отдел", "Напитки", "Хлебный отдел"}, names)

			_, err = flow.ListDepartments(ctx, 999)
			assert.True(t, businessflow.IsStoreNotFound(err))
		})

		t.Run("GetDepartment", func(t *testing.T) {
			department, err := flow.GetDepartment(ctx, 2)
			require.NoError(t, err)
			assert.Equal(t, "Хлебный отдел", department.Name)
			require.NotNil(t, department.Store)
			assert.Equal(t, uint(1), department.Store.ID)
			require.NotNil(t, department.Manager)
			assert.Equal(t, "Алексей Козлов", department.Manager.FullName)
			assert.Len(t, department.Products, 2)
		})

		t.Run("GetDepartmentNotFound", func(t *testing.T) {
			_, err := flow.GetDepartment(ctx, 999)
			require.Error(t, err)
			assert.True(t, businessflow.IsDepartmentNotFound(err))
		})
	})
}
