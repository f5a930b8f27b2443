package fixtures

import (
	"testing"

	"github.com/amirphl/retail-inventory/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerate(t *testing.T) {
	t.Run("RejectsInvalidRecordCount", func(t *testing.T) {
		_, err := Generate(GenerateOptions{Records: 0})
		assert.ErrorIs(t, err, ErrInvalidRecordCount)

		_, err = Generate(GenerateOptions{Records: MaxRecords + 1})
		assert.ErrorIs(t, err, ErrInvalidRecordCount)
	})

	t.Run("ScalesParentTables", func(t *testing.T) {
		d, err := Generate(GenerateOptions{Records: 20, Seed: 7})
		require.NoError(t, err)
		require.NoError(t, d.Validate())

		counts := d.Counts()
		assert.Equal(t, 20, counts[models.TableStoreClass])
		assert.Equal(t, 20, counts[models.TableTradingBase])
		assert.Equal(t, 40, counts[models.TableEmployee])
		assert.Equal(t, 20, counts[models.TableStore])
		assert.Equal(t, 40, counts[models.TableDepartment])
		assert.Equal(t, 20, counts[models.TableProduct])
		assert.Equal(t, 20*20, counts[models.TableProductPrice])
		assert.LessOrEqual(t, counts[models.TableDepartmentProduct], 100)
		assert.LessOrEqual(t, counts[models.TableWarehouseProduct], 40)
		assert.LessOrEqual(t, counts[models.TableWarehousePriority], 40)
	})

	t.Run("CuratedClassesComeFirst", func(t *testing.T) {
		d, err := Generate(GenerateOptions{Records: 3, Seed: 1})
		require.NoError(t, err)
		require.Len(t, d.StoreClasses, 3)
		assert.Equal(t, PremiumClassName, d.StoreClasses[0].Name)
		assert.Equal(t, "Стандарт", d.StoreClasses[1].Name)
		assert.Equal(t, BudgetClassName, d.StoreClasses[2].Name)
	})

	t.Run("EveryStoreHasADepartment", func(t *testing.T) {
		d, err := Generate(GenerateOptions{Records: 15, Seed: 3})
		require.NoError(t, err)
		stores := map[int]bool{}
		for _, dep := range d.Departments {
			stores[dep.StoreRef] = true
		}
		for s := 1; s <= len(d.Stores); s++ {
			assert.True(t, stores[s], "store %d has no department", s)
		}
	})

	t.Run("SameSeedSameDataset", func(t *testing.T) {
		a, err := Generate(GenerateOptions{Records: 10, Seed: 42})
		require.NoError(t, err)
		b, err := Generate(GenerateOptions{Records: 10, Seed: 42})
		require.NoError(t, err)
		assert.Equal(t, a.Counts(), b.Counts())
		assert.Equal(t, a.Products, b.Products)
		assert.Equal(t, a.DepartmentProducts, b.DepartmentProducts)
	})

	t.Run("NoDuplicateKeysAtScale", func(t *testing.T) {
		// small product and base pools force collisions among candidates
		d, err := Generate(GenerateOptions{Records: 2, Seed: 9})
		require.NoError(t, err)
		assert.NoError(t, d.Validate())
	})

	t.Run("ValuesInRange", func(t *testing.T) {
		d, err := Generate(GenerateOptions{Records: 30, Seed: 11})
		require.NoError(t, err)
		for _, r := range d.DepartmentProducts {
			assert.GreaterOrEqual(t, r.Count, 0)
			assert.LessOrEqual(t, r.Count, 100)
		}
		lo, hi := decimal.RequireFromString("0.50"), decimal.RequireFromString("500.00")
		for _, r := range d.WarehouseProducts {
			assert.GreaterOrEqual(t, r.Count, 10)
			assert.LessOrEqual(t, r.Count, 500)
			assert.True(t, r.Price.GreaterThanOrEqual(lo) && r.Price.LessThanOrEqual(hi), r.Price.String())
		}
		for _, r := range d.WarehousePriorities {
			assert.GreaterOrEqual(t, r.Priority, 1)
			assert.LessOrEqual(t, r.Priority, 10)
		}
	})
}

func TestClassPrice(t *testing.T) {
	base := decimal.RequireFromString("10.00")

	assert.Equal(t, "13", ClassPrice(PremiumClassName, base).String())
	assert.Equal(t, "8", ClassPrice(BudgetClassName, base).String())
	assert.True(t, ClassPrice("Стандарт", base).Equal(base))

	odd := decimal.RequireFromString("33.33")
	assert.Equal(t, "43.33", ClassPrice(PremiumClassName, odd).String())
	assert.Equal(t, "26.66", ClassPrice(BudgetClassName, odd).String())
}
