package fixtures

import (
	"errors"
	"fmt"

	"github.com/amirphl/retail-inventory/models"
	"github.com/brianvoe/gofakeit/v7"
	"github.com/shopspring/decimal"
)

const MaxRecords = 10000

var ErrInvalidRecordCount = errors.New("records must be between 1 and 10000")

var (
	premiumMarkup = decimal.RequireFromString("1.3")
	budgetMarkup  = decimal.RequireFromString("0.8")
)

var (
	baseSuffixes = []string{"Центр", "База", "Склад", "Комплекс", "Хаб"}
	storePrefix  = []string{"Супермаркет", "Гипермаркет", "Магазин", "Торговый центр", "Универмаг", "Маркет", "Торговая точка"}

	departmentNames = []string{
		"Молочный отдел", "Хлебный отдел", "Овощной отдел", "Мясной отдел", "Бакалея",
		"Гастрономия", "Кондитерский отдел", "Бытовая техника", "Электроника", "Напитки",
		"Фруктовый отдел", "Рыбный отдел", "Колбасный отдел", "Сыры", "Замороженные продукты",
		"Хозтовары", "Косметика", "Одежда", "Обувь", "Аксессуары",
	}

	electronicsCategory = "Электроника"
	categoryOrder       = []string{"Молочные", "Хлебные", "Овощи", "Мясо", "Бакалея", "Напитки", electronicsCategory}
	productTemplates    = map[string][]string{
		"Молочные":          {"Молоко", "Йогурт", "Сыр", "Кефир", "Творог", "Сметана"},
		"Хлебные":           {"Хлеб", "Булочка", "Батон", "Пирог", "Печенье"},
		"Овощи":             {"Картофель", "Морковь", "Лук", "Помидоры", "Огурцы"},
		"Мясо":              {"Курица", "Говядина", "Свинина", "Баранина", "Колбаса"},
		"Бакалея":           {"Рис", "Гречка", "Макароны", "Мука", "Сахар"},
		"Напитки":           {"Сок", "Вода", "Лимонад", "Чай", "Кофе"},
		electronicsCategory: {"Телевизор", "Смартфон", "Ноутбук", "Планшет", "Наушники"},
	}

	commonSorts = []string{"Премиум", "Стандарт", "Эконом"}
	foodSorts   = []string{"Высший сорт", "Первый сорт", "Отборный"}
)

// GenerateOptions controls the randomized generator
type GenerateOptions struct {
	// Records is the scale factor N
	Records int
	// Seed makes the run reproducible; zero picks a random seed
	Seed uint64
}

// Generate builds a randomized dataset scaled by opts.Records.
// Associative rows are drawn as candidates and dropped when their composite key
// was already used, so the result never violates a primary key.
func Generate(opts GenerateOptions) (*Dataset, error) {
	n := opts.Records
	if n < 1 || n > MaxRecords {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidRecordCount, n)
	}

	f := gofakeit.New(opts.Seed)
	d := &Dataset{}

	for i := 0; i < n; i++ {
		if i < len(curatedStoreClasses) {
			d.StoreClasses = append(d.StoreClasses, curatedStoreClasses[i])
			continue
		}
		d.StoreClasses = append(d.StoreClasses, models.StoreClass{
			Name:        truncate(f.Company(), 50),
			Description: f.LoremIpsumSentence(10),
		})
	}

	for i := 0; i < n; i++ {
		d.TradingBases = append(d.TradingBases, models.TradingBase{
			Name:        truncate(f.Company()+" "+f.RandomString(baseSuffixes), 100),
			Description: f.LoremIpsumSentence(15),
		})
	}

	for i := 0; i < 2*n; i++ {
		d.Employees = append(d.Employees, models.Employee{
			FirstName: truncate(f.FirstName(), 50),
			LastName:  truncate(f.LastName(), 50),
		})
	}

	for i := 0; i < n; i++ {
		d.Stores = append(d.Stores, StoreRow{
			Name:        truncate(f.RandomString(storePrefix)+" "+f.Company(), 100),
			Description: f.LoremIpsumSentence(3),
			ClassRef:    pick(f, len(d.StoreClasses)),
			DirectorRef: pick(f, len(d.Employees)),
		})
	}

	// every store gets one department, then n more land on random stores
	for s := 1; s <= len(d.Stores); s++ {
		d.Departments = append(d.Departments, randomDepartment(f, s, len(d.Employees)))
	}
	for i := 0; i < n; i++ {
		d.Departments = append(d.Departments, randomDepartment(f, pick(f, len(d.Stores)), len(d.Employees)))
	}

	for i := 0; i < n; i++ {
		category := f.RandomString(categoryOrder)
		sorts := commonSorts
		if category != electronicsCategory {
			sorts = append(append([]string(nil), commonSorts...), foodSorts...)
		}
		d.Products = append(d.Products, models.Product{
			Name: truncate(f.RandomString(productTemplates[category])+" "+f.Word(), 100),
			Sort: f.RandomString(sorts),
		})
	}

	used := map[[2]int]bool{}
	for i := 0; i < 5*n; i++ {
		key := [2]int{pick(f, len(d.Departments)), pick(f, len(d.Products))}
		if used[key] {
			continue
		}
		used[key] = true
		d.DepartmentProducts = append(d.DepartmentProducts, StockRow{
			DepartmentRef: key[0],
			ProductRef:    key[1],
			Count:         f.IntRange(0, 100),
		})
	}

	used = map[[2]int]bool{}
	for i := 0; i < 2*n; i++ {
		key := [2]int{pick(f, len(d.TradingBases)), pick(f, len(d.Products))}
		if used[key] {
			continue
		}
		used[key] = true
		d.WarehouseProducts = append(d.WarehouseProducts, WarehouseRow{
			BaseRef:    key[0],
			ProductRef: key[1],
			Count:      f.IntRange(10, 500),
			Price:      cents(f.IntRange(50, 50000)),
		})
	}

	for c, class := range d.StoreClasses {
		for p := range d.Products {
			d.ProductPrices = append(d.ProductPrices, PriceRow{
				ClassRef:   c + 1,
				ProductRef: p + 1,
				Price:      ClassPrice(class.Name, cents(f.IntRange(100, 10000))),
			})
		}
	}

	used3 := map[[3]int]bool{}
	for i := 0; i < 2*n; i++ {
		key := [3]int{pick(f, len(d.Products)), pick(f, len(d.Stores)), pick(f, len(d.TradingBases))}
		if used3[key] {
			continue
		}
		used3[key] = true
		d.WarehousePriorities = append(d.WarehousePriorities, PriorityRow{
			ProductRef: key[0],
			StoreRef:   key[1],
			BaseRef:    key[2],
			Priority:   f.IntRange(1, 10),
		})
	}

	return d, nil
}

// ClassPrice applies the tier markup for a store class to a base price.
// The premium class pays 30% more, the budget class 20% less.
func ClassPrice(className string, base decimal.Decimal) decimal.Decimal {
	switch className {
	case PremiumClassName:
		return base.Mul(premiumMarkup).Round(2)
	case BudgetClassName:
		return base.Mul(budgetMarkup).Round(2)
	default:
		return base
	}
}

func randomDepartment(f *gofakeit.Faker, storeRef, employees int) DepartmentRow {
	name := f.RandomString(departmentNames)
	if f.Bool() {
		name += " " + f.Word()
	}
	return DepartmentRow{
		Name:       truncate(name, 100),
		StoreRef:   storeRef,
		ManagerRef: pick(f, employees),
	}
}

// pick returns a 1-based position in a slice of size n
func pick(f *gofakeit.Faker, n int) int {
	return f.IntRange(1, n)
}

func cents(v int) decimal.Decimal {
	return decimal.New(int64(v), -2)
}

func truncate(s string, limit int) string {
	r := []rune(s)
	if len(r) <= limit {
		return s
	}
	return string(r[:limit])
}
