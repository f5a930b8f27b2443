package fixtures

import (
	"github.com/amirphl/retail-inventory/models"
	"github.com/shopspring/decimal"
)

const (
	PremiumClassName = "Элитный"
	BudgetClassName  = "Эконом"
)

// curatedStoreClasses is shared by the seed and the generator
var curatedStoreClasses = []models.StoreClass{
	{Name: PremiumClassName, Description: "Магазины премиум-класса с широким ассортиментом"},
	{Name: "Стандарт", Description: "Магазины среднего ценового сегмента"},
	{Name: BudgetClassName, Description: "Бюджетные магазины"},
	{Name: "Специализированный", Description: "Магазины узкой направленности"},
	{Name: "Гипермаркет", Description: "Крупные торговые центры"},
}

// Seed returns the fixed demonstration dataset
func Seed() *Dataset {
	d := &Dataset{
		StoreClasses: append([]models.StoreClass(nil), curatedStoreClasses...),
		TradingBases: []models.TradingBase{
			{Name: `Центральная база "Северная"`, Description: "Крупнейший распределительный центр в северном регионе"},
			{Name: "Южный распределительный центр", Description: "Современный логистический комплекс южного направления"},
			{Name: "Западный складской комплекс", Description: "Складские помещения с системой климат-контроля"},
			{Name: "Восточная база снабжения", Description: "База снабжения для розничных сетей восточного региона"},
			{Name: "Центральный логистический центр", Description: "Основной хаб для федеральных сетей"},
		},
		Employees: []models.Employee{
			{FirstName: "Иван", LastName: "Петров"},
			{FirstName: "Мария", LastName: "Сидорова"},
			{FirstName: "Алексей", LastName: "Козлов"},
			{FirstName: "Ольга", LastName: "Николаева"},
			{FirstName: "Сергей", LastName: "Васильев"},
			{FirstName: "Елена", LastName: "Федорова"},
			{FirstName: "Дмитрий", LastName: "Орлов"},
			{FirstName: "Анна", LastName: "Морозова"},
			{FirstName: "Павел", LastName: "Семенов"},
			{FirstName: "Ирина", LastName: "Волкова"},
		},
		Stores: []StoreRow{
			{Name: `Супермаркет "Восток"`, Description: "Крупный супермаркет в центре города", ClassRef: 2, DirectorRef: 1},
			{Name: `Гипермаркет "Мега"`, Description: "Торговый центр с полным ассортиментом", ClassRef: 5, DirectorRef: 4},
			{Name: `Магазин "Эконом"`, Description: "Бюджетный магазин для ежедневных покупок", ClassRef: 3, DirectorRef: 6},
			{Name: `Премиум маркет "Люкс"`, Description: "Магазин премиум-класса", ClassRef: 1, DirectorRef: 9},
			{Name: `Спецмагазин "Техника"`, Description: "Специализированный магазин электроники", ClassRef: 4, DirectorRef: 4},
		},
		Departments: []DepartmentRow{
			{Name: "Молочный отдел", StoreRef: 1, ManagerRef: 2},
			{Name: "Хлебный отдел", StoreRef: 1, ManagerRef: 3},
			{Name: "Овощной отдел", StoreRef: 2, ManagerRef: 5},
			{Name: "Мясной отдел", StoreRef: 2, ManagerRef: 7},
			{Name: "Бакалея", StoreRef: 3, ManagerRef: 8},
			{Name: "Гастрономия", StoreRef: 4, ManagerRef: 10},
			{Name: "Кондитерский отдел", StoreRef: 4, ManagerRef: 2},
			{Name: "Бытовая техника", StoreRef: 5, ManagerRef: 3},
			{Name: "Электроника", StoreRef: 5, ManagerRef: 5},
			{Name: "Напитки", StoreRef: 1, ManagerRef: 7},
		},
		Products: []models.Product{
			{Name: "Молоко 2,5%", Sort: "Пастеризованное"},
			{Name: "Хлеб Бородинский", Sort: "Ржаной"},
			{Name: "Картофель", Sort: "Отборный"},
			{Name: "Курица охлажденная", Sort: "Бройлер"},
			{Name: "Рис круглый", Sort: "Высший сорт"},
			{Name: "Кофе молотый", Sort: "Арабика"},
			{Name: "Шоколад горький", Sort: "Премиум"},
			{Name: "Чай черный", Sort: "Цейлон"},
			{Name: "Сок яблочный", Sort: "Осветленный"},
			{Name: "Телевизор LED", Sort: "Smart TV"},
			{Name: "Смартфон", Sort: "Флагман"},
			{Name: "Йогурт натуральный", Sort: "Без добавок"},
			{Name: "Сыр Российский", Sort: "Полутвердый"},
			{Name: "Колбаса докторская", Sort: "Вареная"},
			{Name: "Печенье овсяное", Sort: "С шоколадом"},
		},
	}

	for _, r := range [][3]int{
		{1, 1, 0}, {1, 12, 30}, {1, 13, 25},
		{2, 2, 40}, {2, 15, 45},
		{3, 3, 100}, {3, 5, 60},
		{4, 4, 35}, {4, 14, 28},
		{5, 5, 55}, {5, 6, 20}, {5, 7, 35},
		{6, 7, 15}, {6, 8, 25}, {6, 13, 18},
		{7, 7, 30}, {7, 15, 40},
		{8, 10, 8}, {9, 11, 12},
		{10, 1, 25}, {10, 9, 35},
	} {
		d.DepartmentProducts = append(d.DepartmentProducts, StockRow{DepartmentRef: r[0], ProductRef: r[1], Count: r[2]})
	}

	for _, r := range []struct {
		base, article, count int
		price                string
	}{
		{1, 1, 200, "85.50"}, {1, 2, 150, "45.00"}, {1, 3, 500, "35.00"},
		{2, 4, 180, "320.00"}, {2, 5, 300, "95.00"}, {2, 6, 120, "450.00"},
		{3, 7, 90, "180.00"}, {3, 8, 200, "120.00"}, {3, 9, 150, "110.00"},
		{4, 10, 25, "25000.00"}, {4, 11, 40, "45000.00"},
		{5, 12, 100, "65.00"}, {5, 13, 80, "580.00"}, {5, 14, 60, "420.00"},
		{1, 15, 120, "85.00"}, {2, 1, 180, "82.00"},
	} {
		d.WarehouseProducts = append(d.WarehouseProducts, WarehouseRow{
			BaseRef:    r.base,
			ProductRef: r.article,
			Count:      r.count,
			Price:      decimal.RequireFromString(r.price),
		})
	}

	for _, r := range []struct {
		class, article int
		price          string
	}{
		{1, 1, "120.00"}, {1, 2, "65.00"}, {1, 3, "50.00"},
		{2, 1, "95.00"}, {2, 2, "48.00"}, {2, 3, "38.00"},
		{3, 1, "80.00"}, {3, 2, "40.00"}, {3, 3, "30.00"},
		{1, 7, "250.00"}, {2, 7, "200.00"}, {3, 7, "150.00"},
		{4, 10, "28000.00"}, {5, 10, "27000.00"},
	} {
		d.ProductPrices = append(d.ProductPrices, PriceRow{
			ClassRef:   r.class,
			ProductRef: r.article,
			Price:      decimal.RequireFromString(r.price),
		})
	}

	// article, store, base, priority
	for _, r := range [][4]int{
		{1, 1, 1, 1}, {1, 2, 1, 2}, {1, 3, 1, 1},
		{2, 1, 1, 2}, {2, 2, 1, 3}, {2, 3, 1, 2},
		{3, 1, 1, 1}, {3, 2, 1, 1}, {3, 3, 1, 1},
		{10, 4, 4, 1}, {10, 5, 4, 1}, {11, 5, 4, 1},
		{7, 4, 3, 2}, {7, 1, 3, 3},
		{1, 1, 2, 2}, {2, 1, 2, 3},
	} {
		d.WarehousePriorities = append(d.WarehousePriorities, PriorityRow{
			ProductRef: r[0],
			StoreRef:   r[1],
			BaseRef:    r[2],
			Priority:   r[3],
		})
	}

	return d
}
