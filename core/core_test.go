package core

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/TheMistaKrips/autobatya-fullstack/models"
)

// fixture wires every core service over one in-memory database, the same
// way the web layer does in production.
type fixture struct {
	db      *gorm.DB
	catalog *CatalogStore
	ledger  *StockLedger
	orders  *OrderStore
	engine  *PricingEngine
	finance *FinancialAggregator
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get sql.DB: %v", err)
	}
	// One connection keeps concurrent transactions queued instead of
	// tripping over sqlite's write locking.
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	if err := db.AutoMigrate(models.AllModels()...); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	ledger := NewStockLedger()
	catalog := NewCatalogStore(db)
	return &fixture{
		db:      db,
		catalog: catalog,
		ledger:  ledger,
		orders:  NewOrderStore(db, ledger),
		engine:  NewPricingEngine(db, catalog, ledger),
		finance: NewFinancialAggregator(db),
	}
}

func money(v int64) decimal.Decimal {
	return decimal.NewFromInt(v)
}

func testDate(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func (f *fixture) mustCreateEmployee(t *testing.T, name string, salary int64) *models.Employee {
	t.Helper()
	employee := &models.Employee{
		Name:     name,
		Position: "Mechanic",
		Salary:   money(salary),
		HireDate: testDate(2022, time.January, 10),
		Phone:    "+7 900 000-00-00",
	}
	if err := NewEmployeeStore(f.db).Create(employee); err != nil {
		t.Fatalf("failed to create employee: %v", err)
	}
	return employee
}

func (f *fixture) mustCreatePart(t *testing.T, name string, price int64, quantity int) *models.Part {
	t.Helper()
	part := &models.Part{Name: name, Price: money(price), Quantity: quantity}
	if err := f.catalog.CreatePart(part); err != nil {
		t.Fatalf("failed to create part: %v", err)
	}
	return part
}

func (f *fixture) mustCreateService(t *testing.T, name string, price int64) *models.Service {
	t.Helper()
	service := &models.Service{Name: name, Price: money(price), DurationHours: 1}
	if err := f.catalog.CreateService(service); err != nil {
		t.Fatalf("failed to create service: %v", err)
	}
	return service
}

func (f *fixture) mustCreateOrder(t *testing.T, employeeID uint) *models.Order {
	t.Helper()
	order := &models.Order{
		ClientName: "Test Client",
		CarModel:   "Lada Vesta",
		CarNumber:  "A123BC77",
		Date:       testDate(2026, time.August, 15),
		EmployeeID: employeeID,
	}
	if err := f.orders.CreateOrder(order); err != nil {
		t.Fatalf("failed to create order: %v", err)
	}
	return order
}

func (f *fixture) partQuantity(t *testing.T, id uint) int {
	t.Helper()
	part, err := f.catalog.GetPart(id)
	if err != nil {
		t.Fatalf("failed to reload part: %v", err)
	}
	return part.Quantity
}

func (f *fixture) orderTotalPrice(t *testing.T, id uint) decimal.Decimal {
	t.Helper()
	order, err := f.orders.GetOrder(id)
	if err != nil {
		t.Fatalf("failed to reload order: %v", err)
	}
	return order.TotalPrice
}
