package database

import (
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/TheMistaKrips/autobatya-fullstack/core"
	"github.com/TheMistaKrips/autobatya-fullstack/models"
)

// SeedData seeds initial data into empty tables. Orders are composed
// through the pricing engine so every seeded record satisfies the same
// invariants as live data.
func SeedData(db *gorm.DB) error {
	var count int64
	db.Model(&models.Employee{}).Count(&count)
	if count > 0 {
		log.Info().Msg("database already has data, skipping seed")
		return nil
	}

	log.Info().Msg("seeding database with sample data")

	employees, err := seedEmployees(db)
	if err != nil {
		return fmt.Errorf("failed to seed employees: %w", err)
	}
	parts, err := seedParts(db)
	if err != nil {
		return fmt.Errorf("failed to seed parts: %w", err)
	}
	services, err := seedServices(db)
	if err != nil {
		return fmt.Errorf("failed to seed services: %w", err)
	}
	if err := seedPayroll(db, employees); err != nil {
		return fmt.Errorf("failed to seed payroll: %w", err)
	}
	if err := seedOrders(db, employees, parts, services); err != nil {
		return fmt.Errorf("failed to seed orders: %w", err)
	}

	log.Info().Msg("database seeded successfully")
	return nil
}

func seedEmployees(db *gorm.DB) ([]models.Employee, error) {
	email := func(s string) *string { return &s }
	employees := []models.Employee{
		{Name: "Sergey Ivanov", Position: "Master mechanic", Salary: decimal.NewFromInt(85000), HireDate: date(2021, 3, 15), Phone: "+7 900 111-22-33", Email: email("s.ivanov@autobatya.ru")},
		{Name: "Dmitry Petrov", Position: "Mechanic", Salary: decimal.NewFromInt(62000), HireDate: date(2022, 7, 1), Phone: "+7 900 222-33-44"},
		{Name: "Anna Sidorova", Position: "Service manager", Salary: decimal.NewFromInt(70000), HireDate: date(2020, 11, 9), Phone: "+7 900 333-44-55", Email: email("a.sidorova@autobatya.ru")},
	}
	store := core.NewEmployeeStore(db)
	for i := range employees {
		if err := store.Create(&employees[i]); err != nil {
			return nil, err
		}
	}
	return employees, nil
}

func seedParts(db *gorm.DB) ([]models.Part, error) {
	supplier := func(s string) *string { return &s }
	parts := []models.Part{
		{Name: "Oil filter", Price: decimal.NewFromInt(450), Quantity: 40, Supplier: supplier("AutoParts LLC")},
		{Name: "Brake pads (front)", Price: decimal.NewFromInt(2800), Quantity: 16, Supplier: supplier("BrakeMaster")},
		{Name: "Timing belt", Price: decimal.NewFromInt(3500), Quantity: 8, Supplier: supplier("AutoParts LLC")},
		{Name: "Spark plug", Price: decimal.NewFromInt(320), Quantity: 60, Supplier: supplier("IgnitionPro")},
		{Name: "Air filter", Price: decimal.NewFromInt(700), Quantity: 25, Supplier: supplier("AutoParts LLC")},
	}
	catalog := core.NewCatalogStore(db)
	for i := range parts {
		if err := catalog.CreatePart(&parts[i]); err != nil {
			return nil, err
		}
	}
	return parts, nil
}

func seedServices(db *gorm.DB) ([]models.Service, error) {
	services := []models.Service{
		{Name: "Oil change", Price: decimal.NewFromInt(1200), DurationHours: 0.5},
		{Name: "Brake pad replacement", Price: decimal.NewFromInt(2500), DurationHours: 1.5},
		{Name: "Engine diagnostics", Price: decimal.NewFromInt(1800), DurationHours: 1},
		{Name: "Wheel alignment", Price: decimal.NewFromInt(2200), DurationHours: 1},
		{Name: "Timing belt replacement", Price: decimal.NewFromInt(5500), DurationHours: 3},
	}
	catalog := core.NewCatalogStore(db)
	for i := range services {
		if err := catalog.CreateService(&services[i]); err != nil {
			return nil, err
		}
	}
	return services, nil
}

func seedPayroll(db *gorm.DB, employees []models.Employee) error {
	payroll := core.NewPayrollStore(db)
	lastMonth := time.Now().AddDate(0, -1, 0)
	for _, employee := range employees {
		payment := models.SalaryPayment{
			EmployeeID: employee.EmployeeID,
			Amount:     employee.Salary,
			Bonus:      decimal.NewFromInt(5000),
			Date:       date(lastMonth.Year(), lastMonth.Month(), 5),
		}
		if err := payroll.CreateSalaryPayment(&payment); err != nil {
			return err
		}
	}

	expenses := []models.Expense{
		{Name: "Workshop rent", Amount: decimal.NewFromInt(120000), Date: date(lastMonth.Year(), lastMonth.Month(), 1), Category: models.ExpenseRent},
		{Name: "Parts restock", Amount: decimal.NewFromInt(48000), Date: date(lastMonth.Year(), lastMonth.Month(), 12), Category: models.ExpenseParts},
		{Name: "Utilities", Amount: decimal.NewFromInt(9500), Date: date(lastMonth.Year(), lastMonth.Month(), 20), Category: models.ExpenseOther},
	}
	for i := range expenses {
		if err := payroll.CreateExpense(&expenses[i]); err != nil {
			return err
		}
	}
	return nil
}

func seedOrders(db *gorm.DB, employees []models.Employee, parts []models.Part, services []models.Service) error {
	ledger := core.NewStockLedger()
	catalog := core.NewCatalogStore(db)
	orders := core.NewOrderStore(db, ledger)
	engine := core.NewPricingEngine(db, catalog, ledger)

	completed := models.Order{
		ClientName: "Ivan Kuznetsov",
		CarModel:   "Lada Vesta",
		CarNumber:  "A123BC77",
		Date:       date(time.Now().Year(), time.Now().Month(), 2),
		EmployeeID: employees[0].EmployeeID,
	}
	if err := orders.CreateOrder(&completed); err != nil {
		return err
	}
	if _, err := engine.AddLineItem(completed.OrderID, models.ItemKindPart, parts[0].PartID, 1); err != nil {
		return err
	}
	if _, err := engine.AddLineItem(completed.OrderID, models.ItemKindService, services[0].ServiceID, 1); err != nil {
		return err
	}
	if err := orders.Complete(completed.OrderID); err != nil {
		return err
	}

	open := models.Order{
		ClientName: "Olga Smirnova",
		CarModel:   "Kia Rio",
		CarNumber:  "B456DE99",
		Date:       date(time.Now().Year(), time.Now().Month(), 10),
		EmployeeID: employees[1].EmployeeID,
	}
	if err := orders.CreateOrder(&open); err != nil {
		return err
	}
	if _, err := engine.AddLineItem(open.OrderID, models.ItemKindPart, parts[1].PartID, 2); err != nil {
		return err
	}
	if _, err := engine.AddLineItem(open.OrderID, models.ItemKindService, services[1].ServiceID, 1); err != nil {
		return err
	}
	return nil
}

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}
