package models

// AllModels returns all model structs for auto-migration
// IMPORTANT: Order matters! Parent tables must be created before child tables
func AllModels() []interface{} {
	return []interface{}{
		// 1. Independent tables (no foreign keys)
		&Employee{},
		&Part{},
		&Service{},

		// 2. Tables referencing the above
		&Order{},         // depends on: Employee
		&SalaryPayment{}, // depends on: Employee
		&Expense{},

		// 3. Detail tables
		&LineItem{},         // depends on: Order, Part, Service
		&StockReservation{}, // depends on: Part
	}
}
