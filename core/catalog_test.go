package core

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/TheMistaKrips/autobatya-fullstack/models"
)

func TestCreatePartValidation(t *testing.T) {
	f := newFixture(t)

	tests := []struct {
		name string
		part models.Part
	}{
		{"empty name", models.Part{Name: "", Price: money(100), Quantity: 1}},
		{"negative price", models.Part{Name: "Gasket", Price: money(-1), Quantity: 1}},
		{"negative quantity", models.Part{Name: "Gasket", Price: money(100), Quantity: -1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := f.catalog.CreatePart(&tt.part)
			var validation *ValidationError
			if !errors.As(err, &validation) {
				t.Errorf("CreatePart error = %v, want ValidationError", err)
			}
		})
	}
}

func TestCreateServiceValidation(t *testing.T) {
	f := newFixture(t)

	tests := []struct {
		name    string
		service models.Service
	}{
		{"empty name", models.Service{Name: "", Price: money(100), DurationHours: 1}},
		{"negative price", models.Service{Name: "Polishing", Price: money(-1), DurationHours: 1}},
		{"zero duration", models.Service{Name: "Polishing", Price: money(100), DurationHours: 0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := f.catalog.CreateService(&tt.service)
			var validation *ValidationError
			if !errors.As(err, &validation) {
				t.Errorf("CreateService error = %v, want ValidationError", err)
			}
		})
	}
}

func TestUpdatePartDoesNotTouchQuantity(t *testing.T) {
	f := newFixture(t)
	part := f.mustCreatePart(t, "Oil filter", 500, 10)

	supplier := "Bosch"
	upd := &models.Part{
		Name:     "Oil filter premium",
		Price:    decimal.NewFromFloat(649.90),
		Quantity: 999,
		Supplier: &supplier,
	}
	updated, err := f.catalog.UpdatePart(part.PartID, upd)
	if err != nil {
		t.Fatalf("UpdatePart failed: %v", err)
	}
	if updated.Name != "Oil filter premium" {
		t.Errorf("name = %q, want %q", updated.Name, "Oil filter premium")
	}
	if !updated.Price.Equal(decimal.NewFromFloat(649.90)) {
		t.Errorf("price = %s, want 649.90", updated.Price)
	}
	// Stock is owned by the ledger and Restock, not by catalog edits.
	if got := f.partQuantity(t, part.PartID); got != 10 {
		t.Errorf("quantity after update = %d, want 10", got)
	}
}

func TestRestock(t *testing.T) {
	f := newFixture(t)
	part := f.mustCreatePart(t, "Brake pads", 1200, 3)

	restocked, err := f.catalog.Restock(part.PartID, 7)
	if err != nil {
		t.Fatalf("Restock failed: %v", err)
	}
	if restocked.Quantity != 10 {
		t.Errorf("returned quantity = %d, want 10", restocked.Quantity)
	}
	if got := f.partQuantity(t, part.PartID); got != 10 {
		t.Errorf("stored quantity = %d, want 10", got)
	}

	if _, err := f.catalog.Restock(part.PartID, 0); err == nil {
		t.Error("Restock(0) succeeded, want ValidationError")
	}
	_, err = f.catalog.Restock(9999, 5)
	var notFound *NotFoundError
	if !errors.As(err, &notFound) {
		t.Errorf("Restock(unknown) error = %v, want NotFoundError", err)
	}
}

func TestDeletePartWithActiveReservation(t *testing.T) {
	f := newFixture(t)
	employee := f.mustCreateEmployee(t, "Ivan Petrov", 50000)
	part := f.mustCreatePart(t, "Alternator", 8000, 5)
	order := f.mustCreateOrder(t, employee.EmployeeID)

	if _, err := f.engine.AddLineItem(order.OrderID, models.ItemKindPart, part.PartID, 1); err != nil {
		t.Fatalf("AddLineItem failed: %v", err)
	}

	err := f.catalog.DeletePart(part.PartID)
	var conflict *ConflictError
	if !errors.As(err, &conflict) {
		t.Fatalf("DeletePart with active reservation error = %v, want ConflictError", err)
	}

	// Once the order is cancelled the reservation is released and the part
	// can go.
	if err := f.orders.Cancel(order.OrderID); err != nil {
		t.Fatalf("Cancel failed: %v", err)
	}
	if err := f.catalog.DeletePart(part.PartID); err != nil {
		t.Fatalf("DeletePart after cancel failed: %v", err)
	}
	_, err = f.catalog.GetPart(part.PartID)
	var notFound *NotFoundError
	if !errors.As(err, &notFound) {
		t.Errorf("GetPart after delete error = %v, want NotFoundError", err)
	}
}

func TestServiceCRUD(t *testing.T) {
	f := newFixture(t)
	service := f.mustCreateService(t, "Wheel alignment", 2000)

	upd := &models.Service{Name: "3D wheel alignment", Price: money(2500), DurationHours: 1.5}
	updated, err := f.catalog.UpdateService(service.ServiceID, upd)
	if err != nil {
		t.Fatalf("UpdateService failed: %v", err)
	}
	if updated.Name != "3D wheel alignment" || !updated.Price.Equal(money(2500)) {
		t.Errorf("update not applied: %+v", updated)
	}

	services, err := f.catalog.ListServices()
	if err != nil {
		t.Fatalf("ListServices failed: %v", err)
	}
	if len(services) != 1 {
		t.Errorf("ListServices returned %d services, want 1", len(services))
	}

	if err := f.catalog.DeleteService(service.ServiceID); err != nil {
		t.Fatalf("DeleteService failed: %v", err)
	}
	_, err = f.catalog.GetService(service.ServiceID)
	var notFound *NotFoundError
	if !errors.As(err, &notFound) {
		t.Errorf("GetService after delete error = %v, want NotFoundError", err)
	}
}

func TestEmployeeCRUD(t *testing.T) {
	f := newFixture(t)
	store := NewEmployeeStore(f.db)

	err := store.Create(&models.Employee{Name: "", Position: "Mechanic", Salary: money(1), HireDate: testDate(2022, 1, 1)})
	var validation *ValidationError
	if !errors.As(err, &validation) {
		t.Errorf("Create with empty name error = %v, want ValidationError", err)
	}

	employee := f.mustCreateEmployee(t, "Ivan Petrov", 50000)
	upd := &models.Employee{
		Name:     "Ivan Petrov",
		Position: "Senior Mechanic",
		Salary:   money(65000),
		HireDate: employee.HireDate,
		Phone:    employee.Phone,
	}
	updated, err := store.Update(employee.EmployeeID, upd)
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if updated.Position != "Senior Mechanic" || !updated.Salary.Equal(money(65000)) {
		t.Errorf("update not applied: %+v", updated)
	}

	if err := store.Delete(employee.EmployeeID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	_, err = store.Get(employee.EmployeeID)
	var notFound *NotFoundError
	if !errors.As(err, &notFound) {
		t.Errorf("Get after delete error = %v, want NotFoundError", err)
	}
}
