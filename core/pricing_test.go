package core

import (
	"errors"
	"sync"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/TheMistaKrips/autobatya-fullstack/models"
)

func TestAddLineItemPartReservesStockAndUpdatesTotal(t *testing.T) {
	f := newFixture(t)
	employee := f.mustCreateEmployee(t, "Ivan Petrov", 50000)
	part := f.mustCreatePart(t, "Oil filter", 500, 10)
	order := f.mustCreateOrder(t, employee.EmployeeID)

	item, err := f.engine.AddLineItem(order.OrderID, models.ItemKindPart, part.PartID, 3)
	if err != nil {
		t.Fatalf("AddLineItem failed: %v", err)
	}
	if !item.UnitPrice.Equal(money(500)) {
		t.Errorf("unit price = %s, want 500", item.UnitPrice)
	}
	if item.ReservationToken == nil {
		t.Error("part-kind item has no reservation token")
	}
	if got := f.partQuantity(t, part.PartID); got != 7 {
		t.Errorf("quantity after add = %d, want 7", got)
	}
	if total := f.orderTotalPrice(t, order.OrderID); !total.Equal(money(1500)) {
		t.Errorf("order total = %s, want 1500", total)
	}
}

func TestAddLineItemServiceTakesNoStock(t *testing.T) {
	f := newFixture(t)
	employee := f.mustCreateEmployee(t, "Ivan Petrov", 50000)
	service := f.mustCreateService(t, "Wheel alignment", 2000)
	order := f.mustCreateOrder(t, employee.EmployeeID)

	item, err := f.engine.AddLineItem(order.OrderID, models.ItemKindService, service.ServiceID, 1)
	if err != nil {
		t.Fatalf("AddLineItem failed: %v", err)
	}
	if item.ReservationToken != nil {
		t.Error("service-kind item unexpectedly holds a reservation token")
	}
	if total := f.orderTotalPrice(t, order.OrderID); !total.Equal(money(2000)) {
		t.Errorf("order total = %s, want 2000", total)
	}
}

func TestAddLineItemInsufficientStockLeavesNothingBehind(t *testing.T) {
	f := newFixture(t)
	employee := f.mustCreateEmployee(t, "Ivan Petrov", 50000)
	part := f.mustCreatePart(t, "Brake disc", 3000, 2)
	order := f.mustCreateOrder(t, employee.EmployeeID)

	_, err := f.engine.AddLineItem(order.OrderID, models.ItemKindPart, part.PartID, 5)
	var stockErr *StockError
	if !errors.As(err, &stockErr) {
		t.Fatalf("AddLineItem error = %v, want StockError", err)
	}

	items, err := f.orders.ListLineItems(order.OrderID)
	if err != nil {
		t.Fatalf("ListLineItems failed: %v", err)
	}
	if len(items) != 0 {
		t.Errorf("line items after failed add = %d, want 0", len(items))
	}
	if got := f.partQuantity(t, part.PartID); got != 2 {
		t.Errorf("quantity after failed add = %d, want 2", got)
	}
	if total := f.orderTotalPrice(t, order.OrderID); !total.IsZero() {
		t.Errorf("order total after failed add = %s, want 0", total)
	}
}

func TestPriceSnapshotImmuneToCatalogEdits(t *testing.T) {
	f := newFixture(t)
	employee := f.mustCreateEmployee(t, "Ivan Petrov", 50000)
	part := f.mustCreatePart(t, "Battery", 7000, 5)
	order := f.mustCreateOrder(t, employee.EmployeeID)

	item, err := f.engine.AddLineItem(order.OrderID, models.ItemKindPart, part.PartID, 1)
	if err != nil {
		t.Fatalf("AddLineItem failed: %v", err)
	}

	upd := &models.Part{Name: part.Name, Price: money(9000), Quantity: part.Quantity}
	if _, err := f.catalog.UpdatePart(part.PartID, upd); err != nil {
		t.Fatalf("UpdatePart failed: %v", err)
	}

	reloaded, err := f.engine.GetLineItem(item.LineItemID)
	if err != nil {
		t.Fatalf("GetLineItem failed: %v", err)
	}
	if !reloaded.UnitPrice.Equal(money(7000)) {
		t.Errorf("snapshotted unit price = %s, want 7000", reloaded.UnitPrice)
	}
	if total := f.orderTotalPrice(t, order.OrderID); !total.Equal(money(7000)) {
		t.Errorf("order total after catalog edit = %s, want 7000", total)
	}
}

func TestKindFromRefs(t *testing.T) {
	partID := uint(1)
	serviceID := uint(2)

	tests := []struct {
		name      string
		partID    *uint
		serviceID *uint
		wantKind  models.ItemKind
		wantErr   bool
	}{
		{"part only", &partID, nil, models.ItemKindPart, false},
		{"service only", nil, &serviceID, models.ItemKindService, false},
		{"both set", &partID, &serviceID, "", true},
		{"neither set", nil, nil, "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kind, _, err := KindFromRefs(tt.partID, tt.serviceID)
			if tt.wantErr {
				var validation *ValidationError
				if !errors.As(err, &validation) {
					t.Fatalf("error = %v, want ValidationError", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if kind != tt.wantKind {
				t.Errorf("kind = %s, want %s", kind, tt.wantKind)
			}
		})
	}
}

func TestUpdateLineItemQuantitySwapsReservation(t *testing.T) {
	f := newFixture(t)
	employee := f.mustCreateEmployee(t, "Ivan Petrov", 50000)
	part := f.mustCreatePart(t, "Shock absorber", 4000, 10)
	order := f.mustCreateOrder(t, employee.EmployeeID)

	item, err := f.engine.AddLineItem(order.OrderID, models.ItemKindPart, part.PartID, 2)
	if err != nil {
		t.Fatalf("AddLineItem failed: %v", err)
	}

	updated, err := f.engine.UpdateLineItemQuantity(item.LineItemID, 5)
	if err != nil {
		t.Fatalf("UpdateLineItemQuantity failed: %v", err)
	}
	if updated.Quantity != 5 {
		t.Errorf("quantity = %d, want 5", updated.Quantity)
	}
	if !updated.UnitPrice.Equal(money(4000)) {
		t.Errorf("unit price changed on quantity update: %s", updated.UnitPrice)
	}
	if got := f.partQuantity(t, part.PartID); got != 5 {
		t.Errorf("stock after quantity update = %d, want 5", got)
	}
	if total := f.orderTotalPrice(t, order.OrderID); !total.Equal(money(20000)) {
		t.Errorf("order total = %s, want 20000", total)
	}
}

func TestUpdateLineItemQuantityInsufficientStockRollsBack(t *testing.T) {
	f := newFixture(t)
	employee := f.mustCreateEmployee(t, "Ivan Petrov", 50000)
	part := f.mustCreatePart(t, "Clutch kit", 9000, 4)
	order := f.mustCreateOrder(t, employee.EmployeeID)

	item, err := f.engine.AddLineItem(order.OrderID, models.ItemKindPart, part.PartID, 3)
	if err != nil {
		t.Fatalf("AddLineItem failed: %v", err)
	}

	// 3 reserved + 1 on hand; asking for 10 must fail and keep the old
	// reservation intact.
	_, err = f.engine.UpdateLineItemQuantity(item.LineItemID, 10)
	var stockErr *StockError
	if !errors.As(err, &stockErr) {
		t.Fatalf("UpdateLineItemQuantity error = %v, want StockError", err)
	}

	reloaded, err := f.engine.GetLineItem(item.LineItemID)
	if err != nil {
		t.Fatalf("GetLineItem failed: %v", err)
	}
	if reloaded.Quantity != 3 {
		t.Errorf("quantity after failed update = %d, want 3", reloaded.Quantity)
	}
	if got := f.partQuantity(t, part.PartID); got != 1 {
		t.Errorf("stock after failed update = %d, want 1", got)
	}
	if total := f.orderTotalPrice(t, order.OrderID); !total.Equal(money(27000)) {
		t.Errorf("order total after failed update = %s, want 27000", total)
	}
}

func TestRemoveLineItemReleasesStock(t *testing.T) {
	f := newFixture(t)
	employee := f.mustCreateEmployee(t, "Ivan Petrov", 50000)
	part := f.mustCreatePart(t, "Fuel pump", 6000, 8)
	service := f.mustCreateService(t, "Diagnostics", 1500)
	order := f.mustCreateOrder(t, employee.EmployeeID)

	partItem, err := f.engine.AddLineItem(order.OrderID, models.ItemKindPart, part.PartID, 2)
	if err != nil {
		t.Fatalf("AddLineItem(part) failed: %v", err)
	}
	if _, err := f.engine.AddLineItem(order.OrderID, models.ItemKindService, service.ServiceID, 1); err != nil {
		t.Fatalf("AddLineItem(service) failed: %v", err)
	}

	if err := f.engine.RemoveLineItem(partItem.LineItemID); err != nil {
		t.Fatalf("RemoveLineItem failed: %v", err)
	}
	if got := f.partQuantity(t, part.PartID); got != 8 {
		t.Errorf("stock after remove = %d, want 8", got)
	}
	if total := f.orderTotalPrice(t, order.OrderID); !total.Equal(money(1500)) {
		t.Errorf("order total after remove = %s, want 1500", total)
	}
}

func TestRecalcOrderTotalMatchesLineItems(t *testing.T) {
	f := newFixture(t)
	employee := f.mustCreateEmployee(t, "Ivan Petrov", 50000)
	part := f.mustCreatePart(t, "Alternator", 8000, 5)
	service := f.mustCreateService(t, "Engine wash", 1000)
	order := f.mustCreateOrder(t, employee.EmployeeID)

	if _, err := f.engine.AddLineItem(order.OrderID, models.ItemKindPart, part.PartID, 2); err != nil {
		t.Fatalf("AddLineItem failed: %v", err)
	}
	if _, err := f.engine.AddLineItem(order.OrderID, models.ItemKindService, service.ServiceID, 3); err != nil {
		t.Fatalf("AddLineItem failed: %v", err)
	}

	total, err := f.engine.RecalcOrderTotal(order.OrderID)
	if err != nil {
		t.Fatalf("RecalcOrderTotal failed: %v", err)
	}
	if !total.Equal(money(19000)) {
		t.Errorf("recalculated total = %s, want 19000", total)
	}
	if stored := f.orderTotalPrice(t, order.OrderID); !stored.Equal(total) {
		t.Errorf("stored total %s != recalculated %s", stored, total)
	}
}

func TestOrderTotalExactWithFractionalPrices(t *testing.T) {
	f := newFixture(t)
	employee := f.mustCreateEmployee(t, "Ivan Petrov", 50000)
	order := f.mustCreateOrder(t, employee.EmployeeID)

	// 0.10 * 3 is the classic float trap; the total is summed on decimals
	// in Go, so it must come out as exactly 0.30 plus the 649.90 part.
	cheap := &models.Part{Name: "Washer", Price: decimal.NewFromFloat(0.10), Quantity: 50}
	if err := f.catalog.CreatePart(cheap); err != nil {
		t.Fatalf("CreatePart failed: %v", err)
	}
	filter := &models.Part{Name: "Oil filter", Price: decimal.NewFromFloat(649.90), Quantity: 10}
	if err := f.catalog.CreatePart(filter); err != nil {
		t.Fatalf("CreatePart failed: %v", err)
	}

	if _, err := f.engine.AddLineItem(order.OrderID, models.ItemKindPart, cheap.PartID, 3); err != nil {
		t.Fatalf("AddLineItem failed: %v", err)
	}
	if _, err := f.engine.AddLineItem(order.OrderID, models.ItemKindPart, filter.PartID, 1); err != nil {
		t.Fatalf("AddLineItem failed: %v", err)
	}

	want := decimal.NewFromFloat(650.20)
	if total := f.orderTotalPrice(t, order.OrderID); !total.Equal(want) {
		t.Errorf("order total = %s, want %s", total, want)
	}

	total, err := f.engine.RecalcOrderTotal(order.OrderID)
	if err != nil {
		t.Fatalf("RecalcOrderTotal failed: %v", err)
	}
	if !total.Equal(want) {
		t.Errorf("recalculated total = %s, want %s", total, want)
	}
}

func TestUpdateLineItemQuantityToleratesMissingToken(t *testing.T) {
	f := newFixture(t)
	employee := f.mustCreateEmployee(t, "Ivan Petrov", 50000)
	part := f.mustCreatePart(t, "Fuel injector", 4500, 10)
	order := f.mustCreateOrder(t, employee.EmployeeID)

	item, err := f.engine.AddLineItem(order.OrderID, models.ItemKindPart, part.PartID, 3)
	if err != nil {
		t.Fatalf("AddLineItem failed: %v", err)
	}

	// A part-kind row without a token should never exist, but if one does
	// the update must reserve fresh stock instead of panicking.
	if err := f.db.Model(&models.LineItem{}).
		Where("line_item_id = ?", item.LineItemID).
		UpdateColumn("reservation_token", nil).Error; err != nil {
		t.Fatalf("failed to null token: %v", err)
	}

	updated, err := f.engine.UpdateLineItemQuantity(item.LineItemID, 1)
	if err != nil {
		t.Fatalf("UpdateLineItemQuantity failed: %v", err)
	}
	if updated.Quantity != 1 {
		t.Errorf("quantity = %d, want 1", updated.Quantity)
	}
	if updated.ReservationToken == nil {
		t.Error("updated item has no reservation token")
	}
}

func TestConcurrentReservationsNeverOversell(t *testing.T) {
	f := newFixture(t)
	employee := f.mustCreateEmployee(t, "Ivan Petrov", 50000)
	part := f.mustCreatePart(t, "Turbocharger", 25000, 3)
	first := f.mustCreateOrder(t, employee.EmployeeID)
	second := f.mustCreateOrder(t, employee.EmployeeID)

	// Two orders race for the same part: 2+2 requested, 3 on hand. Exactly
	// one reservation can win.
	errs := make([]error, 2)
	var wg sync.WaitGroup
	for i, orderID := range []uint{first.OrderID, second.OrderID} {
		wg.Add(1)
		go func(i int, orderID uint) {
			defer wg.Done()
			_, errs[i] = f.engine.AddLineItem(orderID, models.ItemKindPart, part.PartID, 2)
		}(i, orderID)
	}
	wg.Wait()

	var won, lost int
	for _, err := range errs {
		switch {
		case err == nil:
			won++
		default:
			var stockErr *StockError
			if !errors.As(err, &stockErr) {
				t.Fatalf("unexpected error: %v", err)
			}
			lost++
		}
	}
	if won != 1 || lost != 1 {
		t.Fatalf("winners = %d, losers = %d, want exactly one of each", won, lost)
	}
	if got := f.partQuantity(t, part.PartID); got != 1 {
		t.Errorf("quantity after race = %d, want 1", got)
	}
}

func TestCheckPartAvailability(t *testing.T) {
	f := newFixture(t)
	part := f.mustCreatePart(t, "Headlight", 3500, 4)

	ok, available, err := f.engine.CheckPartAvailability(part.PartID, 4)
	if err != nil {
		t.Fatalf("CheckPartAvailability failed: %v", err)
	}
	if !ok || available != 4 {
		t.Errorf("CheckPartAvailability(4) = %v/%d, want true/4", ok, available)
	}

	ok, _, err = f.engine.CheckPartAvailability(part.PartID, 5)
	if err != nil {
		t.Fatalf("CheckPartAvailability failed: %v", err)
	}
	if ok {
		t.Error("CheckPartAvailability(5) = true, want false")
	}

	_, _, err = f.engine.CheckPartAvailability(9999, 1)
	var notFound *NotFoundError
	if !errors.As(err, &notFound) {
		t.Errorf("CheckPartAvailability(unknown) error = %v, want NotFoundError", err)
	}
}
