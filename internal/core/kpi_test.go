package core

import "testing"

func expense(vehicleID string, cat ExpenseCategory, cents int64) Expense {
	return Expense{
		VehicleID:   vehicleID,
		Category:    cat,
		Date:        NewDate(2024, 3, 1),
		Amount:      Money{Cents: cents},
		Description: "test",
	}
}

func TestComputeKPIsEmpty(t *testing.T) {
	k := ComputeKPIs(nil, nil, DefaultDistanceFactor)
	if k.TotalCost.Cents != 0 || k.CostPerKm != 0 || k.ActiveVehicles != 0 || k.MaintenanceAlerts != 0 {
		t.Fatalf("expected zero KPIs, got %+v", k)
	}
}

func TestComputeKPIsSingleVehicleNoExpenses(t *testing.T) {
	vehicles := []Vehicle{{ID: "1", CurrentKm: 25000, Status: StatusActive}}
	k := ComputeKPIs(vehicles, nil, DefaultDistanceFactor)
	if k.TotalCost.Cents != 0 {
		t.Fatalf("expected zero total cost, got %d", k.TotalCost.Cents)
	}
	if k.CostPerKm != 0 {
		t.Fatalf("expected zero cost/km for empty expenses, got %v", k.CostPerKm)
	}
	if k.ActiveVehicles != 1 || k.MaintenanceAlerts != 0 {
		t.Fatalf("expected 1 active / 0 maintenance, got %+v", k)
	}
}

func TestComputeKPIsCounts(t *testing.T) {
	vehicles := []Vehicle{
		{ID: "1", CurrentKm: 25000, Status: StatusActive},
		{ID: "2", CurrentKm: 58000, Status: StatusActive},
		{ID: "3", CurrentKm: 320000, Status: StatusMaintenance},
		{ID: "4", CurrentKm: 1000, Status: StatusSold},
	}
	expenses := []Expense{
		expense("1", CategoryFuel, 25000),
		expense("1", CategoryMaintenance, 120000),
	}
	k := ComputeKPIs(vehicles, expenses, DefaultDistanceFactor)
	if k.TotalCost.Cents != 145000 {
		t.Fatalf("expected 145000 cents, got %d", k.TotalCost.Cents)
	}
	if k.ActiveVehicles != 2 || k.MaintenanceAlerts != 1 {
		t.Fatalf("expected 2 active / 1 maintenance, got %+v", k)
	}
	// 1450.00 / (404000 * 0.1)
	want := 1450.0 / 40400.0
	if k.CostPerKm != want {
		t.Fatalf("expected cost/km %v, got %v", want, k.CostPerKm)
	}
}

func TestComputeKPIsZeroDistanceGuard(t *testing.T) {
	vehicles := []Vehicle{{ID: "1", CurrentKm: 0, Status: StatusActive}}
	expenses := []Expense{expense("1", CategoryFuel, 10000)}
	k := ComputeKPIs(vehicles, expenses, DefaultDistanceFactor)
	if k.CostPerKm != 0 {
		t.Fatalf("expected zero cost/km on zero distance, got %v", k.CostPerKm)
	}
}

func TestExpensesByCategory(t *testing.T) {
	expenses := []Expense{
		expense("1", CategoryFuel, 25000),
		expense("1", CategoryMaintenance, 120000),
		expense("2", CategoryFuel, 30000),
	}
	totals := ExpensesByCategory(expenses)
	if len(totals) != 2 {
		t.Fatalf("expected 2 categories, got %d", len(totals))
	}
	// First-seen order: fuel before maintenance.
	if totals[0].Category != CategoryFuel || totals[0].Amount.Cents != 55000 {
		t.Fatalf("unexpected first entry: %+v", totals[0])
	}
	if totals[1].Category != CategoryMaintenance || totals[1].Amount.Cents != 120000 {
		t.Fatalf("unexpected second entry: %+v", totals[1])
	}
}

func TestExpensesByCategorySumsMatchTotalCost(t *testing.T) {
	expenses := []Expense{
		expense("1", CategoryFuel, 25000),
		expense("1", CategoryMaintenance, 120000),
		expense("2", CategoryFuel, 30000),
		expense("2", CategoryFine, 19500),
		expense("3", CategoryMaintenance, 450000),
	}
	var sum int64
	for _, ct := range ExpensesByCategory(expenses) {
		sum += ct.Amount.Cents
	}
	if total := TotalCost(expenses).Cents; sum != total {
		t.Fatalf("category sums %d != total cost %d", sum, total)
	}
}

func TestExpensesByCategoryEmpty(t *testing.T) {
	if totals := ExpensesByCategory(nil); len(totals) != 0 {
		t.Fatalf("expected no totals, got %v", totals)
	}
}

func TestRankVehiclesByCost(t *testing.T) {
	vehicles := []Vehicle{
		{ID: "1", Name: "Corolla 01"},
		{ID: "2", Name: "Fiorino 05"},
		{ID: "3", Name: "Caminhão 02"},
		{ID: "4", Name: "Strada 03"},
		{ID: "5", Name: "Uno 07"},
	}
	expenses := []Expense{
		expense("1", CategoryFuel, 25000),
		expense("2", CategoryFuel, 30000),
		expense("3", CategoryMaintenance, 450000),
		expense("1", CategoryMaintenance, 120000),
	}
	ranked := RankVehiclesByCost(vehicles, expenses, 3)
	if len(ranked) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(ranked))
	}
	if ranked[0].Vehicle.ID != "3" || ranked[0].TotalCost.Cents != 450000 {
		t.Fatalf("unexpected top vehicle: %+v", ranked[0])
	}
	if ranked[1].Vehicle.ID != "1" || ranked[2].Vehicle.ID != "2" {
		t.Fatalf("unexpected order: %s, %s", ranked[1].Vehicle.ID, ranked[2].Vehicle.ID)
	}
}

func TestRankVehiclesByCostStableTies(t *testing.T) {
	vehicles := []Vehicle{
		{ID: "a"}, {ID: "b"}, {ID: "c"},
	}
	expenses := []Expense{
		expense("a", CategoryFuel, 10000),
		expense("b", CategoryFuel, 10000),
		expense("c", CategoryFuel, 10000),
	}
	ranked := RankVehiclesByCost(vehicles, expenses, 3)
	for i, want := range []string{"a", "b", "c"} {
		if ranked[i].Vehicle.ID != want {
			t.Fatalf("tie order broken at %d: got %s want %s", i, ranked[i].Vehicle.ID, want)
		}
	}
}

func TestRankVehiclesByCostDefaults(t *testing.T) {
	vehicles := make([]Vehicle, 5)
	for i := range vehicles {
		vehicles[i].ID = string(rune('a' + i))
	}
	ranked := RankVehiclesByCost(vehicles, nil, 0)
	if len(ranked) != DefaultRankLimit {
		t.Fatalf("expected default limit %d, got %d", DefaultRankLimit, len(ranked))
	}
}

func TestRankVehiclesByCostIgnoresUnknownRefs(t *testing.T) {
	vehicles := []Vehicle{{ID: "1"}}
	expenses := []Expense{
		expense("1", CategoryFuel, 100),
		expense("deleted", CategoryFuel, 999999),
	}
	ranked := RankVehiclesByCost(vehicles, expenses, 3)
	if len(ranked) != 1 || ranked[0].TotalCost.Cents != 100 {
		t.Fatalf("dangling reference leaked into rollup: %+v", ranked)
	}
}

func TestFilterByMonth(t *testing.T) {
	expenses := []Expense{
		{VehicleID: "1", Date: NewDate(2024, 3, 1), Amount: Money{Cents: 1}},
		{VehicleID: "1", Date: NewDate(2024, 2, 15), Amount: Money{Cents: 2}},
		{VehicleID: "1", Date: NewDate(2024, 3, 10), Amount: Money{Cents: 3}},
	}
	got := FilterByMonth(expenses, 2024, 3)
	if len(got) != 2 || got[0].Amount.Cents != 1 || got[1].Amount.Cents != 3 {
		t.Fatalf("unexpected filter result: %+v", got)
	}
	if len(FilterByMonth(expenses, 2025, 1)) != 0 {
		t.Fatalf("expected empty window")
	}
}
