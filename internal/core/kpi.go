package core

import "sort"

// DefaultDistanceFactor is the assumed ratio of the reporting period to the
// lifetime distance recorded on the odometers. The cost-per-km figure divides
// the expense total by the fleet's summed odometer readings scaled by this
// factor; it is a deliberate approximation for the dashboard, not a precise
// per-trip cost computation.
const DefaultDistanceFactor = 0.1

// DefaultRankLimit is how many vehicles RankVehiclesByCost returns when the
// caller passes a non-positive limit.
const DefaultRankLimit = 3

// KPIData is derived from a (vehicles, expenses) snapshot on every query.
// It is never stored or independently mutated.
type KPIData struct {
	TotalCost         Money
	CostPerKm         float64
	ActiveVehicles    int
	MaintenanceAlerts int
}

// CategoryTotal is a running sum of expense amounts for one category.
type CategoryTotal struct {
	Category ExpenseCategory
	Amount   Money
}

// VehicleCost pairs a vehicle with the rollup of its expense amounts.
type VehicleCost struct {
	Vehicle   Vehicle
	TotalCost Money
}

// TotalCost sums the amounts of all expenses in the snapshot.
func TotalCost(expenses []Expense) Money {
	var total Money
	for _, e := range expenses {
		total.Cents += e.Amount.Cents
	}
	return total
}

// ComputeKPIs derives the dashboard indicators from a snapshot. No date
// filtering happens here; callers pass a pre-filtered expense window when
// period scoping is desired. Empty snapshots yield zero-valued results.
func ComputeKPIs(vehicles []Vehicle, expenses []Expense, factor float64) KPIData {
	if factor <= 0 {
		factor = DefaultDistanceFactor
	}

	k := KPIData{TotalCost: TotalCost(expenses)}

	var totalKm int64
	for _, v := range vehicles {
		totalKm += v.CurrentKm
		switch v.Status {
		case StatusActive:
			k.ActiveVehicles++
		case StatusMaintenance:
			k.MaintenanceAlerts++
		}
	}

	if scaled := float64(totalKm) * factor; scaled > 0 {
		k.CostPerKm = k.TotalCost.Reais() / scaled
	}

	return k
}

// ExpensesByCategory groups expense amounts by category, preserving
// first-seen category order. Categories absent from the input are omitted.
func ExpensesByCategory(expenses []Expense) []CategoryTotal {
	idx := make(map[ExpenseCategory]int, len(expenses))
	var totals []CategoryTotal
	for _, e := range expenses {
		i, ok := idx[e.Category]
		if !ok {
			i = len(totals)
			idx[e.Category] = i
			totals = append(totals, CategoryTotal{Category: e.Category})
		}
		totals[i].Amount.Cents += e.Amount.Cents
	}
	return totals
}

// RankVehiclesByCost rolls up expense amounts per vehicle and returns the
// top entries sorted descending by cost. The sort is stable: vehicles with
// equal rollups keep their relative input order. Expenses referencing
// unknown vehicle ids contribute nothing.
func RankVehiclesByCost(vehicles []Vehicle, expenses []Expense, limit int) []VehicleCost {
	if limit <= 0 {
		limit = DefaultRankLimit
	}

	byVehicle := make(map[string]int64, len(vehicles))
	for _, e := range expenses {
		byVehicle[e.VehicleID] += e.Amount.Cents
	}

	ranked := make([]VehicleCost, len(vehicles))
	for i, v := range vehicles {
		ranked[i] = VehicleCost{Vehicle: v, TotalCost: Money{Cents: byVehicle[v.ID]}}
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].TotalCost.Cents > ranked[j].TotalCost.Cents
	})

	if len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}

// FilterByMonth returns the expenses dated within the given year and month.
// It allocates a new slice and leaves the input untouched.
func FilterByMonth(expenses []Expense, year, month int) []Expense {
	out := make([]Expense, 0, len(expenses))
	for _, e := range expenses {
		if e.Date.In(year, month) {
			out = append(out, e)
		}
	}
	return out
}
