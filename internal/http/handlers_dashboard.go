package http

import (
	"fmt"
	"net/http"

	"frota/internal/core"
)

// handleDashboard computes the KPI block, the per-category breakdown and the
// most expensive vehicles, optionally restricted to a year/month window.
// Results are cached briefly; any mutation clears the cache.
func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	year, month, filtered, err := parseMonthFilter(r)
	if err != nil {
		BadRequestError(err.Error()).Write(w)
		return
	}

	key := "all"
	if filtered {
		key = fmt.Sprintf("%d-%02d", year, month)
	}
	if view, found := s.dashboardCache.Get(key); found {
		NewJSONResponse().Body(view).Write(w)
		return
	}

	snap := s.store.Snapshot()
	expenses := snap.Expenses
	if filtered {
		expenses = core.FilterByMonth(expenses, year, month)
	}

	kpis := core.ComputeKPIs(snap.Vehicles, expenses, s.distanceFactor)
	byCategory := core.ExpensesByCategory(expenses)
	topVehicles := core.RankVehiclesByCost(snap.Vehicles, expenses, core.DefaultRankLimit)

	view := dashboardView{
		KPIs: kpiView{
			TotalCostCents:    kpis.TotalCost.Cents,
			TotalCost:         formatReais(kpis.TotalCost.Cents),
			CostPerKm:         kpis.CostPerKm,
			ActiveVehicles:    kpis.ActiveVehicles,
			MaintenanceAlerts: kpis.MaintenanceAlerts,
		},
		ExpensesByCategory: make([]categoryTotalView, 0, len(byCategory)),
		TopVehicles:        make([]vehicleCostView, 0, len(topVehicles)),
	}
	for _, ct := range byCategory {
		view.ExpensesByCategory = append(view.ExpensesByCategory, categoryTotalView{
			Category:    string(ct.Category),
			AmountCents: ct.Amount.Cents,
			Amount:      formatReais(ct.Amount.Cents),
		})
	}
	for _, vc := range topVehicles {
		view.TopVehicles = append(view.TopVehicles, vehicleCostView{
			VehicleID:      vc.Vehicle.ID,
			Name:           vc.Vehicle.Name,
			Plate:          vc.Vehicle.Plate,
			TotalCostCents: vc.TotalCost.Cents,
			TotalCost:      formatReais(vc.TotalCost.Cents),
		})
	}
	if filtered {
		view.Period = &periodView{Year: year, Month: month}
	}

	s.dashboardCache.Set(key, view)
	NewJSONResponse().Body(view).Write(w)
}
