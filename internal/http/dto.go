// This file defines the JSON wire types. Amounts arrive as decimal strings
// ("250,00" or "250.00") and leave as integer cents plus a formatted label;
// dates travel as YYYY-MM-DD.

package http

import (
	"fmt"

	"frota/internal/core"
)

type vehiclePayload struct {
	Name             string `json:"name"`
	Plate            string `json:"plate"`
	Brand            string `json:"brand"`
	Model            string `json:"model"`
	Year             int    `json:"year"`
	Type             string `json:"type"`
	CurrentKm        int64  `json:"current_km"`
	Status           string `json:"status"`
	PurchaseValue    string `json:"purchase_value"`
	InsuranceExpiry  string `json:"insurance_expiry"`
	CostCenter       string `json:"cost_center"`
	AssignedDriverID string `json:"assigned_driver_id"`
	ImageURL         string `json:"image_url"`
}

func (p vehiclePayload) toCore() (core.Vehicle, error) {
	v := core.Vehicle{
		Name:             sanitizeInput(p.Name),
		Plate:            sanitizeInput(p.Plate),
		Brand:            sanitizeInput(p.Brand),
		Model:            sanitizeInput(p.Model),
		Year:             p.Year,
		Type:             core.VehicleType(p.Type),
		CurrentKm:        p.CurrentKm,
		Status:           core.VehicleStatus(p.Status),
		CostCenter:       sanitizeInput(p.CostCenter),
		AssignedDriverID: p.AssignedDriverID,
		ImageURL:         p.ImageURL,
	}
	if v.Status == "" {
		v.Status = core.StatusActive
	}
	if p.PurchaseValue != "" {
		cents, err := core.ParseDecimalToCents(p.PurchaseValue)
		if err != nil {
			return core.Vehicle{}, fmt.Errorf("purchase_value: %w", err)
		}
		v.PurchaseValue = core.Money{Cents: cents}
	}
	if p.InsuranceExpiry != "" {
		d, err := parseDate(p.InsuranceExpiry)
		if err != nil {
			return core.Vehicle{}, fmt.Errorf("insurance_expiry: %w", err)
		}
		v.InsuranceExpiry = d
	}
	return v, v.Validate()
}

type vehicleView struct {
	ID                 string `json:"id"`
	Name               string `json:"name"`
	Plate              string `json:"plate"`
	Brand              string `json:"brand,omitempty"`
	Model              string `json:"model,omitempty"`
	Year               int    `json:"year"`
	Type               string `json:"type"`
	CurrentKm          int64  `json:"current_km"`
	Status             string `json:"status"`
	PurchaseValueCents int64  `json:"purchase_value_cents"`
	PurchaseValue      string `json:"purchase_value"`
	InsuranceExpiry    string `json:"insurance_expiry,omitempty"`
	CostCenter         string `json:"cost_center,omitempty"`
	AssignedDriverID   string `json:"assigned_driver_id,omitempty"`
	ImageURL           string `json:"image_url,omitempty"`
}

func viewVehicle(v core.Vehicle) vehicleView {
	view := vehicleView{
		ID:                 v.ID,
		Name:               v.Name,
		Plate:              v.Plate,
		Brand:              v.Brand,
		Model:              v.Model,
		Year:               v.Year,
		Type:               string(v.Type),
		CurrentKm:          v.CurrentKm,
		Status:             string(v.Status),
		PurchaseValueCents: v.PurchaseValue.Cents,
		PurchaseValue:      formatReais(v.PurchaseValue.Cents),
		CostCenter:         v.CostCenter,
		AssignedDriverID:   v.AssignedDriverID,
		ImageURL:           v.ImageURL,
	}
	if !v.InsuranceExpiry.IsZero() {
		view.InsuranceExpiry = v.InsuranceExpiry.Format("2006-01-02")
	}
	return view
}

type driverPayload struct {
	Name          string `json:"name"`
	LicenseNumber string `json:"license_number"`
	LicenseExpiry string `json:"license_expiry"`
	Score         int    `json:"score"`
	Status        string `json:"status"`
}

func (p driverPayload) toCore() (core.Driver, error) {
	d := core.Driver{
		Name:          sanitizeInput(p.Name),
		LicenseNumber: sanitizeInput(p.LicenseNumber),
		Score:         p.Score,
		Status:        core.DriverStatus(p.Status),
	}
	if d.Status == "" {
		d.Status = core.DriverActive
	}
	if p.LicenseExpiry != "" {
		exp, err := parseDate(p.LicenseExpiry)
		if err != nil {
			return core.Driver{}, fmt.Errorf("license_expiry: %w", err)
		}
		d.LicenseExpiry = exp
	}
	return d, d.Validate()
}

type driverView struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	LicenseNumber string `json:"license_number,omitempty"`
	LicenseExpiry string `json:"license_expiry,omitempty"`
	Score         int    `json:"score"`
	Status        string `json:"status"`
}

func viewDriver(d core.Driver) driverView {
	view := driverView{
		ID:            d.ID,
		Name:          d.Name,
		LicenseNumber: d.LicenseNumber,
		Score:         d.Score,
		Status:        string(d.Status),
	}
	if !d.LicenseExpiry.IsZero() {
		view.LicenseExpiry = d.LicenseExpiry.Format("2006-01-02")
	}
	return view
}

type expensePayload struct {
	VehicleID   string  `json:"vehicle_id"`
	Category    string  `json:"category"`
	Date        string  `json:"date"`
	Amount      string  `json:"amount"`
	Description string  `json:"description"`
	KmAtTime    int64   `json:"km_at_time"`
	Liters      float64 `json:"liters"`
	FuelType    string  `json:"fuel_type"`
	Provider    string  `json:"provider"`
	ReceiptURL  string  `json:"receipt_url"`
	Paid        bool    `json:"paid"`
}

func (p expensePayload) toCore() (core.Expense, error) {
	cents, err := core.ParseDecimalToCents(p.Amount)
	if err != nil {
		return core.Expense{}, fmt.Errorf("amount: %w", err)
	}
	d, err := parseDate(p.Date)
	if err != nil {
		return core.Expense{}, fmt.Errorf("date: %w", err)
	}
	e := core.Expense{
		VehicleID:   p.VehicleID,
		Category:    core.ExpenseCategory(p.Category),
		Date:        d,
		Amount:      core.Money{Cents: cents},
		Description: sanitizeInput(p.Description),
		KmAtTime:    p.KmAtTime,
		Liters:      p.Liters,
		Fuel:        core.FuelType(p.FuelType),
		Provider:    sanitizeInput(p.Provider),
		ReceiptURL:  p.ReceiptURL,
		Paid:        p.Paid,
	}
	return e, e.Validate()
}

type expenseView struct {
	ID          string  `json:"id"`
	VehicleID   string  `json:"vehicle_id"`
	Category    string  `json:"category"`
	Date        string  `json:"date"`
	AmountCents int64   `json:"amount_cents"`
	Amount      string  `json:"amount"`
	Description string  `json:"description"`
	KmAtTime    int64   `json:"km_at_time,omitempty"`
	Liters      float64 `json:"liters,omitempty"`
	FuelType    string  `json:"fuel_type,omitempty"`
	Provider    string  `json:"provider,omitempty"`
	ReceiptURL  string  `json:"receipt_url,omitempty"`
	Paid        bool    `json:"paid"`
}

func viewExpense(e core.Expense) expenseView {
	return expenseView{
		ID:          e.ID,
		VehicleID:   e.VehicleID,
		Category:    string(e.Category),
		Date:        e.Date.Format("2006-01-02"),
		AmountCents: e.Amount.Cents,
		Amount:      formatReais(e.Amount.Cents),
		Description: e.Description,
		KmAtTime:    e.KmAtTime,
		Liters:      e.Liters,
		FuelType:    string(e.Fuel),
		Provider:    e.Provider,
		ReceiptURL:  e.ReceiptURL,
		Paid:        e.Paid,
	}
}

type settingsPayload struct {
	Name         string `json:"name"`
	LogoURL      string `json:"logo_url"`
	PrimaryColor string `json:"primary_color"`
}

func (p settingsPayload) toCore() core.CompanySettings {
	return core.CompanySettings{
		Name:         sanitizeInput(p.Name),
		LogoURL:      p.LogoURL,
		PrimaryColor: sanitizeInput(p.PrimaryColor),
	}
}

func viewSettings(cs core.CompanySettings) settingsPayload {
	return settingsPayload{
		Name:         cs.Name,
		LogoURL:      cs.LogoURL,
		PrimaryColor: cs.PrimaryColor,
	}
}

type kpiView struct {
	TotalCostCents    int64   `json:"total_cost_cents"`
	TotalCost         string  `json:"total_cost"`
	CostPerKm         float64 `json:"cost_per_km"`
	ActiveVehicles    int     `json:"active_vehicles"`
	MaintenanceAlerts int     `json:"maintenance_alerts"`
}

type categoryTotalView struct {
	Category    string `json:"category"`
	AmountCents int64  `json:"amount_cents"`
	Amount      string `json:"amount"`
}

type vehicleCostView struct {
	VehicleID      string `json:"vehicle_id"`
	Name           string `json:"name"`
	Plate          string `json:"plate"`
	TotalCostCents int64  `json:"total_cost_cents"`
	TotalCost      string `json:"total_cost"`
}

type periodView struct {
	Year  int `json:"year"`
	Month int `json:"month"`
}

type dashboardView struct {
	KPIs               kpiView             `json:"kpis"`
	ExpensesByCategory []categoryTotalView `json:"expenses_by_category"`
	TopVehicles        []vehicleCostView   `json:"top_vehicles"`
	Period             *periodView         `json:"period,omitempty"`
}
