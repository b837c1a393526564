package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"frota/internal/core"
)

// Seed file DTOs. Amounts are decimal strings, dates are YYYY-MM-DD,
// matching the HTTP API's wire shapes.
type (
	seedFile struct {
		Settings *seedSettings `json:"settings"`
		Vehicles []seedVehicle `json:"vehicles"`
		Drivers  []seedDriver  `json:"drivers"`
		Expenses []seedExpense `json:"expenses"`
	}

	seedSettings struct {
		Name         string `json:"name"`
		LogoURL      string `json:"logo_url"`
		PrimaryColor string `json:"primary_color"`
	}

	seedVehicle struct {
		Name            string `json:"name"`
		Plate           string `json:"plate"`
		Brand           string `json:"brand"`
		Model           string `json:"model"`
		Year            int    `json:"year"`
		Type            string `json:"type"`
		CurrentKm       int64  `json:"current_km"`
		Status          string `json:"status"`
		PurchaseValue   string `json:"purchase_value"`
		InsuranceExpiry string `json:"insurance_expiry"`
		CostCenter      string `json:"cost_center"`
	}

	seedDriver struct {
		Name          string `json:"name"`
		LicenseNumber string `json:"license_number"`
		LicenseExpiry string `json:"license_expiry"`
		Score         int    `json:"score"`
		Status        string `json:"status"`
	}

	seedExpense struct {
		Vehicle     int    `json:"vehicle"` // index into the vehicles array
		Category    string `json:"category"`
		Date        string `json:"date"`
		Amount      string `json:"amount"`
		Description string `json:"description"`
		KmAtTime    int64  `json:"km_at_time"`
		Liters      float64 `json:"liters"`
		Paid        bool    `json:"paid"`
	}
)

// LoadSeed populates the store from an optional demo fixture in dataDir.
// A missing file is not an error; a malformed one is.
func (s *FleetStore) LoadSeed(dataDir string) error {
	path := filepath.Join(dataDir, "seed_fleet.json")
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("read seed file: %w", err)
	}

	var sf seedFile
	if err := json.Unmarshal(raw, &sf); err != nil {
		return fmt.Errorf("parse seed file %s: %w", path, err)
	}

	if sf.Settings != nil {
		s.ReplaceSettings(core.CompanySettings{
			Name:         sf.Settings.Name,
			LogoURL:      sf.Settings.LogoURL,
			PrimaryColor: sf.Settings.PrimaryColor,
		})
	}

	vehicleIDs := make([]string, len(sf.Vehicles))
	for i, sv := range sf.Vehicles {
		v := core.Vehicle{
			Name:       sv.Name,
			Plate:      sv.Plate,
			Brand:      sv.Brand,
			Model:      sv.Model,
			Year:       sv.Year,
			Type:       core.VehicleType(sv.Type),
			CurrentKm:  sv.CurrentKm,
			Status:     core.VehicleStatus(sv.Status),
			CostCenter: sv.CostCenter,
		}
		if sv.PurchaseValue != "" {
			cents, err := core.ParseDecimalToCents(sv.PurchaseValue)
			if err != nil {
				return fmt.Errorf("seed vehicle %d purchase value: %w", i, err)
			}
			v.PurchaseValue = core.Money{Cents: cents}
		}
		if sv.InsuranceExpiry != "" {
			d, err := parseSeedDate(sv.InsuranceExpiry)
			if err != nil {
				return fmt.Errorf("seed vehicle %d insurance expiry: %w", i, err)
			}
			v.InsuranceExpiry = d
		}
		if err := v.Validate(); err != nil {
			return fmt.Errorf("seed vehicle %d: %w", i, err)
		}
		vehicleIDs[i] = s.AddVehicle(v).ID
	}

	for i, sd := range sf.Drivers {
		d := core.Driver{
			Name:          sd.Name,
			LicenseNumber: sd.LicenseNumber,
			Score:         sd.Score,
			Status:        core.DriverStatus(sd.Status),
		}
		if sd.LicenseExpiry != "" {
			ld, err := parseSeedDate(sd.LicenseExpiry)
			if err != nil {
				return fmt.Errorf("seed driver %d license expiry: %w", i, err)
			}
			d.LicenseExpiry = ld
		}
		if err := d.Validate(); err != nil {
			return fmt.Errorf("seed driver %d: %w", i, err)
		}
		s.AddDriver(d)
	}

	// The file lists expenses newest first; record in reverse so the store's
	// newest-first order matches the file.
	for i := len(sf.Expenses) - 1; i >= 0; i-- {
		se := sf.Expenses[i]
		if se.Vehicle < 0 || se.Vehicle >= len(vehicleIDs) {
			return fmt.Errorf("seed expense %d: vehicle index %d out of range", i, se.Vehicle)
		}
		cents, err := core.ParseDecimalToCents(se.Amount)
		if err != nil {
			return fmt.Errorf("seed expense %d amount: %w", i, err)
		}
		d, err := parseSeedDate(se.Date)
		if err != nil {
			return fmt.Errorf("seed expense %d date: %w", i, err)
		}
		e := core.Expense{
			VehicleID:   vehicleIDs[se.Vehicle],
			Category:    core.ExpenseCategory(se.Category),
			Date:        d,
			Amount:      core.Money{Cents: cents},
			Description: se.Description,
			KmAtTime:    se.KmAtTime,
			Liters:      se.Liters,
			Paid:        se.Paid,
		}
		if err := e.Validate(); err != nil {
			return fmt.Errorf("seed expense %d: %w", i, err)
		}
		s.RecordExpense(e)
	}

	return nil
}

func parseSeedDate(s string) (core.Date, error) {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return core.Date{}, err
	}
	return core.Date{Time: t}, nil
}
