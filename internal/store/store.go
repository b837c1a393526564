// Package store holds the in-memory fleet collections and the mutation
// handlers that operate on them. The store is the single owner of vehicles,
// drivers, expenses and company settings; aggregation works on snapshots
// copied out under the lock, so readers never observe a half-applied
// mutation. Nothing here is persisted — lifetime is the process.
package store

import (
	"sync"

	"frota/internal/core"
)

// FleetStore guards the entity collections with a single mutex. Vehicles and
// drivers keep creation order; expenses are prepended so the newest entry is
// always first.
type FleetStore struct {
	mu       sync.Mutex
	vehicles []core.Vehicle
	drivers  []core.Driver
	expenses []core.Expense
	settings core.CompanySettings
}

// Snapshot is a point-in-time copy of the store's collections. Callers own
// the returned slices; mutating them does not affect the store.
type Snapshot struct {
	Vehicles []core.Vehicle
	Drivers  []core.Driver
	Expenses []core.Expense
	Settings core.CompanySettings
}

func New() *FleetStore {
	return &FleetStore{
		settings: core.CompanySettings{
			Name:         "Minha Frota",
			PrimaryColor: "#1e3a8a",
		},
	}
}

// Snapshot copies out all collections under the lock.
func (s *FleetStore) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Snapshot{
		Vehicles: append([]core.Vehicle(nil), s.vehicles...),
		Drivers:  append([]core.Driver(nil), s.drivers...),
		Expenses: append([]core.Expense(nil), s.expenses...),
		Settings: s.settings,
	}
}

// AddVehicle appends the vehicle in creation order. A missing ID is
// generated; the stored value is returned.
func (s *FleetStore) AddVehicle(v core.Vehicle) core.Vehicle {
	if v.ID == "" {
		v.ID = NewID()
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.vehicles = append(s.vehicles, v)
	return v
}

// AddDriver appends the driver in creation order.
func (s *FleetStore) AddDriver(d core.Driver) core.Driver {
	if d.ID == "" {
		d.ID = NewID()
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.drivers = append(s.drivers, d)
	return d
}

// RecordExpense prepends the expense (newest first) and, when it carries an
// odometer reading above the referenced vehicle's current one, raises that
// vehicle's odometer to exactly the reading. Both writes happen under one
// lock acquisition, so no reader sees the expense without the odometer
// update. Absent, equal or lower readings leave the vehicle untouched —
// backfilled historical expenses are expected and not an error.
func (s *FleetStore) RecordExpense(e core.Expense) core.Expense {
	if e.ID == "" {
		e.ID = NewID()
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	s.expenses = append([]core.Expense{e}, s.expenses...)

	if e.KmAtTime > 0 && e.VehicleID != "" {
		for i := range s.vehicles {
			if s.vehicles[i].ID == e.VehicleID && e.KmAtTime > s.vehicles[i].CurrentKm {
				s.vehicles[i].CurrentKm = e.KmAtTime
				break
			}
		}
	}

	return e
}

// UpdateVehicleStatus replaces the status of the matching vehicle. Any
// status may move to any other; there is no transition state machine.
// Returns false when no vehicle matches, which is a no-op, not a fault.
func (s *FleetStore) UpdateVehicleStatus(id string, status core.VehicleStatus) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.vehicles {
		if s.vehicles[i].ID == id {
			s.vehicles[i].Status = status
			return true
		}
	}
	return false
}

// Vehicle looks up a vehicle by id.
func (s *FleetStore) Vehicle(id string) (core.Vehicle, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, v := range s.vehicles {
		if v.ID == id {
			return v, true
		}
	}
	return core.Vehicle{}, false
}

// Driver looks up a driver by id.
func (s *FleetStore) Driver(id string) (core.Driver, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, d := range s.drivers {
		if d.ID == id {
			return d, true
		}
	}
	return core.Driver{}, false
}

// Settings returns the current company settings.
func (s *FleetStore) Settings() core.CompanySettings {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.settings
}

// ReplaceSettings swaps the singleton settings record wholesale.
func (s *FleetStore) ReplaceSettings(cs core.CompanySettings) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.settings = cs
}
