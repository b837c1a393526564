package core

import (
	"errors"
	"strings"
	"time"
)

const (
	TypeCar        VehicleType = "car"
	TypeMotorcycle VehicleType = "motorcycle"
	TypeTruck      VehicleType = "truck"
	TypeVan        VehicleType = "van"
)

const (
	StatusActive      VehicleStatus = "active"
	StatusMaintenance VehicleStatus = "maintenance"
	StatusSold        VehicleStatus = "sold"
	StatusInactive    VehicleStatus = "inactive"
)

const (
	FuelGasoline FuelType = "gasoline"
	FuelEthanol  FuelType = "ethanol"
	FuelDiesel   FuelType = "diesel"
	FuelElectric FuelType = "electric"
	FuelCNG      FuelType = "cng"
)

const (
	CategoryFuel        ExpenseCategory = "fuel"
	CategoryMaintenance ExpenseCategory = "maintenance"
	CategoryTax         ExpenseCategory = "tax"
	CategoryFine        ExpenseCategory = "fine"
	CategoryInsurance   ExpenseCategory = "insurance"
	CategoryOther       ExpenseCategory = "other"
)

const (
	DriverActive   DriverStatus = "active"
	DriverInactive DriverStatus = "inactive"
)

type (
	VehicleType     string
	VehicleStatus   string
	FuelType        string
	ExpenseCategory string
	DriverStatus    string

	Date struct {
		time.Time
	}

	Money struct {
		Cents int64
	}

	// Vehicle is a fleet vehicle. AssignedDriverID is a weak reference to a
	// Driver; existence is not enforced and dangling ids are tolerated.
	Vehicle struct {
		ID              string
		Name            string
		Plate           string
		Brand           string
		Model           string
		Year            int
		Type            VehicleType
		CurrentKm       int64 // odometer; only ever raised, see store.RecordExpense
		Status          VehicleStatus
		PurchaseValue   Money
		InsuranceExpiry Date
		CostCenter       string // optional grouping label, no further semantics
		AssignedDriverID string
		ImageURL         string
	}

	Driver struct {
		ID            string
		Name          string
		LicenseNumber string
		LicenseExpiry Date
		Score         int // 0-100 performance score
		Status        DriverStatus
	}

	// Expense is a cost entry attributed to a vehicle. Liters and Fuel are
	// meaningful only when Category is CategoryFuel. KmAtTime of zero means
	// "no odometer reading was taken".
	Expense struct {
		ID          string
		VehicleID   string
		Category    ExpenseCategory
		Date        Date
		Amount      Money
		Description string
		KmAtTime    int64
		Liters      float64
		Fuel        FuelType
		Provider    string
		ReceiptURL  string
		Paid        bool
	}

	// CompanySettings is the singleton branding record; it is replaced
	// wholesale, never patched field by field.
	CompanySettings struct {
		Name         string
		LogoURL      string
		PrimaryColor string
	}
)

var (
	ErrInvalidDate     = errors.New("invalid date")
	ErrInvalidAmount   = errors.New("invalid amount")
	ErrInvalidYear     = errors.New("invalid year")
	ErrInvalidScore    = errors.New("score out of range")
	ErrInvalidStatus   = errors.New("invalid status")
	ErrInvalidType     = errors.New("invalid vehicle type")
	ErrInvalidCategory = errors.New("invalid expense category")
	ErrEmptyName        = errors.New("empty name")
	ErrEmptyPlate       = errors.New("empty plate")
	ErrEmptyDescription = errors.New("empty description")
	ErrEmptyVehicleRef  = errors.New("empty vehicle reference")
	ErrNegativeKm       = errors.New("negative odometer reading")
)

func (t VehicleType) Valid() bool {
	switch t {
	case TypeCar, TypeMotorcycle, TypeTruck, TypeVan:
		return true
	}
	return false
}

func (s VehicleStatus) Valid() bool {
	switch s {
	case StatusActive, StatusMaintenance, StatusSold, StatusInactive:
		return true
	}
	return false
}

func (c ExpenseCategory) Valid() bool {
	switch c {
	case CategoryFuel, CategoryMaintenance, CategoryTax, CategoryFine,
		CategoryInsurance, CategoryOther:
		return true
	}
	return false
}

func (s DriverStatus) Valid() bool {
	return s == DriverActive || s == DriverInactive
}

func (d Date) Validate() error {
	if d.IsZero() {
		return ErrInvalidDate
	}
	return nil
}

// NewDate creates a Date from year, month, day in UTC.
func NewDate(year, month, day int) Date {
	return Date{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

// In returns true when the date falls in the given year and month.
func (d Date) In(year, month int) bool {
	return d.Year() == year && int(d.Time.Month()) == month
}

func (m Money) Validate() error {
	if m.Cents <= 0 {
		return ErrInvalidAmount
	}
	return nil
}

func (v Vehicle) Validate() error {
	if strings.TrimSpace(v.Plate) == "" {
		return ErrEmptyPlate
	}
	if v.Year < 1950 || v.Year > time.Now().Year()+1 {
		return ErrInvalidYear
	}
	if !v.Type.Valid() {
		return ErrInvalidType
	}
	if !v.Status.Valid() {
		return ErrInvalidStatus
	}
	if v.CurrentKm < 0 {
		return ErrNegativeKm
	}
	return nil
}

func (d Driver) Validate() error {
	if strings.TrimSpace(d.Name) == "" {
		return ErrEmptyName
	}
	if d.Score < 0 || d.Score > 100 {
		return ErrInvalidScore
	}
	if !d.Status.Valid() {
		return ErrInvalidStatus
	}
	return nil
}

func (e Expense) Validate() error {
	if strings.TrimSpace(e.VehicleID) == "" {
		return ErrEmptyVehicleRef
	}
	if !e.Category.Valid() {
		return ErrInvalidCategory
	}
	if err := e.Date.Validate(); err != nil {
		return err
	}
	if err := e.Amount.Validate(); err != nil {
		return err
	}
	if len(strings.TrimSpace(e.Description)) == 0 {
		return ErrEmptyDescription
	}
	if len(e.Description) > 200 {
		return errors.New("description too long (max 200 characters)")
	}
	if e.KmAtTime < 0 {
		return ErrNegativeKm
	}
	return nil
}
