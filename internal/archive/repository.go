// Package archive is the durable downstream sink for recorded expenses. The
// in-memory store stays authoritative; rows here are written once by the
// worker and never read back into the server.
package archive

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// Record is one archived expense event.
type Record struct {
	ExpenseID   string
	VehicleID   string
	Category    string
	Date        string // YYYY-MM-DD
	AmountCents int64
	Description string
	KmAtTime    int64
	Liters      float64
	FuelType    string
	Provider    string
	Paid        bool
	RecordedAt  time.Time
}

type Repository struct {
	db *sql.DB
}

func NewRepository(dbPath string) (*Repository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &Repository{db: db}, nil
}

func (r *Repository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// Archive upserts the record keyed by expense id. AMQP delivery is
// at-least-once, so a redelivered event overwrites its own row instead of
// duplicating it.
func (r *Repository) Archive(ctx context.Context, rec Record) error {
	const q = `
INSERT INTO expense_archive (
    expense_id, vehicle_id, category, date, amount_cents, description,
    km_at_time, liters, fuel_type, provider, paid, recorded_at
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(expense_id) DO UPDATE SET
    vehicle_id = excluded.vehicle_id,
    category = excluded.category,
    date = excluded.date,
    amount_cents = excluded.amount_cents,
    description = excluded.description,
    km_at_time = excluded.km_at_time,
    liters = excluded.liters,
    fuel_type = excluded.fuel_type,
    provider = excluded.provider,
    paid = excluded.paid,
    recorded_at = excluded.recorded_at`

	_, err := r.db.ExecContext(ctx, q,
		rec.ExpenseID, rec.VehicleID, rec.Category, rec.Date, rec.AmountCents,
		rec.Description, rec.KmAtTime, rec.Liters, rec.FuelType, rec.Provider,
		boolToInt(rec.Paid), rec.RecordedAt.UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("archive expense: %w", err)
	}

	slog.InfoContext(ctx, "Expense archived",
		"expense_id", rec.ExpenseID,
		"vehicle_id", rec.VehicleID,
		"amount_cents", rec.AmountCents)

	return nil
}

// Recent returns the most recently recorded rows, newest first.
func (r *Repository) Recent(ctx context.Context, limit int) ([]Record, error) {
	if limit <= 0 {
		limit = 20
	}
	const q = `
SELECT expense_id, vehicle_id, category, date, amount_cents, description,
       km_at_time, liters, fuel_type, provider, paid, recorded_at
FROM expense_archive
ORDER BY recorded_at DESC
LIMIT ?`

	rows, err := r.db.QueryContext(ctx, q, limit)
	if err != nil {
		return nil, fmt.Errorf("query recent expenses: %w", err)
	}
	defer rows.Close()

	var out []Record
	for rows.Next() {
		var rec Record
		var paid int
		var recordedAt string
		if err := rows.Scan(
			&rec.ExpenseID, &rec.VehicleID, &rec.Category, &rec.Date,
			&rec.AmountCents, &rec.Description, &rec.KmAtTime, &rec.Liters,
			&rec.FuelType, &rec.Provider, &paid, &recordedAt,
		); err != nil {
			return nil, fmt.Errorf("scan expense row: %w", err)
		}
		rec.Paid = paid != 0
		if t, err := time.Parse(time.RFC3339, recordedAt); err == nil {
			rec.RecordedAt = t
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate expense rows: %w", err)
	}
	return out, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
