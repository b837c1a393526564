// Package worker consumes expense-recorded events and writes them to the
// durable archive, optionally mirroring each row to Google Sheets.
package worker

import (
	"context"
	"fmt"

	"frota/internal/amqp"
	"frota/internal/archive"
	"frota/internal/log"
)

// ExpenseArchiver persists one expense event. *archive.Repository satisfies it.
type ExpenseArchiver interface {
	Archive(ctx context.Context, rec archive.Record) error
}

// ExpenseExporter mirrors one expense event to an external sink.
type ExpenseExporter interface {
	ExportExpense(ctx context.Context, msg amqp.ExpenseRecordedMessage) error
}

// ArchiveWorker handles expense-recorded messages from AMQP.
type ArchiveWorker struct {
	archiver ExpenseArchiver
	exporter ExpenseExporter // nil when Sheets export is disabled
	logger   *log.Logger
}

func NewArchiveWorker(archiver ExpenseArchiver, exporter ExpenseExporter, logger *log.Logger) *ArchiveWorker {
	return &ArchiveWorker{
		archiver: archiver,
		exporter: exporter,
		logger:   logger.WithComponent(log.ComponentArchive),
	}
}

// HandleExpenseRecorded archives the event. A returned error makes the
// consumer Nack with requeue, so only the archive write is fatal; the Sheets
// mirror is best-effort and logged.
func (w *ArchiveWorker) HandleExpenseRecorded(msg *amqp.ExpenseRecordedMessage) error {
	ctx := context.Background()

	w.logger.InfoContext(ctx, "Processing expense event",
		log.FieldExpenseID, msg.ExpenseID,
		log.FieldVehicleID, msg.VehicleID,
		log.FieldCategory, msg.Category)

	rec := archive.Record{
		ExpenseID:   msg.ExpenseID,
		VehicleID:   msg.VehicleID,
		Category:    msg.Category,
		Date:        msg.Date,
		AmountCents: msg.AmountCents,
		Description: msg.Description,
		KmAtTime:    msg.KmAtTime,
		Liters:      msg.Liters,
		FuelType:    msg.FuelType,
		Provider:    msg.Provider,
		Paid:        msg.Paid,
		RecordedAt:  msg.RecordedAt,
	}

	if err := w.archiver.Archive(ctx, rec); err != nil {
		return fmt.Errorf("archive expense %s: %w", msg.ExpenseID, err)
	}

	if w.exporter != nil {
		if err := w.exporter.ExportExpense(ctx, *msg); err != nil {
			// The archive row is the source of truth; a failed mirror does
			// not warrant a redelivery that would rewrite it.
			w.logger.ErrorContext(ctx, "Sheets export failed",
				log.FieldExpenseID, msg.ExpenseID,
				log.FieldError, err)
		}
	}

	return nil
}
