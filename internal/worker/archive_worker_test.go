package worker

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"frota/internal/amqp"
	"frota/internal/archive"
	"frota/internal/log"
)

type fakeArchiver struct {
	records []archive.Record
	err     error
}

func (f *fakeArchiver) Archive(_ context.Context, rec archive.Record) error {
	if f.err != nil {
		return f.err
	}
	f.records = append(f.records, rec)
	return nil
}

type fakeExporter struct {
	exported []amqp.ExpenseRecordedMessage
	err      error
}

func (f *fakeExporter) ExportExpense(_ context.Context, msg amqp.ExpenseRecordedMessage) error {
	if f.err != nil {
		return f.err
	}
	f.exported = append(f.exported, msg)
	return nil
}

func testMessage() *amqp.ExpenseRecordedMessage {
	return &amqp.ExpenseRecordedMessage{
		ExpenseID:   "exp-1",
		VehicleID:   "veh-1",
		Category:    "fuel",
		Date:        "2024-07-15",
		AmountCents: 25050,
		Description: "Abastecimento completo",
		KmAtTime:    25500,
		Liters:      45.5,
		FuelType:    "diesel",
		Provider:    "Posto Ipiranga",
		Paid:        true,
		RecordedAt:  time.Date(2024, 7, 15, 10, 0, 0, 0, time.UTC),
	}
}

func testLogger() *log.Logger {
	return log.New(log.Config{Level: slog.LevelError})
}

func TestHandleExpenseRecordedArchives(t *testing.T) {
	arch := &fakeArchiver{}
	w := NewArchiveWorker(arch, nil, testLogger())

	if err := w.HandleExpenseRecorded(testMessage()); err != nil {
		t.Fatalf("HandleExpenseRecorded() error = %v", err)
	}

	if len(arch.records) != 1 {
		t.Fatalf("expected 1 archived record, got %d", len(arch.records))
	}
	rec := arch.records[0]
	if rec.ExpenseID != "exp-1" || rec.VehicleID != "veh-1" {
		t.Errorf("unexpected record ids: %+v", rec)
	}
	if rec.AmountCents != 25050 {
		t.Errorf("AmountCents = %d, want 25050", rec.AmountCents)
	}
	if rec.Date != "2024-07-15" {
		t.Errorf("Date = %q, want 2024-07-15", rec.Date)
	}
	if !rec.Paid {
		t.Error("expected Paid to carry through")
	}
}

func TestHandleExpenseRecordedArchiveErrorPropagates(t *testing.T) {
	arch := &fakeArchiver{err: errors.New("disk full")}
	w := NewArchiveWorker(arch, nil, testLogger())

	if err := w.HandleExpenseRecorded(testMessage()); err == nil {
		t.Fatal("expected error when archive fails")
	}
}

func TestHandleExpenseRecordedExports(t *testing.T) {
	arch := &fakeArchiver{}
	exp := &fakeExporter{}
	w := NewArchiveWorker(arch, exp, testLogger())

	if err := w.HandleExpenseRecorded(testMessage()); err != nil {
		t.Fatalf("HandleExpenseRecorded() error = %v", err)
	}

	if len(exp.exported) != 1 {
		t.Fatalf("expected 1 exported message, got %d", len(exp.exported))
	}
	if exp.exported[0].ExpenseID != "exp-1" {
		t.Errorf("exported wrong expense: %q", exp.exported[0].ExpenseID)
	}
}

func TestHandleExpenseRecordedExportFailureNotFatal(t *testing.T) {
	arch := &fakeArchiver{}
	exp := &fakeExporter{err: errors.New("quota exceeded")}
	w := NewArchiveWorker(arch, exp, testLogger())

	if err := w.HandleExpenseRecorded(testMessage()); err != nil {
		t.Fatalf("export failure must not fail the handler, got %v", err)
	}
	if len(arch.records) != 1 {
		t.Fatalf("archive write must still happen, got %d records", len(arch.records))
	}
}
