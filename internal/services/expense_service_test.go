package services

import (
	"context"
	"errors"
	"testing"

	"frota/internal/amqp"
	"frota/internal/core"
	"frota/internal/store"
)

type fakePublisher struct {
	published []*amqp.ExpenseRecordedMessage
	err       error
}

func (f *fakePublisher) PublishExpenseRecorded(_ context.Context, msg *amqp.ExpenseRecordedMessage) error {
	if f.err != nil {
		return f.err
	}
	f.published = append(f.published, msg)
	return nil
}

func testExpense(vehicleID string) core.Expense {
	return core.Expense{
		VehicleID:   vehicleID,
		Category:    core.CategoryFuel,
		Date:        core.NewDate(2024, 3, 1),
		Amount:      core.Money{Cents: 25000},
		Description: "Posto Shell",
		KmAtTime:    25500,
	}
}

func TestRecordExpensePublishesEvent(t *testing.T) {
	st := store.New()
	v := st.AddVehicle(core.Vehicle{
		Plate: "ABC-1234", Year: 2023, Type: core.TypeCar,
		Status: core.StatusActive, CurrentKm: 25000,
	})
	pub := &fakePublisher{}
	svc := NewExpenseService(st, pub)

	recorded := svc.RecordExpense(context.Background(), testExpense(v.ID))
	if recorded.ID == "" {
		t.Fatalf("expected assigned id")
	}
	if len(pub.published) != 1 {
		t.Fatalf("expected 1 published event, got %d", len(pub.published))
	}
	if pub.published[0].ExpenseID != recorded.ID || pub.published[0].AmountCents != 25000 {
		t.Fatalf("event mismatch: %+v", pub.published[0])
	}

	// Side effect applied through the same path.
	got, _ := st.Vehicle(v.ID)
	if got.CurrentKm != 25500 {
		t.Fatalf("odometer not raised: %d", got.CurrentKm)
	}
}

func TestRecordExpensePublishFailureIsNonFatal(t *testing.T) {
	st := store.New()
	svc := NewExpenseService(st, &fakePublisher{err: errors.New("broker down")})

	recorded := svc.RecordExpense(context.Background(), testExpense("v1"))
	if recorded.ID == "" {
		t.Fatalf("store write must survive a publish failure")
	}
	if len(st.Snapshot().Expenses) != 1 {
		t.Fatalf("expense missing from store")
	}
}

func TestRecordExpenseWithoutPublisher(t *testing.T) {
	svc := NewExpenseService(store.New(), nil)
	recorded := svc.RecordExpense(context.Background(), testExpense("v1"))
	if recorded.ID == "" {
		t.Fatalf("expected recorded expense without publisher")
	}
}
