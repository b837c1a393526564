package http

import (
	"encoding/json"
	"net/http"

	"frota/internal/core"
	"frota/internal/log"
)

// handleListExpenses returns expenses newest first, optionally filtered to a
// year/month window.
func (s *Server) handleListExpenses(w http.ResponseWriter, r *http.Request) {
	year, month, filtered, err := parseMonthFilter(r)
	if err != nil {
		BadRequestError(err.Error()).Write(w)
		return
	}

	snap := s.store.Snapshot()
	expenses := snap.Expenses
	if filtered {
		expenses = core.FilterByMonth(expenses, year, month)
	}

	views := make([]expenseView, 0, len(expenses))
	for _, e := range expenses {
		views = append(views, viewExpense(e))
	}
	NewJSONResponse().Body(views).Write(w)
}

// handleRecordExpense records the expense and, when the reading is ahead of
// the vehicle's odometer, raises the odometer in the same store mutation.
func (s *Server) handleRecordExpense(w http.ResponseWriter, r *http.Request) {
	var payload expensePayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		BadRequestError("corpo da requisição inválido").Write(w)
		return
	}

	e, err := payload.toCore()
	if err != nil {
		UnprocessableEntityError(err.Error()).Write(w)
		return
	}

	// Vehicle references are weak: an unknown id is recorded as-is and the
	// odometer side effect simply does not apply.
	recorded := s.expenses.RecordExpense(r.Context(), e)
	s.invalidateDashboard()

	s.logger.InfoContext(r.Context(), "Expense recorded",
		log.FieldExpenseID, recorded.ID,
		log.FieldVehicleID, recorded.VehicleID,
		log.FieldCategory, string(recorded.Category),
		log.FieldAmountCents, recorded.Amount.Cents,
		log.FieldKmAtTime, recorded.KmAtTime)

	NewJSONResponse().Status(http.StatusCreated).Body(viewExpense(recorded)).Write(w)
}
