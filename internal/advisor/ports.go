// Package advisor talks to the external AI service that reads receipts and
// suggests fleet insights. Responses are suggestions only: nothing here
// mutates an entity, and every failure is recoverable — the caller falls
// back to manual input or a fixed message.
package advisor

import (
	"context"

	"frota/internal/core"
)

// FallbackInsight is shown whenever the insight call fails, times out or is
// cancelled. Advisory failures never propagate as hard errors.
const FallbackInsight = "Não foi possível gerar insights no momento. Tente novamente mais tarde."

// MaxRecentExpenses caps how many expense summaries travel with an insight
// request.
const MaxRecentExpenses = 20

type (
	// ReceiptFields is the structured suggestion extracted from a receipt
	// image, used to pre-fill the expense form. Amount, Date, Description
	// and Provider are always present on success; the rest only when the
	// receipt was a fuel purchase.
	ReceiptFields struct {
		AmountCents int64
		Date        core.Date
		Description string
		Provider    string
		Liters      float64
		FuelType    string
		Confidence  float64
	}

	// VehicleSummary is the vehicle projection sent to the insight service.
	VehicleSummary struct {
		Model  string `json:"model"`
		Km     int64  `json:"km"`
		Status string `json:"status"`
	}

	// ExpenseSummary is the expense projection sent to the insight service.
	ExpenseSummary struct {
		Category string  `json:"type"`
		Amount   float64 `json:"amount"`
		Date     string  `json:"date"`
	}

	ReceiptAnalyzer interface {
		AnalyzeReceipt(ctx context.Context, image []byte, mimeType string) (ReceiptFields, error)
	}

	InsightGenerator interface {
		FleetInsights(ctx context.Context, vehicles []VehicleSummary, recent []ExpenseSummary) ([]string, error)
	}
)

// SummarizeVehicles projects vehicles for an insight request.
func SummarizeVehicles(vehicles []core.Vehicle) []VehicleSummary {
	out := make([]VehicleSummary, len(vehicles))
	for i, v := range vehicles {
		out[i] = VehicleSummary{Model: v.Model, Km: v.CurrentKm, Status: string(v.Status)}
	}
	return out
}

// SummarizeExpenses projects the most recent expenses, capped at
// MaxRecentExpenses. The input is expected newest first (store order).
func SummarizeExpenses(expenses []core.Expense) []ExpenseSummary {
	if len(expenses) > MaxRecentExpenses {
		expenses = expenses[:MaxRecentExpenses]
	}
	out := make([]ExpenseSummary, len(expenses))
	for i, e := range expenses {
		out[i] = ExpenseSummary{
			Category: string(e.Category),
			Amount:   e.Amount.Reais(),
			Date:     e.Date.Format("2006-01-02"),
		}
	}
	return out
}
