package http

import (
	"encoding/base64"
	"encoding/json"
	"net/http"

	"frota/internal/advisor"
	"frota/internal/log"
)

type insightsView struct {
	Insights []string `json:"insights"`
	Fallback bool     `json:"fallback"`
}

// handleInsights asks the advisory service for fleet insights built from the
// current snapshot. Only one run is live at a time: a new request cancels the
// previous one, and a run that was itself superseded answers 409 so stale
// suggestions never reach the client. Failures degrade to a fixed message.
func (s *Server) handleInsights(w http.ResponseWriter, r *http.Request) {
	if s.insights == nil {
		NewJSONResponse().Body(insightsView{
			Insights: []string{advisor.FallbackInsight},
			Fallback: true,
		}).Write(w)
		return
	}

	ctx, token := s.runner.Begin(r.Context())
	defer s.runner.Finish(token)

	snap := s.store.Snapshot()
	vehicles := advisor.SummarizeVehicles(snap.Vehicles)
	recent := advisor.SummarizeExpenses(snap.Expenses)

	insights, err := s.insights.FleetInsights(ctx, vehicles, recent)
	if !s.runner.Current(token) {
		ConflictError("requisição substituída por outra mais recente").Write(w)
		return
	}
	if err != nil {
		s.logger.WarnContext(r.Context(), "Insight generation failed",
			log.FieldError, err)
		NewJSONResponse().Body(insightsView{
			Insights: []string{advisor.FallbackInsight},
			Fallback: true,
		}).Write(w)
		return
	}

	NewJSONResponse().Body(insightsView{Insights: insights}).Write(w)
}

type receiptPayload struct {
	Image    string `json:"image"` // base64
	MimeType string `json:"mime_type"`
}

type receiptView struct {
	AmountCents int64   `json:"amount_cents"`
	Amount      string  `json:"amount"`
	Date        string  `json:"date"`
	Description string  `json:"description"`
	Provider    string  `json:"provider,omitempty"`
	Liters      float64 `json:"liters,omitempty"`
	FuelType    string  `json:"fuel_type,omitempty"`
	Confidence  float64 `json:"confidence"`
}

// handleAnalyzeReceipt extracts expense fields from a receipt image. The
// result only pre-fills the expense form; on any failure the client falls
// back to manual entry, signalled by a 502.
func (s *Server) handleAnalyzeReceipt(w http.ResponseWriter, r *http.Request) {
	if s.analyzer == nil {
		BadGatewayError("análise de recibos indisponível, preencha manualmente").Write(w)
		return
	}

	var payload receiptPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		BadRequestError("corpo da requisição inválido").Write(w)
		return
	}
	if payload.Image == "" {
		BadRequestError("imagem do recibo é obrigatória").Write(w)
		return
	}
	image, err := base64.StdEncoding.DecodeString(payload.Image)
	if err != nil {
		BadRequestError("imagem deve estar em base64").Write(w)
		return
	}
	mimeType := payload.MimeType
	if mimeType == "" {
		mimeType = "image/jpeg"
	}

	fields, err := s.analyzer.AnalyzeReceipt(r.Context(), image, mimeType)
	if err != nil {
		s.logger.WarnContext(r.Context(), "Receipt analysis failed",
			log.FieldError, err)
		BadGatewayError("não foi possível ler o recibo, preencha manualmente").Write(w)
		return
	}

	NewJSONResponse().Body(receiptView{
		AmountCents: fields.AmountCents,
		Amount:      formatReais(fields.AmountCents),
		Date:        fields.Date.Format("2006-01-02"),
		Description: fields.Description,
		Provider:    fields.Provider,
		Liters:      fields.Liters,
		FuelType:    fields.FuelType,
		Confidence:  fields.Confidence,
	}).Write(w)
}
