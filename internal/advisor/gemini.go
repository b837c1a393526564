package advisor

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"net/http"
	"strings"
	"time"

	"frota/internal/core"
)

// GeminiClient calls a Gemini-compatible generateContent endpoint. Both
// capabilities ask for application/json output and parse the first
// candidate's text as the structured payload.
type GeminiClient struct {
	httpClient *http.Client
	baseURL    string
	model      string
	apiKey     string
}

// Ensure interface conformance
var (
	_ ReceiptAnalyzer  = (*GeminiClient)(nil)
	_ InsightGenerator = (*GeminiClient)(nil)
)

var ErrAdvisorUnavailable = errors.New("advisor service unavailable")

func NewGeminiClient(baseURL, model, apiKey string, timeout time.Duration) *GeminiClient {
	if timeout <= 0 {
		timeout = 8 * time.Second
	}
	return &GeminiClient{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    strings.TrimRight(baseURL, "/"),
		model:      model,
		apiKey:     apiKey,
	}
}

// Wire shapes for the generateContent call.
type (
	generateRequest struct {
		Contents         []content         `json:"contents"`
		GenerationConfig *generationConfig `json:"generationConfig,omitempty"`
	}

	content struct {
		Parts []part `json:"parts"`
	}

	part struct {
		Text       string      `json:"text,omitempty"`
		InlineData *inlineData `json:"inline_data,omitempty"`
	}

	inlineData struct {
		MimeType string `json:"mime_type"`
		Data     string `json:"data"` // base64
	}

	generationConfig struct {
		ResponseMimeType string `json:"response_mime_type,omitempty"`
	}

	generateResponse struct {
		Candidates []struct {
			Content struct {
				Parts []struct {
					Text string `json:"text"`
				} `json:"parts"`
			} `json:"content"`
		} `json:"candidates"`
	}

	receiptPayload struct {
		Amount      float64 `json:"amount"`
		Date        string  `json:"date"`
		Description string  `json:"description"`
		Provider    string  `json:"provider"`
		Liters      float64 `json:"liters"`
		FuelType    string  `json:"fuelType"`
		Confidence  float64 `json:"confidence"`
	}
)

const receiptPrompt = `Analise este comprovante fiscal de despesa veicular.
Identifique o valor total, a data (formato YYYY-MM-DD), uma descrição curta,
o nome do estabelecimento e, se for combustível, a quantidade de litros e o
tipo de combustível. Retorne APENAS um JSON com os campos amount (número),
date, description, provider, liters, fuelType e confidence (0 a 1).`

// AnalyzeReceipt extracts suggested expense fields from a receipt image.
// Errors here are advisory: the expense form stays usable for manual entry.
func (c *GeminiClient) AnalyzeReceipt(ctx context.Context, image []byte, mimeType string) (ReceiptFields, error) {
	if len(image) == 0 {
		return ReceiptFields{}, fmt.Errorf("%w: empty image", ErrAdvisorUnavailable)
	}
	if mimeType == "" {
		mimeType = "image/jpeg"
	}

	req := generateRequest{
		Contents: []content{{Parts: []part{
			{InlineData: &inlineData{MimeType: mimeType, Data: base64.StdEncoding.EncodeToString(image)}},
			{Text: receiptPrompt},
		}}},
		GenerationConfig: &generationConfig{ResponseMimeType: "application/json"},
	}

	text, err := c.generate(ctx, req)
	if err != nil {
		return ReceiptFields{}, err
	}

	var payload receiptPayload
	if err := json.Unmarshal([]byte(text), &payload); err != nil {
		return ReceiptFields{}, fmt.Errorf("%w: parse receipt payload: %v", ErrAdvisorUnavailable, err)
	}
	if payload.Amount <= 0 || payload.Date == "" {
		return ReceiptFields{}, fmt.Errorf("%w: incomplete receipt payload", ErrAdvisorUnavailable)
	}

	date, err := time.Parse("2006-01-02", payload.Date)
	if err != nil {
		return ReceiptFields{}, fmt.Errorf("%w: bad receipt date %q", ErrAdvisorUnavailable, payload.Date)
	}

	return ReceiptFields{
		AmountCents: int64(math.Round(payload.Amount * 100)),
		Date:        core.Date{Time: date},
		Description: payload.Description,
		Provider:    payload.Provider,
		Liters:      payload.Liters,
		FuelType:    payload.FuelType,
		Confidence:  payload.Confidence,
	}, nil
}

// FleetInsights asks for short cost-saving suggestions over the given
// summaries. The caller substitutes FallbackInsight on error.
func (c *GeminiClient) FleetInsights(ctx context.Context, vehicles []VehicleSummary, recent []ExpenseSummary) ([]string, error) {
	vehicleJSON, err := json.Marshal(vehicles)
	if err != nil {
		return nil, fmt.Errorf("marshal vehicle summaries: %w", err)
	}
	expenseJSON, err := json.Marshal(recent)
	if err != nil {
		return nil, fmt.Errorf("marshal expense summaries: %w", err)
	}

	prompt := fmt.Sprintf(`Atue como um gestor de frotas sênior. Analise os dados
brutos da frota abaixo e forneça 3 insights estratégicos curtos e acionáveis
para economizar dinheiro ou melhorar a eficiência.

Veículos: %s
Despesas recentes: %s

Retorne APENAS um JSON array de strings.`, vehicleJSON, expenseJSON)

	req := generateRequest{
		Contents:         []content{{Parts: []part{{Text: prompt}}}},
		GenerationConfig: &generationConfig{ResponseMimeType: "application/json"},
	}

	text, err := c.generate(ctx, req)
	if err != nil {
		return nil, err
	}

	var insights []string
	if err := json.Unmarshal([]byte(text), &insights); err != nil {
		return nil, fmt.Errorf("%w: parse insights payload: %v", ErrAdvisorUnavailable, err)
	}
	if len(insights) == 0 {
		return nil, fmt.Errorf("%w: empty insights payload", ErrAdvisorUnavailable)
	}
	return insights, nil
}

func (c *GeminiClient) generate(ctx context.Context, reqBody generateRequest) (string, error) {
	body, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent", c.baseURL, c.model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", c.apiKey)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrAdvisorUnavailable, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", fmt.Errorf("%w: read response: %v", ErrAdvisorUnavailable, err)
	}

	if resp.StatusCode != http.StatusOK {
		slog.WarnContext(ctx, "Advisor call failed",
			"status", resp.StatusCode,
			"model", c.model,
			"duration_ms", time.Since(start).Milliseconds())
		return "", fmt.Errorf("%w: status %d", ErrAdvisorUnavailable, resp.StatusCode)
	}

	var gr generateResponse
	if err := json.Unmarshal(raw, &gr); err != nil {
		return "", fmt.Errorf("%w: decode response: %v", ErrAdvisorUnavailable, err)
	}
	if len(gr.Candidates) == 0 || len(gr.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("%w: no candidates", ErrAdvisorUnavailable)
	}

	text := strings.TrimSpace(gr.Candidates[0].Content.Parts[0].Text)
	if text == "" {
		return "", fmt.Errorf("%w: empty candidate text", ErrAdvisorUnavailable)
	}
	return text, nil
}
