package advisor

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func candidateResponse(text string) string {
	body, _ := json.Marshal(map[string]any{
		"candidates": []map[string]any{
			{"content": map[string]any{"parts": []map[string]string{{"text": text}}}},
		},
	})
	return string(body)
}

func testClient(t *testing.T, handler http.HandlerFunc) *GeminiClient {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewGeminiClient(srv.URL, "gemini-2.5-flash", "test-key", 2*time.Second)
}

func TestAnalyzeReceipt(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1beta/models/gemini-2.5-flash:generateContent" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if r.Header.Get("x-goog-api-key") != "test-key" {
			t.Errorf("missing api key header")
		}
		var req generateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode request: %v", err)
		}
		if len(req.Contents) != 1 || req.Contents[0].Parts[0].InlineData == nil {
			t.Errorf("expected inline image part, got %+v", req.Contents)
		}
		w.Write([]byte(candidateResponse(`{
			"amount": 250.00, "date": "2024-03-01", "description": "Abastecimento",
			"provider": "Posto Shell", "liters": 45, "fuelType": "gasoline", "confidence": 0.92
		}`)))
	})

	fields, err := client.AnalyzeReceipt(context.Background(), []byte("fake-jpeg"), "image/jpeg")
	if err != nil {
		t.Fatalf("analyze receipt: %v", err)
	}
	if fields.AmountCents != 25000 {
		t.Fatalf("expected 25000 cents, got %d", fields.AmountCents)
	}
	if fields.Provider != "Posto Shell" || fields.Liters != 45 || fields.Confidence != 0.92 {
		t.Fatalf("unexpected fields: %+v", fields)
	}
	if !fields.Date.In(2024, 3) {
		t.Fatalf("unexpected date: %v", fields.Date)
	}
}

func TestAnalyzeReceiptRejectsIncompletePayload(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(candidateResponse(`{"description": "sem valor"}`)))
	})
	_, err := client.AnalyzeReceipt(context.Background(), []byte("img"), "")
	if !errors.Is(err, ErrAdvisorUnavailable) {
		t.Fatalf("expected ErrAdvisorUnavailable, got %v", err)
	}
}

func TestAnalyzeReceiptEmptyImage(t *testing.T) {
	client := NewGeminiClient("http://localhost:0", "m", "k", time.Second)
	if _, err := client.AnalyzeReceipt(context.Background(), nil, ""); !errors.Is(err, ErrAdvisorUnavailable) {
		t.Fatalf("expected ErrAdvisorUnavailable, got %v", err)
	}
}

func TestFleetInsights(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		var req generateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode request: %v", err)
		}
		w.Write([]byte(candidateResponse(`["Reveja o consumo do caminhão", "Negocie seguro da frota", "Concentre abastecimentos"]`)))
	})

	insights, err := client.FleetInsights(context.Background(),
		[]VehicleSummary{{Model: "FH 540", Km: 320000, Status: "maintenance"}},
		[]ExpenseSummary{{Category: "fuel", Amount: 250, Date: "2024-03-01"}})
	if err != nil {
		t.Fatalf("fleet insights: %v", err)
	}
	if len(insights) != 3 {
		t.Fatalf("expected 3 insights, got %d", len(insights))
	}
}

func TestFleetInsightsServerError(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "quota exceeded", http.StatusTooManyRequests)
	})
	_, err := client.FleetInsights(context.Background(), nil, nil)
	if !errors.Is(err, ErrAdvisorUnavailable) {
		t.Fatalf("expected ErrAdvisorUnavailable, got %v", err)
	}
}

func TestFleetInsightsCancelled(t *testing.T) {
	started := make(chan struct{})
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		// Drain the body so the server's background read can observe the
		// client disconnect and cancel r.Context(); otherwise Close hangs.
		io.Copy(io.Discard, r.Body)
		close(started)
		<-r.Context().Done()
	})

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		<-started
		cancel()
	}()

	_, err := client.FleetInsights(ctx, nil, nil)
	if !errors.Is(err, ErrAdvisorUnavailable) {
		t.Fatalf("expected ErrAdvisorUnavailable on cancellation, got %v", err)
	}
}
