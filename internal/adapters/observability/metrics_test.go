package observability_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"clientvoice/internal/adapters/observability"
)

func TestMetricsRegistryAndHandler(t *testing.T) {
	reg := observability.InitRegistry()

	// record samples so the vectors are exported
	observability.ObserveHTTP("/public/{slug}", "GET", 200, 12*time.Millisecond)
	observability.ObserveFlow("redirect")
	observability.ObserveReviewStored(2)

	mh := observability.MetricsHandler(reg)
	req := httptest.NewRequest("GET", "/metrics", nil)
	rr := httptest.NewRecorder()
	mh.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("metrics status: %d", rr.Code)
	}
	body, _ := io.ReadAll(rr.Body)
	out := string(body)
	for _, name := range []string{
		"clientvoice_http_requests_total",
		"clientvoice_review_flow_events_total",
		"clientvoice_reviews_stored_total",
	} {
		if !strings.Contains(out, name) {
			t.Fatalf("expected %s in output", name)
		}
	}
}

func TestLabelErr(t *testing.T) {
	if got := observability.LabelErr(nil); got != "none" {
		t.Fatalf("LabelErr(nil) = %q", got)
	}
	if got := observability.LabelErr(io.EOF); got != "*errors.errorString" {
		t.Fatalf("LabelErr(io.EOF) = %q", got)
	}
}
