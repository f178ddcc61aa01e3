package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/reeflab/reefplan/pkg/pipeline"
	"github.com/reeflab/reefplan/pkg/scenario"
)

func testServer(t *testing.T) *Server {
	t.Helper()
	return New(pipeline.NewRunner(nil, nil, nil), nil)
}

func planBody(t *testing.T) *bytes.Buffer {
	t.Helper()
	s := scenario.Default()
	for i := range s.Forms {
		s.Forms[i].Supply = 40
	}
	s.Options.Seed = 7

	body, err := json.Marshal(pipeline.Options{
		Scenario: *s,
		Formats:  []string{pipeline.FormatJSON, pipeline.FormatDOT},
	})
	if err != nil {
		t.Fatalf("marshal request: %v", err)
	}
	return bytes.NewBuffer(body)
}

func TestHealth(t *testing.T) {
	srv := httptest.NewServer(testServer(t).Router())
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/healthz")
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d, want %d", resp.StatusCode, http.StatusOK)
	}
}

func TestVersion(t *testing.T) {
	srv := httptest.NewServer(testServer(t).Router())
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/version")
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	var body map[string]string
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if body["version"] == "" {
		t.Error("version missing from response")
	}
}

func TestPlan(t *testing.T) {
	srv := httptest.NewServer(testServer(t).Router())
	defer srv.Close()

	resp, err := http.Post(srv.URL+"/api/plan", "application/json", planBody(t))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want %d", resp.StatusCode, http.StatusOK)
	}

	var result pipeline.Result
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if result.Allocation == nil || result.Allocation.Total == 0 {
		t.Error("expected a non-empty allocation")
	}
	if result.Layout == nil {
		t.Fatal("expected a layout")
	}
	if len(result.Artifacts) != 2 {
		t.Errorf("artifacts = %d, want 2", len(result.Artifacts))
	}
}

func TestPlanInvalidBody(t *testing.T) {
	srv := httptest.NewServer(testServer(t).Router())
	defer srv.Close()

	resp, err := http.Post(srv.URL+"/api/plan", "application/json", bytes.NewBufferString("{not json"))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", resp.StatusCode, http.StatusBadRequest)
	}
}

func TestPlanInvalidScenario(t *testing.T) {
	srv := httptest.NewServer(testServer(t).Router())
	defer srv.Close()

	body, _ := json.Marshal(pipeline.Options{Formats: []string{pipeline.FormatJSON}})
	resp, err := http.Post(srv.URL+"/api/plan", "application/json", bytes.NewBuffer(body))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", resp.StatusCode, http.StatusBadRequest)
	}
}

func TestSolve(t *testing.T) {
	srv := httptest.NewServer(testServer(t).Router())
	defer srv.Close()

	resp, err := http.Post(srv.URL+"/api/solve", "application/json", planBody(t))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want %d", resp.StatusCode, http.StatusOK)
	}

	var body struct {
		Allocation struct {
			Total int `json:"total"`
		} `json:"allocation"`
		Benchmarks []json.RawMessage `json:"benchmarks"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if body.Allocation.Total == 0 {
		t.Error("expected a non-zero total")
	}
	if len(body.Benchmarks) == 0 {
		t.Error("expected benchmarks")
	}
}
