package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/binstack/cellpack/config"
)

func newTestMux(t *testing.T) http.Handler {
	t.Helper()
	srv := newServer(config.DefaultConfig())
	mux := http.NewServeMux()
	mux.HandleFunc("POST /start_packing", srv.handleStartPacking)
	mux.HandleFunc("GET /get_cage_state", srv.handleGetCageState)
	mux.HandleFunc("POST /decide_next_move", srv.handleDecideNextMove)
	return mux
}

func TestGetCageState_NoSessionIs404(t *testing.T) {
	mux := newTestMux(t)
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/get_cage_state", nil)
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}

func TestStartPacking_ThenGetCageState(t *testing.T) {
	mux := newTestMux(t)

	body := strings.NewReader(`{"id":"c1","dimensions":[10,10,10],"weight_limit":100}`)
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/start_packing", body)
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("start_packing status = %d, want 200, body=%s", rec.Code, rec.Body.String())
	}
	var started map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &started); err != nil {
		t.Fatalf("invalid JSON response: %v", err)
	}
	if started["status"] != "success" {
		t.Errorf("status field = %v, want success", started["status"])
	}

	rec2 := httptest.NewRecorder()
	req2 := httptest.NewRequest(http.MethodGet, "/get_cage_state", nil)
	mux.ServeHTTP(rec2, req2)
	if rec2.Code != http.StatusOK {
		t.Fatalf("get_cage_state status = %d, want 200", rec2.Code)
	}
}

func TestDecideNextMove_Success(t *testing.T) {
	mux := newTestMux(t)

	startBody := strings.NewReader(`{"id":"c1","dimensions":[10,10,10],"weight_limit":100}`)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/start_packing", startBody))
	if rec.Code != http.StatusOK {
		t.Fatalf("start_packing failed: %d", rec.Code)
	}

	decideBody := strings.NewReader(`{
		"strategy": "cp",
		"algorithm": "heuristics",
		"num_simu": 0,
		"candidate_items": [
			{"id": 1, "base_dimensions": [2,2,2], "weight": 5, "allowed_rotations": [0], "is_fragile": false}
		]
	}`)
	rec2 := httptest.NewRecorder()
	req2 := httptest.NewRequest(http.MethodPost, "/decide_next_move", decideBody)
	mux.ServeHTTP(rec2, req2)

	if rec2.Code != http.StatusOK {
		t.Fatalf("decide_next_move status = %d, want 200, body=%s", rec2.Code, rec2.Body.String())
	}
	var decided map[string]any
	if err := json.Unmarshal(rec2.Body.Bytes(), &decided); err != nil {
		t.Fatalf("invalid JSON response: %v", err)
	}
	if decided["status"] != "success" {
		t.Errorf("status field = %v, want success, body=%s", decided["status"], rec2.Body.String())
	}
}

func TestDecideNextMove_UnknownStrategyIs400(t *testing.T) {
	mux := newTestMux(t)

	startBody := strings.NewReader(`{"id":"c1","dimensions":[10,10,10],"weight_limit":100}`)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/start_packing", startBody))
	if rec.Code != http.StatusOK {
		t.Fatalf("start_packing failed: %d", rec.Code)
	}

	decideBody := strings.NewReader(`{
		"strategy": "bogus",
		"algorithm": "heuristics",
		"num_simu": 0,
		"candidate_items": [
			{"id": 1, "base_dimensions": [2,2,2], "weight": 5, "allowed_rotations": [0], "is_fragile": false}
		]
	}`)
	rec2 := httptest.NewRecorder()
	mux.ServeHTTP(rec2, httptest.NewRequest(http.MethodPost, "/decide_next_move", decideBody))

	if rec2.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec2.Code)
	}
}

func TestDecideNextMove_NoSessionIs404(t *testing.T) {
	mux := newTestMux(t)

	decideBody := strings.NewReader(`{
		"strategy": "cp",
		"algorithm": "heuristics",
		"num_simu": 0,
		"candidate_items": [
			{"id": 1, "base_dimensions": [2,2,2], "weight": 5, "allowed_rotations": [0], "is_fragile": false}
		]
	}`)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/decide_next_move", decideBody))

	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}
