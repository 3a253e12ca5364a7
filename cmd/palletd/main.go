// Command palletd serves the HTTP packing-session boundary: start a
// cage, inspect its state, and decide the next placement, one session
// at a time, per process.
package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"sync/atomic"

	"github.com/binstack/cellpack/config"
	"github.com/binstack/cellpack/internal/constraint"
	"github.com/binstack/cellpack/internal/entity"
	"github.com/binstack/cellpack/internal/rng"
	"github.com/binstack/cellpack/internal/scoring"
	"github.com/binstack/cellpack/session"
)

var (
	configPath = flag.String("config", "", "Path to YAML configuration file (optional; defaults are used if empty)")
	addr       = flag.String("addr", ":8080", "HTTP listen address")
)

func main() {
	flag.Parse()

	cfg := config.DefaultConfig()
	if *configPath != "" {
		loaded, err := config.LoadConfig(*configPath)
		if err != nil {
			log.Fatalf("palletd: loading config: %v", err)
		}
		cfg = *loaded
	}

	srv := newServer(cfg)
	mux := http.NewServeMux()
	mux.HandleFunc("POST /start_packing", srv.handleStartPacking)
	mux.HandleFunc("GET /get_cage_state", srv.handleGetCageState)
	mux.HandleFunc("POST /decide_next_move", srv.handleDecideNextMove)

	log.Printf("palletd: listening on %s (strategy=%s algorithm=%s)", *addr, cfg.Strategy, cfg.Algorithm)
	if err := http.ListenAndServe(*addr, mux); err != nil {
		log.Fatalf("palletd: %v", err)
	}
}

// server holds the single process-wide session plus the config it was
// started with.
type server struct {
	cfg     config.Config
	sess    *session.Session
	counter atomic.Uint64
}

func newServer(cfg config.Config) *server {
	params := constraint.Params{
		StabilityFactor:   cfg.StabilityFactor,
		MergeMargin:       cfg.MergeMargin,
		SafetyMarginRatio: cfg.SafetyMarginRatio,
	}
	weights := scoring.Weights{WZ: cfg.WZScore}
	return &server{cfg: cfg, sess: session.New(params, weights)}
}

// startPackingRequest is the POST /start_packing body.
type startPackingRequest struct {
	ID          string     `json:"id"`
	Dimensions  [3]float64 `json:"dimensions"`
	WeightLimit float64    `json:"weight_limit"`
}

func (srv *server) handleStartPacking(w http.ResponseWriter, r *http.Request) {
	var req startPackingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	dims := entity.Dims{L: req.Dimensions[0], W: req.Dimensions[1], H: req.Dimensions[2]}
	cage := srv.sess.Start(req.ID, dims, req.WeightLimit)

	writeJSON(w, http.StatusOK, map[string]any{
		"status":     "success",
		"cage_state": cage.ToDict(),
	})
}

func (srv *server) handleGetCageState(w http.ResponseWriter, r *http.Request) {
	cage, err := srv.sess.Cage()
	if err != nil {
		writeError(w, http.StatusNotFound, "no active session")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"status":     "success",
		"cage_state": cage.ToDict(),
	})
}

// itemDTO is the wire shape of one candidate item.
type itemDTO struct {
	ID               int        `json:"id"`
	BaseDimensions   [3]float64 `json:"base_dimensions"`
	Weight           float64    `json:"weight"`
	AllowedRotations []int      `json:"allowed_rotations"`
	IsFragile        bool       `json:"is_fragile"`
}

func (dto itemDTO) toItem(measurementError float64) (entity.Item, error) {
	rotations := make([]entity.Rotation, len(dto.AllowedRotations))
	for i, r := range dto.AllowedRotations {
		rotations[i] = entity.Rotation(r)
	}
	return entity.NewItem(dto.ID,
		entity.Dims{L: dto.BaseDimensions[0], W: dto.BaseDimensions[1], H: dto.BaseDimensions[2]},
		dto.Weight, rotations, dto.IsFragile, measurementError)
}

// decideNextMoveRequest is the POST /decide_next_move body.
type decideNextMoveRequest struct {
	Strategy       string    `json:"strategy"`
	Algorithm      string    `json:"algorithm"`
	NumSimu        int       `json:"num_simu"`
	CandidateItems []itemDTO `json:"candidate_items"`
}

// normalizeAlgorithm accepts both the HTTP wire vocabulary
// ("heuristics") and the internal packer-registry name ("heuristic").
func normalizeAlgorithm(algorithm string) string {
	if algorithm == "heuristics" {
		return "heuristic"
	}
	return algorithm
}

func (srv *server) handleDecideNextMove(w http.ResponseWriter, r *http.Request) {
	var req decideNextMoveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	candidates := make([]entity.Item, 0, len(req.CandidateItems))
	for _, dto := range req.CandidateItems {
		item, err := dto.toItem(srv.cfg.MeasurementError)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		candidates = append(candidates, item)
	}
	if len(candidates) == 0 {
		writeError(w, http.StatusBadRequest, "candidate_items must be non-empty")
		return
	}

	n := srv.counter.Add(1)
	seed := rng.Derive(srv.cfg.Seed, "http-decide", rng.DecisionCounter(n)).Uint64()

	placement, err := srv.sess.Decide(req.Strategy, normalizeAlgorithm(req.Algorithm), req.NumSimu, seed, candidates)
	switch {
	case errors.Is(err, session.ErrNoSession):
		writeError(w, http.StatusNotFound, "no active session")
		return
	case errors.Is(err, session.ErrCorrupt):
		writeJSON(w, http.StatusInternalServerError, map[string]any{
			"status":  "error",
			"message": fmt.Sprintf("internal error: %v", err),
		})
		return
	case err != nil:
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if placement == nil {
		writeJSON(w, http.StatusOK, map[string]any{
			"status":  "no_move_possible",
			"message": "no feasible placement for the given candidates",
		})
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"status": "success",
		"decision": map[string]any{
			"item":          placement.Item.ID,
			"position":      []float64{placement.Position.X, placement.Position.Y, placement.Position.Z},
			"rotation_type": int(placement.Rotation),
		},
	})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	data, err := json.Marshal(body)
	if err != nil {
		log.Printf("palletd: encoding response: %v", err)
		status = http.StatusInternalServerError
		data = []byte(`{"message":"failed to encode response","status":"error"}`)
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(append(data, '\n'))
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]any{"status": "error", "message": message})
}
