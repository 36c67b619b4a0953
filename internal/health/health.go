// Package health serves liveness and readiness probes for the correction
// service.
//
//   - /healthz answers 200 while the process serves HTTP.
//   - /readyz answers 200 once a dictionary holds phrases and every
//     registered [Checker] passes. It also reports the phrase count per
//     loaded language.
package health

import (
	"context"
	"encoding/json"
	"net/http"
	"time"
)

const checkTimeout = 5 * time.Second

// Checker probes one dependency, such as the custom phrase store. Check
// returns nil when it is healthy.
type Checker struct {
	Name  string
	Check func(ctx context.Context) error
}

// Dictionary reports the loaded phrases per language.
type Dictionary interface {
	Languages() map[string]int
}

type result struct {
	Status    string            `json:"status"`
	Phrases   int               `json:"phrases"`
	Languages map[string]int    `json:"languages,omitempty"`
	Checks    map[string]string `json:"checks,omitempty"`
}

// Handler is safe for concurrent use; checkers are fixed at construction.
type Handler struct {
	dict     Dictionary
	checkers []Checker
}

// New builds the probes. dict may be nil for processes that serve no
// corrections, in which case readiness rests on the checkers alone.
func New(dict Dictionary, checkers ...Checker) *Handler {
	return &Handler{dict: dict, checkers: append([]Checker(nil), checkers...)}
}

func (h *Handler) Healthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, result{Status: "ok"})
}

// Readyz checks the dictionary first, then runs the checkers in order,
// each under its own timeout.
func (h *Handler) Readyz(w http.ResponseWriter, r *http.Request) {
	res := result{Status: "ok", Checks: make(map[string]string, len(h.checkers)+1)}

	if h.dict != nil {
		res.Languages = h.dict.Languages()
		for _, n := range res.Languages {
			res.Phrases += n
		}
		res.Checks["dictionary"] = "ok"
		if res.Phrases == 0 {
			res.Checks["dictionary"] = "fail: no phrases loaded"
			res.Status = "fail"
		}
	}

	for _, c := range h.checkers {
		ctx, cancel := context.WithTimeout(r.Context(), checkTimeout)
		err := c.Check(ctx)
		cancel()

		res.Checks[c.Name] = "ok"
		if err != nil {
			res.Checks[c.Name] = "fail: " + err.Error()
			res.Status = "fail"
		}
	}

	status := http.StatusOK
	if res.Status != "ok" {
		status = http.StatusServiceUnavailable
	}
	writeJSON(w, status, res)
}

// Register adds the probe routes to mux.
func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /healthz", h.Healthz)
	mux.HandleFunc("GET /readyz", h.Readyz)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
