package main

import (
	"encoding/json"
	"net/http"

	"github.com/rook-computer/analogclock/internal/clocktime"
)

type simTimeResponse struct {
	Frozen bool   `json:"frozen"`
	Time   string `json:"time"`
}

// SimControl pins the simulated clock to a chosen time and back.
type SimControl struct {
	source  *clocktime.OverrideSource
	startup *clocktime.Sample
}

// NewSimControl remembers startup as the state /sim/reset returns to; nil
// means the live clock.
func NewSimControl(source *clocktime.OverrideSource, startup *clocktime.Sample) *SimControl {
	return &SimControl{source: source, startup: startup}
}

func (c *SimControl) Freeze(s clocktime.Sample) { c.source.Freeze(s) }

func (c *SimControl) Release() { c.source.Release() }

func (c *SimControl) Reset() {
	if c.startup == nil {
		c.source.Release()
		return
	}
	c.source.Freeze(*c.startup)
}

func (c *SimControl) Status() simTimeResponse {
	s, frozen := c.source.Frozen()
	if !frozen {
		s = c.source.Now()
	}
	return simTimeResponse{Frozen: frozen, Time: s.String()}
}

func registerSimEndpoints(handler http.Handler, control *SimControl) {
	mux, ok := handler.(*http.ServeMux)
	if !ok {
		// Only supported when the simulator uses the default mux.
		return
	}

	mux.HandleFunc("/sim/time", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			writeSimJSON(w, http.StatusOK, control.Status())
		case http.MethodPost:
			var body struct {
				Time string `json:"time"`
			}
			if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
				writeSimError(w, http.StatusBadRequest, "invalid json")
				return
			}
			s, err := clocktime.Parse(body.Time)
			if err != nil {
				writeSimError(w, http.StatusBadRequest, err.Error())
				return
			}
			control.Freeze(s)
			writeSimJSON(w, http.StatusOK, control.Status())
		default:
			writeSimError(w, http.StatusMethodNotAllowed, "method not allowed")
		}
	})

	mux.HandleFunc("/sim/release", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			writeSimError(w, http.StatusMethodNotAllowed, "method not allowed")
			return
		}
		control.Release()
		writeSimJSON(w, http.StatusOK, control.Status())
	})

	mux.HandleFunc("/sim/reset", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			writeSimError(w, http.StatusMethodNotAllowed, "method not allowed")
			return
		}
		control.Reset()
		writeSimJSON(w, http.StatusOK, control.Status())
	})
}

func writeSimJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeSimError(w http.ResponseWriter, status int, message string) {
	writeSimJSON(w, status, map[string]any{"error": message})
}
