package web

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/rook-computer/analogclock/internal/clock"
	"github.com/rook-computer/analogclock/internal/render"
)

const maxQRCodeSizePx = 1024

type apiError struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

type okResponse struct {
	OK bool `json:"ok"`
}

func apiV1Router(deps APIV1Deps) http.Handler {
	deps = deps.withDefaults()
	mux := http.NewServeMux()
	mux.HandleFunc("/state", func(w http.ResponseWriter, r *http.Request) { handleState(w, r, deps) })
	mux.HandleFunc("/start", func(w http.ResponseWriter, r *http.Request) { handleStart(w, r, deps) })
	mux.HandleFunc("/stop", func(w http.ResponseWriter, r *http.Request) { handleStop(w, r, deps) })
	mux.HandleFunc("/clock.png", func(w http.ResponseWriter, r *http.Request) { handleClockPNG(w, r, deps) })
	mux.HandleFunc("/qr.png", func(w http.ResponseWriter, r *http.Request) { handleQRCode(w, r, deps) })
	return mux
}

func handleState(w http.ResponseWriter, r *http.Request, deps APIV1Deps) {
	if r.Method != http.MethodGet {
		writeAPIError(w, http.StatusMethodNotAllowed, "method_not_allowed", "method not allowed")
		return
	}
	writeJSON(w, http.StatusOK, deps.State.Snapshot())
}

func handleStart(w http.ResponseWriter, r *http.Request, deps APIV1Deps) {
	if r.Method != http.MethodPost {
		writeAPIError(w, http.StatusMethodNotAllowed, "method_not_allowed", "method not allowed")
		return
	}
	if err := deps.Control.Start(); err != nil {
		switch {
		case errors.Is(err, clock.ErrStopped):
			writeAPIError(w, http.StatusConflict, "clock_stopped", err.Error())
		case errors.Is(err, errNotConfigured):
			writeAPIError(w, http.StatusNotImplemented, "not_implemented", "clock control not configured")
		default:
			writeAPIError(w, http.StatusInternalServerError, "start_failed", err.Error())
		}
		return
	}
	deps.Logger.Infof("web", "clock started via api")
	writeJSON(w, http.StatusOK, okResponse{OK: true})
}

func handleStop(w http.ResponseWriter, r *http.Request, deps APIV1Deps) {
	if r.Method != http.MethodPost {
		writeAPIError(w, http.StatusMethodNotAllowed, "method_not_allowed", "method not allowed")
		return
	}
	deps.Control.Stop()
	deps.Logger.Infof("web", "clock stopped via api")
	writeJSON(w, http.StatusOK, okResponse{OK: true})
}

func handleClockPNG(w http.ResponseWriter, r *http.Request, deps APIV1Deps) {
	if r.Method != http.MethodGet {
		writeAPIError(w, http.StatusMethodNotAllowed, "method_not_allowed", "method not allowed")
		return
	}
	var buf bytes.Buffer
	if err := render.EncodePNG(&buf, deps.Frames); err != nil {
		if errors.Is(err, render.ErrNoFrame) {
			writeAPIError(w, http.StatusServiceUnavailable, "no_frame", err.Error())
			return
		}
		writeAPIError(w, http.StatusInternalServerError, "encode_failed", err.Error())
		return
	}
	writePNG(w, buf.Bytes())
}

func handleQRCode(w http.ResponseWriter, r *http.Request, deps APIV1Deps) {
	if r.Method != http.MethodGet {
		writeAPIError(w, http.StatusMethodNotAllowed, "method_not_allowed", "method not allowed")
		return
	}
	size := 0
	if raw := r.URL.Query().Get("size"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 || parsed > maxQRCodeSizePx {
			writeAPIError(w, http.StatusBadRequest, "invalid_size", "size must be between 1 and "+strconv.Itoa(maxQRCodeSizePx))
			return
		}
		size = parsed
	}

	payload := deps.State.Snapshot().Network.URL
	if payload == "" {
		payload = "http://" + r.Host + "/"
	}
	data, err := render.QRCodePNG(payload, size)
	if err != nil {
		writeAPIError(w, http.StatusInternalServerError, "qr_failed", err.Error())
		return
	}
	writePNG(w, data)
}

func writePNG(w http.ResponseWriter, data []byte) {
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "no-store")
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeAPIError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, apiError{Error: code, Message: message})
}
