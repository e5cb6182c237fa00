package api

import (
	"encoding/json"
	"errors"
	"mime"
	"net/http"

	"color-palette/internal/colorutil"
	"color-palette/internal/metrics"
	"color-palette/internal/ui"
)

const maxCopyBytes = 64 << 10

// PaletteResponse is the JSON response for /api/palette
type PaletteResponse struct {
	Colors []string `json:"colors"`
	Spread float64  `json:"spread"`
}

// ContrastResponse is the JSON response for /api/contrast
type ContrastResponse struct {
	Ratio float64 `json:"ratio"`
}

// CopyRequest is the body of POST /api/copy
type CopyRequest struct {
	Text string `json:"text"`
}

// CopyResponse is the JSON response for /api/copy
type CopyResponse struct {
	Copied bool `json:"copied"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		ui.LogStatus("error", "Encode response: "+err.Error())
	}
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, errorResponse{Error: err.Error()})
}

// badColor answers a malformed color input and counts it.
func badColor(w http.ResponseWriter, operation string, err error) {
	metrics.InvalidColors.WithLabelValues(operation).Inc()
	writeError(w, http.StatusBadRequest, err)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	w.Write([]byte("ok"))
}

func (s *Server) handleRandom(w http.ResponseWriter, r *http.Request) {
	metrics.ColorsGenerated.Inc()
	writeJSON(w, http.StatusOK, map[string]string{"color": colorutil.RandomColor(s.source)})
}

func (s *Server) handlePalette(w http.ResponseWriter, r *http.Request) {
	p, err := colorutil.HarmoniousPalette(s.source, r.URL.Query().Get("base"))
	if err != nil {
		badColor(w, "palette", err)
		return
	}
	metrics.PalettesGenerated.Inc()

	spread, err := p.Spread()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, PaletteResponse{Colors: p[:], Spread: spread})
}

func (s *Server) handleColor(w http.ResponseWriter, r *http.Request) {
	d, err := colorutil.Describe(r.URL.Query().Get("hex"))
	if err != nil {
		badColor(w, "describe", err)
		return
	}
	writeJSON(w, http.StatusOK, d)
}

func (s *Server) handleContrast(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	ratio, err := colorutil.Contrast(q.Get("fg"), q.Get("bg"))
	if err != nil {
		badColor(w, "contrast", err)
		return
	}
	writeJSON(w, http.StatusOK, ContrastResponse{Ratio: ratio})
}

func (s *Server) handleAccessibility(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	v, err := colorutil.CheckAccessibility(q.Get("fg"), q.Get("bg"))
	if err != nil {
		badColor(w, "accessibility", err)
		return
	}
	metrics.AccessibilityChecks.WithLabelValues(string(v.Level)).Inc()
	writeJSON(w, http.StatusOK, v)
}

// handleCopy only takes application/json, which browsers cannot send
// cross-origin without a CORS preflight.
func (s *Server) handleCopy(w http.ResponseWriter, r *http.Request) {
	if mt, _, err := mime.ParseMediaType(r.Header.Get("Content-Type")); err != nil || mt != "application/json" {
		writeError(w, http.StatusUnsupportedMediaType, errors.New("content type must be application/json"))
		return
	}

	var req CopyRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxCopyBytes)).Decode(&req); err != nil {
		var tooBig *http.MaxBytesError
		if errors.As(err, &tooBig) {
			writeError(w, http.StatusRequestEntityTooLarge, err)
			return
		}
		writeError(w, http.StatusBadRequest, errors.New("invalid JSON body"))
		return
	}

	copied := colorutil.CopyToClipboard(r.Context(), s.sink, req.Text)
	metrics.ObserveClipboard(copied)
	writeJSON(w, http.StatusOK, CopyResponse{Copied: copied})
}
