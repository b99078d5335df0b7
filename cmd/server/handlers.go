package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/nguyentantai21042004/textlab/internal/analysis"
	"github.com/nguyentantai21042004/textlab/internal/logger"
	"github.com/nguyentantai21042004/textlab/internal/ome"
	"github.com/nguyentantai21042004/textlab/internal/prototype"
	apperrors "github.com/nguyentantai21042004/textlab/pkg/errors"
)

const maxBodyBytes = 10 << 20

// ---- request / response types -------------------------------------------

type omeRequest struct {
	Tokens *[]string `json:"tokens"`
	Text   *string   `json:"text"`
}

type zonesRequest struct {
	Ranked   []string           `json:"ranked"`
	OME      map[string]float64 `json:"ome"`
	Disjoint bool               `json:"disjoint"`
}

type analyzeRequest struct {
	Text   string `json:"text"`
	Mode   string `json:"mode"`
	Source string `json:"source"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// ---- helpers ------------------------------------------------------------

type handlers struct {
	runner      analysis.Runner
	defaultMode analysis.Mode
	disjoint    bool
	logger      logger.Logger
}

// writeJSON encodes v before touching the response so an encoding failure
// still reaches the client as a 500.
func (h *handlers) writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(v); err != nil {
		h.logger.Error(r.Context(), "encode error: %v", err)
		buf.Reset()
		status = http.StatusInternalServerError
		_ = json.NewEncoder(&buf).Encode(errorResponse{Error: "internal error: response could not be encoded"})
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(buf.Bytes()); err != nil {
		h.logger.Warn(r.Context(), "write response: %v", err)
	}
}

func (h *handlers) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := apperrors.HTTPStatusCode(err)
	if status >= http.StatusInternalServerError {
		h.logger.Error(r.Context(), "%s %s: %v", r.Method, r.URL.Path, err)
	}
	h.writeJSON(w, r, status, errorResponse{Error: err.Error()})
}

// decode reads a JSON body into v. Syntax errors are invalid input; values
// of the wrong JSON type are a container shape mismatch.
func decode(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(v); err != nil {
		var typeErr *json.UnmarshalTypeError
		switch {
		case errors.As(err, &typeErr):
			return fmt.Errorf("field %q: expected %s, got %s: %w", typeErr.Field, typeErr.Type, typeErr.Value, apperrors.ErrTypeMismatch)
		case errors.Is(err, io.EOF):
			return fmt.Errorf("empty request body: %w", apperrors.ErrInvalidInput)
		default:
			return fmt.Errorf("malformed JSON: %v: %w", err, apperrors.ErrInvalidInput)
		}
	}
	return nil
}

func requireMethod(h *handlers, w http.ResponseWriter, r *http.Request, method string) bool {
	if r.Method == method {
		return true
	}
	w.Header().Set("Allow", method)
	h.writeJSON(w, r, http.StatusMethodNotAllowed, errorResponse{Error: method + " required"})
	return false
}

// ---- handlers -----------------------------------------------------------

func (h *handlers) handleOME(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(h, w, r, http.MethodPost) {
		return
	}
	var req omeRequest
	if err := decode(w, r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}

	var (
		res ome.Result
		err error
	)
	switch {
	case req.Tokens != nil:
		res, err = ome.Compute(*req.Tokens)
	case req.Text != nil:
		res, err = ome.ComputeText(*req.Text)
	default:
		err = fmt.Errorf("body needs 'tokens' or 'text': %w", apperrors.ErrInvalidInput)
	}
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, r, http.StatusOK, res)
}

func (h *handlers) handleZones(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(h, w, r, http.MethodPost) {
		return
	}
	var req zonesRequest
	if err := decode(w, r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}
	zones, err := prototype.ClassifyWith(req.Ranked, req.OME, prototype.Options{Disjoint: req.Disjoint || h.disjoint})
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, r, http.StatusOK, zones)
}

func (h *handlers) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(h, w, r, http.MethodPost) {
		return
	}
	var req analyzeRequest
	if err := decode(w, r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}
	if strings.TrimSpace(req.Text) == "" {
		h.writeError(w, r, fmt.Errorf("'text' is required: %w", apperrors.ErrEmptyInput))
		return
	}
	mode := h.defaultMode
	if req.Mode != "" {
		m, err := analysis.ParseMode(req.Mode)
		if err != nil {
			h.writeError(w, r, err)
			return
		}
		mode = m
	}
	source := req.Source
	if source == "" {
		source = "api"
	}

	rep, err := h.runner.RunText(r.Context(), source, req.Text, mode)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, r, http.StatusOK, rep)
}

func (h *handlers) handleHealth(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(h, w, r, http.MethodGet) {
		return
	}
	h.writeJSON(w, r, http.StatusOK, map[string]string{"status": "ok"})
}
