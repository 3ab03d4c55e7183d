package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/meltforce/fitrec/internal/advisor"
	"github.com/meltforce/fitrec/internal/apperr"
	"github.com/meltforce/fitrec/internal/catalog"
	"github.com/meltforce/fitrec/internal/recommend"
)

const maxBodyBytes = 1 << 20

type recommendRequest struct {
	WorkoutType     string `json:"workoutType"`
	DifficultyLevel string `json:"difficultyLevel"`
}

type recommendResponse struct {
	Success         bool                    `json:"success"`
	Recommendations []catalog.WorkoutRecord `json:"recommendations"`
}

type errorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

// metricsRequest accepts numbers or numeric strings, as form inputs are
// often posted as strings.
type metricsRequest struct {
	Age    number `json:"age"`
	Height number `json:"height"`
	Weight number `json:"weight"`
}

type number float64

func (n *number) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*n = 0
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		s = strings.TrimSpace(s)
		if s == "" {
			*n = 0
			return nil
		}
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return fmt.Errorf("not a number: %q", s)
		}
		*n = number(v)
		return nil
	}
	var v float64
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	*n = number(v)
	return nil
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"status": "ok", "workouts": s.svc.Catalog().Len()})
}

func (s *Server) handleRecommend(w http.ResponseWriter, r *http.Request) {
	var req recommendRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	records, err := s.svc.Recommend(r.Context(), req.WorkoutType, req.DifficultyLevel)
	if err != nil {
		s.writeAppError(w, r, err, recommend.MsgInternalFilter)
		return
	}
	writeJSON(w, http.StatusOK, recommendResponse{Success: true, Recommendations: records})
}

func (s *Server) handleRecommendations(w http.ResponseWriter, r *http.Request) {
	var req metricsRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	res, err := s.svc.Advise(r.Context(), advisor.Metrics{
		Age:    float64(req.Age),
		Height: float64(req.Height),
		Weight: float64(req.Weight),
	})
	if err != nil {
		s.writeAppError(w, r, err, recommend.MsgAdvisorFailed)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleCatalog(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"catalog": s.svc.Catalog().Buckets(),
	})
}

func (s *Server) handleCatalogTypes(w http.ResponseWriter, r *http.Request) {
	types, err := s.svc.ListTypes(r.Context())
	if err != nil {
		s.writeAppError(w, r, err, "Internal server error")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"types":   types,
	})
}

func (s *Server) handleNotFound(w http.ResponseWriter, r *http.Request) {
	writeError(w, http.StatusNotFound, "Not found")
}

// writeAppError maps err to a status and client message. Causes are logged,
// never sent.
func (s *Server) writeAppError(w http.ResponseWriter, r *http.Request, err error, fallback string) {
	status := apperr.Status(err)
	if status >= http.StatusInternalServerError {
		s.log.Error("request failed",
			"path", r.URL.Path,
			"request_id", requestIDFromContext(r.Context()),
			"error", err,
		)
	}
	writeError(w, status, apperr.Message(err, fallback))
}

// decodeBody decodes a JSON body into v. An empty body leaves v zero.
func decodeBody(w http.ResponseWriter, r *http.Request, v any) error {
	err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(v)
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Success: false, Error: message})
}

// writeJSON encodes v before writing the status, so a value that cannot be
// encoded becomes a 500 envelope instead of an empty 200.
func writeJSON(w http.ResponseWriter, status int, v any) {
	body, err := json.Marshal(v)
	if err != nil {
		status = http.StatusInternalServerError
		body, _ = json.Marshal(errorResponse{Success: false, Error: "Internal server error"})
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(append(body, '\n'))
}
