package server

import (
	_ "embed"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/alexanderramin/taskflow/internal/domain"
	"github.com/alexanderramin/taskflow/internal/planner"
	"go.uber.org/zap"
)

//go:embed index.html
var indexHTML []byte

const planSourceHeader = "X-Plan-Source"

type planRequest struct {
	Input string `json:"input"`
}

type planResponse struct {
	Success bool         `json:"success"`
	Plan    *domain.Plan `json:"plan"`
}

type savePlanRequest struct {
	Plan json.RawMessage `json:"plan"`
	Date string          `json:"date"`
}

type messageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type loadPlanResponse struct {
	Success bool           `json:"success"`
	Plan    map[string]any `json:"plan"`
}

type errorResponse struct {
	Error string `json:"error"`
}

type healthResponse struct {
	Status     string `json:"status"`
	LLMEnabled bool   `json:"llm_enabled"`
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write(indexHTML)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{Status: "ok", LLMEnabled: s.llmEnabled})
}

func (s *Server) handlePlan(w http.ResponseWriter, r *http.Request) {
	var req planRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}
	if strings.TrimSpace(req.Input) == "" {
		writeError(w, http.StatusBadRequest, "No input provided")
		return
	}

	res, err := s.planner.CreateDailyPlan(r.Context(), req.Input)
	if err != nil {
		if errors.Is(err, planner.ErrEmptyInput) {
			writeError(w, http.StatusBadRequest, "No input provided")
			return
		}
		s.logger.Error("creating plan", zap.String("request_id", RequestID(r.Context())), zap.Error(err))
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	w.Header().Set(planSourceHeader, string(res.Source))
	writeJSON(w, http.StatusOK, planResponse{Success: true, Plan: res.Plan})
}

// handleSavePlan acknowledges the plan without storing it.
func (s *Server) handleSavePlan(w http.ResponseWriter, r *http.Request) {
	var req savePlanRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}
	s.logger.Debug("save-plan is not persisted", zap.String("date", req.Date))
	writeJSON(w, http.StatusOK, messageResponse{Success: true, Message: "Plan saved successfully"})
}

// handleLoadPlan always answers with an empty plan; nothing is stored.
func (s *Server) handleLoadPlan(w http.ResponseWriter, r *http.Request) {
	s.logger.Debug("load-plan has nothing stored", zap.String("date", r.URL.Query().Get("date")))
	writeJSON(w, http.StatusOK, loadPlanResponse{Success: true, Plan: map[string]any{}})
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	return dec.Decode(v)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}
