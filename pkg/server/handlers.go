package server

import (
	"encoding/json"
	"net/http"

	"kestrel-hq/forge/pkg/control/analyzer"
	"kestrel-hq/forge/pkg/control/ast"
	ctrlErrors "kestrel-hq/forge/pkg/control/errors"
	"kestrel-hq/forge/pkg/control/generator"
	"kestrel-hq/forge/pkg/control/templates"
	"kestrel-hq/forge/pkg/control/validator"
)

// handleGenerate renders a posted draft to Rego source text.
func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	var draft ast.Draft
	if err := json.NewDecoder(r.Body).Decode(&draft); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid draft payload: "+err.Error())
		return
	}

	code := generator.Generate(&draft)
	if s.metrics != nil {
		s.metrics.RecordGeneration()
	}

	s.writeJSON(w, http.StatusOK, map[string]string{"rego": code})
}

// handleAnalyze classifies posted source text.
func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Source string `json:"source"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid analyze payload: "+err.Error())
		return
	}

	report := analyzer.Analyze(req.Source)
	if s.metrics != nil {
		s.metrics.RecordAnalysis(string(report.Level))
	}

	s.writeJSON(w, http.StatusOK, report)
}

// handleValidate reports a posted draft's readiness and validation errors.
func (s *Server) handleValidate(w http.ResponseWriter, r *http.Request) {
	var draft ast.Draft
	if err := json.NewDecoder(r.Body).Decode(&draft); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid draft payload: "+err.Error())
		return
	}

	type issue struct {
		Type       string `json:"type"`
		Field      string `json:"field,omitempty"`
		NodeID     string `json:"node_id,omitempty"`
		Message    string `json:"message"`
		Suggestion string `json:"suggestion,omitempty"`
	}
	resp := struct {
		Ready  bool    `json:"ready"`
		Issues []issue `json:"issues,omitempty"`
	}{
		Ready: draft.ReadyToPersist(),
	}

	if err := validator.New().Validate(&draft); err != nil {
		if list, ok := err.(*ctrlErrors.ErrorList); ok {
			for _, e := range list.Errors {
				resp.Issues = append(resp.Issues, issue{
					Type:       string(e.Type),
					Field:      e.Field,
					NodeID:     e.NodeID,
					Message:    e.Message,
					Suggestion: e.Suggestion,
				})
			}
		}
	}

	s.writeJSON(w, http.StatusOK, resp)
}

// handleResources proxies the directory resource listing, degraded on
// failure rather than erroring.
func (s *Server) handleResources(w http.ResponseWriter, r *http.Request) {
	if s.directory == nil {
		s.writeJSON(w, http.StatusOK, map[string]any{"resources": []any{}, "degraded": true, "reason": "directory not configured"})
		return
	}
	listing := s.directory.Resources(r.Context())
	s.writeJSON(w, http.StatusOK, map[string]any{
		"resources": listing.Items,
		"degraded":  listing.Degraded,
		"reason":    listing.Reason,
	})
}

// handleBouncers proxies the directory bouncer listing.
func (s *Server) handleBouncers(w http.ResponseWriter, r *http.Request) {
	if s.directory == nil {
		s.writeJSON(w, http.StatusOK, map[string]any{"bouncers": []any{}, "degraded": true, "reason": "directory not configured"})
		return
	}
	listing := s.directory.Bouncers(r.Context())
	s.writeJSON(w, http.StatusOK, map[string]any{
		"bouncers": listing.Items,
		"degraded": listing.Degraded,
		"reason":   listing.Reason,
	})
}

// handleTemplates lists the starter templates.
func (s *Server) handleTemplates(w http.ResponseWriter, _ *http.Request) {
	type entry struct {
		ID          string `json:"id"`
		Name        string `json:"name"`
		Description string `json:"description"`
	}
	var list []entry
	for _, t := range templates.All() {
		list = append(list, entry{ID: t.ID, Name: t.Name, Description: t.Description})
	}
	s.writeJSON(w, http.StatusOK, map[string]any{"templates": list})
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.logger.Warn("failed to encode response", "error", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, message string) {
	s.writeJSON(w, status, map[string]string{"error": message})
}
