package server

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"

	"github.com/michaelbrown/casegen/internal/sandbox"
)

var validate = validator.New()

// --- JSON helpers ---

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func decodeJSON(r *http.Request, v any) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(v)
}

type runTestCasesRequest struct {
	CodeFile string `json:"codeFile" validate:"required"`
	Language string `json:"language" validate:"required"`
}

type runTestCasesResponse struct {
	FailedTests []string `json:"failedTests"`
	Status      string   `json:"status,omitempty"`
}

const (
	msgMissingInput  = "Program Code File path or language not provided."
	msgInternalError = "Internal Server Error"
)

func (s *Server) handleRunTestCases(w http.ResponseWriter, r *http.Request) {
	var req runTestCasesRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, msgMissingInput)
		return
	}
	if err := validate.Struct(&req); err != nil {
		writeError(w, http.StatusBadRequest, msgMissingInput)
		return
	}

	outcome, err := s.runner.RunFile(r.Context(), req.CodeFile, req.Language)
	if err != nil {
		log.Printf("[%s] Error during test case generation or execution: %v", middleware.GetReqID(r.Context()), err)
		writeError(w, http.StatusInternalServerError, msgInternalError)
		return
	}

	resp := runTestCasesResponse{FailedTests: outcome.FailedTests}
	if resp.FailedTests == nil {
		resp.FailedTests = []string{}
	}
	if outcome.Status == sandbox.StatusUnsupported {
		resp.Status = string(sandbox.StatusUnsupported)
	}
	writeJSON(w, http.StatusOK, resp)
}
