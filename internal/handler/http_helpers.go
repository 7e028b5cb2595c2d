package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"pdf-fusion/internal/domain"
	apperrors "pdf-fusion/pkg/errors"

	"github.com/gorilla/mux"
)

// errorResponse is the body of every failed request. Written lists outputs
// that were kept when a split failed part way.
type errorResponse struct {
	Error   string   `json:"error"`
	Type    string   `json:"type"`
	Details string   `json:"details,omitempty"`
	Written []string `json:"written,omitempty"`
}

// warningResponse is returned with status 200 when an operation had nothing
// to do.
type warningResponse struct {
	Warning string      `json:"warning"`
	Type    string      `json:"type"`
	Result  interface{} `json:"result,omitempty"`
}

func writeJSON(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(data)
}

// writeAppError classifies err and writes it with the matching status.
// Warnings are written as a 200 response carrying result.
func writeAppError(w http.ResponseWriter, logger domain.Logger, err error, result interface{}) {
	appErr := apperrors.Classify(err)
	if appErr.IsWarning() {
		writeJSON(w, http.StatusOK, warningResponse{
			Warning: appErr.Message,
			Type:    string(appErr.Type),
			Result:  result,
		})
		return
	}

	if appErr.StatusCode >= http.StatusInternalServerError {
		logger.Error("Request failed", err, "type", appErr.Type)
	}

	resp := errorResponse{
		Error:   appErr.Message,
		Type:    string(appErr.Type),
		Details: appErr.Details,
	}
	if split, ok := result.(*domain.SplitResult); ok && split != nil {
		resp.Written = split.Files
	}
	writeJSON(w, appErr.StatusCode, resp)
}

// notFound answers requests that match no route
func notFound(w http.ResponseWriter, r *http.Request) {
	appErr := apperrors.NewNotFoundError("No route for " + r.Method + " " + r.URL.Path)
	writeJSON(w, appErr.StatusCode, errorResponse{
		Error: appErr.Message,
		Type:  string(appErr.Type),
	})
}

// decodeJSON reads the request body into dst
func decodeJSON(r *http.Request, dst interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return apperrors.NewInvalidParameterError("Invalid request body", err.Error())
	}
	return nil
}

// indexVar reads the zero-based {index} route variable
func indexVar(r *http.Request) (int, error) {
	raw := mux.Vars(r)["index"]
	index, err := strconv.Atoi(raw)
	if err != nil || index < 0 {
		return 0, &domain.InvalidParameterError{Param: "index", Value: raw, Message: "must be a non-negative integer"}
	}
	return index, nil
}

// queryInt reads an optional integer query parameter
func queryInt(r *http.Request, name string, defaultValue int) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return defaultValue, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, &domain.InvalidParameterError{Param: name, Value: raw, Message: "not a number"}
	}
	return value, nil
}
