package api

import (
	"encoding/json"
	"net/http"

	"github.com/THGoZ/lauch-shifts-sub001/internal/result"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeResult sends a service envelope, picking okStatus on success and a
// failure status derived from the envelope otherwise.
func writeResult[T any](w http.ResponseWriter, okStatus int, res result.Of[T]) {
	if res.Success {
		writeJSON(w, okStatus, res)
		return
	}
	writeJSON(w, failStatus(res), res)
}

func failStatus[T any](res result.Of[T]) int {
	switch res.Code {
	case result.CodeInvalid:
		return http.StatusBadRequest
	case result.CodeNotFound:
		return http.StatusNotFound
	case result.CodeConflict:
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}

// badRequest wraps a transport-level failure (unparseable body, bad path
// param) in the same envelope shape the service produces.
func badRequest(w http.ResponseWriter, message string) {
	writeJSON(w, http.StatusBadRequest, result.FailCode[any](result.CodeInvalid, message, message))
}
