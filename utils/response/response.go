package response

import (
	"encoding/json"
	"net/http"
)

// ErrorResponse is the error body shape for every non-success status.
type ErrorResponse struct {
	Error string `json:"error"`
}

func JSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func Error(w http.ResponseWriter, code int, message string) {
	JSON(w, code, ErrorResponse{Error: message})
}
