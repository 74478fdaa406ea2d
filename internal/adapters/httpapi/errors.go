package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/oapi-codegen/nullable"
)

// ErrorBody is the error envelope every non-2xx response carries.
type ErrorBody struct {
	Error struct {
		Code      string                    `json:"code"`
		Message   string                    `json:"message"`
		RequestId nullable.Nullable[string] `json:"request_id,omitempty"`
	} `json:"error"`
}

func writeError(w http.ResponseWriter, r *http.Request, status int, code string, message string) {
	var body ErrorBody
	body.Error.Code = code
	body.Error.Message = message
	if rid := middleware.GetReqID(r.Context()); rid != "" {
		body.Error.RequestId = nullable.NewNullableWithValue(rid)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
