package middleware

import (
	"encoding/json"
	"net/http"

	"cadastro/internal/domain"
	apperror "cadastro/internal/errors"
)

// statusRecorder guarda o status escrito pelo handler seguinte.
type statusRecorder struct {
	http.ResponseWriter
	status int
	bytes  int
}

func newStatusRecorder(w http.ResponseWriter) *statusRecorder {
	return &statusRecorder{ResponseWriter: w, status: http.StatusOK}
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func (r *statusRecorder) Write(b []byte) (int, error) {
	n, err := r.ResponseWriter.Write(b)
	r.bytes += n
	return n, err
}

// Unwrap permite que http.ResponseController alcance o writer original.
func (r *statusRecorder) Unwrap() http.ResponseWriter {
	return r.ResponseWriter
}

func writeJSONError(w http.ResponseWriter, status int, category, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(domain.ErrorResponse{
		Code:     status,
		Category: category,
		Message:  message,
	})
}

func writeAppError(w http.ResponseWriter, err error) {
	status, category, message := apperror.MapToHTTPStatus(err)
	writeJSONError(w, status, category, message)
}
