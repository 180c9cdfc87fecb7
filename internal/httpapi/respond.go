package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-menu-cache/cache"
	"github.com/goliatone/go-menu-cache/hierarchy"
	"go.uber.org/zap"
)

type errorResponse struct {
	Detail string `json:"detail"`
}

type deleteResponse struct {
	Status  bool   `json:"status"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, body any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(body)
}

// respond writes body as JSON. The status line is already out when encoding
// fails, so the failure is only logged.
func (h *handler) respond(w http.ResponseWriter, r *http.Request, status int, body any) {
	if err := writeJSON(w, status, body); err != nil {
		h.logger.Debug("response write failed",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", status),
			zap.Error(err),
		)
	}
}

// statusFor maps the error taxonomy onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case hierarchy.IsNotFound(err), hierarchy.IsInvalidParent(err):
		return http.StatusNotFound
	case hierarchy.IsConflict(err):
		return http.StatusConflict
	case hierarchy.IsInvalidInput(err):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func (h *handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)

	detail := http.StatusText(status)
	if status < http.StatusInternalServerError {
		var e *goerrors.Error
		if errors.As(err, &e) {
			detail = e.Message
		} else {
			detail = err.Error()
		}
	}

	if status >= http.StatusInternalServerError {
		h.logger.Error("request failed",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Bool("cache_unavailable", cache.IsUnavailable(err)),
			zap.Error(err),
		)
	}

	h.respond(w, r, status, errorResponse{Detail: detail})
}

func (h *handler) notFound(w http.ResponseWriter, r *http.Request, kind hierarchy.Kind) {
	h.respond(w, r, http.StatusNotFound, errorResponse{Detail: string(kind) + " not found"})
}
