package app

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/klabast/wb-services/controle-cafe/internal/cafe"
)

// writeJSON encodes v with the given status and logs encoding failures
func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.log.Error("Error encoding response", zap.Error(err))
	}
}

// writeStatus answers {"status": "ok"} or {"status": "ignored"}
func (s *Server) writeStatus(w http.ResponseWriter, applied bool) {
	status := StatusOK
	if !applied {
		status = StatusIgnored
	}
	s.writeJSON(w, http.StatusOK, map[string]string{"status": status})
}

// decodeJSON reads a size-limited JSON body into v, answering 400 on failure
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, MaxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		http.Error(w, ErrInvalidBody, http.StatusBadRequest)
		return false
	}
	return true
}

// pathSlot parses the {day} and {period} path values
func pathSlot(w http.ResponseWriter, r *http.Request) (cafe.Day, cafe.Period, bool) {
	d, ok := pathDay(w, r)
	if !ok {
		return "", "", false
	}
	p, err := cafe.ParsePeriod(r.PathValue("period"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return "", "", false
	}
	return d, p, true
}

// pathDay parses the {day} path value
func pathDay(w http.ResponseWriter, r *http.Request) (cafe.Day, bool) {
	d, err := cafe.ParseDay(r.PathValue("day"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return "", false
	}
	return d, true
}

// queryFloor parses an optional ?floor= filter; empty means both floors
func queryFloor(w http.ResponseWriter, r *http.Request) (cafe.Floor, bool) {
	raw := r.URL.Query().Get("floor")
	if raw == "" {
		return "", true
	}
	f, err := cafe.ParseFloor(raw)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return "", false
	}
	return f, true
}

// writeDomainError maps cafe errors to HTTP status codes
func (s *Server) writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, cafe.ErrParticipantNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, cafe.ErrUnknownSlot),
		errors.Is(err, cafe.ErrQuotaDay),
		errors.Is(err, cafe.ErrUnknownFlag):
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		s.log.Error("Unexpected error", zap.Error(err))
		http.Error(w, ErrInternalServer, http.StatusInternalServerError)
	}
}

// statusRecorder captures the response status for request logging
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// logRequests logs every request with its status and latency
func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(rec, r)

		fields := []zap.Field{
			zap.Int("status", rec.status),
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.String("query", r.URL.RawQuery),
			zap.String("remote", r.RemoteAddr),
			zap.Duration("latency", time.Since(start)),
		}

		switch {
		case rec.status >= 500:
			s.log.Error("Request failed", fields...)
		case rec.status >= 400:
			s.log.Warn("Client error", fields...)
		default:
			s.log.Debug("Request completed", fields...)
		}
	})
}
