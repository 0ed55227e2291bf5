package web

// errors.go provides unified error response handling for the web layer.
//
// Every failure is:
//   - logged with the technical error and the request ID (server-side)
//   - returned as a JSON ErrorResponse built from core.MapError
//   - given a status code by statusFor
//
// Status codes:
//
//	400 - bad CSV, missing region column, empty file, no file part, bad form
//	413 - request body over ANALYSIS_MAX_FILE_SIZE
//	429 - per-client rate limit (with Retry-After)
//	503 - every analysis slot busy (with Retry-After)
//	504 - analysis or request deadline exceeded
//	500 - anything else

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/JonMunkholm/RegionAnalyzer/internal/core"
	"github.com/JonMunkholm/RegionAnalyzer/internal/logging"
)

var (
	errNoFile      = errors.New("no file provided")
	errInvalidForm = errors.New("invalid upload form")
	errRateLimited = errors.New("rate limit exceeded")
)

// busyRetryAfter is the Retry-After hint sent when the analyzer is saturated.
const busyRetryAfter = 5 * time.Second

// ErrorResponse represents the JSON structure for API error responses.
// Includes both machine-readable (Code) and human-readable (Message, Action) fields.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Action  string `json:"action,omitempty"`
	Code    string `json:"code"`
}

// statusFor picks the HTTP status for err.
func statusFor(err error) int {
	var tooLarge *http.MaxBytesError
	switch {
	case errors.As(err, &tooLarge):
		return http.StatusRequestEntityTooLarge
	case core.IsParseError(err), errors.Is(err, errNoFile), errors.Is(err, errInvalidForm):
		return http.StatusBadRequest
	case errors.Is(err, errRateLimited):
		return http.StatusTooManyRequests
	case errors.Is(err, core.ErrTooManyAnalyses):
		return http.StatusServiceUnavailable
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

// respondError logs err and writes its user-facing JSON form.
func (s *Server) respondError(w http.ResponseWriter, r *http.Request, err error) {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		err = fmt.Errorf("file too large: limit is %d bytes: %w", tooLarge.Limit, err)
	}

	status := statusFor(err)
	userMsg := core.MapError(err)

	level := slog.LevelWarn
	if status >= http.StatusInternalServerError {
		level = slog.LevelError
	}
	logging.FromContext(r.Context()).Log(r.Context(), level, "request error",
		"path", r.URL.Path,
		"method", r.Method,
		"status", status,
		"error", err.Error(),
		"code", userMsg.Code,
	)

	if status == http.StatusServiceUnavailable {
		setRetryAfter(w, busyRetryAfter)
	}

	writeJSON(w, r, status, ErrorResponse{
		Error:   userMsg.Message,
		Message: userMsg.Message,
		Action:  userMsg.Action,
		Code:    userMsg.Code,
	})
}

// respondRateLimited is the rate limiter's deny hook.
func (s *Server) respondRateLimited(w http.ResponseWriter, r *http.Request, retryAfter time.Duration) {
	setRetryAfter(w, retryAfter)
	s.respondError(w, r, errRateLimited)
}

// setRetryAfter writes d in whole seconds, rounded up, never below 1.
func setRetryAfter(w http.ResponseWriter, d time.Duration) {
	secs := int(math.Ceil(d.Seconds()))
	if secs < 1 {
		secs = 1
	}
	w.Header().Set("Retry-After", strconv.Itoa(secs))
}
