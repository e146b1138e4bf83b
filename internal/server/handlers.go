package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	apperrors "github.com/agbru/fibmatrix/internal/errors"
	"github.com/agbru/fibmatrix/internal/logging"
	"github.com/agbru/fibmatrix/internal/service"
	"github.com/agbru/fibmatrix/pkg/fibonacci"
)

// handleHealth responds to health check requests.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeErrorResponse(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}
	s.writeJSONResponse(w, http.StatusOK, HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now().Unix(),
	})
}

// handleFibonacci computes F(n) for the 'n' query parameter under the
// 'overflow' policy, falling back to the server's configured policy.
func (s *Server) handleFibonacci(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeErrorResponse(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	n, policy, err := s.parseFibonacciParams(r)
	if err != nil {
		s.writeRequestError(w, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), s.timeouts.RequestTimeout)
	defer cancel()

	res, err := s.service.Calculate(ctx, n, policy)
	if err != nil {
		s.writeRequestError(w, classifyError(n, err))
		return
	}

	s.writeJSONResponse(w, http.StatusOK, buildResponse(res))
}

// parseFibonacciParams extracts and validates the query parameters.
//
// Returns:
//   - n: The parsed Fibonacci index.
//   - policy: The requested overflow policy, or the configured default.
//   - err: An apperrors.ValidationError naming the bad parameter, nil otherwise.
func (s *Server) parseFibonacciParams(r *http.Request) (uint64, fibonacci.OverflowPolicy, error) {
	q := r.URL.Query()

	nStr := q.Get("n")
	if nStr == "" {
		return 0, "", apperrors.NewValidationError("n", "Missing 'n' parameter", nStr)
	}
	// ParseUint rejects a leading '-', which enforces non-negative input.
	n, err := strconv.ParseUint(nStr, 10, 64)
	if err != nil {
		return 0, "", apperrors.NewValidationError("n",
			fmt.Sprintf("Invalid 'n' parameter: must be an integer between 0 and %d", service.MaxN), nStr)
	}
	if n > service.MaxN {
		return 0, "", apperrors.NewValidationError("n",
			fmt.Sprintf("Value of 'n' exceeds maximum allowed (%d)", service.MaxN), n)
	}

	policy := s.cfg.Policy()
	if raw := q.Get("overflow"); raw != "" {
		policy, err = fibonacci.ParseOverflowPolicy(raw)
		if err != nil {
			return 0, "", apperrors.NewValidationError("overflow", err.Error(), raw)
		}
	}
	return n, policy, nil
}

// classifyError maps a service error to an HTTP status.
func classifyError(n uint64, err error) requestError {
	switch {
	case errors.Is(err, service.ErrIndexOutOfRange), errors.Is(err, service.ErrUnknownPolicy):
		return requestError{Message: err.Error(), StatusCode: http.StatusBadRequest}
	case errors.Is(err, fibonacci.ErrOverflow):
		return requestError{
			Message: fmt.Sprintf("F(%d) exceeds 128 bits (largest exact index is %d); use overflow=wrap for F(n) mod 2^128",
				n, fibonacci.MaxIndex),
			StatusCode: http.StatusUnprocessableEntity,
		}
	case errors.Is(err, context.DeadlineExceeded):
		return requestError{Message: "calculation timed out", StatusCode: http.StatusServiceUnavailable}
	case apperrors.IsContextError(err):
		return requestError{Message: "request canceled", StatusCode: http.StatusServiceUnavailable}
	default:
		return requestError{Message: "internal error", StatusCode: http.StatusInternalServerError}
	}
}

func buildResponse(res service.Result) Response {
	return Response{
		N:              res.N,
		Result:         res.Value.String(),
		Hex:            res.Hex(),
		Exact:          res.Exact,
		OverflowPolicy: string(res.Policy),
		Duration:       res.Duration.String(),
	}
}

func (s *Server) writeRequestError(w http.ResponseWriter, err error) {
	var reqErr requestError
	if errors.As(err, &reqErr) {
		s.writeErrorResponse(w, reqErr.StatusCode, reqErr.Message)
		return
	}
	var valErr apperrors.ValidationError
	if errors.As(err, &valErr) {
		s.writeErrorResponse(w, http.StatusBadRequest, valErr.Message)
		return
	}
	s.writeErrorResponse(w, http.StatusBadRequest, err.Error())
}

// writeJSONResponse writes data as JSON with the given status code.
func (s *Server) writeJSONResponse(w http.ResponseWriter, statusCode int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.Error("encoding JSON response", err)
	}
}

// writeErrorResponse writes a standardized error body.
func (s *Server) writeErrorResponse(w http.ResponseWriter, statusCode int, message string) {
	if statusCode >= http.StatusInternalServerError {
		s.logger.Debug("request failed", logging.Int("status", statusCode), logging.String("message", message))
	}
	s.writeJSONResponse(w, statusCode, ErrorResponse{
		Error:   http.StatusText(statusCode),
		Message: message,
	})
}
