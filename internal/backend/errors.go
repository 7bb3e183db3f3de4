package backend

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// GenericErrorMessage is shown when the backend supplies no detail field.
const GenericErrorMessage = "An error occurred"

// NetworkErrorMessage is shown when the backend could not be reached at all.
const NetworkErrorMessage = "Network error. Please check your connection."

// APIError is a non-2xx response from the backend carrying a server-provided
// detail message. 401 responses are reported as UnauthorizedError instead.
type APIError struct {
	StatusCode int
	Detail     string
	// Fields holds per-field messages from 422-style validation responses,
	// keyed by the offending field name.
	Fields map[string]string
}

func (e *APIError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("backend: HTTP %d: %s", e.StatusCode, e.Detail)
	}
	return fmt.Sprintf("backend: HTTP %d", e.StatusCode)
}

// UnauthorizedError is a 401 response. It is fatal to the current session:
// the gateway's OnUnauthorized hook has already fired by the time a caller
// sees this error.
type UnauthorizedError struct {
	Detail string
}

func (e *UnauthorizedError) Error() string {
	if e.Detail != "" {
		return "backend: unauthorized: " + e.Detail
	}
	return "backend: unauthorized"
}

// TransportError wraps a request that produced no response at all
// (connection refused, DNS failure, timeout). Classified distinctly from
// server-returned error statuses.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string { return "backend: unreachable: " + e.Err.Error() }
func (e *TransportError) Unwrap() error { return e.Err }

// IsUnauthorized reports whether err is a 401 from the backend.
func IsUnauthorized(err error) bool {
	var ue *UnauthorizedError
	return errors.As(err, &ue)
}

// IsUnreachable reports whether err is a transport-level failure.
func IsUnreachable(err error) bool {
	var te *TransportError
	return errors.As(err, &te)
}

// Message normalizes any gateway error into a user-visible string: the
// server detail when present, a connectivity message for transport errors,
// and a generic fallback otherwise. Rendering code never sees raw transport
// errors.
func Message(err error) string {
	if err == nil {
		return ""
	}
	var te *TransportError
	if errors.As(err, &te) {
		return NetworkErrorMessage
	}
	var ue *UnauthorizedError
	if errors.As(err, &ue) {
		if ue.Detail != "" {
			return ue.Detail
		}
		return GenericErrorMessage
	}
	var ae *APIError
	if errors.As(err, &ae) {
		if ae.Detail != "" {
			return ae.Detail
		}
		return GenericErrorMessage
	}
	return GenericErrorMessage
}

// errorBody is the backend error envelope. The detail field is either a
// plain string or a FastAPI-style list of {loc, msg} objects for 422s.
type errorBody struct {
	Detail json.RawMessage `json:"detail"`
}

type fieldError struct {
	Loc []json.RawMessage `json:"loc"`
	Msg string            `json:"msg"`
}

// parseErrorDetail extracts a display message and optional per-field errors
// from a backend error body.
func parseErrorDetail(body []byte) (string, map[string]string) {
	var envelope errorBody
	if err := json.Unmarshal(body, &envelope); err != nil || len(envelope.Detail) == 0 {
		return "", nil
	}

	var detail string
	if err := json.Unmarshal(envelope.Detail, &detail); err == nil {
		return detail, nil
	}

	var fieldErrs []fieldError
	if err := json.Unmarshal(envelope.Detail, &fieldErrs); err != nil || len(fieldErrs) == 0 {
		return "", nil
	}

	fields := make(map[string]string, len(fieldErrs))
	msgs := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		name := fieldName(fe.Loc)
		if name != "" {
			fields[name] = fe.Msg
		}
		if fe.Msg != "" {
			msgs = append(msgs, fe.Msg)
		}
	}
	return strings.Join(msgs, "; "), fields
}

// fieldName picks the last string element of a validation error location,
// skipping the leading "body"/"query" segment.
func fieldName(loc []json.RawMessage) string {
	for i := len(loc) - 1; i >= 0; i-- {
		var s string
		if err := json.Unmarshal(loc[i], &s); err == nil && s != "body" && s != "query" {
			return s
		}
	}
	return ""
}
