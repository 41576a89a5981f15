package errors

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"sort"
	"strconv"
	"strings"
)

const (
	msgForbidden    = "insufficient permission"
	msgUnauthorized = "session expired, please sign in again"
	msgNetwork      = "no response from server"
	msgTimeout      = "request timed out"
	msgCanceled     = "request was canceled"
)

// FromResponse maps a non-2xx response to an AppError.
// The body is decoded once; the server message wins over fallback.
//
//   - 400, 422 → Validation (with Fields when the body carries them)
//   - 401 → Unauthorized
//   - 403 → Forbidden
//   - 404 → NotFound
//   - 409 → Conflict
//   - anything else → Server
func FromResponse(status int, body []byte, fallback string) *AppError {
	message, fields := decodeErrorBody(body)
	e := &AppError{Status: status, Fields: fields}

	switch status {
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		e.Code = ErrCodeValidation
	case http.StatusUnauthorized:
		e.Code = ErrCodeUnauthorized
		fallback = firstNonEmpty(fallback, msgUnauthorized)
	case http.StatusForbidden:
		e.Code = ErrCodeForbidden
		fallback = msgForbidden
	case http.StatusNotFound:
		e.Code = ErrCodeNotFound
	case http.StatusConflict:
		e.Code = ErrCodeConflict
	default:
		e.Code = ErrCodeServer
	}

	if message == "" && len(fields) > 0 {
		message = summarizeFields(fields)
	}
	e.Message = firstNonEmpty(message, fallback, http.StatusText(status), "request failed with status "+strconv.Itoa(status))
	if len(fields) == 1 {
		for k := range fields {
			e.Field = k
		}
	}
	return e
}

// FromTransport maps an error returned by http.Client.Do to an AppError.
// Context cancellation and deadlines keep their own codes; everything else is Network.
func FromTransport(err error, fallback string) *AppError {
	if err == nil {
		return nil
	}
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	if errors.Is(err, context.Canceled) {
		return &AppError{Code: ErrCodeCanceled, Message: msgCanceled, Cause: err}
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return &AppError{Code: ErrCodeTimeout, Message: msgTimeout, Cause: err}
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return &AppError{Code: ErrCodeTimeout, Message: msgTimeout, Cause: err}
	}
	return &AppError{Code: ErrCodeNetwork, Message: firstNonEmpty(fallback, msgNetwork), Cause: err}
}

// decodeErrorBody extracts the server message and field map from
// {error: string | object, details?: object, message?: string}.
func decodeErrorBody(body []byte) (string, map[string][]string) {
	var raw map[string]json.RawMessage
	if len(body) == 0 || json.Unmarshal(body, &raw) != nil {
		return "", nil
	}

	fields := map[string][]string{}
	var message string
	if v, ok := raw["error"]; ok {
		var s string
		if json.Unmarshal(v, &s) == nil {
			message = strings.TrimSpace(s)
		} else {
			collectFields(fields, "", v)
		}
	}
	if v, ok := raw["details"]; ok {
		collectFields(fields, "", v)
	}
	for _, key := range []string{"message", "msg"} {
		if message != "" {
			break
		}
		if v, ok := raw[key]; ok {
			var s string
			if json.Unmarshal(v, &s) == nil {
				message = strings.TrimSpace(s)
			}
		}
	}
	if len(fields) == 0 {
		fields = nil
	}
	return message, fields
}

// collectFields flattens nested validation messages into dotted field paths.
// Leaves may be strings, string arrays or objects carrying a "message".
func collectFields(dst map[string][]string, prefix string, v json.RawMessage) {
	var s string
	if json.Unmarshal(v, &s) == nil {
		if prefix != "" && s != "" {
			dst[prefix] = append(dst[prefix], s)
		}
		return
	}
	var list []json.RawMessage
	if json.Unmarshal(v, &list) == nil {
		for _, item := range list {
			collectFields(dst, prefix, item)
		}
		return
	}
	var obj map[string]json.RawMessage
	if json.Unmarshal(v, &obj) != nil {
		return
	}
	if m, ok := obj["message"]; ok && prefix != "" {
		collectFields(dst, prefix, m)
		return
	}
	for k, child := range obj {
		key := k
		if prefix != "" {
			key = prefix + "." + k
		}
		collectFields(dst, key, child)
	}
}

func summarizeFields(fields map[string][]string) string {
	names := make([]string, 0, len(fields))
	for k := range fields {
		names = append(names, k)
	}
	sort.Strings(names)
	first := names[0]
	return first + ": " + strings.Join(fields[first], "; ")
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
