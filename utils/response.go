package utils

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"

	"github.com/KincaidYang/whoisparser/whois_tools"
)

// ErrorType represents different types of errors
type ErrorType int

const (
	ErrorTypeNotFound ErrorType = iota
	ErrorTypeForbidden
	ErrorTypeInternalServer
	ErrorTypeBadRequest
	ErrorTypeTooManyRequests
	ErrorTypeBadGateway
)

// ErrorResponse represents a standard error response
type ErrorResponse struct {
	Error string `json:"error"`
}

var errorStatus = map[ErrorType]struct {
	code    int
	message string
}{
	ErrorTypeNotFound:        {http.StatusNotFound, "Resource not found"},
	ErrorTypeForbidden:       {http.StatusForbidden, "Access forbidden"},
	ErrorTypeInternalServer:  {http.StatusInternalServerError, "Internal server error"},
	ErrorTypeBadRequest:      {http.StatusBadRequest, "Bad request"},
	ErrorTypeTooManyRequests: {http.StatusTooManyRequests, "Too many requests"},
	ErrorTypeBadGateway:      {http.StatusBadGateway, "Upstream whois server error"},
}

// HandleHTTPError writes a JSON error body; an empty message uses the
// default text of errorType.
func HandleHTTPError(w http.ResponseWriter, errorType ErrorType, message string) {
	status, ok := errorStatus[errorType]
	if !ok {
		status = errorStatus[ErrorTypeInternalServer]
	}
	if message == "" {
		message = status.message
	}
	WriteJSON(w, status.code, ErrorResponse{Error: message})
}

// HandleQueryError maps a lookup error to its HTTP response.
func HandleQueryError(w http.ResponseWriter, err error) {
	var netErr net.Error
	switch {
	case errors.Is(err, whois_tools.ErrNoWhoisServer):
		HandleHTTPError(w, ErrorTypeNotFound, "No WHOIS server known for this domain")
	case errors.Is(err, whois_tools.ErrEmptyResponse):
		HandleHTTPError(w, ErrorTypeBadGateway, err.Error())
	case errors.Is(err, context.DeadlineExceeded), errors.As(err, &netErr):
		HandleHTTPError(w, ErrorTypeBadGateway, err.Error())
	default:
		HandleHTTPError(w, ErrorTypeInternalServer, err.Error())
	}
}

// HandleInternalError handles internal server errors
func HandleInternalError(w http.ResponseWriter, err error) {
	HandleHTTPError(w, ErrorTypeInternalServer, err.Error())
}

// WriteJSON encodes v with the given status code.
func WriteJSON(w http.ResponseWriter, code int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}
