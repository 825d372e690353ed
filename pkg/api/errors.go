package api

import (
	"errors"
	"fmt"
	"strings"
)

// Error is a structured failure from the certificate backend.
type Error struct {
	Code     string // short identifier, e.g. "bad_status"
	Endpoint string
	Status   int
	Message  string
}

func (e *Error) Error() string {
	if e.Status > 0 {
		return fmt.Sprintf("%s failed (%d): %s", e.Endpoint, e.Status, e.Message)
	}
	return fmt.Sprintf("%s failed: %s", e.Endpoint, e.Message)
}

// ErrNoBaseURL is returned by New when the backend URL is not configured.
var ErrNoBaseURL = errors.New("backend API URL is not configured; set api.url in certadmin.yaml or CERTADMIN_API_URL")

func errStatus(endpoint string, status int, body []byte) error {
	msg := strings.TrimSpace(string(body))
	if msg == "" {
		msg = "empty response"
	}
	return &Error{Code: "bad_status", Endpoint: endpoint, Status: status, Message: msg}
}

func errNetwork(endpoint string, err error) error {
	return &Error{Code: "network_failure", Endpoint: endpoint, Message: err.Error()}
}

func errDecode(endpoint string, err error) error {
	return &Error{Code: "bad_response", Endpoint: endpoint, Message: err.Error()}
}

// errNoTabs is used when the backend lists no tabs for a spreadsheet.
func errNoTabs(endpoint string) error {
	return &Error{Code: "no_tabs", Endpoint: endpoint, Message: "no sheet tabs found"}
}

// IsCode reports whether err is an *Error with the given code.
func IsCode(err error, code string) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.Code == code
}
