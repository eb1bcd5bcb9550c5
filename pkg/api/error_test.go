package api

import (
	"strings"
	"testing"
)

// TestAPIErrorMessage formats status and message
func TestAPIErrorMessage(t *testing.T) {
	err := &APIError{
		Code:       "not_found",
		Message:    "Post not found",
		StatusCode: 404,
	}

	msg := err.Error()
	if !strings.Contains(msg, "404") {
		t.Errorf("Error should contain the status code, got '%s'", msg)
	}
	if !strings.Contains(msg, "Post not found") {
		t.Errorf("Error should contain the message, got '%s'", msg)
	}
}

// TestStatusPredicates classify by status code
func TestStatusPredicates(t *testing.T) {
	testCases := []struct {
		statusCode int
		check      func(error) bool
		name       string
	}{
		{401, IsUnauthorized, "unauthorized"},
		{403, IsForbidden, "forbidden"},
		{404, IsNotFound, "not found"},
		{500, IsServerError, "server error"},
		{503, IsServerError, "service unavailable"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := &APIError{StatusCode: tc.statusCode}
			if !tc.check(err) {
				t.Errorf("Predicate should match status %d", tc.statusCode)
			}
		})
	}
}

// TestStatusPredicatesRejectOtherErrors ignore non-API errors
func TestStatusPredicatesRejectOtherErrors(t *testing.T) {
	plain := &APIError{StatusCode: 200}
	if IsUnauthorized(plain) || IsForbidden(plain) || IsNotFound(plain) || IsServerError(plain) {
		t.Error("Predicates should not match a success status")
	}
}
