package errors

import (
	"context"
	"errors"
	"fmt"
	"testing"
)

func TestAuthError(t *testing.T) {
	err := NewAuthError("test auth error")

	expected := "authentication failed: test auth error"
	if err.Error() != expected {
		t.Errorf("Error() = %s, want %s", err.Error(), expected)
	}

	if !err.Is(NewAuthError("target")) {
		t.Error("Expected error to be auth error type")
	}
	if err.Is(NewAPIError(400, "test", "other error")) {
		t.Error("Expected error not to match different type")
	}
	if err.Is(errors.New("standard error")) {
		t.Error("Expected error not to match standard error")
	}

	if got := NewAuthError("").Error(); got != "authentication failed: session may have expired" {
		t.Errorf("empty AuthError = %s", got)
	}
}

func TestAPIError(t *testing.T) {
	err := NewAPIError(400, "/api/conversations/1/messages", "bad request")

	expected := "API error [400] at /api/conversations/1/messages: bad request"
	if err.Error() != expected {
		t.Errorf("Error() = %s, want %s", err.Error(), expected)
	}

	noStatus := NewAPIError(0, "/x", "boom")
	if noStatus.Error() != "API error at /x: boom" {
		t.Errorf("Error() = %s", noStatus.Error())
	}

	withBody := NewAPIError(500, "/x", "fail").WithBody(`{"message":"db down"}`)
	if GetResponseBody(fmt.Errorf("wrapped: %w", withBody)) != `{"message":"db down"}` {
		t.Error("expected body to survive wrapping")
	}
}

func TestNetworkError(t *testing.T) {
	cause := errors.New("connection refused")
	err := NewNetworkErrorWithEndpoint("list messages", "/api/conversations/1/messages", cause)

	if !errors.Is(err, cause) {
		t.Error("NetworkError should unwrap to its cause")
	}
	if !IsNetworkError(fmt.Errorf("fetch: %w", err)) {
		t.Error("IsNetworkError should see through wrapping")
	}
	if GetEndpoint(err) != "/api/conversations/1/messages" {
		t.Errorf("GetEndpoint() = %s", GetEndpoint(err))
	}
	if NewNetworkError("op", cause).Error() != "network error during op: connection refused" {
		t.Errorf("Error() = %s", NewNetworkError("op", cause).Error())
	}
}

func TestTimeoutError(t *testing.T) {
	if NewTimeoutError("").Error() != "request timed out" {
		t.Error("unexpected empty timeout message")
	}
	if !IsTimeoutError(NewTimeoutError("slow")) {
		t.Error("IsTimeoutError should match TimeoutError")
	}
	if !IsTimeoutError(fmt.Errorf("x: %w", context.DeadlineExceeded)) {
		t.Error("IsTimeoutError should match context.DeadlineExceeded")
	}
	if IsTimeoutError(errors.New("other")) {
		t.Error("IsTimeoutError should not match plain errors")
	}
}

func TestParseError(t *testing.T) {
	err := NewParseError("test parse error", "test/path")

	if err.Error() != "parse error: test parse error" {
		t.Errorf("Error() = %s", err.Error())
	}
	if !err.Is(NewParseError("target", "target/path")) {
		t.Error("Expected error to be parse error type")
	}
	if !IsParseError(fmt.Errorf("decode: %w", err)) {
		t.Error("ParseError should match ErrInvalidResponse through wrapping")
	}
	if err.Is(NewAuthError("x")) {
		t.Error("Expected error not to match different type")
	}
}

func TestFromStatus(t *testing.T) {
	tests := []struct {
		status int
		check  func(error) bool
		name   string
	}{
		{401, IsAuthError, "unauthorized"},
		{403, IsAuthError, "forbidden"},
		{504, IsTimeoutError, "gateway timeout"},
		{404, IsNotFound, "not found"},
		{500, func(err error) bool { return GetHTTPStatus(err) == 500 }, "server error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := FromStatus(tt.status, "/api/conversations/9", "status")
			if !tt.check(err) {
				t.Errorf("FromStatus(%d) = %v, classification failed", tt.status, err)
			}
		})
	}
}

func TestGetHTTPStatusOnPlainError(t *testing.T) {
	if GetHTTPStatus(errors.New("x")) != 0 {
		t.Error("plain error should have no status")
	}
	if GetEndpoint(errors.New("x")) != "" {
		t.Error("plain error should have no endpoint")
	}
}
