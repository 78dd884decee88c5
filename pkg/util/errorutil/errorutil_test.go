package errorutil

import (
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestToDomainError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantCode   string
		wantStatus int
	}{
		{"domain error passes through", NewConflict("busy", nil), CodeConflict, http.StatusConflict},
		{"wrapped domain error", fmt.Errorf("outer: %w", NewNotFound("ticket", nil)), CodeNotFound, http.StatusNotFound},
		{"sql no rows", sql.ErrNoRows, CodeNotFound, http.StatusNotFound},
		{"unknown error", errors.New("boom"), CodeInternal, http.StatusInternalServerError},
		{"unauthenticated", NewUnauthenticated("invalid credentials"), CodeUnauthenticated, http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ToDomainError(tt.err)
			if got.Code != tt.wantCode {
				t.Errorf("expected code %s, got %s", tt.wantCode, got.Code)
			}
			if got.HTTPStatus != tt.wantStatus {
				t.Errorf("expected status %d, got %d", tt.wantStatus, got.HTTPStatus)
			}
		})
	}

	if ToDomainError(nil) != nil {
		t.Error("expected nil for nil error")
	}
}

func TestInternalErrorHidesCause(t *testing.T) {
	cause := errors.New("connection reset")
	de := ToDomainError(NewInternalError(cause))
	if de.Message != "internal server error" {
		t.Errorf("unexpected message %q", de.Message)
	}
	if !errors.Is(de, cause) {
		t.Error("expected cause to be preserved for logging")
	}
}

func TestFromHTTPStatus(t *testing.T) {
	if de := FromHTTPStatus(http.StatusNotFound, ""); de.Code != CodeNotFound || de.Message != "Not Found" {
		t.Errorf("unexpected 404 mapping: %+v", de)
	}
	if de := FromHTTPStatus(http.StatusMethodNotAllowed, "nope"); de.Code != CodeValidation {
		t.Errorf("unexpected 405 mapping: %+v", de)
	}
	if de := FromHTTPStatus(http.StatusBadGateway, ""); de.Code != CodeInternal {
		t.Errorf("unexpected 502 mapping: %+v", de)
	}
}
