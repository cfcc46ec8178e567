package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestHTTPStatus(t *testing.T) {
	cases := []struct {
		err  *Error
		want int
	}{
		{Validation("a", "b"), http.StatusBadRequest},
		{NotFound("Room not found"), http.StatusNotFound},
		{Conflict("Room is not available"), http.StatusConflict},
		{Unauthorized("no"), http.StatusForbidden},
		{State("Booking is already cancelled"), http.StatusConflict},
		{Unauthenticated("Invalid username or password"), http.StatusUnauthorized},
		{From(errors.New("connection reset")), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		if got := tc.err.HTTPStatus(); got != tc.want {
			t.Errorf("%s: HTTPStatus() = %d, want %d", tc.err.Kind, got, tc.want)
		}
	}
}

func TestValidationKeepsEveryDetail(t *testing.T) {
	err := Validation("Valid room ID is required", "Start date cannot be in the past")

	if len(err.Details) != 2 {
		t.Fatalf("Details = %v, want 2 entries", err.Details)
	}
	if err.Error() != "Valid room ID is required, Start date cannot be in the past" {
		t.Errorf("Error() = %q", err.Error())
	}
}

func TestStorageWrapping(t *testing.T) {
	cause := errors.New("pq: connection refused")
	err := Storage(cause)

	if KindOf(err) != KindStorage {
		t.Errorf("KindOf = %s, want storage", KindOf(err))
	}
	if !errors.Is(err, cause) {
		t.Error("storage error should unwrap to its cause")
	}
	if From(err).PublicMessage() != "Internal server error" {
		t.Errorf("PublicMessage leaks cause: %q", From(err).PublicMessage())
	}

	if Storage(nil) != nil {
		t.Error("Storage(nil) should be nil")
	}
}

func TestStoragePassesTypedErrorsThrough(t *testing.T) {
	sentinel := NotFound("Booking not found")
	wrapped := fmt.Errorf("cancel: %w", sentinel)

	err := Storage(wrapped)

	if !errors.Is(err, sentinel) {
		t.Error("typed error lost after Storage()")
	}
	if KindOf(err) != KindNotFound {
		t.Errorf("KindOf = %s, want not_found", KindOf(err))
	}
}
