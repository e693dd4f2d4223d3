package platformerrors

import (
	"context"
	"database/sql/driver"
	"errors"
	"net"
	"net/http"
	"testing"
)

func TestAsStorageError_ClassifiesTransientFailures(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name string
		err  error
		want ErrorType
	}{
		{"deadline exceeded", context.DeadlineExceeded, ErrorTypeUnavailable},
		{"context cancelled", context.Canceled, ErrorTypeUnavailable},
		{"bad connection", driver.ErrBadConn, ErrorTypeUnavailable},
		{"wrapped bad connection", errors.Join(errors.New("exec"), driver.ErrBadConn), ErrorTypeUnavailable},
		{"network error", &net.OpError{Op: "dial", Err: errors.New("connection refused")}, ErrorTypeUnavailable},
		{"constraint violation", errors.New("null value in column"), ErrorTypeInternal},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			perr := AsStorageError(ctx, tc.err, "storage failed")
			if perr.Type != tc.want {
				t.Errorf("type = %s, want %s", perr.Type, tc.want)
			}
			if perr.Layer != LayerRepository {
				t.Errorf("layer = %s, want %s", perr.Layer, LayerRepository)
			}
		})
	}

	if AsStorageError(ctx, nil, "no-op") != nil {
		t.Error("nil error must stay nil")
	}
}

func TestAsStorageError_PreservesExistingPlatformError(t *testing.T) {
	ctx := context.Background()
	inner := NewError(ctx, LayerRepository, ErrorTypeConflict, "duplicate", nil, "test-code")

	perr := AsStorageError(ctx, inner, "create failed")
	if perr.Type != ErrorTypeConflict {
		t.Errorf("type = %s, want %s", perr.Type, ErrorTypeConflict)
	}
	if perr.Code != "test-code" {
		t.Errorf("code = %q, want test-code", perr.Code)
	}
}

func TestErrorTypeToHTTPStatus(t *testing.T) {
	tests := []struct {
		errorType ErrorType
		want      int
	}{
		{ErrorTypeValidation, http.StatusBadRequest},
		{ErrorTypeUnauthorized, http.StatusUnauthorized},
		{ErrorTypeForbidden, http.StatusForbidden},
		{ErrorTypeNotFound, http.StatusNotFound},
		{ErrorTypeConflict, http.StatusConflict},
		{ErrorTypeUnavailable, http.StatusServiceUnavailable},
		{ErrorTypeInternal, http.StatusInternalServerError},
	}
	for _, tc := range tests {
		if got := ErrorTypeToHTTPStatus(tc.errorType); got != tc.want {
			t.Errorf("ErrorTypeToHTTPStatus(%s) = %d, want %d", tc.errorType, got, tc.want)
		}
	}
}
