package errors

import (
	"context"
	"errors"
	"fmt"
	"net"
	"testing"

	"github.com/stretchr/testify/assert"

	apperrors "github.com/maf-y/ArardaHospital-Frontend/internal/errors"
)

func TestClassify(t *testing.T) {
	refused := &net.OpError{Op: "dial", Net: "tcp", Err: errors.New("connection refused")}

	tests := []struct {
		name string
		err  error
		want string
	}{
		{"nil", nil, ""},
		{"app error", apperrors.NotFound("gone"), "not_found"},
		{"wrapped backend status", fmt.Errorf("call: %w", apperrors.MapStatus(503, "")), "unavailable"},
		{"mapped transport error", apperrors.MapTransportError(refused), "unavailable"},
		{"deadline", fmt.Errorf("fetch: %w", context.DeadlineExceeded), ClassTimeout},
		{"canceled", context.Canceled, ClassCanceled},
		{"raw network error", refused, ClassNetwork},
		{"plain", errors.New("plain"), ClassOther},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.err))
		})
	}
}
