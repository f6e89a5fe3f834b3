// Package errors maps failures onto a small, fixed set of classes for metric tags.
package errors

import (
	"context"
	goerrors "errors"
	"net"

	apperrors "github.com/maf-y/ArardaHospital-Frontend/internal/errors"
)

// Classes outside the application error codes.
const (
	ClassTimeout  = "timeout"
	ClassCanceled = "canceled"
	ClassNetwork  = "network"
	ClassOther    = "other"
)

// Classify returns the metric class for err, or "" for nil. Application errors use
// their code; context and network failures get their own class and everything else
// is "other", which keeps tag cardinality bounded.
func Classify(err error) string {
	if err == nil {
		return ""
	}
	if code := apperrors.GetCode(err); code != "" {
		return string(code)
	}

	var netErr net.Error
	switch {
	case goerrors.Is(err, context.DeadlineExceeded):
		return ClassTimeout
	case goerrors.Is(err, context.Canceled):
		return ClassCanceled
	case goerrors.As(err, &netErr):
		if netErr.Timeout() {
			return ClassTimeout
		}
		return ClassNetwork
	default:
		return ClassOther
	}
}
