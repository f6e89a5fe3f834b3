package metrics

import (
	"strconv"
	"time"

	obserrors "github.com/maf-y/ArardaHospital-Frontend/internal/observability/errors"
	"github.com/maf-y/ArardaHospital-Frontend/internal/observability/statsd"
)

// Result constants for metric tagging.
const (
	ResultSuccess = "success"
	ResultError   = "error"
)

// UpstreamCall captures one outbound call to a backend collaborator.
type UpstreamCall struct {
	Service  string // "identity", "clinical", "media"
	Method   string
	Status   int
	Duration time.Duration
	Err      error
}

// EmitUpstreamCall emits standardised metrics for a backend call.
func EmitUpstreamCall(sink statsd.Sink, in UpstreamCall) {
	if sink == nil {
		return
	}

	result := ResultSuccess
	if in.Err != nil {
		result = ResultError
	}
	tags := map[string]string{
		"service": in.Service,
		"method":  in.Method,
		"result":  result,
	}
	if in.Status > 0 {
		tags["status"] = strconv.Itoa(in.Status)
	}
	if in.Err != nil {
		if class := obserrors.Classify(in.Err); class != "" {
			tags["error_class"] = class
		}
	}

	sink.Count("upstream.call", 1, tags)
	if in.Duration > 0 {
		sink.Timing("upstream.duration", in.Duration, CloneTags(tags))
	}
}

// GuardDecision captures one route guard evaluation.
type GuardDecision struct {
	Outcome string
	Kind    string
	Role    string
}

// EmitGuardDecision counts a route guard outcome.
func EmitGuardDecision(sink statsd.Sink, in GuardDecision) {
	if sink == nil {
		return
	}
	tags := map[string]string{
		"outcome": in.Outcome,
		"kind":    in.Kind,
	}
	if in.Role != "" {
		tags["role"] = in.Role
	}
	sink.Count("guard.decision", 1, tags)
}

// CloneTags creates a shallow copy of a tag map.
func CloneTags(src map[string]string) map[string]string {
	if len(src) == 0 {
		return nil
	}
	out := make(map[string]string, len(src))
	for k, v := range src {
		out[k] = v
	}
	return out
}
