package edge

import "fmt"

type Status int

const (
	Success Status = iota
	Absent         // nothing to do: expected, common
	Failed         // something broke: logged, still passed through
)

func (s Status) String() string {
	switch s {
	case Success:
		return "success"
	case Absent:
		return "absent"
	default:
		return "failed"
	}
}

// Reasons attached to non-success results
const (
	ReasonStaticAsset         = "static_asset"
	ReasonNoVisitorParam      = "no_visitor_param"
	ReasonInvalidLinkID       = "invalid_link_id"
	ReasonConfigMissing       = "config_missing"
	ReasonConfigUnavailable   = "config_unavailable"
	ReasonLinkLookupFailed    = "link_lookup_failed"
	ReasonLinkNotFound        = "link_not_found"
	ReasonLinkWithoutSecret   = "link_without_secret"
	ReasonExchangeFailed      = "exchange_failed"
	ReasonTransportAbsent     = "transport_absent"
	ReasonTransportMalformed  = "transport_malformed"
	ReasonSerializationFailed = "serialization_failed"
	ReasonPanic               = "panic"
)

// Result is the outcome of one pipeline step
type Result[T any] struct {
	Value  T
	Status Status
	Reason string
	Err    error
}

func Ok[T any](value T) Result[T] {
	return Result[T]{Value: value, Status: Success}
}

func None[T any](reason string) Result[T] {
	return Result[T]{Status: Absent, Reason: reason}
}

func Fail[T any](reason string, err error) Result[T] {
	return Result[T]{Status: Failed, Reason: reason, Err: err}
}

// Then runs next only when r succeeded and otherwise carries r's outcome forward
func Then[A, B any](r Result[A], next func(A) Result[B]) Result[B] {
	if r.Status != Success {
		return Result[B]{Status: r.Status, Reason: r.Reason, Err: r.Err}
	}
	return next(r.Value)
}

// FailOpen is the only place a step outcome decides what leaves the function.
// A successful step's value is returned; anything else, including a panic inside
// step, returns original. report sees every outcome.
func FailOpen[T any](original T, step func() Result[T], report func(Result[T])) (out T) {
	out = original
	defer func() {
		if recovered := recover(); recovered != nil {
			out = original
			report(Fail[T](ReasonPanic, fmt.Errorf("recovered: %v", recovered)))
		}
	}()

	result := step()
	report(result)
	if result.Status == Success {
		return result.Value
	}
	return original
}
