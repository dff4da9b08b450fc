package fetch

import (
	"fmt"

	"github.com/jmgilman/go/errors"
)

// Kind classifies the result of a remote lookup.
type Kind int

const (
	// Success means the remote returned a well-formed positive answer.
	Success Kind = iota
	// NotFound means the remote confirmed there is no match.
	NotFound
	// TransientFailure covers transport errors, timeouts, throttling, and
	// malformed responses.
	TransientFailure
)

func (k Kind) String() string {
	switch k {
	case Success:
		return "success"
	case NotFound:
		return "not_found"
	case TransientFailure:
		return "transient_failure"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Outcome is the result of one Fetch call. Value is set only for Success;
// Err explains NotFound and TransientFailure.
type Outcome[V any] struct {
	Kind  Kind
	Value V
	Err   error
}

// OK reports whether the outcome carries a value.
func (o Outcome[V]) OK() bool {
	return o.Kind == Success
}

// Found wraps a successful value.
func Found[V any](value V) Outcome[V] {
	return Outcome[V]{Kind: Success, Value: value}
}

// Failed classifies err into a NotFound or TransientFailure outcome.
func Failed[V any](err error) Outcome[V] {
	return Outcome[V]{Kind: Classify(err), Err: err}
}

// Classify maps an error to an outcome kind. Only errors coded
// errors.CodeNotFound count as a confirmed no-match.
func Classify(err error) Kind {
	if err == nil {
		return Success
	}
	if errors.GetCode(err) == errors.CodeNotFound {
		return NotFound
	}
	return TransientFailure
}
