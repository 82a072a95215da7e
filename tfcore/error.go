package tfcore

import (
	"fmt"

	"github.com/frametree/tfcache/frame"
)

// Kind tags a tfcore.Error the way spec §7 requires: a sum type, never a
// bare string.
type Kind int

const (
	// NoData means a TimeCache along the resolved path was empty even
	// after a backfill attempt.
	NoData Kind = iota
	// NotConnected means PathSearch could not join source and target.
	NotConnected
	// StoreUnavailable means a Backfill call could not reach the
	// document store.
	StoreUnavailable
	// Timeout means the caller's deadline was exceeded mid-lookup.
	Timeout
	// MalformedRecord means an ingested record failed validation for a
	// reason other than SelfTransform or InvalidQuaternion.
	MalformedRecord
	// SelfTransform means an ingested record named the same frame as
	// both parent and child.
	SelfTransform
	// InvalidQuaternion means an ingested record had no rotation.
	InvalidQuaternion
)

func (k Kind) String() string {
	switch k {
	case NoData:
		return "no_data"
	case NotConnected:
		return "not_connected"
	case StoreUnavailable:
		return "store_unavailable"
	case Timeout:
		return "timeout"
	case MalformedRecord:
		return "malformed_record"
	case SelfTransform:
		return "self_transform"
	case InvalidQuaternion:
		return "invalid_quaternion"
	default:
		return "unknown"
	}
}

// Error is the tagged failure type every query-time tfcore operation
// returns. Source and Target are the canonicalized frame IDs involved,
// where applicable; Cause is the wrapped underlying error, if any.
type Error struct {
	Kind           Kind
	Source, Target frame.ID
	Cause          error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("tf: %s (target=%s source=%s): %v", e.Kind, e.Target, e.Source, e.Cause)
	}
	return fmt.Sprintf("tf: %s (target=%s source=%s)", e.Kind, e.Target, e.Source)
}

func (e *Error) Unwrap() error { return e.Cause }
