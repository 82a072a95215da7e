package backfill

import (
	"errors"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/frametree/tfcache/frame"
	"github.com/frametree/tfcache/store"
)

// The three diagnostics reproduce TFMemory.java's setTransform rejection
// cases verbatim in spirit, each distinct per spec's supplemented-features
// note: a missing child frame id, a missing parent frame id, and a
// self-transform are three different operator-facing problems even though
// all three are "skip with a diagnostic" at the protocol level.
var (
	ErrNoChildFrameID    = errors.New("tf: record has no child frame id")
	ErrNoFrameID         = errors.New("tf: record has no parent frame id")
	ErrSelfTransform     = errors.New("tf: record's parent and child frame are the same")
	ErrMissingQuaternion = errors.New("tf: record has no rotation quaternion")
)

type fieldPair struct {
	Parent string
	Child  string
}

func (p fieldPair) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.Parent, validation.Required),
		validation.Field(&p.Child, validation.Required),
	)
}

// decodeRecord canonicalizes and validates a raw store.TFRecord, producing
// the frame.Transform ready for insertion. It never returns a transform
// without also having validated it — callers skip on error rather than
// inserting a partial result.
func decodeRecord(rec store.TFRecord, prefix string) (frame.Transform, error) {
	pair := fieldPair{Parent: rec.ParentFrame, Child: rec.ChildFrame}
	if err := pair.Validate(); err != nil {
		if rec.ChildFrame == "" {
			return frame.Transform{}, ErrNoChildFrameID
		}
		return frame.Transform{}, ErrNoFrameID
	}

	parent := frame.Canonicalize(prefix, rec.ParentFrame)
	child := frame.Canonicalize(prefix, rec.ChildFrame)
	if !parent.Valid() {
		return frame.Transform{}, ErrNoFrameID
	}
	if !child.Valid() {
		return frame.Transform{}, ErrNoChildFrameID
	}
	if parent == child {
		return frame.Transform{}, ErrSelfTransform
	}
	if rec.Rotation == nil {
		return frame.Transform{}, ErrMissingQuaternion
	}

	return frame.Transform{
		Translation: rec.Translation,
		Rotation:    *rec.Rotation,
		Stamp:       frame.StampFromTime(rec.Stamp),
		Parent:      parent,
		Child:       child,
	}, nil
}
