package tfcache

import (
	"context"
	"errors"
	"sync/atomic"

	"github.com/frametree/tfcache/frame"
	"github.com/frametree/tfcache/geom"
	"github.com/frametree/tfcache/tfcore"
)

// ErrNoDefaultCore is returned by the package-level convenience functions
// when SetDefault has not been called yet.
var ErrNoDefaultCore = errors.New("tfcache: no default Core set; call SetDefault first")

var defaultCore atomic.Pointer[tfcore.Core]

// SetDefault installs core as the target of the package-level
// convenience functions below. Call it once at process startup, after
// building a Core via pkg/di; every other package in this module keeps
// taking a *tfcore.Core explicitly rather than reaching for this global.
func SetDefault(core *tfcore.Core) {
	defaultCore.Store(core)
}

// Default returns the currently installed default Core, or nil if
// SetDefault has not been called.
func Default() *tfcore.Core {
	return defaultCore.Load()
}

// LookupTransform calls LookupTransform on the default Core.
func LookupTransform(ctx context.Context, target, source frame.ID, t frame.Stamp) (frame.Transform, error) {
	core := defaultCore.Load()
	if core == nil {
		return frame.Transform{}, ErrNoDefaultCore
	}
	return core.LookupTransform(ctx, target, source, t)
}

// LookupTransformAt calls LookupTransformAt on the default Core.
func LookupTransformAt(ctx context.Context, target frame.ID, tTarget frame.Stamp, source frame.ID, tSource frame.Stamp, fixed frame.ID) (frame.Transform, error) {
	core := defaultCore.Load()
	if core == nil {
		return frame.Transform{}, ErrNoDefaultCore
	}
	return core.LookupTransformAt(ctx, target, tTarget, source, tSource, fixed)
}

// TransformPoint calls TransformPoint on the default Core.
func TransformPoint(ctx context.Context, target, source frame.ID, t frame.Stamp, p geom.Vector3) (frame.StampedVector3, error) {
	core := defaultCore.Load()
	if core == nil {
		return frame.StampedVector3{}, ErrNoDefaultCore
	}
	return core.TransformPoint(ctx, target, source, t, p)
}

// TransformPose calls TransformPose on the default Core.
func TransformPose(ctx context.Context, target, source frame.ID, t frame.Stamp, p geom.Pose) (frame.StampedPose, error) {
	core := defaultCore.Load()
	if core == nil {
		return frame.StampedPose{}, ErrNoDefaultCore
	}
	return core.TransformPose(ctx, target, source, t, p)
}
