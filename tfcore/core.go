// Package tfcore is the query façade of spec §2 and §4.5: it orchestrates
// Backfill and PathSearch into lookup_transform, transform_point, and
// transform_pose, in single- and dual-time forms.
package tfcore

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"

	"github.com/frametree/tfcache/backfill"
	"github.com/frametree/tfcache/frame"
	"github.com/frametree/tfcache/geom"
	"github.com/frametree/tfcache/pathsearch"
)

// Core is the process-wide context object spec §9 asks for in place of a
// global singleton: every operation takes it explicitly. The package-level
// convenience wrapper in tfcache.go is the only place that hides it behind
// a default instance.
type Core struct {
	registry *frame.Registry
	backfill *backfill.Policy
	prefix   string
	logger   *slog.Logger
}

// New builds a Core over reg, using policy to backfill on cache misses.
// prefix is the default tf-prefix applied by frame ID canonicalization
// (empty unless the caller configures one — spec §9's open question).
func New(reg *frame.Registry, policy *backfill.Policy, prefix string, logger *slog.Logger) *Core {
	if logger == nil {
		logger = slog.Default()
	}
	return &Core{registry: reg, backfill: policy, prefix: prefix, logger: logger}
}

// LookupTransform answers spec §6.3's single-time lookup_transform.
func (c *Core) LookupTransform(ctx context.Context, target, source frame.ID, t frame.Stamp) (frame.Transform, error) {
	target = frame.Canonicalize(c.prefix, string(target))
	source = frame.Canonicalize(c.prefix, string(source))
	corrID := uuid.NewString()

	if target == source {
		return frame.Identity(target, source, t), nil
	}

	if err := c.ensureBoth(ctx, corrID, target, source, t); err != nil {
		return frame.Transform{}, err
	}

	inverse, forward, err := pathsearch.Search(c.registry, source, target, t)
	if err != nil {
		var nc *pathsearch.NotConnectedError
		if errors.As(err, &nc) {
			return frame.Transform{}, &Error{Kind: NotConnected, Source: source, Target: target, Cause: err}
		}
		// Any other error from Search is a GetData failure during
		// reconstruction (e.g. the cache was evicted out from under a
		// concurrent lookup) — still a NoData case from the caller's
		// perspective.
		return frame.Transform{}, &Error{Kind: NoData, Source: source, Target: target, Cause: err}
	}

	return compose(inverse, forward, target, source, t), nil
}

// LookupTransformAt answers spec §6.3's dual-time lookup: it stitches two
// single-time lookups through a fixed frame that is observed at both
// timestamps.
func (c *Core) LookupTransformAt(ctx context.Context, target frame.ID, tTarget frame.Stamp, source frame.ID, tSource frame.Stamp, fixed frame.ID) (frame.Transform, error) {
	a, err := c.LookupTransform(ctx, fixed, source, tSource)
	if err != nil {
		return frame.Transform{}, err
	}
	b, err := c.LookupTransform(ctx, target, fixed, tTarget)
	if err != nil {
		return frame.Transform{}, err
	}

	r := b.Mul(a)
	r.Parent = frame.Canonicalize(c.prefix, string(target))
	r.Child = frame.Canonicalize(c.prefix, string(source))
	r.Stamp = tTarget
	return r, nil
}

// TransformPoint applies lookup_transform(target, source, t) to p and
// returns spec §6.3's out_stamped shape: the result carries the target
// frame and lookup time it was produced at, not just the bare point.
func (c *Core) TransformPoint(ctx context.Context, target, source frame.ID, t frame.Stamp, p geom.Vector3) (frame.StampedVector3, error) {
	tr, err := c.LookupTransform(ctx, target, source, t)
	if err != nil {
		return frame.StampedVector3{}, err
	}
	return frame.StampedVector3{Point: tr.TransformPoint(p), Frame: tr.Parent, Stamp: t}, nil
}

// TransformPointAt is the dual-time variant of TransformPoint.
func (c *Core) TransformPointAt(ctx context.Context, target frame.ID, tTarget frame.Stamp, source frame.ID, tSource frame.Stamp, fixed frame.ID, p geom.Vector3) (frame.StampedVector3, error) {
	tr, err := c.LookupTransformAt(ctx, target, tTarget, source, tSource, fixed)
	if err != nil {
		return frame.StampedVector3{}, err
	}
	return frame.StampedVector3{Point: tr.TransformPoint(p), Frame: tr.Parent, Stamp: tTarget}, nil
}

// TransformPose applies lookup_transform(target, source, t) to p and
// returns spec §6.3's out_stamped shape for transform_pose.
func (c *Core) TransformPose(ctx context.Context, target, source frame.ID, t frame.Stamp, p geom.Pose) (frame.StampedPose, error) {
	tr, err := c.LookupTransform(ctx, target, source, t)
	if err != nil {
		return frame.StampedPose{}, err
	}
	return frame.StampedPose{Pose: tr.TransformPose(p), Frame: tr.Parent, Stamp: t}, nil
}

// TransformPoseAt is the dual-time variant of TransformPose.
func (c *Core) TransformPoseAt(ctx context.Context, target frame.ID, tTarget frame.Stamp, source frame.ID, tSource frame.Stamp, fixed frame.ID, p geom.Pose) (frame.StampedPose, error) {
	tr, err := c.LookupTransformAt(ctx, target, tTarget, source, tSource, fixed)
	if err != nil {
		return frame.StampedPose{}, err
	}
	return frame.StampedPose{Pose: tr.TransformPose(p), Frame: tr.Parent, Stamp: tTarget}, nil
}

// ensureBoth backfills both endpoints, honoring ctx's deadline (spec §5
// "Cancellation") and mapping a store failure into StoreUnavailable.
func (c *Core) ensureBoth(ctx context.Context, corrID string, target, source frame.ID, t frame.Stamp) error {
	for _, id := range [2]frame.ID{target, source} {
		if ctx.Err() != nil {
			return &Error{Kind: Timeout, Source: source, Target: target, Cause: ctx.Err()}
		}
		if err := c.backfill.Ensure(ctx, corrID, id, t); err != nil {
			if errors.Is(ctx.Err(), context.DeadlineExceeded) {
				return &Error{Kind: Timeout, Source: source, Target: target, Cause: ctx.Err()}
			}
			c.logger.Warn("tf_lookup_degraded: backfill could not reach the store",
				"correlation_id", corrID, "frame", id, "error", err)
			return &Error{Kind: StoreUnavailable, Source: source, Target: target, Cause: err}
		}
	}
	return nil
}
