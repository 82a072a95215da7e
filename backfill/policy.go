// Package backfill implements spec §4.6: ensure a frame's TimeCache
// covers a requested time by querying the external document store when
// the in-memory buffer doesn't, decoding and validating what comes back,
// and feeding it into the registry.
package backfill

import (
	"context"

	"github.com/frametree/tfcache/frame"
	"github.com/frametree/tfcache/store"
)

// Policy is the on-demand loader tfcore.Core calls before every lookup leg.
type Policy struct {
	registry *frame.Registry
	store    store.Store
	cfg      Config
}

// NewPolicy builds a Policy over reg, pulling from st on a cache miss.
func NewPolicy(reg *frame.Registry, st store.Store, cfg Config) *Policy {
	return &Policy{registry: reg, store: st, cfg: cfg.withDefaults()}
}

// Ensure makes frameID's TimeCache cover t, if possible. It is a no-op if
// the frame already has a cache straddling t. Otherwise it queries the
// store for a window around t and inserts whatever batch comes back.
// corrID is logged alongside every diagnostic so a caller (tfcore) can
// grep one lookup's backfill activity across both legs together; pass ""
// if the caller has no correlation ID to propagate.
//
// A nil return does not guarantee frameID now covers t — the store may
// simply have nothing for that window. It only returns an error when the
// store itself could not be reached; the caller (tfcore) maps that into
// StoreUnavailable, and a subsequent lookup against an empty cache will
// fail with NoData on its own.
func (p *Policy) Ensure(ctx context.Context, corrID string, frameID frame.ID, t frame.Stamp) error {
	if f, ok := p.registry.Get(frameID); ok && f.AnyTimeInBufferRange(t) {
		return nil
	}

	at := t.Time()
	filter := store.Filter{
		ChildFrame:   string(frameID),
		RecordedFrom: at.Add(-p.cfg.Window),
		RecordedTo:   at.Add(p.cfg.Lookahead),
	}

	cur, err := p.store.FindTF(ctx, filter)
	if err != nil {
		p.cfg.Logger.Warn("tf_store_unavailable: backfill query failed",
			"correlation_id", corrID, "frame", frameID, "error", err)
		return err
	}
	defer cur.Close(ctx)

	if !cur.Next(ctx) {
		return cur.Err()
	}

	doc, err := cur.Decode()
	if err != nil {
		return err
	}

	// A document is a co-published batch: it may carry transforms for
	// frames other than frameID (e.g. a full tree snapshot). All of them
	// are inserted, not just the one that matched the query filter.
	for _, rec := range doc.Transforms {
		tr, err := decodeRecord(rec, p.cfg.FramePrefix)
		if err != nil {
			p.cfg.Logger.Warn(diagnosticFor(err), "correlation_id", corrID, "parent", rec.ParentFrame, "child", rec.ChildFrame)
			continue
		}
		p.registry.ResolveOrInsert(tr.Child).Insert(tr)
	}

	return nil
}

func diagnosticFor(err error) string {
	switch err {
	case ErrNoChildFrameID:
		return "tf_no_child_frame_id: record skipped"
	case ErrNoFrameID:
		return "tf_no_frame_id: record skipped"
	case ErrSelfTransform:
		return "tf_self_transform: record skipped"
	case ErrMissingQuaternion:
		return "tf_invalid_quaternion: record skipped"
	default:
		return "tf_malformed_record: record skipped"
	}
}
