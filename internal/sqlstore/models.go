package sqlstore

import (
	"time"

	"github.com/uptrace/bun"

	"github.com/frametree/tfcache/store"
)

// documentModel is the bun row for the tf_document collection (spec §6.1).
// Transforms is stored as a single JSON column rather than a join table:
// a document is always read and written as one recorded batch, never
// queried by individual transform, so normalizing it would only add
// joins with no query this module ever issues.
type documentModel struct {
	bun.BaseModel `bun:"table:tf_documents,alias:td"`

	ID         string           `bun:"id,pk"`
	Recorded   time.Time        `bun:"recorded,notnull"`
	Transforms []store.TFRecord `bun:"transforms,type:jsonb,notnull"`
}

// designatorModel is the bun row for the logged_designator collection
// (spec §6.2). Values mirrors the original's loosely-typed designator
// bag and is stored as JSON for the same reason Transforms is above.
type designatorModel struct {
	bun.BaseModel `bun:"table:logged_designators,alias:ld"`

	ID       string         `bun:"id,pk"`
	ObjectID string         `bun:"object_id,notnull"`
	Recorded time.Time      `bun:"recorded,notnull"`
	HasPose  bool           `bun:"has_pose,notnull"`
	TX       float64        `bun:"tx,notnull"`
	TY       float64        `bun:"ty,notnull"`
	TZ       float64        `bun:"tz,notnull"`
	QX       float64        `bun:"qx,notnull"`
	QY       float64        `bun:"qy,notnull"`
	QZ       float64        `bun:"qz,notnull"`
	QW       float64        `bun:"qw,notnull"`
	Values   map[string]any `bun:"values,type:jsonb"`
}
