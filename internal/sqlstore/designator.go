package sqlstore

import (
	"context"
	"database/sql"
	"time"

	"github.com/frametree/tfcache/designator"
	"github.com/frametree/tfcache/geom"
)

// DesignatorStore is a bun-backed designator.Store over the
// logged_designators table, the SQL analogue of MongoDBInterface.java's
// uima_uima_results/logged_designators collection family.
type DesignatorStore struct {
	*Store
}

var _ designator.Store = (*DesignatorStore)(nil)

// NewDesignatorStore adapts a Store (already opened against either
// dialect) into a designator.Store, sharing its *bun.DB connection.
func NewDesignatorStore(ctx context.Context, s *Store) (*DesignatorStore, error) {
	if _, err := s.db.NewCreateTable().
		Model((*designatorModel)(nil)).
		ModelTableExpr(tableName("logged_designator")).
		IfNotExists().
		Exec(ctx); err != nil {
		return nil, err
	}
	return &DesignatorStore{Store: s}, nil
}

// InsertDesignator stores d, upserting by ID. Test-seeding/ingestion-side
// helper, mirroring Store.InsertDocument.
func (s *DesignatorStore) InsertDesignator(ctx context.Context, d designator.Designator) error {
	row := &designatorModel{
		ID:       d.ID,
		ObjectID: d.ObjectID,
		Recorded: d.Recorded,
		HasPose:  d.HasPose,
		TX:       d.Location.Translation.X,
		TY:       d.Location.Translation.Y,
		TZ:       d.Location.Translation.Z,
		QX:       d.Location.Rotation.X,
		QY:       d.Location.Rotation.Y,
		QZ:       d.Location.Rotation.Z,
		QW:       d.Location.Rotation.W,
		Values:   d.Values,
	}
	_, err := s.db.NewInsert().
		Model(row).
		ModelTableExpr(tableName("logged_designator") + " AS ld").
		On("CONFLICT (id) DO UPDATE").
		Set("object_id = EXCLUDED.object_id").
		Set("recorded = EXCLUDED.recorded").
		Set("has_pose = EXCLUDED.has_pose").
		Set("tx = EXCLUDED.tx").
		Set("ty = EXCLUDED.ty").
		Set("tz = EXCLUDED.tz").
		Set("qx = EXCLUDED.qx").
		Set("qy = EXCLUDED.qy").
		Set("qz = EXCLUDED.qz").
		Set("qw = EXCLUDED.qw").
		Set(`"values" = EXCLUDED."values"`).
		Exec(ctx)
	return err
}

// FindByID answers getDesignatorByID.
func (s *DesignatorStore) FindByID(ctx context.Context, id string) (designator.Designator, error) {
	var row designatorModel
	err := s.db.NewSelect().
		Model(&row).
		ModelTableExpr(tableName("logged_designator") + " AS ld").
		Where("id = ?", id).
		Scan(ctx)
	if err != nil {
		return designator.Designator{}, translateNotFound(err)
	}
	return rowToDesignator(row), nil
}

// FindLatestBefore answers latestUIMAPerceptionBefore.
func (s *DesignatorStore) FindLatestBefore(ctx context.Context, before time.Time) (designator.Designator, error) {
	var row designatorModel
	err := s.db.NewSelect().
		Model(&row).
		ModelTableExpr(tableName("logged_designator") + " AS ld").
		Where("recorded < ?", before).
		OrderExpr("recorded DESC").
		Limit(1).
		Scan(ctx)
	if err != nil {
		return designator.Designator{}, translateNotFound(err)
	}
	return rowToDesignator(row), nil
}

// List answers getLatestObjectDesignatorByID-shaped per-object listings,
// newest first.
func (s *DesignatorStore) List(ctx context.Context, objectID string) ([]designator.Designator, error) {
	var rows []designatorModel
	err := s.db.NewSelect().
		Model(&rows).
		ModelTableExpr(tableName("logged_designator") + " AS ld").
		Where("object_id = ?", objectID).
		OrderExpr("recorded DESC").
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, designator.ErrNotFound
	}
	out := make([]designator.Designator, 0, len(rows))
	for _, r := range rows {
		out = append(out, rowToDesignator(r))
	}
	return out, nil
}

func rowToDesignator(row designatorModel) designator.Designator {
	return designator.Designator{
		ID:       row.ID,
		ObjectID: row.ObjectID,
		Recorded: row.Recorded,
		HasPose:  row.HasPose,
		Location: geom.Pose{
			Translation: geom.Vector3{X: row.TX, Y: row.TY, Z: row.TZ},
			Rotation:    geom.Quaternion{X: row.QX, Y: row.QY, Z: row.QZ, W: row.QW},
		},
		Values: row.Values,
	}
}

func translateNotFound(err error) error {
	if err == sql.ErrNoRows {
		return designator.ErrNotFound
	}
	return err
}
