// Package designator implements the read-only designator-store contract
// named in spec §6.2: a second collection family, keyed by an opaque
// object ID rather than a frame ID, that callers look up a pose location
// from and then feed through tfcore. It is "auxiliary" — nothing in
// frame/pathsearch/tfcore depends on it — but a complete tf cache ships
// it because `original_source`'s MongoDBInterface.getDesignatorByID,
// latestUIMAPerceptionBefore, and getLatestObjectDesignatorByID are the
// callers that actually drive most lookup_transform calls in the system
// this was distilled from.
package designator

import (
	"context"
	"errors"
	"time"

	"github.com/frametree/tfcache/geom"
)

// ErrNotFound is returned when no designator matches the query.
var ErrNotFound = errors.New("designator: not found")

// Designator is one entry of the uima_uima_results/logged_designators
// collection family: an object observation recorded at an instant, with
// a pose location and a bag of loosely-typed perception values.
type Designator struct {
	ID       string
	ObjectID string
	Recorded time.Time
	Location geom.Pose
	HasPose  bool
	Values   map[string]any
}

// Store is the read-only contract consumed by designatorcache. Every
// method maps to one of MongoDBInterface.java's query shapes.
type Store interface {
	// FindByID answers getDesignatorByID: an exact designator.__id /
	// designator.__ID match across both source collections.
	FindByID(ctx context.Context, id string) (Designator, error)

	// FindLatestBefore answers latestUIMAPerceptionBefore: the most
	// recently recorded designator with Recorded < before.
	FindLatestBefore(ctx context.Context, before time.Time) (Designator, error)

	// List answers getLatestObjectDesignatorByID/getAllObjects-shaped
	// queries: every designator observed for objectID, newest first.
	List(ctx context.Context, objectID string) ([]Designator, error)
}
