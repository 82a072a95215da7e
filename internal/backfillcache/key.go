package backfillcache

import (
	"github.com/cespare/xxhash/v2"
	gohex "github.com/tmthrgd/go-hex"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/frametree/tfcache/internal/sturdycconfig"
	"github.com/frametree/tfcache/store"
)

// keyPayload is the msgpack-encoded shape a cache key is derived from.
// Encoding a struct rather than concatenating strings avoids delimiter
// collisions between ChildFrame values and the bucketed timestamps.
// msgpack writes the fields in declaration order, so reordering them
// changes every key.
type keyPayload struct {
	ChildFrame string
	BucketFrom int64
	BucketTo   int64
}

// cacheKey derives a deterministic, loggable cache key for filter once its
// window has been rounded to bucket. Two filters that land in the same
// bucket produce the same key, so near-simultaneous lookups against the
// same frame share one store round trip.
func cacheKey(filter store.Filter, bucket int64) (string, error) {
	payload := keyPayload{
		ChildFrame: filter.ChildFrame,
		BucketFrom: sturdycconfig.RoundDown(filter.RecordedFrom.UnixNano(), bucket),
		BucketTo:   sturdycconfig.RoundDown(filter.RecordedTo.UnixNano(), bucket),
	}
	encoded, err := msgpack.Marshal(&payload)
	if err != nil {
		return "", err
	}
	digest := xxhash.Sum64(encoded)
	var buf [8]byte
	for i := range buf {
		buf[i] = byte(digest >> (8 * (7 - i)))
	}
	return gohex.EncodeToString(buf[:]), nil
}
