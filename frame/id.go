package frame

import (
	"log/slog"
	"strings"
)

// ID is a canonicalized frame name: "/" followed by one or more non-empty
// segments. Two IDs name the same frame iff they are equal as strings —
// never by pointer/interning identity (spec §9's "possible source bug"
// open question is resolved in favor of string equality throughout this
// module).
type ID string

// Empty is the sentinel for "no frame id", mirroring the original's
// treatment of a blank parent/child id as the literal string "/".
const Empty ID = "/"

// Canonicalize resolves raw against prefix the way spec §6.4 describes: a
// leading "/" is returned unchanged, otherwise raw is prefixed with "/"
// and, if prefix is non-empty, with "/prefix" ahead of that. A diagnostic
// is logged whenever resolution was necessary, reproducing the original's
// assertResolved behavior.
func Canonicalize(prefix, raw string) ID {
	if raw == "" {
		return Empty
	}
	if strings.HasPrefix(raw, "/") {
		return ID(raw)
	}

	slog.Debug("tf operating on a non-fully-resolved frame id, resolving with local prefix",
		"frame_id", raw, "prefix", prefix)

	if prefix == "" {
		return ID("/" + raw)
	}
	if strings.HasPrefix(prefix, "/") {
		return ID(prefix + "/" + raw)
	}
	return ID("/" + prefix + "/" + raw)
}

// Valid reports whether id satisfies the frame-ID grammar (non-empty,
// leading "/").
func (id ID) Valid() bool {
	return id != "" && id != Empty && strings.HasPrefix(string(id), "/")
}

// String implements fmt.Stringer.
func (id ID) String() string {
	return string(id)
}
