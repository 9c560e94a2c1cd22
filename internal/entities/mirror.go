package entities

import "errors"

var ErrMirrorNotFound = errors.New("mirror not found")

// Mirror is a long-lived, admin-managed definition of one external
// hosting target. Read-only to the fan-out job.
type Mirror struct {
	ID       string       `bson:"_id"`
	Name     string       `bson:"name"`
	Enabled  bool         `bson:"enabled"`
	Priority int          `bson:"priority"`
	Config   MirrorConfig `bson:"config"`
	Logo     string       `bson:"logo,omitempty"`
}

// MirrorConfig is a free-form provider configuration map. Consumers read
// only explicitly-named, well-typed fields out of it.
type MirrorConfig map[string]interface{}

// MaxFileSize returns the optional per-mirror size cap in bytes.
// Mongo decodes numbers as int32/int64/float64 depending on width.
func (c MirrorConfig) MaxFileSize() (int64, bool) {
	v, ok := c["maxFileSize"]
	if !ok {
		return 0, false
	}

	switch n := v.(type) {
	case int64:
		return n, true
	case int32:
		return int64(n), true
	case int:
		return int64(n), true
	case float64:
		return int64(n), true
	default:
		return 0, false
	}
}
