package entities

import (
	"errors"
	"time"
)

var ErrAttemptNotFound = errors.New("mirror attempt not found")

type AttemptStatus string

const (
	AttemptStatusQueued    AttemptStatus = "queued"
	AttemptStatusUploading AttemptStatus = "uploading"
	AttemptStatusDone      AttemptStatus = "done"
	AttemptStatusFailed    AttemptStatus = "failed"

	// Derived at read time, never stored.
	AttemptStatusExpired AttemptStatus = "expired"
)

// MirrorAttempt tracks one file x mirror republishing lifecycle.
// At most one attempt exists per (file, mirror) pair and a done
// attempt is terminal: it is never transitioned away from done.
type MirrorAttempt struct {
	ID         string                 `bson:"_id"`
	FileID     string                 `bson:"fileId"`
	MirrorID   string                 `bson:"mirrorId"`
	MirrorName string                 `bson:"mirrorName"`
	Status     AttemptStatus          `bson:"status"`
	URL        string                 `bson:"url,omitempty"`
	Metadata   map[string]interface{} `bson:"metadata,omitempty"`
	Attempts   int                    `bson:"attempts"`
	ExpiresAt  *time.Time             `bson:"expiresAt,omitempty"`
	CreatedAt  time.Time              `bson:"createdAt"`
	UpdatedAt  time.Time              `bson:"updatedAt"`
}

// EffectiveStatus overrides done with expired once expiresAt has passed.
func (a *MirrorAttempt) EffectiveStatus(now time.Time) AttemptStatus {
	if a.Status == AttemptStatusDone && a.ExpiresAt != nil && a.ExpiresAt.Before(now) {
		return AttemptStatusExpired
	}

	return a.Status
}

func (a *MirrorAttempt) IsTerminal() bool {
	return a.Status == AttemptStatusDone || a.Status == AttemptStatusFailed
}
