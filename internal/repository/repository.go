package repository

import (
	"context"
	"time"

	"hostly/mirrorbox/internal/entities"
)

const (
	FileCollection    = "file"
	MirrorCollection  = "mirror"
	AttemptCollection = "mirror_attempt"
)

type Files interface {
	// Save inserts a new file record. Returns false when a record
	// with the same id already exists.
	Save(ctx context.Context, f *entities.File) (bool, error)
	// Get returns nil, nil when no file with the given id exists.
	Get(ctx context.Context, id string) (*entities.File, error)
	UpdateStatus(ctx context.Context, id string, status entities.FileStatus) error
	// ListStuckPending returns files still pending whose creation is
	// older than the given cutoff. Used by the reconciliation sweep.
	ListStuckPending(ctx context.Context, olderThan time.Time) ([]*entities.File, error)
}

type Mirrors interface {
	// GetEnabled returns enabled mirrors ordered by priority ascending.
	GetEnabled(ctx context.Context) ([]*entities.Mirror, error)
	// GetByName returns nil, nil when no mirror with the name exists.
	GetByName(ctx context.Context, name string) (*entities.Mirror, error)
}

type Attempts interface {
	// Get returns nil, nil when no attempt exists for the pair.
	Get(ctx context.Context, fileID string, mirrorID string) (*entities.MirrorAttempt, error)
	// Create inserts a new attempt. Returns false when an attempt for
	// the same (file, mirror) pair already exists.
	Create(ctx context.Context, a *entities.MirrorAttempt) (bool, error)
	Update(ctx context.Context, a *entities.MirrorAttempt) error
	ListByFile(ctx context.Context, fileID string) ([]*entities.MirrorAttempt, error)
	// FailNonTerminal forces every attempt of the file that is not
	// done to failed, recording reason in attempt metadata.
	FailNonTerminal(ctx context.Context, fileID string, reason string) error
}
