package entities

import (
	"errors"
	"time"
)

var (
	ErrFileAlreadyExists = errors.New("file already exists")
	ErrFileNotFound      = errors.New("file not found")
)

type FileStatus string

const (
	FileStatusPending    FileStatus = "pending"
	FileStatusProcessing FileStatus = "processing"
	FileStatusCompleted  FileStatus = "completed"
	FileStatusFailed     FileStatus = "failed"
)

// File is created by the admission gate only after the stored object
// passed integrity verification. Status is owned by the fan-out job.
type File struct {
	ID          string     `bson:"_id"`
	Filename    string     `bson:"filename"`
	Size        int64      `bson:"size"`
	MimeType    string     `bson:"mimeType"`
	StorageKey  string     `bson:"storageKey"`
	Fingerprint string     `bson:"fingerprint,omitempty"`
	Status      FileStatus `bson:"status"`
	CreatedAt   time.Time  `bson:"createdAt"`
	UpdatedAt   time.Time  `bson:"updatedAt"`
}
