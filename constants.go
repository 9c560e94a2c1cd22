package mirrorbox

const (
	FileIDKey = "fileId"

	StorageKeyPrefix = "uploads/"

	PresignTTLSeconds = 300

	// Slack between the declared size and the stored object size.
	// Absorbs transport/multipart overhead.
	SizeToleranceBytes = 1024

	MinFingerprintLength = 8

	GenericBinaryMime = "application/octet-stream"
)
