package admission

import (
	"context"
	"mime"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	mirrorbox "hostly/mirrorbox"
	"hostly/mirrorbox/internal/admission/dto"
	"hostly/mirrorbox/internal/entities"
	"hostly/mirrorbox/internal/repository"
	"hostly/mirrorbox/internal/storage"
	"hostly/mirrorbox/pkg/apierrors"
	"hostly/mirrorbox/pkg/jobqueue"
	"hostly/mirrorbox/pkg/metrics"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

const (
	metaUploadID     = "upload-id"
	metaFilename     = "filename"
	metaDeclaredSize = "declared-size"
	metaDeclaredMime = "declared-mime"
	metaFingerprint  = "fingerprint"
)

type Service interface {
	RequestCredential(ctx context.Context, inp dto.PresignRequest) (*dto.PresignResponse, error)
	Admit(ctx context.Context, key string) (*entities.File, error)
}

type Enqueuer interface {
	Enqueue(job jobqueue.Job) error
}

// Config caps what a client may declare and, independently on admit,
// what a stored object may actually be.
type Config struct {
	MaxSize             int64
	AllowedMimePrefixes []string
}

type AdmissionService struct {
	logger  *zap.SugaredLogger
	files   repository.Files
	gateway storage.Gateway
	queue   Enqueuer
	cfg     *Config
}

func NewService(logger *zap.SugaredLogger,
	files repository.Files,
	gateway storage.Gateway,
	queue Enqueuer,
	cfg *Config) *AdmissionService {
	return &AdmissionService{
		logger:  logger,
		files:   files,
		gateway: gateway,
		queue:   queue,
		cfg:     cfg,
	}
}

func (s *AdmissionService) RequestCredential(ctx context.Context, inp dto.PresignRequest) (*dto.PresignResponse, error) {

	filename := sanitizeMeta(inp.Filename)
	if filename == "" {
		return nil, apierrors.Validation("filename must not be empty")
	}

	if inp.Size <= 0 {
		return nil, apierrors.Validation("size must be a positive byte count")
	}
	if inp.Size > s.cfg.MaxSize {
		return nil, apierrors.Validation("size %d exceeds the maximum upload size %d", inp.Size, s.cfg.MaxSize)
	}

	if !s.mimeAllowed(inp.MimeType) {
		return nil, apierrors.Validation("mime type %s is not allowed", inp.MimeType)
	}

	ext := extensionOf(inp.Filename)
	if !isAlphanumeric(ext) {
		return nil, apierrors.Validation("file extension must be alphanumeric")
	}

	if err := checkExtensionMime(ext, inp.MimeType); err != nil {
		return nil, err
	}

	fingerprint := sanitizeMeta(inp.Fingerprint)
	if fingerprint != "" && len(fingerprint) < mirrorbox.MinFingerprintLength {
		return nil, apierrors.Validation("fingerprint is implausibly short")
	}

	id := uuid.NewString()
	key := mirrorbox.StorageKeyPrefix + id + "." + ext

	// Bound to the write credential; verified against the stored
	// object on admit.
	md := map[string]string{
		metaUploadID:     id,
		metaFilename:     filename,
		metaDeclaredSize: strconv.FormatInt(inp.Size, 10),
		metaDeclaredMime: inp.MimeType,
	}
	if fingerprint != "" {
		md[metaFingerprint] = fingerprint
	}

	url, err := s.gateway.IssueWriteCredential(ctx, key, inp.MimeType, md, time.Second*mirrorbox.PresignTTLSeconds)
	if err != nil {
		return nil, apierrors.WrapInternal(err, "AdmissionService.RequestCredential.IssueWriteCredential")
	}

	return &dto.PresignResponse{
		ID:        id,
		URL:       url,
		Key:       key,
		Filename:  filename,
		MimeType:  inp.MimeType,
		Size:      inp.Size,
		ExpiresIn: mirrorbox.PresignTTLSeconds,
	}, nil
}

func (s *AdmissionService) Admit(ctx context.Context, key string) (*entities.File, error) {

	// Path-traversal guard: only keys minted by RequestCredential are
	// trusted.
	if !strings.HasPrefix(key, mirrorbox.StorageKeyPrefix) || strings.Contains(key, "..") {
		metrics.AdmissionsTotal.WithLabelValues("rejected").Inc()
		return nil, apierrors.Validation("invalid storage key")
	}

	info, err := s.gateway.ReadObjectMetadata(ctx, key)
	if err != nil {
		if errors.Is(err, storage.ErrObjectNotFound) {
			metrics.AdmissionsTotal.WithLabelValues("rejected").Inc()
			return nil, apierrors.Validation("no uploaded object found for key")
		}

		return nil, apierrors.WrapInternal(err, "AdmissionService.Admit.ReadObjectMetadata")
	}

	uploadID := info.Metadata[metaUploadID]
	filename := info.Metadata[metaFilename]
	declaredSizeRaw := info.Metadata[metaDeclaredSize]
	declaredMime := info.Metadata[metaDeclaredMime]

	// A write that bypassed RequestCredential carries none of the
	// bound metadata. Do not delete: the key was never ours to own.
	if uploadID == "" || filename == "" || declaredSizeRaw == "" || declaredMime == "" {
		metrics.AdmissionsTotal.WithLabelValues("rejected").Inc()
		return nil, apierrors.Validation("upload metadata is missing; the credentialed write path was bypassed")
	}

	declaredSize, err := strconv.ParseInt(declaredSizeRaw, 10, 64)
	if err != nil {
		metrics.AdmissionsTotal.WithLabelValues("rejected").Inc()
		return nil, apierrors.Validation("upload metadata is malformed")
	}

	if diff := info.Size - declaredSize; diff > mirrorbox.SizeToleranceBytes || diff < -mirrorbox.SizeToleranceBytes {
		s.deleteQuietly(ctx, key)
		metrics.AdmissionsTotal.WithLabelValues("deleted").Inc()
		return nil, apierrors.Integrity("stored size does not match declared size", map[string]interface{}{
			"actualSize":   info.Size,
			"declaredSize": declaredSize,
		})
	}

	if info.ContentType != declaredMime {
		s.deleteQuietly(ctx, key)
		metrics.AdmissionsTotal.WithLabelValues("deleted").Inc()
		return nil, apierrors.Integrity("stored content type does not match declared mime type", map[string]interface{}{
			"actualMimeType":   info.ContentType,
			"declaredMimeType": declaredMime,
		})
	}

	// Re-check against actual values, independently of what was
	// declared at presign time.
	if !s.mimeAllowed(info.ContentType) {
		s.deleteQuietly(ctx, key)
		metrics.AdmissionsTotal.WithLabelValues("deleted").Inc()
		return nil, apierrors.Integrity("stored mime type is not allowed", map[string]interface{}{
			"actualMimeType": info.ContentType,
		})
	}
	if info.Size > s.cfg.MaxSize {
		s.deleteQuietly(ctx, key)
		metrics.AdmissionsTotal.WithLabelValues("deleted").Inc()
		return nil, apierrors.Integrity("stored object exceeds the maximum upload size", map[string]interface{}{
			"actualSize": info.Size,
			"maxSize":    s.cfg.MaxSize,
		})
	}

	now := time.Now().UTC()
	f := &entities.File{
		ID:          uploadID,
		Filename:    filename,
		Size:        info.Size,
		MimeType:    info.ContentType,
		StorageKey:  key,
		Fingerprint: info.Metadata[metaFingerprint],
		Status:      entities.FileStatusPending,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	ok, err := s.files.Save(ctx, f)
	if err != nil {
		return nil, apierrors.WrapInternal(err, "AdmissionService.Admit.files.Save")
	}
	if !ok {
		return nil, apierrors.Conflict("file %s is already admitted", uploadID)
	}

	// Not transactional with Save: a lost job leaves the file pending
	// until the reconciliation sweep re-enqueues it.
	if err := s.queue.Enqueue(jobqueue.Job{FileID: f.ID}); err != nil {
		s.logger.Errorf("could not enqueue fan-out job for file %s: %s", f.ID, err.Error())
	}

	metrics.AdmissionsTotal.WithLabelValues("admitted").Inc()
	return f, nil
}

func (s *AdmissionService) mimeAllowed(mimeType string) bool {
	for _, prefix := range s.cfg.AllowedMimePrefixes {
		if strings.HasPrefix(mimeType, prefix) {
			return true
		}
	}
	return false
}

func (s *AdmissionService) deleteQuietly(ctx context.Context, key string) {
	if err := s.gateway.DeleteObject(ctx, key); err != nil {
		s.logger.Errorf("could not delete rejected object %s: %s", key, err.Error())
	}
}

func extensionOf(filename string) string {
	return strings.ToLower(strings.TrimPrefix(filepath.Ext(filename), "."))
}

func isAlphanumeric(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z':
		case r >= 'A' && r <= 'Z':
		case r >= '0' && r <= '9':
		default:
			return false
		}
	}
	return true
}

// checkExtensionMime rejects a declared mime type the extension's
// known mapping disagrees with. Extensions without a known mapping
// are accepted only for the generic binary type.
func checkExtensionMime(ext string, declared string) error {
	known := mime.TypeByExtension("." + ext)
	if known == "" {
		if declared == mirrorbox.GenericBinaryMime {
			return nil
		}
		return apierrors.Validation("extension .%s has no known mime mapping", ext)
	}

	// Alias-aware comparison (e.g. image/jpg vs image/jpeg).
	if mt := mimetype.Lookup(known); mt != nil && mt.Is(declared) {
		return nil
	}

	if mediaType(known) == mediaType(declared) {
		return nil
	}

	return apierrors.Validation("declared mime type %s does not match extension .%s", declared, ext)
}

func mediaType(v string) string {
	mt, _, err := mime.ParseMediaType(v)
	if err != nil {
		return v
	}
	return mt
}

// sanitizeMeta strips control characters and newlines: these values
// end up as blob-store object metadata (header-encoded).
func sanitizeMeta(v string) string {
	return strings.Map(func(r rune) rune {
		if r < 0x20 || r == 0x7f {
			return -1
		}
		return r
	}, strings.TrimSpace(v))
}
