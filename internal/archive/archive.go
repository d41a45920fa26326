// Package archive stores the original uploaded workbooks in object storage
// so a disputed ingestion can be traced back to its source file. Archival
// is optional infrastructure; the work queue never depends on it.
package archive

import (
	"bytes"
	"context"
	"fmt"
	"path"
	"time"

	"picking_portal_backend/platform/config"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

const workbookContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// Archiver stores source workbooks, keyed by tenant and upload time.
type Archiver interface {
	StoreSourceFile(ctx context.Context, tenantID uuid.UUID, filename string, payload []byte) error
}

// MinIOArchiver implements Archiver on a MinIO bucket.
type MinIOArchiver struct {
	client *minio.Client
	bucket string
}

// NewMinIOArchiver creates the archiver and verifies configuration.
func NewMinIOArchiver(cfg config.MinIOConfig) (*MinIOArchiver, error) {
	if !cfg.IsMinIOEnabled() {
		return nil, fmt.Errorf("MinIO is not configured")
	}

	client, err := minio.New(cfg.GetMinIOEndpoint(), &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.GetMinIOAccessKey(), cfg.GetMinIOSecretKey(), ""),
		Secure: cfg.GetMinIOUseSSL(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create MinIO client: %w", err)
	}

	return &MinIOArchiver{
		client: client,
		bucket: cfg.GetMinioBucketSourceFiles(),
	}, nil
}

// EnsureBucketExists creates the archive bucket if it doesn't exist.
func (a *MinIOArchiver) EnsureBucketExists(ctx context.Context) error {
	exists, err := a.client.BucketExists(ctx, a.bucket)
	if err != nil {
		return fmt.Errorf("failed to check bucket existence: %w", err)
	}

	if !exists {
		if err := a.client.MakeBucket(ctx, a.bucket, minio.MakeBucketOptions{}); err != nil {
			return fmt.Errorf("failed to create bucket %s: %w", a.bucket, err)
		}
	}

	return nil
}

// StoreSourceFile writes the workbook under tenant/date/filename. The key
// carries a short random suffix so re-uploads of the same file never
// overwrite an earlier archive entry.
func (a *MinIOArchiver) StoreSourceFile(ctx context.Context, tenantID uuid.UUID, filename string, payload []byte) error {
	ext := path.Ext(filename)
	base := filename[:len(filename)-len(ext)]
	key := fmt.Sprintf("%s/%s/%s_%s%s",
		tenantID, time.Now().Format("2006-01-02"), base, uuid.New().String()[:8], ext)

	_, err := a.client.PutObject(ctx, a.bucket, key,
		bytes.NewReader(payload), int64(len(payload)),
		minio.PutObjectOptions{ContentType: workbookContentType})
	if err != nil {
		return fmt.Errorf("failed to archive source file %s: %w", filename, err)
	}
	return nil
}

var _ Archiver = (*MinIOArchiver)(nil)
