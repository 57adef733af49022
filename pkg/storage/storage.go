// Package storage stores uploaded product pictures on a configurable disk.
//
// Two drivers exist: "local" writes under STORAGE_LOCAL_ROOT and serves via
// STORAGE_URL; "s3" targets any S3-compatible bucket (AWS, MinIO, R2). The
// disk is selected once at boot and injected into the product controller.
package storage

import (
	"context"
	"fmt"
	"io"

	"github.com/totaltools/manufacturing-api/config"
)

// Disk is the write-side interface the API needs for picture uploads.
type Disk interface {
	// Put streams content to path and returns the public URL.
	Put(ctx context.Context, path string, r io.Reader, contentType string) (string, error)
	// Delete removes path. Missing objects are not an error.
	Delete(ctx context.Context, path string) error
	// URL returns the public URL for path without writing anything.
	URL(path string) string
}

// FromConfig builds the disk named by STORAGE_DISK.
func FromConfig() (Disk, error) {
	switch name := config.StorageDisk(); name {
	case "local":
		return newLocalDisk(), nil
	case "s3":
		return newS3Disk()
	default:
		return nil, fmt.Errorf("storage: unknown disk %q (supported: local, s3)", name)
	}
}
