package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

const s3Scheme = "s3://"

// Location is a parsed file reference: a local path or an S3 object
type Location struct {
	Path   string
	Bucket string
	Key    string
}

// IsS3 reports whether the location names an object
func (l Location) IsS3() bool {
	return l.Bucket != ""
}

func (l Location) String() string {
	if l.IsS3() {
		return s3Scheme + l.Bucket + "/" + l.Key
	}
	return l.Path
}

// ParseLocation accepts a local path or s3://bucket/key
func ParseLocation(ref string) (Location, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return Location{}, errors.New("file location is required")
	}
	if !strings.HasPrefix(ref, s3Scheme) {
		return Location{Path: ref}, nil
	}
	bucket, key, ok := strings.Cut(strings.TrimPrefix(ref, s3Scheme), "/")
	if !ok || bucket == "" || key == "" {
		return Location{}, fmt.Errorf("invalid S3 location %q: want s3://bucket/key", ref)
	}
	return Location{Bucket: bucket, Key: key}, nil
}

// ObjectStore is the subset of S3ObjectStorage that FileSource needs
type ObjectStore interface {
	Open(ctx context.Context, bucket, key string) (io.ReadCloser, error)
	Upload(ctx context.Context, bucket, key string, data []byte, contentType string) error
}

// FileSource opens and writes files by location, dispatching s3:// to the
// object store and everything else to the local filesystem.
type FileSource struct {
	objects ObjectStore
}

// NewFileSource creates a source. objects may be nil when S3 is not
// configured; S3 locations then fail.
func NewFileSource(objects ObjectStore) *FileSource {
	return &FileSource{objects: objects}
}

// Open returns a reader for ref
func (f *FileSource) Open(ctx context.Context, ref string) (io.ReadCloser, error) {
	loc, err := ParseLocation(ref)
	if err != nil {
		return nil, err
	}
	if loc.IsS3() {
		if f.objects == nil {
			return nil, fmt.Errorf("cannot read %s: object storage is not configured", loc)
		}
		return f.objects.Open(ctx, loc.Bucket, loc.Key)
	}
	file, err := os.Open(filepath.Clean(loc.Path))
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", loc.Path, err)
	}
	return file, nil
}

// Write stores data at ref, replacing any existing file
func (f *FileSource) Write(ctx context.Context, ref string, data []byte, contentType string) error {
	loc, err := ParseLocation(ref)
	if err != nil {
		return err
	}
	if loc.IsS3() {
		if f.objects == nil {
			return fmt.Errorf("cannot write %s: object storage is not configured", loc)
		}
		return f.objects.Upload(ctx, loc.Bucket, loc.Key, data, contentType)
	}
	if err := os.WriteFile(filepath.Clean(loc.Path), data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", loc.Path, err)
	}
	return nil
}
