package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"

	"slotpatch/core/fileio"

	"github.com/minio/minio-go/v7"
)

// Artifact is a local file exchanged with the bucket under its base name.
type Artifact struct {
	Name string
	Path string
}

// NewArtifact names the artifact after the base name of path.
func NewArtifact(p string) Artifact {
	return Artifact{Name: filepath.Base(p), Path: p}
}

// Progress observes transfers. It may be nil.
type Progress interface {
	// Track wraps r so reads are reported against size bytes.
	Track(name string, size int64, r io.Reader) io.Reader
	// Done finishes the transfer of name; err is nil on success.
	Done(name string, err error)
}

// ObjectKey joins prefix and name into an object key.
func ObjectKey(prefix, name string) string {
	if prefix == "" {
		return name
	}
	return path.Join(prefix, name)
}

// Publish uploads every artifact to bucket, creating the bucket if it does not exist.
// It returns the object keys written, in artifact order.
func Publish(ctx context.Context, client Client, bucket, prefix string, artifacts []Artifact, progress Progress) ([]string, error) {
	exists, err := client.BucketExists(ctx, bucket)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket %s: %w", bucket, err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("failed to create bucket %s: %w", bucket, err)
		}
	}

	keys := make([]string, 0, len(artifacts))
	for _, a := range artifacts {
		key := ObjectKey(prefix, a.Name)
		err := upload(ctx, client, bucket, key, a, progress)
		if progress != nil {
			progress.Done(a.Name, err)
		}
		if err != nil {
			return keys, err
		}
		keys = append(keys, key)
	}
	return keys, nil
}

func upload(ctx context.Context, client Client, bucket, key string, a Artifact, progress Progress) error {
	f, err := os.Open(a.Path)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", a.Path, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return fmt.Errorf("failed to stat %s: %w", a.Path, err)
	}

	var r io.Reader = f
	if progress != nil {
		r = progress.Track(a.Name, info.Size(), r)
	}

	_, err = client.PutObject(ctx, bucket, key, r, info.Size(), minio.PutObjectOptions{
		ContentType: "application/octet-stream",
	})
	if err != nil {
		return fmt.Errorf("failed to upload %s: %w", key, err)
	}
	return nil
}

// Fetch downloads every artifact from bucket into its local path.
// Artifacts with no object are reported in missing and leave the local file untouched.
func Fetch(ctx context.Context, client Client, bucket, prefix string, artifacts []Artifact, progress Progress) (fetched, missing []string, err error) {
	exists, err := client.BucketExists(ctx, bucket)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to check bucket %s: %w", bucket, err)
	}
	if !exists {
		return nil, nil, fmt.Errorf("bucket %s does not exist", bucket)
	}

	for _, a := range artifacts {
		key := ObjectKey(prefix, a.Name)
		info, err := client.StatObject(ctx, bucket, key, minio.StatObjectOptions{})
		if err != nil {
			if isNotFound(err) {
				missing = append(missing, a.Name)
				continue
			}
			return fetched, missing, fmt.Errorf("failed to stat %s: %w", key, err)
		}

		err = download(ctx, client, bucket, key, info.Size, a, progress)
		if progress != nil {
			progress.Done(a.Name, err)
		}
		if err != nil {
			return fetched, missing, err
		}
		fetched = append(fetched, a.Name)
	}
	return fetched, missing, nil
}

func download(ctx context.Context, client Client, bucket, key string, size int64, a Artifact, progress Progress) error {
	obj, err := client.GetObject(ctx, bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return fmt.Errorf("failed to get %s: %w", key, err)
	}
	defer obj.Close()

	var r io.Reader = obj
	if progress != nil {
		r = progress.Track(a.Name, size, r)
	}

	err = fileio.WriteAtomic(a.Path, 0o644, func(w io.Writer) error {
		_, err := io.Copy(w, r)
		return err
	})
	if err != nil {
		return fmt.Errorf("failed to download %s to %s: %w", key, a.Path, err)
	}
	return nil
}

func isNotFound(err error) bool {
	switch minio.ToErrorResponse(err).Code {
	case "NoSuchKey", "NotFound":
		return true
	}
	return false
}
