package storage_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"slotpatch/core/storage"
	"slotpatch/core/storage/mocks"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type recordingProgress struct {
	tracked []string
	done    map[string]error
}

func (p *recordingProgress) Track(name string, _ int64, r io.Reader) io.Reader {
	p.tracked = append(p.tracked, name)
	return r
}

func (p *recordingProgress) Done(name string, err error) {
	if p.done == nil {
		p.done = map[string]error{}
	}
	p.done[name] = err
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	return p
}

func TestNewClient(t *testing.T) {
	for name, cfg := range map[string]storage.Config{
		"SchemeStripped":  {Endpoint: "https://s3.amazonaws.com", UseSSL: true, Region: "us-east-1"},
		"TimeoutFallback": {Endpoint: "localhost:9000", TimeoutSeconds: -1},
	} {
		t.Run(name, func(t *testing.T) {
			client, err := storage.NewClient(cfg)
			require.NoError(t, err)
			assert.NotNil(t, client)
		})
	}
}

func TestObjectKey(t *testing.T) {
	assert.Equal(t, "strings.txt", storage.ObjectKey("", "strings.txt"))
	assert.Equal(t, "slotpatch/strings.txt", storage.ObjectKey("slotpatch", "strings.txt"))
	assert.Equal(t, "a/b/strings.txt", storage.ObjectKey("a/b/", "strings.txt"))
}

func TestPublish(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	table := storage.NewArtifact(writeFile(t, dir, "strings.txt", "table"))
	binary := storage.NewArtifact(writeFile(t, dir, "HW_EN.EXE", "binary"))

	t.Run("CreatesMissingBucket", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("BucketExists", ctx, "translations").Return(false, nil)
		client.On("MakeBucket", ctx, "translations", minio.MakeBucketOptions{}).Return(nil)
		client.On("PutObject", ctx, "translations", "slotpatch/strings.txt", []byte("table"), int64(5), mock.Anything).
			Return(minio.UploadInfo{}, nil)
		client.On("PutObject", ctx, "translations", "slotpatch/HW_EN.EXE", []byte("binary"), int64(6), mock.Anything).
			Return(minio.UploadInfo{}, nil)

		progress := &recordingProgress{}
		keys, err := storage.Publish(ctx, client, "translations", "slotpatch", []storage.Artifact{table, binary}, progress)
		require.NoError(t, err)
		assert.Equal(t, []string{"slotpatch/strings.txt", "slotpatch/HW_EN.EXE"}, keys)
		assert.Equal(t, []string{"strings.txt", "HW_EN.EXE"}, progress.tracked)
		assert.NoError(t, progress.done["HW_EN.EXE"])
		client.AssertExpectations(t)
	})

	t.Run("UploadFailureStops", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("BucketExists", ctx, "translations").Return(true, nil)
		client.On("PutObject", ctx, "translations", "strings.txt", mock.Anything, mock.Anything, mock.Anything).
			Return(minio.UploadInfo{}, errors.New("denied"))

		progress := &recordingProgress{}
		keys, err := storage.Publish(ctx, client, "translations", "", []storage.Artifact{table, binary}, progress)
		assert.ErrorContains(t, err, "denied")
		assert.Empty(t, keys)
		assert.Error(t, progress.done["strings.txt"])
		client.AssertNotCalled(t, "MakeBucket", mock.Anything, mock.Anything, mock.Anything)
		client.AssertNumberOfCalls(t, "PutObject", 1)
	})

	t.Run("MissingLocalFile", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("BucketExists", ctx, "translations").Return(true, nil)

		_, err := storage.Publish(ctx, client, "translations", "", []storage.Artifact{{Name: "x", Path: filepath.Join(dir, "nope")}}, nil)
		assert.ErrorIs(t, err, os.ErrNotExist)
	})

	t.Run("BucketCheckFails", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("BucketExists", ctx, "translations").Return(false, errors.New("unreachable"))

		_, err := storage.Publish(ctx, client, "translations", "", []storage.Artifact{table}, nil)
		assert.ErrorContains(t, err, "unreachable")
	})
}

func TestFetch(t *testing.T) {
	ctx := context.Background()

	t.Run("DownloadsAndReportsMissing", func(t *testing.T) {
		dir := t.TempDir()
		tablePath := filepath.Join(dir, "strings.txt")
		keepPath := writeFile(t, dir, "HW_EN.EXE", "local")

		client := new(mocks.Client)
		client.On("BucketExists", ctx, "translations").Return(true, nil)
		client.On("StatObject", ctx, "translations", "slotpatch/strings.txt", minio.StatObjectOptions{}).
			Return(minio.ObjectInfo{Size: 6}, nil)
		client.On("GetObject", ctx, "translations", "slotpatch/strings.txt", minio.GetObjectOptions{}).
			Return(io.NopCloser(bytes.NewReader([]byte("remote"))), nil)
		client.On("StatObject", ctx, "translations", "slotpatch/HW_EN.EXE", minio.StatObjectOptions{}).
			Return(minio.ObjectInfo{}, minio.ErrorResponse{Code: "NoSuchKey"})

		artifacts := []storage.Artifact{storage.NewArtifact(tablePath), storage.NewArtifact(keepPath)}
		fetched, missing, err := storage.Fetch(ctx, client, "translations", "slotpatch", artifacts, &recordingProgress{})
		require.NoError(t, err)
		assert.Equal(t, []string{"strings.txt"}, fetched)
		assert.Equal(t, []string{"HW_EN.EXE"}, missing)

		data, err := os.ReadFile(tablePath)
		require.NoError(t, err)
		assert.Equal(t, "remote", string(data))

		data, err = os.ReadFile(keepPath)
		require.NoError(t, err)
		assert.Equal(t, "local", string(data))
		client.AssertExpectations(t)
	})

	t.Run("MissingBucket", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("BucketExists", ctx, "translations").Return(false, nil)

		_, _, err := storage.Fetch(ctx, client, "translations", "", nil, nil)
		assert.ErrorContains(t, err, "does not exist")
	})

	t.Run("StatFailure", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("BucketExists", ctx, "translations").Return(true, nil)
		client.On("StatObject", ctx, "translations", "strings.txt", minio.StatObjectOptions{}).
			Return(minio.ObjectInfo{}, minio.ErrorResponse{Code: "AccessDenied"})

		_, _, err := storage.Fetch(ctx, client, "translations", "", []storage.Artifact{{Name: "strings.txt", Path: "unused"}}, nil)
		assert.ErrorContains(t, err, "failed to stat strings.txt")
	})

	t.Run("GetFailureLeavesNoFile", func(t *testing.T) {
		dir := t.TempDir()
		target := filepath.Join(dir, "strings.txt")

		client := new(mocks.Client)
		client.On("BucketExists", ctx, "translations").Return(true, nil)
		client.On("StatObject", ctx, "translations", "strings.txt", minio.StatObjectOptions{}).
			Return(minio.ObjectInfo{Size: 3}, nil)
		client.On("GetObject", ctx, "translations", "strings.txt", minio.GetObjectOptions{}).
			Return(nil, errors.New("reset"))

		progress := &recordingProgress{}
		_, _, err := storage.Fetch(ctx, client, "translations", "", []storage.Artifact{storage.NewArtifact(target)}, progress)
		assert.ErrorContains(t, err, "reset")
		assert.Error(t, progress.done["strings.txt"])
		assert.NoFileExists(t, target)
	})
}
