// Package fileio holds the file access helpers shared by the pipeline stages.
//
// Reads are one bulk operation. Writes go to a temporary file in the destination
// directory which is renamed over the target only after it was fully written and synced,
// so a failed run never leaves a truncated table or binary behind.
package fileio

import (
	"bufio"
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
)

// ReadOptional reads the whole file at path.
// A file that does not exist is not an error: found is false and data is nil.
func ReadOptional(path string) (data []byte, found bool, err error) {
	data, err = os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, false, nil
		}
		return nil, false, err
	}
	return data, true, nil
}

// WriteAtomic streams write into a temporary file next to path and renames it into place.
func WriteAtomic(path string, perm os.FileMode, write func(w io.Writer) error) error {
	tmpPath, err := stage(path, perm, write)
	if err != nil {
		return err
	}
	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return err
	}
	return nil
}

// File is one target of WriteFilesAtomic.
type File struct {
	Path string
	Data []byte
}

// WriteFilesAtomic writes every file to a temporary file first and renames them into place
// only once all of them were written, so a write failure leaves every target untouched.
// A failing rename, after the temporary files exist, can still leave earlier targets replaced.
func WriteFilesAtomic(perm os.FileMode, files ...File) error {
	staged := make([]string, 0, len(files))
	cleanup := func(from int) {
		for _, tmpPath := range staged[from:] {
			_ = os.Remove(tmpPath)
		}
	}

	for _, f := range files {
		tmpPath, err := stage(f.Path, perm, writeBytes(f.Data))
		if err != nil {
			cleanup(0)
			return err
		}
		staged = append(staged, tmpPath)
	}

	for i, tmpPath := range staged {
		if err := os.Rename(tmpPath, files[i].Path); err != nil {
			cleanup(i)
			return err
		}
	}
	return nil
}

func writeBytes(data []byte) func(w io.Writer) error {
	return func(w io.Writer) error {
		_, err := w.Write(data)
		return err
	}
}

// stage writes a synced temporary file next to path and returns its name.
func stage(path string, perm os.FileMode, write func(w io.Writer) error) (string, error) {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".tmp-"+filepath.Base(path)+"-*")
	if err != nil {
		return "", err
	}
	tmpPath := tmp.Name()

	fail := func(err error) (string, error) {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return "", err
	}

	bw := bufio.NewWriter(tmp)
	if err := write(bw); err != nil {
		return fail(err)
	}
	if err := bw.Flush(); err != nil {
		return fail(err)
	}
	if err := tmp.Sync(); err != nil {
		return fail(err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return "", err
	}
	if err := os.Chmod(tmpPath, perm); err != nil {
		_ = os.Remove(tmpPath)
		return "", err
	}
	return tmpPath, nil
}
