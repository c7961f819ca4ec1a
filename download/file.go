package download

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"
)

// File is a sink.Sink that writes accepted chunks to a temporary file
// beside the destination path.
type File struct {
	dest     string
	file     *os.File
	writer   io.Writer
	logger   *slog.Logger
	checksum *checksumVerifier
	progress *progress
	total    int64
	err      error
	done     bool
}

// Open creates the temporary file for destPath. With WithSkipExisting it
// returns ErrSkipped when destPath already exists.
func Open(destPath string, logger *slog.Logger, optFns ...Option) (*File, error) {
	var opts options
	for _, opt := range optFns {
		if err := opt(&opts); err != nil {
			return nil, fmt.Errorf("applying option: %w", err)
		}
	}

	if logger == nil {
		logger = slog.Default()
	}

	if opts.skipExisting {
		if _, err := os.Stat(destPath); err == nil {
			logger.Info("skipping existing file", "path", destPath)
			return nil, ErrSkipped
		}
	}

	file, err := os.CreateTemp(filepath.Dir(destPath), ".easyhttp-dl-*")
	if err != nil {
		return nil, fmt.Errorf("creating temp file: %w", err)
	}

	f := File{
		dest:     destPath,
		file:     file,
		writer:   file,
		logger:   logger,
		checksum: opts.checksum,
		total:    -1,
	}

	if f.checksum != nil {
		f.checksum.hash.Reset()
		f.writer = io.MultiWriter(file, f.checksum)
	}

	if opts.progress {
		f.progress = &progress{logger: logger, total: -1, startTime: time.Now()}
	}

	return &f, nil
}

// SetTotal records the expected number of bytes received from the wire,
// usually the response Content-Length.
func (f *File) SetTotal(n int64) {
	f.total = n
	if f.progress != nil {
		f.progress.total = n
	}
}

// Accept writes chunk to the temporary file. A failed write acknowledges
// fewer bytes than offered, which aborts the transfer.
func (f *File) Accept(chunk []byte) int {
	if f.err != nil || f.done {
		return 0
	}

	n, err := f.writer.Write(chunk)
	if err != nil {
		f.err = fmt.Errorf("writing temp file: %w", err)
	}

	if f.progress != nil {
		f.progress.add(n)
	}

	return n
}

// Err returns the first write error.
func (f *File) Err() error {
	return f.err
}

// Commit verifies the download and renames it into place. received is
// the number of body bytes read from the wire and is checked against the
// total set with SetTotal. On any failure the temporary file is removed.
func (f *File) Commit(received int64) error {
	if f.done {
		return ErrFinished
	}

	if err := f.commit(received); err != nil {
		f.Abort()
		return err
	}

	f.done = true

	if f.progress != nil {
		f.progress.log("download complete")
	}

	return nil
}

func (f *File) commit(received int64) error {
	if f.err != nil {
		return f.err
	}

	if f.total >= 0 && received != f.total {
		return &Error{
			Err:    ErrContentLengthMismatch,
			Detail: fmt.Sprintf("expected %d bytes, got %d", f.total, received),
		}
	}

	if err := f.checksum.verify(); err != nil {
		return err
	}

	if err := f.file.Sync(); err != nil {
		return fmt.Errorf("syncing temp file: %w", err)
	}
	if err := f.file.Close(); err != nil {
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Rename(f.file.Name(), f.dest); err != nil {
		return fmt.Errorf("renaming temp file: %w", err)
	}

	return nil
}

// Abort closes and removes the temporary file. Aborting a finished File
// is a no-op.
func (f *File) Abort() {
	if f.done {
		return
	}
	f.done = true

	if err := f.file.Close(); err != nil && !errors.Is(err, os.ErrClosed) {
		f.logger.Error("failed to close temp file", "error", err)
	}
	if err := os.Remove(f.file.Name()); err != nil && !errors.Is(err, os.ErrNotExist) {
		f.logger.Error("failed to remove temp file", "error", err)
	}
}
