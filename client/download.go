package client

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/adamwoolhether/easyhttp/download"
	"github.com/adamwoolhether/easyhttp/engine"
	"github.com/adamwoolhether/easyhttp/header"
)

// Download streams the response body of req into destPath. The body is
// written to a temporary file beside destPath and renamed into place only
// when the status matches expCode and every verification passes.
func (c *Client) Download(ctx context.Context, req Request, expCode int, destPath string, opts ...DownloadOption) error {
	if err := Validate(req); err != nil {
		return fmt.Errorf("validating request: %w", err)
	}

	file, err := download.Open(destPath, c.logger, opts...)
	if err != nil {
		if errors.Is(err, download.ErrSkipped) {
			return nil
		}
		return fmt.Errorf("opening destination: %w", err)
	}

	dl := downloadSinks{file: file, expCode: expCode}

	c.mu.Lock()
	res, err := c.perform(ctx, req, &dl, &dlHeaders{dl: &dl})
	c.mu.Unlock()

	if err != nil {
		file.Abort()

		if werr := file.Err(); werr != nil {
			return werr
		}

		var terr *TransferError
		if ctx.Err() != nil && errors.As(err, &terr) && terr.Code == engine.AbortedByCallback {
			return fmt.Errorf("%w: %w", download.ErrDownloadCancelled, ctx.Err())
		}

		return err
	}

	if res.status != expCode {
		file.Abort()
		return unexpectedStatus(res.status, []byte(dl.errBody.String()))
	}

	if err := file.Commit(res.received); err != nil {
		return fmt.Errorf("committing download: %w", err)
	}

	return nil
}

// downloadSinks routes body chunks to the file when the response status
// is the expected one and keeps a capped copy otherwise.
type downloadSinks struct {
	file    *download.File
	expCode int
	status  int
	errBody strings.Builder
}

func (d *downloadSinks) Accept(chunk []byte) int {
	if d.status == d.expCode {
		return d.file.Accept(chunk)
	}

	if room := maxErrBodySize - d.errBody.Len(); room > 0 {
		d.errBody.Write(chunk[:min(room, len(chunk))])
	}

	return len(chunk)
}

// dlHeaders reads the status line and Content-Length of the final
// response.
type dlHeaders struct {
	dl *downloadSinks
}

func (h *dlHeaders) Accept(chunk []byte) int {
	line := strings.TrimRight(string(chunk), "\r\n")

	if strings.HasPrefix(line, "HTTP/") {
		if fields := strings.Fields(line); len(fields) >= 2 {
			h.dl.status, _ = strconv.Atoi(fields[1])
		}
		return len(chunk)
	}

	name, value, ok := strings.Cut(line, ":")
	if ok && strings.EqualFold(strings.TrimSpace(name), header.ContentLength) {
		if n, err := strconv.ParseInt(strings.TrimSpace(value), 10, 64); err == nil {
			h.dl.file.SetTotal(n)
		}
	}

	return len(chunk)
}

// DownloadJob is one entry of a [Client.DownloadAll] batch.
type DownloadJob struct {
	Request  Request
	ExpCode  int
	DestPath string
	Options  []DownloadOption
}

// DownloadAll runs jobs concurrently, at most limit at a time, each on
// its own clone of c. A limit of zero or less means no limit. The first
// failure cancels the remaining jobs and is returned.
func (c *Client) DownloadAll(ctx context.Context, jobs []DownloadJob, limit int) error {
	g, ctx := errgroup.WithContext(ctx)
	if limit > 0 {
		g.SetLimit(limit)
	}

	for _, job := range jobs {
		g.Go(func() error {
			clone, err := c.Clone()
			if err != nil {
				return fmt.Errorf("cloning client for %s: %w", job.DestPath, err)
			}
			defer clone.Close()

			if err := clone.Download(ctx, job.Request, job.ExpCode, job.DestPath, job.Options...); err != nil {
				return fmt.Errorf("downloading %s: %w", job.DestPath, err)
			}

			return nil
		})
	}

	return g.Wait()
}
