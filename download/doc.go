// Package download provides a [File] sink that streams a transfer body
// to disk.
//
// Chunks are written to a temporary file next to the destination. The
// file is only renamed into place by [File.Commit], after the byte count
// and optional checksum have been verified. [File.Abort] removes it:
//
//	f, err := download.Open(destPath, logger, download.WithChecksum(sha256.New(), sum))
//	if err != nil {
//		return err
//	}
//	// register f as the body sink and perform the transfer
//	if err := h.Perform(ctx); err != nil {
//		f.Abort()
//		return err
//	}
//	return f.Commit(received)
//
// Most callers should use [github.com/adamwoolhether/easyhttp/client],
// whose Download method drives a File.
package download
