package engine

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zlib"
	"github.com/klauspost/compress/zstd"
)

// supportedEncodings is advertised when AcceptEncoding is set to "".
const supportedEncodings = "gzip, deflate, zstd"

var errDecode = errors.New("decoding content")

// countingReader records the bytes read from the wire and the first
// transport error, so decoder failures can be told apart from read
// failures.
type countingReader struct {
	r   io.Reader
	n   int64
	err error
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.n += int64(n)
	if err != nil && !errors.Is(err, io.EOF) && c.err == nil {
		c.err = err
	}

	return n, err
}

type bodyReader struct {
	io.Reader
	src     *countingReader
	decoder io.Closer
}

// newBodyReader wraps body in a decoder for encoding when decode is set.
// The returned reader is usable for errCode even when err is non-nil.
func newBodyReader(body io.Reader, encoding string, decode bool) (*bodyReader, error) {
	src := countingReader{r: body}
	br := bodyReader{Reader: &src, src: &src}

	if !decode {
		return &br, nil
	}

	var (
		dec io.Reader
		err error
	)

	switch strings.ToLower(strings.TrimSpace(encoding)) {
	case "", "identity":
		return &br, nil

	case "gzip", "x-gzip":
		var zr *gzip.Reader
		zr, err = gzip.NewReader(&src)
		if err == nil {
			dec, br.decoder = zr, zr
		}

	case "deflate":
		var zr io.ReadCloser
		zr, err = zlib.NewReader(&src)
		if err == nil {
			dec, br.decoder = zr, zr
		}

	case "zstd":
		var zr *zstd.Decoder
		zr, err = zstd.NewReader(&src)
		if err == nil {
			dec, br.decoder = zr, zstdCloser{zr}
		}

	default:
		return &br, fmt.Errorf("%w: unknown encoding %q", errDecode, encoding)
	}

	switch {
	case errors.Is(err, io.EOF) && src.n == 0:
		// An empty body carries nothing to decode.
		return &br, nil
	case err != nil:
		return &br, fmt.Errorf("%w: %w", errDecode, err)
	}

	br.Reader = dec

	return &br, nil
}

func (b *bodyReader) Close() error {
	if b.decoder == nil {
		return nil
	}

	return b.decoder.Close()
}

// errCode maps a body read failure: wire errors are classified as
// receive failures, anything else raised while decoding is a bad content
// encoding.
func (b *bodyReader) errCode(ctx context.Context, err error) Code {
	if b.src.err != nil {
		return classify(ctx, b.src.err, phaseBody)
	}

	if b.decoder != nil || errors.Is(err, errDecode) {
		return BadContentEncoding
	}

	return classify(ctx, err, phaseBody)
}

type zstdCloser struct {
	d *zstd.Decoder
}

func (z zstdCloser) Close() error {
	z.d.Close()
	return nil
}
