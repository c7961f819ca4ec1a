package engine

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"errors"
	"io"
	"net"

	"github.com/adamwoolhether/easyhttp/throttle"
)

type phase int

const (
	phaseRequest phase = iota
	phaseBody
)

// classify maps a transport error to a Code. p tells whether the error
// was raised before a response arrived or while reading its body.
func classify(ctx context.Context, err error, p phase) Code {
	if err == nil {
		return OK
	}

	var (
		opErr      *net.OpError
		dnsErr     *net.DNSError
		verifyErr  *tls.CertificateVerificationError
		authErr    x509.UnknownAuthorityError
		hostErr    x509.HostnameError
		invalidErr x509.CertificateInvalidError
		recordErr  tls.RecordHeaderError
		alertErr   tls.AlertError
		netErr     net.Error
	)

	switch {
	case errors.Is(err, errTooManyRedirects):
		return TooManyRedirects

	case errors.Is(err, context.Canceled), errors.Is(ctx.Err(), context.Canceled):
		return AbortedByCallback

	case errors.Is(err, context.DeadlineExceeded), errors.Is(ctx.Err(), context.DeadlineExceeded):
		return OperationTimedOut

	case errors.Is(err, throttle.ErrWaitingFailed), errors.Is(err, throttle.ErrContextEnded):
		// The limiter refuses to wait past the transfer deadline.
		return OperationTimedOut

	case errors.As(err, &opErr) && opErr.Op == "proxyconnect":
		if errors.As(err, &dnsErr) {
			return CouldntResolveProxy
		}
		return CouldntConnect

	case errors.As(err, &dnsErr):
		return CouldntResolveHost

	case errors.As(err, &verifyErr),
		errors.As(err, &authErr),
		errors.As(err, &hostErr),
		errors.As(err, &invalidErr):
		return PeerFailedVerification

	case errors.As(err, &recordErr), errors.As(err, &alertErr):
		return SSLConnectError

	case errors.As(err, &netErr) && netErr.Timeout():
		return OperationTimedOut

	case errors.As(err, &opErr) && opErr.Op == "dial":
		return CouldntConnect

	case errors.Is(err, io.EOF), errors.Is(err, io.ErrUnexpectedEOF):
		if p == phaseRequest {
			return GotNothing
		}
		return RecvError

	case errors.As(err, &opErr) && opErr.Op == "write":
		return SendError
	}

	if p == phaseRequest {
		return SendError
	}

	return RecvError
}
