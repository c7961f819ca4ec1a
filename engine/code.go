package engine

import "strconv"

// Code is the terminal status of one engine call. Numbers and messages
// match libcurl's CURLcode.
type Code int

const (
	OK                     Code = 0
	UnsupportedProtocol    Code = 1
	FailedInit             Code = 2
	URLMalformat           Code = 3
	CouldntResolveProxy    Code = 5
	CouldntResolveHost     Code = 6
	CouldntConnect         Code = 7
	HTTPReturnedError      Code = 22
	WriteError             Code = 23
	OperationTimedOut      Code = 28
	SSLConnectError        Code = 35
	AbortedByCallback      Code = 42
	BadFunctionArgument    Code = 43
	TooManyRedirects       Code = 47
	UnknownOption          Code = 48
	GotNothing             Code = 52
	SendError              Code = 55
	RecvError              Code = 56
	PeerFailedVerification Code = 60
	BadContentEncoding     Code = 61
)

var codeText = map[Code]string{
	OK:                     "No error",
	UnsupportedProtocol:    "Unsupported protocol",
	FailedInit:             "Failed initialization",
	URLMalformat:           "URL using bad/illegal format or missing URL",
	CouldntResolveProxy:    "Couldn't resolve proxy name",
	CouldntResolveHost:     "Couldn't resolve host name",
	CouldntConnect:         "Couldn't connect to server",
	HTTPReturnedError:      "HTTP response code said error",
	WriteError:             "Failed writing received data to disk/application",
	OperationTimedOut:      "Timeout was reached",
	SSLConnectError:        "SSL connect error",
	AbortedByCallback:      "Operation was aborted by an application callback",
	BadFunctionArgument:    "A libcurl function was given a bad argument",
	TooManyRedirects:       "Number of redirects hit maximum amount",
	UnknownOption:          "An unknown option was passed in to libcurl",
	GotNothing:             "Server returned nothing (no headers, no data)",
	SendError:              "Failed sending data to the peer",
	RecvError:              "Failure when receiving data from the peer",
	PeerFailedVerification: "SSL peer certificate or SSH remote key was not OK",
	BadContentEncoding:     "Unrecognized or bad HTTP Content or Transfer-Encoding",
}

// String returns the human-readable message for c.
func (c Code) String() string {
	if s, ok := codeText[c]; ok {
		return s
	}

	return "Unknown error " + strconv.Itoa(int(c))
}

// Error implements the error interface so a Code can be wrapped and
// matched with errors.Is.
func (c Code) Error() string {
	return c.String()
}

// StrError returns the message for c. It is the package-level form of
// [Code.String] used by engines that keep no per-instance text table.
func StrError(c Code) string {
	return c.String()
}
