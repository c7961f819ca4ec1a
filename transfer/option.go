package transfer

import (
	"time"

	"github.com/adamwoolhether/easyhttp/engine"
	"github.com/adamwoolhether/easyhttp/sink"
)

// Option is one transfer setting. The set of options is closed; see the
// types in this file.
type Option interface {
	option()
}

type (
	// Username for server authentication.
	Username string
	// Password for server authentication.
	Password string
	// URL to transfer. A missing scheme defaults to http.
	URL string
	// Referer header value.
	Referer string
	// UserAgent header value.
	UserAgent string
	// AcceptEncoding advertises and decodes content encodings. An empty
	// value advertises every supported encoding.
	AcceptEncoding string
	// CustomRequest replaces the request method.
	CustomRequest string
	// Timeout bounds the whole transfer.
	Timeout time.Duration
	// ConnectTimeout bounds connection setup. It is rounded up to whole
	// seconds.
	ConnectTimeout time.Duration
	// Verbose logs the wire exchange at debug level.
	Verbose bool
	// ShowHeaders also pushes the response header block to the body
	// callback.
	ShowHeaders bool
	// FollowLocation follows redirects.
	FollowLocation bool
	// FailOnError turns a status of 400 or more into
	// engine.HTTPReturnedError.
	FailOnError bool
	// MaxRedirects caps followed redirects. -1 means unlimited.
	MaxRedirects int
	// PostFields is the request body. Setting it makes the default method
	// POST.
	PostFields []byte
	// NoBody skips the response body, making the request a HEAD.
	NoBody bool
)

// Proxy routes the transfer through Host. User and Pass are only set when
// non-nil, so a Proxy without credentials keeps earlier ones.
type Proxy struct {
	Host string
	User *string
	Pass *string
}

// HeaderList hands a raw header list to the slot ID. The list must stay
// allocated until the transfer that uses it has concluded.
type HeaderList struct {
	ID   engine.OptionID
	List *engine.List
}

// Callback registers Sink in the Data slot and the trampoline in the Func
// slot. A nil Sink clears both slots.
type Callback struct {
	Data engine.OptionID
	Func engine.OptionID
	Sink sink.Sink
}

func (Username) option()       {}
func (Password) option()       {}
func (URL) option()            {}
func (Referer) option()        {}
func (UserAgent) option()      {}
func (AcceptEncoding) option() {}
func (CustomRequest) option()  {}
func (Timeout) option()        {}
func (ConnectTimeout) option() {}
func (Verbose) option()        {}
func (ShowHeaders) option()    {}
func (FollowLocation) option() {}
func (FailOnError) option()    {}
func (MaxRedirects) option()   {}
func (PostFields) option()     {}
func (NoBody) option()         {}
func (Proxy) option()          {}
func (HeaderList) option()     {}
func (Callback) option()       {}

type call struct {
	id    engine.OptionID
	value any
}

// calls expands opt into the engine configuration calls it stands for,
// in order.
func calls(opt Option) []call {
	switch o := opt.(type) {
	case Username:
		return []call{{engine.OptUsername, string(o)}}
	case Password:
		return []call{{engine.OptPassword, string(o)}}
	case URL:
		return []call{{engine.OptURL, string(o)}}
	case Referer:
		return []call{{engine.OptReferer, string(o)}}
	case UserAgent:
		return []call{{engine.OptUserAgent, string(o)}}
	case AcceptEncoding:
		return []call{{engine.OptAcceptEncoding, string(o)}}
	case CustomRequest:
		return []call{{engine.OptCustomRequest, string(o)}}
	case Timeout:
		return []call{{engine.OptTimeoutMS, millis(time.Duration(o))}}
	case ConnectTimeout:
		return []call{{engine.OptConnectTimeout, seconds(time.Duration(o))}}
	case Verbose:
		return []call{{engine.OptVerbose, long(bool(o))}}
	case ShowHeaders:
		return []call{{engine.OptHeader, long(bool(o))}}
	case FollowLocation:
		return []call{{engine.OptFollowLocation, long(bool(o))}}
	case FailOnError:
		return []call{{engine.OptFailOnError, long(bool(o))}}
	case NoBody:
		return []call{{engine.OptNoBody, long(bool(o))}}
	case MaxRedirects:
		return []call{{engine.OptMaxRedirs, int64(o)}}
	case PostFields:
		return []call{{engine.OptPostFields, []byte(o)}}

	case Proxy:
		cs := []call{{engine.OptProxy, o.Host}}
		if o.User != nil {
			cs = append(cs, call{engine.OptProxyUsername, *o.User})
		}
		if o.Pass != nil {
			cs = append(cs, call{engine.OptProxyPassword, *o.Pass})
		}
		return cs

	case HeaderList:
		return []call{{o.ID, o.List}}

	case Callback:
		if o.Sink == nil {
			return []call{{o.Data, nil}, {o.Func, nil}}
		}
		return []call{{o.Data, o.Sink}, {o.Func, sink.Trampoline}}
	}

	return nil
}

func long(b bool) int64 {
	if b {
		return 1
	}

	return 0
}

// millis keeps a positive sub-millisecond duration from collapsing to
// zero, which would disable the timeout.
func millis(d time.Duration) int64 {
	ms := d.Milliseconds()
	if d > 0 && ms == 0 {
		return 1
	}

	return ms
}

func seconds(d time.Duration) int64 {
	if d <= 0 {
		return int64(d / time.Second)
	}

	return int64((d + time.Second - 1) / time.Second)
}
