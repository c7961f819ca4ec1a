package engine

import (
	"maps"
	"net"
	"net/http"
	"net/url"
	"time"

	"github.com/google/uuid"
)

type transferInfo struct {
	effectiveURL  string
	responseCode  int
	contentType   string
	redirectCount int
	headerSize    int
	sizeDownload  int64
	totalTime     time.Duration
}

// session is the HTTP engine's Session.
type session struct {
	id        uuid.UUID
	eng       *HTTP
	opts      map[OptionID]any
	info      transferInfo
	destroyed bool

	// transport is a clone of the engine transport owned by this session
	// while a proxy or connect timeout is configured. transportKey
	// records the settings it was built for.
	transport    *http.Transport
	transportKey string
}

func (s *session) ID() uuid.UUID {
	return s.id
}

// Configure validates value against the kind encoded in id. A nil value
// clears the slot.
func (s *session) Configure(id OptionID, value any) Code {
	if s.destroyed {
		return BadFunctionArgument
	}

	if !id.Known() {
		return UnknownOption
	}

	if value == nil {
		delete(s.opts, id)
		return OK
	}

	switch id.Kind() {
	case KindLong:
		n, ok := toLong(value)
		if !ok || (n < 0 && id != OptMaxRedirs) {
			return BadFunctionArgument
		}
		s.opts[id] = n

	case KindFunction:
		switch fn := value.(type) {
		case WriteFunc:
			s.opts[id] = fn
		case func([]byte, any) int:
			s.opts[id] = WriteFunc(fn)
		default:
			return BadFunctionArgument
		}

	case KindObject:
		switch id {
		case OptWriteData, OptHeaderData:
			s.opts[id] = value

		case OptHTTPHeader:
			l, ok := value.(*List)
			if !ok {
				return BadFunctionArgument
			}
			s.opts[id] = l

		case OptPostFields:
			switch v := value.(type) {
			case []byte:
				s.opts[id] = v
			case string:
				s.opts[id] = []byte(v)
			default:
				return BadFunctionArgument
			}

		default:
			v, ok := value.(string)
			if !ok {
				return BadFunctionArgument
			}
			s.opts[id] = v
		}
	}

	return OK
}

func toLong(v any) (int64, bool) {
	switch n := v.(type) {
	case int:
		return int64(n), true
	case int32:
		return int64(n), true
	case int64:
		return n, true
	case bool:
		if n {
			return 1, true
		}
		return 0, true
	}

	return 0, false
}

func (s *session) Reset() {
	if s.destroyed {
		return
	}

	s.opts = make(map[OptionID]any)
	s.info = transferInfo{}
	s.dropTransport()
}

// Duplicate copies every option. Callback and data slots are copied by
// reference, so both sessions push into the same sinks until one of them
// is configured with new ones. The header list is copied so the duplicate
// survives the original list being freed.
func (s *session) Duplicate() Session {
	if s.destroyed {
		return nil
	}

	id, err := uuid.NewRandom()
	if err != nil {
		s.eng.logger.Error("failed to allocate session", "error", err)
		return nil
	}

	dup := session{
		id:   id,
		eng:  s.eng,
		opts: maps.Clone(s.opts),
	}

	if l, ok := s.opts[OptHTTPHeader].(*List); ok {
		if c := l.clone(); c != nil {
			dup.opts[OptHTTPHeader] = c
		} else {
			delete(dup.opts, OptHTTPHeader)
		}
	}

	return &dup
}

func (s *session) Destroy() {
	if s.destroyed {
		return
	}

	s.dropTransport()
	s.opts = nil
	s.destroyed = true
}

func (s *session) Escape(v string) string {
	return Escape(v)
}

func (s *session) Unescape(v string) string {
	return Unescape(v)
}

// Info returns strings for string infos, int64 for long infos and float64
// for double infos.
func (s *session) Info(id InfoID) (any, Code) {
	if s.destroyed {
		return nil, BadFunctionArgument
	}

	switch id {
	case InfoEffectiveURL:
		return s.info.effectiveURL, OK
	case InfoResponseCode:
		return int64(s.info.responseCode), OK
	case InfoTotalTime:
		return s.info.totalTime.Seconds(), OK
	case InfoSizeDownload:
		return float64(s.info.sizeDownload), OK
	case InfoHeaderSize:
		return int64(s.info.headerSize), OK
	case InfoContentType:
		return s.info.contentType, OK
	case InfoRedirectCount:
		return int64(s.info.redirectCount), OK
	}

	return nil, UnknownOption
}

func (s *session) str(id OptionID) string {
	v, _ := s.opts[id].(string)
	return v
}

func (s *session) has(id OptionID) bool {
	_, ok := s.opts[id]
	return ok
}

func (s *session) long(id OptionID, def int64) int64 {
	if v, ok := s.opts[id].(int64); ok {
		return v
	}

	return def
}

func (s *session) flag(id OptionID) bool {
	return s.long(id, 0) != 0
}

// sessionTransport returns the transport for the next transfer: the
// engine transport, or a clone carrying this session's proxy and connect
// timeout.
func (s *session) sessionTransport(proxy func(*http.Request) (*url.URL, error), key string, connectTimeout time.Duration) *http.Transport {
	if proxy == nil && connectTimeout == 0 {
		s.dropTransport()
		return s.eng.transport
	}

	if s.transport != nil && s.transportKey == key {
		return s.transport
	}

	s.dropTransport()

	t := s.eng.transport.Clone()
	if proxy != nil {
		t.Proxy = proxy
	}
	if connectTimeout > 0 {
		d := net.Dialer{Timeout: connectTimeout, KeepAlive: 30 * time.Second}
		t.DialContext = d.DialContext
	}

	s.transport = t
	s.transportKey = key

	return t
}

func (s *session) dropTransport() {
	if s.transport == nil {
		return
	}

	s.transport.CloseIdleConnections()
	s.transport = nil
	s.transportKey = ""
}
