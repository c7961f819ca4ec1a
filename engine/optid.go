package engine

// OptionID identifies one configuration slot of a [Session]. The numeric
// base of an id encodes the kind of value it accepts.
type OptionID int

// Kind is the value type accepted by an OptionID.
type Kind int

const (
	// KindLong options take an int64. Booleans are passed as 0 or 1.
	KindLong Kind = iota
	// KindObject options take a string, a []byte, a *List or an opaque
	// data-slot value depending on the option.
	KindObject
	// KindFunction options take a WriteFunc.
	KindFunction
)

const (
	longBase     = 0
	objectBase   = 10000
	functionBase = 20000
)

const (
	OptWriteData      OptionID = objectBase + 1
	OptURL            OptionID = objectBase + 2
	OptProxy          OptionID = objectBase + 4
	OptWriteFunction  OptionID = functionBase + 11
	OptTimeout        OptionID = longBase + 13
	OptPostFields     OptionID = objectBase + 15
	OptReferer        OptionID = objectBase + 16
	OptUserAgent      OptionID = objectBase + 18
	OptHTTPHeader     OptionID = objectBase + 23
	OptHeaderData     OptionID = objectBase + 29
	OptCustomRequest  OptionID = objectBase + 36
	OptVerbose        OptionID = longBase + 41
	OptHeader         OptionID = longBase + 42
	OptNoBody         OptionID = longBase + 44
	OptFailOnError    OptionID = longBase + 45
	OptFollowLocation OptionID = longBase + 52
	OptMaxRedirs      OptionID = longBase + 68
	OptConnectTimeout OptionID = longBase + 78
	OptHeaderFunction OptionID = functionBase + 79
	OptAcceptEncoding OptionID = objectBase + 102
	OptTimeoutMS      OptionID = longBase + 155
	OptUsername       OptionID = objectBase + 173
	OptPassword       OptionID = objectBase + 174
	OptProxyUsername  OptionID = objectBase + 175
	OptProxyPassword  OptionID = objectBase + 176
)

var optionNames = map[OptionID]string{
	OptWriteData:      "WRITEDATA",
	OptURL:            "URL",
	OptProxy:          "PROXY",
	OptWriteFunction:  "WRITEFUNCTION",
	OptTimeout:        "TIMEOUT",
	OptPostFields:     "POSTFIELDS",
	OptReferer:        "REFERER",
	OptUserAgent:      "USERAGENT",
	OptHTTPHeader:     "HTTPHEADER",
	OptHeaderData:     "HEADERDATA",
	OptCustomRequest:  "CUSTOMREQUEST",
	OptVerbose:        "VERBOSE",
	OptHeader:         "HEADER",
	OptNoBody:         "NOBODY",
	OptFailOnError:    "FAILONERROR",
	OptFollowLocation: "FOLLOWLOCATION",
	OptMaxRedirs:      "MAXREDIRS",
	OptConnectTimeout: "CONNECTTIMEOUT",
	OptHeaderFunction: "HEADERFUNCTION",
	OptAcceptEncoding: "ACCEPT_ENCODING",
	OptTimeoutMS:      "TIMEOUT_MS",
	OptUsername:       "USERNAME",
	OptPassword:       "PASSWORD",
	OptProxyUsername:  "PROXYUSERNAME",
	OptProxyPassword:  "PROXYPASSWORD",
}

// Known reports whether id is part of the option set.
func (id OptionID) Known() bool {
	_, ok := optionNames[id]
	return ok
}

// Kind returns the value kind id accepts.
func (id OptionID) Kind() Kind {
	switch {
	case id >= functionBase:
		return KindFunction
	case id >= objectBase:
		return KindObject
	default:
		return KindLong
	}
}

func (id OptionID) String() string {
	if s, ok := optionNames[id]; ok {
		return s
	}

	return "UNKNOWN"
}

// InfoID identifies a piece of information about the last transfer. The
// base encodes the type of the returned value.
type InfoID int

const (
	infoString = 0x100000
	infoLong   = 0x200000
	infoDouble = 0x300000
)

const (
	InfoEffectiveURL  InfoID = infoString + 1
	InfoResponseCode  InfoID = infoLong + 2
	InfoTotalTime     InfoID = infoDouble + 3
	InfoSizeDownload  InfoID = infoDouble + 8
	InfoHeaderSize    InfoID = infoLong + 11
	InfoContentType   InfoID = infoString + 18
	InfoRedirectCount InfoID = infoLong + 20
)
