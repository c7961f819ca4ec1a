package header

// Request header names.
const (
	Accept             = "Accept"
	AcceptCharset      = "Accept-Charset"
	AcceptEncoding     = "Accept-Encoding"
	AcceptLanguage     = "Accept-Language"
	AcceptDatetime     = "Accept-Datetime"
	Authorization      = "Authorization"
	CacheControl       = "Cache-Control"
	Connection         = "Connection"
	ContentLength      = "Content-Length"
	ContentMD5         = "Content-MD5"
	Cookie             = "Cookie"
	Date               = "Date"
	Expect             = "Expect"
	From               = "From"
	Host               = "Host"
	IfMatch            = "If-Match"
	IfModifiedSince    = "If-Modified-Since"
	MaxForwards        = "Max-Forwards"
	Origin             = "Origin"
	ProxyAuthorization = "Proxy-Authorization"
	Range              = "Range"
	Referer            = "Referer"
	TE                 = "TE"
	Upgrade            = "Upgrade"
	UserAgent          = "User-Agent"
	Via                = "Via"
	Warning            = "Warning"
)

// Response header names.
const (
	AccessControlAllowOrigin = "Access-Control-Allow-Origin"
	AcceptRanges             = "Accept-Ranges"
	Age                      = "Age"
	Allow                    = "Allow"
	ContentEncoding          = "Content-Encoding"
	ContentLanguage          = "Content-Language"
	ContentLocation          = "Content-Location"
	ContentDisposition       = "Content-Disposition"
	ContentRange             = "Content-Range"
	ContentType              = "Content-Type"
	ETag                     = "ETag"
	Expires                  = "Expires"
	LastModified             = "Last-Modified"
	Link                     = "Link"
	Location                 = "Location"
	P3P                      = "P3P"
	Pragma                   = "Pragma"
	ProxyAuthenticate        = "Proxy-Authenticate"
	Refresh                  = "Refresh"
	RetryAfter               = "Retry-After"
	Server                   = "Server"
	SetCookie                = "Set-Cookie"
	Status                   = "Status"
	StrictTransportSecurity  = "Strict-Transport-Security"
	Trailer                  = "Trailer"
	TransferEncoding         = "Transfer-Encoding"
	Vary                     = "Vary"
	WWWAuthenticate          = "WWW-Authenticate"
)
