// Package engine defines the transfer engine a [transfer.Handle] drives,
// and ships the default [HTTP] engine built on [net/http] and resty.
//
// An [Engine] hands out [Session]s. A Session is configured one option at
// a time through [Session.Configure], then executed with
// [Session.Perform], which pushes received header lines and body chunks
// into the registered [WriteFunc]s synchronously, on the caller's
// goroutine, before it returns:
//
//	s := engine.Default().NewSession()
//	defer s.Destroy()
//
//	var body []byte
//	s.Configure(engine.OptURL, "http://example.com")
//	s.Configure(engine.OptWriteData, &body)
//	s.Configure(engine.OptWriteFunction, engine.WriteFunc(func(chunk []byte, data any) int {
//		b := data.(*[]byte)
//		*b = append(*b, chunk...)
//		return len(chunk)
//	}))
//	if code := s.Perform(ctx); code != engine.OK {
//		return code
//	}
//
// Every call reports a [Code]. Codes have stable numbers and fixed
// messages, so callers can surface them verbatim.
//
// [transfer.Handle]: github.com/adamwoolhether/easyhttp/transfer.Handle
package engine
