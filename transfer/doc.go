// Package transfer wraps one engine session in a [Handle] with a typed
// option model.
//
// Options are plain values from a closed set. [Handle.Apply] maps each
// one onto one or more engine configuration calls and stops at the first
// rejected value:
//
//	h := transfer.NewDefault()
//	defer h.Close()
//
//	var body sink.Buffer
//	err := h.Apply(
//		transfer.URL("https://example.com"),
//		transfer.FollowLocation(true),
//		transfer.Callback{Data: engine.OptWriteData, Func: engine.OptWriteFunction, Sink: &body},
//	)
//	if err != nil {
//		return err
//	}
//	if err := h.Perform(ctx); err != nil {
//		return err
//	}
//
// A Handle is not safe for concurrent use. Use [Handle.Duplicate] to get
// an independent copy for another goroutine.
package transfer
