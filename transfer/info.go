package transfer

import (
	"time"

	"github.com/adamwoolhether/easyhttp/engine"
)

// The getters below read information about the last Perform.

func (h *Handle) ResponseCode() (int, error) {
	v, err := info[int64](h, engine.InfoResponseCode)
	return int(v), err
}

func (h *Handle) EffectiveURL() (string, error) {
	return info[string](h, engine.InfoEffectiveURL)
}

func (h *Handle) ContentType() (string, error) {
	return info[string](h, engine.InfoContentType)
}

func (h *Handle) RedirectCount() (int, error) {
	v, err := info[int64](h, engine.InfoRedirectCount)
	return int(v), err
}

func (h *Handle) HeaderSize() (int, error) {
	v, err := info[int64](h, engine.InfoHeaderSize)
	return int(v), err
}

// SizeDownload is the number of body bytes received, before decoding.
func (h *Handle) SizeDownload() (int64, error) {
	v, err := info[float64](h, engine.InfoSizeDownload)
	return int64(v), err
}

func (h *Handle) TotalTime() (time.Duration, error) {
	v, err := info[float64](h, engine.InfoTotalTime)
	return time.Duration(v * float64(time.Second)), err
}

func info[T any](h *Handle, id engine.InfoID) (T, error) {
	var zero T

	if err := h.check("info"); err != nil {
		return zero, err
	}

	v, code := h.session.Info(id)
	if code != engine.OK {
		return zero, &Error{Op: "info", Code: code}
	}

	t, ok := v.(T)
	if !ok {
		return zero, &Error{Op: "info", Code: engine.BadFunctionArgument}
	}

	return t, nil
}
