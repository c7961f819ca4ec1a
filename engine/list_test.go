package engine

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestList(t *testing.T) {
	var l *List
	l = l.Append("Accept: application/json")
	l = l.Append("X-Trace: 1")

	if diff := cmp.Diff([]string{"Accept: application/json", "X-Trace: 1"}, l.Lines()); diff != "" {
		t.Errorf("lines mismatch (-want +got):\n%s", diff)
	}

	lines := l.Lines()
	lines[0] = "mutated"
	if l.Lines()[0] != "Accept: application/json" {
		t.Error("Lines must return a copy")
	}

	l.Free()
	l.Free()
	if l.Len() != 0 {
		t.Errorf("exp empty list after Free, got %d lines", l.Len())
	}

	l = l.Append("Fresh: yes")
	if l.Len() != 1 {
		t.Errorf("exp a fresh list after appending to a freed one, got %d lines", l.Len())
	}

	var nilList *List
	nilList.Free()
	if nilList.Lines() != nil {
		t.Error("nil list should have no lines")
	}
}

func TestCode_String(t *testing.T) {
	testCases := []struct {
		code Code
		exp  string
	}{
		{OK, "No error"},
		{CouldntResolveHost, "Couldn't resolve host name"},
		{WriteError, "Failed writing received data to disk/application"},
		{Code(999), "Unknown error 999"},
	}

	for _, tc := range testCases {
		if got := tc.code.String(); got != tc.exp {
			t.Errorf("code %d: exp %q, got %q", tc.code, tc.exp, got)
		}
		if got := StrError(tc.code); got != tc.exp {
			t.Errorf("StrError(%d): exp %q, got %q", tc.code, tc.exp, got)
		}
	}
}

func TestOptionID_Kind(t *testing.T) {
	testCases := []struct {
		id   OptionID
		kind Kind
	}{
		{OptURL, KindObject},
		{OptTimeout, KindLong},
		{OptWriteFunction, KindFunction},
		{OptHeaderFunction, KindFunction},
		{OptHTTPHeader, KindObject},
		{OptMaxRedirs, KindLong},
	}

	for _, tc := range testCases {
		if got := tc.id.Kind(); got != tc.kind {
			t.Errorf("%s: exp kind %d, got %d", tc.id, tc.kind, got)
		}
	}

	if OptionID(99999).Known() {
		t.Error("unexpected known option")
	}
}
