package engine

import "testing"

func TestEscape(t *testing.T) {
	testCases := []struct {
		name string
		in   string
		exp  string
	}{
		{name: "spaces", in: "lol and stuff", exp: "lol%20and%20stuff"},
		{name: "unreserved", in: "AZaz09-._~", exp: "AZaz09-._~"},
		{name: "reserved", in: "a/b?c=d&e", exp: "a%2Fb%3Fc%3Dd%26e"},
		{name: "plus", in: "1+1", exp: "1%2B1"},
		{name: "utf8", in: "é", exp: "%C3%A9"},
		{name: "empty", in: "", exp: ""},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Escape(tc.in); got != tc.exp {
				t.Errorf("exp %q, got %q", tc.exp, got)
			}
		})
	}
}

func TestUnescape(t *testing.T) {
	testCases := []struct {
		name string
		in   string
		exp  string
	}{
		{name: "spaces", in: "lol%20and%20stuff", exp: "lol and stuff"},
		{name: "lower hex", in: "%c3%a9", exp: "é"},
		{name: "plus kept", in: "a+b", exp: "a+b"},
		{name: "truncated escape", in: "100%", exp: "100%"},
		{name: "short escape", in: "%4", exp: "%4"},
		{name: "non hex escape", in: "%zz", exp: "%zz"},
		{name: "no escapes", in: "plain", exp: "plain"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Unescape(tc.in); got != tc.exp {
				t.Errorf("exp %q, got %q", tc.exp, got)
			}
		})
	}
}

func TestEscape_RoundTrip(t *testing.T) {
	inputs := []string{
		"",
		"lol and stuff",
		"100%",
		"%20",
		"a/b?c=d&e#f",
		"\x00\x01\xff",
		"日本語",
		"+-._~",
	}

	for _, in := range inputs {
		if got := Unescape(Escape(in)); got != in {
			t.Errorf("round trip of %q returned %q", in, got)
		}
	}
}
