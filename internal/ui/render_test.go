package ui

import (
	"strings"
	"testing"

	"github.com/foxcybersec/rust-rcon-commandline/internal/rcon"
)

func TestRenderResponse(t *testing.T) {
	raw := `{"Identifier":1,"Message":"{\"Hostname\":\"Test\"}","Type":"Generic"}`
	resp := &rcon.Response{
		Identifier: 1,
		Message:    `{"Hostname":"Test"}`,
		Type:       "Generic",
		Raw:        []byte(raw),
	}

	if got := RenderResponse(resp, true, false); got != raw {
		t.Errorf("Raw output not byte-identical, got %q, want %q", got, raw)
	}

	if got := RenderResponse(resp, false, false); got != resp.Message {
		t.Errorf("Default output should be exactly the message, got %q", got)
	}

	got := RenderResponse(resp, false, true)
	if !strings.Contains(got, resp.Message) {
		t.Errorf("Verbose output missing message, got %q", got)
	}
	if !strings.Contains(got, "identifier: 1") || !strings.Contains(got, "type: Generic") {
		t.Errorf("Verbose output missing diagnostics, got %q", got)
	}
	if strings.Contains(got, "stack:") {
		t.Errorf("Verbose output rendered an empty stack, got %q", got)
	}
}

func TestAsciiBar(t *testing.T) {
	cases := []struct {
		percent float64
		width   int
		want    string
	}{
		{0.5, 4, "[##__]"},
		{0, 4, "[____]"},
		{1, 4, "[####]"},
		{1.5, 2, "[##]"},
		{-1, 2, "[__]"},
		{0.5, 0, "[]"},
	}

	for _, c := range cases {
		if got := AsciiBar(c.percent, c.width, "#", "_"); got != c.want {
			t.Errorf("AsciiBar(%f, %d) = %q, want %q", c.percent, c.width, got, c.want)
		}
	}
}

func TestTruncate(t *testing.T) {
	cases := []struct {
		in   string
		max  int
		want string
	}{
		{"short", 10, "short"},
		{"exactly-10", 10, "exactly-10"},
		{"much too long for this", 10, "much to..."},
		{"abc", 2, "ab"},
		{"abc", 0, ""},
	}

	for _, c := range cases {
		if got := Truncate(c.in, c.max); got != c.want {
			t.Errorf("Truncate(%q, %d) = %q, want %q", c.in, c.max, got, c.want)
		}
	}
}
