package config

import (
	"reflect"
	"testing"
)

func TestParseProxyList(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []string
	}{
		{"empty", "", []string{""}},
		{"leading and trailing newlines", "\nhttp://a.pac\nproxy.local:8080\n", []string{"", "http://a.pac", "proxy.local:8080"}},
		{"crlf", "a:1\r\nb:2\r\n", []string{"", "a:1", "b:2"}},
		{"blank lines dropped", "a:1\n\n\nb:2", []string{"", "a:1", "b:2"}},
		{"duplicates kept", "a:1\na:1", []string{"", "a:1", "a:1"}},
		{"capped", "1\n2\n3\n4\n5\n6\n7\n8\n9", []string{"", "1", "2", "3", "4", "5", "6", "7"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseProxyList(tt.input, nil)
			if !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("ParseProxyList(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestParseProxyListExpandsBeforeSplitting(t *testing.T) {
	lookup := map[string]string{
		"PAC":   "http://127.0.0.1:8087/proxy.pac",
		"MULTI": "a:1\nb:2",
	}
	expand := func(s string) string {
		return ExpandPercent(s, func(k string) (string, bool) {
			v, ok := lookup[k]
			return v, ok
		})
	}

	got := ParseProxyList("%PAC%\n%MULTI%\n%MISSING%", expand)
	want := []string{"", "http://127.0.0.1:8087/proxy.pac", "a:1", "b:2", "%MISSING%"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ParseProxyList() = %q, want %q", got, want)
	}
}

func TestParseProfilePaths(t *testing.T) {
	got := ParseProfilePaths("%APPDATA%\\a.pbk\r\n\nC:\\b.pbk\n")
	want := []string{"%APPDATA%\\a.pbk", "C:\\b.pbk"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ParseProfilePaths() = %q, want %q", got, want)
	}
	if got := ParseProfilePaths(""); len(got) != 0 {
		t.Errorf("ParseProfilePaths(\"\") = %q, want empty", got)
	}
}

func TestExpandPercent(t *testing.T) {
	env := map[string]string{"HOME": `C:\Users\me`, "Y": "2"}
	lookup := func(k string) (string, bool) {
		v, ok := env[k]
		return v, ok
	}

	tests := []struct {
		input    string
		expected string
	}{
		{"plain", "plain"},
		{`%HOME%\x`, `C:\Users\me\x`},
		{"%UNKNOWN%x%Y%", "%UNKNOWN%x2"},
		{"100%", "100%"},
		{"%%", "%%"},
		{"a%Y%b%Y%c", "a2b2c"},
	}

	for _, tt := range tests {
		result := ExpandPercent(tt.input, lookup)
		if result != tt.expected {
			t.Errorf("ExpandPercent(%q) = %q, want %q", tt.input, result, tt.expected)
		}
	}
}
