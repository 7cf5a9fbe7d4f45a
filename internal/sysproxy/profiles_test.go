package sysproxy

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

type setCall struct {
	value      string
	connection string
}

type recordingAccessor struct {
	current string
	calls   []setCall
	failOn  string
}

func (r *recordingAccessor) Current() (string, error) { return r.current, nil }

func (r *recordingAccessor) Set(value, connection string) error {
	if connection != "" && connection == r.failOn {
		return errors.New("boom")
	}
	r.calls = append(r.calls, setCall{value, connection})
	return nil
}

const phonebook = "[Office VPN]\r\nMEDIA=rastapi\r\nPort=VPN2-0\r\n\r\n[Home Dial-Up]\r\nPhoneNumber=555\r\n"

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("failed to write test file: %v", err)
	}
	return path
}

func TestProfileSections(t *testing.T) {
	path := writeFile(t, t.TempDir(), "rasphone.pbk", phonebook)

	got, err := ProfileSections(path)
	if err != nil {
		t.Fatalf("ProfileSections failed: %v", err)
	}
	want := []string{"Office VPN", "Home Dial-Up"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ProfileSections() = %q, want %q", got, want)
	}
}

func TestApplyToProfiles(t *testing.T) {
	dir := t.TempDir()
	first := writeFile(t, dir, "a.pbk", phonebook)
	second := writeFile(t, dir, "b.pbk", "[Mobile]\nDevice=modem\n")
	missing := filepath.Join(dir, "missing.pbk")

	acc := &recordingAccessor{}
	n := ApplyToProfiles(acc, "127.0.0.1:8087", []string{first, missing, second}, nil, nil)

	if n != 3 {
		t.Errorf("ApplyToProfiles updated %d connections, want 3", n)
	}
	want := []setCall{
		{"127.0.0.1:8087", "Office VPN"},
		{"127.0.0.1:8087", "Home Dial-Up"},
		{"127.0.0.1:8087", "Mobile"},
	}
	if !reflect.DeepEqual(acc.calls, want) {
		t.Errorf("Set calls = %+v, want %+v", acc.calls, want)
	}
}

func TestApplyToProfiles_ExpandsPaths(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "rasphone.pbk", phonebook)

	expand := func(s string) string { return strings.ReplaceAll(s, "%PBKDIR%", dir) }
	acc := &recordingAccessor{}
	n := ApplyToProfiles(acc, "", []string{"%PBKDIR%/rasphone.pbk"}, expand, nil)

	if n != 2 {
		t.Errorf("ApplyToProfiles updated %d connections, want 2", n)
	}
	for _, c := range acc.calls {
		if c.value != "" {
			t.Errorf("Set value = %q, want direct", c.value)
		}
	}
}

func TestApplyToProfiles_ContinuesAfterFailure(t *testing.T) {
	path := writeFile(t, t.TempDir(), "rasphone.pbk", phonebook)

	acc := &recordingAccessor{failOn: "Office VPN"}
	n := ApplyToProfiles(acc, "http://x/y.pac", []string{path}, nil, nil)

	if n != 1 {
		t.Errorf("ApplyToProfiles updated %d connections, want 1", n)
	}
	if len(acc.calls) != 1 || acc.calls[0].connection != "Home Dial-Up" {
		t.Errorf("Set calls = %+v", acc.calls)
	}
}

func TestApplyToProfiles_NoPaths(t *testing.T) {
	acc := &recordingAccessor{}
	if n := ApplyToProfiles(acc, "x:1", nil, nil, nil); n != 0 {
		t.Errorf("ApplyToProfiles with no paths = %d, want 0", n)
	}
}

func TestProfileSectionsHeadersOnly(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    []string
	}{
		{"value with trailing backslash", "[Office VPN]\nPath=C:\\dial\\\n[Home]\nPort=COM1\n", []string{"Office VPN", "Home"}},
		{"unclosed triple quote", "[Office VPN]\nComment=\"\"\"never closed\n[Home]\n", []string{"Office VPN", "Home"}},
		{"connection named DEFAULT", "[DEFAULT]\nMEDIA=rastapi\n[Home]\n", []string{"DEFAULT", "Home"}},
		{"empty and padded brackets", "[]\n [Indented]\n[Spaced Name ]\n[Tail]", []string{"Spaced Name ", "Tail"}},
		{"no headers", "MEDIA=rastapi\n", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, t.TempDir(), "rasphone.pbk", tt.content)
			got, err := ProfileSections(path)
			if err != nil {
				t.Fatalf("ProfileSections failed: %v", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ProfileSections() = %q, want %q", got, tt.want)
			}
		})
	}
}
