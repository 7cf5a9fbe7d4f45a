package config

import (
	"strings"
)

// ExpandPercent replaces %NAME% references using lookup.
// Unknown names and unpaired percent signs are left verbatim, which is how
// ExpandEnvironmentStrings behaves.
func ExpandPercent(s string, lookup func(string) (string, bool)) string {
	if !strings.Contains(s, "%") {
		return s
	}

	var b strings.Builder
	b.Grow(len(s))
	for {
		start := strings.IndexByte(s, '%')
		if start < 0 {
			b.WriteString(s)
			return b.String()
		}
		end := strings.IndexByte(s[start+1:], '%')
		if end < 0 {
			b.WriteString(s)
			return b.String()
		}
		end += start + 1

		name := s[start+1 : end]
		b.WriteString(s[:start])
		if value, ok := lookup(name); ok && name != "" {
			b.WriteString(value)
			s = s[end+1:]
			continue
		}
		// Keep the opening percent and rescan from the closing one: it may
		// start the next reference.
		b.WriteString(s[start:end])
		s = s[end:]
	}
}
