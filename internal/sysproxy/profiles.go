package sysproxy

import (
	"bufio"
	"errors"
	"io"
	"os"
	"strings"

	"github.com/goproxy/taskbar/internal/logging"
)

// ProfileSections returns the connection names defined in a phonebook file,
// in file order. Every line of the form "[name]" is one remote-access
// connection; all other lines are ignored, so values never hide a header.
func ProfileSections(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var names []string
	r := bufio.NewReader(f)
	for {
		line, err := r.ReadString('\n')
		if name, ok := sectionHeader(line); ok {
			names = append(names, name)
		}
		if errors.Is(err, io.EOF) {
			return names, nil
		}
		if err != nil {
			return names, err
		}
	}
}

// sectionHeader reports the name of a "[name]" line. The name is taken
// verbatim and must not be empty.
func sectionHeader(line string) (string, bool) {
	line = strings.TrimRight(line, "\r\n")
	if len(line) < 3 || line[0] != '[' || line[len(line)-1] != ']' {
		return "", false
	}
	return line[1 : len(line)-1], true
}

// ApplyToProfiles sets value on every connection found in the phonebook
// files. Paths are expanded with expand before use. Unreadable
// files are skipped; a failing connection does not stop the others.
// It returns the number of connections updated.
func ApplyToProfiles(acc Accessor, value string, paths []string, expand func(string) string, logger *logging.Logger) int {
	if logger == nil {
		logger = logging.Nop()
	}

	updated := 0
	for _, raw := range paths {
		path := raw
		if expand != nil {
			path = expand(raw)
		}

		sections, err := ProfileSections(path)
		if err != nil {
			logger.Debug().Err(err).Str("path", path).Msg("Skipping phonebook")
			continue
		}

		for _, name := range sections {
			if err := acc.Set(value, name); err != nil {
				logger.Debug().Err(err).Str("connection", name).Msg("Failed to set connection proxy")
				continue
			}
			updated++
		}
	}
	return updated
}
