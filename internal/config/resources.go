// Package config loads the launcher configuration: the resource strings
// embedded at build time plus the TASKBAR_* environment overrides.
package config

import (
	"fmt"
	"os"

	"gopkg.in/ini.v1"
)

// ResourceSection is the INI section holding the launcher resources.
const ResourceSection = "taskbar"

// Resources holds the raw resource strings, exactly as embedded.
//
// INI format:
//
//	[taskbar]
//	cmdline = goproxy.exe -v=2
//	environment = """GODEBUG=netdns=go
//	TASKBAR_TITLE=GoProxy"""
//	proxylist = """http://127.0.0.1:8087/proxy.pac
//	127.0.0.1:8087"""
//	raspbk = """%APPDATA%\Microsoft\Network\Connections\Pbk\rasphone.pbk"""
type Resources struct {
	// CommandLine is the raw command line of the child process.
	CommandLine string

	// Environment is a newline-separated list of KEY=VALUE assignments.
	Environment string

	// ProxyList is a newline-separated list of proxy candidates.
	ProxyList string

	// ProfilePaths is a newline-separated list of remote-access phonebook files.
	ProfilePaths string
}

// ParseResources decodes an INI resource document.
// Missing keys decode as empty strings.
func ParseResources(data []byte) (Resources, error) {
	iniFile, err := ini.LoadSources(ini.LoadOptions{
		IgnoreInlineComment: true,
	}, data)
	if err != nil {
		return Resources{}, fmt.Errorf("failed to parse resources: %w", err)
	}

	sec := iniFile.Section(ResourceSection)
	return Resources{
		CommandLine:  sec.Key("cmdline").String(),
		Environment:  sec.Key("environment").String(),
		ProxyList:    sec.Key("proxylist").String(),
		ProfilePaths: sec.Key("raspbk").String(),
	}, nil
}

// LoadResourcesFile reads resources from an INI file on disk.
func LoadResourcesFile(path string) (Resources, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Resources{}, fmt.Errorf("failed to read resources %s: %w", path, err)
	}
	return ParseResources(data)
}
