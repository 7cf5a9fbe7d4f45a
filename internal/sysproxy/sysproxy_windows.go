//go:build windows

package sysproxy

import (
	"errors"
	"fmt"
	"runtime"
	"syscall"
	"unsafe"

	"golang.org/x/sys/windows"
	"golang.org/x/sys/windows/registry"

	"github.com/goproxy/taskbar/internal/constants"
)

var (
	modwininet             = windows.NewLazySystemDLL("wininet.dll")
	procInternetSetOptionW = modwininet.NewProc("InternetSetOptionW")
)

const (
	internetOptionRefresh             = 37
	internetOptionSettingsChanged     = 39
	internetOptionPerConnectionOption = 75
)

// internetPerConnOption mirrors INTERNET_PER_CONN_OPTIONW. The value union
// is 8 bytes (FILETIME) and holds either a DWORD or a string pointer.
type internetPerConnOption struct {
	dwOption uint32
	value    uint64
}

// internetPerConnOptionList mirrors INTERNET_PER_CONN_OPTION_LISTW.
type internetPerConnOptionList struct {
	dwSize        uint32
	pszConnection *uint16
	dwOptionCount uint32
	dwOptionError uint32
	pOptions      *internetPerConnOption
}

// WinINet is the Windows accessor backed by the registry and WinINet.
type WinINet struct{}

// New returns the platform accessor.
func New() Accessor {
	return WinINet{}
}

// Current implements Accessor.
func (WinINet) Current() (string, error) {
	k, err := registry.OpenKey(registry.CURRENT_USER, constants.InternetSettingsKey, registry.QUERY_VALUE)
	if err != nil {
		return "", fmt.Errorf("failed to open registry key: %w", err)
	}
	defer k.Close()

	if url, _, err := k.GetStringValue("AutoConfigURL"); err == nil && url != "" {
		return url, nil
	}

	enabled, _, err := k.GetIntegerValue("ProxyEnable")
	if err != nil || enabled == 0 {
		return "", nil
	}

	server, _, err := k.GetStringValue("ProxyServer")
	if err != nil && !errors.Is(err, registry.ErrNotExist) {
		return "", fmt.Errorf("failed to read ProxyServer: %w", err)
	}
	return server, nil
}

// marshalOptions converts a plan into the native option array. String
// values point into the returned UTF-16 buffers, which must stay reachable
// until the options have been handed to WinINet.
func marshalOptions(plan []Option) ([]internetPerConnOption, [][]uint16, error) {
	buffers := make([][]uint16, 0, len(plan))
	options := make([]internetPerConnOption, len(plan))
	for i, opt := range plan {
		options[i].dwOption = opt.ID
		if opt.ID == OptionFlags {
			options[i].value = uint64(opt.Flags)
			continue
		}
		buf, err := windows.UTF16FromString(opt.Value)
		if err != nil {
			return nil, nil, fmt.Errorf("invalid proxy value %q: %w", opt.Value, err)
		}
		buffers = append(buffers, buf)
		options[i].value = uint64(uintptr(unsafe.Pointer(&buf[0])))
	}
	return options, buffers, nil
}

// Set implements Accessor.
func (WinINet) Set(value, connection string) error {
	options, buffers, err := marshalOptions(Plan(value))
	if err != nil {
		return err
	}

	list := internetPerConnOptionList{
		dwOptionCount: uint32(len(options)),
		pOptions:      &options[0],
	}
	list.dwSize = uint32(unsafe.Sizeof(list))
	if connection != "" {
		conn, err := windows.UTF16PtrFromString(connection)
		if err != nil {
			return fmt.Errorf("invalid connection name %q: %w", connection, err)
		}
		list.pszConnection = conn
	}

	ret, _, callErr := procInternetSetOptionW.Call(
		0,
		internetOptionPerConnectionOption,
		uintptr(unsafe.Pointer(&list)),
		uintptr(list.dwSize),
	)
	runtime.KeepAlive(buffers)
	runtime.KeepAlive(options)
	runtime.KeepAlive(&list)

	// Running connections only observe the change after these two.
	procInternetSetOptionW.Call(0, internetOptionSettingsChanged, 0, 0)
	procInternetSetOptionW.Call(0, internetOptionRefresh, 0, 0)

	if ret == 0 {
		if errno, ok := callErr.(syscall.Errno); ok && errno != 0 {
			return fmt.Errorf("InternetSetOption(%s) failed: %w", Classify(value), errno)
		}
		return fmt.Errorf("InternetSetOption(%s) failed", Classify(value))
	}
	return nil
}
