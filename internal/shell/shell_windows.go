//go:build windows

package shell

import (
	"fmt"
	"runtime"
	"syscall"
	"unsafe"

	"github.com/lxn/win"
	"golang.org/x/sys/windows"

	"github.com/goproxy/taskbar/internal/constants"
	"github.com/goproxy/taskbar/internal/logging"
	"github.com/goproxy/taskbar/internal/tray"
)

// callbackMessage is delivered by the shell for mouse activity on the icon.
const callbackMessage = win.WM_USER + 20

const idiApplication = 32512

var (
	moduser32       = windows.NewLazySystemDLL("user32.dll")
	procAppendMenuW = moduser32.NewProc("AppendMenuW")

	modkernel32              = windows.NewLazySystemDLL("kernel32.dll")
	procGetSystemDefaultLCID = modkernel32.NewProc("GetSystemDefaultLCID")
)

// The window procedure is registered once per process and dispatches to
// the single Host.
var (
	wndProcPtr uintptr
	host       *Host
)

// Host is the hidden window owning the notify icon. All methods except
// Close must be called on the thread that called New.
type Host struct {
	hwnd           win.HWND
	icon           win.HICON
	taskbarCreated uint32
	handler        func(tray.Event)
	logger         *logging.Logger
}

// New registers the window class and creates the hidden host window. The
// calling goroutine is locked to its OS thread for the window's lifetime.
func New(title string, logger *logging.Logger) (*Host, error) {
	if logger == nil {
		logger = logging.Nop()
	}
	if host != nil {
		return nil, fmt.Errorf("shell host already created")
	}

	runtime.LockOSThread()

	h := &Host{logger: logger}
	hInst := win.GetModuleHandle(nil)

	// Icon resource 1 is linked into the executable when present.
	h.icon = win.LoadIcon(hInst, win.MAKEINTRESOURCE(1))
	if h.icon == 0 {
		h.icon = win.LoadIcon(0, win.MAKEINTRESOURCE(idiApplication))
	}

	className, err := syscall.UTF16PtrFromString(constants.WindowClass)
	if err != nil {
		return nil, err
	}
	windowName, err := syscall.UTF16PtrFromString(title)
	if err != nil {
		return nil, fmt.Errorf("invalid window title: %w", err)
	}

	if wndProcPtr == 0 {
		wndProcPtr = syscall.NewCallback(wndProc)
	}
	wc := win.WNDCLASSEX{
		CbSize:        uint32(unsafe.Sizeof(win.WNDCLASSEX{})),
		LpfnWndProc:   wndProcPtr,
		HInstance:     hInst,
		HIcon:         h.icon,
		LpszClassName: className,
	}
	if win.RegisterClassEx(&wc) == 0 {
		return nil, fmt.Errorf("RegisterClassEx failed: %w", windows.GetLastError())
	}

	h.taskbarCreated = win.RegisterWindowMessage(syscall.StringToUTF16Ptr("TaskbarCreated"))

	host = h
	h.hwnd = win.CreateWindowEx(0, className, windowName,
		win.WS_OVERLAPPED|win.WS_SYSMENU,
		0, 0, 0, 0, 0, 0, hInst, nil)
	if h.hwnd == 0 {
		host = nil
		return nil, fmt.Errorf("CreateWindowEx failed: %w", windows.GetLastError())
	}
	win.ShowWindow(h.hwnd, win.SW_HIDE)

	return h, nil
}

// SetHandler installs the event sink. Events arriving before it is set are
// passed to DefWindowProc.
func (h *Host) SetHandler(fn func(tray.Event)) {
	h.handler = fn
}

func wndProc(hwnd win.HWND, msg uint32, wParam, lParam uintptr) uintptr {
	h := host
	if h == nil || h.handler == nil || hwnd != h.hwnd {
		return win.DefWindowProc(hwnd, msg, wParam, lParam)
	}

	if msg == h.taskbarCreated {
		h.handler(tray.Event{Kind: tray.EventTaskbarCreated})
		return 0
	}

	switch msg {
	case callbackMessage:
		switch uint32(lParam) {
		case win.WM_LBUTTONUP:
			h.handler(tray.Event{Kind: tray.EventLeftClick})
		case win.WM_RBUTTONUP:
			h.handler(tray.Event{Kind: tray.EventRightClick})
		}
		return 0
	case win.WM_COMMAND:
		h.handler(tray.Event{Kind: tray.EventCommand, Command: int(wParam & 0xffff)})
		return 0
	case win.WM_CLOSE:
		h.handler(tray.Event{Kind: tray.EventClose})
		return 0
	case win.WM_DESTROY:
		h.handler(tray.Event{Kind: tray.EventDestroy})
		return 0
	}
	return win.DefWindowProc(hwnd, msg, wParam, lParam)
}

func (h *Host) notifyData() win.NOTIFYICONDATA {
	var nid win.NOTIFYICONDATA
	nid.CbSize = uint32(unsafe.Sizeof(nid))
	nid.HWnd = h.hwnd
	nid.UID = constants.IconUID
	return nid
}

func (h *Host) iconData(icon tray.Icon) win.NOTIFYICONDATA {
	nid := h.notifyData()
	nid.UFlags = win.NIF_ICON | win.NIF_MESSAGE | win.NIF_TIP | win.NIF_INFO
	nid.UCallbackMessage = callbackMessage
	nid.HIcon = h.icon
	nid.DwInfoFlags = win.NIIF_INFO
	// uTimeout shares its slot with uVersion.
	nid.UVersion = uint32(icon.BalloonTimeout.Milliseconds())
	copyUTF16(nid.SzTip[:], icon.Tip)
	copyUTF16(nid.SzInfo[:], icon.Info)
	copyUTF16(nid.SzInfoTitle[:], icon.InfoTitle)
	return nid
}

// copyUTF16 fills dst with s, truncated and always NUL terminated.
func copyUTF16(dst []uint16, s string) {
	u, err := syscall.UTF16FromString(s)
	if err != nil {
		u = []uint16{0}
	}
	if len(u) > len(dst) {
		u = u[:len(dst)]
		u[len(u)-1] = 0
	}
	copy(dst, u)
}

// AddIcon registers the icon. If Explorer still knows it the existing icon
// is updated instead, so there is never more than one.
func (h *Host) AddIcon(icon tray.Icon) error {
	nid := h.iconData(icon)
	if win.Shell_NotifyIcon(win.NIM_ADD, &nid) {
		return nil
	}
	if win.Shell_NotifyIcon(win.NIM_MODIFY, &nid) {
		return nil
	}
	return fmt.Errorf("Shell_NotifyIcon(NIM_ADD) failed")
}

// ModifyIcon updates the tip and shows the balloon.
func (h *Host) ModifyIcon(icon tray.Icon) error {
	nid := h.iconData(icon)
	if !win.Shell_NotifyIcon(win.NIM_MODIFY, &nid) {
		return fmt.Errorf("Shell_NotifyIcon(NIM_MODIFY) failed")
	}
	return nil
}

// DeleteIcon removes the icon.
func (h *Host) DeleteIcon() error {
	nid := h.notifyData()
	if !win.Shell_NotifyIcon(win.NIM_DELETE, &nid) {
		return fmt.Errorf("Shell_NotifyIcon(NIM_DELETE) failed")
	}
	return nil
}

// ShowMenu tracks menu at the cursor and returns the chosen command.
func (h *Host) ShowMenu(menu tray.Menu) (int, bool) {
	hMenu := win.CreatePopupMenu()
	if hMenu == 0 {
		h.logger.Warn().Msg("CreatePopupMenu failed")
		return 0, false
	}
	// Destroys the submenus as well.
	defer win.DestroyMenu(hMenu)

	appendItems(hMenu, menu.Items)

	var pt win.POINT
	win.GetCursorPos(&pt)
	// Without foreground the menu does not close on an outside click.
	win.SetForegroundWindow(h.hwnd)
	cmd := win.TrackPopupMenu(hMenu,
		win.TPM_RETURNCMD|win.TPM_LEFTALIGN|win.TPM_RIGHTBUTTON,
		pt.X, pt.Y, 0, h.hwnd, nil)
	win.PostMessage(h.hwnd, win.WM_NULL, 0, 0)

	id := int(cmd)
	return id, id != 0
}

func appendItems(hMenu win.HMENU, items []tray.MenuItem) {
	for _, item := range items {
		label, err := syscall.UTF16PtrFromString(item.Label)
		if err != nil {
			continue
		}
		if item.Submenu != nil {
			sub := win.CreatePopupMenu()
			appendItems(sub, item.Submenu)
			procAppendMenuW.Call(uintptr(hMenu), uintptr(win.MF_STRING|win.MF_POPUP), uintptr(sub), uintptr(unsafe.Pointer(label)))
			continue
		}
		flags := uint32(win.MF_STRING)
		if item.Checked {
			flags |= win.MF_CHECKED
		}
		procAppendMenuW.Call(uintptr(hMenu), uintptr(flags), uintptr(item.ID), uintptr(unsafe.Pointer(label)))
	}
}

// ShowError shows a modal error box.
func (h *Host) ShowError(title, text string) {
	t, _ := syscall.UTF16PtrFromString(title)
	m, _ := syscall.UTF16PtrFromString(text)
	win.MessageBox(h.hwnd, m, t, win.MB_OK|win.MB_ICONERROR)
}

// Quit posts WM_QUIT to end Run.
func (h *Host) Quit() {
	win.PostQuitMessage(0)
}

// Close asks the window to close. Safe to call from any thread.
func (h *Host) Close() {
	win.SendMessage(h.hwnd, win.WM_CLOSE, 0, 0)
}

// Run pumps messages until WM_QUIT and returns its exit code.
func (h *Host) Run() int {
	var msg win.MSG
	for win.GetMessage(&msg, 0, 0, 0) > 0 {
		win.TranslateMessage(&msg)
		win.DispatchMessage(&msg)
	}
	return int(msg.WParam)
}

// SystemLocale returns the system default LCID.
func SystemLocale() uint32 {
	lcid, _, _ := procGetSystemDefaultLCID.Call()
	return uint32(lcid)
}
