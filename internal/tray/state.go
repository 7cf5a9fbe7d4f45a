// Package tray implements the notification-area icon: its state machine,
// context menu and the commands the menu dispatches. Native calls go
// through the Shell interface so the controller runs anywhere.
package tray

// State is the lifecycle state of the tray icon.
type State int

const (
	// StateHidden is the state before the icon is first registered.
	StateHidden State = iota
	// StateIdle means the icon is registered and no menu is open.
	StateIdle
	// StateMenuOpen lasts while the context menu is being tracked.
	StateMenuOpen
	// StateDestroyed is terminal; every event is ignored.
	StateDestroyed
)

func (s State) String() string {
	switch s {
	case StateHidden:
		return "hidden"
	case StateIdle:
		return "idle"
	case StateMenuOpen:
		return "menu-open"
	case StateDestroyed:
		return "destroyed"
	default:
		return "unknown"
	}
}

// EventKind identifies what happened on the host window.
type EventKind int

const (
	// EventTaskbarCreated is broadcast when Explorer (re)starts.
	EventTaskbarCreated EventKind = iota
	EventLeftClick
	EventRightClick
	// EventCommand carries a menu id in Event.Command.
	EventCommand
	EventClose
	EventDestroy
)

func (k EventKind) String() string {
	switch k {
	case EventTaskbarCreated:
		return "taskbar-created"
	case EventLeftClick:
		return "left-click"
	case EventRightClick:
		return "right-click"
	case EventCommand:
		return "command"
	case EventClose:
		return "close"
	case EventDestroy:
		return "destroy"
	default:
		return "unknown"
	}
}

// Event is a message delivered to Controller.Handle.
type Event struct {
	Kind    EventKind
	Command int
}
