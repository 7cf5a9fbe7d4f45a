// Package console hosts the console window the child process writes to.
//
// On Windows the launcher is a GUI program, so the console is allocated at
// startup and shown or hidden from the tray. Elsewhere a headless stand-in
// keeps the visibility state and writes to stdout.
package console

// CloseFunc is invoked when the user closes the console window or the
// session ends. It runs on a system thread, not the message loop thread.
type CloseFunc func()
