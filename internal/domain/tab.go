package domain

// Tab is the browser's view of one tab as reported by the extension shim.
type Tab struct {
	ID       int
	WindowID int
	URL      string
}

// NoWindow is the window id browsers report when no window has focus.
const NoWindow = -1
