package cli

import "github.com/inovacc/shelfr/internal/notify"

// ToastMsg carries a dispatched notification into the running program.
// The browse command registers a notify sender that forwards events with
// Program.Send; the active screen shows them as transient toasts.
type ToastMsg struct {
	Event *notify.Event
}

type toastExpiredMsg struct{}

type openListMsg struct {
	entity string
}

type openFormMsg struct {
	entity string
	id     string
}

type backToListMsg struct{}

type backToMenuMsg struct{}

type refOptionsMsg struct {
	field   string
	options []Option
	err     error
}
