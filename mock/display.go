package mock

import "github.com/kestrelworks/gatehouse"

// Compile-time interface check
var _ gatehouse.Display = (*Display)(nil)

// Display is a mock implementation of gatehouse.Display. It records every
// shown message for assertions.
type Display struct {
	ShowErrorFn func(message string)

	Messages []string
}

func (d *Display) ShowError(message string) {
	d.Messages = append(d.Messages, message)
	if d.ShowErrorFn != nil {
		d.ShowErrorFn(message)
	}
}
