// Package clipboard adapts the host system clipboard to colorutil.TextSink.
package clipboard

import (
	"context"
	"errors"

	sysclip "github.com/atotto/clipboard"
)

// ErrUnsupported is returned when no clipboard utility is available
// (no xclip, xsel or wl-copy on Linux, for example).
var ErrUnsupported = errors.New("clipboard not supported on this host")

// ErrDisabled is returned by Disabled.
var ErrDisabled = errors.New("clipboard disabled")

// System writes to the host clipboard.
type System struct{}

// WriteText copies text to the host clipboard.
func (System) WriteText(ctx context.Context, text string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if sysclip.Unsupported {
		return ErrUnsupported
	}
	return sysclip.WriteAll(text)
}

// Disabled rejects every write. Used when NO_CLIPBOARD is set.
type Disabled struct{}

// WriteText always fails with ErrDisabled.
func (Disabled) WriteText(context.Context, string) error {
	return ErrDisabled
}
