package colorutil

import (
	"context"
	"errors"
	"fmt"

	"color-palette/internal/ui"
)

// TextSink is anything that can receive copied text, usually a clipboard.
type TextSink interface {
	WriteText(ctx context.Context, text string) error
}

var errNoSink = errors.New("no clipboard available")

// CopyToClipboard writes text to sink and reports whether it worked.
// Failures are logged and swallowed.
func CopyToClipboard(ctx context.Context, sink TextSink, text string) bool {
	if sink == nil {
		ui.LogStatus("error", "Copy failed: "+errNoSink.Error())
		return false
	}
	if err := sink.WriteText(ctx, text); err != nil {
		ui.LogStatus("error", "Copy failed: "+err.Error())
		return false
	}
	ui.LogStatus("debug", fmt.Sprintf("Copied %d bytes", len(text)))
	return true
}
