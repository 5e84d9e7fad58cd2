package util

import (
	"fmt"

	"golang.design/x/clipboard"
)

// CopyToClipboard copies the given text to the system clipboard.
//
// Initialisation happens internally and is safe to repeat. The call can
// fail in headless environments (e.g. CI servers without a display) or
// when clipboard access is restricted by the operating system.
func CopyToClipboard(text string) error {
	if err := clipboard.Init(); err != nil {
		return fmt.Errorf("failed to initialize clipboard: %w", err)
	}
	clipboard.Write(clipboard.FmtText, []byte(text))
	return nil
}
