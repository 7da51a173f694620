package document

import (
	"errors"
	"fmt"

	"github.com/atotto/clipboard"
)

// Clipboard writes text to a clipboard.
type Clipboard interface {
	WriteAll(text string) error
}

// SystemClipboard uses the platform clipboard.
type SystemClipboard struct{}

func (SystemClipboard) WriteAll(text string) error {
	if clipboard.Unsupported {
		return ErrClipboardUnavailable
	}
	return clipboard.WriteAll(text)
}

// Copy writes text to c. Every failure is reported as ErrClipboardUnavailable.
func Copy(c Clipboard, text string) error {
	if c == nil {
		return ErrClipboardUnavailable
	}
	if err := c.WriteAll(text); err != nil {
		if errors.Is(err, ErrClipboardUnavailable) {
			return err
		}
		return fmt.Errorf("%w: %w", ErrClipboardUnavailable, err)
	}
	return nil
}
