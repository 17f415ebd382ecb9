package catalog

import (
	"fmt"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// NormalizeColor parses a "#rrggbb" or "#rgb" color and returns it in
// lowercase "#rrggbb" form.
func NormalizeColor(s string) (string, error) {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "#") {
		s = "#" + s
	}
	// colorful.Hex does not reject truncated or trailing input on its own
	if len(s) != 7 && len(s) != 4 {
		return "", fmt.Errorf("%w: got %q", ErrInvalidColor, s)
	}
	c, err := colorful.Hex(s)
	if err != nil {
		return "", fmt.Errorf("%w: got %q", ErrInvalidColor, s)
	}
	return c.Hex(), nil
}

// TextColor returns black or white, whichever reads better on top of the
// given background color. Unparseable colors get black.
func TextColor(background string) string {
	c, err := colorful.Hex(background)
	if err != nil {
		return "#000000"
	}
	if l, _, _ := c.Lab(); l > 0.6 {
		return "#000000"
	}
	return "#ffffff"
}
