package utils

import (
	"fmt"
	"strings"
)

// NormalizeHexColor validates a category display color and normalizes it to
// uppercase "#RRGGBB" form. Shorthand "#RGB" is expanded.
// Example: "#f00" -> "#FF0000"
func NormalizeHexColor(color string) (string, error) {
	if !strings.HasPrefix(color, "#") {
		return "", fmt.Errorf("color %q must start with '#'", color)
	}

	digits := strings.ToUpper(color[1:])
	for _, c := range digits {
		if (c < '0' || c > '9') && (c < 'A' || c > 'F') {
			return "", fmt.Errorf("color %q contains a non-hex digit", color)
		}
	}

	switch len(digits) {
	case 3:
		var b strings.Builder
		b.WriteByte('#')
		for i := 0; i < 3; i++ {
			b.WriteByte(digits[i])
			b.WriteByte(digits[i])
		}
		return b.String(), nil
	case 6:
		return "#" + digits, nil
	default:
		return "", fmt.Errorf("color %q must have 3 or 6 hex digits", color)
	}
}
