package format

import (
	"fmt"
	"strings"
)

// NormalizePhone canonicalizes a Nigerian phone number to +234 form.
// Accepted inputs: "0803...", "234803...", "+234803...", "803...", with any
// spacing, dashes, or parentheses. Anything else is rejected.
func NormalizePhone(raw string) (string, error) {
	var digits strings.Builder
	plus := false
	for i, r := range raw {
		switch {
		case r >= '0' && r <= '9':
			digits.WriteRune(r)
		case r == '+' && i == 0:
			plus = true
		case r == ' ' || r == '-' || r == '(' || r == ')':
			// separators are ignored
		default:
			return "", fmt.Errorf("invalid character %q in phone number", r)
		}
	}

	d := digits.String()
	switch {
	case strings.HasPrefix(d, "234") && len(d) == 13:
		return "+" + d, nil
	case plus:
		return "", fmt.Errorf("unsupported country code in %q", raw)
	case strings.HasPrefix(d, "0") && len(d) == 11:
		return "+234" + d[1:], nil
	case len(d) == 10 && !strings.HasPrefix(d, "0"):
		return "+234" + d, nil
	default:
		return "", fmt.Errorf("phone number %q does not look like a Nigerian number", raw)
	}
}
