// Package timefmt canonicalizes sheet time-of-day strings.
//
// The signup sheet mixes "HH:MM" and "HH:MM:SS" cells, and downstream
// consumers compose "<date>T<time>" stamps by plain concatenation. The
// canonical form is therefore an explicit invariant here: every value
// leaving this package is zero-padded "HH:MM:SS", so a seconds suffix
// is never appended onto a value that already carries one.
package timefmt

import (
	"fmt"
	"strconv"
	"strings"
)

// Default is the fallback used for unparseable cells. The owning row
// is still kept; a bad clock value is not grounds for exclusion.
const Default = "00:00:00"

// Canonicalize converts "HH:MM" or "HH:MM:SS" into "HH:MM:SS".
// Wrong arity, non-numeric components, and out-of-range values are
// parse failures; callers substitute Default rather than composing a
// malformed stamp.
func Canonicalize(s string) (string, error) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) < 2 || len(parts) > 3 {
		return "", fmt.Errorf("%w: %q", ErrBadClock, s)
	}

	hour, err := component(parts[0], 23)
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrBadClock, s)
	}
	minute, err := component(parts[1], 59)
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrBadClock, s)
	}
	second := 0
	if len(parts) == 3 {
		if second, err = component(parts[2], 59); err != nil {
			return "", fmt.Errorf("%w: %q", ErrBadClock, s)
		}
	}

	return fmt.Sprintf("%02d:%02d:%02d", hour, minute, second), nil
}

// component parses one colon-separated piece and bounds-checks it.
func component(s string, max int) (int, error) {
	if s == "" || len(s) > 2 {
		return 0, strconv.ErrSyntax
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 || n > max {
		return 0, strconv.ErrRange
	}
	return n, nil
}
