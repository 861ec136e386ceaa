package timefmt

import "errors"

// Sentinel kinds for time parsing errors.
var (
	ErrBadClock = errors.New("unparseable time of day")
)
