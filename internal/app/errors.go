package service

import "errors"

// Sentinel kinds for cache rebuild errors. ErrRebuild wraps the
// underlying fetch failure; it always means no new snapshot was built.
var (
	ErrRebuild = errors.New("schedule rebuild failed")
)
