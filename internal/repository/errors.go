package repository

import "errors"

// Guard violations detected inside a locked transaction. Services map these
// onto their own user-facing sentinels.
var (
	// ErrJobNotOpen means the accept guard failed: the job already left open
	// or another bid holds the acceptance.
	ErrJobNotOpen = errors.New("job is not open for acceptance")

	// ErrStatusConflict means the status precondition of a lifecycle
	// transition no longer held at commit time.
	ErrStatusConflict = errors.New("job status precondition failed")
)
