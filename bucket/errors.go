package bucket

import "errors"

var (
	// ErrZeroBlockCapacity indicates a container was requested with a
	// block capacity below one.
	ErrZeroBlockCapacity = errors.New("bucket: block capacity must be at least 1")
)
