package render

import "errors"

var (
	// ErrSurface reports that no drawing surface could be prepared for the
	// requested configuration, for example when the modules do not fit
	// into the target size.
	ErrSurface = errors.New("render surface unavailable")

	// ErrReleased reports use of an artifact whose pixel data was already
	// released.
	ErrReleased = errors.New("artifact released")
)
