package domain

import (
	"errors"
	"fmt"
)

// Error kinds surfaced by bitmap operations. They abort only the call that
// returned them and leave every bitmap involved untouched.
var (
	ErrAllocation    = errors.New("error allocating buffer")
	ErrLoad          = errors.New("error loading image")
	ErrEncode        = errors.New("error encoding image")
	ErrInvalidRegion = errors.New("invalid bitmap coordinates")
)

// RegionError is returned when an explicit source region does not fit inside
// the source bitmap.
type RegionError struct {
	X, Y          int
	Width, Height int
	SrcWidth      int
	SrcHeight     int
}

func (e *RegionError) Error() string {
	return fmt.Sprintf("%s: region (%d,%d %dx%d) outside %dx%d source",
		ErrInvalidRegion, e.X, e.Y, e.Width, e.Height, e.SrcWidth, e.SrcHeight)
}

// Is makes errors.Is(err, ErrInvalidRegion) match.
func (e *RegionError) Is(target error) bool {
	return target == ErrInvalidRegion
}

// IsInvalidRegion checks if an error is an invalid source region error.
func IsInvalidRegion(err error) bool {
	return errors.Is(err, ErrInvalidRegion)
}
