package shift

import "errors"

var (
	ErrShiftNotFound     = errors.New("shift not found")
	ErrOutsideEventRange = errors.New("shift date falls outside the event's operational range")
	ErrDuplicateWindow   = errors.New("duplicate shift time windows in one upload")
	ErrEmptyUpload       = errors.New("upload resolved to zero shifts")
	ErrInvalidWindow     = errors.New("shift end must be after shift start")
)
