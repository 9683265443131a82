package stats

import "errors"

var (
	ErrNoData = errors.New("no staff data recorded for this scope")
)
