package report

import "errors"

var (
	ErrRendererUnavailable = errors.New("report rendering service unavailable")
	ErrUnsupportedFormat   = errors.New("unsupported report format")
)
