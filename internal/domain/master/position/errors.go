package position

import "errors"

var (
	ErrPositionNotFound   = errors.New("position not found")
	ErrPositionNameExists = errors.New("position with this name already exists")
	ErrGlobalReadOnly     = errors.New("global positions cannot be modified")
	ErrUnauthorizedAccess = errors.New("unauthorized access to position")
)
