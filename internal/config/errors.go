package config

import "errors"

var (
	ErrNoPort     = errors.New("config: port is required")
	ErrBadPort    = errors.New("config: bad port")
	ErrNoRoot     = errors.New("config: root directory is required")
	ErrBadRoot    = errors.New("config: root dir is not readable or not a directory")
	ErrBadTimeout = errors.New("config: timeout must be positive")
)
