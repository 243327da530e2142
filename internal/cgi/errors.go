package cgi

import "errors"

var (
	// ErrStart is returned if the script couldn't be spawned at all. Response
	// headers are usually already sent by that moment
	ErrStart   = errors.New("cgi: cannot start the script")
	ErrPipe    = errors.New("cgi: cannot read the script's output")
	ErrWrite   = errors.New("cgi: cannot write the script's output")
	ErrTimeout = errors.New("cgi: script's output timed out")
)
