package http1

import "errors"

var (
	ErrTooLarge      = errors.New("request head exceeds the buffer capacity")
	ErrNoRequestLine = errors.New("no request line is presented")
	ErrScanFinished  = errors.New("scanner is already done")
)
