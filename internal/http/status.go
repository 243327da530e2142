package http

import "fmt"

type Status uint8

const (
	StatusOK Status = iota
	StatusPartialContent
	StatusMovedPermanently
	StatusNotModified
	StatusBadRequest
	StatusForbidden
	StatusNotFound
	StatusRangeNotSatisfiable
	StatusInternalServerError
	StatusNotImplemented
)

type statusEntry struct {
	code uint16
	text string
}

// statusTable is indexed by Status, so the order must follow the constants above
var statusTable = [...]statusEntry{
	StatusOK:                  {200, "OK"},
	StatusPartialContent:      {206, "Partial Content"},
	StatusMovedPermanently:    {301, "Moved Permanently"},
	StatusNotModified:         {304, "Not Modified"},
	StatusBadRequest:          {400, "Bad Request"},
	StatusForbidden:           {403, "Forbidden"},
	StatusNotFound:            {404, "Not Found"},
	StatusRangeNotSatisfiable: {416, "Requested Range Not Satisfiable"},
	StatusInternalServerError: {500, "Internal Server Error"},
	StatusNotImplemented:      {501, "Not Implemented"},
}

func (s Status) Code() int {
	return int(s.entry().code)
}

func (s Status) Text() string {
	return s.entry().text
}

func (s Status) String() string {
	return fmt.Sprintf("%d %s", s.Code(), s.Text())
}

// IsError reports whether the status is one of 4xx or 5xx
func (s Status) IsError() bool {
	return s >= StatusBadRequest
}

func (s Status) entry() statusEntry {
	if int(s) >= len(statusTable) {
		panic(fmt.Errorf("BUG: unknown status: %d", uint8(s)))
	}

	return statusTable[s]
}
