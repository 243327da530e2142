package parse

import (
	"errors"
	"github.com/wolframreinke/distsys-pe/internal/http"
)

var (
	ErrUnsupported = errors.New("method is not implemented")
	ErrNoURI       = errors.New("request line has no URI")
	ErrURITooLong  = errors.New("URI exceeds the maximal length")
	ErrBadRange    = errors.New("malformed Range value")
	ErrBadDate     = errors.New("malformed If-Modified-Since value")
)

// StatusOf maps an error produced while reading the request head onto the status it
// must be answered with. Everything not caused by the request itself (e.g. an
// exhausted head buffer) is server-internal
func StatusOf(err error) http.Status {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, ErrUnsupported):
		return http.StatusNotImplemented
	case errors.Is(err, ErrNoURI), errors.Is(err, ErrURITooLong),
		errors.Is(err, ErrBadRange), errors.Is(err, ErrBadDate):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
