package parse

import (
	"bytes"
	"fmt"
	"github.com/indigo-web/utils/uf"
	"github.com/wolframreinke/distsys-pe/internal/http"
	"github.com/wolframreinke/distsys-pe/internal/scan"
	"strconv"
	"strings"
	"time"
)

// MaxURILength is a protocol limit. Exceeding it is the client's fault
const MaxURILength = 255

var (
	// field names are matched case-sensitively, including the colon
	rangeKey           = []byte("Range:")
	ifModifiedSinceKey = []byte("If-Modified-Since:")
	bytesUnit          = []byte("bytes=")
)

// Parse builds a request out of the scanned head. The returned status is the first
// error encountered, otherwise StatusOK, or StatusPartialContent if a Range field
// was presented
func Parse(report scan.Report) (request http.Request, status http.Status) {
	request, err := parseRequestLine(report.RequestLine)
	if err != nil {
		return request, StatusOf(err)
	}

	status = http.StatusOK

	for _, field := range report.Fields {
		switch {
		case bytes.HasPrefix(field, rangeKey):
			start, err := parseRange(field[len(rangeKey):])
			if err != nil {
				return request, StatusOf(err)
			}

			request.RangeStart = start
			status = http.StatusPartialContent
		case bytes.HasPrefix(field, ifModifiedSinceKey):
			since, err := parseDate(field[len(ifModifiedSinceKey):])
			if err != nil {
				return request, StatusOf(err)
			}

			request.ModifiedSince = since
		}
	}

	return request, status
}

func parseRequestLine(line []byte) (request http.Request, err error) {
	sp := bytes.IndexByte(line, ' ')
	if sp == -1 {
		return request, ErrUnsupported
	}

	request.Method = http.LookupMethod(uf.B2S(line[:sp]))
	if request.Method == http.MethodNotImplemented {
		return request, ErrUnsupported
	}

	line = line[sp+1:]
	sp = bytes.IndexByte(line, ' ')

	switch {
	case sp <= 0:
		return request, ErrNoURI
	case sp > MaxURILength:
		return request, ErrURITooLong
	}

	request.URI = string(line[:sp])
	request.IsCGI = isCGI(request.URI)

	return request, nil
}

func isCGI(uri string) bool {
	if !strings.HasPrefix(uri, http.CGIPrefix) {
		return false
	}

	rest := uri[len(http.CGIPrefix):]

	return len(rest) == 0 || rest[0] == '/' || rest[0] == '?'
}

// parseRange accepts only the bytes=<begin>- form. The end of the range, if any,
// is ignored, as the range always lasts until the end of the file
func parseRange(value []byte) (int64, error) {
	value = bytes.TrimLeft(value, " \t")
	if !bytes.HasPrefix(value, bytesUnit) {
		return 0, fmt.Errorf("%w: %q", ErrBadRange, value)
	}

	value = value[len(bytesUnit):]
	dash := bytes.IndexByte(value, '-')
	if dash == -1 {
		return 0, fmt.Errorf("%w: %q", ErrBadRange, value)
	}

	start, err := strconv.ParseInt(uf.B2S(value[:dash]), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %s", ErrBadRange, err)
	}

	return start, nil
}

func parseDate(value []byte) (since time.Time, err error) {
	since, err = http.ParseDate(uf.B2S(bytes.Trim(value, " \t")))
	if err != nil {
		return since, fmt.Errorf("%w: %s", ErrBadDate, err)
	}

	return since, nil
}
